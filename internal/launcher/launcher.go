package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/opentools-labs/opentools-launcher/internal/config"
	"github.com/opentools-labs/opentools-launcher/internal/manifest"
	"github.com/opentools-labs/opentools-launcher/internal/platform"
)

// Launcher locates and runs the toolset binary for the host platform.
// The zero fields are filled with host defaults by New; tests override
// them to isolate filesystem layout and process streams.
type Launcher struct {
	Detector *platform.Detector

	// Stdin, Stdout, Stderr are handed to the child; defaults are the
	// launcher's own streams. Warnings also go to Stderr.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// InstallRoot and Workdir supply the two candidate roots.
	InstallRoot func() (string, error)
	Workdir     func() (string, error)

	// Chmod normalizes artifact permissions before launch.
	Chmod func(path string, mode os.FileMode) error
}

// New returns a Launcher wired to the running host.
func New() *Launcher {
	return &Launcher{
		Detector:    platform.NewDetector(),
		InstallRoot: InstallRoot,
		Workdir:     os.Getwd,
		Chmod:       platform.Chmod,
	}
}

// Locate returns the absolute, symlink-normalized path of the toolset
// binary for id. The installed layout under the launcher's own directory
// wins; the development-tree layout under the working directory is
// consulted only when the installed artifact does not exist.
func (l *Launcher) Locate(id platform.Identifier) (string, error) {
	sub := artifactSubPath(string(id))

	root, err := l.InstallRoot()
	if err != nil {
		return "", err
	}
	chosen := filepath.Join(root, sub)

	if _, err := os.Stat(chosen); err != nil {
		cwd, werr := l.Workdir()
		if werr != nil {
			return "", fmt.Errorf("resolving working directory: %w", werr)
		}
		secondary := filepath.Join(cwd, sub)
		if _, serr := os.Stat(secondary); serr != nil {
			return "", l.notFound(id, root, cwd)
		}
		chosen = secondary
	}

	if abs, err := filepath.Abs(chosen); err == nil {
		chosen = abs
	}
	if resolved, err := filepath.EvalSymlinks(chosen); err == nil {
		chosen = resolved
	}
	return chosen, nil
}

// notFound builds the not-found error, enriched with the platforms the
// bundle manifest declares when one can be read from either root.
func (l *Launcher) notFound(id platform.Identifier, roots ...string) error {
	nf := &NotFoundError{ID: id}
	for _, root := range roots {
		b, err := manifest.Load(filepath.Join(root, config.BinariesDir()))
		if err == nil && b != nil {
			nf.Shipped = b.ShippedPlatforms()
			break
		}
	}
	return nf
}

// Run resolves the platform, locates the binary, and executes it with args
// forwarded verbatim and stdio inherited. It returns the child's exit code;
// a non-nil error means the launch itself failed and no meaningful child
// status exists. There are no retries on this path.
func (l *Launcher) Run(ctx context.Context, args []string) (int, error) {
	id, ok := l.Detector.Resolve()
	if !ok {
		return 0, &UnsupportedError{OS: l.Detector.OS, Machine: l.Detector.Machine}
	}

	bin, err := l.Locate(id)
	if err != nil {
		return 0, err
	}

	// Permission normalization is best effort: the artifact may already be
	// executable, or live on a read-only filesystem.
	if err := l.Chmod(bin, platform.ExecutableMode); err != nil {
		fmt.Fprintf(l.stderr(), "Warning: could not set executable permissions on %s: %v\n", bin, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = l.stdin()
	cmd.Stdout = l.stdout()
	cmd.Stderr = l.stderr()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitStatus(exitErr), nil
		}
		return 0, fmt.Errorf("launching %s: %w", bin, err)
	}
	return 0, nil
}

// exitStatus extracts the child's exit code. A signal death maps to
// 128+signal, the wait-status convention shells use on this platform.
func exitStatus(err *exec.ExitError) int {
	if ws, ok := err.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return err.ExitCode()
}

func (l *Launcher) stdin() io.Reader {
	if l.Stdin != nil {
		return l.Stdin
	}
	return os.Stdin
}

func (l *Launcher) stdout() io.Writer {
	if l.Stdout != nil {
		return l.Stdout
	}
	return os.Stdout
}

func (l *Launcher) stderr() io.Writer {
	if l.Stderr != nil {
		return l.Stderr
	}
	return os.Stderr
}
