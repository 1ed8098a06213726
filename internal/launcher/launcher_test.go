package launcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/opentools-labs/opentools-launcher/internal/platform"
)

// writeTool creates a fake toolset binary for id under root and returns
// its path.
func writeTool(t *testing.T, root string, id platform.Identifier, script string) string {
	t.Helper()
	dir := filepath.Join(root, "binaries", string(id))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "opentools")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// testLauncher returns a Launcher rooted at fixed directories with a
// glibc-linux detector, writing child output to the returned buffers.
func testLauncher(installRoot, workdir string) (*Launcher, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	l := &Launcher{
		Detector: &platform.Detector{
			OS:      "linux",
			Machine: "x86_64",
			Probe:   func() ([]byte, error) { return []byte("ldd (GNU libc) 2.38"), nil },
		},
		Stdout:      &stdout,
		Stderr:      &stderr,
		InstallRoot: func() (string, error) { return installRoot, nil },
		Workdir:     func() (string, error) { return workdir, nil },
		Chmod:       platform.Chmod,
	}
	return l, &stdout, &stderr
}

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("spawning /bin/sh scripts requires a Unix host")
	}
}

func TestLocatePrefersInstalledLayout(t *testing.T) {
	install := t.TempDir()
	work := t.TempDir()
	primary := writeTool(t, install, platform.LinuxGNU, "#!/bin/sh\n")
	writeTool(t, work, platform.LinuxGNU, "#!/bin/sh\n")

	l, _, _ := testLauncher(install, work)
	got, err := l.Locate(platform.LinuxGNU)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	want, _ := filepath.EvalSymlinks(primary)
	if got != want {
		t.Errorf("Locate = %q, want installed artifact %q", got, want)
	}
}

func TestLocateFallsBackToWorkdir(t *testing.T) {
	install := t.TempDir()
	work := t.TempDir()
	secondary := writeTool(t, work, platform.LinuxGNU, "#!/bin/sh\n")

	l, _, _ := testLauncher(install, work)
	got, err := l.Locate(platform.LinuxGNU)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	want, _ := filepath.EvalSymlinks(secondary)
	if got != want {
		t.Errorf("Locate = %q, want development-tree artifact %q", got, want)
	}
}

func TestLocateNotFound(t *testing.T) {
	l, _, _ := testLauncher(t.TempDir(), t.TempDir())
	_, err := l.Locate(platform.LinuxGNU)

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Locate error = %v, want *NotFoundError", err)
	}
	if nf.ID != platform.LinuxGNU {
		t.Errorf("NotFoundError.ID = %q, want %q", nf.ID, platform.LinuxGNU)
	}
	if !strings.Contains(err.Error(), string(platform.LinuxGNU)) {
		t.Errorf("error %q does not name the platform identifier", err)
	}
}

func TestLocateNotFoundListsShippedPlatforms(t *testing.T) {
	install := t.TempDir()
	binDir := filepath.Join(install, "binaries")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	mf := "name: opentools\nversion: \"1.0.0\"\nplatforms:\n  - aarch64-apple-darwin\n"
	if err := os.WriteFile(filepath.Join(binDir, "manifest.yaml"), []byte(mf), 0o644); err != nil {
		t.Fatal(err)
	}

	l, _, _ := testLauncher(install, t.TempDir())
	_, err := l.Locate(platform.LinuxGNU)

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Locate error = %v, want *NotFoundError", err)
	}
	if len(nf.Shipped) != 1 || nf.Shipped[0] != platform.DarwinARM64 {
		t.Errorf("NotFoundError.Shipped = %v, want [%s]", nf.Shipped, platform.DarwinARM64)
	}
	if !strings.Contains(err.Error(), "aarch64-apple-darwin") {
		t.Errorf("error %q does not list shipped platforms", err)
	}
}

func TestRunUnsupportedPlatformSkipsFilesystem(t *testing.T) {
	l := &Launcher{
		Detector: &platform.Detector{OS: "freebsd", Machine: "x86_64"},
		InstallRoot: func() (string, error) {
			t.Error("install root consulted for an unsupported platform")
			return "", nil
		},
		Workdir: os.Getwd,
		Chmod:   platform.Chmod,
	}

	_, err := l.Run(context.Background(), nil)
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Run error = %v, want *UnsupportedError", err)
	}
	if unsupported.OS != "freebsd" || unsupported.Machine != "x86_64" {
		t.Errorf("UnsupportedError = %+v, want detected OS and machine", unsupported)
	}
}

func TestRunPropagatesExitCode(t *testing.T) {
	requireUnix(t)

	install := t.TempDir()
	writeTool(t, install, platform.LinuxGNU, "#!/bin/sh\nexit 7\n")

	l, _, _ := testLauncher(install, t.TempDir())
	code, err := l.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}
}

func TestRunZeroExit(t *testing.T) {
	requireUnix(t)

	install := t.TempDir()
	writeTool(t, install, platform.LinuxGNU, "#!/bin/sh\nexit 0\n")

	l, _, _ := testLauncher(install, t.TempDir())
	code, err := l.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
}

func TestRunChildKilledBySignal(t *testing.T) {
	requireUnix(t)

	install := t.TempDir()
	writeTool(t, install, platform.LinuxGNU, "#!/bin/sh\nkill -TERM $$\n")

	l, _, _ := testLauncher(install, t.TempDir())
	code, err := l.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// SIGTERM is 15; a signal death reports as 128+signal.
	if code != 143 {
		t.Errorf("exit code = %d, want 143", code)
	}
}

func TestRunForwardsArgumentsVerbatim(t *testing.T) {
	requireUnix(t)

	install := t.TempDir()
	out := filepath.Join(t.TempDir(), "args.txt")
	writeTool(t, install, platform.LinuxGNU,
		fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > %s\n", out))

	l, _, _ := testLauncher(install, t.TempDir())
	code, err := l.Run(context.Background(), []string{"a", "--flag", "b c"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "a\n--flag\nb c\n"; got != want {
		t.Errorf("child received args %q, want %q", got, want)
	}
}

func TestRunInheritsStdio(t *testing.T) {
	requireUnix(t)

	install := t.TempDir()
	writeTool(t, install, platform.LinuxGNU,
		"#!/bin/sh\nread line\necho \"got $line\"\necho oops >&2\n")

	l, stdout, stderr := testLauncher(install, t.TempDir())
	l.Stdin = strings.NewReader("hello\n")

	code, err := l.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if got := stdout.String(); got != "got hello\n" {
		t.Errorf("stdout = %q, want %q", got, "got hello\n")
	}
	if got := stderr.String(); got != "oops\n" {
		t.Errorf("stderr = %q, want %q", got, "oops\n")
	}
}

func TestRunChmodFailureIsNonFatal(t *testing.T) {
	requireUnix(t)

	install := t.TempDir()
	writeTool(t, install, platform.LinuxGNU, "#!/bin/sh\nexit 0\n")

	l, _, stderr := testLauncher(install, t.TempDir())
	l.Chmod = func(string, os.FileMode) error {
		return errors.New("read-only file system")
	}

	code, err := l.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run aborted on chmod failure: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stderr.String(), "Warning") {
		t.Errorf("stderr = %q, want a permission warning", stderr.String())
	}
}

func TestRunSpawnFailureIsFatal(t *testing.T) {
	requireUnix(t)

	install := t.TempDir()
	// Not a valid executable and never made one: chmod is a no-op.
	dir := filepath.Join(install, "binaries", string(platform.LinuxGNU))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "opentools"), []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, _, _ := testLauncher(install, t.TempDir())
	l.Chmod = func(string, os.FileMode) error { return nil }

	if _, err := l.Run(context.Background(), nil); err == nil {
		t.Error("Run succeeded spawning a non-executable artifact")
	}
}
