package launcher

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opentools-labs/opentools-launcher/internal/config"
	"github.com/opentools-labs/opentools-launcher/internal/platform"
)

// InstallRoot returns the directory the launcher runs from, which anchors
// the installed binaries layout. The install_root config key (and its
// OPENTOOLS_INSTALL_ROOT env form) override it for development use;
// otherwise it is the directory containing the launcher executable,
// symlink-resolved so a symlinked launcher still finds its real tree.
func InstallRoot() (string, error) {
	if v := config.InstallRoot(); v != "" {
		return v, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating launcher executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// artifactSubPath is the layout-relative path of the toolset binary for a
// platform identifier: <binaries-dir>/<identifier>/<tool>.
func artifactSubPath(id string) string {
	return filepath.Join(config.BinariesDir(), id, config.ToolName())
}

// Candidates returns the artifact paths probed for id, in priority order:
// the installed layout first, then the development tree.
func (l *Launcher) Candidates(id platform.Identifier) ([]string, error) {
	sub := artifactSubPath(string(id))
	root, err := l.InstallRoot()
	if err != nil {
		return nil, err
	}
	cwd, err := l.Workdir()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	return []string{filepath.Join(root, sub), filepath.Join(cwd, sub)}, nil
}
