//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/opentools-labs/opentools-launcher/internal/platform"
)

// testEnv holds the isolated layout roots for a launcher run.
type testEnv struct {
	InstallRoot string // installed/packaged layout root
	WorkDir     string // development-tree layout root
}

// setupTestEnv creates isolated temp roots and points the launcher's
// install-root override at them. Skips on hosts that cannot run /bin/sh
// fixtures or resolve to a shipped platform.
func setupTestEnv(t *testing.T) (*testEnv, platform.Identifier) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("integration fixtures are /bin/sh scripts")
	}
	id, ok := platform.NewDetector().Resolve()
	if !ok {
		t.Skipf("host %s/%s has no binary variant", runtime.GOOS, runtime.GOARCH)
	}

	env := &testEnv{
		InstallRoot: t.TempDir(),
		WorkDir:     t.TempDir(),
	}
	t.Setenv("OPENTOOLS_INSTALL_ROOT", env.InstallRoot)
	return env, id
}

// writeTool places a toolset fixture for id under root and returns its path.
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

// writeManifest places a bundle manifest under root's binaries directory.
func writeManifest(t *testing.T, root, content string) {
	t.Helper()
	dir := filepath.Join(root, "binaries")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
