// Package doctor inspects the launcher environment and reports what a
// launch would do: the resolved platform, the candidate artifact paths and
// which would be selected, permission state, and bundle manifest health.
// It never mutates anything.
package doctor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/opentools-labs/opentools-launcher/internal/branding"
	"github.com/opentools-labs/opentools-launcher/internal/config"
	"github.com/opentools-labs/opentools-launcher/internal/launcher"
	"github.com/opentools-labs/opentools-launcher/internal/manifest"
	"github.com/opentools-labs/opentools-launcher/internal/platform"
)

// Report writes the full environment diagnosis to w. launcherVersion is the
// running launcher's build version, used for the bundle compatibility check.
func Report(w io.Writer, l *launcher.Launcher, launcherVersion string) {
	fmt.Fprintf(w, "%s launcher check:\n", branding.DisplayName())

	id, ok := l.Detector.Resolve()
	if ok {
		fmt.Fprintf(w, "  [ OK ] platform resolved: %s\n", id)
	} else {
		fmt.Fprintf(w, "  [MISS] no binary variant for %s/%s\n", l.Detector.OS, l.Detector.Machine)
	}

	root, err := l.InstallRoot()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] install root: %v\n", err)
	} else {
		fmt.Fprintf(w, "  [ OK ] install root: %s\n", root)
	}

	if ok {
		reportCandidates(w, l, id)
	}
	reportManifest(w, l, launcherVersion)
}

func reportCandidates(w io.Writer, l *launcher.Launcher, id platform.Identifier) {
	candidates, err := l.Candidates(id)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] candidate paths: %v\n", err)
		return
	}

	labels := []string{"installed layout", "development tree"}
	selected := false
	for i, path := range candidates {
		if _, statErr := os.Stat(path); statErr != nil {
			fmt.Fprintf(w, "  [MISS] %s: %s\n", labels[i], path)
			continue
		}
		note := ""
		if !selected {
			note = " (selected)"
			selected = true
		}
		if platform.IsExecutable(path) {
			fmt.Fprintf(w, "  [ OK ] %s: %s%s\n", labels[i], path, note)
		} else {
			fmt.Fprintf(w, "  [WARN] %s: %s%s — not executable; the launcher will chmod it\n", labels[i], path, note)
		}
	}

	if !selected {
		fmt.Fprintf(w, "  [MISS] no %s binary for %s at either root\n", config.ToolName(), id)
	}
}

func reportManifest(w io.Writer, l *launcher.Launcher, launcherVersion string) {
	path := findManifest(l)
	if path == "" {
		fmt.Fprintf(w, "  [ -- ] bundle manifest: none (optional)\n")
		return
	}

	res, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] bundle manifest %s: %v\n", path, err)
		return
	}
	if !res.Valid {
		fmt.Fprintf(w, "  [WARN] bundle manifest %s has schema issues:\n", path)
		for _, issue := range res.Issues {
			fmt.Fprintf(w, "         %s: %s\n", issue.Path, issue.Message)
		}
		return
	}

	b, err := manifest.ParseFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] bundle manifest %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(w, "  [ OK ] bundle manifest: %s %s (%d platforms)\n", b.Name, b.Version, len(b.Platforms))

	compatible, err := b.LauncherCompatible(launcherVersion)
	if err != nil {
		fmt.Fprintf(w, "  [WARN] launcher compatibility: %v\n", err)
		return
	}
	if !compatible {
		fmt.Fprintf(w, "  [WARN] bundle requires launcher >= %s (running %s)\n", b.MinLauncherVersion, launcherVersion)
	}
}

// findManifest returns the first bundle manifest under either candidate
// root, or "".
func findManifest(l *launcher.Launcher) string {
	var roots []string
	if root, err := l.InstallRoot(); err == nil {
		roots = append(roots, root)
	}
	if cwd, err := l.Workdir(); err == nil {
		roots = append(roots, cwd)
	}
	for _, root := range roots {
		p := filepath.Join(root, config.BinariesDir(), manifest.FileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
