package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// Tolerates a leading "v" (strips it before parsing).
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// LauncherCompatible reports whether a launcher at launcherVersion satisfies
// the bundle's min_launcher_version. Bundles without the field, and dev
// builds without a release version, are always compatible.
func (b *Bundle) LauncherCompatible(launcherVersion string) (bool, error) {
	if b == nil || b.MinLauncherVersion == "" {
		return true, nil
	}
	if launcherVersion == "" || launcherVersion == "dev" {
		return true, nil
	}
	cmp, err := CompareVersions(launcherVersion, b.MinLauncherVersion)
	if err != nil {
		return false, err
	}
	return cmp >= 0, nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
