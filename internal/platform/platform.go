package platform

import (
	"bytes"
	"runtime"
	"strings"
)

// Identifier is the canonical platform triple used to key the binaries
// layout, e.g. "x86_64-unknown-linux-gnu".
type Identifier string

// The closed set of identifiers with shipped binary variants.
const (
	DarwinAMD64 Identifier = "x86_64-apple-darwin"
	DarwinARM64 Identifier = "aarch64-apple-darwin"
	LinuxGNU    Identifier = "x86_64-unknown-linux-gnu"
	LinuxMusl   Identifier = "x86_64-unknown-linux-musl"
)

// Known returns all identifiers the launcher can resolve to.
func Known() []Identifier {
	return []Identifier{DarwinAMD64, DarwinARM64, LinuxGNU, LinuxMusl}
}

// muslMarker in the C-library probe output identifies a musl system.
const muslMarker = "musl"

// Detector resolves the canonical identifier for a host environment.
// The zero fields are filled from the running host by NewDetector;
// tests override them.
type Detector struct {
	// OS is the GOOS-style operating system name, e.g. "darwin".
	OS string
	// Machine is the hardware architecture string, e.g. "x86_64".
	Machine string
	// Probe runs the C-library version command and returns its combined
	// output. Only consulted on Linux. nil disables the probe.
	Probe func() ([]byte, error)
}

// NewDetector returns a Detector for the running host.
func NewDetector() *Detector {
	return &Detector{
		OS:      runtime.GOOS,
		Machine: machineArch(),
		Probe:   lddVersion,
	}
}

// machineArch normalizes runtime.GOARCH to the hardware spelling used by
// the binaries layout ("amd64" -> "x86_64").
func machineArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "arm64"
	default:
		return runtime.GOARCH
	}
}

// Resolve maps the detected environment to an Identifier. ok is false when
// the host has no known binary variant; that is not an error, and callers
// decide how to report it.
func (d *Detector) Resolve() (id Identifier, ok bool) {
	arch := strings.ToLower(d.Machine)

	switch d.OS {
	case "darwin":
		switch arch {
		case "x86_64":
			return DarwinAMD64, true
		case "arm64", "aarch64":
			return DarwinARM64, true
		}

	case "linux":
		// The musl probe wins outright on a marker hit, whatever the
		// architecture. A missing probe command or non-zero exit means
		// "not musl", never an error: boxes without ldd fall through to
		// the glibc variant.
		if d.Probe != nil {
			if out, err := d.Probe(); err == nil && bytes.Contains(out, []byte(muslMarker)) {
				return LinuxMusl, true
			}
		}
		if arch == "x86_64" {
			return LinuxGNU, true
		}
	}

	return "", false
}
