package platform

import "os/exec"

// lddVersion runs the default C-library version probe. Combined output
// because glibc prints its banner on stdout while musl's ldd writes to
// stderr.
func lddVersion() ([]byte, error) {
	return exec.Command("ldd", "--version").CombinedOutput()
}
