package platform

import (
	"os"
	"runtime"
)

// ExecutableMode is the permission set applied to toolset binaries before
// launch: read+write+execute for the owner, read+execute for group/other.
const ExecutableMode os.FileMode = 0o755

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// EnsureExecutable marks the binary at path executable.
func EnsureExecutable(path string) error {
	return Chmod(path, ExecutableMode)
}

// IsExecutable reports whether path exists and carries an execute bit.
// Always true on Windows.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
