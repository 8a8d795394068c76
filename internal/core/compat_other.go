//go:build !windows

package core

import (
	"os"
	"runtime"
)

// OSVersionString returns the platform name on non-Windows builds.
func OSVersionString() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// IsElevated reports whether the process runs as root.
func IsElevated() bool {
	return os.Geteuid() == 0
}

// ExtendedPath returns path unchanged; only Windows has the \\?\ form.
func ExtendedPath(path string) string {
	return path
}
