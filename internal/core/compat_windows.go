//go:build windows

package core

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// windowsVersion returns the major, minor, and build numbers of the running OS.
// RtlGetNtVersionNumbers works without a compatibility manifest.
func windowsVersion() (major, minor, build uint32) {
	major, minor, build = windows.RtlGetNtVersionNumbers()
	// The build number comes back with high bits set.
	build &= 0xFFFF
	return major, minor, build
}

// OSVersionString returns a human-readable version, e.g. "Windows 11 (Build 22621)".
func OSVersionString() string {
	major, minor, build := windowsVersion()

	var name string
	switch {
	case major == 10 && build >= 22000:
		name = "Windows 11"
	case major == 10:
		name = "Windows 10"
	case major == 6 && minor == 3:
		name = "Windows 8.1"
	case major == 6 && minor == 2:
		name = "Windows 8"
	case major == 6 && minor == 1:
		name = "Windows 7"
	default:
		name = fmt.Sprintf("Windows %d.%d", major, minor)
	}

	return fmt.Sprintf("%s (Build %d)", name, build)
}

// IsElevated reports whether the process token is elevated. Ownership,
// ACL and component-store operations fail without it.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

// ExtendedPath returns the \\?\ form of path, which bypasses MAX_PATH.
func ExtendedPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	switch {
	case len(abs) >= 4 && abs[:4] == `\\?\`:
		return abs
	case len(abs) >= 2 && abs[:2] == `\\`:
		// UNC share: \\server\share -> \\?\UNC\server\share
		return `\\?\UNC\` + abs[2:]
	default:
		return `\\?\` + abs
	}
}
