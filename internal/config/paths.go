package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Locations holds the well-known Windows paths a cleanup run touches.
// All of them are derived from the environment so installations on any
// drive letter are handled.
type Locations struct {
	// UserTemp is the invoking user's %TEMP%.
	UserTemp string

	// WindowsDir is %WINDIR% (e.g. C:\Windows). It is also the OS root
	// measured by diagnostics.
	WindowsDir string

	// UsersRoot is the parent of every user profile (e.g. C:\Users).
	UsersRoot string

	// ProgramData is %PROGRAMDATA%.
	ProgramData string

	// CurrentUser is the invoking account name.
	CurrentUser string
}

// DetectLocations resolves Locations from the process environment.
func DetectLocations() Locations {
	return Locations{
		UserTemp:    userTemp(),
		WindowsDir:  winDir(),
		UsersRoot:   filepath.Join(systemDrive(), "Users"),
		ProgramData: programData(),
		CurrentUser: os.Getenv("USERNAME"),
	}
}

// WindowsTemp is %WINDIR%\Temp.
func (l Locations) WindowsTemp() string {
	return filepath.Join(l.WindowsDir, "Temp")
}

// UpdateDownloadCache is the Windows Update download cache.
func (l Locations) UpdateDownloadCache() string {
	return filepath.Join(l.WindowsDir, "SoftwareDistribution", "Download")
}

// ProfileTemp returns the local temp folder inside a profile directory.
func ProfileTemp(profileDir string) string {
	return filepath.Join(profileDir, "AppData", "Local", "Temp")
}

// TeamsCacheDirs returns the classic Teams cache folders inside a profile.
func TeamsCacheDirs(profileDir string) []string {
	base := filepath.Join(profileDir, "AppData", "Roaming", "Microsoft", "Teams")
	var dirs []string
	for _, name := range []string{
		"application cache", "blob_storage", "Cache", "Code Cache",
		"databases", "GPUCache", "IndexedDB", "Local Storage", "tmp",
	} {
		dirs = append(dirs, filepath.Join(base, name))
	}
	return dirs
}

// DefaultLogDir is where run logs go unless overridden.
func DefaultLogDir() string {
	return filepath.Join(programData(), "DiskCleanup", "Logs")
}

// DefaultDrive returns the system drive letter without colon (e.g. "C").
func DefaultDrive() string {
	return strings.TrimSuffix(strings.TrimSuffix(systemDrive(), `\`), ":")
}

// userTemp returns %TEMP%, falling back to the OS temp directory.
func userTemp() string {
	if t := os.Getenv("TEMP"); t != "" {
		return t
	}
	return os.TempDir()
}

// winDir returns the Windows directory (e.g., C:\Windows).
// Falls back to C:\Windows only if %WINDIR% is not set.
func winDir() string {
	if w := os.Getenv("WINDIR"); w != "" {
		return w
	}
	return `C:\Windows`
}

// programData returns the ProgramData directory (e.g., C:\ProgramData).
// Falls back to C:\ProgramData only if %PROGRAMDATA% is not set.
func programData() string {
	if p := os.Getenv("PROGRAMDATA"); p != "" {
		return p
	}
	return `C:\ProgramData`
}

// systemDrive returns the system drive letter with backslash (e.g., C:\).
// Falls back to C:\ only if %SYSTEMDRIVE% is not set.
func systemDrive() string {
	if d := os.Getenv("SYSTEMDRIVE"); d != "" {
		return d + `\`
	}
	return `C:\`
}
