package system

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupported is returned by Platform methods on non-Windows builds.
var ErrUnsupported = errors.New("not supported on this platform")

// PageFile is a configured virtual-memory paging file.
type PageFile struct {
	Path           string
	AllocatedMB    uint32
	CurrentUsageMB uint32
}

// AllocatedBytes returns the allocated size in bytes.
func (p PageFile) AllocatedBytes() int64 {
	return int64(p.AllocatedMB) * 1024 * 1024
}

// Profile is a user profile registered with the OS.
type Profile struct {
	SID  string
	Path string

	// Special marks service and system profiles (LocalSystem,
	// LocalService, NetworkService) which must never be removed.
	Special bool

	// Loaded is set while the profile's registry hive is mounted, i.e. the
	// user is logged on or a process runs as them.
	Loaded bool

	// LastUse is when the OS last recorded the profile in use. Zero when
	// unknown.
	LastUse time.Time
}

// Platform exposes the OS facilities that have no portable equivalent.
type Platform interface {
	// EmptyRecycleBin empties the recycle bin on every drive.
	EmptyRecycleBin(ctx context.Context) error

	// PageFiles lists the active paging files.
	PageFiles(ctx context.Context) ([]PageFile, error)

	// AutomaticPageFile reports whether Windows manages page file size.
	AutomaticPageFile(ctx context.Context) (bool, error)

	// SetAutomaticPageFile turns automatic page file management on or off.
	SetAutomaticPageFile(ctx context.Context, enabled bool) error

	// SetPageFileSize fixes the initial and maximum size of a paging file.
	// The change takes effect after a reboot.
	SetPageFileSize(ctx context.Context, path string, minMB, maxMB uint32) error

	// Profiles lists the user profiles known to the OS.
	Profiles(ctx context.Context) ([]Profile, error)

	// DeleteProfileRegistration removes a profile's registry entry.
	DeleteProfileRegistration(ctx context.Context, sid string) error

	// CurrentUserSID returns the SID of the account running this process.
	CurrentUserSID() (string, error)
}

// specialSIDs are built-in service account profiles.
var specialSIDs = map[string]bool{
	"S-1-5-18": true, // LocalSystem
	"S-1-5-19": true, // LocalService
	"S-1-5-20": true, // NetworkService
}

// IsSpecialSID reports whether sid belongs to a built-in service account.
func IsSpecialSID(sid string) bool {
	return specialSIDs[sid]
}
