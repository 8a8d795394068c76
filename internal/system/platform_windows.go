//go:build windows

package system

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// ─── Shell32 Syscalls ────────────────────────────────────────────────────────

var (
	modShell32          = syscall.NewLazyDLL("shell32.dll")
	procEmptyRecycleBin = modShell32.NewProc("SHEmptyRecycleBinW")
)

const (
	sherbNoConfirmation = 0x00000001
	sherbNoProgressUI   = 0x00000002
	sherbNoSound        = 0x00000004

	// E_UNEXPECTED is what SHEmptyRecycleBinW returns for an empty bin.
	hresultUnexpected = 0x8000FFFF
)

// ─── Registry Locations ──────────────────────────────────────────────────────

const (
	memoryManagementKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Memory Management`
	pagingFilesValue    = "PagingFiles"
	profileListKey      = `SOFTWARE\Microsoft\Windows NT\CurrentVersion\ProfileList`

	// automaticPagingEntry is the PagingFiles entry Windows writes when it
	// manages page file size on every drive.
	automaticPagingEntry = `?:\pagefile.sys`
)

// ─── WMI Rows ────────────────────────────────────────────────────────────────

type win32PageFileUsage struct {
	Name              string
	AllocatedBaseSize uint32
	CurrentUsage      uint32
}

type win32ComputerSystem struct {
	AutomaticManagedPagefile bool
}

type win32UserProfile struct {
	SID         string
	LocalPath   string
	Loaded      bool
	Special     bool
	LastUseTime time.Time
}

type windowsPlatform struct{}

// NewPlatform returns the Windows Platform implementation.
func NewPlatform() Platform {
	return windowsPlatform{}
}

// EmptyRecycleBin empties the Windows Recycle Bin on all drives via the
// SHEmptyRecycleBinW Shell API.
func (windowsPlatform) EmptyRecycleBin(context.Context) error {
	flags := uintptr(sherbNoConfirmation | sherbNoProgressUI | sherbNoSound)
	ret, _, _ := procEmptyRecycleBin.Call(0, 0, flags)

	hr := uint32(ret)
	if hr != 0 && hr != hresultUnexpected {
		return fmt.Errorf("SHEmptyRecycleBinW failed: HRESULT 0x%08x", hr)
	}
	return nil
}

func (windowsPlatform) PageFiles(context.Context) ([]PageFile, error) {
	var rows []win32PageFileUsage
	if err := wmi.Query("SELECT Name, AllocatedBaseSize, CurrentUsage FROM Win32_PageFileUsage", &rows); err != nil {
		return nil, fmt.Errorf("query Win32_PageFileUsage: %w", err)
	}

	files := make([]PageFile, 0, len(rows))
	for _, r := range rows {
		files = append(files, PageFile{
			Path:           r.Name,
			AllocatedMB:    r.AllocatedBaseSize,
			CurrentUsageMB: r.CurrentUsage,
		})
	}
	return files, nil
}

func (windowsPlatform) AutomaticPageFile(context.Context) (bool, error) {
	var rows []win32ComputerSystem
	if err := wmi.Query("SELECT AutomaticManagedPagefile FROM Win32_ComputerSystem", &rows); err != nil {
		return false, fmt.Errorf("query Win32_ComputerSystem: %w", err)
	}
	if len(rows) == 0 {
		return false, fmt.Errorf("query Win32_ComputerSystem: no rows")
	}
	return rows[0].AutomaticManagedPagefile, nil
}

func (windowsPlatform) SetAutomaticPageFile(_ context.Context, enabled bool) error {
	return updatePagingFiles(func(entries []string) []string {
		if enabled {
			return []string{automaticPagingEntry}
		}
		// Pin the automatic entry to the system drive with system-managed
		// size (0 0) so later size changes have an explicit entry to edit.
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			if strings.HasPrefix(strings.ToLower(e), automaticPagingEntry) {
				e = systemDrive() + `\pagefile.sys 0 0`
			}
			out = append(out, e)
		}
		return out
	})
}

func (windowsPlatform) SetPageFileSize(_ context.Context, path string, minMB, maxMB uint32) error {
	entry := fmt.Sprintf("%s %d %d", path, minMB, maxMB)
	return updatePagingFiles(func(entries []string) []string {
		out := make([]string, 0, len(entries)+1)
		replaced := false
		for _, e := range entries {
			if pagingEntryPath(e) == strings.ToLower(path) {
				out = append(out, entry)
				replaced = true
				continue
			}
			out = append(out, e)
		}
		if !replaced {
			out = append(out, entry)
		}
		return out
	})
}

func (windowsPlatform) Profiles(context.Context) ([]Profile, error) {
	var rows []win32UserProfile
	if err := wmi.Query("SELECT SID, LocalPath, Loaded, Special, LastUseTime FROM Win32_UserProfile", &rows); err != nil {
		return nil, fmt.Errorf("query Win32_UserProfile: %w", err)
	}

	profiles := make([]Profile, 0, len(rows))
	for _, r := range rows {
		if r.LocalPath == "" {
			continue
		}
		profiles = append(profiles, Profile{
			SID:     r.SID,
			Path:    r.LocalPath,
			Special: r.Special || IsSpecialSID(r.SID) || !strings.HasPrefix(r.SID, "S-1-5-21-"),
			Loaded:  r.Loaded,
			LastUse: r.LastUseTime,
		})
	}
	return profiles, nil
}

func (windowsPlatform) CurrentUserSID() (string, error) {
	user, err := windows.GetCurrentProcessToken().GetTokenUser()
	if err != nil {
		return "", fmt.Errorf("read process token user: %w", err)
	}
	return user.User.Sid.String(), nil
}

func (windowsPlatform) DeleteProfileRegistration(_ context.Context, sid string) error {
	if err := registry.DeleteKey(registry.LOCAL_MACHINE, profileListKey+`\`+sid); err != nil {
		return fmt.Errorf("delete ProfileList\\%s: %w", sid, err)
	}
	return nil
}

// ─── Registry Helpers ────────────────────────────────────────────────────────

// updatePagingFiles rewrites the PagingFiles multi-string value.
func updatePagingFiles(edit func([]string) []string) error {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, memoryManagementKey,
		registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open Memory Management key (need admin): %w", err)
	}
	defer key.Close()

	entries, _, err := key.GetStringsValue(pagingFilesValue)
	if err != nil && err != registry.ErrNotExist {
		return fmt.Errorf("read %s: %w", pagingFilesValue, err)
	}
	if err := key.SetStringsValue(pagingFilesValue, edit(entries)); err != nil {
		return fmt.Errorf("write %s: %w", pagingFilesValue, err)
	}
	return nil
}

// pagingEntryPath extracts the lower-cased file path from a PagingFiles
// entry such as `C:\pagefile.sys 2048 4096`.
func pagingEntryPath(entry string) string {
	fields := strings.Fields(entry)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func systemDrive() string {
	if d := os.Getenv("SYSTEMDRIVE"); d != "" {
		return d
	}
	return "C:"
}
