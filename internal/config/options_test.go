package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
)

func TestDefaultOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.Validate())

	assert.True(t, opts.CleanUserTemp)
	assert.False(t, opts.RemoveStaleProfiles)
	assert.False(t, opts.DehydrateOneDrive)
	assert.False(t, opts.ResizePageFile)
	assert.Equal(t, logging.ConsoleSteps, opts.ConsoleLevel)
}

func TestValidateNormalizesDrive(t *testing.T) {
	opts := DefaultOptions()
	opts.Drive = " d: "
	require.NoError(t, opts.Validate())
	assert.Equal(t, "D", opts.Drive)
}

func TestValidateRejectsBadValues(t *testing.T) {
	opts := DefaultOptions()
	opts.Drive = "CD"
	opts.LogDir = " "
	opts.ProfileAgeDays = -1
	opts.PageFileMinMB = 8192
	opts.PageFileMaxMB = 1024

	err := opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid drive")
	assert.Contains(t, err.Error(), "log directory")
	assert.Contains(t, err.Error(), "profile age")
	assert.Contains(t, err.Error(), "page file size")
}

func TestLocations(t *testing.T) {
	t.Setenv("WINDIR", filepath.Join("X", "Windows"))
	t.Setenv("SYSTEMDRIVE", "X:")
	t.Setenv("TEMP", filepath.Join("X", "tmp"))
	t.Setenv("USERNAME", "alice")

	loc := DetectLocations()
	assert.Equal(t, filepath.Join("X", "Windows"), loc.WindowsDir)
	assert.Equal(t, filepath.Join("X", "Windows", "Temp"), loc.WindowsTemp())
	assert.Equal(t, filepath.Join("X", "Windows", "SoftwareDistribution", "Download"), loc.UpdateDownloadCache())
	assert.Equal(t, filepath.Join("X", "tmp"), loc.UserTemp)
	assert.Equal(t, "alice", loc.CurrentUser)
	assert.Equal(t, "X", DefaultDrive())

	assert.Equal(t, filepath.Join("p", "AppData", "Local", "Temp"), ProfileTemp("p"))
	assert.Len(t, TeamsCacheDirs("p"), 9)
}
