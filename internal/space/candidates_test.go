package space

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/reclaim/internal/system"
	"github.com/lakshaymaurya-felt/reclaim/internal/system/systemtest"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestOneDriveFolders(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ann", "OneDrive", "a.txt"), 1)
	writeFile(t, filepath.Join(root, "ann", "OneDrive - Contoso", "b.txt"), 1)
	writeFile(t, filepath.Join(root, "bob", "Documents", "c.txt"), 1)
	writeFile(t, filepath.Join(root, "bob", "onedrive.lnk"), 1)

	folders, err := OneDriveFolders(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "ann", "OneDrive"),
		filepath.Join(root, "ann", "OneDrive - Contoso"),
	}, folders)
}

func TestOneDriveFoldersMissingRoot(t *testing.T) {
	folders, err := OneDriveFolders(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestScannerThresholdIsStrict(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ann", "OneDrive", "big.bin"), 2048)
	writeFile(t, filepath.Join(root, "bob", "OneDrive", "exact.bin"), 1024)

	s := &FSScanner{UsersRoot: root, Platform: &systemtest.Platform{}, Threshold: 1024}
	cands, err := s.Candidates(context.Background(), OneDriveDehydration)
	require.NoError(t, err)
	assert.Equal(t, []Candidate{{Path: filepath.Join(root, "ann", "OneDrive"), Bytes: 2048}}, cands)
}

func TestScannerPageFiles(t *testing.T) {
	platform := &systemtest.Platform{PageFileList: []system.PageFile{
		{Path: `C:\pagefile.sys`, AllocatedMB: 16384},
		{Path: `D:\pagefile.sys`, AllocatedMB: 2048},
	}}

	cands, err := NewScanner(t.TempDir(), platform).Candidates(context.Background(), PageFileResize)
	require.NoError(t, err)
	assert.Equal(t, []Candidate{{Path: `C:\pagefile.sys`, Bytes: 16 << 30}}, cands)
}
