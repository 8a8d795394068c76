package core

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestDirSizeSumsFilesRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 100)
	writeFile(t, filepath.Join(root, "sub", "b.bin"), 250)
	writeFile(t, filepath.Join(root, "sub", "deeper", "c.bin"), 50)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	size, err := DirSize(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, int64(400), size)
}

func TestDirSizeDoesNotFollowSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on Windows")
	}
	root := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "big.bin"), 1000)
	writeFile(t, filepath.Join(root, "small.bin"), 10)
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "link")))

	size, err := DirSize(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)
}

func TestDirSizeMissingRoot(t *testing.T) {
	_, err := DirSize(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.True(t, os.IsNotExist(err))
}

func TestDirSizeCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DirSize(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRoundingAndFormatting(t *testing.T) {
	assert.Equal(t, 1.5, ToGB(BytesPerGB+BytesPerGB/2))
	assert.Equal(t, 0.0, ToGB(0))
	assert.Equal(t, 33.33, Round2(33.3333))
	assert.Equal(t, 66.67, Round2(66.6666))
	assert.Equal(t, "5.00 GB", FormatGB(5))
	assert.Equal(t, "1.0 KiB", FormatSize(1024))
	assert.Equal(t, "0 B", FormatSize(-5))
}
