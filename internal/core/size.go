package core

import (
	"context"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// BytesPerGB is the divisor used for every GB figure the tool reports.
const BytesPerGB = 1024 * 1024 * 1024

// FormatSize renders a byte count for humans (e.g. "12 GiB").
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// ToGB converts bytes to GB rounded to two decimals.
func ToGB(bytes uint64) float64 {
	return Round2(float64(bytes) / BytesPerGB)
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatGB renders a GB figure with two decimals.
func FormatGB(gb float64) string {
	return fmt.Sprintf("%.2f GB", gb)
}

// DirSize returns the recursive sum of regular file sizes under root.
// Directory entries contribute nothing; symlinks and junctions are not
// followed. Unreadable entries are skipped. A missing root is an error.
func DirSize(ctx context.Context, root string) (int64, error) {
	if _, err := os.Lstat(root); err != nil {
		return 0, err
	}

	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Permission denied or vanished mid-walk; skip it.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	return total, err
}
