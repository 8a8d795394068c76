// Package diagnostics reports where disk space has gone when cleanup could
// not bring a volume back above the low-space floor. It never deletes.
package diagnostics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lakshaymaurya-felt/reclaim/internal/core"
	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
)

// OSRootDiagnosticBytes is the OS root total above which its largest
// subfolders are listed.
const OSRootDiagnosticBytes int64 = 35 * core.BytesPerGB

// TopFolders is how many OS root subfolders are listed.
const TopFolders = 10

// Entry is a sized folder.
type Entry struct {
	Path  string
	Name  string
	Bytes int64
}

// Percentage returns the entry's share of total.
func (e Entry) Percentage(total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(e.Bytes) / float64(total) * 100
}

// Report is the result of one collection.
type Report struct {
	Profiles    []Entry
	OSRoot      string
	OSRootBytes int64

	// OSRootTop is empty unless OSRootBytes exceeds the threshold.
	OSRootTop []Entry
}

// ProfilesTotal sums the profile sizes.
func (r Report) ProfilesTotal() int64 {
	var total int64
	for _, e := range r.Profiles {
		total += e.Bytes
	}
	return total
}

// Collector sizes profiles and the OS root.
type Collector struct {
	UsersRoot string
	OSRoot    string
	Threshold int64
	log       logging.Sink
}

// NewCollector returns a Collector using OSRootDiagnosticBytes.
func NewCollector(log logging.Sink, usersRoot, osRoot string) *Collector {
	return &Collector{
		UsersRoot: usersRoot,
		OSRoot:    osRoot,
		Threshold: OSRootDiagnosticBytes,
		log:       log,
	}
}

// Collect sizes every profile under UsersRoot and logs them largest first.
// When the OS root's total exceeds Threshold, its TopFolders largest
// immediate subfolders are logged too.
func (c *Collector) Collect(ctx context.Context) (Report, error) {
	report := Report{OSRoot: c.OSRoot}

	c.log.Logf(logging.LevelInfo, "Profile sizes under %s:", c.UsersRoot)
	profiles, err := c.sizeChildren(ctx, c.UsersRoot)
	if err != nil {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		c.log.Logf(logging.LevelWarning, "Could not size profiles under %s: %v", c.UsersRoot, err)
	}
	report.Profiles = profiles
	for _, e := range profiles {
		c.log.Logf(logging.LevelInfo, "  %-30s %s", e.Name, core.FormatSize(e.Bytes))
	}

	folders, err := c.sizeChildren(ctx, c.OSRoot)
	if err != nil {
		return report, err
	}
	report.OSRootBytes = c.rootFilesBytes(c.OSRoot)
	for _, e := range folders {
		report.OSRootBytes += e.Bytes
	}
	c.log.Logf(logging.LevelInfo, "%s holds %s", c.OSRoot, core.FormatSize(report.OSRootBytes))

	if report.OSRootBytes <= c.Threshold {
		return report, nil
	}
	if len(folders) > TopFolders {
		folders = folders[:TopFolders]
	}
	report.OSRootTop = folders
	c.log.Logf(logging.LevelInfo, "Largest folders under %s:", c.OSRoot)
	for _, e := range folders {
		c.log.Logf(logging.LevelInfo, "  %-30s %s", e.Name, core.FormatSize(e.Bytes))
	}
	return report, nil
}

// sizeChildren sizes each immediate subdirectory of root, sorted by size
// descending. A missing root yields nothing.
func (c *Collector) sizeChildren(ctx context.Context, root string) ([]Entry, error) {
	dirents, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		c.log.Logf(logging.LevelWarning, "Directory not found: %s", root)
		return nil, nil
	}
	if err != nil {
		// A partially readable root still returns what it could list.
		if len(dirents) == 0 {
			return nil, fmt.Errorf("list %s: %w", root, err)
		}
	}

	var out []Entry
	for _, d := range dirents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !d.IsDir() {
			continue
		}
		path := filepath.Join(root, d.Name())
		size, err := core.DirSize(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.log.Logf(logging.LevelVerbose, "Could not size %s: %v", path, err)
			continue
		}
		out = append(out, Entry{Path: path, Name: d.Name(), Bytes: size})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Bytes > out[j].Bytes })
	return out, nil
}

func (c *Collector) rootFilesBytes(root string) int64 {
	dirents, _ := os.ReadDir(root)
	var total int64
	for _, d := range dirents {
		if !d.Type().IsRegular() {
			continue
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
	}
	return total
}
