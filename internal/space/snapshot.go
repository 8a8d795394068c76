// Package space measures free disk space and runs the escalation decision
// tree for the optional high-impact actions (OneDrive dehydration and page
// file resizing) when a volume stays low on space.
package space

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/lakshaymaurya-felt/reclaim/internal/core"
)

// Volume reports capacity figures for a drive.
type Volume interface {
	Usage(ctx context.Context, drive string) (free, total uint64, err error)
}

// DiskVolume is the gopsutil-backed Volume.
type DiskVolume struct{}

// Usage implements Volume for a drive letter such as "C".
func (DiskVolume) Usage(ctx context.Context, drive string) (uint64, uint64, error) {
	u, err := disk.UsageWithContext(ctx, DriveRoot(drive))
	if err != nil {
		return 0, 0, fmt.Errorf("query volume %s: %w", DriveRoot(drive), err)
	}
	return u.Free, u.Total, nil
}

// DriveRoot returns the root path of a drive letter, e.g. `C:\`.
func DriveRoot(drive string) string {
	return drive + `:\`
}

// Snapshot is a point-in-time free-space reading. Snapshots are compared,
// never mutated.
type Snapshot struct {
	Drive       string
	FreeBytes   uint64
	TotalBytes  uint64
	FreeGB      float64
	TotalGB     float64
	PercentFree float64
	TakenAt     time.Time
}

// NewSnapshot derives the GB and percentage figures from raw byte counts.
func NewSnapshot(drive string, free, total uint64, at time.Time) Snapshot {
	return Snapshot{
		Drive:       drive,
		FreeBytes:   free,
		TotalBytes:  total,
		FreeGB:      core.ToGB(free),
		TotalGB:     core.ToGB(total),
		PercentFree: PercentFree(free, total),
		TakenAt:     at,
	}
}

// PercentFree returns free/total as a percentage rounded to two decimals,
// or 0 for a zero-sized volume.
func PercentFree(free, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return core.Round2(float64(free) / float64(total) * 100)
}

// FreedSince returns the GB freed between prev and s.
func (s Snapshot) FreedSince(prev Snapshot) float64 {
	return core.Round2(s.FreeGB - prev.FreeGB)
}

// Low reports whether the snapshot is under the low-space floor.
func (s Snapshot) Low() bool {
	return s.PercentFree < LowSpacePercent
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%s: %s free of %s (%.2f%%)",
		s.Drive, core.FormatGB(s.FreeGB), core.FormatGB(s.TotalGB), s.PercentFree)
}

// Take queries vol and returns a snapshot stamped with now.
func Take(ctx context.Context, vol Volume, drive string, now time.Time) (Snapshot, error) {
	free, total, err := vol.Usage(ctx, drive)
	if err != nil {
		return Snapshot{}, err
	}
	return NewSnapshot(drive, free, total, now), nil
}

// Partitions snapshots every mounted physical partition, keyed by mount
// point. Partitions whose usage cannot be read are skipped.
func Partitions(ctx context.Context, now time.Time) ([]Snapshot, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}

	var out []Snapshot
	for _, p := range parts {
		u, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil || u.Total == 0 {
			continue
		}
		out = append(out, NewSnapshot(p.Mountpoint, u.Free, u.Total, now))
	}
	return out, nil
}
