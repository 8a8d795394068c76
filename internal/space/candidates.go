package space

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/IGLOU-EU/go-wildcard"

	"github.com/lakshaymaurya-felt/reclaim/internal/core"
	"github.com/lakshaymaurya-felt/reclaim/internal/system"
)

// OptionalAction identifies a high-impact action the operator must opt into.
type OptionalAction int

const (
	OneDriveDehydration OptionalAction = iota
	PageFileResize
)

// OptionalActions lists the optional actions in prompting order.
var OptionalActions = []OptionalAction{OneDriveDehydration, PageFileResize}

func (a OptionalAction) String() string {
	switch a {
	case OneDriveDehydration:
		return "OneDrive dehydration"
	case PageFileResize:
		return "page file resize"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// oneDrivePattern matches personal ("OneDrive") and business
// ("OneDrive - Contoso") sync roots.
const oneDrivePattern = "onedrive*"

// Candidate is a resource large enough to justify an optional action.
type Candidate struct {
	Path  string
	Bytes int64
}

// Scanner finds candidates for an optional action.
type Scanner interface {
	Candidates(ctx context.Context, a OptionalAction) ([]Candidate, error)
}

// FSScanner finds OneDrive sync roots under the users root and paging files
// reported by the platform, keeping those above Threshold bytes.
type FSScanner struct {
	UsersRoot string
	Platform  system.Platform
	Threshold int64
}

// NewScanner returns an FSScanner using the LargeResourceBytes threshold.
func NewScanner(usersRoot string, platform system.Platform) *FSScanner {
	return &FSScanner{UsersRoot: usersRoot, Platform: platform, Threshold: LargeResourceBytes}
}

// Candidates implements Scanner.
func (s *FSScanner) Candidates(ctx context.Context, a OptionalAction) ([]Candidate, error) {
	switch a {
	case OneDriveDehydration:
		return s.oneDriveCandidates(ctx)
	case PageFileResize:
		return s.pageFileCandidates(ctx)
	default:
		return nil, fmt.Errorf("unknown optional action %d", int(a))
	}
}

func (s *FSScanner) oneDriveCandidates(ctx context.Context) ([]Candidate, error) {
	folders, err := OneDriveFolders(s.UsersRoot)
	if err != nil {
		return nil, err
	}

	var out []Candidate
	for _, f := range folders {
		size, err := core.DirSize(ctx, f)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if size > s.Threshold {
			out = append(out, Candidate{Path: f, Bytes: size})
		}
	}
	return out, nil
}

func (s *FSScanner) pageFileCandidates(ctx context.Context) ([]Candidate, error) {
	files, err := s.Platform.PageFiles(ctx)
	if err != nil {
		return nil, err
	}

	var out []Candidate
	for _, f := range files {
		if f.AllocatedBytes() > s.Threshold {
			out = append(out, Candidate{Path: f.Path, Bytes: f.AllocatedBytes()})
		}
	}
	return out, nil
}

// OneDriveFolders returns every OneDrive sync root directly inside a profile
// under usersRoot. A missing users root yields no folders.
func OneDriveFolders(usersRoot string) ([]string, error) {
	profiles, err := os.ReadDir(usersRoot)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list profiles in %s: %w", usersRoot, err)
	}

	var folders []string
	for _, p := range profiles {
		if !p.IsDir() {
			continue
		}
		profileDir := filepath.Join(usersRoot, p.Name())
		entries, err := os.ReadDir(profileDir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() && wildcard.Match(oneDrivePattern, strings.ToLower(e.Name())) {
				folders = append(folders, filepath.Join(profileDir, e.Name()))
			}
		}
	}
	return folders, nil
}
