package system

import (
	"context"
	"path/filepath"
)

// administratorsSID is the well-known SID of BUILTIN\Administrators. Using
// the SID keeps icacls working on localized Windows installs.
const administratorsSID = "*S-1-5-32-544"

// robocopyFailureCode is the lowest robocopy exit code that signals failure;
// 0-7 are combinations of "copied", "extra files" and "mismatch" bits.
const robocopyFailureCode = 8

// Tools invokes the Windows command-line utilities used by cleanup steps.
type Tools struct {
	runner Runner
}

// NewTools returns Tools that run commands through r.
func NewTools(r Runner) *Tools {
	return &Tools{runner: r}
}

// run executes name and converts exit codes above okMax into an ExitError.
func (t *Tools) run(ctx context.Context, okMax int, name string, args ...string) error {
	res, err := t.runner.Run(ctx, name, args...)
	if err != nil {
		return err
	}
	if res.ExitCode < 0 || res.ExitCode > okMax {
		return newExitError(name, res)
	}
	return nil
}

// TakeOwnership makes the current principal the owner of path.
func (t *Tools) TakeOwnership(ctx context.Context, path string, recursive bool) error {
	args := []string{"/F", path}
	if recursive {
		args = append(args, "/R", "/D", "Y")
	}
	return t.run(ctx, 0, "takeown.exe", args...)
}

// GrantAdministrators grants full control of path to the local
// Administrators group.
func (t *Tools) GrantAdministrators(ctx context.Context, path string, recursive bool) error {
	args := []string{path, "/grant", administratorsSID + ":F"}
	if recursive {
		args = append(args, "/T")
	}
	args = append(args, "/C", "/Q")
	return t.run(ctx, 0, "icacls.exe", args...)
}

// Mirror makes dst an exact copy of src, deleting anything in dst that src
// lacks. Mirroring an empty src clears dst.
func (t *Tools) Mirror(ctx context.Context, src, dst string) error {
	return t.run(ctx, robocopyFailureCode-1, "robocopy.exe",
		src, dst, "/MIR", "/R:0", "/W:0", "/NFL", "/NDL", "/NJH", "/NJS", "/NP")
}

// RemoveWithShell deletes path with cmd's rd/del builtins, which accept
// extended-length paths.
func (t *Tools) RemoveWithShell(ctx context.Context, path string, isDir bool) error {
	if isDir {
		return t.run(ctx, 0, "cmd.exe", "/c", "rd", "/s", "/q", path)
	}
	return t.run(ctx, 0, "cmd.exe", "/c", "del", "/f", "/q", "/a", path)
}

// ComponentCleanup purges superseded components from the component store.
func (t *Tools) ComponentCleanup(ctx context.Context) error {
	return t.run(ctx, 0, "dism.exe", "/Online", "/Cleanup-Image", "/StartComponentCleanup")
}

// Dehydrate marks every file under folder as online-only so OneDrive frees
// the local copy.
func (t *Tools) Dehydrate(ctx context.Context, folder string) error {
	return t.run(ctx, 0, "attrib.exe", "-P", "+U", "/S", "/D", filepath.Join(folder, "*"))
}
