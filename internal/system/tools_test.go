package system_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/reclaim/internal/system"
	"github.com/lakshaymaurya-felt/reclaim/internal/system/systemtest"
)

func exitWith(code int, output string) func(string, []string) (system.Result, error) {
	return func(string, []string) (system.Result, error) {
		return system.Result{ExitCode: code, Output: []byte(output)}, nil
	}
}

func TestToolArguments(t *testing.T) {
	ctx := context.Background()
	runner := &systemtest.Runner{}
	tools := system.NewTools(runner)

	require.NoError(t, tools.TakeOwnership(ctx, `C:\x`, true))
	require.NoError(t, tools.TakeOwnership(ctx, `C:\f.txt`, false))
	require.NoError(t, tools.GrantAdministrators(ctx, `C:\x`, true))
	require.NoError(t, tools.GrantAdministrators(ctx, `C:\f.txt`, false))
	require.NoError(t, tools.Mirror(ctx, `C:\empty`, `C:\x`))
	require.NoError(t, tools.RemoveWithShell(ctx, `\\?\C:\x`, true))
	require.NoError(t, tools.RemoveWithShell(ctx, `\\?\C:\f.txt`, false))
	require.NoError(t, tools.ComponentCleanup(ctx))
	require.NoError(t, tools.Dehydrate(ctx, "OneDrive"))

	var lines []string
	for _, c := range runner.Calls() {
		lines = append(lines, c.String())
	}
	assert.Equal(t, []string{
		`takeown.exe /F C:\x /R /D Y`,
		`takeown.exe /F C:\f.txt`,
		`icacls.exe C:\x /grant *S-1-5-32-544:F /T /C /Q`,
		`icacls.exe C:\f.txt /grant *S-1-5-32-544:F /C /Q`,
		`robocopy.exe C:\empty C:\x /MIR /R:0 /W:0 /NFL /NDL /NJH /NJS /NP`,
		`cmd.exe /c rd /s /q \\?\C:\x`,
		`cmd.exe /c del /f /q /a \\?\C:\f.txt`,
		`dism.exe /Online /Cleanup-Image /StartComponentCleanup`,
		`attrib.exe -P +U /S /D ` + filepath.Join("OneDrive", "*"),
	}, lines)
}

func TestRobocopyExitCodes(t *testing.T) {
	ctx := context.Background()
	runner := &systemtest.Runner{}
	tools := system.NewTools(runner)

	for code := 0; code < 8; code++ {
		runner.Handler = exitWith(code, "")
		assert.NoError(t, tools.Mirror(ctx, "a", "b"), "exit code %d", code)
	}

	runner.Handler = exitWith(8, "ERROR 5 (0x00000005) Access is denied.")
	err := tools.Mirror(ctx, "a", "b")
	var exitErr *system.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 8, exitErr.Code)
	assert.Equal(t, "robocopy.exe", exitErr.Tool)
	assert.Contains(t, err.Error(), "Access is denied")
}

func TestComponentCleanupNonZeroExit(t *testing.T) {
	runner := &systemtest.Runner{Handler: exitWith(87, "Error: 87")}
	err := system.NewTools(runner).ComponentCleanup(context.Background())

	var exitErr *system.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 87, exitErr.Code)
	assert.Equal(t, "dism.exe failed (exit code 87): Error: 87", err.Error())
}

func TestExitErrorTruncatesOutput(t *testing.T) {
	long := strings.Repeat("é", 150) // 300 bytes
	runner := &systemtest.Runner{Handler: exitWith(1, long)}
	err := system.NewTools(runner).TakeOwnership(context.Background(), "x", false)

	var exitErr *system.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.True(t, strings.HasSuffix(exitErr.Output, "..."))
	assert.LessOrEqual(t, len(exitErr.Output), 203)
	assert.Equal(t, strings.Repeat("é", 100)+"...", exitErr.Output)
}

func TestRunnerStartFailure(t *testing.T) {
	boom := errors.New("executable not found")
	runner := &systemtest.Runner{Handler: func(string, []string) (system.Result, error) {
		return system.Result{}, boom
	}}
	err := system.NewTools(runner).ComponentCleanup(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFindByName(t *testing.T) {
	pm := &systemtest.Processes{Procs: []system.Process{
		{PID: 1, Name: "Teams.exe"},
		{PID: 2, Name: "explorer.exe"},
		{PID: 3, Name: "MS-TEAMS.EXE"},
	}}

	found, err := system.FindByName(context.Background(), pm, "teams.exe", "ms-teams.exe")
	require.NoError(t, err)
	assert.Equal(t, []system.Process{{PID: 1, Name: "Teams.exe"}, {PID: 3, Name: "MS-TEAMS.EXE"}}, found)
}

func TestSpecialSIDs(t *testing.T) {
	assert.True(t, system.IsSpecialSID("S-1-5-18"))
	assert.True(t, system.IsSpecialSID("S-1-5-20"))
	assert.False(t, system.IsSpecialSID("S-1-5-21-1-2-3-1001"))
}
