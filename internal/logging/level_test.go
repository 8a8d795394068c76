package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisible(t *testing.T) {
	thresholds := []ConsoleLevel{ConsoleOff, ConsoleSteps, ConsoleSubsteps, ConsoleVerbose}

	for _, th := range thresholds {
		assert.Equal(t, th >= ConsoleVerbose, Visible(LevelVerbose, th), "verbose at %s", th)
		assert.Equal(t, th >= ConsoleSubsteps, Visible(LevelSubstep, th), "substep at %s", th)
		assert.Equal(t, th >= ConsoleSteps, Visible(LevelStep, th), "step at %s", th)
		assert.Equal(t, th >= ConsoleSteps, Visible(LevelInfo, th), "info at %s", th)
		assert.True(t, Visible(LevelWarning, th), "warning at %s", th)
		assert.True(t, Visible(LevelError, th), "error at %s", th)
	}
}

func TestParseConsoleLevel(t *testing.T) {
	cases := map[string]ConsoleLevel{
		"off":      ConsoleOff,
		"Steps":    ConsoleSteps,
		"SUBSTEPS": ConsoleSubsteps,
		" verbose": ConsoleVerbose,
	}
	for in, want := range cases {
		got, err := ParseConsoleLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseConsoleLevel("loud")
	assert.ErrorContains(t, err, `unknown console level "loud"`)
}

func TestLevelRank(t *testing.T) {
	assert.Equal(t, 1, LevelStep.Rank())
	assert.Equal(t, 1, LevelInfo.Rank())
	assert.Equal(t, 1, LevelWarning.Rank())
	assert.Equal(t, 1, LevelError.Rank())
	assert.Equal(t, 2, LevelSubstep.Rank())
	assert.Equal(t, 3, LevelVerbose.Rank())
	assert.Equal(t, "WARNING", LevelWarning.String())
}
