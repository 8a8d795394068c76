package orchestrate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
	"github.com/lakshaymaurya-felt/reclaim/internal/logging/logtest"
)

func recordingStep(name string, enabled bool, ran *[]string, err error) CleanupStep {
	return CleanupStep{
		Name:    name,
		Enabled: enabled,
		Action: ActionFunc(func(context.Context) error {
			*ran = append(*ran, name)
			return err
		}),
	}
}

func TestRunSkipsDisabledStep(t *testing.T) {
	log := logtest.New()
	var ran []string

	err := NewRunner(log).Run(context.Background(), recordingStep("Empty Recycle Bin", false, &ran, nil))
	require.NoError(t, err)

	assert.Empty(t, ran)
	assert.Equal(t, []string{"Skipping Empty Recycle Bin (disabled)"}, log.Messages())
}

func TestRunLogsStartAndCompletion(t *testing.T) {
	log := logtest.New()
	var ran []string

	err := NewRunner(log).Run(context.Background(), recordingStep("Clear user TEMP folder", true, &ran, nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"Clear user TEMP folder"}, ran)
	assert.Equal(t, []string{"Starting Clear user TEMP folder", "Completed Clear user TEMP folder"},
		log.AtLevel(logging.LevelStep))
}

func TestRunAllStopsAtFirstFailure(t *testing.T) {
	log := logtest.New()
	boom := errors.New("HRESULT 0x80004005")
	var ran []string

	steps := []CleanupStep{
		recordingStep("first", true, &ran, nil),
		recordingStep("skipped", false, &ran, nil),
		recordingStep("broken", true, &ran, boom),
		recordingStep("never", true, &ran, nil),
	}
	err := NewRunner(log).RunAll(context.Background(), steps)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrStepFailed)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "broken", stepErr.Step)

	assert.Equal(t, []string{"first", "broken"}, ran)
	assert.Equal(t, []string{"Failed broken: HRESULT 0x80004005"}, log.AtLevel(logging.LevelError))
	assert.False(t, log.Contains("never"))
	assert.False(t, log.Contains("Completed broken"))
}

func TestRunAllCancelled(t *testing.T) {
	var ran []string
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRunner(logtest.New()).RunAll(ctx, []CleanupStep{recordingStep("a", true, &ran, nil)})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ran)
}
