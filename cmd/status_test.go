package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lakshaymaurya-felt/reclaim/internal/space"
)

func TestRenderStatus(t *testing.T) {
	const gib = 1 << 30
	var buf bytes.Buffer
	renderStatus(&buf, []space.Snapshot{
		space.NewSnapshot("C:", 5*gib, 100*gib, time.Time{}),
		space.NewSnapshot("D:", 60*gib, 200*gib, time.Time{}),
	})

	out := buf.String()
	assert.Contains(t, out, "C:")
	assert.Contains(t, out, "5.00%")
	assert.Contains(t, out, "200.00 GB")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("! low")))
}

func TestRenderStatusEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderStatus(&buf, nil)
	assert.Contains(t, buf.String(), "No partitions found.")
}

func TestCleanFlagsDefaults(t *testing.T) {
	f := cleanCmd.Flags()
	for name, want := range map[string]string{
		"clean-user-temp":       "true",
		"clean-teams-cache":     "false",
		"remove-stale-profiles": "false",
		"dehydrate-onedrive":    "false",
		"console-level":         "steps",
		"profile-age-days":      "90",
		"pagefile-min-mb":       "2048",
		"pagefile-max-mb":       "4096",
	} {
		flag := f.Lookup(name)
		if assert.NotNil(t, flag, name) {
			assert.Equal(t, want, flag.DefValue, name)
		}
	}
}
