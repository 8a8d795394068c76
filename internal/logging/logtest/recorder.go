// Package logtest provides an in-memory logging.Sink for tests.
package logtest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
)

// Recorder captures entries in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []logging.Entry
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

// Logf implements logging.Sink.
func (r *Recorder) Logf(level logging.Level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logging.Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Entries returns a copy of everything logged so far.
func (r *Recorder) Entries() []logging.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]logging.Entry(nil), r.entries...)
}

// Messages returns the logged messages in order.
func (r *Recorder) Messages() []string {
	var out []string
	for _, e := range r.Entries() {
		out = append(out, e.Message)
	}
	return out
}

// Contains reports whether any message contains substr.
func (r *Recorder) Contains(substr string) bool {
	return r.Count(substr) > 0
}

// Count returns how many messages contain substr.
func (r *Recorder) Count(substr string) int {
	n := 0
	for _, m := range r.Messages() {
		if strings.Contains(m, substr) {
			n++
		}
	}
	return n
}

// AtLevel returns the messages logged at level.
func (r *Recorder) AtLevel(level logging.Level) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Last returns the most recent message, or "" if none.
func (r *Recorder) Last() string {
	entries := r.Entries()
	if len(entries) == 0 {
		return ""
	}
	return entries[len(entries)-1].Message
}
