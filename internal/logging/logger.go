// Package logging implements the run logger: every entry goes to a
// timestamped log file, and to the console when the entry's level clears the
// configured verbosity threshold.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	fileStampLayout = "20060102_150405"
	filePrefix      = "DiskCleanup_"

	// Log file rotation limits for the lumberjack sink.
	maxLogSizeMB  = 50
	maxLogBackups = 5
	maxLogAgeDays = 30
)

// Sink is the logging capability handed to every component.
type Sink interface {
	Logf(level Level, format string, args ...any)
}

// Entry is a single log record.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// Format renders the entry as a log file line (without trailing newline).
func (e Entry) Format() string {
	return fmt.Sprintf("[%s][%s] %s", e.Time.Format(timestampLayout), e.Level, e.Message)
}

// Option customizes a Logger.
type Option func(*Logger)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// Logger writes entries to a run log file and to the console.
type Logger struct {
	mu        sync.Mutex
	file      io.WriteCloser
	path      string
	console   io.Writer
	threshold ConsoleLevel
	styles    map[Level]lipgloss.Style
	now       func() time.Time
	fileErr   error
}

// New creates dir if needed and opens a fresh timestamped log file in it.
// An error means the run cannot be logged and must not proceed.
func New(dir string, threshold ConsoleLevel, console io.Writer, opts ...Option) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", dir, err)
	}

	l := newLogger(nil, threshold, console, opts...)
	l.path = filepath.Join(dir, filePrefix+l.now().Format(fileStampLayout)+".log")
	l.file = &lumberjack.Logger{
		Filename:   l.path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
	}

	// lumberjack opens lazily; write the header now so an unwritable
	// directory surfaces here instead of on the first cleanup entry.
	header := Entry{Time: l.now(), Level: LevelInfo, Message: "Log started: " + l.path}
	if _, err := io.WriteString(l.file, header.Format()+"\n"); err != nil {
		_ = l.file.Close()
		return nil, fmt.Errorf("open log file %s: %w", l.path, err)
	}
	return l, nil
}

func newLogger(file io.WriteCloser, threshold ConsoleLevel, console io.Writer, opts ...Option) *Logger {
	if console == nil {
		console = io.Discard
	}
	l := &Logger{
		file:      file,
		console:   console,
		threshold: threshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.styles = levelStyles(lipgloss.NewRenderer(console))
	return l
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Threshold returns the console verbosity threshold.
func (l *Logger) Threshold() ConsoleLevel {
	return l.threshold
}

// FileErr returns the first file write error, if any.
func (l *Logger) FileErr() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fileErr
}

// Logf appends an entry to the log file and mirrors it on the console when
// visible. A failing log file never suppresses console output.
func (l *Logger) Logf(level Level, format string, args ...any) {
	entry := Entry{Time: l.now(), Level: level, Message: fmt.Sprintf(format, args...)}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		if _, err := io.WriteString(l.file, entry.Format()+"\n"); err != nil && l.fileErr == nil {
			l.fileErr = err
			l.writeConsole(Entry{
				Time:    entry.Time,
				Level:   LevelWarning,
				Message: fmt.Sprintf("Log file %s is no longer writable: %v", l.path, err),
			})
		}
	}

	if Visible(level, l.threshold) {
		l.writeConsole(entry)
	}
}

func (l *Logger) writeConsole(e Entry) {
	line := e.Format()
	if style, ok := l.styles[e.Level]; ok {
		line = style.Render(line)
	}
	fmt.Fprintln(l.console, line)
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func levelStyles(r *lipgloss.Renderer) map[Level]lipgloss.Style {
	return map[Level]lipgloss.Style{
		LevelStep:    r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}),
		LevelSubstep: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#4b5563", Dark: "#d1d5db"}),
		LevelVerbose: r.NewStyle().Faint(true),
		LevelInfo:    r.NewStyle(),
		LevelWarning: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}),
		LevelError:   r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}),
	}
}
