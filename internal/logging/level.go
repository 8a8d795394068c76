package logging

import (
	"fmt"
	"strings"
)

// Level is the severity of a log entry.
type Level int

const (
	LevelStep Level = iota
	LevelSubstep
	LevelVerbose
	LevelInfo
	LevelWarning
	LevelError
)

var levelNames = map[Level]string{
	LevelStep:    "STEP",
	LevelSubstep: "SUBSTEP",
	LevelVerbose: "VERBOSE",
	LevelInfo:    "INFO",
	LevelWarning: "WARNING",
	LevelError:   "ERROR",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// Rank maps a level onto the console verbosity scale: 1 for step-level
// output, 2 for substeps, 3 for verbose detail.
func (l Level) Rank() int {
	switch l {
	case LevelSubstep:
		return 2
	case LevelVerbose:
		return 3
	default:
		return 1
	}
}

// ConsoleLevel is the console verbosity threshold.
type ConsoleLevel int

const (
	ConsoleOff ConsoleLevel = iota
	ConsoleSteps
	ConsoleSubsteps
	ConsoleVerbose
)

var consoleNames = []string{"off", "steps", "substeps", "verbose"}

func (c ConsoleLevel) String() string {
	if c >= ConsoleOff && int(c) < len(consoleNames) {
		return consoleNames[c]
	}
	return fmt.Sprintf("console(%d)", int(c))
}

// ParseConsoleLevel accepts off, steps, substeps or verbose (case-insensitive).
func ParseConsoleLevel(s string) (ConsoleLevel, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for i, name := range consoleNames {
		if name == want {
			return ConsoleLevel(i), nil
		}
	}
	return ConsoleOff, fmt.Errorf("unknown console level %q (want one of %s)",
		s, strings.Join(consoleNames, ", "))
}

// Visible reports whether an entry at level reaches the console under the
// given threshold. Warnings and errors are always shown.
func Visible(level Level, threshold ConsoleLevel) bool {
	if level == LevelWarning || level == LevelError {
		return true
	}
	return level.Rank() <= int(threshold)
}
