// Package log provides leveled, colorized logging for the spotlight CLI and
// libraries. The Trace level exists for diagnostics that must never become
// errors, such as overlay injection failures on pages that reject scripts.
package log

import (
	"fmt"
	"io"
	"os"
)

// Level represents the logging verbosity level
type Level int

const (
	// LevelQuiet shows only errors and warnings
	LevelQuiet Level = iota
	// LevelNormal shows standard progress (default)
	LevelNormal
	// LevelVerbose shows detailed execution information
	LevelVerbose
	// LevelTrace shows fire-and-forget diagnostics, including swallowed failures
	LevelTrace
)

// Logger writes leveled, ANSI-colored messages to a single writer.
type Logger struct {
	level  Level
	writer io.Writer

	colorReset  string
	colorGreen  string
	colorCyan   string
	colorYellow string
	colorRed    string
	colorGray   string
}

// NewLogger creates a logger writing to stdout at the given level.
func NewLogger(level Level) *Logger {
	return NewLoggerTo(level, os.Stdout)
}

// NewLoggerTo creates a logger writing to the given writer.
func NewLoggerTo(level Level, w io.Writer) *Logger {
	return &Logger{
		level:       level,
		writer:      w,
		colorReset:  "\033[0m",
		colorGreen:  "\033[32m",
		colorCyan:   "\033[36m",
		colorYellow: "\033[33m",
		colorRed:    "\033[31m",
		colorGray:   "\033[90m",
	}
}

// Infof prints an informational message
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.level >= LevelNormal {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(l.writer, "%s%s%s\n", l.colorCyan, msg, l.colorReset)
	}
}

// Successf prints a success message with checkmark
func (l *Logger) Successf(format string, args ...interface{}) {
	if l.level >= LevelNormal {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(l.writer, "%s✓ %s%s\n", l.colorGreen, msg, l.colorReset)
	}
}

// Warningf prints a warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	if l.level >= LevelQuiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(l.writer, "%s⚠ Warning: %s%s\n", l.colorYellow, msg, l.colorReset)
	}
}

// Errorf prints an error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l.level >= LevelQuiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(l.writer, "%s✗ Error: %s%s\n", l.colorRed, msg, l.colorReset)
	}
}

// Verbosef prints detailed information (only in verbose mode)
func (l *Logger) Verbosef(format string, args ...interface{}) {
	if l.level >= LevelVerbose {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(l.writer, "%s→ %s%s\n", l.colorGray, msg, l.colorReset)
	}
}

// Tracef prints fire-and-forget diagnostics (only in trace mode)
func (l *Logger) Tracef(format string, args ...interface{}) {
	if l.level >= LevelTrace {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(l.writer, "%s[trace] %s%s\n", l.colorGray, msg, l.colorReset)
	}
}

// ParseLevel converts a string log level to Level, defaulting to normal.
func ParseLevel(level string) Level {
	switch level {
	case "quiet":
		return LevelQuiet
	case "normal":
		return LevelNormal
	case "verbose":
		return LevelVerbose
	case "trace":
		return LevelTrace
	default:
		return LevelNormal
	}
}
