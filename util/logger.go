// Package util provides low-level helpers shared by all other packages.
package util

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel controls output verbosity.
type LogLevel int

const (
	LogQuiet   LogLevel = 0
	LogNormal  LogLevel = 1
	LogVerbose LogLevel = 2
	LogDebug   LogLevel = 3
)

// Logger is the user-visible diagnostic sink.  Warnings and errors are
// prefixed with the program name the way shell builtins report them;
// verbose and debug output carries a level tag instead.
//
// It never aborts the caller: every reporting path returns normally.
type Logger struct {
	name       string // program name prefixed to warnings
	level      LogLevel
	output     io.Writer
	mu         sync.Mutex
	timestamps bool // if true, prepend clock timestamps
}

// NewLogger returns a Logger named name that prints messages at or
// below the given verbosity (0 = quiet, 1 = normal, 2 = verbose,
// 3 = debug).
func NewLogger(name string, verbosity int) *Logger {
	return &Logger{
		name:       name,
		level:      LogLevel(verbosity),
		output:     os.Stderr,
		timestamps: verbosity >= 3, // auto-enable timestamps in debug mode
	}
}

// SetOutput overrides the output writer (default: os.Stderr).
func (l *Logger) SetOutput(w io.Writer) { l.output = w }

// Level returns the current log level.
func (l *Logger) Level() LogLevel { return l.level }

// Warn reports a non-fatal condition.  Prefixed with the program name;
// printed at any verbosity ≥ 1.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogNormal {
		l.write(l.name+":", format, args...)
	}
}

// WarnErr reports a non-fatal condition caused by an OS error.
func (l *Logger) WarnErr(msg string, err error) {
	if l.level >= LogNormal {
		l.write(l.name+":", "%s: %v", msg, err)
	}
}

// Error reports a failure.  Always printed, program-name prefixed.
func (l *Logger) Error(format string, args ...interface{}) {
	l.write(l.name+":", format, args...)
}

// Verbose prints progress detail when verbosity ≥ 2.
func (l *Logger) Verbose(format string, args ...interface{}) {
	if l.level >= LogVerbose {
		l.write("[VRB]", format, args...)
	}
}

// Debug prints internals when verbosity ≥ 3.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogDebug {
		l.write("[DBG]", format, args...)
	}
}

func (l *Logger) write(prefix, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if l.timestamps {
		ts := time.Now().Format("15:04:05.000")
		fmt.Fprintf(l.output, "%s %s %s\n", ts, prefix, msg)
	} else {
		fmt.Fprintf(l.output, "%s %s\n", prefix, msg)
	}
}
