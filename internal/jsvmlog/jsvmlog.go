// Package jsvmlog is a small leveled wrapper around the standard log
// package, matching the teacher CLI's plain writer-based logging idiom
// (fmt.Fprintf(os.Stderr, ...) gated by a --verbose flag) rather than
// pulling in a structured-logging framework the teacher never uses.
package jsvmlog

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level is a coarse verbosity tier.
type Level int

const (
	LevelError Level = iota
	LevelInfo
	LevelDebug
)

// Logger writes leveled messages to an underlying *log.Logger, skipping
// anything above its configured Level.
type Logger struct {
	level Level
	l     *log.Logger
}

// New creates a Logger writing to w (os.Stderr is the CLI default) at the
// given level.
func New(w io.Writer, level Level) *Logger {
	return &Logger{level: level, l: log.New(w, "", 0)}
}

// Default is the package-level logger the CLI writes through, mirroring
// the teacher's bare os.Stderr writes.
var Default = New(os.Stderr, LevelError)

// SetVerbose switches Default between LevelError and LevelDebug, the
// same two-tier choice the CLI's --verbose flag exposes.
func SetVerbose(v bool) {
	if v {
		Default.level = LevelDebug
	} else {
		Default.level = LevelError
	}
}

func (lg *Logger) log(level Level, prefix, format string, args ...any) {
	if level > lg.level {
		return
	}
	lg.l.Output(3, prefix+fmt.Sprintf(format, args...))
}

func (lg *Logger) Errorf(format string, args ...any) { lg.log(LevelError, "error: ", format, args...) }
func (lg *Logger) Infof(format string, args ...any)  { lg.log(LevelInfo, "", format, args...) }
func (lg *Logger) Debugf(format string, args ...any) { lg.log(LevelDebug, "debug: ", format, args...) }

func Errorf(format string, args ...any) { Default.Errorf(format, args...) }
func Infof(format string, args ...any)  { Default.Infof(format, args...) }
func Debugf(format string, args ...any) { Default.Debugf(format, args...) }
