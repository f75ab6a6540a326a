// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log is javaclass's own small logging sub-package, mirrored
// from the teacher's github.com/saferwall/pe/log, which is used
// throughout file.go as log.NewStdLogger, log.NewHelper, log.NewFilter
// and log.FilterLevel. It is not a generic logging framework; it is
// just enough leveled, printf-style logging to decorate non-fatal parse
// events (an optional attribute failed to decode, a structural
// anomaly was recorded) without forcing every caller to provide one.
package log

import (
	"fmt"
	"io"
	"sync"
)

// Level is a logging severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal sink every log call is routed through.
type Logger interface {
	Log(level Level, msg string) error
}

// stdLogger writes "LEVEL msg" lines to an io.Writer.
type stdLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdLogger returns a Logger that writes plain lines to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{w: w}
}

func (l *stdLogger) Log(level Level, msg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintf(l.w, "%s %s\n", level, msg)
	return err
}

// filterLogger drops any record below its minimum level.
type filterLogger struct {
	next Logger
	min  Level
}

// FilterOption configures a filtering Logger built with NewFilter.
type FilterOption func(*filterLogger)

// FilterLevel sets the minimum level that passes the filter.
func FilterLevel(min Level) FilterOption {
	return func(f *filterLogger) { f.min = min }
}

// NewFilter wraps next with level filtering.
func NewFilter(next Logger, opts ...FilterOption) Logger {
	f := &filterLogger{next: next, min: LevelDebug}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filterLogger) Log(level Level, msg string) error {
	if level < f.min {
		return nil
	}
	return f.next.Log(level, msg)
}

// Helper adds printf-style convenience methods on top of a Logger,
// exactly the shape file.go expects from pe.logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

// Debugf logs at LevelDebug.
func (h *Helper) Debugf(format string, args ...any) {
	_ = h.logger.Log(LevelDebug, fmt.Sprintf(format, args...))
}

// Infof logs at LevelInfo.
func (h *Helper) Infof(format string, args ...any) {
	_ = h.logger.Log(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf logs at LevelWarn.
func (h *Helper) Warnf(format string, args ...any) {
	_ = h.logger.Log(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf logs at LevelError.
func (h *Helper) Errorf(format string, args ...any) {
	_ = h.logger.Log(LevelError, fmt.Sprintf(format, args...))
}

// Warn logs a single message at LevelWarn with no formatting.
func (h *Helper) Warn(args ...any) {
	_ = h.logger.Log(LevelWarn, fmt.Sprint(args...))
}
