// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package rlog is a small leveled-logging helper, reconstructed to match
// the call surface the teacher repo's file.go exercises against its own
// (vendored, not present in this retrieval pack) log package:
// log.NewStdLogger, log.NewHelper, log.NewFilter, log.FilterLevel and the
// Helper.Debugf/Infof/Warnf/Errorf methods. The ply and stl Readers accept a
// *Helper in their Options (defaulting to Nop) but log nothing through it;
// the writers and the convert CLI take no Helper.
package rlog

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Level is a log severity, ordered least to most severe.
type Level int

// The four levels this package distinguishes.
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

// Logger is the minimal sink a Helper writes through.
type Logger interface {
	Log(level Level, msg string)
}

// stdLogger writes every record to an underlying *log.Logger, prefixed with
// its level.
type stdLogger struct {
	mu  sync.Mutex
	out *log.Logger
}

// NewStdLogger builds a Logger that writes to w via the standard library's
// log package.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{out: log.New(w, "", log.LstdFlags)}
}

func (s *stdLogger) Log(level Level, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out.Printf("[%s] %s", level, msg)
}

// filter wraps a Logger and drops records below a minimum level.
type filter struct {
	next Logger
	min  Level
}

// FilterOption configures a filter built by NewFilter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level a filtered Logger passes through.
func FilterLevel(min Level) FilterOption {
	return func(f *filter) { f.min = min }
}

// NewFilter wraps next with level filtering.
func NewFilter(next Logger, opts ...FilterOption) Logger {
	f := &filter{next: next, min: LevelDebug}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, msg string) {
	if level < f.min {
		return
	}
	f.next.Log(level, msg)
}

// Helper adds printf-style convenience methods over a Logger, matching the
// teacher's log.Helper call sites (file.go: pe.logger.Errorf(...)).
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

// Debugf logs at LevelDebug.
func (h *Helper) Debugf(format string, args ...interface{}) { h.logf(LevelDebug, format, args...) }

// Infof logs at LevelInfo.
func (h *Helper) Infof(format string, args ...interface{}) { h.logf(LevelInfo, format, args...) }

// Warnf logs at LevelWarn.
func (h *Helper) Warnf(format string, args ...interface{}) { h.logf(LevelWarn, format, args...) }

// Errorf logs at LevelError.
func (h *Helper) Errorf(format string, args ...interface{}) { h.logf(LevelError, format, args...) }

func (h *Helper) logf(level Level, format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Log(level, fmt.Sprintf(format, args...))
}

// Nop is a Helper that discards everything, used as the zero-config default
// for readers/writers that were not given an explicit Logger.
func Nop() *Helper { return NewHelper(NewFilter(NewStdLogger(io.Discard), FilterLevel(LevelError+1))) }
