//  Copyright 2014-Present Couchbase, Inc.
//
//  Use of this software is governed by the Business Source License included
//  in the file licenses/BSL-Couchbase.txt.  As of the Change Date specified
//  in that file, in accordance with the Business Source License, use of this
//  software will be governed by the Apache License, Version 2.0, included in
//  the file licenses/APL2.txt.

// Package optlog is the optimiser's logging surface: a level-gated,
// mutex-guarded global logger trimmed to the handful of levels this
// module actually emits. The anonymous-function variants
// (Tracea/Debuga) let the hot recursive path in the optimiser build
// its trace message lazily, only when the level is actually enabled.
package optlog

import (
	fmtpkg "fmt"
	"os"
	"sync"
	"time"
)

type Level int

const (
	NONE  = Level(iota) // logging disabled
	ERROR               // optimisation aborted with a resource failure
	WARN                // correct but undesirable state, e.g. positional demotion
	DEBUG               // per-call tracing detail
	TRACE               // per-recursive-call tracing, node description + factor
)

func (l Level) String() string { return _levelNames[l] }

var _levelNames = []string{
	NONE:  "NONE",
	ERROR: "ERROR",
	WARN:  "WARN",
	DEBUG: "DEBUG",
	TRACE: "TRACE",
}

type Logger interface {
	Tracea(f func() string)
	Debuga(f func() string)
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Level() Level
	SetLevel(Level)
}

var (
	loggerMutex sync.Mutex
	logger      Logger = NewWriterLogger(os.Stderr, WARN)
	cachedLevel Level  = WARN
)

// SetLogger installs a new Logger; nil disables logging entirely.
func SetLogger(l Logger) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	logger = l
	if l == nil {
		cachedLevel = NONE
	} else {
		cachedLevel = l.Level()
	}
}

// SetLevel changes the installed logger's level without replacing it.
func SetLevel(lv Level) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	if logger != nil {
		logger.SetLevel(lv)
		cachedLevel = lv
	}
}

func skip(lv Level) bool {
	return logger == nil || lv > cachedLevel
}

// Tracea logs f() at TRACE if tracing is enabled; f is never called
// otherwise, so callers on the optimiser's hot recursive path can build
// an expensive description string without cost when tracing is off.
func Tracea(f func() string) {
	if skip(TRACE) {
		return
	}
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	logger.Tracea(f)
}

func Debuga(f func() string) {
	if skip(DEBUG) {
		return
	}
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	logger.Debuga(f)
}

func Warnf(format string, args ...interface{}) {
	if skip(WARN) {
		return
	}
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	logger.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	if skip(ERROR) {
		return
	}
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	logger.Errorf(format, args...)
}

// WriterLogger is the default Logger, writing timestamped lines to a
// file handle.
type WriterLogger struct {
	mu    sync.Mutex
	w     *os.File
	level Level
}

func NewWriterLogger(w *os.File, level Level) *WriterLogger {
	return &WriterLogger{w: w, level: level}
}

func (this *WriterLogger) Level() Level     { return this.level }
func (this *WriterLogger) SetLevel(l Level) { this.level = l }

func (this *WriterLogger) line(lv Level, msg string) {
	if lv > this.level {
		return
	}
	this.mu.Lock()
	defer this.mu.Unlock()
	fmtpkg.Fprintf(this.w, "%s %s %s\n", time.Now().Format("2006-01-02T15:04:05.000"), lv, msg)
}

func (this *WriterLogger) Tracea(f func() string) { this.line(TRACE, f()) }
func (this *WriterLogger) Debuga(f func() string) { this.line(DEBUG, f()) }

func (this *WriterLogger) Warnf(format string, args ...interface{}) {
	this.line(WARN, fmtpkg.Sprintf(format, args...))
}

func (this *WriterLogger) Errorf(format string, args ...interface{}) {
	this.line(ERROR, fmtpkg.Sprintf(format, args...))
}
