// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"fmt"
	"sync/atomic"
)

// Logger is a named emission point with its own threshold. Loggers are
// obtained from [Service.GetLogger] and shared by everyone asking for the
// same name, so [Logger.SetLevel] is visible to every holder.
//
// Thread-safe: Safe for concurrent use by multiple goroutines.
type Logger struct {
	svc   *Service
	name  string
	level atomic.Int32
}

func newLogger(svc *Service, name string, level Level) *Logger {
	l := &Logger{svc: svc, name: name}
	l.level.Store(int32(level))
	return l
}

// Name returns the logger name.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the current threshold.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// SetLevel changes the threshold. Records below it are dropped before any
// handler sees them.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Enabled reports whether a record at level would be forwarded.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.Level()
}

// Trace logs msg at TRACE.
func (l *Logger) Trace(msg string) { l.emit(LevelTrace, msg, nil, "", "") }

// Debug logs msg at DEBUG.
func (l *Logger) Debug(msg string) { l.emit(LevelDebug, msg, nil, "", "") }

// Info logs msg at INFO.
func (l *Logger) Info(msg string) { l.emit(LevelInfo, msg, nil, "", "") }

// Warn logs msg at WARN.
func (l *Logger) Warn(msg string) { l.emit(LevelWarn, msg, nil, "", "") }

// Error logs msg at ERROR.
func (l *Logger) Error(msg string) { l.emit(LevelError, msg, nil, "", "") }

// Fatal logs msg at FATAL and then calls the service exit function.
func (l *Logger) Fatal(msg string) {
	l.emit(LevelFatal, msg, nil, "", "")
	l.svc.exit(1)
}

// Tracef logs a formatted message at TRACE.
func (l *Logger) Tracef(format string, args ...any) { l.Logf(LevelTrace, format, args...) }

// Debugf logs a formatted message at DEBUG.
func (l *Logger) Debugf(format string, args ...any) { l.Logf(LevelDebug, format, args...) }

// Infof logs a formatted message at INFO.
func (l *Logger) Infof(format string, args ...any) { l.Logf(LevelInfo, format, args...) }

// Warnf logs a formatted message at WARN.
func (l *Logger) Warnf(format string, args ...any) { l.Logf(LevelWarn, format, args...) }

// Errorf logs a formatted message at ERROR.
func (l *Logger) Errorf(format string, args ...any) { l.Logf(LevelError, format, args...) }

// Fatalf logs a formatted message at FATAL and then calls the service exit
// function.
func (l *Logger) Fatalf(format string, args ...any) {
	l.Logf(LevelFatal, format, args...)
	l.svc.exit(1)
}

// Log logs msg at level. Unlike [Logger.Fatal], logging at [LevelFatal]
// through Log does not exit.
func (l *Logger) Log(level Level, msg string) {
	l.emit(level, msg, nil, "", "")
}

// Logf logs a formatted message at level. Arguments are only formatted
// when level passes the threshold.
func (l *Logger) Logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.emit(level, fmt.Sprintf(format, args...), nil, "", "")
}

// LogError logs msg at ERROR with err attached to the record.
func (l *Logger) LogError(err error, msg string) {
	l.emit(LevelError, msg, err, "", "")
}

func (l *Logger) emit(level Level, msg string, err error, traceID, spanID string) {
	if !l.Enabled(level) {
		return
	}
	l.svc.dispatch(Record{
		Time:    l.svc.now(),
		Level:   level,
		Logger:  l.name,
		Message: msg,
		Err:     err,
		TraceID: traceID,
		SpanID:  spanID,
	})
}
