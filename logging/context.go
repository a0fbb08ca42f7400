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
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
)

// Field names used for trace correlation in formatted output.
const (
	fieldTraceID = "trace_id"
	fieldSpanID  = "span_id"
)

// ContextLogger is a [Logger] bound to a context. When the context carries
// a valid OpenTelemetry span, its trace and span IDs are attached to every
// record.
//
// Thread-safe: Safe to use concurrently. Each instance is typically
// created per request and used by a single goroutine.
type ContextLogger struct {
	logger  *Logger
	ctx     context.Context
	traceID string
	spanID  string
}

// WithContext returns a [ContextLogger] for ctx.
func (l *Logger) WithContext(ctx context.Context) *ContextLogger {
	cl := &ContextLogger{logger: l, ctx: ctx}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		cl.traceID = sc.TraceID().String()
		cl.spanID = sc.SpanID().String()
	}
	return cl
}

// Logger returns the underlying [Logger].
func (cl *ContextLogger) Logger() *Logger {
	return cl.logger
}

// Context returns the bound context.
func (cl *ContextLogger) Context() context.Context {
	return cl.ctx
}

// TraceID returns the trace ID, or "" when the context has no span.
func (cl *ContextLogger) TraceID() string {
	return cl.traceID
}

// SpanID returns the span ID, or "" when the context has no span.
func (cl *ContextLogger) SpanID() string {
	return cl.spanID
}

// Trace logs msg at TRACE.
func (cl *ContextLogger) Trace(msg string) { cl.Log(LevelTrace, msg) }

// Debug logs msg at DEBUG.
func (cl *ContextLogger) Debug(msg string) { cl.Log(LevelDebug, msg) }

// Info logs msg at INFO.
func (cl *ContextLogger) Info(msg string) { cl.Log(LevelInfo, msg) }

// Warn logs msg at WARN.
func (cl *ContextLogger) Warn(msg string) { cl.Log(LevelWarn, msg) }

// Error logs msg at ERROR.
func (cl *ContextLogger) Error(msg string) { cl.Log(LevelError, msg) }

// Fatal logs msg at FATAL and then calls the service exit function.
func (cl *ContextLogger) Fatal(msg string) {
	cl.Log(LevelFatal, msg)
	cl.logger.svc.exit(1)
}

// Log logs msg at level with the trace IDs attached.
func (cl *ContextLogger) Log(level Level, msg string) {
	cl.logger.emit(level, msg, nil, cl.traceID, cl.spanID)
}

// Logf logs a formatted message at level with the trace IDs attached.
func (cl *ContextLogger) Logf(level Level, format string, args ...any) {
	if !cl.logger.Enabled(level) {
		return
	}
	cl.Log(level, fmt.Sprintf(format, args...))
}

// LogError logs msg at ERROR with err and the trace IDs attached.
func (cl *ContextLogger) LogError(err error, msg string) {
	cl.logger.emit(LevelError, msg, err, cl.traceID, cl.spanID)
}
