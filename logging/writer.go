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
	"bytes"
	"sync"
)

// LineWriter adapts a [Logger] to [io.Writer]. Every complete line written
// becomes one record at the writer's level, without its trailing newline.
// A partial line is held until it is completed or [LineWriter.Flush] is
// called.
//
// Thread-safe: Safe for concurrent use by multiple goroutines.
type LineWriter struct {
	logger *Logger
	level  Level

	mu  sync.Mutex
	buf []byte
}

// Writer returns a [LineWriter] that logs each line at level.
//
// Example:
//
//	w := logger.Writer(logging.LevelInfo)
//	cmd.Stdout = w
//	_ = cmd.Run()
//	w.Flush()
func (l *Logger) Writer(level Level) *LineWriter {
	return &LineWriter{logger: l, level: level}
}

// Write implements [io.Writer]. It never fails.
func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSuffix(w.buf[:i], []byte{'\r'})
		w.logger.Log(w.level, string(line))
		w.buf = w.buf[i+1:]
	}
	if len(w.buf) == 0 {
		w.buf = nil
	}

	return len(p), nil
}

// Flush logs any pending partial line.
func (w *LineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.logger.Log(w.level, string(w.buf))
		w.buf = nil
	}
}
