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
	"sync"
	"sync/atomic"
	"testing"

	"rivaas.dev/logservice/properties"
)

// MemoryHandler keeps every emitted record in memory. It understands the
// level and enabled options, so it can be configured like any other
// handler.
//
// Thread-safe: Safe for concurrent use by multiple goroutines.
type MemoryHandler struct {
	level   atomic.Int32
	enabled atomic.Bool

	mu      sync.Mutex
	records []Record
}

type memoryOptions struct {
	Level   Level `option:"level"`
	Enabled bool  `option:"enabled"`
}

// NewMemoryHandler returns a handler that accepts every level.
func NewMemoryHandler() *MemoryHandler {
	h := &MemoryHandler{}
	h.level.Store(int32(LevelTrace))
	h.enabled.Store(true)
	return h
}

// Configure applies the level and enabled options.
func (h *MemoryHandler) Configure(section properties.Section) error {
	opts := memoryOptions{Level: LevelTrace, Enabled: true}
	if err := BindOptions(section, &opts); err != nil {
		return err
	}
	h.level.Store(int32(opts.Level))
	h.enabled.Store(opts.Enabled)
	return nil
}

// Enabled reports whether level passes the handler threshold.
func (h *MemoryHandler) Enabled(level Level) bool {
	return h.enabled.Load() && level >= Level(h.level.Load())
}

// Emit stores r.
func (h *MemoryHandler) Emit(r Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

// Records returns a copy of the stored records in emission order.
func (h *MemoryHandler) Records() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Messages returns the message of every stored record in emission order.
func (h *MemoryHandler) Messages() []string {
	records := h.Records()
	msgs := make([]string, len(records))
	for i, r := range records {
		msgs[i] = r.Message
	}
	return msgs
}

// Reset discards the stored records.
func (h *MemoryHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = nil
}

// MemoryHandlerName is the name [NewTestHelper] registers its handler under.
const MemoryHandlerName = "memory"

// TestHelper provides an isolated [Service] whose records are captured in
// a [MemoryHandler].
type TestHelper struct {
	Service *Service
	Memory  *MemoryHandler
}

// NewTestHelper creates a [TestHelper]. The service discards its own
// diagnostics unless opts say otherwise, exits via t.Fatalf instead of
// terminating the test binary, and is shut down when the test ends.
func NewTestHelper(t *testing.T, opts ...Option) *TestHelper {
	t.Helper()

	defaultOpts := []Option{
		WithDiagnostics(nil),
		WithExitFunc(func(code int) { t.Fatalf("unexpected exit with code %d", code) }),
	}
	svc, err := NewService(append(defaultOpts, opts...)...)
	if err != nil {
		t.Fatalf("create log service: %v", err)
	}

	mem := NewMemoryHandler()
	if err = svc.AddHandler(MemoryHandlerName, mem); err != nil {
		t.Fatalf("add memory handler: %v", err)
	}
	t.Cleanup(func() { _ = svc.Shutdown(context.Background()) })

	return &TestHelper{Service: svc, Memory: mem}
}

// Logger returns the named logger of the helper's service.
func (th *TestHelper) Logger(name string) *Logger {
	return th.Service.GetLogger(name)
}

// Records returns every captured record.
func (th *TestHelper) Records() []Record {
	return th.Memory.Records()
}

// LastRecord returns the most recent record and false when none was
// captured.
func (th *TestHelper) LastRecord() (Record, bool) {
	records := th.Memory.Records()
	if len(records) == 0 {
		return Record{}, false
	}
	return records[len(records)-1], true
}

// ContainsMessage reports whether any captured record has message msg.
func (th *TestHelper) ContainsMessage(msg string) bool {
	for _, m := range th.Memory.Messages() {
		if m == msg {
			return true
		}
	}
	return false
}

// Reset discards the captured records.
func (th *TestHelper) Reset() {
	th.Memory.Reset()
}
