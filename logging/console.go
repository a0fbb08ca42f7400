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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/colorprofile"

	"rivaas.dev/logservice/properties"
)

// ConsoleHandlerName is the name the console handler is registered under,
// so it is configured by "lh.console.*" keys.
const ConsoleHandlerName = "console"

// Console output targets accepted by the output option.
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// consoleOptions are the options understood under "lh.console.".
type consoleOptions struct {
	Level   Level  `option:"level"`
	Color   bool   `option:"color"`
	Enabled bool   `option:"enabled"`
	Output  string `option:"output"`
	Format  string `option:"format"`
}

func defaultConsoleOptions() consoleOptions {
	return consoleOptions{
		Level:   LevelInfo,
		Enabled: true,
		Output:  OutputStdout,
		Format:  DefaultFormat,
	}
}

// consoleState is an immutable configuration snapshot.
type consoleState struct {
	opts   consoleOptions
	layout layout
	out    io.Writer
}

// ConsoleHandler writes human-readable lines to stdout or stderr.
//
// Options (keys under "lh.console."):
//
//	level    trace|debug|info|warn|error|fatal  (default info)
//	color    true|false                         (default false)
//	enabled  true|false                         (default true)
//	output   stdout|stderr                      (default stdout)
//	format   line template                      (default "{time} {severity} [{name}] {message}")
//
// With color enabled only the severity token is wrapped in an ANSI code.
// The sink goes through a [colorprofile.Writer], so escape codes are
// stripped when the sink is not a terminal or NO_COLOR is set.
//
// Thread-safe: configuration is swapped atomically and writes are
// serialized, so each line reaches the sink whole.
type ConsoleHandler struct {
	state atomic.Pointer[consoleState]
	mu    sync.Mutex // serializes writes to the sink

	sink    io.Writer
	profile *colorprofile.Profile
}

// ConsoleOption configures a [ConsoleHandler].
type ConsoleOption func(*ConsoleHandler)

// WithConsoleOutput sends every line to w regardless of the output option.
func WithConsoleOutput(w io.Writer) ConsoleOption {
	return func(h *ConsoleHandler) { h.sink = w }
}

// WithColorProfile forces the color profile instead of detecting it from
// the sink and environment. Use [colorprofile.TrueColor] to keep ANSI codes
// when writing to a buffer.
func WithColorProfile(p colorprofile.Profile) ConsoleOption {
	return func(h *ConsoleHandler) { h.profile = &p }
}

// NewConsoleHandler creates a console handler in its default configuration.
func NewConsoleHandler(opts ...ConsoleOption) *ConsoleHandler {
	h := &ConsoleHandler{}
	for _, opt := range opts {
		opt(h)
	}

	defaults := defaultConsoleOptions()
	l, _ := parseLayout(defaults.Format)
	h.state.Store(&consoleState{
		opts:   defaults,
		layout: l,
		out:    h.writer(defaults.Output),
	})

	return h
}

// Configure replaces the handler configuration with the defaults overlaid
// by section. On error the previous configuration stays in effect.
//
// Errors:
//   - [*ConfigError] for each invalid or unknown option, joined
func (h *ConsoleHandler) Configure(section properties.Section) error {
	opts := defaultConsoleOptions()
	err := BindOptions(section, &opts)

	var errs []error
	if err != nil {
		errs = append(errs, err)
	}

	output := strings.ToLower(strings.TrimSpace(opts.Output))
	if output != OutputStdout && output != OutputStderr {
		errs = append(errs, &ConfigError{
			Key:   section.Key("output"),
			Value: opts.Output,
			Err:   fmt.Errorf("%w: output must be %s or %s", ErrInvalidOption, OutputStdout, OutputStderr),
		})
	}

	l, lerr := parseLayout(opts.Format)
	if lerr != nil {
		errs = append(errs, &ConfigError{Key: section.Key("format"), Value: opts.Format, Err: lerr})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	opts.Output = output
	h.state.Store(&consoleState{
		opts:   opts,
		layout: l,
		out:    h.writer(output),
	})
	return nil
}

// Enabled reports whether the handler is enabled and level passes its
// threshold.
func (h *ConsoleHandler) Enabled(level Level) bool {
	st := h.state.Load()
	return st.opts.Enabled && level >= st.opts.Level
}

// Emit formats r and writes it as a single line.
func (h *ConsoleHandler) Emit(r Record) error {
	st := h.state.Load()
	if !st.opts.Enabled || r.Level < st.opts.Level {
		return nil
	}

	line := st.layout.format(r, st.opts.Color)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(st.out, line)
	return err
}

// Level returns the configured threshold.
func (h *ConsoleHandler) Level() Level {
	return h.state.Load().opts.Level
}

// writer returns the sink for output wrapped in a color profile writer.
func (h *ConsoleHandler) writer(output string) io.Writer {
	target := h.sink
	if target == nil {
		target = os.Stdout
		if output == OutputStderr {
			target = os.Stderr
		}
	}

	cpw := colorprofile.NewWriter(target, os.Environ())
	if h.profile != nil {
		cpw.Profile = *h.profile
	}
	return cpw
}
