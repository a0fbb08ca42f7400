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
)

// Sentinel errors, matched with [errors.Is].
var (
	// ErrInvalidLevel indicates a level name that [ParseLevel] does not accept.
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrUnknownOption indicates a configuration key the handler does not know.
	ErrUnknownOption = errors.New("unknown option")

	// ErrInvalidOption indicates an option value outside its allowed set,
	// e.g. an unsupported console output or an unknown format token.
	ErrInvalidOption = errors.New("invalid option value")

	// ErrHandlerExists indicates [Service.AddHandler] was called with a name
	// that is already registered.
	ErrHandlerExists = errors.New("handler already registered")

	// ErrHandlerNotFound indicates [Service.RemoveHandler] was called with an
	// unknown name.
	ErrHandlerNotFound = errors.New("handler not found")

	// ErrNilHandler indicates a nil [Handler] or a factory that returned nil.
	ErrNilHandler = errors.New("handler is nil")

	// ErrServiceShutdown indicates the service has been shut down via
	// [Service.Shutdown]. Emissions after shutdown are dropped silently;
	// only operations that mutate the service return this error.
	ErrServiceShutdown = errors.New("log service is shut down")
)

// ConfigError reports a configuration value that could not be applied.
// Key is the full dotted key, e.g. "lh.console.level".
type ConfigError struct {
	Key   string
	Value string
	Err   error
}

// Error returns a formatted error message naming the offending key.
func (e *ConfigError) Error() string {
	if errors.Is(e.Err, ErrUnknownOption) {
		return fmt.Sprintf("configuration key %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("configuration key %s=%q: %v", e.Key, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// HandlerWriteError reports a handler that failed, or panicked, while
// emitting a record. It is reported on the service diagnostics logger and
// never returned to the emitting caller.
type HandlerWriteError struct {
	Handler string
	Level   Level
	Logger  string
	Err     error
}

// Error returns a formatted error message with context information.
func (e *HandlerWriteError) Error() string {
	return fmt.Sprintf("handler %q failed to emit %s record from logger %q: %v",
		e.Handler, e.Level, e.Logger, e.Err)
}

// Unwrap returns the underlying error.
func (e *HandlerWriteError) Unwrap() error {
	return e.Err
}
