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
	"reflect"
	"slices"
	"sort"
	"sync"

	"github.com/go-viper/mapstructure/v2"

	"rivaas.dev/logservice/properties"
)

// Handler is a sink that formats and writes accepted records.
//
// Configure receives the handler's complete option map (every "lh.<name>.*"
// key seen so far, with later values winning) and must be all or nothing:
// when it returns an error the handler keeps the configuration it had.
//
// Enabled is consulted before Emit. Emit must be safe for concurrent use.
//
// A handler may also implement Setup() error, called once before it is
// registered, and [io.Closer], called when it is removed or the service
// shuts down.
type Handler interface {
	Configure(section properties.Section) error
	Enabled(level Level) bool
	Emit(r Record) error
}

// HandlerFactory creates a handler in its default configuration.
type HandlerFactory func() Handler

type setupper interface {
	Setup() error
}

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]HandlerFactory)
)

func init() {
	RegisterHandler(ConsoleHandlerName, func() Handler { return NewConsoleHandler() })
}

// RegisterHandler makes a handler variant available to every [Service] under
// name, so that "lh.<name>.*" keys create and configure it. Registering a
// name twice replaces the earlier factory.
//
// It panics if factory is nil.
func RegisterHandler(name string, factory HandlerFactory) {
	if factory == nil {
		panic("logging: RegisterHandler factory is nil for " + name)
	}
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = factory
}

// RegisteredHandlers returns the names of all package-level handler
// variants in sorted order.
func RegisteredHandlers() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupFactory(name string) (HandlerFactory, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// BindOptions decodes the option map of section into target, which must be
// a pointer to a struct whose fields carry `option:"name"` tags. Values are
// decoded weakly ("true" into a bool, "debug" into a [Level]).
//
// Each option is decoded on its own so that every failure can name its key.
// Target fields for options that failed are left unchanged.
//
// Errors:
//   - [*ConfigError] wrapping the decode error for a malformed value
//   - [*ConfigError] wrapping [ErrUnknownOption] for an option with no field
//
// All errors are combined with [errors.Join].
func BindOptions(section properties.Section, target any) error {
	keys := make([]string, 0, len(section.Values))
	for k := range section.Values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var errs []error
	for _, key := range keys {
		value := section.Values[key]
		if err := bindOption(key, value, target); err != nil {
			errs = append(errs, &ConfigError{Key: section.Key(key), Value: value, Err: err})
		}
	}
	return errors.Join(errs...)
}

func bindOption(key, value string, target any) error {
	var hookErr error
	text := mapstructure.TextUnmarshallerHookFunc()

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(func(from, to reflect.Type, data any) (any, error) {
			out, err := text(from, to, data)
			if err != nil {
				hookErr = err
			}
			return out, err
		}),
		Metadata:         &md,
		Result:           target,
		TagName:          "option",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create option decoder: %w", err)
	}

	if err = decoder.Decode(map[string]any{key: value}); err != nil {
		if hookErr != nil {
			return hookErr
		}
		return err
	}
	if slices.Contains(md.Unused, key) {
		return ErrUnknownOption
	}
	return nil
}
