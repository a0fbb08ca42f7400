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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"dario.cat/mergo"
	"github.com/prometheus/client_golang/prometheus"

	"rivaas.dev/logservice/properties"
)

// Configuration roots read by [Service.Configure].
const (
	// HandlerRoot prefixes handler options: "lh.<handler>.<option>".
	HandlerRoot = "lh"

	// ServiceLevelKey sets the threshold of loggers created afterwards.
	ServiceLevelKey = "logger.service.level"
)

type namedHandler struct {
	name    string
	handler Handler
}

// Service owns the logger registry and the ordered handler list, and
// dispatches every accepted record to every handler.
//
// Thread-safe: all methods may be called concurrently. The handler list is
// guarded by a read/write lock held for reading during dispatch, so
// configuration changes wait for in-flight emissions.
type Service struct {
	mu       sync.RWMutex // guards handlers and options
	handlers []namedHandler
	options  map[string]map[string]string // accumulated options per handler

	loggersMu sync.RWMutex
	loggers   map[string]*Logger

	factories    map[string]HandlerFactory
	defaultLevel atomic.Int32
	shutdown     atomic.Bool

	diag       *slog.Logger
	registerer prometheus.Registerer
	metrics    *serviceMetrics
	exit       func(code int)
	now        func() time.Time
}

// NewService creates an isolated service with no handlers.
//
// Errors:
//   - Returns error if metrics registration fails
func NewService(opts ...Option) (*Service, error) {
	s := &Service{
		options:   make(map[string]map[string]string),
		loggers:   make(map[string]*Logger),
		factories: make(map[string]HandlerFactory),
		diag: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})),
		exit: os.Exit,
		now:  time.Now,
	}
	s.defaultLevel.Store(int32(LevelInfo))

	for _, opt := range opts {
		opt(s)
	}

	if s.exit == nil {
		s.exit = os.Exit
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.registerer != nil {
		m, err := newServiceMetrics(s.registerer)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		s.metrics = m
	}

	return s, nil
}

// MustNewService is like [NewService] but panics on error.
func MustNewService(opts ...Option) *Service {
	s, err := NewService(opts...)
	if err != nil {
		panic(fmt.Sprintf("logging.MustNewService: %v", err))
	}
	return s
}

var (
	defaultMu      sync.Mutex
	defaultService atomic.Pointer[Service]
)

// Default returns the process-wide service, creating it on first use.
// Concurrent first calls all observe the same instance.
func Default() *Service {
	if s := defaultService.Load(); s != nil {
		return s
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if s := defaultService.Load(); s != nil {
		return s
	}
	s := MustNewService()
	defaultService.Store(s)
	return s
}

// SetDefault replaces the process-wide service. Passing nil has the same
// effect as [ResetDefault].
func SetDefault(s *Service) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultService.Store(s)
}

// ResetDefault discards the process-wide service so that the next
// [Default] call creates a fresh one. It does not shut the old one down.
func ResetDefault() {
	SetDefault(nil)
}

// Configure applies p to the service.
//
// Keys of the form "lh.<handler>.<option>" are grouped by handler and
// handlers are visited in name order. A section naming neither a registered
// handler nor a known handler variant is ignored. For a known handler, the section is merged into the
// options accumulated from earlier calls (later values win per option key)
// and the handler is reconfigured with the merged map. A handler not yet
// registered is created, set up, configured and appended; when its
// configuration fails it stays registered with defaults.
//
// Repeated calls are cumulative and never remove handlers.
// "logger.service.level" sets the threshold of loggers created afterwards.
//
// Errors:
//   - [ErrServiceShutdown] after [Service.Shutdown]
//   - [*ConfigError] for each invalid key; one handler's failure does not
//     prevent the others from being configured
func (s *Service) Configure(p *properties.Properties) error {
	if s.shutdown.Load() {
		return ErrServiceShutdown
	}
	if p == nil {
		return nil
	}

	var errs []error

	if v, ok := p.Get(ServiceLevelKey); ok {
		level, err := ParseLevel(v)
		if err != nil {
			errs = append(errs, &ConfigError{Key: ServiceLevelKey, Value: v, Err: err})
		} else {
			s.SetDefaultLevel(level)
		}
	}

	sections := p.Sections(HandlerRoot)
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.configureHandler(name, sections[name]); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *Service) configureHandler(name string, section properties.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	var factory HandlerFactory
	if i < 0 {
		f, ok := s.factory(name)
		if !ok {
			s.diag.Debug("ignoring configuration for unknown handler",
				"handler", name, "options", len(section.Values))
			return nil
		}
		factory = f
	}

	merged := make(map[string]string, len(section.Values))
	if prev := s.options[name]; prev != nil {
		if err := mergo.Merge(&merged, prev); err != nil {
			return fmt.Errorf("merge options for handler %q: %w", name, err)
		}
	}
	if err := mergo.Merge(&merged, section.Values, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge options for handler %q: %w", name, err)
	}
	candidate := properties.Section{Prefix: section.Prefix, Values: merged}

	// registered handlers are reconfigured whether or not a factory exists
	if i >= 0 {
		if err := s.handlers[i].handler.Configure(candidate); err != nil {
			return err
		}
		s.options[name] = merged
		return nil
	}

	h := factory()
	if h == nil {
		return fmt.Errorf("%w: factory for %q", ErrNilHandler, name)
	}
	if err := setup(h); err != nil {
		return fmt.Errorf("setup handler %q: %w", name, err)
	}

	err := h.Configure(candidate)
	if err == nil {
		s.options[name] = merged
	}
	s.handlers = append(s.handlers, namedHandler{name: name, handler: h})
	s.diag.Debug("handler registered", "handler", name)

	return err
}

func (s *Service) factory(name string) (HandlerFactory, bool) {
	if f, ok := s.factories[name]; ok && f != nil {
		return f, true
	}
	return lookupFactory(name)
}

// indexOf must be called with s.mu held.
func (s *Service) indexOf(name string) int {
	return slices.IndexFunc(s.handlers, func(nh namedHandler) bool { return nh.name == name })
}

func setup(h Handler) error {
	if su, ok := h.(setupper); ok {
		return su.Setup()
	}
	return nil
}

// AddHandler registers a configured handler under name. It runs the
// handler's Setup first, if it has one; a failing Setup keeps it out.
//
// Errors:
//   - [ErrNilHandler] if h is nil
//   - [ErrHandlerExists] if name is taken
//   - [ErrServiceShutdown] after [Service.Shutdown]
func (s *Service) AddHandler(name string, h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	if s.shutdown.Load() {
		return ErrServiceShutdown
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrHandlerExists, name)
	}
	if err := setup(h); err != nil {
		return fmt.Errorf("setup handler %q: %w", name, err)
	}
	s.handlers = append(s.handlers, namedHandler{name: name, handler: h})
	return nil
}

// RemoveHandler unregisters the handler and closes it when it implements
// [io.Closer]. Options accumulated for it are forgotten.
//
// Errors:
//   - [ErrHandlerNotFound] if name is not registered
//   - The error returned by Close
func (s *Service) RemoveHandler(name string) error {
	s.mu.Lock()
	i := s.indexOf(name)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrHandlerNotFound, name)
	}
	h := s.handlers[i].handler
	s.handlers = slices.Delete(s.handlers, i, i+1)
	delete(s.options, name)
	s.mu.Unlock()

	if c, ok := h.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close handler %q: %w", name, err)
		}
	}
	return nil
}

// Handlers returns the registered handler names in registration order.
func (s *Service) Handlers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.handlers))
	for i, nh := range s.handlers {
		names[i] = nh.name
	}
	return names
}

// Handler returns the handler registered under name.
func (s *Service) Handler(name string) (Handler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(name); i >= 0 {
		return s.handlers[i].handler, true
	}
	return nil, false
}

// GetLogger returns the logger registered under name, creating it with
// the default level on first use. The same name always yields the same
// *Logger.
func (s *Service) GetLogger(name string) *Logger {
	s.loggersMu.RLock()
	l, ok := s.loggers[name]
	s.loggersMu.RUnlock()
	if ok {
		return l
	}

	s.loggersMu.Lock()
	defer s.loggersMu.Unlock()

	if l, ok = s.loggers[name]; ok {
		return l
	}
	l = newLogger(s, name, s.DefaultLevel())
	s.loggers[name] = l
	s.metrics.setLoggers(len(s.loggers))
	return l
}

// Loggers returns the names of all registered loggers in sorted order.
func (s *Service) Loggers() []string {
	s.loggersMu.RLock()
	defer s.loggersMu.RUnlock()

	names := make([]string, 0, len(s.loggers))
	for name := range s.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetDefaultLevel sets the threshold given to loggers created afterwards.
// Existing loggers keep their level.
func (s *Service) SetDefaultLevel(level Level) {
	s.defaultLevel.Store(int32(level))
}

// DefaultLevel returns the threshold given to new loggers.
func (s *Service) DefaultLevel() Level {
	return Level(s.defaultLevel.Load())
}

// dispatch forwards r to every enabled handler in registration order.
// Handler failures are reported and never stop delivery.
func (s *Service) dispatch(r Record) {
	if s.shutdown.Load() {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, nh := range s.handlers {
		s.emit(nh, r)
	}
}

func (s *Service) emit(nh namedHandler, r Record) {
	defer func() {
		if p := recover(); p != nil {
			s.reportWriteError(nh.name, r, fmt.Errorf("handler panicked: %v", p))
		}
	}()

	if !nh.handler.Enabled(r.Level) {
		return
	}
	if err := nh.handler.Emit(r); err != nil {
		s.reportWriteError(nh.name, r, err)
		return
	}
	s.metrics.recordEmitted(nh.name, r.Level)
}

func (s *Service) reportWriteError(handler string, r Record, err error) {
	werr := &HandlerWriteError{Handler: handler, Level: r.Level, Logger: r.Logger, Err: err}
	s.metrics.recordHandlerError(handler)
	s.diag.Error("log handler write failed",
		"handler", handler,
		"logger", r.Logger,
		"level", r.Level.String(),
		"error", werr,
	)
}

// Shutdown stops dispatch and closes every handler that implements
// [io.Closer]. Records emitted afterwards are dropped. Calling Shutdown
// more than once is a no-op.
//
// Errors:
//   - Returns the joined Close errors, and ctx.Err() if ctx is done before
//     every handler was closed
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.shutdown.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	handlers := s.handlers
	s.handlers = nil
	s.mu.Unlock()

	var errs []error
	for _, nh := range handlers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if c, ok := nh.handler.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close handler %q: %w", nh.name, err))
			}
		}
	}

	return errors.Join(errs...)
}

// IsShutdown reports whether [Service.Shutdown] has been called.
func (s *Service) IsShutdown() bool {
	return s.shutdown.Load()
}

// DebugInfo returns a snapshot of the service state for troubleshooting.
func (s *Service) DebugInfo() map[string]any {
	s.loggersMu.RLock()
	loggerCount := len(s.loggers)
	s.loggersMu.RUnlock()

	return map[string]any{
		"handlers":      s.Handlers(),
		"loggers":       loggerCount,
		"default_level": s.DefaultLevel().String(),
		"shutdown":      s.shutdown.Load(),
	}
}
