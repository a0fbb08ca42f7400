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
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a [Service].
type Option func(*Service)

// WithDiagnostics sets the logger the service reports its own problems on,
// such as handler write failures and ignored configuration sections.
// Passing nil discards them. The default is a text logger on stderr at
// WARN.
func WithDiagnostics(l *slog.Logger) Option {
	return func(s *Service) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		s.diag = l
	}
}

// WithMetrics registers dispatch metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Service) { s.registerer = reg }
}

// WithExitFunc replaces the function called after a FATAL record is
// emitted. The default is [os.Exit].
func WithExitFunc(fn func(code int)) Option {
	return func(s *Service) { s.exit = fn }
}

// WithHandlerFactory makes a handler variant available to this service
// only, taking precedence over a package-level [RegisterHandler] of the
// same name.
func WithHandlerFactory(name string, factory HandlerFactory) Option {
	return func(s *Service) { s.factories[name] = factory }
}

// WithDefaultLevel sets the threshold of loggers created by the service.
func WithDefaultLevel(level Level) Option {
	return func(s *Service) { s.defaultLevel.Store(int32(level)) }
}

// WithClock replaces the clock used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}
