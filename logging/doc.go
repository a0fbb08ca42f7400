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

// Package logging provides an in-process log service: a registry of named
// loggers that forward leveled records to configurable handlers.
//
// # Basic Usage
//
//	props := properties.New()
//	props.Set("lh.console.level", "debug")
//	props.Set("lh.console.color", "true")
//
//	svc := logging.Default()
//	if err := svc.Configure(props); err != nil {
//	    log.Fatal(err)
//	}
//
//	logger := svc.GetLogger("orders")
//	logger.SetLevel(logging.LevelDebug)
//	logger.Info("service started")
//
// # Levels
//
// Levels are ordered TRACE < DEBUG < INFO < WARN < ERROR < FATAL. A record
// is forwarded when its level is at or above the logger threshold, and
// each handler applies its own threshold on top of that.
//
// # Configuration
//
// [Service.Configure] reads keys of the form "lh.<handler>.<option>".
// The handler name selects a variant registered with [RegisterHandler]
// ("console" is built in); keys for unknown handlers are ignored.
// Configuration is cumulative: a later call overrides only the options it
// names and never removes handlers.
//
// Console options:
//
//	lh.console.level    trace|debug|info|warn|error|fatal
//	lh.console.color    true|false
//	lh.console.enabled  true|false
//	lh.console.output   stdout|stderr
//	lh.console.format   e.g. "{time} {severity} [{name}] {message}"
//
// Invalid values are reported as [*ConfigError] naming the full key.
//
// # Custom Handlers
//
// Any type implementing [Handler] can be registered by name:
//
//	logging.RegisterHandler("audit", func() logging.Handler { return newAuditHandler() })
//
// or added directly with [Service.AddHandler]. [BindOptions] decodes a
// handler's option map into a tagged struct.
//
// # Trace Correlation
//
//	logger.WithContext(ctx).Info("handling request")
//
// attaches the OpenTelemetry trace and span IDs found in ctx.
//
// # Testing
//
//	th := logging.NewTestHelper(t)
//	th.Logger("test").Info("hello")
//	assert.True(t, th.ContainsMessage("hello"))
package logging
