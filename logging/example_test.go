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

package logging_test

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/colorprofile"

	"rivaas.dev/logservice/logging"
	"rivaas.dev/logservice/properties"
)

// newExampleService returns a service whose console handler prints
// without timestamps or colors, so example output is deterministic.
func newExampleService() *logging.Service {
	return logging.MustNewService(
		logging.WithDiagnostics(nil),
		logging.WithHandlerFactory(logging.ConsoleHandlerName, func() logging.Handler {
			return logging.NewConsoleHandler(
				logging.WithConsoleOutput(os.Stdout),
				logging.WithColorProfile(colorprofile.NoTTY),
			)
		}),
	)
}

// Example configures the console handler and logs through a named logger.
func Example() {
	svc := newExampleService()
	defer svc.Shutdown(context.Background())

	props := properties.New()
	props.Set("lh.console.level", "debug")
	props.Set("lh.console.format", "{severity} [{name}] {message}")
	if err := svc.Configure(props); err != nil {
		fmt.Println("configure:", err)
		return
	}

	logger := svc.GetLogger("orders")
	logger.SetLevel(logging.LevelDebug)
	logger.Debug("loading cart")
	logger.Info("order placed")
	logger.Trace("not shown")
	// Output:
	// DEBUG [orders] loading cart
	// INFO [orders] order placed
}

// ExampleService_Configure shows that configuration is cumulative: the
// second call changes the level and keeps the format from the first.
func ExampleService_Configure() {
	svc := newExampleService()
	defer svc.Shutdown(context.Background())

	first := properties.New()
	first.Set("lh.console.format", "{severity}: {message}")
	_ = svc.Configure(first)

	second := properties.New()
	second.Set("lh.console.level", "warn")
	_ = svc.Configure(second)

	logger := svc.GetLogger("app")
	logger.Info("hidden")
	logger.Warn("disk almost full")

	fmt.Println(svc.Handlers())
	// Output:
	// WARN: disk almost full
	// [console]
}

// ExampleService_Configure_invalid shows how a bad value is reported.
func ExampleService_Configure_invalid() {
	svc := newExampleService()
	defer svc.Shutdown(context.Background())

	props := properties.New()
	props.Set("lh.console.level", "verbose")

	err := svc.Configure(props)

	var cerr *logging.ConfigError
	if errors.As(err, &cerr) {
		fmt.Println(cerr.Key)
	}
	fmt.Println(errors.Is(err, logging.ErrInvalidLevel))
	// Output:
	// lh.console.level
	// true
}

// ExampleParseLevel demonstrates case-insensitive level parsing.
func ExampleParseLevel() {
	level, err := logging.ParseLevel("Warning")
	fmt.Println(level, err)

	_, err = logging.ParseLevel("loud")
	fmt.Println(errors.Is(err, logging.ErrInvalidLevel))
	// Output:
	// WARN <nil>
	// true
}

// ExampleLogger_Writer turns a stream of lines into log records.
func ExampleLogger_Writer() {
	svc := newExampleService()
	defer svc.Shutdown(context.Background())

	props := properties.New()
	props.Set("lh.console.format", "{name} {severity} {message}")
	_ = svc.Configure(props)

	w := svc.GetLogger("child").Writer(logging.LevelInfo)
	fmt.Fprint(w, "starting\nlistening on :8080\npartial")
	w.Flush()
	// Output:
	// child INFO starting
	// child INFO listening on :8080
	// child INFO partial
}

// ExampleBindOptions decodes a handler section into a tagged struct.
func ExampleBindOptions() {
	var opts struct {
		Level logging.Level `option:"level"`
		Path  string        `option:"path"`
	}

	section := properties.Section{
		Prefix: "lh.file",
		Values: map[string]string{"level": "error", "path": "/var/log/app.log"},
	}
	if err := logging.BindOptions(section, &opts); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(opts.Level, opts.Path)
	// Output: ERROR /var/log/app.log
}
