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

// Package properties provides a flat, dotted-key configuration container.
//
// Keys are case-sensitive strings such as "lh.console.level". Values are
// plain strings; consumers parse them when they read them. Nothing is
// validated at [Properties.Set] time, so unknown keys simply pass through
// to whoever consumes the container.
//
// # Basic Usage
//
//	props := properties.New()
//	props.Set("lh.console.level", "debug")
//	props.Set("lh.console.color", "true")
//
//	level, ok := props.Get("lh.console.level")
//
// # Sections
//
// A flat key space like "lh.<handler>.<option>" encodes a two-level tree.
// [Properties.Sections] derives that tree once:
//
//	for name, section := range props.Sections("lh") {
//	    // name == "console", section.Values["level"] == "debug"
//	}
//
// # Loading from sources
//
// The container itself never reads files or the environment. Callers that
// want to can use [Load] with sources from the source subpackage:
//
//	props, err := properties.Load(ctx,
//	    source.NewFile("logging.yaml", codec.YAMLCodec{}),
//	    source.NewOSEnvVar("APP_"),
//	)
//
// Later sources override earlier ones key by key.
//
// A Properties value is not safe for concurrent mutation. Build it fully,
// then hand it to its consumer.
package properties
