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

package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"rivaas.dev/logservice/properties/codec"
)

// OSEnvVar loads properties from environment variables that start with a
// prefix. The prefix is stripped and the rest is split on underscores:
// with prefix "APP_", APP_LH_CONSOLE_LEVEL=debug yields lh.console.level.
type OSEnvVar struct {
	prefix  string
	environ func() []string
	decoder codec.Decoder
}

// OSEnvVarOption configures an [OSEnvVar].
type OSEnvVarOption func(*OSEnvVar)

// WithEnviron replaces [os.Environ] as the source of KEY=VALUE pairs.
func WithEnviron(environ func() []string) OSEnvVarOption {
	return func(e *OSEnvVar) { e.environ = environ }
}

// NewOSEnvVar creates an [OSEnvVar] source for prefix.
func NewOSEnvVar(prefix string, opts ...OSEnvVarOption) *OSEnvVar {
	e := &OSEnvVar{
		prefix:  prefix,
		environ: os.Environ,
		decoder: codec.EnvVarCodec{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load decodes the matching environment variables.
func (e *OSEnvVar) Load(context.Context) (map[string]any, error) {
	env := e.environ()
	matched := make([]string, 0, len(env))
	for _, kv := range env {
		if !strings.HasPrefix(kv, e.prefix) {
			continue
		}
		matched = append(matched, strings.TrimPrefix(kv, e.prefix))
	}

	var conf map[string]any
	if err := e.decoder.Decode([]byte(strings.Join(matched, "\n")), &conf); err != nil {
		return nil, fmt.Errorf("failed to decode environment variables: %w", err)
	}
	return conf, nil
}
