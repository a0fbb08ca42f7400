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

package properties

import (
	"context"
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// Source produces a nested configuration map. Implementations live in the
// source subpackage.
type Source interface {
	Load(ctx context.Context) (map[string]any, error)
}

// Load reads every source in order, merges their maps so that later
// sources override earlier ones, and flattens the result into dotted keys.
//
// Errors:
//   - Returns error if ctx is nil or canceled
//   - Returns [*Error] if a source fails to load or merge
func Load(ctx context.Context, sources ...Source) (*Properties, error) {
	if ctx == nil {
		return nil, errors.New("context cannot be nil")
	}

	merged := make(map[string]any)
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conf, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "load", err)
		}
		if conf == nil {
			continue
		}

		if err = mergo.Map(&merged, conf, mergo.WithOverride); err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "merge", err)
		}
	}

	p, err := FromMap(merged)
	if err != nil {
		return nil, NewError("merged", "flatten", err)
	}
	return p, nil
}

// MustLoad is like [Load] but panics on error.
func MustLoad(ctx context.Context, sources ...Source) *Properties {
	p, err := Load(ctx, sources...)
	if err != nil {
		panic(err)
	}
	return p
}
