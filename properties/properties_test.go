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

//go:build !integration

package properties

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperties_SetGet(t *testing.T) {
	t.Parallel()

	p := New()
	p.Set("lh.console.level", "debug")
	p.Set("Lh.Console.Level", "error")

	v, ok := p.Get("lh.console.level")
	assert.True(t, ok)
	assert.Equal(t, "debug", v)

	v, ok = p.Get("Lh.Console.Level")
	assert.True(t, ok, "keys are case-sensitive")
	assert.Equal(t, "error", v)

	_, ok = p.Get("lh.console.color")
	assert.False(t, ok)
	assert.Equal(t, "false", p.GetOr("lh.console.color", "false"))
}

func TestProperties_KeysKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	p := New()
	p.Set("b", "1")
	p.Set("a", "2")
	p.Set("c", "3")
	p.Set("b", "4")

	assert.Equal(t, []string{"b", "a", "c"}, p.Keys())
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "4", p.GetOr("b", ""))

	p.Delete("a")
	p.Delete("missing")
	assert.Equal(t, []string{"b", "c"}, p.Keys())
}

func TestProperties_ZeroValueIsUsable(t *testing.T) {
	t.Parallel()

	var p Properties
	_, ok := p.Get("x")
	assert.False(t, ok)

	p.Set("x", "y")
	assert.Equal(t, "y", p.GetOr("x", ""))
}

func TestProperties_Bool(t *testing.T) {
	t.Parallel()

	p := New()
	p.Set("on", "true")
	p.Set("off", "FALSE")
	p.Set("bad", "maybe")

	b, err := p.Bool("on", false)
	require.NoError(t, err)
	assert.True(t, b)

	b, err = p.Bool("off", true)
	require.NoError(t, err)
	assert.False(t, b)

	b, err = p.Bool("absent", true)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = p.Bool("bad", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)
}

func TestProperties_Merge(t *testing.T) {
	t.Parallel()

	p := New()
	p.Set("lh.console.level", "info")
	p.Set("lh.console.color", "true")

	other := New()
	other.Set("lh.console.level", "warn")
	other.Set("lh.console.output", "stderr")

	p.Merge(other)
	p.Merge(nil)

	assert.Equal(t, "warn", p.GetOr("lh.console.level", ""))
	assert.Equal(t, "true", p.GetOr("lh.console.color", ""))
	assert.Equal(t, "stderr", p.GetOr("lh.console.output", ""))
}

func TestProperties_Sections(t *testing.T) {
	t.Parallel()

	p := New()
	p.Set("lh.console.level", "debug")
	p.Set("lh.console.color", "true")
	p.Set("lh.console.format.time", "rfc3339")
	p.Set("lh.file.path", "/tmp/x.log")
	p.Set("lh.orphan", "ignored")
	p.Set("lh..level", "ignored")
	p.Set("logger.service.level", "warn")

	sections := p.Sections("lh")
	require.Len(t, sections, 2)

	console := sections["console"]
	assert.Equal(t, "lh.console", console.Prefix)
	assert.Equal(t, map[string]string{
		"level":       "debug",
		"color":       "true",
		"format.time": "rfc3339",
	}, console.Values)
	assert.Equal(t, "lh.console.level", console.Key("level"))

	assert.Equal(t, map[string]string{"path": "/tmp/x.log"}, sections["file"].Values)

	svc := p.Sections("logger")
	assert.Equal(t, "warn", svc["service"].Values["level"])
}

func TestFromMap(t *testing.T) {
	t.Parallel()

	p, err := FromMap(map[string]any{
		"lh": map[string]any{
			"console": map[string]any{
				"level": "debug",
				"color": true,
			},
		},
		"logger": map[any]any{
			"service": map[string]any{"level": "warn"},
		},
		"tags": []any{"a", "b"},
		"n":    42,
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", p.GetOr("lh.console.level", ""))
	assert.Equal(t, "true", p.GetOr("lh.console.color", ""))
	assert.Equal(t, "warn", p.GetOr("logger.service.level", ""))
	assert.Equal(t, "a,b", p.GetOr("tags", ""))
	assert.Equal(t, "42", p.GetOr("n", ""))
}

type mapSource map[string]any

func (m mapSource) Load(context.Context) (map[string]any, error) { return m, nil }

type failingSource struct{ err error }

func (f failingSource) Load(context.Context) (map[string]any, error) { return nil, f.err }

func TestLoad(t *testing.T) {
	t.Parallel()

	p, err := Load(context.Background(),
		mapSource{"lh": map[string]any{"console": map[string]any{"level": "info", "color": "true"}}},
		mapSource{"lh": map[string]any{"console": map[string]any{"level": "error"}}},
		mapSource(nil),
	)
	require.NoError(t, err)
	assert.Equal(t, "error", p.GetOr("lh.console.level", ""))
	assert.Equal(t, "true", p.GetOr("lh.console.color", ""))
}

func TestLoad_SourceError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	_, err := Load(context.Background(), mapSource{}, failingSource{err: cause})
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "source[1]", perr.Source)
	assert.Equal(t, "load", perr.Operation)
	assert.ErrorIs(t, err, cause)
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, mapSource{"a": "b"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMustLoad_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustLoad(context.Background(), failingSource{err: errors.New("boom")})
	})
}
