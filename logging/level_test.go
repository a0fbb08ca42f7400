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

package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "trace", want: LevelTrace},
		{input: "DEBUG", want: LevelDebug},
		{input: "Info", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "warning", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "err", want: LevelError},
		{input: " fatal ", want: LevelFatal},
		{input: "verbose", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_String(t *testing.T) {
	t.Parallel()

	want := []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}
	for i, l := range Levels {
		assert.Equal(t, want[i], l.String())
	}
	assert.Equal(t, "LEVEL(3)", Level(3).String())
}

func TestLevel_TotalOrder(t *testing.T) {
	t.Parallel()

	for i := 1; i < len(Levels); i++ {
		assert.Less(t, Levels[i-1], Levels[i])
	}
}

func TestLevel_Slog(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, LevelDebug.Slog())
	assert.Equal(t, slog.LevelInfo, LevelInfo.Slog())
	assert.Equal(t, slog.LevelWarn, LevelWarn.Slog())
	assert.Equal(t, slog.LevelError, LevelError.Slog())
	assert.Less(t, LevelTrace.Slog(), slog.LevelDebug)
	assert.Greater(t, LevelFatal.Slog(), slog.LevelError)
}

func TestLevel_Text(t *testing.T) {
	t.Parallel()

	b, err := LevelWarn.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "WARN", string(b))

	var l Level
	require.NoError(t, l.UnmarshalText([]byte("error")))
	assert.Equal(t, LevelError, l)

	err = l.UnmarshalText([]byte("loud"))
	assert.ErrorIs(t, err, ErrInvalidLevel)
	assert.Equal(t, LevelError, l, "failed unmarshal keeps the previous value")
}
