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

import "time"

// Record is one emission from a [Logger]. It is built per call, never
// modified afterwards, and handed to every handler synchronously.
type Record struct {
	Time    time.Time
	Level   Level
	Logger  string
	Message string

	// Err is set by [Logger.LogError] and friends.
	Err error

	// TraceID and SpanID are set when the record was emitted through a
	// [ContextLogger] whose context carried a valid span.
	TraceID string
	SpanID  string
}
