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

// Package codec provides the decoders used by property sources.
//
// Every decoder turns raw bytes into a nested map[string]any that
// [properties.FromMap] can flatten into dotted keys. The built-in decoders
// register themselves under a [Type] so sources can look them up by name:
//
//	dec, err := codec.GetDecoder(codec.TypeYAML)
package codec
