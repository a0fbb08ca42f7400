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

package codec

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	decoders   = make(map[Type]Decoder)
)

// RegisterDecoder registers decoder under name, replacing any previous one.
func RegisterDecoder(name Type, decoder Decoder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	decoders[name] = decoder
}

// GetDecoder returns the decoder registered under name.
func GetDecoder(name Type) (Decoder, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	decoder, exists := decoders[name]
	if !exists {
		return nil, fmt.Errorf("decoder not found for type: %s", name)
	}
	return decoder, nil
}

// DecoderForPath picks a decoder from a file extension
// (.yaml/.yml, .toml, .json).
func DecoderForPath(path string) (Decoder, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "yml":
		ext = string(TypeYAML)
	case "":
		return nil, fmt.Errorf("cannot infer decoder: %q has no extension", path)
	}
	return GetDecoder(Type(ext))
}
