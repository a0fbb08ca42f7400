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
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Properties is an ordered string-keyed configuration container.
//
// Keys are kept in insertion order for [Properties.Keys]; setting an
// existing key updates its value in place without moving it.
type Properties struct {
	values map[string]string
	order  []string
}

// New returns an empty [Properties].
func New() *Properties {
	return &Properties{values: make(map[string]string)}
}

// FromMap builds a [Properties] from a nested map by joining nested keys
// with dots. Leaf values are converted to strings.
//
// Example:
//
//	{"lh": {"console": {"level": "debug", "color": true}}}
//
// becomes lh.console.level=debug and lh.console.color=true.
func FromMap(m map[string]any) (*Properties, error) {
	p := New()
	if err := p.flatten("", m); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Properties) flatten(prefix string, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch v := m[k].(type) {
		case map[string]any:
			if err := p.flatten(key, v); err != nil {
				return err
			}
		case map[any]any:
			nested, err := cast.ToStringMapE(v)
			if err != nil {
				return fmt.Errorf("property %q: %w", key, err)
			}
			if err := p.flatten(key, nested); err != nil {
				return err
			}
		case []any:
			parts, err := cast.ToStringSliceE(v)
			if err != nil {
				return fmt.Errorf("property %q: %w", key, err)
			}
			p.Set(key, strings.Join(parts, ","))
		default:
			s, err := cast.ToStringE(v)
			if err != nil {
				return fmt.Errorf("property %q: %w", key, err)
			}
			p.Set(key, s)
		}
	}

	return nil
}

// Set assigns value to key. Any key and any value are accepted.
func (p *Properties) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, exists := p.values[key]; !exists {
		p.order = append(p.order, key)
	}
	p.values[key] = value
}

// Get returns the value stored under key and whether it was present.
func (p *Properties) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// GetOr returns the value stored under key, or def when the key is absent.
func (p *Properties) GetOr(key, def string) string {
	if v, ok := p.values[key]; ok {
		return v
	}
	return def
}

// Bool parses the value under key as a boolean.
// It returns def when the key is absent and an error when the value does
// not parse.
func (p *Properties) Bool(key string, def bool) (bool, error) {
	v, ok := p.values[key]
	if !ok {
		return def, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def, fmt.Errorf("property %q: %w", key, err)
	}
	return b, nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (p *Properties) Delete(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.order {
		if k == key {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (p *Properties) Len() int {
	return len(p.values)
}

// Keys returns all keys in insertion order.
func (p *Properties) Keys() []string {
	keys := make([]string, len(p.order))
	copy(keys, p.order)
	return keys
}

// Merge copies every key of other into p. Values from other win.
func (p *Properties) Merge(other *Properties) {
	if other == nil {
		return
	}
	for _, k := range other.order {
		p.Set(k, other.values[k])
	}
}

// Section is the option map of one namespace inside a flat key space,
// e.g. every "lh.console.*" key.
type Section struct {
	// Prefix is the dotted namespace, e.g. "lh.console".
	Prefix string
	// Values maps option names (the key suffix after Prefix) to values.
	Values map[string]string
}

// Key returns the full dotted key of option inside the section.
func (s Section) Key(option string) string {
	return s.Prefix + "." + option
}

// Sections splits every key of the form root.<name>.<option> into one
// [Section] per name. The option is everything after the second dot, so it
// may itself contain dots. Keys under other roots, or with fewer than three
// segments, are skipped.
func (p *Properties) Sections(root string) map[string]Section {
	sections := make(map[string]Section)
	rootPrefix := root + "."

	for _, key := range p.order {
		if !strings.HasPrefix(key, rootPrefix) {
			continue
		}
		name, option, found := strings.Cut(strings.TrimPrefix(key, rootPrefix), ".")
		if !found || name == "" || option == "" {
			continue
		}

		s, ok := sections[name]
		if !ok {
			s = Section{Prefix: rootPrefix + name, Values: make(map[string]string)}
			sections[name] = s
		}
		s.Values[option] = p.values[key]
	}

	return sections
}
