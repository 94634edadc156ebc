// Zaparoo Import
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Import.
//
// Zaparoo Import is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Import is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Import.  If not, see <http://www.gnu.org/licenses/>.

package helpers

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/ZaparooProject/zaparoo-import/pkg/platforms/registry"
)

type fakeKey struct {
	values map[string]any
	path   string
}

// FakeRegistry is an in-memory registry.Reader. Key paths and value names
// are case-insensitive like the real registry.
type FakeRegistry struct {
	keys map[string]*fakeKey
	mu   sync.RWMutex
}

var _ registry.Reader = (*FakeRegistry)(nil)

// NewFakeRegistry returns an empty fake registry.
func NewFakeRegistry() *FakeRegistry {
	return &FakeRegistry{keys: make(map[string]*fakeKey)}
}

func fakeID(root registry.Root, path string) string {
	return root.String() + `\` + strings.ToLower(strings.Trim(path, `\`))
}

func (r *FakeRegistry) key(root registry.Root, path string) *fakeKey {
	id := fakeID(root, path)
	k, ok := r.keys[id]
	if !ok {
		k = &fakeKey{path: strings.Trim(path, `\`), values: make(map[string]any)}
		r.keys[id] = k
	}
	return k
}

// AddKey creates an empty key.
func (r *FakeRegistry) AddKey(root registry.Root, path string) *FakeRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.key(root, path)
	return r
}

// SetString sets a string value, creating the key when needed.
func (r *FakeRegistry) SetString(root registry.Root, path, name, value string) *FakeRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.key(root, path).values[name] = value
	return r
}

// SetInt sets an integer value, creating the key when needed.
func (r *FakeRegistry) SetInt(root registry.Root, path, name string, value uint64) *FakeRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.key(root, path).values[name] = value
	return r
}

func (r *FakeRegistry) StringValue(root registry.Root, path, name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.keys[fakeID(root, path)]
	if !ok {
		return "", registry.ErrNotExist
	}
	for n, v := range k.values {
		if strings.EqualFold(n, name) {
			if s, ok := v.(string); ok {
				return s, nil
			}
		}
	}
	return "", registry.ErrNotExist
}

func (r *FakeRegistry) Values(root registry.Root, path string) (map[string]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.keys[fakeID(root, path)]
	if !ok {
		return nil, registry.ErrNotExist
	}
	return maps.Clone(k.values), nil
}

func (r *FakeRegistry) SubKeys(root registry.Root, path string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	parent := fakeID(root, path)
	prefix := parent + `\`
	parentLen := len(strings.Trim(path, `\`)) + 1

	_, found := r.keys[parent]
	seen := make(map[string]string)
	for id, k := range r.keys {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		found = true
		name, _, _ := strings.Cut(k.path[parentLen:], `\`)
		seen[strings.ToLower(name)] = name
	}
	if !found {
		return nil, registry.ErrNotExist
	}
	names := slices.Collect(maps.Values(seen))
	slices.Sort(names)
	return names, nil
}
