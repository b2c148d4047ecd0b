/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"dirpx.dev/symx/apis"
	"dirpx.dev/symx/utils/dotpath"
)

var (
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("symx(registry): empty name provided")
	// ErrInvalidName is returned when a name is dotted or contains whitespace.
	ErrInvalidName = errors.New("symx(registry): invalid name provided")
	// ErrInvalidPath is returned when the module path is empty or malformed.
	ErrInvalidPath = errors.New("symx(registry): invalid module path provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a name with a different module path.
	ErrConflictingRegistration = errors.New("symx(registry): conflicting name registration")
	// ErrSealed is returned when a sealed registry is written to.
	ErrSealed = errors.New("symx(registry): registry is sealed")
)

// New constructs an empty, writable Registry.
// cfg is accepted for symmetry with the other layers; no knob applies here yet.
func New(_ apis.Config) apis.Registry {
	return &registry{}
}

// FromMap constructs a Registry populated from m and seals it.
func FromMap(cfg apis.Config, m map[string]string) (apis.Registry, error) {
	r := New(cfg)
	for name, path := range m {
		if err := r.Register(name, path); err != nil {
			return nil, err
		}
	}
	r.Seal()
	return r, nil
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps symbol name to module path.
	m sync.Map // map[string]string
	// count tracks the number of registered entries.
	count int
	// sealed flips once; reads skip the mutex.
	sealed atomic.Bool
}

// Register associates name with path.
// It is idempotent for the same (name,path) pair.
func (r *registry) Register(name, path string) error {
	// Validate inputs early.
	if name == "" {
		return ErrEmptyName
	}
	if dotpath.ValidateName(name) != nil {
		return ErrInvalidName
	}
	if dotpath.Validate(path) != nil {
		return ErrInvalidPath
	}

	// Fast read path without locking; sealing is reported before conflicts.
	if store, err := r.admit(name, path); !store {
		return err
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored or sealed meanwhile.
	if store, err := r.admit(name, path); !store {
		return err
	}

	r.m.Store(name, path)
	r.count++
	return nil
}

// admit reports whether name must still be stored under path, or why it
// cannot be. Idempotent re-registration needs no store and is not an error.
func (r *registry) admit(name, path string) (bool, error) {
	old, ok := r.m.Load(name)
	switch {
	case ok && old.(string) == path:
		return false, nil
	case r.sealed.Load():
		return false, ErrSealed
	case ok:
		return false, ErrConflictingRegistration
	}
	return true, nil
}

// Lookup returns the module path for name if present.
func (r *registry) Lookup(name string) (path string, ok bool) {
	if name == "" {
		return "", false
	}
	if v, ok := r.m.Load(name); ok {
		return v.(string), true
	}
	return "", false
}

// Entries returns a snapshot sorted by name.
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Name: key.(string),
			Path: value.(string),
		})
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Seal makes the registry read-only.
func (r *registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed.Store(true)
}

// Sealed reports whether the registry is read-only.
func (r *registry) Sealed() bool {
	return r.sealed.Load()
}

// Reset clears all registered entries.
func (r *registry) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return ErrSealed
	}
	r.m.Clear()
	r.count = 0
	return nil
}
