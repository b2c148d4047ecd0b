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

// Package loader implements the process catalog of lazily imported modules.
//
// Modules are registered as factories and constructed on first Import.
// Concurrent first imports of the same path share one factory call;
// the result is cached for the lifetime of the loader (or until Reset).
package loader

import (
	"errors"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"dirpx.dev/symx/apis"
	"dirpx.dev/symx/utils/dotpath"
)

var (
	// ErrEmptyPath is returned when an empty module path is provided.
	ErrEmptyPath = errors.New("symx(loader): empty module path provided")
	// ErrInvalidPath is returned when a module path is malformed.
	ErrInvalidPath = errors.New("symx(loader): invalid module path provided")
	// ErrNilFactory is returned when a nil factory is provided.
	ErrNilFactory = errors.New("symx(loader): nil factory provided")
	// ErrConflictingRegistration indicates an attempt to register a path twice.
	ErrConflictingRegistration = errors.New("symx(loader): module path already registered")
	// ErrDisallowedModule indicates a path whose root is not in Config.AllowedRoots.
	ErrDisallowedModule = errors.New("symx(loader): module root not allowed")
	// ErrNilModule indicates a factory that returned neither a module nor an error.
	ErrNilModule = errors.New("symx(loader): factory returned nil module")
	// ErrPathMismatch indicates a factory that returned a module with a different path.
	ErrPathMismatch = errors.New("symx(loader): factory returned module with different path")
)

// New constructs an empty Loader. Only AllowedRoots is used from cfg.
func New(cfg apis.Config) apis.Loader {
	return &loader{roots: cfg.AllowedRoots}
}

// loader is a Loader backed by two sync.Maps (factories and loaded modules).
type loader struct {
	// roots is the AllowedRoots allowlist; empty allows all.
	roots []string
	// mu guards write-side consistency and counter.
	mu sync.Mutex
	// factories maps module path to apis.Factory.
	factories sync.Map // map[string]apis.Factory
	// modules caches constructed modules by path.
	modules sync.Map // map[string]apis.Module
	// group collapses concurrent first imports of the same path.
	group singleflight.Group
	// count tracks the number of registered factories.
	count int
}

// Register makes path importable through f.
func (l *loader) Register(path string, f apis.Factory) error {
	if path == "" {
		return ErrEmptyPath
	}
	if dotpath.Validate(path) != nil {
		return ErrInvalidPath
	}
	if f == nil {
		return ErrNilFactory
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.factories.Load(path); ok {
		return ErrConflictingRegistration
	}
	l.factories.Store(path, f)
	l.count++
	return nil
}

// Import returns the module registered at path, constructing it on first use.
func (l *loader) Import(path string) (apis.Module, error) {
	switch {
	case path == "":
		return nil, &apis.ImportError{Path: path, Err: ErrEmptyPath}
	case dotpath.Validate(path) != nil:
		return nil, &apis.ImportError{Path: path, Err: ErrInvalidPath}
	case !dotpath.Allowed(path, l.roots):
		return nil, &apis.ImportError{Path: path, Err: ErrDisallowedModule}
	}

	// Fast path: already constructed.
	if m, ok := l.modules.Load(path); ok {
		return m.(apis.Module), nil
	}

	v, err, _ := l.group.Do(path, func() (any, error) {
		// Re-check: a previous flight may have finished between Load and Do.
		if m, ok := l.modules.Load(path); ok {
			return m, nil
		}
		f, ok := l.factories.Load(path)
		if !ok {
			return nil, &apis.ImportError{Path: path, Err: apis.ErrModuleNotFound}
		}
		m, err := f.(apis.Factory)()
		if err != nil {
			return nil, &apis.ImportError{Path: path, Err: err}
		}
		if m == nil {
			return nil, &apis.ImportError{Path: path, Err: ErrNilModule}
		}
		if m.Path() != path {
			return nil, &apis.ImportError{Path: path, Err: ErrPathMismatch}
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		// Reset may have dropped the registration while the factory ran.
		if _, ok := l.factories.Load(path); !ok {
			return nil, &apis.ImportError{Path: path, Err: apis.ErrModuleNotFound}
		}
		l.modules.Store(path, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(apis.Module), nil
}

// Entries returns a snapshot of registrations sorted by path.
func (l *loader) Entries() []apis.ModuleEntry {
	entries := make([]apis.ModuleEntry, 0, l.Count())
	l.factories.Range(func(key, value any) bool {
		_, loaded := l.modules.Load(key)
		entries = append(entries, apis.ModuleEntry{
			Path:    key.(string),
			Factory: value.(apis.Factory),
			Loaded:  loaded,
		})
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}

// Count returns the number of registered modules.
func (l *loader) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Reset forgets every registration and cached module.
func (l *loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.factories.Clear()
	l.modules.Clear()
	l.count = 0
}
