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

// Package module provides the static apis.Module implementation: a fixed,
// immutable namespace of symbols built once and shared by every importer.
package module

import (
	"errors"
	"maps"
	"slices"

	"dirpx.dev/symx/apis"
	"dirpx.dev/symx/utils/dotpath"
)

var (
	// ErrInvalidPath is returned when the module path is empty or malformed.
	ErrInvalidPath = errors.New("symx(module): invalid module path")
	// ErrInvalidName is returned when a symbol name is empty or malformed.
	ErrInvalidName = errors.New("symx(module): invalid symbol name")
)

// New builds an immutable module at path from symbols. The map is copied.
func New(path string, symbols map[string]any) (apis.Module, error) {
	if dotpath.Validate(path) != nil {
		return nil, ErrInvalidPath
	}
	for name := range symbols {
		if dotpath.ValidateName(name) != nil {
			return nil, ErrInvalidName
		}
	}
	m := &static{path: path, symbols: maps.Clone(symbols)}
	if m.symbols == nil {
		m.symbols = map[string]any{}
	}
	m.names = slices.Sorted(maps.Keys(m.symbols))
	return m, nil
}

// Must is like New but panics on error.
func Must(path string, symbols map[string]any) apis.Module {
	m, err := New(path, symbols)
	if err != nil {
		panic(err)
	}
	return m
}

// Factory returns an apis.Factory producing the module built by New.
// The module is built once; every call returns the same instance.
func Factory(path string, symbols map[string]any) apis.Factory {
	m, err := New(path, symbols)
	return func() (apis.Module, error) {
		return m, err
	}
}

// Of returns an apis.Factory for an already constructed module.
func Of(m apis.Module) apis.Factory {
	return func() (apis.Module, error) { return m, nil }
}

// static is a read-only symbol table.
type static struct {
	path    string
	symbols map[string]any
	names   []string
}

// Ensure static implements apis.Module.
var _ apis.Module = (*static)(nil)

func (m *static) Path() string { return m.path }

func (m *static) Attr(name string) (any, error) {
	if v, ok := m.symbols[name]; ok {
		return v, nil
	}
	return nil, &apis.AttributeError{Module: m.path, Name: name}
}

func (m *static) Names() []string { return slices.Clone(m.names) }
