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

package apis

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNoSuchAttribute is matched by errors for names a module does not define.
	ErrNoSuchAttribute = errors.New("symx: no such attribute")
	// ErrImport is matched by every module import failure.
	ErrImport = errors.New("symx: import failed")
	// ErrModuleNotFound is matched when a module path is not registered.
	ErrModuleNotFound = errors.New("symx: module not found")
	// ErrStaleTarget is matched when a forward points at a module or name that no longer exists.
	ErrStaleTarget = errors.New("symx: stale forward target")
	// ErrRegistryMismatch is matched when an export list and a registry disagree.
	ErrRegistryMismatch = errors.New("symx: export registry mismatch")
	// ErrForwardCycle is matched when a chain of forwards leads back to itself.
	ErrForwardCycle = errors.New("symx: forward cycle")
)

// AttributeError reports a name a module does not define.
type AttributeError struct {
	// Module is the path of the module that was asked.
	Module string
	// Name is the missing symbol.
	Name string
}

// Error implements error.
func (e *AttributeError) Error() string {
	return "symx: module " + strconv.Quote(e.Module) + " has no attribute " + strconv.Quote(e.Name)
}

// Unwrap returns ErrNoSuchAttribute.
func (e *AttributeError) Unwrap() error { return ErrNoSuchAttribute }

// ImportError reports a module that could not be imported.
type ImportError struct {
	// Path is the requested module path.
	Path string
	// Err is the cause, e.g. ErrModuleNotFound or a factory error.
	Err error
}

// Error implements error.
func (e *ImportError) Error() string {
	if e.Err == nil || errors.Is(e.Err, ErrModuleNotFound) {
		return "symx: no module named " + strconv.Quote(e.Path)
	}
	return "symx: cannot import " + strconv.Quote(e.Path) + ": " + e.Err.Error()
}

// Unwrap returns ErrImport and the cause.
func (e *ImportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrImport, ErrModuleNotFound}
	}
	return []error{ErrImport, e.Err}
}

// TargetError reports a forward whose target module or name is gone.
type TargetError struct {
	// Package is the forwarding package path.
	Package string
	// Name is the forwarded symbol.
	Name string
	// Target is the module path the name is forwarded to.
	Target string
	// Err is the underlying *ImportError or *AttributeError.
	Err error
}

// Error implements error.
func (e *TargetError) Error() string {
	return "symx: " + strconv.Quote(e.Package) + " forwards " + strconv.Quote(e.Name) +
		" to " + strconv.Quote(e.Target) + ": " + e.Err.Error()
}

// Unwrap returns ErrStaleTarget and the cause.
func (e *TargetError) Unwrap() []error { return []error{ErrStaleTarget, e.Err} }

// CycleError reports a chain of forwards that revisits a hop.
// The last hop of Trail repeats an earlier one.
type CycleError struct {
	Trail []Hop
}

// Error implements error.
func (e *CycleError) Error() string {
	hops := make([]string, len(e.Trail))
	for i, h := range e.Trail {
		hops[i] = h.String()
	}
	return ErrForwardCycle.Error() + ": " + strings.Join(hops, " -> ")
}

// Unwrap returns ErrForwardCycle.
func (e *CycleError) Unwrap() error { return ErrForwardCycle }
