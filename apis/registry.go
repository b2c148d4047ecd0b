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

// Registry maps exported symbol names to the module path that defines them.
// It backs both the lazy lookup table and the deprecation map of a package.
type Registry interface {
	// Register associates name with the module path that defines it.
	// Implementations are idempotent for the same (name, path) pair.
	Register(name, path string) error
	// Lookup returns the module path for name if present.
	Lookup(name string) (path string, ok bool)
	// Entries returns a snapshot sorted by name.
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Seal makes the registry read-only. Further Register calls fail.
	Seal()
	// Sealed reports whether Seal has been called.
	Sealed() bool
	// Reset clears all registered entries. It fails on a sealed registry.
	Reset() error
}

// Entry is a single (name, path) association in a Registry snapshot.
type Entry struct {
	// Name is the exported symbol name.
	Name string
	// Path is the module path that defines Name.
	Path string
}
