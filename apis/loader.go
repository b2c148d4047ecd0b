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

// Loader is the process catalog of importable modules.
// Implementations must be safe for concurrent use.
type Loader interface {
	// Register makes path importable through f. Registration is lazy:
	// f is not called until the first Import of path.
	Register(path string, f Factory) error
	// Import returns the module for path, constructing and caching it on first use.
	// Failures are reported as *ImportError.
	Import(path string) (Module, error)
	// Entries returns a snapshot of registered modules sorted by path.
	Entries() []ModuleEntry
	// Count returns the number of registered modules.
	Count() int
	// Reset forgets every registration and cached module.
	Reset()
}

// ModuleEntry is a single registration in a Loader snapshot.
type ModuleEntry struct {
	// Path is the registered module path.
	Path string
	// Factory constructs the module.
	Factory Factory
	// Loaded reports whether the module has already been constructed.
	Loaded bool
}
