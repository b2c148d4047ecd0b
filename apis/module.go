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

// Module is an importable namespace of named symbols.
type Module interface {
	// Path returns the dotted module path, e.g. "pkg.new_home".
	Path() string
	// Attr returns the symbol called name. Missing names yield an error
	// matching ErrNoSuchAttribute.
	Attr(name string) (any, error)
	// Names returns every name Attr can resolve, sorted.
	Names() []string
}

// Factory lazily constructs a Module on first import.
// It is invoked at most once per successful load.
type Factory func() (Module, error)

// Exporter is a Module that advertises a curated export list.
type Exporter interface {
	Module
	// All returns the advertised export list in declaration order.
	// Duplicates are preserved.
	All() []string
}

// Forwarder is a namespace whose names may live in other modules.
type Forwarder interface {
	// Path returns the dotted path of the forwarding namespace.
	Path() string
	// Forwards returns every name that is resolved through another module.
	Forwards() []Forward
}

// Forward is a single redirection from a name to the module that defines it.
type Forward struct {
	// Name is the symbol name, identical in both modules.
	Name string
	// Target is the dotted path of the module that defines Name.
	Target string
	// Deprecated reports whether accessing Name emits a deprecation notice.
	Deprecated bool
}

// Relay is a Module that can continue a chain of forwards. Resolving through
// Relay lets forwards across modules detect cycles.
type Relay interface {
	Module
	// AttrVia resolves name like Attr; trail lists the hops already taken.
	AttrVia(name string, trail []Hop) (any, error)
}

// Hop is one step of a forward chain: Name as resolved in Module.
type Hop struct {
	Module string
	Name   string
}

// String returns "module.name".
func (h Hop) String() string { return h.Module + "." + h.Name }
