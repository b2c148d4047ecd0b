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

// Builder composes Loader, Notifier and per-package Resolvers from a Config.
// Implementations may migrate state from previous instances (prev*), or ignore them.
type Builder interface {
	// BuildLoader constructs a Loader for Config. May migrate registrations from prev.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildLoader(cfg Config, prev Loader, ext any) Loader
	// BuildNotifier constructs a Notifier for Config. May reuse prev.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildNotifier(cfg Config, prev Notifier, ext any) Notifier
	// BuildResolver constructs the Resolver for a declared package.
	// It fails when spec is internally inconsistent.
	BuildResolver(cfg Config, spec Spec, ext any) (Resolver, error)
}

// Spec declares a package: its export list, the names it defines itself,
// and the names it forwards to other modules.
type Spec struct {
	// Path is the dotted package path.
	Path string
	// All is the advertised export list. Order is kept, duplicates are tolerated.
	All []string
	// Symbols are names defined directly by the package.
	Symbols map[string]any
	// Lookup maps names to modules they are lazily loaded from, silently.
	Lookup map[string]string
	// Deprecated maps legacy names to the modules that now define them.
	Deprecated map[string]string
	// Fallback, if set, is consulted for any other name, with a notice.
	Fallback string
}
