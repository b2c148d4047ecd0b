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

// Env is the live context a resolution runs against.
// Resolvers are built once per package; Env is supplied per call so that
// configuration, loader and notifier swaps take effect immediately.
type Env struct {
	// Config holds the resolution knobs.
	Config Config
	// Loader imports forward targets.
	Loader Loader
	// Notifier receives deprecation notices. Nil disables notices.
	Notifier Notifier
	// Trail lists the forwards already followed by the resolution in
	// progress; empty for a direct lookup.
	Trail []Hop
}

// Resolver coordinates strategies to resolve names of a single package.
// Typical chain: Static -> Lookup -> Deprecated -> Fallback.
type Resolver interface {
	// Resolve returns the object called name.
	// Unknown names yield *AttributeError.
	Resolve(name string, env Env) (any, error)

	// Names returns every name the resolver can enumerate, sorted and unique.
	Names() []string
}
