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

package strategy

import (
	"maps"
	"slices"

	"dirpx.dev/symx/apis"
)

// NewStaticStrategy creates an apis.Strategy over the names a package defines itself.
// The map is copied.
func NewStaticStrategy(symbols map[string]any) apis.Strategy {
	s := &staticStrategy{symbols: maps.Clone(symbols)}
	s.names = slices.Sorted(maps.Keys(s.symbols))
	return s
}

// staticStrategy is the normal namespace lookup: if the package defines name,
// return it and stop the chain. No loading, no notices.
type staticStrategy struct {
	symbols map[string]any
	names   []string
}

// Ensure staticStrategy implements apis.Strategy.
var _ apis.Strategy = (*staticStrategy)(nil)

// TryResolve returns the statically defined symbol called name.
func (s *staticStrategy) TryResolve(name string, _ apis.Env) (any, bool, error) {
	v, ok := s.symbols[name]
	return v, ok, nil
}

// Names returns the statically defined names.
func (s *staticStrategy) Names() []string { return slices.Clone(s.names) }
