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
	"dirpx.dev/symx/apis"
)

// NewLookupStrategy creates an apis.Strategy that lazily loads names through reg.
// from is the path of the package the strategy serves.
func NewLookupStrategy(from string, reg apis.Registry) apis.Strategy {
	return &lookupStrategy{from: from, reg: reg}
}

// lookupStrategy resolves names listed in a package's lookup table by
// importing the defining module on first access. It never notifies.
type lookupStrategy struct {
	from string
	reg  apis.Registry
}

// Ensure lookupStrategy implements apis.Strategy.
var _ apis.Strategy = (*lookupStrategy)(nil)

// TryResolve forwards name to the module the registry maps it to.
func (s *lookupStrategy) TryResolve(name string, env apis.Env) (any, bool, error) {
	if s.reg == nil {
		return nil, false, nil
	}
	target, ok := s.reg.Lookup(name)
	if !ok {
		return nil, false, nil
	}
	v, err := forward(s.from, name, target, env)
	return v, true, err
}

// Names returns the registry keys.
func (s *lookupStrategy) Names() []string {
	return registryNames(s.reg)
}

func registryNames(reg apis.Registry) []string {
	if reg == nil {
		return nil
	}
	entries := reg.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
