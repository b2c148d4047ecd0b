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

// NewDeprecatedStrategy creates an apis.Strategy that redirects legacy names
// through reg and emits a deprecation notice on every successful redirect
// (subject to env.Config.Policy).
func NewDeprecatedStrategy(from string, reg apis.Registry) apis.Strategy {
	return &deprecatedStrategy{reg: reg, ann: announcer{from: from}}
}

// deprecatedStrategy is the redirector for names that moved to another module.
type deprecatedStrategy struct {
	reg apis.Registry
	ann announcer
}

// Ensure deprecatedStrategy implements apis.Strategy.
var _ apis.Strategy = (*deprecatedStrategy)(nil)

// TryResolve forwards name to its new home and announces the redirect.
// Failed forwards are returned as errors and never announced.
func (s *deprecatedStrategy) TryResolve(name string, env apis.Env) (any, bool, error) {
	if s.reg == nil {
		return nil, false, nil
	}
	target, ok := s.reg.Lookup(name)
	if !ok {
		return nil, false, nil
	}
	v, err := forward(s.ann.from, name, target, env)
	if err != nil {
		return nil, true, err
	}
	s.ann.announce(name, target, env)
	return v, true, nil
}

// Names returns the legacy names.
func (s *deprecatedStrategy) Names() []string {
	return registryNames(s.reg)
}
