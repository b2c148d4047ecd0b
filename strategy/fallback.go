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
	"errors"

	"dirpx.dev/symx/apis"
)

// NewFallbackStrategy creates an apis.Strategy that looks up any name in the
// module at target and announces every hit as deprecated.
// An empty target yields nil, which resolvers skip.
func NewFallbackStrategy(from, target string) apis.Strategy {
	if target == "" {
		return nil
	}
	return &fallbackStrategy{target: target, ann: announcer{from: from}}
}

// fallbackStrategy is the last resort for names a package no longer lists.
type fallbackStrategy struct {
	target string
	ann    announcer
}

// Ensure fallbackStrategy implements apis.Strategy.
var _ apis.Strategy = (*fallbackStrategy)(nil)

// TryResolve falls through when the fallback module does not define name,
// so the caller gets a plain attribute error for the package itself.
func (s *fallbackStrategy) TryResolve(name string, env apis.Env) (any, bool, error) {
	v, err := forward(s.ann.from, name, s.target, env)
	if err != nil {
		var te *apis.TargetError
		if errors.As(err, &te) {
			var ae *apis.AttributeError
			if errors.As(te.Err, &ae) && ae.Module == s.target {
				return nil, false, nil
			}
		}
		return nil, true, err
	}
	s.ann.announce(name, s.target, env)
	return v, true, nil
}

// Names returns nil: the fallback set is open-ended.
func (*fallbackStrategy) Names() []string { return nil }
