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

// Strategy is a pluggable resolution step. A Resolver chains strategies in
// order and stops at the first one that handles the name.
type Strategy interface {
	// TryResolve attempts to resolve name.
	// It returns handled=false to fall through. A non-nil err implies handled.
	TryResolve(name string, env Env) (v any, handled bool, err error)

	// Names returns the names this strategy is known to handle.
	// Open-ended strategies (fallbacks) return nil.
	Names() []string
}
