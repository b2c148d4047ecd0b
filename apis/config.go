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

// Config carries read-only resolution knobs shared by loaders, strategies and notifiers.
// It is passed by value and should be treated as immutable by implementations;
// AllowedRoots in particular must not be mutated after it is handed over.
type Config struct {
	// Policy controls how often deprecation notices are emitted.
	Policy NoticePolicy

	// AllowedRoots restricts which top-level module roots may be imported.
	// An empty list allows every root.
	AllowedRoots []string

	// Since is the version in which forwarded names became deprecated.
	// It is copied into every Notice.
	Since string

	// Removal is the version in which forwarded names are expected to disappear.
	// It is copied into every Notice.
	Removal string
}
