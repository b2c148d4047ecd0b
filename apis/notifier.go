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

import "strings"

// Notice describes a single access to a deprecated name.
type Notice struct {
	// Name is the accessed symbol.
	Name string
	// From is the path of the package the symbol was requested from.
	From string
	// To is the path of the module that now defines the symbol.
	To string
	// Since is the version the name became deprecated in, if known.
	Since string
	// Removal is the version the name will be removed in, if known.
	Removal string
}

// String renders the notice as a human-readable message.
func (n Notice) String() string {
	var b strings.Builder
	b.WriteString("importing ")
	b.WriteString(n.Name)
	b.WriteString(" from ")
	b.WriteString(n.From)
	b.WriteString(" is deprecated")
	if n.Since != "" {
		b.WriteString(" since ")
		b.WriteString(n.Since)
	}
	if n.Removal != "" {
		b.WriteString(" and will be removed in ")
		b.WriteString(n.Removal)
	}
	b.WriteString("; import ")
	b.WriteString(n.Name)
	b.WriteString(" from ")
	b.WriteString(n.To)
	b.WriteString(" instead")
	return b.String()
}

// Notifier receives deprecation notices. Notify is advisory: it must not
// block and must be safe for concurrent use.
type Notifier interface {
	Notify(n Notice)
}
