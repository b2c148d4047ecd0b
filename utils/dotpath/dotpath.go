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

package dotpath

import (
	"errors"
	"slices"
	"strings"
	"unicode"
)

var (
	// ErrEmptyPath is returned when an empty module path is provided.
	ErrEmptyPath = errors.New("dotpath: empty path")
	// ErrInvalidPath indicates a path with an empty segment
	// (leading, trailing or doubled dot) or a segment containing whitespace.
	ErrInvalidPath = errors.New("dotpath: invalid path")
	// ErrInvalidName indicates a symbol name that is empty, dotted or contains whitespace.
	ErrInvalidName = errors.New("dotpath: invalid symbol name")
)

// Validate checks that path is a dotted module path such as "pkg.new_home".
//
// Rules:
//   - path must be non-empty;
//   - every dot-separated segment must be non-empty;
//   - segments must not contain whitespace or '/'.
func Validate(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	for seg := range strings.SplitSeq(path, ".") {
		if seg == "" || strings.IndexFunc(seg, invalidRune) >= 0 {
			return ErrInvalidPath
		}
	}
	return nil
}

// ValidateName checks that name can be used as a symbol name.
func ValidateName(name string) error {
	if name == "" || strings.IndexByte(name, '.') >= 0 || strings.IndexFunc(name, invalidRune) >= 0 {
		return ErrInvalidName
	}
	return nil
}

// Root returns the first segment of path: "pkg.tools.json" -> "pkg".
func Root(path string) string {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return path
}

// Allowed reports whether the root of path is one of roots.
// An empty roots list allows everything.
func Allowed(path string, roots []string) bool {
	if len(roots) == 0 {
		return true
	}
	return slices.Contains(roots, Root(path))
}

func invalidRune(r rune) bool {
	return unicode.IsSpace(r) || r == '/'
}
