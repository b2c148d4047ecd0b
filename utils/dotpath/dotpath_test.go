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

package dotpath_test

import (
	"testing"

	"dirpx.dev/symx/utils/dotpath"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"pkg", nil},
		{"pkg.new_home", nil},
		{"langchain_community.tools.json.tool", nil},
		{"", dotpath.ErrEmptyPath},
		{".pkg", dotpath.ErrInvalidPath},
		{"pkg.", dotpath.ErrInvalidPath},
		{"pkg..tools", dotpath.ErrInvalidPath},
		{"pkg.new home", dotpath.ErrInvalidPath},
		{"pkg/tools", dotpath.ErrInvalidPath},
	}
	for _, tc := range cases {
		if got := dotpath.Validate(tc.in); got != tc.want {
			t.Fatalf("Validate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidateName(t *testing.T) {
	for _, ok := range []string{"Old", "JsonSpec", "_private"} {
		if err := dotpath.ValidateName(ok); err != nil {
			t.Fatalf("ValidateName(%q) = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"", "a.b", "has space", "tab\t"} {
		if err := dotpath.ValidateName(bad); err != dotpath.ErrInvalidName {
			t.Fatalf("ValidateName(%q) = %v, want ErrInvalidName", bad, err)
		}
	}
}

func TestRoot(t *testing.T) {
	cases := []struct {
		in, root string
	}{
		{"pkg", "pkg"},
		{"pkg.new_home", "pkg"},
		{"a.b.c", "a"},
	}
	for _, tc := range cases {
		if got := dotpath.Root(tc.in); got != tc.root {
			t.Errorf("Root(%q) = %q, want %q", tc.in, got, tc.root)
		}
	}
}

func TestAllowed(t *testing.T) {
	if !dotpath.Allowed("anything.at.all", nil) {
		t.Fatal("empty roots must allow every path")
	}
	roots := []string{"langchain", "langchain_community"}
	if !dotpath.Allowed("langchain_community.tools", roots) {
		t.Fatal("langchain_community.tools should be allowed")
	}
	if dotpath.Allowed("langchain_core.tools", roots) {
		t.Fatal("langchain_core.tools should not be allowed")
	}
	if dotpath.Allowed("langchainx", []string{"langchain"}) {
		t.Fatal("root match must be exact, not a prefix")
	}
}
