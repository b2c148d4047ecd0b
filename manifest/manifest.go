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

// Package manifest describes packages and modules declaratively.
//
// A manifest is written in YAML or HCL and holds an optional config section,
// module declarations (a path and the names it defines) and package
// declarations (exports, own symbols, lookups, deprecated redirects and an
// optional fallback). Names declared in a manifest are backed by *Symbol
// placeholders, which is enough to check export registries and forwards
// without the real objects.
package manifest

import (
	"errors"
	"fmt"
	"slices"

	"dirpx.dev/symx"
	"dirpx.dev/symx/apis"
	"dirpx.dev/symx/config"
	"dirpx.dev/symx/module"
)

var (
	// ErrUnknownFormat indicates a file extension that is neither YAML nor HCL.
	ErrUnknownFormat = errors.New("symx(manifest): unknown manifest format")
	// ErrDuplicatePath indicates a path declared more than once across manifests.
	ErrDuplicatePath = errors.New("symx(manifest): duplicate path")
	// ErrEmptyPath indicates a package or module without a path.
	ErrEmptyPath = errors.New("symx(manifest): empty path")
)

// Manifest is a decoded manifest file or a merge of several.
type Manifest struct {
	// Source is the file the manifest was loaded from, if any.
	Source string `yaml:"-"`

	Settings *Settings  `yaml:"config,omitempty" hcl:"config,block"`
	Modules  []*Module  `yaml:"modules,omitempty" hcl:"module,block"`
	Packages []*Package `yaml:"packages,omitempty" hcl:"package,block"`
}

// Settings maps onto apis.Config.
type Settings struct {
	Policy       string   `yaml:"policy,omitempty" hcl:"policy,optional"`
	AllowedRoots []string `yaml:"allowed_roots,omitempty" hcl:"allowed_roots,optional"`
	Since        string   `yaml:"since,omitempty" hcl:"since,optional"`
	Removal      string   `yaml:"removal,omitempty" hcl:"removal,optional"`
}

// Module declares an importable module and the names it defines.
type Module struct {
	Path  string   `yaml:"path" hcl:"path,label"`
	Names []string `yaml:"names,omitempty" hcl:"names,optional"`
}

// Package declares a package; fields mirror apis.Spec.
type Package struct {
	Path       string            `yaml:"path" hcl:"path,label"`
	Exports    []string          `yaml:"exports,omitempty" hcl:"exports,optional"`
	Symbols    []string          `yaml:"symbols,omitempty" hcl:"symbols,optional"`
	Lookup     map[string]string `yaml:"lookup,omitempty" hcl:"lookup,optional"`
	Deprecated map[string]string `yaml:"deprecated,omitempty" hcl:"deprecated,optional"`
	Fallback   string            `yaml:"fallback,omitempty" hcl:"fallback,optional"`
}

// Symbol is the placeholder value bound to every name a manifest declares.
type Symbol struct {
	Module string
	Name   string
}

// String returns the dotted symbol name.
func (s *Symbol) String() string { return s.Module + "." + s.Name }

// Spec converts the declaration into an apis.Spec with *Symbol values.
func (p *Package) Spec() apis.Spec {
	return apis.Spec{
		Path:       p.Path,
		All:        slices.Clone(p.Exports),
		Symbols:    symbols(p.Path, p.Symbols),
		Lookup:     p.Lookup,
		Deprecated: p.Deprecated,
		Fallback:   p.Fallback,
	}
}

// Factory returns a factory for a static module holding *Symbol values.
func (m *Module) Factory() apis.Factory {
	return module.Factory(m.Path, symbols(m.Path, m.Names))
}

// Merge combines manifests into one. Modules and packages are concatenated;
// a path declared twice (as module or package) is rejected. Config sections
// are merged field by field: later non-empty values win and allowed roots
// accumulate.
func Merge(ms ...*Manifest) (*Manifest, error) {
	out := &Manifest{}
	seen := make(map[string]string)
	claim := func(path, src string) error {
		if path == "" {
			return fmt.Errorf("%w (in %s)", ErrEmptyPath, orUnknown(src))
		}
		if prev, ok := seen[path]; ok {
			return fmt.Errorf("%w: %q in %s and %s", ErrDuplicatePath, path, orUnknown(prev), orUnknown(src))
		}
		seen[path] = src
		return nil
	}

	for _, m := range ms {
		if m == nil {
			continue
		}
		if m.Settings != nil {
			out.Settings = mergeSettings(out.Settings, m.Settings)
		}
		for _, mod := range m.Modules {
			if err := claim(mod.Path, m.Source); err != nil {
				return nil, err
			}
			out.Modules = append(out.Modules, mod)
		}
		for _, pkg := range m.Packages {
			if err := claim(pkg.Path, m.Source); err != nil {
				return nil, err
			}
			out.Packages = append(out.Packages, pkg)
		}
	}
	if len(ms) == 1 && ms[0] != nil {
		out.Source = ms[0].Source
	}
	return out, nil
}

// Config returns the apis.Config described by the config section.
func (m *Manifest) Config() (apis.Config, error) {
	if m.Settings == nil {
		return config.DefaultConfig(), nil
	}
	s := m.Settings
	p, err := config.ParsePolicy(s.Policy)
	if err != nil {
		return apis.Config{}, err
	}
	return config.NewConfig(
		config.WithPolicy(p),
		config.WithAllowedRoots(s.AllowedRoots...),
		config.WithSince(s.Since),
		config.WithRemoval(s.Removal),
	), nil
}

// Declared reports whether path is a module or package of m.
func (m *Manifest) Declared(path string) bool {
	for _, mod := range m.Modules {
		if mod.Path == path {
			return true
		}
	}
	for _, pkg := range m.Packages {
		if pkg.Path == path {
			return true
		}
	}
	return false
}

// Install registers every module and package of m into ldr and returns the
// declared packages in manifest order. Packages are bound to ldr and to the
// manifest config; opts are applied after those bindings.
func (m *Manifest) Install(ldr apis.Loader, opts ...symx.Option) ([]*symx.Package, error) {
	cfg, err := m.Config()
	if err != nil {
		return nil, err
	}
	for _, mod := range m.Modules {
		if err := ldr.Register(mod.Path, mod.Factory()); err != nil {
			return nil, fmt.Errorf("module %q: %w", mod.Path, err)
		}
	}

	bound := append([]symx.Option{symx.WithConfig(cfg), symx.WithLoader(ldr)}, opts...)
	pkgs := make([]*symx.Package, 0, len(m.Packages))
	for _, decl := range m.Packages {
		p, err := symx.Declare(decl.Spec(), bound...)
		if err != nil {
			return nil, fmt.Errorf("package %q: %w", decl.Path, err)
		}
		if err := ldr.Register(p.Path(), module.Of(p)); err != nil {
			return nil, fmt.Errorf("package %q: %w", decl.Path, err)
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, nil
}

func symbols(path string, names []string) map[string]any {
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]any, len(names))
	for _, n := range names {
		out[n] = &Symbol{Module: path, Name: n}
	}
	return out
}

func mergeSettings(dst, src *Settings) *Settings {
	out := &Settings{}
	if dst != nil {
		*out = *dst
		out.AllowedRoots = slices.Clone(dst.AllowedRoots)
	}
	if src.Policy != "" {
		out.Policy = src.Policy
	}
	if src.Since != "" {
		out.Since = src.Since
	}
	if src.Removal != "" {
		out.Removal = src.Removal
	}
	out.AllowedRoots = append(out.AllowedRoots, src.AllowedRoots...)
	return out
}

func orUnknown(src string) string {
	if src == "" {
		return "<input>"
	}
	return src
}
