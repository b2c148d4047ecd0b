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

package symx

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"

	"dirpx.dev/symx/apis"
)

// ErrTypeMismatch is returned by AttrAs when the resolved object has another type.
var ErrTypeMismatch = errors.New("symx: attribute has unexpected type")

// Package is a declared namespace: a curated export list, names defined in
// place, and names forwarded (silently or with a deprecation notice) to the
// modules that define them now.
//
// A Package is immutable after Declare and safe for concurrent use.
// It implements apis.Module, so it can itself be registered in a loader.
type Package struct {
	path       string
	all        []string
	lookup     map[string]string
	deprecated map[string]string
	fallback   string
	res        apis.Resolver

	// Optional bindings; nil means "use the live global snapshot".
	cfg *apis.Config
	ldr apis.Loader
	ntf apis.Notifier
}

// Ensure Package implements the module-facing interfaces.
var (
	_ apis.Exporter  = (*Package)(nil)
	_ apis.Forwarder = (*Package)(nil)
	_ apis.Relay     = (*Package)(nil)
)

// Option binds a Package to a specific layer instead of the global one.
type Option func(*Package)

// WithConfig binds the package to cfg.
func WithConfig(cfg apis.Config) Option {
	return func(p *Package) { p.cfg = &cfg }
}

// WithLoader binds the package to ldr.
func WithLoader(ldr apis.Loader) Option {
	return func(p *Package) { p.ldr = ldr }
}

// WithNotifier binds the package to ntf.
func WithNotifier(ntf apis.Notifier) Option {
	return func(p *Package) { p.ntf = ntf }
}

// Declare builds a Package from spec using the global builder.
// The lookup table and deprecation map are sealed and never change afterwards.
func Declare(spec apis.Spec, opts ...Option) (*Package, error) {
	p := &Package{
		path:       spec.Path,
		all:        slices.Clone(spec.All),
		lookup:     maps.Clone(spec.Lookup),
		deprecated: maps.Clone(spec.Deprecated),
		fallback:   spec.Fallback,
	}
	for _, opt := range opts {
		opt(p)
	}

	s := st.Load()
	cfg := s.cfg
	if p.cfg != nil {
		cfg = *p.cfg
	}
	res, err := s.bld.BuildResolver(cfg, spec, s.ext)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrNilResolver
	}
	p.res = res
	return p, nil
}

// MustDeclare is like Declare but panics on error.
// It is intended for package-level variable initialization.
func MustDeclare(spec apis.Spec, opts ...Option) *Package {
	p, err := Declare(spec, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Path returns the dotted package path.
func (p *Package) Path() string { return p.path }

// All returns the advertised export list as declared, duplicates included.
func (p *Package) All() []string { return slices.Clone(p.all) }

// Names returns every name the package can enumerate: its own symbols,
// lookup entries and deprecated names. Fallback names are not enumerable.
func (p *Package) Names() []string { return p.res.Names() }

// Attr resolves name: own symbols first, then lazy lookups, then deprecated
// redirects (with a notice), then the fallback module.
func (p *Package) Attr(name string) (any, error) {
	return p.AttrVia(name, nil)
}

// AttrVia resolves name as a continuation of the forwards in trail.
// Forwards that would revisit a hop fail with apis.ErrForwardCycle.
func (p *Package) AttrVia(name string, trail []apis.Hop) (any, error) {
	env := p.Env()
	env.Trail = trail
	return p.res.Resolve(name, env)
}

// Env returns the environment Attr currently resolves against.
func (p *Package) Env() apis.Env {
	s := st.Load()
	env := apis.Env{Config: s.cfg, Loader: s.ldr, Notifier: s.ntf}
	if p.cfg != nil {
		env.Config = *p.cfg
	}
	if p.ldr != nil {
		env.Loader = p.ldr
	}
	if p.ntf != nil {
		env.Notifier = p.ntf
	}
	return env
}

// Lookup returns a copy of the lazy lookup table.
func (p *Package) Lookup() map[string]string { return maps.Clone(p.lookup) }

// Deprecated returns a copy of the deprecation map.
func (p *Package) Deprecated() map[string]string { return maps.Clone(p.deprecated) }

// Fallback returns the fallback module path, or "".
func (p *Package) Fallback() string { return p.fallback }

// Forwards returns every lookup and deprecated entry, sorted by name.
func (p *Package) Forwards() []apis.Forward {
	out := make([]apis.Forward, 0, len(p.lookup)+len(p.deprecated))
	for name, target := range p.lookup {
		out = append(out, apis.Forward{Name: name, Target: target})
	}
	for name, target := range p.deprecated {
		out = append(out, apis.Forward{Name: name, Target: target, Deprecated: true})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AttrAs resolves name in p and asserts the result to T.
func AttrAs[T any](p *Package, name string) (T, error) {
	var zero T
	v, err := p.Attr(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s.%s is %T, not %T", ErrTypeMismatch, p.path, name, v, zero)
	}
	return t, nil
}
