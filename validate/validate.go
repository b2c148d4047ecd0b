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

// Package validate checks that export lists, registries and forwards agree.
//
// All checks are pure: they never emit deprecation notices and never mutate
// their inputs. Comparisons use set semantics, so duplicate entries in an
// export list collapse and are tolerated.
package validate

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"dirpx.dev/symx/apis"
)

// MismatchError reports the difference between an advertised export list
// and the names a registry actually holds.
type MismatchError struct {
	// Missing are advertised names absent from the registry, sorted.
	Missing []string
	// Extra are registry names that are not advertised, sorted.
	Extra []string
}

// Error implements error.
func (e *MismatchError) Error() string {
	var b strings.Builder
	b.WriteString(apis.ErrRegistryMismatch.Error())
	if len(e.Missing) > 0 {
		b.WriteString(": missing from registry: ")
		b.WriteString(quoteAll(e.Missing))
	}
	if len(e.Extra) > 0 {
		if len(e.Missing) > 0 {
			b.WriteString(";")
		} else {
			b.WriteString(":")
		}
		b.WriteString(" not advertised: ")
		b.WriteString(quoteAll(e.Extra))
	}
	return b.String()
}

// Unwrap returns apis.ErrRegistryMismatch.
func (e *MismatchError) Unwrap() error { return apis.ErrRegistryMismatch }

// Names compares advertised and keys as sets.
// It returns nil if they hold the same names, *MismatchError otherwise.
func Names(advertised, keys []string) error {
	want := set(advertised)
	have := set(keys)

	var e MismatchError
	for n := range want {
		if _, ok := have[n]; !ok {
			e.Missing = append(e.Missing, n)
		}
	}
	for n := range have {
		if _, ok := want[n]; !ok {
			e.Extra = append(e.Extra, n)
		}
	}
	if len(e.Missing) == 0 && len(e.Extra) == 0 {
		return nil
	}
	slices.Sort(e.Missing)
	slices.Sort(e.Extra)
	return &e
}

// Duplicates returns the names listed more than once, sorted, each once.
// Duplicates are tolerated by Names; this is an advisory report.
func Duplicates(names []string) []string {
	seen := make(map[string]int, len(names))
	for _, n := range names {
		seen[n]++
	}
	var out []string
	for n, c := range seen {
		if c > 1 {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}

// Exports checks that the export list of e matches the names e can resolve.
func Exports(e apis.Exporter) error {
	return Names(e.All(), e.Names())
}

// Targets checks that every forward of f still resolves through ldr:
// the target module imports and defines the forwarded name. Forwards that
// land on another apis.Forwarder are followed, so chains that loop back
// are reported as apis.ErrForwardCycle.
// All failures are reported, joined; each is a *apis.TargetError.
func Targets(f apis.Forwarder, ldr apis.Loader) error {
	var errs []error
	for _, fw := range f.Forwards() {
		if err := Target(f.Path(), fw, ldr); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Target checks a single forward of the package at from.
func Target(from string, fw apis.Forward, ldr apis.Loader) error {
	return follow(from, fw, ldr, nil)
}

func follow(from string, fw apis.Forward, ldr apis.Loader, trail []apis.Hop) error {
	fail := func(err error) error {
		return &apis.TargetError{Package: from, Name: fw.Name, Target: fw.Target, Err: err}
	}
	trail = append(slices.Clone(trail), apis.Hop{Module: from, Name: fw.Name})
	next := apis.Hop{Module: fw.Target, Name: fw.Name}
	if slices.Contains(trail, next) {
		return fail(&apis.CycleError{Trail: append(trail, next)})
	}

	m, err := ldr.Import(fw.Target)
	if err != nil {
		return fail(err)
	}
	if f, ok := m.(apis.Forwarder); ok {
		for _, g := range f.Forwards() {
			if g.Name != fw.Name {
				continue
			}
			if err := follow(f.Path(), g, ldr, trail); err != nil {
				return fail(err)
			}
			return nil
		}
	}
	if !slices.Contains(m.Names(), fw.Name) {
		// Names may be incomplete (e.g. a fallback); Attr is authoritative.
		var err error
		if r, ok := m.(apis.Relay); ok {
			_, err = r.AttrVia(fw.Name, trail)
		} else {
			_, err = m.Attr(fw.Name)
		}
		if err != nil {
			return fail(err)
		}
	}
	return nil
}

func set(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

func quoteAll(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = strconv.Quote(n)
	}
	return strings.Join(q, ", ")
}
