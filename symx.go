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
	"sync"
	"sync/atomic"

	"dirpx.dev/symx/apis"
	"dirpx.dev/symx/builder"
	"dirpx.dev/symx/config"
)

// init initializes the global symx state.
func init() {
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.ldr = b.BuildLoader(s.cfg, nil, nil)
	s.ntf = b.BuildNotifier(s.cfg, nil, nil)
	s.bld = b
	st.Store(s)
}

var (
	// ErrNilLoader is returned when a builder returns a nil loader.
	ErrNilLoader = errors.New("symx: builder returned nil loader")
	// ErrNilNotifier is returned when a builder returns a nil notifier.
	ErrNilNotifier = errors.New("symx: builder returned nil notifier")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("symx: builder returned nil resolver")
)

// Import returns the module registered at path in the global loader.
// This is a convenience wrapper around the global loader.
func Import(path string) (apis.Module, error) {
	return st.Load().ldr.Import(path)
}

// RegisterModule makes path importable through f in the global loader.
// This is a convenience wrapper around the global loader.
func RegisterModule(path string, f apis.Factory) error {
	return st.Load().ldr.Register(path, f)
}

// RegisterPackage makes p importable under its own path in the global loader,
// so other packages can forward names to it.
func RegisterPackage(p *Package) error {
	return RegisterModule(p.Path(), func() (apis.Module, error) { return p, nil })
}

// SetAll explicitly sets all global symx state components.
//
// Nil arguments leave the corresponding component unchanged (rebuilt through
// the builder), except for ext which is always replaced. A non-nil loader or
// notifier is pinned.
func SetAll(cfg *apis.Config, ext any, ldr apis.Loader, ntf apis.Notifier, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.ext = ext
	if cfg != nil {
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}
	next.pldr, next.pntf = ldr != nil, ntf != nil

	if ldr != nil {
		next.ldr = ldr
	} else {
		next.ldr = next.bld.BuildLoader(next.cfg, old.ldr, next.ext)
	}
	if ntf != nil {
		next.ntf = ntf
	} else {
		next.ntf = next.bld.BuildNotifier(next.cfg, old.ntf, next.ext)
	}
	publish(&next)
}

// Config returns the global symx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global symx configuration to cfg.
// It rebuilds the global loader and notifier unless they are pinned.
func SetConfig(cfg apis.Config) {
	update(func(s *state) { s.cfg = cfg }, true)
}

// Loader returns the global symx loader.
func Loader() apis.Loader {
	return st.Load().ldr
}

// SetLoader sets and pins the global loader. Nil is ignored.
func SetLoader(ldr apis.Loader) {
	if ldr == nil {
		return
	}
	update(func(s *state) { s.ldr, s.pldr = ldr, true }, false)
}

// Notifier returns the global symx notifier.
func Notifier() apis.Notifier {
	return st.Load().ntf
}

// SetNotifier sets and pins the global notifier. Nil is ignored.
func SetNotifier(ntf apis.Notifier) {
	if ntf == nil {
		return
	}
	update(func(s *state) { s.ntf, s.pntf = ntf, true }, false)
}

// Builder returns the global symx builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds unpinned layers with it.
// Packages declared earlier keep the resolvers they were built with.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(s *state) { s.bld = b }, true)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	update(func(s *state) { s.ext = ext }, true)
}

// ExtAs returns the global symx extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsLoaderPinned returns whether the global loader is pinned.
func IsLoaderPinned() bool {
	return st.Load().pldr
}

// PinLoader stops the global loader from being rebuilt.
func PinLoader() {
	update(func(s *state) { s.pldr = true }, false)
}

// UnpinLoader lets the global loader be rebuilt again.
func UnpinLoader() {
	update(func(s *state) { s.pldr = false }, false)
}

// IsNotifierPinned returns whether the global notifier is pinned.
func IsNotifierPinned() bool {
	return st.Load().pntf
}

// PinNotifier stops the global notifier from being rebuilt.
func PinNotifier() {
	update(func(s *state) { s.pntf = true }, false)
}

// UnpinNotifier lets the global notifier be rebuilt again.
func UnpinNotifier() {
	update(func(s *state) { s.pntf = false }, false)
}

// update derives a new snapshot from the current one under the build lock.
// If rebuild is set, unpinned layers are rebuilt through the (new) builder.
func update(mutate func(*state), rebuild bool) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	mutate(&next)
	if rebuild {
		if !next.pldr {
			next.ldr = next.bld.BuildLoader(next.cfg, old.ldr, next.ext)
		}
		if !next.pntf {
			next.ntf = next.bld.BuildNotifier(next.cfg, old.ntf, next.ext)
		}
	}
	publish(&next)
}

// publish validates and stores s. Callers hold buildMu.
func publish(s *state) {
	if s.ldr == nil {
		panic(ErrNilLoader)
	}
	if s.ntf == nil {
		panic(ErrNilNotifier)
	}
	st.Store(s)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global symx state.
var st atomic.Pointer[state]

// state is the global symx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers copy, modify the copy and swap it in.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension configuration.
	ext any
	// ldr is the global module loader.
	ldr apis.Loader
	// ntf receives deprecation notices.
	ntf apis.Notifier
	// bld builds loaders, notifiers and package resolvers.
	bld apis.Builder
	// pldr indicates whether the loader is pinned.
	pldr bool
	// pntf indicates whether the notifier is pinned.
	pntf bool
}
