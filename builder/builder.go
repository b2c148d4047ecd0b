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

package builder

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"dirpx.dev/symx/apis"
	"dirpx.dev/symx/loader"
	"dirpx.dev/symx/notice"
	"dirpx.dev/symx/registry"
	"dirpx.dev/symx/resolver"
	"dirpx.dev/symx/strategy"
	"dirpx.dev/symx/utils/dotpath"
)

var (
	// ErrInvalidPath is returned when a spec has an empty or malformed path.
	ErrInvalidPath = errors.New("symx(builder): invalid package path")
	// ErrInvalidFallback is returned when a spec has a malformed fallback path.
	ErrInvalidFallback = errors.New("symx(builder): invalid fallback path")
	// ErrOverlappingName indicates a name declared in more than one of
	// Symbols, Lookup and Deprecated.
	ErrOverlappingName = errors.New("symx(builder): name declared more than once")
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildLoader builds a new apis.Loader for cfg. If a previous loader is
// provided, its registrations are carried over; modules are constructed again
// lazily by their factories. Registrations the new loader rejects are dropped
// and logged to zap.L().
func (b *builder) BuildLoader(cfg apis.Config, prev apis.Loader, _ any) apis.Loader {
	nldr := loader.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			if err := nldr.Register(e.Path, e.Factory); err != nil {
				zap.L().Warn("dropping module registration while rebuilding loader",
					zap.String("path", e.Path), zap.Error(err))
			}
		}
	}
	return nldr
}

// BuildNotifier keeps a previous notifier if there is one, otherwise returns
// a zap notifier that follows the global logger.
func (b *builder) BuildNotifier(_ apis.Config, prev apis.Notifier, _ any) apis.Notifier {
	if prev != nil {
		return prev
	}
	return notice.NewZap(nil)
}

// BuildResolver builds the strategy chain for spec:
// static symbols, lazy lookups, deprecated redirects, then the fallback module.
func (b *builder) BuildResolver(cfg apis.Config, spec apis.Spec, _ any) (apis.Resolver, error) {
	if dotpath.Validate(spec.Path) != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, spec.Path)
	}
	if spec.Fallback != "" && dotpath.Validate(spec.Fallback) != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFallback, spec.Fallback)
	}
	for name := range spec.Symbols {
		if err := dotpath.ValidateName(name); err != nil {
			return nil, fmt.Errorf("%s: symbol %q: %w", spec.Path, name, registry.ErrInvalidName)
		}
		if _, ok := spec.Lookup[name]; ok {
			return nil, fmt.Errorf("%w: %q in symbols and lookup", ErrOverlappingName, name)
		}
		if _, ok := spec.Deprecated[name]; ok {
			return nil, fmt.Errorf("%w: %q in symbols and deprecated", ErrOverlappingName, name)
		}
	}
	for name := range spec.Lookup {
		if _, ok := spec.Deprecated[name]; ok {
			return nil, fmt.Errorf("%w: %q in lookup and deprecated", ErrOverlappingName, name)
		}
	}

	lookup, err := registry.FromMap(cfg, spec.Lookup)
	if err != nil {
		return nil, fmt.Errorf("%s: lookup: %w", spec.Path, err)
	}
	deprecated, err := registry.FromMap(cfg, spec.Deprecated)
	if err != nil {
		return nil, fmt.Errorf("%s: deprecated: %w", spec.Path, err)
	}

	return resolver.New(spec.Path,
		strategy.NewStaticStrategy(spec.Symbols),
		strategy.NewLookupStrategy(spec.Path, lookup),
		strategy.NewDeprecatedStrategy(spec.Path, deprecated),
		strategy.NewFallbackStrategy(spec.Path, spec.Fallback),
	), nil
}
