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

package config

import (
	"slices"

	"dirpx.dev/symx/apis"
)

const (
	// DefaultPolicy represents the default for Policy.
	// Every access to a forwarded name is reported.
	DefaultPolicy = apis.PolicyAlways
	// DefaultSince represents the default for Since. Unknown.
	DefaultSince = ""
	// DefaultRemoval represents the default for Removal. Unknown.
	DefaultRemoval = ""
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure Policy is valid.
	if cfg.Policy > apis.PolicyNever {
		cfg.Policy = DefaultPolicy
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Policy:  DefaultPolicy,
		Since:   DefaultSince,
		Removal: DefaultRemoval,
	}
}

// ParsePolicy parses "always", "once" or "never". An empty string yields DefaultPolicy.
func ParsePolicy(s string) (apis.NoticePolicy, error) {
	if s == "" {
		return DefaultPolicy, nil
	}
	var p apis.NoticePolicy
	if err := p.UnmarshalText([]byte(s)); err != nil {
		return DefaultPolicy, err
	}
	return p, nil
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithPolicy sets the Policy option.
// An unknown policy resets to the default.
func WithPolicy(p apis.NoticePolicy) Option {
	return func(c *apis.Config) {
		if p > apis.PolicyNever {
			c.Policy = DefaultPolicy
			return
		}
		c.Policy = p
	}
}

// WithAllowedRoots sets the AllowedRoots option.
// The slice is copied, sorted and deduplicated; empty roots are dropped.
func WithAllowedRoots(roots ...string) Option {
	return func(c *apis.Config) {
		out := make([]string, 0, len(roots))
		for _, r := range roots {
			if r != "" {
				out = append(out, r)
			}
		}
		slices.Sort(out)
		c.AllowedRoots = slices.Compact(out)
	}
}

// WithSince sets the Since option.
func WithSince(v string) Option {
	return func(c *apis.Config) {
		c.Since = v
	}
}

// WithRemoval sets the Removal option.
func WithRemoval(v string) Option {
	return func(c *apis.Config) {
		c.Removal = v
	}
}
