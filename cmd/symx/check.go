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

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/symx"
	"dirpx.dev/symx/apis"
	"dirpx.dev/symx/loader"
	"dirpx.dev/symx/manifest"
	"dirpx.dev/symx/notice"
	"dirpx.dev/symx/validate"
)

// errCheckFailed is returned when check found at least one problem.
var errCheckFailed = errors.New("check failed")

func newCheckCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate exports and forwards of every declared package",
		Long: `Loads and merges the given manifests, then for every package:
  - compares its export list with the names it can resolve
  - checks that every lookup and deprecated target defines its name
  - reports duplicate export entries as warnings

Forwards to modules that no manifest declares are skipped unless --strict.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadAll(args)
			if err != nil {
				return err
			}
			problems, err := check(a.logger, m, strict)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintf(out, "FAIL %v\n", p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%w: %d problem(s)", errCheckFailed, len(problems))
			}
			fmt.Fprintf(out, "ok: %d package(s), %d module(s)\n", len(m.Packages), len(m.Modules))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on forwards to undeclared modules")
	return cmd
}

// check installs m into a private loader and validates every package.
// Validation never emits deprecation notices.
func check(log *zap.Logger, m *manifest.Manifest, strict bool) ([]error, error) {
	cfg, err := m.Config()
	if err != nil {
		return nil, err
	}
	ldr := loader.New(cfg)
	pkgs, err := m.Install(ldr, symx.WithNotifier(notice.Nop()))
	if err != nil {
		return nil, err
	}

	var problems []error
	for _, p := range pkgs {
		log := log.With(zap.String("package", p.Path()))

		if dups := validate.Duplicates(p.All()); len(dups) > 0 {
			log.Warn("duplicate export entries", zap.Strings("names", dups))
		}
		if err := validate.Exports(p); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", p.Path(), err))
		}
		for _, fw := range p.Forwards() {
			if !strict && !m.Declared(fw.Target) {
				log.Debug("skipping forward to undeclared module",
					zap.String("name", fw.Name), zap.String("target", fw.Target))
				continue
			}
			if err := validate.Target(p.Path(), fw, ldr); err != nil {
				problems = append(problems, err)
			}
		}
		if fb := p.Fallback(); fb != "" && (strict || m.Declared(fb)) {
			if _, err := ldr.Import(fb); err != nil {
				problems = append(problems, &apis.TargetError{Package: p.Path(), Name: "*", Target: fb, Err: err})
			}
		}
		log.Debug("package checked", zap.Int("forwards", len(p.Forwards())))
	}
	return problems, nil
}
