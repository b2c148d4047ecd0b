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
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/symx"
	"dirpx.dev/symx/loader"
	"dirpx.dev/symx/manifest"
	"dirpx.dev/symx/notice"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve FILE PACKAGE NAME",
		Short: "Resolve a name through a declared package",
		Long: `Installs the manifest, resolves NAME through PACKAGE and prints the
module the name landed in. Deprecation notices are logged.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, path, name := args[0], args[1], args[2]
			m, err := manifest.Load(file)
			if err != nil {
				return err
			}
			cfg, err := m.Config()
			if err != nil {
				return err
			}
			pkgs, err := m.Install(loader.New(cfg), symx.WithNotifier(notice.NewZap(a.logger)))
			if err != nil {
				return err
			}
			for _, p := range pkgs {
				if p.Path() != path {
					continue
				}
				v, err := p.Attr(name)
				if err != nil {
					return err
				}
				a.logger.Debug("resolved", zap.String("package", path), zap.String("name", name))
				fmt.Fprintf(cmd.OutOrStdout(), "%s.%s = %v\n", path, name, v)
				return nil
			}
			return fmt.Errorf("package %q is not declared in %s", path, file)
		},
	}
}
