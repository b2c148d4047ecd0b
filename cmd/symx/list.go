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
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/symx/manifest"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE...",
		Short: "Print every declared package with its exports and forwards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadAll(args)
			if err != nil {
				return err
			}
			a.logger.Debug("manifests loaded", zap.Int("files", len(args)))
			list(cmd.OutOrStdout(), m)
			return nil
		},
	}
}

func list(w io.Writer, m *manifest.Manifest) {
	for _, p := range m.Packages {
		spec := p.Spec()
		fmt.Fprintln(w, spec.Path)
		if len(spec.All) > 0 {
			fmt.Fprintf(w, "  exports: %s\n", strings.Join(spec.All, ", "))
		}
		for _, name := range sortedKeys(spec.Lookup) {
			fmt.Fprintf(w, "  %s -> %s\n", name, spec.Lookup[name])
		}
		for _, name := range sortedKeys(spec.Deprecated) {
			fmt.Fprintf(w, "  %s -> %s (deprecated)\n", name, spec.Deprecated[name])
		}
		if spec.Fallback != "" {
			fmt.Fprintf(w, "  * -> %s (deprecated)\n", spec.Fallback)
		}
	}
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
