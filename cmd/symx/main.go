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

// Command symx checks, lists and resolves declarative package manifests.
//
//	symx check manifests/*.yaml
//	symx list tools.hcl
//	symx resolve tools.hcl retrievers ArxivRetriever
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"dirpx.dev/symx/manifest"
)

// app carries the state shared by every subcommand.
type app struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "symx",
		Short: "Validate export registries and deprecated-symbol redirects",
		Long: `symx loads package manifests (YAML or HCL) and checks that every
package's export list matches the names it can resolve, and that every
lookup and deprecated redirect still points at a module defining the name.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newCheckCmd(a), newListCmd(a), newResolveCmd(a))
	return root
}

// loadAll loads every manifest in parallel and merges them in argument order.
func loadAll(paths []string) (*manifest.Manifest, error) {
	ms := make([]*manifest.Manifest, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			m, err := manifest.Load(path)
			if err != nil {
				return err
			}
			ms[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return manifest.Merge(ms...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
