// Copyright 2025 the rexname authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/rexname/rexname/cmd/rexname/opts"
	"github.com/rexname/rexname/pkg/config"
	"github.com/rexname/rexname/pkg/fsx"
	"github.com/rexname/rexname/pkg/log"
	"github.com/rexname/rexname/pkg/operation"
)

// NewBatchCmd creates the batch command, which applies a sequence of rename
// rules from a rule file. Each rule runs through the same plan/validate/
// execute pipeline as a single command-line invocation.
func NewBatchCmd(root *opts.RootOpts) *cobra.Command {
	var ruleFile string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Apply rename rules from a rule file",
		Long: `Batch applies a sequence of rename rules from a rule file.
Rules run in order; a rule whose plan is rejected stops the batch, so a bad
expression never leaves the directory half-processed between rules. The file
format is chosen by extension: .yaml/.yml, .json, or .hcl (a bare .rexname
file is tried as YAML first, HCL second).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx).With().Str("command", "batch").Logger()
			ctx = logger.WithContext(ctx)

			console := log.New(os.Stdout, os.Stderr, logger, root.Quiet)

			rs, err := config.LoadRules(ctx, ruleFile)
			if err != nil {
				console.Error(err)
				return &opts.ExitError{Code: 1}
			}

			base := config.Options{
				Test:  root.Test,
				Quiet: root.Quiet,
				Dir:   root.Dir,
				Index: config.DefaultIndex(),
			}

			dir := fsx.NewOSDir(root.Path())
			for i, rule := range rs.Rules {
				runOpts, err := rule.Options(base)
				if err != nil {
					console.Error(errors.Errorf("%s: %w", rule.Label(i), err))
					return &opts.ExitError{Code: 1}
				}

				logger.Debug().Str("rule", rule.Label(i)).Msg("applying rule")
				result, err := operation.Run(ctx, runOpts, dir, console)
				if err != nil {
					console.Error(errors.Errorf("%s: %w", rule.Label(i), err))
					return &opts.ExitError{Code: 1}
				}
				if !result.OK() {
					return &opts.ExitError{Code: 1}
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&ruleFile, "file", "f", ".rexname", "rule file to apply")

	return cmd
}
