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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rexname/rexname/cmd/rexname/opts"
	"github.com/rexname/rexname/pkg/selftest"
)

// NewSelftestCmd creates the selftest command, which runs the built-in
// end-to-end scenarios in scratch directories.
func NewSelftestCmd(root *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selftest [dir]",
		Short: "Run the built-in end-to-end test suite",
		Long: `Selftest creates scratch files in a temporary directory (or under dir,
when given), then exercises the full pipeline against them: matching,
templating, index numbering, collision detection, and execution. The exit
code is the number of failed scenarios.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx).With().Str("command", "selftest").Logger()
			ctx = logger.WithContext(ctx)

			baseDir := ""
			if len(args) == 1 {
				baseDir = args[0]
			}

			failures, err := selftest.Run(ctx, baseDir)
			if err != nil {
				return err
			}
			if failures > 0 {
				return &opts.ExitError{Code: failures}
			}
			return nil
		},
	}

	return cmd
}
