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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/rexname/rexname/cmd/rexname/commands"
	"github.com/rexname/rexname/cmd/rexname/opts"
	"github.com/rexname/rexname/pkg/config"
	"github.com/rexname/rexname/pkg/fsx"
	"github.com/rexname/rexname/pkg/log"
	"github.com/rexname/rexname/pkg/operation"
)

// rootFlags holds the classic/simple mode flags of the bare invocation.
type rootFlags struct {
	simple          bool
	caseInsensitive bool
	lower           bool
	upper           bool
	glob            bool
	copyFiles       bool
	except          string
	indexFirst      int
	indexStep       int
	indexDigits     string
	indexPadWith    string
}

func newRootCmd() *cobra.Command {
	root := &opts.RootOpts{}
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "rexname [flags] REGEX TARGET",
		Short: "Batch-rename files with regular expressions",
		Long: `Rexname renames the files of a directory whose names fully match a
regular expression, deriving each new name from a target template that can
reference capture groups (\1 or \(1)) and an auto-incrementing \(index)
placeholder. The complete rename plan is validated for collisions before a
single file is touched.

In simple mode (-s) the arguments are FROM TO REGEX: every occurrence of the
literal FROM substring is replaced with TO in each file matching REGEX.`,
		Version:       formatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			want := 2
			usage := "REGEX and TARGET"
			if flags.simple {
				want = 3
				usage = "FROM, TO and REGEX"
			}
			if len(args) != want {
				return errors.Errorf("expected %d arguments (%s), got %d", want, usage, len(args))
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(setupLogging(cmd, root))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx)

			runOpts := config.Options{
				Simple:          flags.simple,
				CaseInsensitive: flags.caseInsensitive,
				Lower:           flags.lower,
				Upper:           flags.upper,
				Glob:            flags.glob,
				Copy:            flags.copyFiles,
				Except:          flags.except,
				Test:            root.Test,
				Quiet:           root.Quiet,
				Dir:             root.Dir,
				Index: config.IndexConfig{
					First:   flags.indexFirst,
					Step:    flags.indexStep,
					Digits:  flags.indexDigits,
					PadWith: flags.indexPadWith,
				},
			}
			if flags.simple {
				runOpts.From, runOpts.To, runOpts.Pattern = args[0], args[1], args[2]
			} else {
				runOpts.Pattern, runOpts.Target = args[0], args[1]
			}

			console := log.New(os.Stdout, os.Stderr, *logger, root.Quiet)

			result, err := operation.Run(ctx, runOpts, fsx.NewOSDir(root.Path()), console)
			if err != nil {
				console.Error(err)
				return &opts.ExitError{Code: 1}
			}
			if !result.OK() {
				// Per-entry failures were already reported as they happened.
				return &opts.ExitError{Code: 1}
			}
			return nil
		},
	}

	addRootFlags(cmd, root, flags)

	cmd.AddCommand(commands.NewBatchCmd(root))
	cmd.AddCommand(commands.NewSelftestCmd(root))

	return cmd
}

// addRootFlags registers the persistent flags shared by all commands and the
// mode flags of the bare invocation.
func addRootFlags(cmd *cobra.Command, root *opts.RootOpts, flags *rootFlags) {
	cmd.PersistentFlags().BoolVarP(&root.Test, "test", "t", false, "test only, don't actually rename anything")
	cmd.PersistentFlags().BoolVarP(&root.Quiet, "quiet", "q", false, "don't print anything, just return status codes")
	cmd.PersistentFlags().StringVarP(&root.Dir, "chdir", "C", "", "operate on this directory instead of the current one")
	cmd.PersistentFlags().BoolVarP(&root.Debug, "debug", "d", false, "enable debug logging")

	cmd.Flags().BoolVarP(&flags.simple, "simple", "s", false, "simple mode: replace a literal substring (FROM TO REGEX)")
	cmd.Flags().BoolVarP(&flags.caseInsensitive, "case-insensitive", "i", false, "treat the regular expression as case-insensitive")
	cmd.Flags().BoolVarP(&flags.lower, "lower", "l", false, "translate all letters to lower-case")
	cmd.Flags().BoolVarP(&flags.upper, "upper", "U", false, "translate all letters to upper-case")
	cmd.Flags().BoolVarP(&flags.glob, "glob", "g", false, "treat the pattern as a glob instead of a regular expression")
	cmd.Flags().BoolVarP(&flags.copyFiles, "copy", "c", false, "copy files instead of renaming")
	cmd.Flags().StringVarP(&flags.except, "except", "v", "", "exclude files matching this regular expression")
	cmd.Flags().IntVar(&flags.indexFirst, "index-first", 1, "value of the first \\(index) substitution")
	cmd.Flags().IntVar(&flags.indexStep, "index-step", 1, "value added with each successive \\(index) substitution; may be negative")
	cmd.Flags().StringVar(&flags.indexDigits, "index-digits", config.DigitsAuto, "width of each \\(index) substitution, or \"auto\"")
	cmd.Flags().StringVar(&flags.indexPadWith, "index-pad-with", "0", "character used for \\(index) padding")
}

// setupLogging configures zerolog from the flags and stores the logger in
// the command context.
func setupLogging(cmd *cobra.Command, root *opts.RootOpts) context.Context {
	// Structured logging is a debugging facility; the console handles the
	// user-facing output.
	level := zerolog.Disabled
	if root.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	return logger.WithContext(cmd.Context())
}
