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
	"fmt"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/rexname/rexname/cmd/rexname/opts"
	"github.com/rexname/rexname/pkg/config"
	"github.com/rexname/rexname/pkg/pattern"
	"github.com/rexname/rexname/pkg/plan"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

// run executes the root command and maps the outcome onto the process exit
// code: 0 on success, 1 for expected failures (bad expression, conflicting
// flags, rejected plan, failed renames), 2 for anything unexpected.
func run(ctx context.Context, args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exit *opts.ExitError
	if errors.As(err, &exit) {
		// Diagnostics were already printed by the command.
		return exit.Code
	}

	fmt.Fprintln(os.Stderr, err)

	var (
		compileErr  *pattern.CompileError
		templateErr *pattern.TemplateError
		configErr   *config.ConfigError
		planErr     *plan.ValidationError
	)
	if errors.As(err, &compileErr) ||
		errors.As(err, &templateErr) ||
		errors.As(err, &configErr) ||
		errors.As(err, &planErr) {
		return 1
	}
	return 2
}
