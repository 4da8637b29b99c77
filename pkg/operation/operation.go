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

// Package operation wires the pipeline together: compile the expressions,
// list the directory, build the plan, validate it, execute it. Each stage
// fails the run before any mutation except execution itself, which is
// best-effort per entry.
package operation

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/rexname/rexname/pkg/config"
	"github.com/rexname/rexname/pkg/executor"
	"github.com/rexname/rexname/pkg/fsx"
	"github.com/rexname/rexname/pkg/log"
	"github.com/rexname/rexname/pkg/pattern"
	"github.com/rexname/rexname/pkg/plan"
)

// Run performs one complete rename run against dir. The returned result is
// meaningful only when err is nil; a non-nil err means the run aborted
// before touching anything.
func Run(ctx context.Context, opts config.Options, dir fsx.Dir, console *log.Console) (executor.Result, error) {
	logger := zerolog.Ctx(ctx)

	if err := opts.Validate(); err != nil {
		return executor.Result{}, err
	}

	for _, arg := range opts.SeparatorWarnings() {
		console.Warning("%c found in <%s> but this tool doesn't support directory traversal", os.PathSeparator, arg)
	}

	p, err := Plan(ctx, opts, dir)
	if err != nil {
		return executor.Result{}, err
	}

	if p.Empty() {
		logger.Debug().Msg("no file matched")
	}

	result := executor.Run(ctx, p, executor.Options{
		Dir:     dir,
		Console: console,
		Test:    opts.Test,
		Copy:    opts.Copy,
	})
	return result, nil
}

// Plan computes and validates the rename plan without executing it. Exposed
// so callers can inspect what a run would do.
func Plan(ctx context.Context, opts config.Options, dir fsx.Dir) (*plan.Plan, error) {
	spec, err := pattern.Compile(opts.Pattern, pattern.Options{
		CaseInsensitive: opts.CaseInsensitive,
		Glob:            opts.Glob,
		Except:          opts.Except,
	})
	if err != nil {
		return nil, err
	}

	files, err := dir.List(ctx)
	if err != nil {
		return nil, errors.Errorf("scanning directory: %w", err)
	}

	var p *plan.Plan
	if opts.Simple {
		repl := pattern.NewReplacer(opts.From, opts.To, opts.CaseInsensitive)
		p, err = plan.BuildSimple(ctx, files, spec, repl, opts.Transform())
	} else {
		var tmpl *pattern.Template
		tmpl, err = pattern.ParseTemplate(opts.Target)
		if err != nil {
			return nil, err
		}
		p, err = plan.Build(ctx, files, spec, tmpl, opts.Index, opts.Transform())
	}
	if err != nil {
		return nil, err
	}

	if err := plan.Validate(ctx, p, dir, opts.Copy); err != nil {
		return nil, err
	}
	return p, nil
}
