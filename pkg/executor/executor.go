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

// Package executor applies a validated plan. Test mode prints what would
// happen and never touches the filesystem. Live mode is best-effort: a
// failing entry is reported and the remaining entries are still attempted;
// there is no rollback of renames that already completed.
package executor

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rexname/rexname/pkg/fsx"
	"github.com/rexname/rexname/pkg/log"
	"github.com/rexname/rexname/pkg/plan"
)

// 🔧 Options configures a run of the executor
type Options struct {
	Dir     fsx.Dir
	Console *log.Console
	Test    bool // print instead of mutating
	Copy    bool // duplicate files instead of renaming
}

// ⚠️ EntryError records one entry that failed during live execution
type EntryError struct {
	Entry plan.Entry
	Err   error
}

// 📊 Result summarizes a run
type Result struct {
	Applied int          // entries renamed or copied
	Skipped int          // matched entries whose name did not change
	Failed  []EntryError // live-mode failures, in execution order
}

// OK reports whether every attempted entry succeeded.
func (r Result) OK() bool {
	return len(r.Failed) == 0
}

// Run applies the plan in its validated execution order.
func Run(ctx context.Context, p *plan.Plan, opts Options) Result {
	logger := zerolog.Ctx(ctx)

	var result Result
	for _, entry := range p.ExecutionOrder() {
		if entry.NoOp() {
			if opts.Test {
				opts.Console.Note("file %s matches but name doesn't change", entry.Source)
			}
			result.Skipped++
			continue
		}

		if opts.Test {
			opts.Console.PlanLine(entry.Source, entry.Target, true)
			continue
		}

		var err error
		if opts.Copy {
			err = opts.Dir.Copy(ctx, entry.Source, entry.Target)
		} else {
			err = opts.Dir.Rename(ctx, entry.Source, entry.Target)
		}
		if err != nil {
			// Keep going: the plan was judged safe as a whole, but an entry
			// can still fail underneath us (permissions, races). Completed
			// entries stay as they are.
			logger.Error().Err(err).
				Str("source", entry.Source).
				Str("target", entry.Target).
				Msg("entry failed")
			opts.Console.Error(err)
			result.Failed = append(result.Failed, EntryError{Entry: entry, Err: err})
			continue
		}

		opts.Console.PlanLine(entry.Source, entry.Target, false)
		result.Applied++
	}

	return result
}
