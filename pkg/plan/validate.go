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

package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// 📷 Snapshot is the view of the directory the plan was built from. fsx.Dir
// satisfies it; tests use lightweight fakes.
type Snapshot interface {
	Exists(name string) bool
	SameFile(a, b string) bool
}

// ConflictKind classifies a validation conflict
type ConflictKind int

const (
	// ConflictDuplicate: two or more entries render to the same target.
	ConflictDuplicate ConflictKind = iota
	// ConflictExisting: a target collides with a file the plan does not
	// rename away.
	ConflictExisting
	// ConflictCycle: entries form a rename cycle that cannot be ordered.
	ConflictCycle
)

// ⚠️ Conflict is one reason a plan was rejected
type Conflict struct {
	Kind    ConflictKind
	Target  string
	Sources []string // the source names involved
}

func (c Conflict) String() string {
	switch c.Kind {
	case ConflictDuplicate:
		return fmt.Sprintf("multiple files (%s) would be written to %s", strings.Join(c.Sources, ", "), c.Target)
	case ConflictExisting:
		return fmt.Sprintf("target %s already exists for source %s", c.Target, c.Sources[0])
	case ConflictCycle:
		return fmt.Sprintf("cyclic rename chain involving %s", strings.Join(c.Sources, " -> "))
	default:
		return fmt.Sprintf("conflict on %s", c.Target)
	}
}

// ❌ ValidationError rejects a plan, carrying every conflict found so the
// user can fix the expression in one pass.
type ValidationError struct {
	Conflicts []Conflict
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}

// Validate is the safety gate: it checks the complete plan against the
// directory snapshot before any entry is executed. On success it also fixes
// the execution order so chained renames (A→B while B→C) vacate a name
// before it is claimed. Either the whole batch is judged safe, or none of it
// runs.
func Validate(ctx context.Context, p *Plan, snap Snapshot, copyMode bool) error {
	logger := zerolog.Ctx(ctx)

	var conflicts []Conflict

	// Duplicate targets, regardless of what is on disk.
	byTarget := make(map[string][]string, len(p.Entries))
	for _, e := range p.Entries {
		byTarget[e.Target] = append(byTarget[e.Target], e.Source)
	}
	for target, sources := range byTarget {
		if len(sources) > 1 {
			conflicts = append(conflicts, Conflict{
				Kind:    ConflictDuplicate,
				Target:  target,
				Sources: sources,
			})
		}
	}

	// vacating maps a source name to its entry index, for entries that will
	// actually move away from their name. Copies never vacate, and neither
	// do no-op entries.
	vacating := make(map[string]int, len(p.Entries))
	if !copyMode {
		for i, e := range p.Entries {
			if !e.NoOp() {
				vacating[e.Source] = i
			}
		}
	}

	// Collisions with files already in the directory.
	for _, e := range p.Entries {
		if !snap.Exists(e.Target) {
			continue
		}
		if snap.SameFile(e.Target, e.Source) {
			if !copyMode || e.NoOp() {
				// Renaming a file onto itself (including a case-variant of
				// itself on case-insensitive filesystems) is a no-op, not a
				// collision. The same goes for exact-name entries in copy
				// mode, which the executor skips.
				continue
			}
			// A copy onto a case-variant of the same underlying file would
			// truncate the source before it is read, so it is a collision,
			// not a no-op.
		}
		if _, ok := vacating[e.Target]; ok {
			// The occupant is renamed away in this same plan; ordering
			// below guarantees it moves first.
			continue
		}
		conflicts = append(conflicts, Conflict{
			Kind:    ConflictExisting,
			Target:  e.Target,
			Sources: []string{e.Source},
		})
	}

	// Order chained renames and reject cycles. Sources are distinct, so each
	// entry depends on at most one other: the entry whose source occupies
	// its target.
	order, cycles := orderEntries(p.Entries, vacating)
	conflicts = append(conflicts, cycles...)

	if len(conflicts) > 0 {
		logger.Debug().Int("conflicts", len(conflicts)).Msg("plan rejected")
		return &ValidationError{Conflicts: conflicts}
	}

	p.order = order
	logger.Debug().Int("entries", len(p.Entries)).Msg("plan validated")
	return nil
}

// orderEntries topologically sorts entries so dependencies (the entry
// occupying another entry's target) run first. Cycles are reported as
// conflicts and excluded from the order.
func orderEntries(entries []Entry, vacating map[string]int) ([]int, []Conflict) {
	const (
		white = iota
		gray
		black
	)

	dep := make([]int, len(entries))
	for i, e := range entries {
		dep[i] = -1
		if j, ok := vacating[e.Target]; ok && j != i {
			dep[i] = j
		}
	}

	state := make([]int, len(entries))
	order := make([]int, 0, len(entries))
	var conflicts []Conflict

	var visit func(i int) bool
	visit = func(i int) bool {
		switch state[i] {
		case black:
			return true
		case gray:
			return false
		}
		state[i] = gray
		if d := dep[i]; d >= 0 && !visit(d) {
			// Cycle detected on this edge. Walk it once for the report and
			// swallow it so ancestors do not report it again.
			cycle := []string{entries[i].Source}
			for j := dep[i]; j >= 0 && j != i; j = dep[j] {
				cycle = append(cycle, entries[j].Source)
			}
			cycle = append(cycle, entries[i].Source)
			conflicts = append(conflicts, Conflict{
				Kind:    ConflictCycle,
				Target:  entries[i].Target,
				Sources: cycle,
			})
			state[i] = black
			return true
		}
		state[i] = black
		order = append(order, i)
		return true
	}

	for i := range entries {
		visit(i)
	}

	if len(conflicts) > 0 {
		return nil, conflicts
	}
	return order, nil
}
