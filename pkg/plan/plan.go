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

// Package plan computes and validates the rename plan: every matched source
// name paired with its rendered target name. The whole plan is judged safe
// before a single file is touched; nothing in this package mutates the
// filesystem.
package plan

// 📄 Entry is one source → target pair. Never mutated after creation.
type Entry struct {
	Source string   // current name
	Target string   // rendered target name
	Groups []string // capture group texts, in order
}

// NoOp reports whether the entry leaves the name unchanged.
func (e Entry) NoOp() bool {
	return e.Source == e.Target
}

// 📋 Plan is the ordered set of entries for one run, plus the resolved index
// width once auto-sizing is finalized. Built once per invocation.
type Plan struct {
	Entries []Entry
	// IndexWidth is the resolved \(index) width; 0 when the template uses
	// no index.
	IndexWidth int

	// order is the validated execution order (indices into Entries), set by
	// Validate when rename chains require running some entries first.
	order []int
}

// Empty reports whether no file matched.
func (p *Plan) Empty() bool {
	return len(p.Entries) == 0
}

// ExecutionOrder returns the entries in the order the executor must apply
// them. Before validation this is simply the build order.
func (p *Plan) ExecutionOrder() []Entry {
	if p.order == nil {
		return p.Entries
	}
	ordered := make([]Entry, len(p.order))
	for i, idx := range p.order {
		ordered[i] = p.Entries[idx]
	}
	return ordered
}
