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
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rexname/rexname/pkg/config"
	"github.com/rexname/rexname/pkg/pattern"
)

// Build produces a plan for classic (template) mode. Files are considered in
// listing order; that order decides index assignment. The builder is pure
// transformation; colliding targets are the validator's concern.
func Build(ctx context.Context, files []string, spec *pattern.MatchSpec, tmpl *pattern.Template, idx config.IndexConfig, xform pattern.Transform) (*Plan, error) {
	logger := zerolog.Ctx(ctx)

	// A template referencing a group the pattern does not define fails the
	// whole run up front, not per file.
	if err := tmpl.Validate(spec.NumGroups()); err != nil {
		return nil, err
	}

	type match struct {
		name   string
		groups []string
	}
	var matched []match
	for _, name := range files {
		groups, ok := spec.Match(name)
		if !ok {
			continue
		}
		matched = append(matched, match{name: name, groups: groups})
	}
	logger.Debug().
		Int("candidates", len(files)).
		Int("matched", len(matched)).
		Str("pattern", spec.String()).
		Msg("filtered candidates")

	p := &Plan{}
	var indexes []string
	if tmpl.HasIndex() {
		indexes = renderIndexes(len(matched), idx)
		p.IndexWidth = indexWidth(indexes, idx)
		for i := range indexes {
			indexes[i] = pad(indexes[i], p.IndexWidth, idx.PadWith)
		}
	}

	for i, m := range matched {
		index := ""
		if indexes != nil {
			index = indexes[i]
		}
		target, err := tmpl.Render(m.name, m.groups, index)
		if err != nil {
			return nil, err
		}
		p.Entries = append(p.Entries, Entry{
			Source: m.name,
			Target: xform.Apply(target),
			Groups: m.groups,
		})
	}

	return p, nil
}

// BuildSimple produces a plan for simple mode: the pattern only filters, and
// every occurrence of the FROM substring in the matched name is replaced.
func BuildSimple(ctx context.Context, files []string, spec *pattern.MatchSpec, repl *pattern.Replacer, xform pattern.Transform) (*Plan, error) {
	logger := zerolog.Ctx(ctx)

	p := &Plan{}
	for _, name := range files {
		groups, ok := spec.Match(name)
		if !ok {
			continue
		}
		p.Entries = append(p.Entries, Entry{
			Source: name,
			Target: xform.Apply(repl.Replace(name)),
			Groups: groups,
		})
	}
	logger.Debug().
		Int("candidates", len(files)).
		Int("matched", len(p.Entries)).
		Msg("built simple plan")

	return p, nil
}

// renderIndexes returns the unpadded decimal index strings for count entries.
func renderIndexes(count int, idx config.IndexConfig) []string {
	out := make([]string, count)
	for i := 0; i < count; i++ {
		out[i] = strconv.Itoa(idx.First + i*idx.Step)
	}
	return out
}

// indexWidth resolves the index width. Auto width is the longest rendered
// index string in the plan, so every index (including negative ones) pads to
// the same number of characters and none is ever truncated.
func indexWidth(indexes []string, idx config.IndexConfig) int {
	if !idx.Auto() {
		return idx.FixedDigits()
	}
	width := 1
	for _, s := range indexes {
		if len(s) > width {
			width = len(s)
		}
	}
	return width
}

// pad left-pads s with the pad character. Values wider than the width pass
// through unchanged.
func pad(s string, width int, padWith string) string {
	if missing := width - len(s); missing > 0 {
		return strings.Repeat(padWith, missing) + s
	}
	return s
}
