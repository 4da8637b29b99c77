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

// Package pattern turns the user's matching expression and target template
// into compiled, immutable values the rest of the pipeline consumes. Matching
// against the main pattern is always full-name (anchored at both ends);
// except-patterns are local (unanchored) searches.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ❌ CompileError reports an uncompilable matching expression. It aborts the
// run before any file is touched.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// 🔧 Options controls how the matching expression is compiled
type Options struct {
	// CaseInsensitive matches without regard to letter case.
	CaseInsensitive bool
	// Glob treats the pattern as a doublestar glob instead of a regular
	// expression. Glob patterns capture no groups.
	Glob bool
	// Except is an optional exclusion pattern, matched anywhere in the name.
	Except string
}

// 🎯 MatchSpec is a compiled matcher for candidate filenames. Immutable once
// built; safe to share across pipeline stages.
type MatchSpec struct {
	raw    string
	re     *regexp.Regexp // nil in glob mode
	glob   string
	except *regexp.Regexp
	fold   bool
}

// Compile builds a MatchSpec from a raw pattern. Regex patterns are anchored
// as ^pattern$ so a partial match never selects a file the user did not mean.
func Compile(raw string, opts Options) (*MatchSpec, error) {
	spec := &MatchSpec{raw: raw, fold: opts.CaseInsensitive}

	if opts.Glob {
		if !doublestar.ValidatePattern(raw) {
			return nil, &CompileError{Pattern: raw, Err: doublestar.ErrBadPattern}
		}
		spec.glob = raw
	} else {
		expr := "^" + raw + "$"
		if opts.CaseInsensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &CompileError{Pattern: raw, Err: err}
		}
		spec.re = re
	}

	if opts.Except != "" {
		expr := opts.Except
		if opts.CaseInsensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &CompileError{Pattern: opts.Except, Err: err}
		}
		spec.except = re
	}

	return spec, nil
}

// Excluded reports whether the except-pattern rules the name out.
func (s *MatchSpec) Excluded(name string) bool {
	return s.except != nil && s.except.MatchString(name)
}

// Match tests name against the full pattern. On success it returns the
// capture group texts in order (empty for glob patterns).
func (s *MatchSpec) Match(name string) ([]string, bool) {
	if s.Excluded(name) {
		return nil, false
	}

	if s.re == nil {
		candidate := name
		pattern := s.glob
		if s.fold {
			candidate = strings.ToLower(candidate)
			pattern = strings.ToLower(pattern)
		}
		ok, err := doublestar.Match(pattern, candidate)
		if err != nil || !ok {
			return nil, false
		}
		return nil, true
	}

	m := s.re.FindStringSubmatch(name)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

// NumGroups returns the number of capture groups the pattern defines.
func (s *MatchSpec) NumGroups() int {
	if s.re == nil {
		return 0
	}
	return s.re.NumSubexp()
}

// String returns the raw pattern for diagnostics.
func (s *MatchSpec) String() string {
	return s.raw
}

// 🔄 Replacer implements simple mode: literal substring replacement of every
// occurrence, bypassing group templating entirely.
type Replacer struct {
	re *regexp.Regexp
	to string
}

// NewReplacer builds a replacer for the literal substring from. With
// caseInsensitive set, occurrences are found without regard to case but
// replaced verbatim with to.
func NewReplacer(from, to string, caseInsensitive bool) *Replacer {
	expr := regexp.QuoteMeta(from)
	if caseInsensitive {
		expr = "(?i)" + expr
	}
	// QuoteMeta output always compiles
	return &Replacer{re: regexp.MustCompile(expr), to: to}
}

// Replace rewrites every occurrence of the substring within name.
func (r *Replacer) Replace(name string) string {
	return r.re.ReplaceAllLiteralString(name, r.to)
}

// 🔠 Transform is the whole-name case transform applied after rendering
type Transform int

const (
	TransformNone Transform = iota
	TransformLower
	TransformUpper
)

// Apply returns the transformed name.
func (t Transform) Apply(name string) string {
	switch t {
	case TransformLower:
		return strings.ToLower(name)
	case TransformUpper:
		return strings.ToUpper(name)
	default:
		return name
	}
}

// String returns the flag-ish name of the transform.
func (t Transform) String() string {
	switch t {
	case TransformLower:
		return "lower"
	case TransformUpper:
		return "upper"
	default:
		return "none"
	}
}
