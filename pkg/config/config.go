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

// Package config assembles and validates the per-run options: matching mode,
// case handling, index numbering, and output behavior. It also loads rule
// files for batch runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rexname/rexname/pkg/pattern"
)

// DigitsAuto sizes the index width from the largest index the plan uses.
const DigitsAuto = "auto"

// ❌ ConfigError reports conflicting or malformed options. It aborts the run
// before any file is touched.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// 🔢 IndexConfig controls the \(index) placeholder. Immutable for a run.
type IndexConfig struct {
	First   int    // value of the first index substitution
	Step    int    // added per indexed entry; may be negative
	Digits  string // fixed width, or "auto"
	PadWith string // single padding character
}

// DefaultIndex returns the index numbering defaults: 1, +1, auto width,
// zero padding.
func DefaultIndex() IndexConfig {
	return IndexConfig{First: 1, Step: 1, Digits: DigitsAuto, PadWith: "0"}
}

// Auto reports whether the width is resolved from the plan.
func (c IndexConfig) Auto() bool {
	return strings.EqualFold(c.Digits, DigitsAuto)
}

// FixedDigits returns the configured fixed width. Callers check Auto first.
func (c IndexConfig) FixedDigits() int {
	n, _ := strconv.Atoi(c.Digits)
	return n
}

func (c IndexConfig) validate() error {
	if c.Step == 0 {
		return &ConfigError{Reason: "--index-step must not be zero"}
	}
	if !c.Auto() {
		n, err := strconv.Atoi(c.Digits)
		if err != nil || n < 1 {
			return &ConfigError{Reason: fmt.Sprintf("--index-digits must be a positive number or %q, got %q", DigitsAuto, c.Digits)}
		}
	}
	if utf8.RuneCountInString(c.PadWith) != 1 {
		return &ConfigError{Reason: fmt.Sprintf("--index-pad-with must be a single character, got %q", c.PadWith)}
	}
	return nil
}

// 🔧 Options is the full configuration of one rename run
type Options struct {
	// Classic mode
	Pattern string // matching expression (regex, or glob with Glob set)
	Target  string // target template

	// Simple mode
	Simple bool
	From   string // literal substring to find
	To     string // replacement text

	Except          string // unanchored exclusion pattern
	CaseInsensitive bool
	Lower           bool
	Upper           bool
	Glob            bool
	Copy            bool
	Test            bool
	Quiet           bool
	Dir             string // directory to operate on; "" means cwd

	Index IndexConfig
}

// Validate checks flag coherence. All violations are ConfigErrors and occur
// before anything on disk is read.
func (o *Options) Validate() error {
	if o.Lower && o.Upper {
		return &ConfigError{Reason: "--lower and --upper are mutually exclusive"}
	}
	if o.Simple && o.Glob {
		return &ConfigError{Reason: "--glob has no effect in simple mode"}
	}
	if o.Simple && o.From == "" {
		return &ConfigError{Reason: "simple mode requires a non-empty FROM substring"}
	}
	if !o.Simple && o.Pattern == "" {
		return &ConfigError{Reason: "a matching pattern is required"}
	}
	return o.Index.validate()
}

// Transform returns the whole-name case transform the options request.
func (o *Options) Transform() pattern.Transform {
	switch {
	case o.Lower:
		return pattern.TransformLower
	case o.Upper:
		return pattern.TransformUpper
	default:
		return pattern.TransformNone
	}
}

// SeparatorWarnings lists the arguments that contain a path separator. The
// tool never traverses directories, so a separator is almost certainly a
// mistake worth telling the user about.
func (o *Options) SeparatorWarnings() []string {
	args := []struct {
		name  string
		value string
	}{
		{"pattern", o.Pattern},
		{"target", o.Target},
		{"from", o.From},
		{"to", o.To},
		{"except", o.Except},
	}
	var warned []string
	for _, arg := range args {
		if strings.ContainsRune(arg.value, os.PathSeparator) {
			warned = append(warned, arg.name)
		}
	}
	return warned
}
