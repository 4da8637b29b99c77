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

package selftest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rexname/rexname/pkg/config"
)

func classicOpts(pattern, target string) config.Options {
	return config.Options{Pattern: pattern, Target: target, Index: config.DefaultIndex()}
}

func simpleOpts(from, to, pattern string) config.Options {
	return config.Options{Simple: true, From: from, To: to, Pattern: pattern, Index: config.DefaultIndex()}
}

// mapNames renders one name per fixture cell (1..3 × suffixes).
func mapNames(f func(i int, s rune) string) []string {
	var out []string
	for i := 1; i <= 3; i++ {
		for _, s := range suffixes {
			out = append(out, f(i, s))
		}
	}
	return out
}

// prefixNames lists the fixture names for one prefix.
func prefixNames(prefix string) []string {
	return mapNames(func(i int, s rune) string {
		return fmt.Sprintf("%s%d%c", prefix, i, s)
	})
}

// indexNames renders prefix+index names the way the pipeline pads them.
func indexNames(prefix string, first, step, count, width int, padWith string) []string {
	out := make([]string, count)
	for i := 0; i < count; i++ {
		s := strconv.Itoa(first + i*step)
		if missing := width - len(s); missing > 0 {
			s = strings.Repeat(padWith, missing) + s
		}
		out[i] = prefix + s
	}
	return out
}

// exceptE renders the fixture after renaming, with names ending in "e" left
// alone (the `e$` except-pattern scenarios).
func exceptE(kept string, rename func(i int, s rune) string) []string {
	return mapNames(func(i int, s rune) string {
		if s == 'e' {
			return fmt.Sprintf("%s%d%c", kept, i, s)
		}
		return rename(i, s)
	})
}

func concat(sets ...[]string) []string {
	var out []string
	for _, set := range sets {
		out = append(out, set...)
	}
	return out
}

const fixtureRegex = `CaSe(\d[qwertyuiop])`

// sensitiveScenarios is the suite for case-sensitive filesystems, where both
// the CaSe and case fixture prefixes survive (60 files).
func sensitiveScenarios() []scenario {
	withExcept := func(opts config.Options) config.Options {
		opts.Except = "e$"
		return opts
	}
	insensitive := func(opts config.Options) config.Options {
		opts.CaseInsensitive = true
		return opts
	}
	upper := func(opts config.Options) config.Options {
		opts.Upper = true
		return opts
	}

	return []scenario{
		{
			desc: "CaSe -> BrandNew",
			opts: classicOpts(fixtureRegex, `BrandNew\1`),
			want: concat(prefixNames("BrandNew"), prefixNames("case")),
		},
		{
			desc:    "CaSe -> case collides with existing files",
			opts:    classicOpts(fixtureRegex, `case\1`),
			wantErr: true,
		},
		{
			desc: "CaSe -> SeCa (except e$)",
			opts: withExcept(classicOpts(fixtureRegex, `SeCa\1`)),
			want: concat(
				exceptE("CaSe", func(i int, s rune) string { return fmt.Sprintf("SeCa%d%c", i, s) }),
				prefixNames("case"),
			),
		},
		{
			desc: "CaSe -> SeCa (U, except e$)",
			opts: upper(withExcept(classicOpts(fixtureRegex, `SeCa\1`))),
			want: concat(
				exceptE("CaSe", func(i int, s rune) string {
					return strings.ToUpper(fmt.Sprintf("SeCa%d%c", i, s))
				}),
				prefixNames("case"),
			),
		},
		{
			desc:    "CaSe (i) -> SeCa (U) folds both prefixes together",
			opts:    insensitive(upper(withExcept(classicOpts(fixtureRegex, `SeCa\1`)))),
			wantErr: true,
		},
		{
			desc: "CaSe (i) -> index (auto)",
			opts: insensitive(classicOpts(fixtureRegex, `C\(index)`)),
			want: indexNames("C", 1, 1, 60, 2, "0"),
		},
		{
			desc: "CaSe (i) -> index (100, +2, _, auto)",
			opts: func() config.Options {
				opts := insensitive(classicOpts(fixtureRegex, `C\(index)`))
				opts.Index = config.IndexConfig{First: 100, Step: 2, Digits: config.DigitsAuto, PadWith: "_"}
				return opts
			}(),
			want: indexNames("C", 100, 2, 60, 3, "_"),
		},
		{
			desc: "CaSe (i) -> index (100, +2, _, 5) as copies",
			opts: func() config.Options {
				opts := insensitive(classicOpts(fixtureRegex, `C\(index)`))
				opts.Index = config.IndexConfig{First: 100, Step: 2, Digits: "5", PadWith: "_"}
				opts.Copy = true
				return opts
			}(),
			want: concat(indexNames("C", 100, 2, 60, 5, "_"), prefixNames("CaSe"), prefixNames("case")),
		},
		{
			desc: "simple: replace e with ee",
			opts: simpleOpts("e", "ee", fixtureRegex),
			want: concat(
				mapNames(func(i int, s rune) string {
					return strings.ReplaceAll(fmt.Sprintf("CaSe%d%c", i, s), "e", "ee")
				}),
				prefixNames("case"),
			),
		},
		{
			desc: "simple (i): replace e with ee",
			opts: insensitive(simpleOpts("e", "ee", fixtureRegex)),
			want: concat(
				mapNames(func(i int, s rune) string {
					return strings.ReplaceAll(fmt.Sprintf("CaSe%d%c", i, s), "e", "ee")
				}),
				mapNames(func(i int, s rune) string {
					return strings.ReplaceAll(fmt.Sprintf("case%d%c", i, s), "e", "ee")
				}),
			),
		},
		{
			desc:    "simple (i, U) folds both prefixes together",
			opts:    insensitive(upper(simpleOpts("e", "ee", fixtureRegex))),
			wantErr: true,
		},
		{
			desc: "simple: replace e with ee (except e$)",
			opts: withExcept(simpleOpts("e", "ee", fixtureRegex)),
			want: concat(
				exceptE("CaSe", func(i int, s rune) string {
					return strings.ReplaceAll(fmt.Sprintf("CaSe%d%c", i, s), "e", "ee")
				}),
				prefixNames("case"),
			),
		},
	}
}

// preservingScenarios is the suite for case-preserving filesystems, where
// the fixture collapses to the 30 CaSe-prefixed files.
func preservingScenarios() []scenario {
	return []scenario{
		{
			desc: "CaSe -> BrandNew",
			opts: classicOpts(fixtureRegex, `BrandNew\1`),
			want: prefixNames("BrandNew"),
		},
		{
			desc: "CaSe -> case (case-only rename of the same files)",
			opts: classicOpts(fixtureRegex, `case\1`),
			want: prefixNames("case"),
		},
		{
			desc: "[Cc][Aa][Ss][Ee] (i) -> caSE",
			opts: func() config.Options {
				opts := classicOpts(`[Cc][Aa][Ss][Ee](\d[qwertyuiop])`, `caSE\1`)
				opts.CaseInsensitive = true
				return opts
			}(),
			want: prefixNames("caSE"),
		},
		{
			desc: "CaSe -> SeCa (except e$)",
			opts: func() config.Options {
				opts := classicOpts(fixtureRegex, `SeCa\1`)
				opts.Except = "e$"
				return opts
			}(),
			want: exceptE("CaSe", func(i int, s rune) string { return fmt.Sprintf("SeCa%d%c", i, s) }),
		},
		{
			desc: "CaSe -> SeCa (U, except e$)",
			opts: func() config.Options {
				opts := classicOpts(fixtureRegex, `SeCa\1`)
				opts.Except = "e$"
				opts.Upper = true
				return opts
			}(),
			want: exceptE("CaSe", func(i int, s rune) string {
				return strings.ToUpper(fmt.Sprintf("SeCa%d%c", i, s))
			}),
		},
		{
			desc: "CaSe -> index (auto)",
			opts: classicOpts(fixtureRegex, `C\(index)`),
			want: indexNames("C", 1, 1, 30, 2, "0"),
		},
		{
			desc: "CaSe (i) -> index (100, +2, _, 5) as copies",
			opts: func() config.Options {
				opts := classicOpts(fixtureRegex, `C\(index)`)
				opts.CaseInsensitive = true
				opts.Index = config.IndexConfig{First: 100, Step: 2, Digits: "5", PadWith: "_"}
				opts.Copy = true
				return opts
			}(),
			want: concat(indexNames("C", 100, 2, 30, 5, "_"), prefixNames("CaSe")),
		},
		{
			desc: "simple: replace e with ee",
			opts: simpleOpts("e", "ee", fixtureRegex),
			want: mapNames(func(i int, s rune) string {
				return strings.ReplaceAll(fmt.Sprintf("CaSe%d%c", i, s), "e", "ee")
			}),
		},
	}
}
