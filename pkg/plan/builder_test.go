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

package plan_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rexname/rexname/pkg/config"
	"github.com/rexname/rexname/pkg/pattern"
	"github.com/rexname/rexname/pkg/plan"
)

func mustSpec(t *testing.T, raw string, opts pattern.Options) *pattern.MatchSpec {
	t.Helper()
	spec, err := pattern.Compile(raw, opts)
	require.NoError(t, err)
	return spec
}

func mustTemplate(t *testing.T, raw string) *pattern.Template {
	t.Helper()
	tmpl, err := pattern.ParseTemplate(raw)
	require.NoError(t, err)
	return tmpl
}

func pairs(p *plan.Plan) map[string]string {
	out := make(map[string]string, len(p.Entries))
	for _, e := range p.Entries {
		out[e.Source] = e.Target
	}
	return out
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		pattern   string
		patOpts   pattern.Options
		template  string
		index     config.IndexConfig
		xform     pattern.Transform
		want      map[string]string
		wantWidth int
	}{
		{
			name:     "group_substitution",
			files:    []string{"IMG0001.JPG", "IMG0002.JPG", "notes.txt"},
			pattern:  `IMG(\d+)\.JPG`,
			template: `Photo \1.jpg`,
			want: map[string]string{
				"IMG0001.JPG": "Photo 0001.jpg",
				"IMG0002.JPG": "Photo 0002.jpg",
			},
		},
		{
			name:     "whole_name_reference",
			files:    []string{"report.txt"},
			pattern:  `report\.txt`,
			template: `archived_\0`,
			want:     map[string]string{"report.txt": "archived_report.txt"},
		},
		{
			name:     "index_auto_width_single_digit",
			files:    []string{"IMG0001.JPG", "IMG0002.JPG"},
			pattern:  `IMG\d\d\d\d\.JPG`,
			template: `Photo \(index).jpg`,
			want: map[string]string{
				"IMG0001.JPG": "Photo 1.jpg",
				"IMG0002.JPG": "Photo 2.jpg",
			},
			wantWidth: 1,
		},
		{
			name:     "index_auto_width_spans_magnitudes",
			files:    []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10"},
			pattern:  `a\d+`,
			template: `b\(index)`,
			want: map[string]string{
				"a1": "b01", "a2": "b02", "a3": "b03", "a4": "b04", "a5": "b05",
				"a6": "b06", "a7": "b07", "a8": "b08", "a9": "b09", "a10": "b10",
			},
			wantWidth: 2,
		},
		{
			name:     "index_first_step_pad",
			files:    []string{"a1", "a2", "a3"},
			pattern:  `a\d`,
			template: `b\(index)`,
			index:    config.IndexConfig{First: 100, Step: 2, Digits: "5", PadWith: "_"},
			want: map[string]string{
				"a1": "b__100",
				"a2": "b__102",
				"a3": "b__104",
			},
			wantWidth: 5,
		},
		{
			name:     "index_fixed_width_never_truncates",
			files:    []string{"a1"},
			pattern:  `a\d`,
			template: `b\(index)`,
			index:    config.IndexConfig{First: 12345, Step: 1, Digits: "2", PadWith: "0"},
			want:     map[string]string{"a1": "b12345"},
			wantWidth: 2,
		},
		{
			name:     "negative_step_auto_width_covers_sign",
			files:    []string{"a1", "a2", "a3"},
			pattern:  `a\d`,
			template: `b\(index)`,
			index:    config.IndexConfig{First: 1, Step: -1, Digits: config.DigitsAuto, PadWith: "0"},
			want: map[string]string{
				"a1": "b01",
				"a2": "b00",
				"a3": "b-1",
			},
			wantWidth: 2,
		},
		{
			name:     "index_counts_matched_entries_only",
			files:    []string{"skip.txt", "a1", "skip2.txt", "a2"},
			pattern:  `a\d`,
			template: `b\(index)`,
			want: map[string]string{
				"a1": "b1",
				"a2": "b2",
			},
			wantWidth: 1,
		},
		{
			name:     "transform_applies_to_whole_target",
			files:    []string{"IMG0001.JPG"},
			pattern:  `IMG(\d+)\.JPG`,
			template: `Photo \1.JPG`,
			xform:    pattern.TransformLower,
			want:     map[string]string{"IMG0001.JPG": "photo 0001.jpg"},
		},
		{
			name:     "no_matches_yields_empty_plan",
			files:    []string{"notes.txt"},
			pattern:  `IMG\d+\.JPG`,
			template: `x`,
			want:     map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := tt.index
			if idx == (config.IndexConfig{}) {
				idx = config.DefaultIndex()
			}

			p, err := plan.Build(context.Background(), tt.files,
				mustSpec(t, tt.pattern, tt.patOpts),
				mustTemplate(t, tt.template),
				idx, tt.xform)
			require.NoError(t, err)

			assert.Equal(t, tt.want, pairs(p))
			assert.Equal(t, tt.wantWidth, p.IndexWidth)
		})
	}
}

func TestBuild_TemplateGroupOutOfRange(t *testing.T) {
	_, err := plan.Build(context.Background(), []string{"a1"},
		mustSpec(t, `a(\d)`, pattern.Options{}),
		mustTemplate(t, `b\2`),
		config.DefaultIndex(), pattern.TransformNone)

	var tmplErr *pattern.TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.Equal(t, 2, tmplErr.Group)
	assert.Equal(t, 1, tmplErr.NumGroups)
}

func TestBuildSimple(t *testing.T) {
	tests := []struct {
		name            string
		files           []string
		pattern         string
		from, to        string
		caseInsensitive bool
		xform           pattern.Transform
		want            map[string]string
	}{
		{
			name:    "underscores_to_spaces",
			files:   []string{"a_b.txt", "c.txt", "readme.md"},
			pattern: `.*\.txt`,
			from:    "_",
			to:      " ",
			want: map[string]string{
				"a_b.txt": "a b.txt",
				"c.txt":   "c.txt",
			},
		},
		{
			name:    "every_occurrence_replaced",
			files:   []string{"a_b_c_d.txt"},
			pattern: `.*\.txt`,
			from:    "_",
			to:      "-",
			want:    map[string]string{"a_b_c_d.txt": "a-b-c-d.txt"},
		},
		{
			name:            "case_insensitive_replace",
			files:           []string{"CaSe1i"},
			pattern:         `CaSe\d[qwertyuiop]`,
			from:            "cAs",
			to:              "Fac",
			caseInsensitive: true,
			want:            map[string]string{"CaSe1i": "Face1i"},
		},
		{
			name:    "transform_after_replace",
			files:   []string{"A_B.TXT"},
			pattern: `.*\.TXT`,
			from:    "_",
			to:      " ",
			xform:   pattern.TransformLower,
			want:    map[string]string{"A_B.TXT": "a b.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := mustSpec(t, tt.pattern, pattern.Options{CaseInsensitive: tt.caseInsensitive})
			repl := pattern.NewReplacer(tt.from, tt.to, tt.caseInsensitive)

			p, err := plan.BuildSimple(context.Background(), tt.files, spec, repl, tt.xform)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pairs(p))
		})
	}
}
