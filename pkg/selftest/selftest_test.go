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
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeScratch(t *testing.T) {
	dir, err := makeScratch(t.TempDir())
	require.NoError(t, err)

	names, err := listNames(dir)
	require.NoError(t, err)

	// 2 prefixes × 3 numbers × 10 suffixes, minus whatever the filesystem
	// collapses. Either way every name must come from the fixture grid.
	assert.Contains(t, []int{30, 60}, len(names))
	valid := make(map[string]bool, 60)
	for _, prefix := range []string{"CaSe", "case"} {
		for i := 1; i <= 3; i++ {
			for _, s := range suffixes {
				valid[fmt.Sprintf("%s%d%c", prefix, i, s)] = true
			}
		}
	}
	for _, name := range names {
		assert.True(t, valid[name], "unexpected scratch file %s", name)
	}
}

func TestDetectCaseMode(t *testing.T) {
	mode, err := detectCaseMode(t.TempDir())
	require.NoError(t, err)

	if runtime.GOOS == "linux" {
		assert.Equal(t, caseSensitive, mode)
	} else {
		assert.Contains(t, []caseMode{caseSensitive, casePreserving}, mode)
	}
}

func TestDiffSets(t *testing.T) {
	tests := []struct {
		name string
		want []string
		got  []string
		diff string
	}{
		{name: "equal", want: []string{"a", "b"}, got: []string{"b", "a"}, diff: ""},
		{name: "extra", want: []string{"a"}, got: []string{"a", "b"}, diff: "extra [b]"},
		{name: "missing", want: []string{"a", "b"}, got: []string{"a"}, diff: "missing [b]"},
		{name: "both", want: []string{"a"}, got: []string{"b"}, diff: "extra [b], missing [a]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.diff, diffSets(tt.want, tt.got))
		})
	}
}

func TestIndexNames(t *testing.T) {
	assert.Equal(t, []string{"C__100", "C__102", "C__104"}, indexNames("C", 100, 2, 3, 5, "_"))
	assert.Equal(t, []string{"C1", "C2"}, indexNames("C", 1, 1, 2, 1, "0"))
}

func TestRun_FullSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the full end-to-end suite")
	}

	failures, err := Run(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, failures)
}
