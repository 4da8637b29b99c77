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

package operation_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rexname/rexname/pkg/config"
	"github.com/rexname/rexname/pkg/fsx"
	"github.com/rexname/rexname/pkg/log"
	"github.com/rexname/rexname/pkg/operation"
	"github.com/rexname/rexname/pkg/pattern"
	"github.com/rexname/rexname/pkg/plan"
)

func newConsole() (*log.Console, *bytes.Buffer) {
	var errw bytes.Buffer
	return log.New(&bytes.Buffer{}, &errw, zerolog.Nop(), false), &errw
}

func classicOpts(pat, target string) config.Options {
	return config.Options{Pattern: pat, Target: target, Index: config.DefaultIndex()}
}

func TestRun_EndToEnd(t *testing.T) {
	dir := fsx.NewMemDir("IMG0001.JPG", "IMG0002.JPG", "notes.txt")
	console, _ := newConsole()

	result, err := operation.Run(context.Background(),
		classicOpts(`IMG(\d+)\.JPG`, `Photo \1.jpg`), dir, console)
	require.NoError(t, err)

	assert.True(t, result.OK())
	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, []string{"Photo 0001.jpg", "Photo 0002.jpg", "notes.txt"}, dir.Names())
}

func TestRun_SimpleMode(t *testing.T) {
	dir := fsx.NewMemDir("a_b.txt", "c.txt", "readme.md")
	console, _ := newConsole()

	opts := config.Options{
		Simple:  true,
		From:    "_",
		To:      " ",
		Pattern: `.*\.txt`,
		Index:   config.DefaultIndex(),
	}

	result, err := operation.Run(context.Background(), opts, dir, console)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.Skipped) // c.txt matched but did not change
	assert.Equal(t, []string{"a b.txt", "c.txt", "readme.md"}, dir.Names())
}

func TestRun_RejectedPlanTouchesNothing(t *testing.T) {
	dir := fsx.NewMemDir("a1.txt", "a2.txt")
	console, _ := newConsole()

	_, err := operation.Run(context.Background(),
		classicOpts(`a\d\.txt`, `same.txt`), dir, console)

	var valErr *plan.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, []string{"a1.txt", "a2.txt"}, dir.Names())
}

func TestRun_SecondRunIsIdempotent(t *testing.T) {
	dir := fsx.NewMemDir("IMG0001.JPG", "IMG0002.JPG")
	console, _ := newConsole()
	opts := classicOpts(`IMG(\d+)\.JPG`, `Photo \1.jpg`)

	_, err := operation.Run(context.Background(), opts, dir, console)
	require.NoError(t, err)
	after := dir.Names()

	// Nothing matches anymore, so the second run changes nothing.
	result, err := operation.Run(context.Background(), opts, dir, console)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, after, dir.Names())
}

func TestRun_TestModeMatchesLiveMode(t *testing.T) {
	names := []string{"a1", "a2", "a3"}
	opts := classicOpts(`a(\d)`, `b\(index)-\1`)

	// What test mode plans...
	planned, err := operation.Plan(context.Background(), opts, fsx.NewMemDir(names...))
	require.NoError(t, err)

	// ...is exactly what live mode does.
	dir := fsx.NewMemDir(names...)
	console, _ := newConsole()
	_, err = operation.Run(context.Background(), opts, dir, console)
	require.NoError(t, err)

	want := make([]string, len(planned.Entries))
	for i, e := range planned.Entries {
		want[i] = e.Target
	}
	assert.ElementsMatch(t, want, dir.Names())
}

func TestRun_ChainedRenames(t *testing.T) {
	dir := fsx.NewMemDir("pic1", "pic2", "pic3")
	console, _ := newConsole()

	// pic1→pic2 is only legal because pic2→pic3 and pic3→pic4 move first.
	opts := classicOpts(`pic(\d)`, `pic\(index)`)
	opts.Index.First = 2

	result, err := operation.Run(context.Background(), opts, dir, console)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Applied)
	assert.Equal(t, []string{"pic2", "pic3", "pic4"}, dir.Names())
}

func TestRun_CopyKeepsSources(t *testing.T) {
	dir := fsx.NewMemDir("a1", "a2")
	console, _ := newConsole()

	opts := classicOpts(`a(\d)`, `b\1`)
	opts.Copy = true

	result, err := operation.Run(context.Background(), opts, dir, console)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, []string{"a1", "a2", "b1", "b2"}, dir.Names())
}

func TestRun_CopyOntoSameFileKeepsContent(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "a")
	require.NoError(t, os.WriteFile(src, []byte("precious"), 0o644))
	require.NoError(t, os.Link(src, filepath.Join(tmp, "A")))

	console, _ := newConsole()
	opts := classicOpts("a", "A")
	opts.Copy = true

	_, err := operation.Run(context.Background(), opts, fsx.NewOSDir(tmp), console)

	var valErr *plan.ValidationError
	require.ErrorAs(t, err, &valErr)

	data, readErr := os.ReadFile(src)
	require.NoError(t, readErr)
	assert.Equal(t, "precious", string(data))
}

func TestRun_ErrorKinds(t *testing.T) {
	dir := fsx.NewMemDir("a.txt")
	console, _ := newConsole()

	t.Run("config", func(t *testing.T) {
		opts := classicOpts("a", "b")
		opts.Lower = true
		opts.Upper = true
		_, err := operation.Run(context.Background(), opts, dir, console)
		var cfgErr *config.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("pattern", func(t *testing.T) {
		_, err := operation.Run(context.Background(), classicOpts("(", "b"), dir, console)
		var compileErr *pattern.CompileError
		assert.ErrorAs(t, err, &compileErr)
	})

	t.Run("template", func(t *testing.T) {
		_, err := operation.Run(context.Background(), classicOpts("a", `\(bogus)`), dir, console)
		var tmplErr *pattern.TemplateError
		assert.ErrorAs(t, err, &tmplErr)
	})

	// None of the failures touched the directory.
	assert.Equal(t, []string{"a.txt"}, dir.Names())
}

func TestRun_SeparatorWarning(t *testing.T) {
	dir := fsx.NewMemDir("a.txt")
	console, errw := newConsole()

	_, err := operation.Run(context.Background(),
		classicOpts(`sub/a\.txt`, "b.txt"), dir, console)
	require.NoError(t, err)

	assert.Contains(t, errw.String(), "doesn't support directory traversal")
	assert.Contains(t, errw.String(), "<pattern>")
}
