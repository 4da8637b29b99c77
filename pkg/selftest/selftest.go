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

// Package selftest runs built-in end-to-end scenarios against scratch
// directories, exercising the whole pipeline: compile, plan, validate,
// execute, and the resulting directory contents.
package selftest

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/rexname/rexname/pkg/config"
	"github.com/rexname/rexname/pkg/fsx"
	"github.com/rexname/rexname/pkg/log"
	"github.com/rexname/rexname/pkg/operation"
)

// The scratch fixture: CaSe/case × 1..3 × one of these suffixes. On a
// case-insensitive filesystem the second prefix collapses into the first,
// which is how the harness detects what it is running on.
const suffixes = "qwertyuiop"

// caseMode describes the filesystem's treatment of letter case
type caseMode int

const (
	caseSensitive caseMode = iota
	casePreserving
	caseInsensitive
	caseBroken
)

// 🧪 scenario is one end-to-end case: options in, directory contents out
type scenario struct {
	desc    string
	opts    config.Options
	wantErr bool     // the plan must be rejected and the directory untouched
	want    []string // expected directory contents after the run
}

// Run executes the suite in scratch directories under baseDir (a temp
// location when baseDir is empty) and returns the number of failures.
func Run(ctx context.Context, baseDir string) (int, error) {
	mode, err := detectCaseMode(baseDir)
	if err != nil {
		return 0, err
	}

	var scenarios []scenario
	switch mode {
	case caseSensitive:
		pterm.Info.Println("Testing on a case-sensitive filesystem.")
		scenarios = sensitiveScenarios()
	case casePreserving:
		pterm.Info.Println("Testing on a case-preserving filesystem.")
		scenarios = preservingScenarios()
	case caseInsensitive:
		return 0, errors.Errorf("truly case-insensitive filesystems are not supported by the selftest")
	default:
		return 0, errors.Errorf("scratch files were not created correctly")
	}

	failures := 0
	for i, sc := range scenarios {
		if err := runScenario(ctx, baseDir, mode, sc); err != nil {
			failures++
			pterm.Error.Printfln("Test %d (%s) failed: %v", i+1, sc.desc, err)
			continue
		}
		pterm.Success.Printfln("Test %d (%s) OK.", i+1, sc.desc)
	}

	if failures == 0 {
		pterm.Success.Println("All tests OK.")
	}
	return failures, nil
}

// detectCaseMode creates one scratch fixture and inspects what survived.
func detectCaseMode(baseDir string) (caseMode, error) {
	dir, err := makeScratch(baseDir)
	if err != nil {
		return caseBroken, err
	}
	defer os.RemoveAll(dir)

	names, err := listNames(dir)
	if err != nil {
		return caseBroken, err
	}
	switch len(names) {
	case 60:
		return caseSensitive, nil
	case 30:
		for _, name := range names {
			if !strings.HasPrefix(name, "CaSe") {
				return caseInsensitive, nil
			}
		}
		return casePreserving, nil
	default:
		return caseBroken, nil
	}
}

// runScenario builds a fresh fixture, runs the pipeline, and compares the
// resulting directory listing against the expectation.
func runScenario(ctx context.Context, baseDir string, mode caseMode, sc scenario) error {
	dir, err := makeScratch(baseDir)
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	before, err := listNames(dir)
	if err != nil {
		return err
	}

	// The console stays silent during the suite; zerolog still collects
	// structured output if the caller enabled debug logging.
	console := log.New(io.Discard, io.Discard, *zerolog.Ctx(ctx), true)

	opts := sc.opts
	opts.Quiet = true
	result, runErr := operation.Run(ctx, opts, fsx.NewOSDir(dir), console)

	after, err := listNames(dir)
	if err != nil {
		return err
	}

	if sc.wantErr {
		if runErr == nil {
			return errors.Errorf("expected the plan to be rejected, but it ran")
		}
		if diff := diffSets(before, after); diff != "" {
			return errors.Errorf("rejected plan still mutated the directory: %s", diff)
		}
		return nil
	}

	if runErr != nil {
		return runErr
	}
	if !result.OK() {
		return errors.Errorf("%d entries failed to execute", len(result.Failed))
	}
	if diff := diffSets(sc.want, after); diff != "" {
		return errors.Errorf("unexpected directory contents: %s", diff)
	}
	return nil
}

// makeScratch creates a scratch directory populated with the fixture files.
func makeScratch(baseDir string) (string, error) {
	dir, err := os.MkdirTemp(baseDir, "rexname_*.selftest")
	if err != nil {
		return "", errors.Errorf("creating scratch directory: %w", err)
	}
	for _, prefix := range []string{"CaSe", "case"} {
		for i := 1; i <= 3; i++ {
			for _, suffix := range suffixes {
				name := fmt.Sprintf("%s%d%c", prefix, i, suffix)
				path := dir + string(os.PathSeparator) + name
				if err := os.WriteFile(path, []byte(path+"\r\n"), 0o644); err != nil {
					os.RemoveAll(dir)
					return "", errors.Errorf("creating scratch file %s: %w", name, err)
				}
			}
		}
	}
	return dir, nil
}

func listNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("listing scratch directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// diffSets compares two name sets and describes extra/missing entries.
func diffSets(want, got []string) string {
	wantSet := make(map[string]bool, len(want))
	for _, name := range want {
		wantSet[name] = true
	}
	gotSet := make(map[string]bool, len(got))
	for _, name := range got {
		gotSet[name] = true
	}

	var extra, missing []string
	for name := range gotSet {
		if !wantSet[name] {
			extra = append(extra, name)
		}
	}
	for name := range wantSet {
		if !gotSet[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(extra)
	sort.Strings(missing)

	switch {
	case len(extra) > 0 && len(missing) > 0:
		return fmt.Sprintf("extra %v, missing %v", extra, missing)
	case len(extra) > 0:
		return fmt.Sprintf("extra %v", extra)
	case len(missing) > 0:
		return fmt.Sprintf("missing %v", missing)
	default:
		return ""
	}
}
