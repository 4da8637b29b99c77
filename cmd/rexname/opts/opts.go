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

// Package opts carries the options shared between the root command and its
// subcommands.
package opts

import "fmt"

// RootOpts contains the persistent flags every command honors.
type RootOpts struct {
	Quiet bool   // suppress all output; exit codes still apply
	Test  bool   // dry run: print the plan, mutate nothing
	Dir   string // directory to operate on; "" means cwd
	Debug bool   // enable debug logging
}

// Path returns the directory to operate on.
func (o *RootOpts) Path() string {
	if o.Dir == "" {
		return "."
	}
	return o.Dir
}

// ExitError carries a specific process exit code out of a command whose
// diagnostics were already printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
