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

// Package log provides the user-facing console output for rexname. Every
// console line is mirrored into zerolog so --debug runs carry the same
// information in structured form.
package log

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	nameWidth = 30 // base width for the source filename column
)

// 🎯 Console handles user-facing output alongside structured logging
type Console struct {
	zlog  zerolog.Logger
	out   io.Writer
	errw  io.Writer
	quiet bool
	mu    sync.Mutex
}

// New creates a console writer. In quiet mode nothing is printed; callers
// still learn about failures through error returns and the exit code.
func New(out, errw io.Writer, zlog zerolog.Logger, quiet bool) *Console {
	return &Console{
		zlog:  zlog,
		out:   out,
		errw:  errw,
		quiet: quiet,
	}
}

// PlanLine prints one source → target pair. In test mode the line describes
// what would happen; in live mode it reports what just happened.
func (c *Console) PlanLine(source, target string, test bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	symbol := color.New(color.FgGreen).Sprint("✓")
	if test {
		symbol = color.New(color.FgBlue).Sprint("→")
	}
	if !c.quiet {
		fmt.Fprintf(c.out, "%s %-*s -> %s\n", symbol, nameWidth, source, target)
	}
	c.zlog.Info().
		Str("source", source).
		Str("target", target).
		Bool("test", test).
		Msg("rename")
}

// Note prints an informational aside (e.g. a matched file whose name does
// not change).
func (c *Console) Note(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if !c.quiet {
		fmt.Fprintf(c.errw, "note: %s\n", color.New(color.Faint).Sprint(msg))
	}
	c.zlog.Debug().Msg(msg)
}

// Warning prints a warning to stderr.
func (c *Console) Warning(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if !c.quiet {
		fmt.Fprintf(c.errw, "%s %s\n", color.New(color.FgYellow).Sprint("warning:"), msg)
	}
	c.zlog.Warn().Msg(msg)
}

// Error prints an error to stderr.
func (c *Console) Error(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.quiet {
		fmt.Fprintf(c.errw, "%s %v\n", color.New(color.FgRed).Sprint("error:"), err)
	}
	c.zlog.Error().Err(err).Msg("run failed")
}

// Success prints a closing summary line.
func (c *Console) Success(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if !c.quiet {
		fmt.Fprintf(c.out, "%s\n", color.New(color.FgGreen).Sprint(msg))
	}
	c.zlog.Info().Msg(msg)
}
