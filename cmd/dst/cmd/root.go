// Copyright 2026 The DST Authors
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

// Package cmd implements the dst command line tool.
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dstlang.org/go/dst/errors"
	"dstlang.org/go/internal/dstdebug"
)

type runFunction func(cmd *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

func newRootCmd() *Command {
	cmd := &cobra.Command{
		Use:   "dst",
		Short: "dst checks Domain Storytelling documents.",
		Long: `dst reads Domain Storytelling documents written in YAML, resolves the
references between stories, books and icon libraries, and reports problems.

A library lists icons, a book declares the agents and work objects of a
domain, and a story tells activities between them:

	story: Ordering
	book: Shop
	activities:
	  - agent: Customer
	    clauses:
	      - connector: places
	        resource: Order

Set DST_DEBUG=log to log validation cycles to standard error.`,

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &Command{Command: cmd, root: cmd}

	cmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		if err := dstdebug.Init(); err != nil {
			return err
		}
		if dstdebug.Flags.Log {
			c.logger = slog.New(slog.NewTextHandler(c.Stderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
		return nil
	}

	subCommands := []*cobra.Command{
		newDefCmd(c),
		newExportCmd(c),
		newVersionCmd(c),
		newVetCmd(c),
	}
	for _, sub := range subCommands {
		cmd.AddCommand(sub)
	}
	return c
}

// Main runs the dst tool and returns the code for passing to os.Exit.
func Main() int {
	err := mainErr(context.Background(), os.Args[1:])
	if err != nil {
		if err != ErrPrintedError {
			errors.Print(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func mainErr(ctx context.Context, args []string) error {
	cmd := New(args)
	return cmd.Run(ctx)
}

// Command is the root of the dst command tree, wrapping the cobra command
// that is currently running.
type Command struct {
	*cobra.Command

	root *cobra.Command

	logger *slog.Logger

	// hasErr indicates that something was written to Stderr.
	hasErr bool
}

type errWriter Command

func (w *errWriter) Write(b []byte) (int, error) {
	c := (*Command)(w)
	c.hasErr = true
	return c.Command.OutOrStderr().Write(b)
}

// Stderr returns a writer that records that an error was printed.
func (c *Command) Stderr() io.Writer {
	return (*errWriter)(c)
}

// Logger returns the logger for validation cycles. It discards everything
// unless logging was enabled through DST_DEBUG.
func (c *Command) Logger() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.logger
}

// SetOutput sets the destination of both standard and error output.
func (c *Command) SetOutput(w io.Writer) {
	c.root.SetOut(w)
	c.root.SetErr(w)
}

// ErrPrintedError indicates that errors were printed to stderr already.
var ErrPrintedError = errors.New("terminating because of errors")

// Run executes the command selected by the arguments given to New.
func (c *Command) Run(ctx context.Context) error {
	if err := c.root.ExecuteContext(ctx); err != nil {
		return err
	}
	if c.hasErr {
		return ErrPrintedError
	}
	return nil
}

// New creates the top-level command for the given arguments.
func New(args []string) *Command {
	cmd := newRootCmd()
	cmd.root.SetArgs(args)
	return cmd
}
