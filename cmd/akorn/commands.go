package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/akorn-lang/akorn/internal/ast"
	"github.com/akorn-lang/akorn/internal/config"
	"github.com/akorn-lang/akorn/internal/diag"
	"github.com/akorn-lang/akorn/internal/driver"
	"github.com/akorn-lang/akorn/internal/lsp"
)

// cli runs commands against one configuration. Commands return the exit
// status instead of exiting so the REPL can keep going.
type cli struct {
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	inREPL bool
}

func (c *cli) exec(command string, args []string) int {
	switch command {
	case "run":
		return c.withFile(command, args, c.runRun)
	case "check":
		return c.withFile(command, args, c.runCheck)
	case "tokens":
		return c.withFile(command, args, c.runTokens)
	case "ast":
		return c.withFile(command, args, c.runAST)
	case "scope":
		return c.withFile(command, args, c.runScope)
	case "repl":
		if c.inREPL {
			fmt.Fprintf(c.stderr, "already in the REPL\n")
			return 1
		}
		return c.runREPL()
	case "lsp":
		return c.runLSP()
	case "version":
		fmt.Fprintf(c.stdout, "akorn %s\n", version)
		return 0
	case "help":
		usage(c.stdout)
		return 0
	default:
		fmt.Fprintf(c.stderr, "Unknown command: %s\n", command)
		usage(c.stderr)
		return 1
	}
}

// withFile reads the single file argument and hands its contents to fn.
func (c *cli) withFile(command string, args []string, fn func(filename, src string) int) int {
	if len(args) != 1 {
		fmt.Fprintf(c.stderr, "Usage: akorn %s <file>\n", command)
		return 1
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(c.stderr, "akorn: %s\n", err)
		return 1
	}
	return fn(args[0], string(data))
}

// report prints the collected diagnostics and converts them to an exit
// status.
func (c *cli) report(r *diag.Reporter) int {
	if !r.HasErrors() {
		return 0
	}
	r.Display(c.stderr)
	return 1
}

func (c *cli) runRun(filename, src string) int {
	r := driver.NewReporter(c.cfg)
	_, err := driver.Run(filename, src, c.cfg, c.stdin, c.stdout, r)
	status := c.report(r)
	if err != nil && !errors.Is(err, driver.ErrCompile) && !r.HasErrors() {
		fmt.Fprintf(c.stderr, "akorn: %s\n", err)
		return 1
	}
	return status
}

func (c *cli) runCheck(filename, src string) int {
	r := driver.NewReporter(c.cfg)
	driver.Compile(filename, src, c.cfg, r)
	return c.report(r)
}

func (c *cli) runTokens(filename, src string) int {
	r := driver.NewReporter(c.cfg)
	for _, tok := range driver.Tokens(filename, src, c.cfg, r) {
		fmt.Fprintf(c.stdout, "%d:%d\t%s\t%q\n", tok.Span.Line, tok.Span.Column, tok.Type, tok.Raw)
	}
	return c.report(r)
}

func (c *cli) runAST(filename, src string) int {
	r := driver.NewReporter(c.cfg)
	unit, _ := driver.Compile(filename, src, c.cfg, r)
	ast.Fprint(c.stdout, unit.Program)
	return c.report(r)
}

func (c *cli) runScope(filename, src string) int {
	r := driver.NewReporter(c.cfg)
	unit, _ := driver.Compile(filename, src, c.cfg, r)
	ast.FprintScopes(c.stdout, unit.Program)
	return c.report(r)
}

func (c *cli) runLSP() int {
	if err := lsp.NewServer(c.cfg).Run(context.Background(), c.stdin, c.stdout); err != nil {
		fmt.Fprintf(c.stderr, "akorn: %s\n", err)
		return 1
	}
	return 0
}
