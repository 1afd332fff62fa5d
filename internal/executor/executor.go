// Package executor handles command execution with privilege escalation support.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Executor handles command execution with optional sudo elevation.
type Executor struct {
	dryRun         bool
	verbose        bool
	useSudo        bool
	nonInteractive bool // sudo must never prompt (the TUI owns the terminal)
	trace          io.Writer
}

// New creates a new Executor with the given options.
func New(dryRun, verbose bool) *Executor {
	return &Executor{
		dryRun:  dryRun,
		verbose: verbose,
		useSudo: true,
		trace:   os.Stderr,
	}
}

// SetDryRun enables or disables dry-run mode.
func (e *Executor) SetDryRun(dryRun bool) {
	e.dryRun = dryRun
}

// SetVerbose enables or disables verbose mode.
func (e *Executor) SetVerbose(verbose bool) {
	e.verbose = verbose
}

// SetUseSudo controls whether privileged streams are prefixed with sudo.
func (e *Executor) SetUseSudo(useSudo bool) {
	e.useSudo = useSudo
}

// SetNonInteractive makes sudo fail instead of prompting for a password.
func (e *Executor) SetNonInteractive(nonInteractive bool) {
	e.nonInteractive = nonInteractive
}

// SetTrace redirects verbose and dry-run output. A nil writer discards it.
func (e *Executor) SetTrace(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	e.trace = w
}

// DryRun reports whether commands are only printed.
func (e *Executor) DryRun() bool {
	return e.dryRun
}

// Output runs a command and returns its stdout. stderr is captured and
// attached to the error when the command fails. Output is only used for
// read-only queries, so it runs even in dry-run mode.
func (e *Executor) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.tracef("Executing: %s %s", name, strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.String(), fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return stdout.String(), fmt.Errorf("%s: %w", name, err)
	}
	return stdout.String(), nil
}

// Stream starts a command and relays its merged stdout and stderr line by
// line. See Event for the shape of the sequence.
func (e *Executor) Stream(ctx context.Context, name string, args ...string) (<-chan Event, error) {
	if e.dryRun {
		e.printDryRun(name, args)
		return dryRunEvents(commandLine(name, args)), nil
	}

	e.tracef("Executing: %s %s", name, strings.Join(args, " "))
	return start(ctx, exec.CommandContext(ctx, name, args...))
}

// StreamSudo is Stream with sudo prepended when not already root.
func (e *Executor) StreamSudo(ctx context.Context, name string, args ...string) (<-chan Event, error) {
	name, args, err := e.elevate(name, args)
	if err != nil {
		return nil, err
	}
	return e.Stream(ctx, name, args...)
}

// elevate rewrites a command line to run with root privileges.
func (e *Executor) elevate(name string, args []string) (string, []string, error) {
	if !e.useSudo || isRoot() {
		return name, args, nil
	}
	if !hasSudo() && !e.dryRun {
		return "", nil, ErrNoPrivileges
	}

	sudoArgs := make([]string, 0, len(args)+2)
	if e.nonInteractive {
		sudoArgs = append(sudoArgs, "-n")
	}
	sudoArgs = append(sudoArgs, name)
	sudoArgs = append(sudoArgs, args...)
	return "sudo", sudoArgs, nil
}

func (e *Executor) tracef(format string, args ...interface{}) {
	if !e.verbose {
		return
	}
	fmt.Fprintf(e.trace, format+"\n", args...)
}

func (e *Executor) printDryRun(name string, args []string) {
	fmt.Fprintf(e.trace, "[dry-run] Would execute: %s\n", commandLine(name, args))
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
