package executor

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Event is one item of a streamed command's output.
//
// A stream is zero or more line events in the order the process wrote them,
// then exactly one event with Done set, then the channel is closed.
type Event struct {
	Line string

	Done     bool
	ExitCode int
	Err      error
}

// Success reports whether this is a completion event for a zero exit.
func (ev Event) Success() bool {
	return ev.Done && ev.Err == nil && ev.ExitCode == 0
}

// start runs cmd with stdout and stderr sharing one pipe, so interleaving is
// exactly what the child produced.
func start(ctx context.Context, cmd *exec.Cmd) (<-chan Event, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, err
	}
	// The child holds its own copy of the write end.
	pw.Close()

	events := make(chan Event)
	go relay(ctx, cmd, pr, events)
	return events, nil
}

func relay(ctx context.Context, cmd *exec.Cmd, pr *os.File, events chan<- Event) {
	defer close(events)
	defer pr.Close()

	send := func(ev Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	// ReadString has no line length limit, so no line is ever dropped.
	receiving := true
	var readErr error
	reader := bufio.NewReader(pr)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if !send(Event{Line: strings.TrimRight(line, "\r\n")}) {
				receiving = false
				break
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}
	}

	// Keep the child from blocking on a full pipe before Wait.
	_, _ = io.Copy(io.Discard, pr) //nolint:errcheck

	waitErr := cmd.Wait()
	if !receiving {
		return
	}

	done := Event{Done: true, ExitCode: exitCode(waitErr), Err: waitErr}
	if done.Err == nil && readErr != nil {
		done.Err = readErr
	}
	send(done)
}

func dryRunEvents(cmdline string) <-chan Event {
	events := make(chan Event, 2)
	events <- Event{Line: "[dry-run] Would execute: " + cmdline}
	events <- Event{Done: true}
	close(events)
	return events
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
