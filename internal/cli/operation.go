package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aptlite/internal/executor"
	"aptlite/internal/history"
	"aptlite/internal/ui"
	"aptlite/pkg/manager"
	"aptlite/pkg/manager/native"
)

// operationRunner is the part of the apt client that runs mutating operations.
type operationRunner interface {
	Command(op manager.Operation, packages []string) ([]string, error)
	Run(ctx context.Context, op manager.Operation, packages []string) (<-chan executor.Event, error)
}

// runOperation shows the command about to run, asks for confirmation
// unless auto-confirm or dry-run is on, then streams it.
func runOperation(ctx context.Context, r operationRunner, op manager.Operation, packages []string) error {
	cmdline, err := r.Command(op, packages)
	if err != nil {
		return err
	}

	ui.InfoMsg("%s using: %s", op.Title(), strings.Join(cmdline, " "))

	// Confirm if not auto-confirmed
	if !cfg.General.AutoConfirm && !cfg.General.DryRun {
		confirmed, err := ui.Confirm("Proceed?", true)
		if err != nil {
			return err
		}
		if !confirmed {
			return ErrAborted
		}
	}

	return streamOperation(ctx, r, op, packages)
}

// streamOperation prints every output line as it arrives, then the done
// marker, and records the outcome in history.
func streamOperation(ctx context.Context, r operationRunner, op manager.Operation, packages []string) error {
	entry := history.NewEntry(op, packages)

	events, err := r.Run(ctx, op, packages)
	if err != nil {
		entry.ExitCode = -1
		entry.MarkFailed(err)
		recordHistory(entry)
		return err
	}

	var lines []string
	var done executor.Event
	for ev := range events {
		if ev.Done {
			done = ev
			continue
		}
		ui.Line(ev.Line)
		lines = append(lines, ev.Line)
	}

	if !done.Done {
		entry.MarkFailed(errors.New("interrupted"))
		recordHistory(entry)
		return fmt.Errorf("%w: interrupted", ErrOperationFailed)
	}

	ui.Line(manager.DoneMarker)
	entry.Complete(done, len(lines))
	recordHistory(entry)

	if done.Success() {
		ui.SuccessMsg("Operation completed.")
		return nil
	}

	if f := native.Diagnose(lines); f != nil {
		ui.WarningMsg("%s", f.String())
	}
	if done.ExitCode >= 0 {
		return fmt.Errorf("%w (exit status %d)", ErrOperationFailed, done.ExitCode)
	}
	return fmt.Errorf("%w: %v", ErrOperationFailed, done.Err)
}

// recordHistory saves entry when history is enabled. Failures only warn.
func recordHistory(entry *history.Entry) {
	if !cfg.General.History {
		return
	}

	store, err := openHistory()
	if err != nil {
		if cfg.Output.Verbose {
			ui.WarningMsg("Could not open history: %v", err)
		}
		return
	}
	defer store.Close()

	if err := store.Record(entry); err != nil && cfg.Output.Verbose {
		ui.WarningMsg("Could not record history: %v", err)
	}
}
