package executor

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

// collect drains a stream, returning its lines and the completion event.
func collect(t *testing.T, events <-chan Event) ([]string, Event) {
	t.Helper()

	var lines []string
	var done Event
	completions := 0

	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				if completions != 1 {
					t.Fatalf("expected exactly one completion event, got %d", completions)
				}
				return lines, done
			}
			if ev.Done {
				completions++
				done = ev
				continue
			}
			if completions > 0 {
				t.Fatalf("line %q arrived after completion", ev.Line)
			}
			lines = append(lines, ev.Line)
		case <-timeout:
			t.Fatal("stream did not finish")
		}
	}
}

func TestNew(t *testing.T) {
	exec := New(false, false)
	if exec == nil {
		t.Fatal("New() returned nil")
	}
	if exec.DryRun() {
		t.Error("New(false, false) should not be in dry-run mode")
	}
}

func TestOutput(t *testing.T) {
	exec := New(false, false)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	output, err := exec.Output(ctx, "echo", "hello")
	if err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("Output() = %s, want to contain 'hello'", output)
	}
}

func TestOutputFailureCarriesStderr(t *testing.T) {
	exec := New(false, false)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := exec.Output(ctx, "sh", "-c", "echo broken >&2; exit 3")
	if err == nil {
		t.Fatal("Output() should return error for failing command")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error should include stderr: %v", err)
	}
}

func TestOutputDryRun(t *testing.T) {
	exec := New(true, false)
	var trace bytes.Buffer
	exec.SetTrace(&trace)

	output, err := exec.Output(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Output() in dry-run mode error: %v", err)
	}
	if strings.TrimSpace(output) != "hello" {
		t.Errorf("queries should still run in dry-run mode, got: %q", output)
	}
	if trace.Len() != 0 {
		t.Errorf("Output() should not print a dry-run notice, got %q", trace.String())
	}
}

func TestVerboseTrace(t *testing.T) {
	exec := New(false, true)
	var trace bytes.Buffer
	exec.SetTrace(&trace)

	if _, err := exec.Output(context.Background(), "true"); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if !strings.Contains(trace.String(), "Executing: true") {
		t.Errorf("verbose trace = %q", trace.String())
	}
}

func TestStreamOrder(t *testing.T) {
	exec := New(false, false)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, err := exec.Stream(ctx, "sh", "-c", "for i in 1 2 3 4 5; do echo line$i; done")
	if err != nil {
		t.Fatalf("Stream() error: %v", err)
	}

	lines, done := collect(t, events)
	want := []string{"line1", "line2", "line3", "line4", "line5"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
	if !done.Success() {
		t.Errorf("expected successful completion, got %+v", done)
	}
}

func TestStreamKeepsLongLines(t *testing.T) {
	exec := New(false, false)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// A 2 MiB line followed by normal output
	const size = 2 * 1024 * 1024
	script := fmt.Sprintf("head -c %d /dev/zero | tr '\\0' a; echo; echo after; printf tail", size)
	events, err := exec.Stream(ctx, "sh", "-c", script)
	if err != nil {
		t.Fatalf("Stream() error: %v", err)
	}

	lines, done := collect(t, events)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if len(lines[0]) != size || strings.Trim(lines[0], "a") != "" {
		t.Errorf("long line has %d bytes, want %d", len(lines[0]), size)
	}
	if lines[1] != "after" {
		t.Errorf("lines[1] = %q, want after", lines[1])
	}
	if lines[2] != "tail" {
		t.Errorf("unterminated last line = %q, want tail", lines[2])
	}
	if !done.Success() {
		t.Errorf("expected successful completion, got %+v", done)
	}
}

func TestStreamMergesStderr(t *testing.T) {
	exec := New(false, false)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, err := exec.Stream(ctx, "sh", "-c", "echo out1; echo err1 >&2; echo out2; echo err2 >&2")
	if err != nil {
		t.Fatalf("Stream() error: %v", err)
	}

	lines, _ := collect(t, events)
	want := []string{"out1", "err1", "out2", "err2"}
	if fmt.Sprint(lines) != fmt.Sprint(want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestStreamManyLines(t *testing.T) {
	exec := New(false, false)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, err := exec.Stream(ctx, "sh", "-c", "i=0; while [ $i -lt 2000 ]; do echo $i; i=$((i+1)); done")
	if err != nil {
		t.Fatalf("Stream() error: %v", err)
	}

	lines, done := collect(t, events)
	if len(lines) != 2000 {
		t.Fatalf("got %d lines, want 2000", len(lines))
	}
	for i, line := range lines {
		if line != fmt.Sprint(i) {
			t.Fatalf("lines[%d] = %q, out of order", i, line)
		}
	}
	if !done.Success() {
		t.Errorf("expected success, got %+v", done)
	}
}

func TestStreamNonZeroExit(t *testing.T) {
	exec := New(false, false)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, err := exec.Stream(ctx, "sh", "-c", "echo partial; exit 100")
	if err != nil {
		t.Fatalf("Stream() should start fine: %v", err)
	}

	lines, done := collect(t, events)
	if len(lines) != 1 || lines[0] != "partial" {
		t.Errorf("lines = %v", lines)
	}
	if done.Success() {
		t.Error("completion should not be successful")
	}
	if done.ExitCode != 100 {
		t.Errorf("ExitCode = %d, want 100", done.ExitCode)
	}
	if done.Err == nil {
		t.Error("completion should carry the exit error")
	}
}

func TestStreamStartFailure(t *testing.T) {
	exec := New(false, false)

	events, err := exec.Stream(context.Background(), "/nonexistent/aptlite-test-binary")
	if err == nil {
		t.Fatal("Stream() should fail for a missing executable")
	}
	if events != nil {
		t.Error("no event channel should be returned on start failure")
	}
}

func TestStreamDryRun(t *testing.T) {
	exec := New(true, false)

	events, err := exec.Stream(context.Background(), "apt", "install", "-y", "vim")
	if err != nil {
		t.Fatalf("Stream() dry-run error: %v", err)
	}

	lines, done := collect(t, events)
	if len(lines) != 1 || lines[0] != "[dry-run] Would execute: apt install -y vim" {
		t.Errorf("dry-run lines = %v", lines)
	}
	if !done.Success() {
		t.Error("dry-run should complete successfully")
	}
}

func TestStreamCancelledConsumer(t *testing.T) {
	exec := New(false, false)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := exec.Stream(ctx, "sh", "-c", "while true; do echo spam; done")
	if err != nil {
		t.Fatalf("Stream() error: %v", err)
	}

	<-events
	cancel()

	// The relay must close the channel once the context is gone.
	timeout := time.After(10 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("channel not closed after cancellation")
		}
	}
}

func TestEventSuccess(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want bool
	}{
		{"line", Event{Line: "x"}, false},
		{"clean exit", Event{Done: true}, true},
		{"non-zero exit", Event{Done: true, ExitCode: 1, Err: fmt.Errorf("exit status 1")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.Success(); got != tt.want {
				t.Errorf("Success() = %v, want %v", got, tt.want)
			}
		})
	}
}
