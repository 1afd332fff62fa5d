// Package history provides operation history tracking with BoltDB.
package history

import (
	"strings"
	"time"

	"aptlite/internal/executor"
	"aptlite/pkg/manager"

	"github.com/google/uuid"
)

// Entry represents a single operation in the history.
type Entry struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Operation manager.Operation `json:"operation"`
	Packages  []string          `json:"packages"` // Packages affected
	Success   bool              `json:"success"`
	ExitCode  int               `json:"exit_code"`
	Error     string            `json:"error,omitempty"`
	Lines     int               `json:"lines"` // Output lines streamed
}

// NewEntry creates a new history entry.
func NewEntry(op manager.Operation, packages []string) *Entry {
	now := time.Now()
	return &Entry{
		ID:        generateID(),
		Timestamp: now,
		Operation: op,
		Packages:  packages,
		Success:   false, // Will be updated after operation completes
	}
}

// Complete fills in the outcome from a stream's completion event.
func (e *Entry) Complete(done executor.Event, lines int) {
	e.Lines = lines
	e.ExitCode = done.ExitCode
	if done.Success() {
		e.Success = true
		e.Error = ""
		return
	}
	e.MarkFailed(done.Err)
}

// MarkSuccess marks the entry as successful.
func (e *Entry) MarkSuccess() {
	e.Success = true
}

// MarkFailed marks the entry as failed with an error message.
func (e *Entry) MarkFailed(err error) {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
}

// generateID generates a unique ID for the entry.
func generateID() string {
	return uuid.NewString()
}

// FormatTime returns a human-readable timestamp.
func (e *Entry) FormatTime() string {
	return e.Timestamp.Format("2006-01-02 15:04:05")
}

// Summary returns a brief summary of the operation.
func (e *Entry) Summary() string {
	status := "success"
	if !e.Success {
		status = "failed"
	}

	if len(e.Packages) == 0 {
		return e.FormatTime() + " " + string(e.Operation) + " (" + status + ")"
	}

	return e.FormatTime() + " " + string(e.Operation) + " " +
		strings.Join(e.Packages, " ") + " (" + status + ")"
}
