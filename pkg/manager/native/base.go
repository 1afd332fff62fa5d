// Package native implements the apt client on top of the executor.
package native

import (
	"context"
	"os/exec"

	"aptlite/internal/executor"
)

// Runner is the part of the executor the apt client depends on.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) (string, error)
	StreamSudo(ctx context.Context, name string, args ...string) (<-chan executor.Event, error)
}

// BaseManager holds the binaries and runner shared by manager implementations.
type BaseManager struct {
	name        string
	displayName string
	binary      string // runs mutating operations
	queryBinary string // runs search and show
	run         Runner
}

// NewBaseManager creates a new BaseManager with the given parameters.
func NewBaseManager(name, displayName, binary, queryBinary string, run Runner) *BaseManager {
	return &BaseManager{
		name:        name,
		displayName: displayName,
		binary:      binary,
		queryBinary: queryBinary,
		run:         run,
	}
}

// Name returns the short identifier for this manager.
func (b *BaseManager) Name() string {
	return b.name
}

// DisplayName returns the human-readable name.
func (b *BaseManager) DisplayName() string {
	return b.displayName
}

// Binary returns the binary used for mutating operations.
func (b *BaseManager) Binary() string {
	return b.binary
}

// QueryBinary returns the binary used for search and show.
func (b *BaseManager) QueryBinary() string {
	return b.queryBinary
}

// IsAvailable returns true if both binaries are on PATH.
func (b *BaseManager) IsAvailable() bool {
	for _, bin := range []string{b.binary, b.queryBinary} {
		if _, err := exec.LookPath(bin); err != nil {
			return false
		}
	}
	return true
}

// Runner returns the runner commands go through.
func (b *BaseManager) Runner() Runner {
	return b.run
}
