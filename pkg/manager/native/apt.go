package native

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"aptlite/internal/config"
	"aptlite/internal/executor"
	"aptlite/pkg/manager"
)

// APT drives apt-cache for queries and apt (or nala) for changes.
type APT struct {
	*BaseManager
	useNala bool
}

// NewAPT creates a new APT manager instance.
func NewAPT(cfg config.APTConfig, run Runner) *APT {
	binary := cfg.ActionBinary
	displayName := "APT (Debian/Ubuntu)"

	// Check if nala is available and preferred
	if cfg.UseNala {
		if _, err := exec.LookPath("nala"); err == nil {
			binary = "nala"
			displayName = "Nala (APT Frontend)"
		}
	}

	return &APT{
		BaseManager: NewBaseManager("apt", displayName, binary, cfg.QueryBinary, run),
		useNala:     cfg.UseNala && binary == "nala",
	}
}

// Search runs "search <query>" and returns one unchecked entry per result
// line. A blank query returns nothing and runs nothing.
func (a *APT) Search(ctx context.Context, query string) ([]manager.Package, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	output, err := a.Runner().Output(ctx, a.QueryBinary(), "search", query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	return manager.ParseSearchOutput(output), nil
}

// Describe runs "show <name>" and returns the package description, or
// fallback when none is found. A lookup error is returned alongside the
// fallback so callers can still display something.
func (a *APT) Describe(ctx context.Context, name, fallback string) (string, error) {
	output, err := a.Runner().Output(ctx, a.QueryBinary(), "show", name)
	if err != nil {
		return fallback, fmt.Errorf("show %s: %w", name, err)
	}

	if desc, ok := manager.ParseDescription(output); ok && desc != "" {
		return desc, nil
	}
	return fallback, nil
}

// Command returns the full command line for op without running it.
func (a *APT) Command(op manager.Operation, packages []string) ([]string, error) {
	args, err := op.Args(packages)
	if err != nil {
		return nil, err
	}
	return append([]string{a.Binary()}, args...), nil
}

// Run starts op and streams its output. Install and remove with no
// packages fail with manager.ErrNoSelection before anything is spawned.
func (a *APT) Run(ctx context.Context, op manager.Operation, packages []string) (<-chan executor.Event, error) {
	cmdline, err := a.Command(op, packages)
	if err != nil {
		return nil, err
	}

	events, err := a.Runner().StreamSudo(ctx, cmdline[0], cmdline[1:]...)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", op, err)
	}
	return events, nil
}

// UsesNala reports whether actions go through nala.
func (a *APT) UsesNala() bool {
	return a.useNala
}
