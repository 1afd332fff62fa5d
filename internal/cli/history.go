package cli

import (
	"fmt"

	"aptlite/internal/history"
	"aptlite/internal/ui"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show operation history",
	Long: `Display the install, remove, update and upgrade runs aptlite has made.

Examples:
  aptlite history               # Show recent history
  aptlite history -l 20         # Show last 20 operations
  aptlite history --clear       # Forget everything`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 10, "number of entries to show")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all history entries")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	if historyClear {
		return clearHistory(store)
	}

	entries, err := store.List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		ui.MutedMsg("No history entries found")
		return nil
	}

	ui.HeaderMsg("Operation History")
	ui.PrintHistory(entries)

	for _, e := range entries {
		if e.Error != "" {
			ui.MutedMsg("%s %s: %s", e.FormatTime(), e.Operation, e.Error)
		}
	}

	total, _ := store.Count() //nolint:errcheck
	ui.MutedMsg("\nShowing %d of %d total entries", len(entries), total)

	return nil
}

func clearHistory(store *history.Store) error {
	if !cfg.General.AutoConfirm {
		confirmed, err := ui.Confirm("Delete all history entries?", false)
		if err != nil {
			return err
		}
		if !confirmed {
			return ErrAborted
		}
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	ui.SuccessMsg("History cleared")
	return nil
}
