package cli

import (
	"time"

	"aptlite/internal/history"
	"aptlite/internal/ui"
)

// openHistory opens the history store and drops entries older than the
// configured retention.
func openHistory() (*history.Store, error) {
	store, err := history.Open()
	if err != nil {
		return nil, err
	}

	if days := cfg.General.HistoryDays; days > 0 {
		pruned, err := store.Prune(time.Duration(days) * 24 * time.Hour)
		if err != nil {
			ui.WarningMsg("Could not prune history: %v", err)
		} else if pruned > 0 && cfg.Output.Verbose {
			ui.MutedMsg("Pruned %d history entries older than %d days", pruned, days)
		}
	}

	return store, nil
}
