package tui

import (
	"aptlite/internal/executor"
	"aptlite/internal/history"
	"aptlite/pkg/manager"
)

// Messages for async operations
type (
	searchResultsMsg struct {
		seq      int
		query    string
		packages []manager.Package
		err      error
	}

	descriptionMsg struct {
		name string
		text string
		err  error
	}

	operationStartedMsg struct {
		op     manager.Operation
		events <-chan executor.Event
		err    error
	}

	streamEventMsg struct {
		event executor.Event
	}

	// streamClosedMsg means the channel closed without a completion event.
	streamClosedMsg struct{}

	historyLoadedMsg struct {
		entries []history.Entry
		err     error
	}
)
