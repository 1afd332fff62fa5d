package cli

import (
	"fmt"
	"io"
	"log"
	"strings"

	"aptlite/internal/tui"
	"aptlite/internal/ui"
	"aptlite/pkg/manager/detector"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive window",
	Long: `Launch the interactive terminal window.

Layout:
  - Search box and buttons at the top
  - Package list with checkboxes on the left
  - Description and apt output on the right

Keys:
  - Tab cycles focus between the search box, the list and the buttons
  - Enter in the search box searches, Space checks a package
  - alt+i install, alt+r remove, alt+g upgrade, alt+u update, alt+h history
  - With the list focused: / i r g u h q
  - ctrl+c quits

sudo is run with -n, so cache your credentials first with "sudo -v".`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The TUI owns the terminal: sudo must not prompt and traces go to the log
	exec.SetNonInteractive(true)
	if cfg.Output.Verbose {
		exec.SetTrace(logWriter{})
	} else {
		exec.SetTrace(io.Discard)
	}

	var store tui.HistoryStore
	if cfg.General.History {
		historyStore, err := openHistory()
		if err != nil {
			ui.WarningMsg("Could not open history: %v", err)
			// Continue without history
		} else {
			defer historyStore.Close()
			store = historyStore
		}
	}

	return tui.Run(apt, store, cfg, windowTitle())
}

// windowTitle names the distribution and the apt front-end in use.
func windowTitle() string {
	title := "aptlite"
	if info, err := detector.Detect(); err == nil && info.PrettyName != "" {
		title += " - " + info.PrettyName
	}
	title += fmt.Sprintf(" (%s)", apt.DisplayName())
	if cfg.General.DryRun {
		title += " [dry-run]"
	}
	return title
}

// logWriter forwards writes to the standard logger, wherever it points at
// the time of the write.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	log.Print(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
