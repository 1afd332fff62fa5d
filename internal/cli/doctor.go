package cli

import (
	"context"
	"os"
	osexec "os/exec"

	"aptlite/internal/config"
	"aptlite/internal/executor"
	"aptlite/internal/ui"
	"aptlite/pkg/manager/detector"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose system issues",
	Long: `Check that apt, apt-cache and privilege elevation work, and show
where aptlite keeps its configuration and history.

Examples:
  aptlite doctor            # Run diagnostics`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	issues := 0

	ui.HeaderMsg("Running diagnostics...")

	// Check system detection
	sysInfo, err := detector.Detect()
	if err != nil {
		ui.ErrorMsg("System detection failed: %v", err)
		issues++
	} else {
		ui.PrintSystemInfo(sysInfo, apt.DisplayName())
		if !sysInfo.IsDebianFamily() {
			ui.WarningMsg("%s is not a Debian-based system; apt may be missing", sysInfo.PrettyName)
			issues++
		}
	}

	// Check binaries
	ui.HeaderMsg("Binaries")
	if apt.IsAvailable() {
		ui.SuccessMsg("%s and %s found", apt.QueryBinary(), apt.Binary())
	} else {
		for _, bin := range []string{apt.QueryBinary(), apt.Binary()} {
			if _, err := osexec.LookPath(bin); err != nil {
				ui.ErrorMsg("%s not found in PATH", bin)
				issues++
			}
		}
	}
	switch {
	case apt.UsesNala():
		ui.MutedMsg("Install, remove and upgrade run through nala")
	case cfg.APT.UseNala:
		ui.WarningMsg("use_nala is set but nala is not installed; using %s", apt.Binary())
	}

	// Check privileges
	ui.HeaderMsg("Privileges")
	switch {
	case executor.IsRoot():
		ui.SuccessMsg("Running as root")
	case !cfg.General.UseSudo:
		ui.WarningMsg("use_sudo is off and not running as root; install and remove will fail")
		issues++
	case !executor.CanElevate():
		ui.ErrorMsg("sudo not found; install and remove need root")
		issues++
	case executor.SudoCached(ctx):
		ui.SuccessMsg("sudo credentials are cached")
	default:
		ui.MutedMsg("sudo will ask for a password; the interactive window needs cached credentials (run 'sudo -v' first)")
	}

	// Check config
	ui.HeaderMsg("Configuration")
	if path := configFilePath(); fileExists(path) {
		ui.SuccessMsg("Config file: %s", path)
	} else {
		ui.MutedMsg("No config file at %s, using defaults (run 'aptlite config init')", path)
	}

	if cfg.General.History {
		if store, err := openHistory(); err != nil {
			ui.WarningMsg("History database unavailable: %v", err)
			issues++
		} else {
			count, _ := store.Count() //nolint:errcheck
			store.Close()
			ui.SuccessMsg("History: %s (%d entries)", config.HistoryPath(), count)
		}
	} else {
		ui.MutedMsg("History is disabled")
	}

	// Test basic operations
	ui.HeaderMsg("Testing Operations")

	// Try a search (non-destructive)
	if _, err := apt.Search(ctx, "apt"); err != nil {
		ui.WarningMsg("Search test failed: %v", err)
		issues++
	} else {
		ui.SuccessMsg("Search operation works")
	}

	// Summary
	ui.HeaderMsg("Summary")
	if issues == 0 {
		ui.SuccessMsg("No issues found! aptlite is ready to use.")
	} else {
		ui.WarningMsg("Found %d issue(s). Some features may not work correctly.", issues)
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
