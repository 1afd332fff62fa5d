package cli

import (
	"context"

	"aptlite/internal/ui"
	"aptlite/pkg/manager"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install [packages...]",
	Short: "Install one or more packages",
	Long: `Install packages with apt install -y.

apt's output is streamed as it runs.

Examples:
  aptlite install vim git curl  # Install several packages
  aptlite install -y neovim     # Install without confirmation
  aptlite install -n htop       # Show the command without running it`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	return runSelection(context.Background(), manager.OpInstall, args)
}

var removeCmd = &cobra.Command{
	Use:     "remove [packages...]",
	Aliases: []string{"uninstall"},
	Short:   "Remove one or more packages",
	Long: `Remove packages with apt remove -y.

Examples:
  aptlite remove nano           # Remove a package
  aptlite remove -y nano ed     # Remove without confirmation`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	return runSelection(context.Background(), manager.OpRemove, args)
}

// runSelection runs an operation that acts on named packages.
func runSelection(ctx context.Context, op manager.Operation, packages []string) error {
	ui.InfoMsg("%s %d package(s):", op.Title(), len(packages))
	for _, pkg := range packages {
		ui.MutedMsg("  %s %s", ui.SymbolChecked, pkg)
	}

	return runOperation(ctx, apt, op, packages)
}
