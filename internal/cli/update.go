package cli

import (
	"context"

	"aptlite/pkg/manager"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh the package index",
	Long: `Refresh the package index with apt update.

Examples:
  aptlite update
  aptlite update -y             # Skip confirmation`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return runOperation(context.Background(), apt, manager.OpUpdate, nil)
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade all installed packages",
	Long: `Upgrade every installed package with apt upgrade -y.

Examples:
  aptlite upgrade
  aptlite upgrade -n            # Show the command without running it`,
	Args: cobra.NoArgs,
	RunE: runUpgrade,
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	return runOperation(context.Background(), apt, manager.OpUpgrade, nil)
}
