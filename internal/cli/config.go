package cli

import (
	"fmt"
	"os"

	"aptlite/internal/config"
	"aptlite/internal/ui"

	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Line(configFilePath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write a configuration file holding the defaults, ready to edit.

An existing file is kept unless --force is given.

Examples:
  aptlite config init
  aptlite config init --force   # Overwrite an existing file`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

func configFilePath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ConfigPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFilePath()

	if _, err := os.Stat(path); err == nil && !configForce {
		ui.WarningMsg("%s already exists (use --force to overwrite)", path)
		return nil
	}

	if err := config.Default().SaveTo(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	ui.SuccessMsg("Wrote %s", path)
	return nil
}
