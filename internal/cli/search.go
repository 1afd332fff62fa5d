package cli

import (
	"context"

	"aptlite/internal/ui"
	"aptlite/pkg/manager"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for packages",
	Long: `Search the package index with apt-cache search.

Results are listed in the order apt-cache prints them.

Examples:
  aptlite search editor         # Packages mentioning "editor"
  aptlite search "^vim"         # apt-cache accepts regular expressions`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	var results []manager.Package
	err := ui.WithSpinner("Searching for '"+query+"'...", func() error {
		var err error
		results, err = apt.Search(ctx, query)
		return err
	})
	if err != nil {
		return err
	}

	ui.PrintSearchResults(results)
	return nil
}

var showCmd = &cobra.Command{
	Use:   "show [package]",
	Short: "Show a package description",
	Long: `Display the description apt-cache show reports for a package.

Examples:
  aptlite show vim`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	name := args[0]

	var description string
	err := ui.WithSpinner("Looking up '"+name+"'...", func() error {
		var err error
		description, err = apt.Describe(ctx, name, "")
		return err
	})
	if err != nil {
		return err
	}

	ui.PrintPackageInfo(name, description)
	return nil
}
