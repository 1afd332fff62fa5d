package main

import (
	"errors"
	"os"

	"aptlite/internal/cli"
	"aptlite/internal/ui"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrAborted) {
			ui.ErrorMsg("%v", err)
		}
		os.Exit(1)
	}
}
