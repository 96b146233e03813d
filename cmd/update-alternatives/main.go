package main

import (
	"fmt"
	"os"

	"github.com/fthomys/update-alternatives/internal/cli"
	"github.com/fthomys/update-alternatives/pkg/ui"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// One line on stderr in the traditional form, whatever output
		// format the command itself used.
		if renderer, rerr := ui.NewRenderer(ui.FormatText, os.Stderr); rerr == nil {
			_ = renderer.RenderError(err)
		} else {
			fmt.Fprintf(os.Stderr, "update-alternatives: %s\n", err)
		}
		os.Exit(1)
	}
}
