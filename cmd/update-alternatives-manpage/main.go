package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/fthomys/update-alternatives/internal/cli"
	"github.com/fthomys/update-alternatives/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "UPDATE-ALTERNATIVES",
		Section: "1",
		Source:  "update-alternatives " + version.Version,
		Manual:  "update-alternatives manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
