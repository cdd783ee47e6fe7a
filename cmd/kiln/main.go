// Package main provides the kiln CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fusedglass/kiln/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Domain errors are already rendered by the formatter and carry an
		// empty message here; everything else still needs printing.
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
