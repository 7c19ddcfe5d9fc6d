// Command pirs is the warehouse fulfillment desk CLI: a prioritized
// shipping queue with safety holds, plus inventory triage reports over
// a SQLite ledger.
package main

import (
	"fmt"
	"os"

	"github.com/warefloor/pirs/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pirs: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
