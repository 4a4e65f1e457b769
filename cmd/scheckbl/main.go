// Command scheckbl is a search and filter tool for the SCheck Blocklist
// datasets.
package main

import (
	"os"

	"github.com/scheckbl/scheckbl-cli/internal/cli"
	"github.com/scheckbl/scheckbl-cli/internal/output"
)

func main() {
	if err := cli.Execute(); err != nil {
		output.New(output.FormatText).Error(err)
		os.Exit(1)
	}
}
