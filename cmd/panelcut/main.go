// panelcut - cabinet panel cut optimizer
//
// A command-line tool that expands cabinet specifications into panel
// lists, packs them onto stock plywood sheets grouped by brand and
// laminate, and exports cutting diagrams, labels and cut lists.
//
// Build:
//
//	go build -o panelcut ./cmd/panelcut
package main

import (
	"os"

	"github.com/panelforge/panelcut/internal/cli"
)

// Populated at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
