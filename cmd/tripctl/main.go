// Command tripctl manages trips, accommodations, activities and the packing
// checklist from the terminal, reading and writing the same data files as the
// API server.
package main

import (
	"os"

	"github.com/pkordes/trip-planner/cmd/tripctl/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
