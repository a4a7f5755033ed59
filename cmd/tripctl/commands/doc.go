// Package commands defines the tripctl CLI and wires dependencies for subcommands.
//
// # Commands
//
//   - trip      add | list | show | update | rm | dates
//   - acc       add | list | update | rm      (accommodations of a trip)
//   - act       add | list | update | rm      (activities of a trip)
//   - pack      add | list | toggle | rm | progress
//   - summary   Print a trip's itinerary
//   - export    Write every trip as a flat JSON or CSV table
//
// # Implementation
//
// The root command loads config (environment and .env), applies --data-dir,
// and builds the stores and services before any subcommand runs. Accommodations,
// activities and packing items are addressed by the index shown in list output.
package commands
