// Package app wires application dependencies for the API server and the CLI.
//
// It builds the file-backed stores and the services from config.Config and
// exposes them via the App struct. Handler assembles the HTTP router with its
// middleware chain.
package app
