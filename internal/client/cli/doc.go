// Package cli provides the interactive attendance command-line client.
//
// It wires configuration and the API client into a REPL that punches
// work and break events, shows the current status, prints monthly
// reports, and edits recorded sessions and breaks.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
