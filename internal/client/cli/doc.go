// Package cli provides the interactive NyaySetu command-line client.
//
// It wires configuration, the local store, the API client and services, and
// an interactive REPL that keeps working while the backend is unreachable.
// Typical flow: sign in, start the background connectivity watcher, and run
// user commands. Case filings, status changes and chat messages issued while
// offline are queued and replayed automatically on reconnect.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and the command handlers for details.
package cli
