// Package cli provides the interactive SOSENS command-line client.
//
// NewApp wires configuration, the local session database, the request
// gateway and the farmer/admin services behind a REPL. Commands are gated
// by login state and role; admin commands are hidden from farmers.
//
// Every command runs in a fence scope keyed by its name, so starting a
// command again cancels the previous run. A background watcher pings the
// backend and keeps the online/offline marker in the prompt current.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
