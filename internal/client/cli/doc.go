// Package cli provides the interactive userdir command-line client.
//
// It wires configuration, the persisted session, the directory service
// client, and a REPL. Typical flow: restore the stored session (or prompt
// the user to log in), start a background connectivity watcher, then
// execute user commands.
//
// Commands:
//   - register / login / logout / whoami
//   - list (l), show <id>, close, delete <id>, retry
//   - health
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
