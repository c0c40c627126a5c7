// Package cli provides the interactive Tshwane Transit command-line client.
//
// It wires configuration, local storage, the API client and services, and an
// interactive REPL gated by the session state. Typical flow: restore any
// persisted session, then execute user commands.
//
// Key features:
//   - Login / Register / Logout against the transit API
//   - Route planning between two points
//   - Nearby stops, schedules and a live bus-location watcher
//   - Wallet balance and top-up
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// Navigation between the signed-out and signed-in command sets follows the
// session state: see Redirect.
package cli
