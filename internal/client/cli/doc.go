// Package cli provides the interactive member command-line client.
//
// It wires configuration, the local session database, the request clients
// and the account services into a REPL. On start the persisted session is
// checked without touching the network; resuming the process from the
// background (SIGCONT) checks it again.
//
// Key features:
//   - Register (with optional OTP verification), Login, Logout, Status
//   - Profile, dashboard, wallet and team business views
//   - Referral tree, packages, transactions
//   - Buying packages, withdrawals and deposits
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
