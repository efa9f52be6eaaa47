// Package cli provides the interactive FlashDeck command-line client.
//
// It wires configuration, the local credential store, the authority client
// and an interactive REPL. Typical flow: resolve the stored session, then
// execute user commands behind route-guard decisions.
//
// Key features:
//   - Login / Register / Logout with email verification handoff
//   - Three-stage password reset (request, verify code, confirm)
//   - Dashboard, card-set and token-balance screens
//   - Admin user listing and token-balance edits
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
