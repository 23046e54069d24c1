// Package cli provides the interactive BIJLI.GRID terminal client.
//
// It wires configuration, local storage, the wallet provider, the session,
// the trading flow and the backend client, and runs a REPL on top of them.
// Typical flow: sign up or log in, connect a wallet, browse open energy
// requests, accept one and confirm the send, then inspect the ledger.
//
// Key features:
//   - Sign up / Login / Logout against the local credential store
//   - Connect / Disconnect a wallet, with provider account and chain switches
//     handled in the background
//   - Requests / Accept / Reject / Cancel / Send for request fulfillment
//   - Ledger listing with a case-insensitive filter
//   - Profile sync, assets and grid stats from the backend
//
// Every error reaching the REPL is shown as a notice; none ends the session.
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
