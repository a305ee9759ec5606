// Package session persists the signed credential in a scoped cookie, with an
// optional Redis-backed vault for the credential body.
//
// # Cookie modes
//
// In the default inline mode the cookie value is the signed credential
// itself. In vault mode the cookie carries only an opaque vault identifier
// and the [Keeper] holds the signed credential server-side, so the browser
// never stores the token and revocation can be immediate.
//
// # Lifecycle
//
// [Store.Create] signs and writes, [Store.Read] verifies on every access,
// [Store.Refresh] re-writes the same signed credential with a fresh expiry
// window, and [Store.Destroy] revokes remotely before it clears locally. A
// credential that fails verification is reported, never resurrected.
//
// # Architecture boundaries
//
// This package owns where the credential lives and when it is cleared. It
// does NOT sign or verify credentials (delegates to token) and does NOT talk
// to the identity backend beyond the caller-supplied [Revoker].
//
// # What this package must NOT do
//
//   - Import authgate or backend (no upward imports).
//   - Clear the local credential while a remote revocation is still owed.
//   - Store a verifiable credential anywhere but the jar and the vault.
package session
