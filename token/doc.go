// Package token signs and verifies the compact session credential that wraps
// the backend's opaque auth token.
//
// # Credential format
//
// Credentials are HS256 JWTs over a shared secret. The payload carries the
// opaque auth token, an issued-at timestamp, and an expiry fixed at signing
// time (Config.TTL from now). There is no key rotation and no asymmetric
// mode; the secret never leaves the process that owns the cookie.
//
// # Verification
//
// [Codec.Verify] is a pure function of (token, secret, current time). It
// rejects malformed structure, signature mismatch, unexpected algorithms,
// and expired credentials, always via [ErrInvalid]. An invalid credential is
// a normal state (anonymous visitor), so callers treat the error as "no
// session", not as a fault.
//
// # Architecture boundaries
//
// This package owns credential integrity only. It does NOT read cookies,
// talk to the identity backend, or decide what an invalid credential means
// for a request — those responsibilities belong to session and the Engine.
//
// # What this package must NOT do
//
//   - Import authgate or any sibling package (no upward imports).
//   - Hold state beyond configuration (verification must stay pure).
//   - Accept any signing algorithm other than HS256.
package token
