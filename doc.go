// Package authgate provides a cookie-backed session layer over a remote
// identity backend, with signed credentials, optional Redis-held session
// state, and a uniform result model for authentication operations.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authgate is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (Result, MetricsSnapshot, AuditEvent, etc.). All internal
// coordination — credential signing, backend transport, cookie persistence,
// error normalization, audit dispatch — lives in the sub-packages and under
// internal/.
//
// # What this package must NOT do
//
//   - Expose Redis clients, HTTP transports, or credential encoding details
//     in its public API.
//   - Echo raw backend payloads through a Result; user-facing copy is always
//     owned by this package.
//   - Perform I/O outside of Engine methods (construction via Builder is
//     allocation-only apart from dependency validation).
//
// # Performance contract
//
// CurrentUser is the hot path. Local credential verification reads nothing
// but the cookie, the configured secret, and the clock; exactly one backend
// round-trip per call follows. Every operation is allowed one backend
// round-trip; vault mode adds at most two Redis round-trips (one to resolve
// the credential, one to slide or drop its entry).
package authgate
