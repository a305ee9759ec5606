// Package middleware exposes HTTP middleware adapters that resolve the session
// cookie into the signed-in user on top of authgate.Engine.
//
// # Guards
//
//   - [Session] — resolves the user when a valid cookie is present, never blocks.
//   - [RequireSession] — rejects anonymous requests with 401.
//   - [RequireSessionRedirect] — sends anonymous requests to the sign-in route.
//
// Each guard builds a request-scoped context carrying the client IP, request ID,
// and user agent, calls Engine.CurrentUser, and injects the resolved user into
// the request context for [UserFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT decide
// who is signed in — all decisions are delegated to Engine.CurrentUser.
//
// # What this package must NOT do
//
//   - Read or verify the session cookie itself (delegates to Engine).
//   - Contact the identity backend (Engine handles I/O).
//   - Make authorization decisions beyond pass/reject from Engine.CurrentUser.
package middleware
