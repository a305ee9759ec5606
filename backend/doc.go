// Package backend is the HTTP client for the remote identity service.
//
// # Reply classification
//
// Every call returns a [Reply] whose [Class] is derived from the status code
// exactly once, at this boundary: 2xx is [ClassOK], 400 is [ClassBadInput],
// 401 is [ClassAuthRequired], everything else is [ClassUnknown]. Bodies are
// decoded eagerly into meta, error items, and flow steps so that callers
// never inspect raw status codes or raw JSON again.
//
// # Transport
//
// Requests go through a resty client with a fixed base URL and timeout. Each
// request carries a fresh X-Request-Id; authenticated calls carry the opaque
// auth token in X-Session-Token. Transport failures wrap [ErrUnreachable].
// The client performs no retries.
//
// # Architecture boundaries
//
// This package owns wire shapes and status classification. It does NOT
// interpret replies (token extraction, flow resolution, error routing) —
// those responsibilities belong to the Engine.
//
// # What this package must NOT do
//
//   - Import authgate, session, or token (no upward imports).
//   - Retry, cache, or reorder requests.
//   - Surface raw backend payloads as user-facing text.
package backend
