// Package flows interprets the pending-step protocol of the identity backend.
//
// # Pending steps
//
// A failed authentication may return an ordered list of protocol steps, at
// most one of which is marked pending. [ResolvePending] picks the first
// pending step; [Message] maps every known step kind to the prompt shown to
// the user. The message table is total over [IDs] and guarded by a test so
// that adding a kind without a prompt fails the build gate, not a request.
//
// # Architecture boundaries
//
// This package owns the step vocabulary and its prompts. It does NOT decide
// how an operation reacts to a pending step — that responsibility belongs to
// the Engine.
//
// # What this package must NOT do
//
//   - Import authgate or any sibling package (no upward imports).
//   - Validate that the backend marked only one step pending.
//   - Perform I/O.
package flows
