// Package forms normalizes heterogeneous backend error payloads into
// field-keyed error structures that rendering layers can branch on.
//
// # Normalization
//
// The identity backend reports failures as a flat list of items, each naming
// an optional form parameter. [Normalize] routes every item into exactly one
// bucket: the named field when the operation knows it, otherwise the global
// bucket. Nothing is dropped and arrival order is preserved per bucket.
//
// # Architecture boundaries
//
// This package owns the [Field] vocabulary and the [Errors] shape. It does NOT
// talk to the backend, validate input, or decide which fields an operation
// accepts — those responsibilities belong to the Engine.
//
// # What this package must NOT do
//
//   - Import authgate or any sibling package (no upward imports).
//   - Rewrite, translate, or deduplicate backend messages.
//   - Perform I/O.
package forms
