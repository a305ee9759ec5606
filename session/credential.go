package session

import "github.com/overtuned/authgate/token"

// Credential is the verified session credential as decoded by the token
// codec. The alias keeps the store API self-contained for callers that never
// touch the codec directly.
type Credential = token.Credential
