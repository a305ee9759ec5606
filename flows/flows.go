package flows

// ID defines a public type used by authgate APIs.
//
// ID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ID string

const (
	// Login is an exported constant or variable used by the authentication engine.
	Login ID = "login"
	// MFAAuthenticate is an exported constant or variable used by the authentication engine.
	MFAAuthenticate ID = "mfa_authenticate"
	// MFAReauthenticate is an exported constant or variable used by the authentication engine.
	MFAReauthenticate ID = "mfa_reauthenticate"
	// ProviderRedirect is an exported constant or variable used by the authentication engine.
	ProviderRedirect ID = "provider_redirect"
	// ProviderSignup is an exported constant or variable used by the authentication engine.
	ProviderSignup ID = "provider_signup"
	// ProviderToken is an exported constant or variable used by the authentication engine.
	ProviderToken ID = "provider_token"
	// Reauthenticate is an exported constant or variable used by the authentication engine.
	Reauthenticate ID = "reauthenticate"
	// Signup is an exported constant or variable used by the authentication engine.
	Signup ID = "signup"
	// VerifyEmail is an exported constant or variable used by the authentication engine.
	VerifyEmail ID = "verify_email"
	// VerifyPhone is an exported constant or variable used by the authentication engine.
	VerifyPhone ID = "verify_phone"
)

// Provider defines a public type used by authgate APIs.
//
// Provider instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Provider struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Flow defines a public type used by authgate APIs.
//
// Flow instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Flow struct {
	ID        ID        `json:"id"`
	IsPending bool      `json:"is_pending,omitempty"`
	Provider  *Provider `json:"provider,omitempty"`
}

var messages = map[ID]string{
	Login:             "Sign in to your account to continue.",
	MFAAuthenticate:   "Enter your two-factor authentication code to continue.",
	MFAReauthenticate: "Confirm your two-factor authentication code to continue.",
	ProviderRedirect:  "Continue with your identity provider to finish signing in.",
	ProviderSignup:    "Finish creating your account with your identity provider.",
	ProviderToken:     "Complete sign-in with your identity provider.",
	Reauthenticate:    "Confirm your password to continue.",
	Signup:            "Create an account to continue.",
	VerifyEmail:       "Check your email inbox and confirm your email address to continue.",
	VerifyPhone:       "Confirm your phone number to continue.",
}

// ResolvePending describes the resolvepending operation and its observable behavior.
//
// ResolvePending may return an error when input validation, dependency calls, or security checks fail.
// ResolvePending does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The protocol promises at most one pending step; when that promise is broken
// the first pending step in arrival order wins. The assumption is documented,
// not enforced.
func ResolvePending(items []Flow) (Flow, bool) {
	for _, f := range items {
		if f.IsPending {
			return f, true
		}
	}
	return Flow{}, false
}

// Message describes the message operation and its observable behavior.
//
// Message may return an error when input validation, dependency calls, or security checks fail.
// Message does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The second return is false only for step kinds outside the known set.
func Message(id ID) (string, bool) {
	msg, ok := messages[id]
	return msg, ok
}

// IDs returns every known step kind in stable order.
func IDs() []ID {
	return []ID{
		Login,
		MFAAuthenticate,
		MFAReauthenticate,
		ProviderRedirect,
		ProviderSignup,
		ProviderToken,
		Reauthenticate,
		Signup,
		VerifyEmail,
		VerifyPhone,
	}
}
