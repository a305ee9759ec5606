package backend

import (
	"net/http"

	"github.com/overtuned/authgate/flows"
	"github.com/overtuned/authgate/forms"
)

// Class defines a public type used by authgate APIs.
//
// Class instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Class uint8

const (
	// ClassUnknown is an exported constant or variable used by the authentication engine.
	ClassUnknown Class = iota
	// ClassOK is an exported constant or variable used by the authentication engine.
	ClassOK
	// ClassBadInput is an exported constant or variable used by the authentication engine.
	ClassBadInput
	// ClassAuthRequired is an exported constant or variable used by the authentication engine.
	ClassAuthRequired
)

// Meta defines a public type used by authgate APIs.
//
// Meta instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Meta struct {
	SessionToken    string `json:"session_token,omitempty"`
	AccessToken     string `json:"access_token,omitempty"`
	IsAuthenticated *bool  `json:"is_authenticated,omitempty"`
}

// User defines a public type used by authgate APIs.
//
// User instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Display string `json:"display,omitempty"`
}

// Reply defines a public type used by authgate APIs.
//
// Reply instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// A Reply is a normal value for every reachable backend answer, including
// failures. Only transport-level problems surface as errors.
type Reply struct {
	Class  Class
	Status int
	Meta   Meta
	Errors []forms.Item
	Flows  []flows.Flow
	User   *User
}

// SessionToken returns the issued auth token, whichever meta key carried it.
func (r Reply) SessionToken() string {
	if r.Meta.SessionToken != "" {
		return r.Meta.SessionToken
	}
	return r.Meta.AccessToken
}

// NotAuthenticated reports whether the reply explicitly states the caller is
// not authenticated. A missing is_authenticated key reports false.
func (r Reply) NotAuthenticated() bool {
	return r.Meta.IsAuthenticated != nil && !*r.Meta.IsAuthenticated
}

type envelope struct {
	Meta   Meta         `json:"meta"`
	Errors []forms.Item `json:"errors"`
	Flows  []flows.Flow `json:"flows"`
	Data   struct {
		User *User `json:"user"`
	} `json:"data"`
}

func classify(status int) Class {
	switch {
	case status >= 200 && status < 300:
		return ClassOK
	case status == http.StatusBadRequest:
		return ClassBadInput
	case status == http.StatusUnauthorized:
		return ClassAuthRequired
	default:
		return ClassUnknown
	}
}
