package session

import "net/http"

// Jar defines a public type used by authgate APIs.
//
// Jar instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// A Jar scopes cookie access to one request/response pair. Concurrent writes
// through separate jars resolve last-writer-wins at the browser.
type Jar interface {
	Read(name string) (string, bool)
	Write(cookie *http.Cookie)
}

type httpJar struct {
	w http.ResponseWriter
	r *http.Request
}

// NewJar describes the newjar operation and its observable behavior.
//
// NewJar may return an error when input validation, dependency calls, or security checks fail.
// NewJar does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewJar(w http.ResponseWriter, r *http.Request) Jar {
	return &httpJar{w: w, r: r}
}

func (j *httpJar) Read(name string) (string, bool) {
	if j == nil || j.r == nil {
		return "", false
	}

	c, err := j.r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (j *httpJar) Write(cookie *http.Cookie) {
	if j == nil || j.w == nil {
		return
	}
	http.SetCookie(j.w, cookie)
}
