package middleware

import (
	"context"
	"net/http"

	authgate "github.com/overtuned/authgate"
)

// RequireSession returns middleware that rejects requests without a resolvable
// session with 401. A user already placed in the context by [Session] is
// accepted without a second backend round trip.
//
//	Docs: docs/middleware.md, docs/session.md
func RequireSession(engine *authgate.Engine) func(http.Handler) http.Handler {
	return requireSession(engine, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

func RequireSessionRedirect(engine *authgate.Engine, location string) func(http.Handler) http.Handler {
	return requireSession(engine, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, location, http.StatusSeeOther)
	})
}

func requireSession(engine *authgate.Engine, reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			if engine == nil {
				reject(w, r)
				return
			}

			ctx := requestContext(r)
			user, err := engine.CurrentUser(ctx, authgate.NewJar(w, r))
			if err != nil {
				reject(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, userContextKey{}, user)))
		})
	}
}
