package middleware

import (
	"context"
	"net"
	"net/http"

	authgate "github.com/overtuned/authgate"
)

type userContextKey struct{}

func UserFromContext(ctx context.Context) (*authgate.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*authgate.User)
	return user, ok
}

func Session(engine *authgate.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := requestContext(r)
			user, err := engine.CurrentUser(ctx, authgate.NewJar(w, r))
			if err != nil {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, userContextKey{}, user)))
		})
	}
}

func requestContext(r *http.Request) context.Context {
	ctx := r.Context()

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ctx = authgate.WithClientIP(ctx, host)
	} else if r.RemoteAddr != "" {
		ctx = authgate.WithClientIP(ctx, r.RemoteAddr)
	}

	if id := r.Header.Get("X-Request-ID"); id != "" {
		ctx = authgate.WithRequestID(ctx, id)
	}

	if ua := r.UserAgent(); ua != "" {
		ctx = authgate.WithUserAgent(ctx, ua)
	}

	return ctx
}
