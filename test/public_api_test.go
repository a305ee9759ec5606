package test

import (
	"context"
	"net/http"
	"testing"

	authgate "github.com/overtuned/authgate"
	"github.com/overtuned/authgate/middleware"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = authgate.New
	_ = authgate.DefaultConfig
	_ = authgate.NewJar
	_ = authgate.NewChannelSink
	_ = authgate.NewJSONWriterSink

	var _ *authgate.Engine
	var _ authgate.Config
	var _ authgate.Result
	var _ authgate.Outcome
	var _ authgate.Backend
	var _ *authgate.User
	var _ authgate.Credential
	var _ authgate.Jar
	var _ authgate.AuditSink
	var _ authgate.AuditEvent
	var _ authgate.MetricsSnapshot
	var _ authgate.SecurityReport

	var _ error = authgate.ErrEngineNotReady
	var _ error = authgate.ErrNilJar
	var _ error = authgate.ErrNoSession
	var _ error = authgate.ErrSessionRevoked
	var _ error = authgate.ErrBackendUnreachable
	var _ error = authgate.ErrBackendProtocol

	var _ func(*authgate.Engine) func(http.Handler) http.Handler = middleware.Session
	var _ func(*authgate.Engine) func(http.Handler) http.Handler = middleware.RequireSession
	var _ func(*authgate.Engine, string) func(http.Handler) http.Handler = middleware.RequireSessionRedirect

	var _ func(*authgate.Engine, context.Context, authgate.Jar, string, string) (*authgate.Result, error) = (*authgate.Engine).Login
	var _ func(*authgate.Engine, context.Context, authgate.Jar, string, string, string) (*authgate.Result, error) = (*authgate.Engine).Signup
	var _ func(*authgate.Engine, context.Context, authgate.Jar, string) (*authgate.Result, error) = (*authgate.Engine).VerifyEmail
	var _ func(*authgate.Engine, context.Context, string) (*authgate.Result, error) = (*authgate.Engine).SendEmailVerification
	var _ func(*authgate.Engine, context.Context, string) (*authgate.Result, error) = (*authgate.Engine).SendPasswordReset
	var _ func(*authgate.Engine, context.Context, authgate.Jar, string, string, string) (*authgate.Result, error) = (*authgate.Engine).ResetPassword
	var _ func(*authgate.Engine, context.Context, authgate.Jar) (*authgate.Result, error) = (*authgate.Engine).Logout
	var _ func(*authgate.Engine, context.Context, authgate.Jar) (*authgate.User, error) = (*authgate.Engine).CurrentUser
	var _ func(*authgate.Engine, context.Context, authgate.Jar) error = (*authgate.Engine).RefreshSession
	var _ func(*authgate.Engine) authgate.SecurityReport = (*authgate.Engine).SecurityReport
}
