package authgate

import (
	"context"
	"errors"

	"github.com/overtuned/authgate/backend"
	"github.com/overtuned/authgate/token"
)

// CurrentUser describes the currentuser operation and its observable behavior.
//
// CurrentUser may return an error when input validation, dependency calls, or security checks fail.
// CurrentUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// CurrentUser resolves the cookie-held credential against the identity
// backend. Any unreadable, missing, or expired credential is reported as
// ErrNoSession; the distinction between those causes is an implementation
// detail of the anonymous state. ErrSessionRevoked means the backend no
// longer accepts a locally valid credential. The local cookie is left in
// place on revocation so the caller decides when to run Logout.
func (e *Engine) CurrentUser(ctx context.Context, jar Jar) (*User, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if jar == nil {
		return nil, ErrNilJar
	}

	cred, err := e.store.Read(ctx, jar)
	if err != nil {
		if errors.Is(err, token.ErrInvalid) {
			e.metricInc(MetricTokenInvalid)
		}
		return nil, ErrNoSession
	}

	reply, err := e.callBackend(ctx, func(ctx context.Context) (backend.Reply, error) {
		return e.backend.GetSession(ctx, cred.AuthToken)
	})
	if err != nil {
		return nil, ErrBackendUnreachable
	}

	switch reply.Class {
	case backend.ClassOK:
		if reply.User == nil {
			return nil, ErrBackendProtocol
		}
		if e.config.Session.SlidingRefresh {
			if err := e.store.Refresh(ctx, jar); err == nil {
				e.metricInc(MetricSessionRefreshed)
			}
		}
		return reply.User, nil

	case backend.ClassAuthRequired:
		e.emitAudit(ctx, auditEventSessionRevoked, false, "", "", ErrSessionRevoked, nil)
		return nil, ErrSessionRevoked

	default:
		return nil, ErrBackendProtocol
	}
}

// RefreshSession describes the refreshsession operation and its observable behavior.
//
// RefreshSession may return an error when input validation, dependency calls, or security checks fail.
// RefreshSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// RefreshSession extends the local credential window without contacting the
// backend. The underlying auth token is carried over unchanged; only the
// expiry moves. A credential that cannot be refreshed reports ErrNoSession.
func (e *Engine) RefreshSession(ctx context.Context, jar Jar) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}
	if jar == nil {
		return ErrNilJar
	}

	if err := e.store.Refresh(ctx, jar); err != nil {
		if errors.Is(err, token.ErrInvalid) {
			e.metricInc(MetricTokenInvalid)
		}
		return ErrNoSession
	}

	e.metricInc(MetricSessionRefreshed)
	e.emitAudit(ctx, auditEventSessionRefresh, true, "", "", nil, nil)
	return nil
}
