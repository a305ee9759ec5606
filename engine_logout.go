package authgate

import (
	"context"

	"go.uber.org/zap"
)

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Remote revocation runs before the local credential is cleared, so a
// reachable backend always learns about the logout. When revocation cannot
// be confirmed the cookie survives for a retry, but the result still points
// at the anonymous landing route: the caller leaves the authenticated area
// either way.
func (e *Engine) Logout(ctx context.Context, jar Jar) (*Result, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if jar == nil {
		return nil, ErrNilJar
	}

	if err := e.store.Destroy(ctx, jar, e.revoker); err != nil {
		e.logger.Warn("session destroy incomplete", zap.Error(err))
		e.emitAudit(ctx, auditEventLogoutSession, false, "", "", err, nil)
		return successResult(e.config.Redirects.SignIn, ""), nil
	}

	e.metricInc(MetricLogout)
	e.metricInc(MetricSessionDestroyed)
	e.emitAudit(ctx, auditEventLogoutSession, true, "", "", nil, nil)
	return successResult(e.config.Redirects.SignIn, ""), nil
}
