package authgate

import (
	"context"

	"github.com/overtuned/authgate/backend"
	"github.com/overtuned/authgate/forms"
)

var loginFields = []forms.Field{forms.FieldEmail, forms.FieldPassword}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// A session cookie is written only when the backend issues a token; every
// other answer leaves the jar untouched. The error return reports misuse of
// the Engine, never a failed login: rejected credentials arrive as a Result.
func (e *Engine) Login(ctx context.Context, jar Jar, email, password string) (*Result, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if jar == nil {
		return nil, ErrNilJar
	}

	if fieldErrs, ok := e.checkInput(loginInput{Email: email, Password: password}); !ok {
		return fieldErrorsResult(fieldErrs), nil
	}

	reply, err := e.callBackend(ctx, func(ctx context.Context) (backend.Reply, error) {
		return e.backend.Login(ctx, email, password)
	})
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, email, "", err, nil)
		return unknownResult(msgUnknownFailure), nil
	}

	switch reply.Class {
	case backend.ClassOK:
		res, ok := e.establishSession(ctx, jar, reply)
		if !ok {
			e.metricInc(MetricLoginFailure)
			e.emitAudit(ctx, auditEventLoginFailure, false, email, "", nil, func() map[string]string {
				return map[string]string{
					"reason": "missing_token",
				}
			})
			return res, nil
		}
		e.metricInc(MetricLoginSuccess)
		e.emitAudit(ctx, auditEventLoginSuccess, true, email, "", nil, nil)
		return res, nil

	case backend.ClassBadInput:
		res, decoded := e.resolveBadInput(loginFields, reply)
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, email, "", nil, func() map[string]string {
			if decoded {
				return map[string]string{"reason": "rejected_input"}
			}
			return map[string]string{"reason": "undecodable_bad_input"}
		})
		return res, nil

	case backend.ClassAuthRequired:
		if res, ok := e.resolvePendingFlow(ctx, "login", email, reply); ok {
			return res, nil
		}
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, email, "", nil, func() map[string]string {
			return map[string]string{
				"reason": "unauthorized_without_flow",
			}
		})
		return unknownResult(msgUnknownFailure), nil

	default:
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, email, "", nil, func() map[string]string {
			return map[string]string{
				"reason": "unclassified_status",
			}
		})
		return unknownResult(msgUnknownFailure), nil
	}
}
