package authgate

import (
	"context"

	"github.com/overtuned/authgate/backend"
	"github.com/overtuned/authgate/forms"
)

var signupFields = []forms.Field{forms.FieldEmail, forms.FieldPassword, forms.FieldConfirm}

// Signup describes the signup operation and its observable behavior.
//
// Signup may return an error when input validation, dependency calls, or security checks fail.
// Signup does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The password confirmation is checked locally; the backend only ever sees
// the email and password pair. Backends that sign the account in immediately
// produce a session here, and backends that require email verification first
// produce the pending verification step instead.
func (e *Engine) Signup(ctx context.Context, jar Jar, email, password, confirm string) (*Result, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if jar == nil {
		return nil, ErrNilJar
	}

	if fieldErrs, ok := e.checkInput(signupInput{Email: email, Password: password, Confirm: confirm}); !ok {
		return fieldErrorsResult(fieldErrs), nil
	}

	reply, err := e.callBackend(ctx, func(ctx context.Context) (backend.Reply, error) {
		return e.backend.Signup(ctx, email, password)
	})
	if err != nil {
		e.metricInc(MetricSignupFailure)
		e.emitAudit(ctx, auditEventSignupFailure, false, email, "", err, nil)
		return unknownResult(msgUnknownFailure), nil
	}

	switch reply.Class {
	case backend.ClassOK:
		res, ok := e.establishSession(ctx, jar, reply)
		if !ok {
			e.metricInc(MetricSignupFailure)
			e.emitAudit(ctx, auditEventSignupFailure, false, email, "", nil, func() map[string]string {
				return map[string]string{
					"reason": "missing_token",
				}
			})
			return res, nil
		}
		e.metricInc(MetricSignupSuccess)
		e.emitAudit(ctx, auditEventSignupSuccess, true, email, "", nil, nil)
		return res, nil

	case backend.ClassBadInput:
		res, decoded := e.resolveBadInput(signupFields, reply)
		e.metricInc(MetricSignupFailure)
		e.emitAudit(ctx, auditEventSignupFailure, false, email, "", nil, func() map[string]string {
			if decoded {
				return map[string]string{"reason": "rejected_input"}
			}
			return map[string]string{"reason": "undecodable_bad_input"}
		})
		return res, nil

	case backend.ClassAuthRequired:
		if res, ok := e.resolvePendingFlow(ctx, "signup", email, reply); ok {
			return res, nil
		}
		e.metricInc(MetricSignupFailure)
		e.emitAudit(ctx, auditEventSignupFailure, false, email, "", nil, func() map[string]string {
			return map[string]string{
				"reason": "unauthorized_without_flow",
			}
		})
		return unknownResult(msgUnknownFailure), nil

	default:
		e.metricInc(MetricSignupFailure)
		e.emitAudit(ctx, auditEventSignupFailure, false, email, "", nil, func() map[string]string {
			return map[string]string{
				"reason": "unclassified_status",
			}
		})
		return unknownResult(msgUnknownFailure), nil
	}
}
