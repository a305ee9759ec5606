package authgate

import (
	"context"

	"github.com/overtuned/authgate/backend"
	"github.com/overtuned/authgate/forms"
)

var resetPasswordFields = []forms.Field{forms.FieldKey, forms.FieldPassword, forms.FieldConfirm}

// SendPasswordReset describes the sendpasswordreset operation and its observable behavior.
//
// SendPasswordReset may return an error when input validation, dependency calls, or security checks fail.
// SendPasswordReset does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The success message is the same whether or not the address has an account;
// existence is never confirmed to the caller.
func (e *Engine) SendPasswordReset(ctx context.Context, email string) (*Result, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	if fieldErrs, ok := e.checkInput(emailInput{Email: email}); !ok {
		return fieldErrorsResult(fieldErrs), nil
	}

	reply, err := e.callBackend(ctx, func(ctx context.Context) (backend.Reply, error) {
		return e.backend.RequestPasswordReset(ctx, email)
	})
	if err != nil {
		e.emitAudit(ctx, auditEventPasswordResetRequest, false, email, "", err, nil)
		return unknownResult(msgUnknownFailure), nil
	}

	switch reply.Class {
	case backend.ClassOK:
		e.metricInc(MetricPasswordResetRequest)
		e.emitAudit(ctx, auditEventPasswordResetRequest, true, email, "", nil, nil)
		return successResult("", msgPasswordResetSent), nil

	case backend.ClassBadInput:
		res, decoded := e.resolveBadInput(emailOnlyFields, reply)
		e.emitAudit(ctx, auditEventPasswordResetRequest, false, email, "", nil, func() map[string]string {
			if decoded {
				return map[string]string{"reason": "rejected_input"}
			}
			return map[string]string{"reason": "undecodable_bad_input"}
		})
		return res, nil

	case backend.ClassAuthRequired:
		if res, ok := e.resolvePendingFlow(ctx, "password_reset_request", email, reply); ok {
			return res, nil
		}
		e.emitAudit(ctx, auditEventPasswordResetRequest, false, email, "", nil, func() map[string]string {
			return map[string]string{
				"reason": "unauthorized_without_flow",
			}
		})
		return unknownResult(msgUnknownFailure), nil

	default:
		e.emitAudit(ctx, auditEventPasswordResetRequest, false, email, "", nil, func() map[string]string {
			return map[string]string{
				"reason": "unclassified_status",
			}
		})
		return unknownResult(msgUnknownFailure), nil
	}
}

// ResetPassword describes the resetpassword operation and its observable behavior.
//
// ResetPassword may return an error when input validation, dependency calls, or security checks fail.
// ResetPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The confirmation field is checked locally before the backend sees the
// request. A backend that signs the caller in after the reset produces a
// session; one that only confirms the reset produces a success that points
// to the sign-in route. The two states cannot occur together. The reset key
// never appears in audit events.
func (e *Engine) ResetPassword(ctx context.Context, jar Jar, key, password, confirm string) (*Result, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if jar == nil {
		return nil, ErrNilJar
	}

	if fieldErrs, ok := e.checkInput(resetPasswordInput{Key: key, Password: password, Confirm: confirm}); !ok {
		return fieldErrorsResult(fieldErrs), nil
	}

	reply, err := e.callBackend(ctx, func(ctx context.Context) (backend.Reply, error) {
		return e.backend.ResetPassword(ctx, key, password)
	})
	if err != nil {
		e.metricInc(MetricPasswordResetConfirmFailure)
		e.emitAudit(ctx, auditEventPasswordResetFailure, false, "", "", err, nil)
		return unknownResult(msgUnknownFailure), nil
	}

	switch reply.Class {
	case backend.ClassOK:
		if reply.SessionToken() != "" {
			res, ok := e.establishSession(ctx, jar, reply)
			if !ok {
				e.metricInc(MetricPasswordResetConfirmFailure)
				e.emitAudit(ctx, auditEventPasswordResetFailure, false, "", "", nil, func() map[string]string {
					return map[string]string{
						"reason": "session_write_failed",
					}
				})
				return res, nil
			}
			e.metricInc(MetricPasswordResetConfirmSuccess)
			e.emitAudit(ctx, auditEventPasswordResetSuccess, true, "", "", nil, nil)
			return res, nil
		}
		e.metricInc(MetricPasswordResetConfirmSuccess)
		e.emitAudit(ctx, auditEventPasswordResetSuccess, true, "", "", nil, func() map[string]string {
			return map[string]string{
				"reason": "reset_without_session",
			}
		})
		return successResult(e.config.Redirects.SignIn, msgPasswordResetDone), nil

	case backend.ClassBadInput:
		res, decoded := e.resolveBadInput(resetPasswordFields, reply)
		e.metricInc(MetricPasswordResetConfirmFailure)
		e.emitAudit(ctx, auditEventPasswordResetFailure, false, "", "", nil, func() map[string]string {
			if decoded {
				return map[string]string{"reason": "rejected_input"}
			}
			return map[string]string{"reason": "undecodable_bad_input"}
		})
		return res, nil

	case backend.ClassAuthRequired:
		if res, ok := e.resolvePendingFlow(ctx, "password_reset", "", reply); ok {
			return res, nil
		}
		e.metricInc(MetricPasswordResetConfirmFailure)
		e.emitAudit(ctx, auditEventPasswordResetFailure, false, "", "", nil, func() map[string]string {
			return map[string]string{
				"reason": "unauthorized_without_flow",
			}
		})
		return unknownResult(msgUnknownFailure), nil

	default:
		e.metricInc(MetricPasswordResetConfirmFailure)
		e.emitAudit(ctx, auditEventPasswordResetFailure, false, "", "", nil, func() map[string]string {
			return map[string]string{
				"reason": "unclassified_status",
			}
		})
		return unknownResult(msgUnknownFailure), nil
	}
}
