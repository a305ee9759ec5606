package authgate

import (
	"context"

	"github.com/overtuned/authgate/backend"
	"github.com/overtuned/authgate/forms"
)

var (
	verifyEmailFields = []forms.Field{forms.FieldKey}
	emailOnlyFields   = []forms.Field{forms.FieldEmail}
)

// VerifyEmail describes the verifyemail operation and its observable behavior.
//
// VerifyEmail may return an error when input validation, dependency calls, or security checks fail.
// VerifyEmail does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Two distinct successes exist. A backend that issues a token on
// verification produces a session and navigation home. A backend that
// confirms the address but explicitly reports the caller as signed out
// produces a success with no session and navigation to the sign-in route.
// The verification key never appears in audit events.
func (e *Engine) VerifyEmail(ctx context.Context, jar Jar, key string) (*Result, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if jar == nil {
		return nil, ErrNilJar
	}

	if fieldErrs, ok := e.checkInput(verifyEmailInput{Key: key}); !ok {
		return fieldErrorsResult(fieldErrs), nil
	}

	reply, err := e.callBackend(ctx, func(ctx context.Context) (backend.Reply, error) {
		return e.backend.VerifyEmail(ctx, key)
	})
	if err != nil {
		e.metricInc(MetricEmailVerificationFailure)
		e.emitAudit(ctx, auditEventEmailVerifyFailure, false, "", "", err, nil)
		return unknownResult(msgUnknownFailure), nil
	}

	switch reply.Class {
	case backend.ClassOK:
		res, ok := e.establishSession(ctx, jar, reply)
		if !ok {
			e.metricInc(MetricEmailVerificationFailure)
			e.emitAudit(ctx, auditEventEmailVerifyFailure, false, "", "", nil, func() map[string]string {
				return map[string]string{
					"reason": "missing_token",
				}
			})
			return res, nil
		}
		e.metricInc(MetricEmailVerificationSuccess)
		e.emitAudit(ctx, auditEventEmailVerifySuccess, true, "", "", nil, nil)
		return res, nil

	case backend.ClassBadInput:
		res, decoded := e.resolveBadInput(verifyEmailFields, reply)
		e.metricInc(MetricEmailVerificationFailure)
		e.emitAudit(ctx, auditEventEmailVerifyFailure, false, "", "", nil, func() map[string]string {
			if decoded {
				return map[string]string{"reason": "rejected_key"}
			}
			return map[string]string{"reason": "undecodable_bad_input"}
		})
		return res, nil

	case backend.ClassAuthRequired:
		if reply.NotAuthenticated() {
			e.metricInc(MetricEmailVerificationSuccess)
			e.emitAudit(ctx, auditEventEmailVerifySuccess, true, "", "", nil, func() map[string]string {
				return map[string]string{
					"reason": "verified_signed_out",
				}
			})
			return successResult(e.config.Redirects.SignIn, msgEmailVerified), nil
		}
		if res, ok := e.resolvePendingFlow(ctx, "verify_email", "", reply); ok {
			return res, nil
		}
		e.metricInc(MetricEmailVerificationFailure)
		e.emitAudit(ctx, auditEventEmailVerifyFailure, false, "", "", nil, func() map[string]string {
			return map[string]string{
				"reason": "unauthorized_without_flow",
			}
		})
		return unknownResult(msgUnknownFailure), nil

	default:
		e.metricInc(MetricEmailVerificationFailure)
		e.emitAudit(ctx, auditEventEmailVerifyFailure, false, "", "", nil, func() map[string]string {
			return map[string]string{
				"reason": "unclassified_status",
			}
		})
		return unknownResult(msgUnknownFailure), nil
	}
}

// SendEmailVerification describes the sendemailverification operation and its observable behavior.
//
// SendEmailVerification may return an error when input validation, dependency calls, or security checks fail.
// SendEmailVerification does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// SendEmailVerification asks the backend to send a fresh verification email.
// No session is involved, so no jar is taken and the result never redirects.
func (e *Engine) SendEmailVerification(ctx context.Context, email string) (*Result, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	if fieldErrs, ok := e.checkInput(emailInput{Email: email}); !ok {
		return fieldErrorsResult(fieldErrs), nil
	}

	reply, err := e.callBackend(ctx, func(ctx context.Context) (backend.Reply, error) {
		return e.backend.ResendEmailVerification(ctx, email)
	})
	if err != nil {
		e.emitAudit(ctx, auditEventEmailVerifyResend, false, email, "", err, nil)
		return unknownResult(msgUnknownFailure), nil
	}

	switch reply.Class {
	case backend.ClassOK:
		e.metricInc(MetricEmailVerificationResend)
		e.emitAudit(ctx, auditEventEmailVerifyResend, true, email, "", nil, nil)
		return successResult("", msgVerificationSent), nil

	case backend.ClassBadInput:
		res, decoded := e.resolveBadInput(emailOnlyFields, reply)
		e.emitAudit(ctx, auditEventEmailVerifyResend, false, email, "", nil, func() map[string]string {
			if decoded {
				return map[string]string{"reason": "rejected_input"}
			}
			return map[string]string{"reason": "undecodable_bad_input"}
		})
		return res, nil

	case backend.ClassAuthRequired:
		if res, ok := e.resolvePendingFlow(ctx, "email_verify_resend", email, reply); ok {
			return res, nil
		}
		e.emitAudit(ctx, auditEventEmailVerifyResend, false, email, "", nil, func() map[string]string {
			return map[string]string{
				"reason": "unauthorized_without_flow",
			}
		})
		return unknownResult(msgUnknownFailure), nil

	default:
		e.emitAudit(ctx, auditEventEmailVerifyResend, false, email, "", nil, func() map[string]string {
			return map[string]string{
				"reason": "unclassified_status",
			}
		})
		return unknownResult(msgUnknownFailure), nil
	}
}
