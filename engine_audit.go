package authgate

import (
	"context"
	"errors"
	"time"

	"github.com/overtuned/authgate/backend"
	"github.com/overtuned/authgate/session"
	"github.com/overtuned/authgate/token"
)

const (
	auditEventLoginSuccess         = "login_success"
	auditEventLoginFailure         = "login_failure"
	auditEventSignupSuccess        = "signup_success"
	auditEventSignupFailure        = "signup_failure"
	auditEventEmailVerifySuccess   = "email_verify_success"
	auditEventEmailVerifyFailure   = "email_verify_failure"
	auditEventEmailVerifyResend    = "email_verify_resend"
	auditEventPasswordResetRequest = "password_reset_request"
	auditEventPasswordResetSuccess = "password_reset_success"
	auditEventPasswordResetFailure = "password_reset_failure"
	auditEventFlowPending          = "flow_pending"
	auditEventLogoutSession        = "logout_session"
	auditEventSessionRefresh       = "session_refresh"
	auditEventSessionRevoked       = "session_revoked"
)

// AuditErrorCode defines a public type used by authgate APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrNoSession      AuditErrorCode = "no_session"
	auditErrSessionRevoked AuditErrorCode = "session_revoked"
	auditErrTokenInvalid   AuditErrorCode = "token_invalid"
	auditErrUnreachable    AuditErrorCode = "backend_unreachable"
	auditErrProtocol       AuditErrorCode = "protocol_violation"
	auditErrInternal       AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	identifier string,
	flowID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}
	if ua := userAgentFromContext(ctx); ua != "" {
		if metadata == nil {
			metadata = make(map[string]string, 1)
		}
		metadata["user_agent"] = ua
	}

	event := AuditEvent{
		Timestamp:  time.Now().UTC(),
		EventType:  eventType,
		Identifier: identifier,
		RequestID:  requestIDFromContext(ctx),
		IP:         clientIPFromContext(ctx),
		Success:    success,
		Flow:       flowID,
		Metadata:   metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrNoSession),
		errors.Is(err, session.ErrNoCredential):
		return auditErrNoSession
	case errors.Is(err, ErrSessionRevoked),
		errors.Is(err, session.ErrAlreadyRevoked):
		return auditErrSessionRevoked
	case errors.Is(err, token.ErrInvalid):
		return auditErrTokenInvalid
	case errors.Is(err, ErrBackendUnreachable),
		errors.Is(err, backend.ErrUnreachable):
		return auditErrUnreachable
	case errors.Is(err, ErrBackendProtocol):
		return auditErrProtocol
	default:
		return auditErrInternal
	}
}
