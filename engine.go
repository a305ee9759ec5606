package authgate

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/overtuned/authgate/backend"
	"github.com/overtuned/authgate/flows"
	"github.com/overtuned/authgate/forms"
	internalaudit "github.com/overtuned/authgate/internal/audit"
	"github.com/overtuned/authgate/session"
)

// User-facing copy returned inside results. Raw backend messages never pass
// through these.
const (
	msgInvalidCredentials = "Invalid credentials."
	msgUnknownFailure     = "Something went wrong. Please try again."
	msgFlowFallback       = "Additional verification is required to continue."
	msgVerificationSent   = "Verification email sent. Check your inbox."
	msgPasswordResetSent  = "If an account exists for that address, a password reset email is on its way."
	msgEmailVerified      = "Your email address has been verified. You can now sign in."
	msgPasswordResetDone  = "Your password has been reset. Please sign in."
)

// Engine defines a public type used by authgate APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// An Engine is assembled once through the Builder and shared across
// goroutines; every operation method is safe for concurrent use.
type Engine struct {
	config   Config
	backend  Backend
	store    *session.Store
	revoker  session.Revoker
	audit    *internalaudit.Dispatcher
	metrics  *Metrics
	validate *validator.Validate
	logger   *zap.Logger
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Close flushes and stops the audit pipeline. The Engine must not be used
// after Close returns.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) observeBackend(d time.Duration) {
	if e == nil || e.metrics == nil || !e.metrics.LatencyEnabled() {
		return
	}
	e.metrics.Observe(MetricBackendLatency, d)
}

// callBackend wraps one identity backend round trip with latency and
// reachability accounting.
func (e *Engine) callBackend(ctx context.Context, call func(context.Context) (backend.Reply, error)) (backend.Reply, error) {
	start := time.Now()
	reply, err := call(ctx)
	e.observeBackend(time.Since(start))
	if err != nil {
		e.metricInc(MetricBackendUnreachable)
	}
	return reply, err
}

func (e *Engine) ready() error {
	if e == nil || e.backend == nil || e.store == nil {
		return ErrEngineNotReady
	}
	return nil
}

func successResult(redirect, message string) *Result {
	return &Result{Outcome: OutcomeSuccess, Redirect: redirect, Message: message}
}

func fieldErrorsResult(fieldErrs forms.Errors) *Result {
	return &Result{Outcome: OutcomeFieldErrors, Fields: fieldErrs}
}

func pendingFlowResult(step flows.Flow) *Result {
	message, ok := flows.Message(step.ID)
	if !ok {
		message = msgFlowFallback
	}
	return &Result{Outcome: OutcomePendingFlow, Flow: &step, Message: message}
}

func unknownResult(message string) *Result {
	return &Result{Outcome: OutcomeUnknown, Message: message}
}

// establishSession persists the issued auth token and signals navigation
// home. A success reply that carries no token is reported as a failure, never
// as a session.
func (e *Engine) establishSession(ctx context.Context, jar Jar, reply backend.Reply) (*Result, bool) {
	authToken := reply.SessionToken()
	if authToken == "" {
		return unknownResult(msgInvalidCredentials), false
	}

	if err := e.store.Create(ctx, jar, authToken); err != nil {
		e.logger.Warn("session credential write failed", zap.Error(err))
		return unknownResult(msgUnknownFailure), false
	}

	e.metricInc(MetricSessionCreated)
	return successResult(e.config.Redirects.Home, ""), true
}

// resolveBadInput routes the reply's error items onto the operation's known
// field set. A bad-input reply with nothing decodable degrades to the generic
// failure result; the second return reports which case applied.
func (e *Engine) resolveBadInput(known []forms.Field, reply backend.Reply) (*Result, bool) {
	fieldErrs := forms.Normalize(known, reply.Errors)
	if fieldErrs.Empty() {
		return unknownResult(msgUnknownFailure), false
	}
	e.metricInc(MetricBadInput)
	return fieldErrorsResult(fieldErrs), true
}

// resolvePendingFlow returns the blocking step's prompt when the reply names
// one. The second return is false when no step is pending.
func (e *Engine) resolvePendingFlow(ctx context.Context, operation, identifier string, reply backend.Reply) (*Result, bool) {
	step, ok := flows.ResolvePending(reply.Flows)
	if !ok {
		return nil, false
	}

	e.metricInc(MetricPendingFlow)
	e.emitAudit(ctx, auditEventFlowPending, false, identifier, string(step.ID), nil, func() map[string]string {
		return map[string]string{
			"operation": operation,
		}
	})

	return pendingFlowResult(step), true
}

// backendRevoker adapts the identity backend's session deletion to the
// session store's revocation contract. An auth-required answer means the
// remote session is already gone and counts as a confirmed revocation.
type backendRevoker struct {
	backend Backend
}

func (r *backendRevoker) Revoke(ctx context.Context, authToken string) error {
	reply, err := r.backend.DeleteSession(ctx, authToken)
	if err != nil {
		return err
	}

	switch reply.Class {
	case backend.ClassOK:
		return nil
	case backend.ClassAuthRequired:
		return session.ErrAlreadyRevoked
	default:
		return fmt.Errorf("revocation refused with status %d", reply.Status)
	}
}
