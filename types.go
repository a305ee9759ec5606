package authgate

import (
	"context"
	"io"
	"net/http"

	"github.com/overtuned/authgate/backend"
	"github.com/overtuned/authgate/flows"
	"github.com/overtuned/authgate/forms"
	internalaudit "github.com/overtuned/authgate/internal/audit"
	internalmetrics "github.com/overtuned/authgate/internal/metrics"
	"github.com/overtuned/authgate/session"
	"github.com/overtuned/authgate/token"
)

// Outcome tags the protocol result of an authentication operation.
//
//	Docs: docs/operations.md
type Outcome uint8

const (
	// OutcomeUnknown is an exported constant or variable used by the authentication engine.
	OutcomeUnknown Outcome = iota
	// OutcomeSuccess is an exported constant or variable used by the authentication engine.
	OutcomeSuccess
	// OutcomeFieldErrors is an exported constant or variable used by the authentication engine.
	OutcomeFieldErrors
	// OutcomePendingFlow is an exported constant or variable used by the authentication engine.
	OutcomePendingFlow
)

// Result is the uniform answer of every authentication operation. Exactly one
// variant is populated, selected by Outcome:
//
//   - OutcomeSuccess: Redirect names the route to navigate to; Message may
//     carry a confirmation to display.
//   - OutcomeFieldErrors: Fields holds per-field and global messages to render.
//   - OutcomePendingFlow: Flow names the blocking step, Message the prompt.
//   - OutcomeUnknown: Message carries a stable generic failure text. Raw
//     backend payloads are never echoed here.
//
//	Docs: docs/operations.md
type Result struct {
	Outcome  Outcome
	Redirect string
	Fields   forms.Errors
	Flow     *flows.Flow
	Message  string
}

// Backend is the remote identity collaborator contacted by every operation.
// [backend.Client] is the production implementation; tests substitute fakes.
//
//	Docs: docs/backend.md
type Backend interface {
	Login(ctx context.Context, email, password string) (backend.Reply, error)
	Signup(ctx context.Context, email, password string) (backend.Reply, error)
	VerifyEmail(ctx context.Context, key string) (backend.Reply, error)
	ResendEmailVerification(ctx context.Context, email string) (backend.Reply, error)
	RequestPasswordReset(ctx context.Context, email string) (backend.Reply, error)
	ResetPassword(ctx context.Context, key, password string) (backend.Reply, error)
	GetSession(ctx context.Context, authToken string) (backend.Reply, error)
	DeleteSession(ctx context.Context, authToken string) (backend.Reply, error)
}

var _ Backend = (*backend.Client)(nil)

// User is the account record returned by the identity backend for an
// authenticated session.
type User = backend.User

// Credential is the verified session credential carried by the cookie.
type Credential = token.Credential

// Jar abstracts cookie reads and writes for one request/response cycle.
//
//	Docs: docs/session.md
type Jar = session.Jar

// NewJar binds a Jar to an HTTP exchange. Pass it to every operation that
// reads or writes the session cookie.
func NewJar(w http.ResponseWriter, r *http.Request) Jar {
	return session.NewJar(w, r)
}

// AuditEvent is a structured audit record emitted by the engine.
//
//	Docs: docs/audit.md
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
//
//	Docs: docs/audit.md
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
//
//	Docs: docs/audit.md
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
//
//	Docs: docs/audit.md
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
//
//	Docs: docs/audit.md
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
//
//	Docs: docs/audit.md
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// MetricID identifies a specific counter or histogram bucket in the
// in-process metrics system.
//
//	Docs: docs/metrics.md
type MetricID = internalmetrics.ID

const (
	// MetricLoginSuccess is an exported constant or variable used by the authentication engine.
	MetricLoginSuccess = MetricID(internalmetrics.LoginSuccess)
	// MetricLoginFailure is an exported constant or variable used by the authentication engine.
	MetricLoginFailure = MetricID(internalmetrics.LoginFailure)
	// MetricSignupSuccess is an exported constant or variable used by the authentication engine.
	MetricSignupSuccess = MetricID(internalmetrics.SignupSuccess)
	// MetricSignupFailure is an exported constant or variable used by the authentication engine.
	MetricSignupFailure = MetricID(internalmetrics.SignupFailure)
	// MetricEmailVerificationSuccess is an exported constant or variable used by the authentication engine.
	MetricEmailVerificationSuccess = MetricID(internalmetrics.EmailVerificationSuccess)
	// MetricEmailVerificationFailure is an exported constant or variable used by the authentication engine.
	MetricEmailVerificationFailure = MetricID(internalmetrics.EmailVerificationFailure)
	// MetricEmailVerificationResend is an exported constant or variable used by the authentication engine.
	MetricEmailVerificationResend = MetricID(internalmetrics.EmailVerificationResend)
	// MetricPasswordResetRequest is an exported constant or variable used by the authentication engine.
	MetricPasswordResetRequest = MetricID(internalmetrics.PasswordResetRequest)
	// MetricPasswordResetConfirmSuccess is an exported constant or variable used by the authentication engine.
	MetricPasswordResetConfirmSuccess = MetricID(internalmetrics.PasswordResetConfirmSuccess)
	// MetricPasswordResetConfirmFailure is an exported constant or variable used by the authentication engine.
	MetricPasswordResetConfirmFailure = MetricID(internalmetrics.PasswordResetConfirmFailure)
	// MetricLogout is an exported constant or variable used by the authentication engine.
	MetricLogout = MetricID(internalmetrics.Logout)
	// MetricSessionCreated is an exported constant or variable used by the authentication engine.
	MetricSessionCreated = MetricID(internalmetrics.SessionCreated)
	// MetricSessionRefreshed is an exported constant or variable used by the authentication engine.
	MetricSessionRefreshed = MetricID(internalmetrics.SessionRefreshed)
	// MetricSessionDestroyed is an exported constant or variable used by the authentication engine.
	MetricSessionDestroyed = MetricID(internalmetrics.SessionDestroyed)
	// MetricTokenInvalid is an exported constant or variable used by the authentication engine.
	MetricTokenInvalid = MetricID(internalmetrics.TokenInvalid)
	// MetricPendingFlow is an exported constant or variable used by the authentication engine.
	MetricPendingFlow = MetricID(internalmetrics.PendingFlow)
	// MetricBadInput is an exported constant or variable used by the authentication engine.
	MetricBadInput = MetricID(internalmetrics.BadInput)
	// MetricBackendUnreachable is an exported constant or variable used by the authentication engine.
	MetricBackendUnreachable = MetricID(internalmetrics.BackendUnreachable)
	// MetricBackendLatency is an exported constant or variable used by the authentication engine.
	MetricBackendLatency = MetricID(internalmetrics.BackendLatency)
)

// Metrics holds atomic counters and optional latency histograms.
//
//	Docs: docs/metrics.md
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all metrics.
//
//	Docs: docs/metrics.md
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a new [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
//
//	Docs: docs/metrics.md
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{
		Enabled:                 cfg.Enabled,
		EnableLatencyHistograms: cfg.EnableLatencyHistograms,
	})
}
