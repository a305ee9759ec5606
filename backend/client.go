package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	headerSessionToken = "X-Session-Token"
	headerRequestID    = "X-Request-Id"

	defaultTimeout = 10 * time.Second
)

// ErrUnreachable is an exported constant or variable used by the authentication engine.
var ErrUnreachable = errors.New("identity backend unreachable")

// Config defines a public type used by authgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client defines a public type used by authgate APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailBody struct {
	Email string `json:"email"`
}

type keyBody struct {
	Key string `json:"key"`
}

type resetBody struct {
	Key      string `json:"key"`
	Password string `json:"password"`
}

// NewClient describes the newclient operation and its observable behavior.
//
// NewClient may return an error when input validation, dependency calls, or security checks fail.
// NewClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("BaseURL required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	hc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		hc.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &Client{
		http:   hc,
		logger: logger,
	}, nil
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Login(ctx context.Context, email, password string) (Reply, error) {
	return c.post(ctx, "/auth/login", credentialsBody{Email: email, Password: password}, "")
}

// Signup describes the signup operation and its observable behavior.
//
// Signup may return an error when input validation, dependency calls, or security checks fail.
// Signup does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Signup(ctx context.Context, email, password string) (Reply, error) {
	return c.post(ctx, "/auth/signup", credentialsBody{Email: email, Password: password}, "")
}

// VerifyEmail describes the verifyemail operation and its observable behavior.
//
// VerifyEmail may return an error when input validation, dependency calls, or security checks fail.
// VerifyEmail does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) VerifyEmail(ctx context.Context, key string) (Reply, error) {
	return c.post(ctx, "/auth/email/verify", keyBody{Key: key}, "")
}

// ResendEmailVerification describes the resendemailverification operation and its observable behavior.
//
// ResendEmailVerification may return an error when input validation, dependency calls, or security checks fail.
// ResendEmailVerification does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ResendEmailVerification(ctx context.Context, email string) (Reply, error) {
	return c.post(ctx, "/auth/email/verify/resend", emailBody{Email: email}, "")
}

// RequestPasswordReset describes the requestpasswordreset operation and its observable behavior.
//
// RequestPasswordReset may return an error when input validation, dependency calls, or security checks fail.
// RequestPasswordReset does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (Reply, error) {
	return c.post(ctx, "/auth/password/request", emailBody{Email: email}, "")
}

// ResetPassword describes the resetpassword operation and its observable behavior.
//
// ResetPassword may return an error when input validation, dependency calls, or security checks fail.
// ResetPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ResetPassword(ctx context.Context, key, password string) (Reply, error) {
	return c.post(ctx, "/auth/password/reset", resetBody{Key: key, Password: password}, "")
}

// GetSession describes the getsession operation and its observable behavior.
//
// GetSession may return an error when input validation, dependency calls, or security checks fail.
// GetSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) GetSession(ctx context.Context, authToken string) (Reply, error) {
	resp, err := c.request(ctx, authToken).Get("/auth/session")
	if err != nil {
		return c.unreachable("GET /auth/session", err)
	}
	return c.decode(resp.StatusCode(), resp.Body()), nil
}

// DeleteSession describes the deletesession operation and its observable behavior.
//
// DeleteSession may return an error when input validation, dependency calls, or security checks fail.
// DeleteSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) DeleteSession(ctx context.Context, authToken string) (Reply, error) {
	resp, err := c.request(ctx, authToken).Delete("/auth/session")
	if err != nil {
		return c.unreachable("DELETE /auth/session", err)
	}
	return c.decode(resp.StatusCode(), resp.Body()), nil
}

func (c *Client) post(ctx context.Context, path string, body any, authToken string) (Reply, error) {
	resp, err := c.request(ctx, authToken).SetBody(body).Post(path)
	if err != nil {
		return c.unreachable("POST "+path, err)
	}
	return c.decode(resp.StatusCode(), resp.Body()), nil
}

func (c *Client) request(ctx context.Context, authToken string) *resty.Request {
	req := c.http.R().
		SetContext(ctx).
		SetHeader(headerRequestID, uuid.NewString()).
		SetHeader("Content-Type", "application/json")
	if authToken != "" {
		req.SetHeader(headerSessionToken, authToken)
	}
	return req
}

func (c *Client) unreachable(call string, err error) (Reply, error) {
	c.logger.Warn("identity backend unreachable",
		zap.String("call", call),
		zap.Error(err),
	)
	return Reply{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
}

// decode keeps the status class even when the body does not parse: a 401
// with an unreadable body is still an auth-required answer, and logout
// depends on that.
func (c *Client) decode(status int, body []byte) Reply {
	reply := Reply{
		Class:  classify(status),
		Status: status,
	}

	if len(body) == 0 {
		return reply
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Warn("undecodable backend reply",
			zap.Int("status", status),
			zap.Error(err),
		)
		return reply
	}

	reply.Meta = env.Meta
	reply.Errors = env.Errors
	reply.Flows = env.Flows
	reply.User = env.Data.User

	return reply
}
