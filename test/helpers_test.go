//go:build integration
// +build integration

package test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/overtuned/authgate/backend"
	"github.com/overtuned/authgate/session"
	"github.com/overtuned/authgate/token"
)

var integrationSecret = []byte("integration-secret-0123456789abc")

func newIntegrationRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return rdb, mr, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

func newIntegrationCodec(t *testing.T) *token.Codec {
	t.Helper()

	codec, err := token.NewCodec(token.Config{
		Secret: integrationSecret,
		TTL:    time.Hour,
		Issuer: "authgate-test",
	})
	if err != nil {
		t.Fatalf("codec init failed: %v", err)
	}
	return codec
}

func newVaultStore(t *testing.T, rdb redis.UniversalClient) *session.Store {
	t.Helper()

	store, err := session.NewStore(newIntegrationCodec(t), session.Config{
		CookieName: "session",
		Path:       "/",
		MaxAge:     time.Hour,
	}, session.NewRedisKeeper(rdb, "ag"), nil)
	if err != nil {
		t.Fatalf("store init failed: %v", err)
	}
	return store
}

// recordingJar keeps cookies in memory across simulated requests.
type recordingJar struct {
	cookies map[string]string
}

func newRecordingJar() *recordingJar {
	return &recordingJar{cookies: make(map[string]string)}
}

func (j *recordingJar) Read(name string) (string, bool) {
	v, ok := j.cookies[name]
	return v, ok && v != ""
}

func (j *recordingJar) Write(c *http.Cookie) {
	if c.MaxAge < 0 {
		delete(j.cookies, c.Name)
		return
	}
	j.cookies[c.Name] = c.Value
}

// scriptedBackend answers with fixed replies, recording auth tokens it sees.
type scriptedBackend struct {
	loginReply    backend.Reply
	sessionReply  backend.Reply
	deleteReply   backend.Reply
	lastAuthToken string
}

func okReply() backend.Reply {
	return backend.Reply{Class: backend.ClassOK, Status: http.StatusOK}
}

func (s *scriptedBackend) Login(ctx context.Context, email, password string) (backend.Reply, error) {
	return s.loginReply, nil
}

func (s *scriptedBackend) Signup(ctx context.Context, email, password string) (backend.Reply, error) {
	return okReply(), nil
}

func (s *scriptedBackend) VerifyEmail(ctx context.Context, key string) (backend.Reply, error) {
	return okReply(), nil
}

func (s *scriptedBackend) ResendEmailVerification(ctx context.Context, email string) (backend.Reply, error) {
	return okReply(), nil
}

func (s *scriptedBackend) RequestPasswordReset(ctx context.Context, email string) (backend.Reply, error) {
	return okReply(), nil
}

func (s *scriptedBackend) ResetPassword(ctx context.Context, key, password string) (backend.Reply, error) {
	return okReply(), nil
}

func (s *scriptedBackend) GetSession(ctx context.Context, authToken string) (backend.Reply, error) {
	s.lastAuthToken = authToken
	return s.sessionReply, nil
}

func (s *scriptedBackend) DeleteSession(ctx context.Context, authToken string) (backend.Reply, error) {
	s.lastAuthToken = authToken
	return s.deleteReply, nil
}
