package authgate

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/overtuned/authgate/backend"
)

func userReply(id, email string) backend.Reply {
	return backend.Reply{
		Class:  backend.ClassOK,
		Status: http.StatusOK,
		User:   &backend.User{ID: id, Email: email},
	}
}

func TestCurrentUserResolvesBackendUser(t *testing.T) {
	be := &scriptedBackend{sessionReply: userReply("u1", "ada@example.com")}
	engine := newTestEngine(t, be)
	jar := newMemJar()
	seedSession(t, engine, jar, "tok123")

	user, err := engine.CurrentUser(context.Background(), jar)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if user.ID != "u1" || user.Email != "ada@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}
	if be.lastAuthToken != "tok123" {
		t.Fatalf("backend saw token %q, expected tok123", be.lastAuthToken)
	}
}

func TestCurrentUserWithoutCookie(t *testing.T) {
	be := &scriptedBackend{}
	engine := newTestEngine(t, be)

	if _, err := engine.CurrentUser(context.Background(), newMemJar()); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if len(be.calls) != 0 {
		t.Fatalf("no credential means no backend call, saw %v", be.calls)
	}
}

func TestCurrentUserGarbageCookie(t *testing.T) {
	be := &scriptedBackend{}
	engine := newTestEngine(t, be)
	jar := newMemJar()
	jar.Write(&http.Cookie{Name: "session", Value: "tampered.credential.value"})

	if _, err := engine.CurrentUser(context.Background(), jar); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if len(be.calls) != 0 {
		t.Fatalf("an unverifiable credential means no backend call, saw %v", be.calls)
	}
}

func TestCurrentUserRevokedRemotely(t *testing.T) {
	be := &scriptedBackend{sessionReply: authRequiredReply()}
	engine := newTestEngine(t, be)
	jar := newMemJar()
	seedSession(t, engine, jar, "tok123")

	if _, err := engine.CurrentUser(context.Background(), jar); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}
	if !jar.hasSession() {
		t.Fatal("revocation reporting must not clear the cookie")
	}
}

func TestCurrentUserUnreachableBackend(t *testing.T) {
	be := &scriptedBackend{sessionErr: backend.ErrUnreachable}
	engine := newTestEngine(t, be)
	jar := newMemJar()
	seedSession(t, engine, jar, "tok123")

	if _, err := engine.CurrentUser(context.Background(), jar); !errors.Is(err, ErrBackendUnreachable) {
		t.Fatalf("expected ErrBackendUnreachable, got %v", err)
	}
	if !jar.hasSession() {
		t.Fatal("a transient outage must not clear the cookie")
	}
}

func TestCurrentUserMissingUserIsProtocolViolation(t *testing.T) {
	be := &scriptedBackend{sessionReply: emptyOKReply()}
	engine := newTestEngine(t, be)
	jar := newMemJar()
	seedSession(t, engine, jar, "tok123")

	if _, err := engine.CurrentUser(context.Background(), jar); !errors.Is(err, ErrBackendProtocol) {
		t.Fatalf("expected ErrBackendProtocol, got %v", err)
	}
}

func TestCurrentUserSlidingRefresh(t *testing.T) {
	be := &scriptedBackend{sessionReply: userReply("u1", "ada@example.com")}

	engine, err := New().
		WithConfig(testConfig()).
		WithBackend(be).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(engine.Close)

	jar := newMemJar()
	seedSession(t, engine, jar, "tok123")

	if _, err := engine.CurrentUser(context.Background(), jar); err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}

	snap := engine.MetricsSnapshot()
	if got := snap.Counters[MetricSessionRefreshed]; got != 1 {
		t.Fatalf("session refreshed counter = %d, expected 1", got)
	}
}

func TestRefreshSessionWithoutCredential(t *testing.T) {
	engine := newTestEngine(t, &scriptedBackend{})

	if err := engine.RefreshSession(context.Background(), newMemJar()); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestRefreshSessionKeepsToken(t *testing.T) {
	engine := newTestEngine(t, &scriptedBackend{})
	jar := newMemJar()
	seedSession(t, engine, jar, "tok123")

	if err := engine.RefreshSession(context.Background(), jar); err != nil {
		t.Fatalf("RefreshSession: %v", err)
	}

	cred, err := engine.store.Read(context.Background(), jar)
	if err != nil {
		t.Fatalf("Read after refresh: %v", err)
	}
	if cred.AuthToken != "tok123" {
		t.Fatalf("refresh replaced the token: %q", cred.AuthToken)
	}
}
