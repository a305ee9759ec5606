package authgate

import (
	"context"
	"testing"

	"github.com/overtuned/authgate/forms"
)

func TestResetPasswordMismatchNeverCallsBackend(t *testing.T) {
	be := &scriptedBackend{}
	engine := newTestEngine(t, be)

	res, err := engine.ResetPassword(context.Background(), newMemJar(), "reset-key-1", "longenough1", "different1")
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if res.Outcome != OutcomeFieldErrors {
		t.Fatalf("expected field errors, got outcome %d", res.Outcome)
	}
	if len(res.Fields.Fields[forms.FieldConfirm]) == 0 {
		t.Fatal("expected a message under the confirm field")
	}
	if len(be.calls) != 0 {
		t.Fatalf("backend must never see a mismatched confirmation, saw %v", be.calls)
	}
}

func TestResetPasswordSessionIssued(t *testing.T) {
	be := &scriptedBackend{resetReply: okTokenReply("tok999")}
	engine := newTestEngine(t, be)
	jar := newMemJar()

	res, err := engine.ResetPassword(context.Background(), jar, "reset-key-1", "longenough1", "longenough1")
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if res.Outcome != OutcomeSuccess {
		t.Fatalf("expected success, got outcome %d", res.Outcome)
	}
	if res.Redirect != "/" {
		t.Fatalf("expected home redirect, got %q", res.Redirect)
	}

	cred, err := engine.store.Read(context.Background(), jar)
	if err != nil {
		t.Fatalf("Read after reset: %v", err)
	}
	if cred.AuthToken != "tok999" {
		t.Fatalf("stored auth token = %q, expected tok999", cred.AuthToken)
	}
}

func TestResetPasswordWithoutTokenPointsAtSignIn(t *testing.T) {
	be := &scriptedBackend{resetReply: emptyOKReply()}
	engine := newTestEngine(t, be)
	jar := newMemJar()

	res, err := engine.ResetPassword(context.Background(), jar, "reset-key-1", "longenough1", "longenough1")
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if res.Outcome != OutcomeSuccess {
		t.Fatalf("a confirmed reset without a token is still a success, got outcome %d", res.Outcome)
	}
	if res.Redirect != "/signin" {
		t.Fatalf("expected sign-in redirect, got %q", res.Redirect)
	}
	if res.Message != msgPasswordResetDone {
		t.Fatalf("message = %q, expected %q", res.Message, msgPasswordResetDone)
	}
	if jar.hasSession() {
		t.Fatal("no session may exist when the backend issued no token")
	}
}

func TestResetPasswordStaleKeyFieldError(t *testing.T) {
	be := &scriptedBackend{
		resetReply: badInputReply(forms.Item{
			Code:    "invalid_or_expired",
			Message: "Invalid or expired key.",
			Param:   "key",
		}),
	}
	engine := newTestEngine(t, be)

	res, err := engine.ResetPassword(context.Background(), newMemJar(), "stale-key", "longenough1", "longenough1")
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if res.Outcome != OutcomeFieldErrors {
		t.Fatalf("expected field errors, got outcome %d", res.Outcome)
	}
	if len(res.Fields.Fields[forms.FieldKey]) != 1 {
		t.Fatalf("key bucket = %v, expected one message", res.Fields.Fields[forms.FieldKey])
	}
}

func TestSendPasswordResetHidesAccountExistence(t *testing.T) {
	be := &scriptedBackend{requestReply: emptyOKReply()}
	engine := newTestEngine(t, be)

	res, err := engine.SendPasswordReset(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("SendPasswordReset: %v", err)
	}
	if res.Outcome != OutcomeSuccess {
		t.Fatalf("expected success, got outcome %d", res.Outcome)
	}
	if res.Message != msgPasswordResetSent {
		t.Fatalf("message = %q, expected %q", res.Message, msgPasswordResetSent)
	}
	if res.Redirect != "" {
		t.Fatalf("a reset request must not navigate, got redirect %q", res.Redirect)
	}
}

func TestSendPasswordResetValidatesAddressLocally(t *testing.T) {
	be := &scriptedBackend{}
	engine := newTestEngine(t, be)

	res, err := engine.SendPasswordReset(context.Background(), "not-an-email")
	if err != nil {
		t.Fatalf("SendPasswordReset: %v", err)
	}
	if res.Outcome != OutcomeFieldErrors {
		t.Fatalf("expected field errors, got outcome %d", res.Outcome)
	}
	if len(be.calls) != 0 {
		t.Fatalf("backend must not be contacted, saw %v", be.calls)
	}
}
