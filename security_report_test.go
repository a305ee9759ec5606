package authgate

import (
	"net/http"
	"testing"
	"time"
)

func TestSecurityReportReflectsConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Token.TTL = 48 * time.Hour
	cfg.Session.SlidingRefresh = false
	cfg.Cookie.SameSite = http.SameSiteStrictMode

	engine, err := New().
		WithConfig(cfg).
		WithBackend(&scriptedBackend{}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(engine.Close)

	report := engine.SecurityReport()
	if report.SigningAlgorithm != "HS256" {
		t.Fatalf("algorithm = %q, expected HS256", report.SigningAlgorithm)
	}
	if report.TokenTTL != 48*time.Hour {
		t.Fatalf("token ttl = %v, expected 48h", report.TokenTTL)
	}
	if report.CookieName != "session" {
		t.Fatalf("cookie name = %q, expected session", report.CookieName)
	}
	if !report.CookieHTTPOnly {
		t.Fatal("session cookies are always HttpOnly")
	}
	if report.CookieSameSite != http.SameSiteStrictMode {
		t.Fatalf("samesite = %v, expected Strict", report.CookieSameSite)
	}
	if report.SlidingRefresh {
		t.Fatal("sliding refresh was disabled in the config")
	}
	if report.VaultEnabled {
		t.Fatal("vault mode was not enabled")
	}
}

func TestSecurityReportNilEngine(t *testing.T) {
	var engine *Engine

	if report := engine.SecurityReport(); report.SigningAlgorithm != "" {
		t.Fatalf("nil engine must report a zero value, got %+v", report)
	}
}
