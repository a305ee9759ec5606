package authgate

import (
	"net/http"
	"time"
)

// SecurityReport summarizes the effective security posture of a built engine.
// It carries configuration outcomes only, never the signing secret.
type SecurityReport struct {
	SigningAlgorithm string
	TokenTTL         time.Duration
	TokenLeeway      time.Duration
	TokenIssuer      string
	CookieName       string
	CookieSecure     bool
	CookieHTTPOnly   bool
	CookieSameSite   http.SameSite
	VaultEnabled     bool
	SlidingRefresh   bool
	AuditEnabled     bool
	MetricsEnabled   bool
}

func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	return SecurityReport{
		SigningAlgorithm: "HS256",
		TokenTTL:         e.config.Token.TTL,
		TokenLeeway:      e.config.Token.Leeway,
		TokenIssuer:      e.config.Token.Issuer,
		CookieName:       e.config.Cookie.Name,
		CookieSecure:     e.config.Cookie.Secure,
		CookieHTTPOnly:   true,
		CookieSameSite:   e.config.Cookie.SameSite,
		VaultEnabled:     e.config.Vault.Enabled,
		SlidingRefresh:   e.config.Session.SlidingRefresh,
		AuditEnabled:     e.config.Audit.Enabled,
		MetricsEnabled:   e.config.Metrics.Enabled,
	}
}
