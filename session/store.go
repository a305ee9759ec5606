package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/overtuned/authgate/internal"
	"github.com/overtuned/authgate/token"
)

var (
	// ErrNoCredential is an exported constant or variable used by the authentication engine.
	ErrNoCredential = errors.New("no session credential present")
	// ErrAlreadyRevoked is an exported constant or variable used by the authentication engine.
	//
	// A Revoker returns it when the remote side reports the session is
	// already gone; Destroy treats that as a confirmed revocation.
	ErrAlreadyRevoked = errors.New("session already revoked remotely")
)

// Revoker defines a public type used by authgate APIs.
//
// Revoker instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Revoker interface {
	Revoke(ctx context.Context, authToken string) error
}

// Config defines a public type used by authgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	CookieName string
	Path       string
	Domain     string
	MaxAge     time.Duration
	Secure     bool
	SameSite   http.SameSite
}

// Store defines a public type used by authgate APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	codec  *token.Codec
	cfg    Config
	keeper Keeper
	logger *zap.Logger
}

// NewStore describes the newstore operation and its observable behavior.
//
// NewStore may return an error when input validation, dependency calls, or security checks fail.
// NewStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// A nil keeper selects inline mode: the cookie value is the signed
// credential itself.
func NewStore(codec *token.Codec, cfg Config, keeper Keeper, logger *zap.Logger) (*Store, error) {
	if codec == nil {
		return nil, errors.New("codec required")
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "session"
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = codec.TTL()
	}
	if cfg.SameSite == 0 {
		cfg.SameSite = http.SameSiteLaxMode
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		codec:  codec,
		cfg:    cfg,
		keeper: keeper,
		logger: logger,
	}, nil
}

// CookieName returns the name the credential is persisted under.
func (s *Store) CookieName() string {
	if s == nil {
		return ""
	}
	return s.cfg.CookieName
}

// Create describes the create operation and its observable behavior.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
// Create does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Nothing is written to the jar until the signed credential (and, in vault
// mode, the vault entry) exists, so an abandoned call never persists a
// half-built session.
func (s *Store) Create(ctx context.Context, jar Jar, authToken string) error {
	if s == nil {
		return errors.New("nil store")
	}
	if jar == nil {
		return errors.New("nil jar")
	}

	signed, err := s.codec.Sign(authToken)
	if err != nil {
		return fmt.Errorf("sign credential: %w", err)
	}

	value := signed
	if s.keeper != nil {
		id, err := internal.NewVaultID()
		if err != nil {
			return fmt.Errorf("new vault id: %w", err)
		}
		if err := s.keeper.Save(ctx, id.String(), signed, s.cfg.MaxAge); err != nil {
			return fmt.Errorf("save credential: %w", err)
		}
		value = id.String()
	}

	jar.Write(s.cookie(value, s.cfg.MaxAge))
	return nil
}

// Read describes the read operation and its observable behavior.
//
// Read may return an error when input validation, dependency calls, or security checks fail.
// Read does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Every error means "no usable session". Callers treat all of them as the
// anonymous state; the classification only feeds metrics and logs.
func (s *Store) Read(ctx context.Context, jar Jar) (*Credential, error) {
	if s == nil || jar == nil {
		return nil, ErrNoCredential
	}

	raw, ok := jar.Read(s.cfg.CookieName)
	if !ok {
		return nil, ErrNoCredential
	}

	return s.load(ctx, raw)
}

// Refresh describes the refresh operation and its observable behavior.
//
// Refresh may return an error when input validation, dependency calls, or security checks fail.
// Refresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The same signed credential is re-written with a fresh expiry window; only
// the window moves. A missing or invalid credential is never resurrected.
// Two concurrent refreshes race benignly: both write the same value.
func (s *Store) Refresh(ctx context.Context, jar Jar) error {
	if s == nil || jar == nil {
		return ErrNoCredential
	}

	raw, ok := jar.Read(s.cfg.CookieName)
	if !ok {
		return ErrNoCredential
	}

	if _, err := s.load(ctx, raw); err != nil {
		return err
	}

	if s.keeper != nil {
		id, err := internal.ParseVaultID(raw)
		if err != nil {
			return fmt.Errorf("%w: malformed vault id", token.ErrInvalid)
		}
		if err := s.keeper.Touch(ctx, id.String(), s.cfg.MaxAge); err != nil {
			return fmt.Errorf("touch credential: %w", err)
		}
	}

	jar.Write(s.cookie(raw, s.cfg.MaxAge))
	return nil
}

// Destroy describes the destroy operation and its observable behavior.
//
// Destroy may return an error when input validation, dependency calls, or security checks fail.
// Destroy does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Remote revocation runs first. The local credential survives any revoke
// failure other than "already gone", so the caller can retry and a
// still-valid remote session is never orphaned without its token.
func (s *Store) Destroy(ctx context.Context, jar Jar, revoker Revoker) error {
	if s == nil || jar == nil {
		return nil
	}

	raw, ok := jar.Read(s.cfg.CookieName)
	if !ok {
		return nil
	}

	cred, err := s.load(ctx, raw)
	if err != nil {
		// Nothing verifiable left to revoke; drop the local leftovers.
		s.clear(ctx, jar, raw)
		return nil
	}

	if revoker != nil {
		if err := revoker.Revoke(ctx, cred.AuthToken); err != nil && !errors.Is(err, ErrAlreadyRevoked) {
			return fmt.Errorf("revoke session: %w", err)
		}
	}

	s.clear(ctx, jar, raw)
	return nil
}

// load resolves a raw cookie value to a verified credential.
func (s *Store) load(ctx context.Context, raw string) (*Credential, error) {
	signed := raw
	if s.keeper != nil {
		id, err := internal.ParseVaultID(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed vault id", token.ErrInvalid)
		}
		signed, err = s.keeper.Lookup(ctx, id.String())
		if err != nil {
			return nil, fmt.Errorf("read credential: %w", err)
		}
	}

	cred, err := s.codec.Verify(signed)
	if err != nil {
		return nil, fmt.Errorf("verify credential: %w", err)
	}
	return &cred, nil
}

func (s *Store) clear(ctx context.Context, jar Jar, raw string) {
	if s.keeper != nil {
		if id, err := internal.ParseVaultID(raw); err == nil {
			if err := s.keeper.Drop(ctx, id.String()); err != nil {
				s.logger.Warn("vault drop failed", zap.Error(err))
			}
		}
	}
	jar.Write(s.expiredCookie())
}

func (s *Store) cookie(value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    value,
		Path:     s.cfg.Path,
		Domain:   s.cfg.Domain,
		MaxAge:   int(maxAge / time.Second),
		Expires:  time.Now().Add(maxAge),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: s.cfg.SameSite,
	}
}

func (s *Store) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     s.cfg.Path,
		Domain:   s.cfg.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: s.cfg.SameSite,
	}
}
