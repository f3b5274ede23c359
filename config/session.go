package config

import (
	"fmt"
	"strings"
	"time"
)

// CookieStoreMode selects where backend cookies are kept between runs.
type CookieStoreMode string

const (
	// CookieStoreMemory keeps cookies for the lifetime of the process only.
	CookieStoreMemory CookieStoreMode = "memory"
	// CookieStoreRedis persists cookies in Redis so a restarted shell stays signed in.
	CookieStoreRedis CookieStoreMode = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for CookieStoreMode.
func (m *CookieStoreMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis":
		*m = CookieStoreMode(v)
		return nil
	default:
		return fmt.Errorf("invalid CookieStoreMode: %q (valid options: memory, redis)", v)
	}
}

// SessionConfig controls session verification and cookie persistence.
type SessionConfig struct {
	// StaleAfter is how long a settled verification is trusted before navigation re-verifies.
	StaleAfter time.Duration `env:"SESSION_STALE_AFTER" envDefault:"5m"`

	// TransportRetries re-issues the identity fetch when no response was received.
	// HTTP statuses are never retried.
	TransportRetries int `env:"SESSION_TRANSPORT_RETRIES" envDefault:"1"`

	// RetryBackoff is multiplied by the attempt number between transport retries.
	RetryBackoff time.Duration `env:"SESSION_RETRY_BACKOFF" envDefault:"250ms"`

	// CookieStore selects the cookie persistence backend (memory or redis).
	CookieStore CookieStoreMode `env:"SESSION_COOKIE_STORE" envDefault:"memory"`

	// CookieKey identifies this client's cookie set inside the store.
	CookieKey string `env:"SESSION_COOKIE_KEY" envDefault:"default"`

	// CookieTTL bounds how long session cookies (no Expires) are persisted.
	CookieTTL time.Duration `env:"SESSION_COOKIE_TTL" envDefault:"24h"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.StaleAfter <= 0 {
		s.StaleAfter = 5 * time.Minute
	}
	if s.TransportRetries < 0 {
		s.TransportRetries = 0
	}
	if s.TransportRetries > 5 {
		s.TransportRetries = 5
	}
	if s.RetryBackoff < 0 {
		s.RetryBackoff = 0
	}
	if s.CookieStore == "" {
		s.CookieStore = CookieStoreMemory
	}
	if s.CookieKey = strings.TrimSpace(s.CookieKey); s.CookieKey == "" {
		s.CookieKey = "default"
	}
	if s.CookieTTL <= 0 {
		s.CookieTTL = 24 * time.Hour
	}
}
