package redis

// Package redis provides Redis-based adapters for the storefront client.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oasisnourish/storefront/internal/ports"
)

const defaultCookiePrefix = "storefront:cookies:"

var _ ports.CookieStore = (*CookieStore)(nil)

// CookieStore persists backend cookies in Redis so a restarted shell keeps its session.
// The key's TTL follows the latest cookie expiry; session cookies fall back to SessionTTL.
type CookieStore struct {
	client     redis.UniversalClient
	prefix     string
	sessionTTL time.Duration
	now        func() time.Time
}

// CookieStoreOptions configures a CookieStore.
type CookieStoreOptions struct {
	Prefix     string
	SessionTTL time.Duration
	Now        func() time.Time
}

// NewCookieStore creates a Redis-backed cookie store.
func NewCookieStore(client redis.UniversalClient, opts CookieStoreOptions) *CookieStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultCookiePrefix
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &CookieStore{client: client, prefix: prefix, sessionTTL: ttl, now: now}
}

// storedCookie is the persisted subset of http.Cookie.
type storedCookie struct {
	Name     string        `json:"name"`
	Value    string        `json:"value"`
	Path     string        `json:"path,omitempty"`
	Domain   string        `json:"domain,omitempty"`
	Expires  time.Time     `json:"expires,omitzero"`
	Secure   bool          `json:"secure,omitempty"`
	HttpOnly bool          `json:"http_only,omitempty"`
	SameSite http.SameSite `json:"same_site,omitempty"`
}

func (s *CookieStore) Save(ctx context.Context, key string, cookies []*http.Cookie) error {
	if key == "" {
		return errors.New("cookie key cannot be empty")
	}

	now := s.now()
	stored := make([]storedCookie, 0, len(cookies))
	var latest time.Time
	session := false
	for _, c := range cookies {
		if c == nil || c.Name == "" {
			continue
		}
		if !c.Expires.IsZero() && !c.Expires.After(now) {
			continue
		}
		if c.Expires.IsZero() {
			session = true
		} else if c.Expires.After(latest) {
			latest = c.Expires
		}
		stored = append(stored, storedCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
			SameSite: c.SameSite,
		})
	}

	if len(stored) == 0 {
		return s.Delete(ctx, key)
	}

	ttl := latest.Sub(now)
	if session && ttl < s.sessionTTL {
		ttl = s.sessionTTL
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal cookies: %w", err)
	}
	return s.client.Set(ctx, s.prefix+key, data, ttl).Err()
}

// Load returns the persisted cookies for key; a missing key yields no cookies and no error.
func (s *CookieStore) Load(ctx context.Context, key string) ([]*http.Cookie, error) {
	if key == "" {
		return nil, nil
	}

	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("unmarshal cookies: %w", err)
	}

	now := s.now()
	out := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		if !c.Expires.IsZero() && !c.Expires.After(now) {
			continue
		}
		out = append(out, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
			SameSite: c.SameSite,
		})
	}
	return out, nil
}

func (s *CookieStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+key).Err()
}
