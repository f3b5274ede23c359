// Package cookiejar provides the backend client's cookie jar.
//
// The backend authenticates with HttpOnly access and refresh cookies. Jar wraps
// net/http/cookiejar (public-suffix aware) and mirrors every cookie the backend
// sets into a ports.CookieStore so a restarted shell resumes the same session.
package cookiejar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	stdjar "net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/oasisnourish/storefront/internal/ports"
)

const persistTimeout = 2 * time.Second

var _ http.CookieJar = (*Jar)(nil)

// Options configures a Jar.
type Options struct {
	// BaseURL is the backend origin whose cookies are persisted.
	BaseURL string
	// Store persists cookies; nil keeps them in memory only.
	Store ports.CookieStore
	// Key names the persisted cookie set; defaults to the BaseURL host.
	Key    string
	Logger *slog.Logger
	Now    func() time.Time
}

// Jar is an http.CookieJar that persists the backend's cookies.
type Jar struct {
	jar    *stdjar.Jar
	store  ports.CookieStore
	key    string
	origin *url.URL
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	known map[string]*http.Cookie
}

// New builds a Jar and restores any cookies previously persisted under the key.
func New(ctx context.Context, opts Options) (*Jar, error) {
	origin, err := url.Parse(opts.BaseURL)
	if err != nil || origin.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", opts.BaseURL)
	}

	inner, err := stdjar.New(&stdjar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	key := opts.Key
	if key == "" {
		key = origin.Host
	}

	j := &Jar{
		jar:    inner,
		store:  opts.Store,
		key:    key,
		origin: origin,
		logger: logger.With("component", "cookie_jar"),
		now:    now,
		known:  make(map[string]*http.Cookie),
	}

	if err := j.restore(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Jar) restore(ctx context.Context) error {
	if j.store == nil {
		return nil
	}
	cookies, err := j.store.Load(ctx, j.key)
	if err != nil {
		return fmt.Errorf("load persisted cookies: %w", err)
	}
	if len(cookies) == 0 {
		return nil
	}

	j.mu.Lock()
	for _, c := range cookies {
		j.known[c.Name] = c
	}
	j.mu.Unlock()

	j.current().SetCookies(j.origin, cookies)
	j.logger.DebugContext(ctx, "restored persisted cookies", "count", len(cookies))
	return nil
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.current().Cookies(u)
}

// SetCookies implements http.CookieJar. Cookies for the backend origin are persisted.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.current().SetCookies(u, cookies)
	if j.store == nil || u.Host != j.origin.Host {
		return
	}

	j.mu.Lock()
	now := j.now()
	for _, c := range cookies {
		if c == nil {
			continue
		}
		if c.MaxAge < 0 || (!c.Expires.IsZero() && !c.Expires.After(now)) {
			delete(j.known, c.Name)
			continue
		}
		cp := *c
		if c.MaxAge > 0 {
			cp.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
			cp.MaxAge = 0
		}
		j.known[c.Name] = &cp
	}
	snapshot := j.snapshotLocked()
	j.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := j.store.Save(ctx, j.key, snapshot); err != nil {
		j.logger.WarnContext(ctx, "failed to persist cookies", "error", err)
	}
}

// Clear forgets every cookie, in memory and in the store.
func (j *Jar) Clear(ctx context.Context) error {
	inner, err := stdjar.New(&stdjar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return fmt.Errorf("create cookie jar: %w", err)
	}

	j.mu.Lock()
	j.jar = inner
	j.known = make(map[string]*http.Cookie)
	j.mu.Unlock()

	if j.store == nil {
		return nil
	}
	if err := j.store.Delete(ctx, j.key); err != nil {
		return errors.Join(errors.New("delete persisted cookies"), err)
	}
	return nil
}

// Names lists the cookies currently held for the backend origin.
func (j *Jar) Names() []string {
	cookies := j.current().Cookies(j.origin)
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	return names
}

func (j *Jar) current() *stdjar.Jar {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar
}

func (j *Jar) snapshotLocked() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(j.known))
	for _, c := range j.known {
		cp := *c
		out = append(out, &cp)
	}
	return out
}
