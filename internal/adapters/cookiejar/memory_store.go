package cookiejar

import (
	"context"
	"net/http"
	"sync"

	"github.com/oasisnourish/storefront/internal/ports"
)

var _ ports.CookieStore = (*MemoryStore)(nil)

// MemoryStore keeps cookies for the lifetime of the process.
type MemoryStore struct {
	mu      sync.Mutex
	cookies map[string][]*http.Cookie
}

// NewMemoryStore creates an empty in-memory cookie store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cookies: make(map[string][]*http.Cookie)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]*http.Cookie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneCookies(m.cookies[key]), nil
}

func (m *MemoryStore) Save(_ context.Context, key string, cookies []*http.Cookie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cookies[key] = cloneCookies(cookies)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cookies, key)
	return nil
}

func cloneCookies(in []*http.Cookie) []*http.Cookie {
	if len(in) == 0 {
		return nil
	}
	out := make([]*http.Cookie, 0, len(in))
	for _, c := range in {
		cp := *c
		out = append(out, &cp)
	}
	return out
}
