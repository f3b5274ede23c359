package config

import (
	"strings"
	"time"
)

const (
	minBackendTimeout = 500 * time.Millisecond
	maxBackendTimeout = 2 * time.Minute
)

// BackendConfig describes how to reach the storefront REST backend.
type BackendConfig struct {
	// BaseURL is the API root every endpoint path is appended to.
	BaseURL string `env:"BACKEND_BASE_URL" envDefault:"http://localhost:3000/api"`

	// Timeout bounds a single request, including reading the body.
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`

	// ErrorTitleExpr is a JMESPath expression selecting the user-facing message
	// from a non-2xx JSON body.
	ErrorTitleExpr string `env:"BACKEND_ERROR_TITLE_EXPR" envDefault:"title"`

	// UserAgent is sent with every request.
	UserAgent string `env:"BACKEND_USER_AGENT" envDefault:"oasis-storefront"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	b.ErrorTitleExpr = strings.TrimSpace(b.ErrorTitleExpr)
	if b.ErrorTitleExpr == "" {
		b.ErrorTitleExpr = "title"
	}
	b.UserAgent = strings.TrimSpace(b.UserAgent)

	// Clamp timeout to a usable range
	if b.Timeout < minBackendTimeout {
		b.Timeout = minBackendTimeout
	}
	if b.Timeout > maxBackendTimeout {
		b.Timeout = maxBackendTimeout
	}
}
