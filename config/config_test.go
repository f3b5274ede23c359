package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.IsDev {
		t.Errorf("expected IsDev to default to false")
	}
	if cfg.Backend.BaseURL != "http://localhost:3000/api" {
		t.Errorf("unexpected base url %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Errorf("unexpected timeout %s", cfg.Backend.Timeout)
	}
	if cfg.Backend.ErrorTitleExpr != "title" {
		t.Errorf("unexpected title expression %q", cfg.Backend.ErrorTitleExpr)
	}
	if cfg.Session.StaleAfter != 5*time.Minute {
		t.Errorf("unexpected stale-after %s", cfg.Session.StaleAfter)
	}
	if cfg.Session.TransportRetries != 1 {
		t.Errorf("unexpected transport retries %d", cfg.Session.TransportRetries)
	}
	if cfg.Session.CookieStore != CookieStoreMemory {
		t.Errorf("unexpected cookie store %q", cfg.Session.CookieStore)
	}
	if cfg.UsesRedis() {
		t.Errorf("memory cookie store should not need redis")
	}
	if cfg.Observability.LogLevel != slog.LevelInfo {
		t.Errorf("unexpected log level %s", cfg.Observability.LogLevel)
	}
	if cfg.Redis.URI != "localhost:6379" || cfg.Redis.KeyPrefix != "storefront:cookies:" {
		t.Errorf("unexpected redis defaults %#v", cfg.Redis)
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", " https://shop.example.com/api/ ")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("BACKEND_ERROR_TITLE_EXPR", "error.message")
	t.Setenv("SESSION_STALE_AFTER", "30s")
	t.Setenv("SESSION_TRANSPORT_RETRIES", "2")
	t.Setenv("SESSION_COOKIE_STORE", "Redis")
	t.Setenv("SESSION_COOKIE_KEY", "alice")
	t.Setenv("REDIS_URI", "redis.internal:6380")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("LOG_LEVEL", "debug")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	expectedBackend := BackendConfig{
		BaseURL:        "https://shop.example.com/api",
		Timeout:        3 * time.Second,
		ErrorTitleExpr: "error.message",
		UserAgent:      "oasis-storefront",
	}
	if !reflect.DeepEqual(cfg.Backend, expectedBackend) {
		t.Fatalf("unexpected backend configuration:\nexpected: %#v\ngot:      %#v", expectedBackend, cfg.Backend)
	}
	if cfg.Session.StaleAfter != 30*time.Second || cfg.Session.TransportRetries != 2 {
		t.Errorf("unexpected session configuration: %#v", cfg.Session)
	}
	if !cfg.UsesRedis() || cfg.Session.CookieKey != "alice" {
		t.Errorf("expected redis cookie store keyed by alice, got %#v", cfg.Session)
	}
	if cfg.Redis.URI != "redis.internal:6380" || cfg.Redis.DB != 4 {
		t.Errorf("unexpected redis configuration: %#v", cfg.Redis)
	}
	if cfg.Observability.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug log level, got %s", cfg.Observability.LogLevel)
	}
}

func TestAppConfig_InvalidCookieStore(t *testing.T) {
	t.Setenv("SESSION_COOKIE_STORE", "postgres")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatalf("expected error for unknown cookie store")
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Fatalf("expected NODE_ENV=development to enable dev mode")
	}
}

func TestBackendConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"too small", 10 * time.Millisecond, minBackendTimeout},
		{"too large", time.Hour, maxBackendTimeout},
		{"in range", 5 * time.Second, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := BackendConfig{BaseURL: "http://api/", Timeout: tt.timeout}
			cfg.Sanitize()
			if cfg.Timeout != tt.want {
				t.Errorf("expected timeout %s, got %s", tt.want, cfg.Timeout)
			}
			if cfg.BaseURL != "http://api" {
				t.Errorf("expected trailing slash to be trimmed, got %q", cfg.BaseURL)
			}
			if cfg.ErrorTitleExpr != "title" {
				t.Errorf("expected default title expression, got %q", cfg.ErrorTitleExpr)
			}
		})
	}
}

func TestSessionConfig_Sanitize(t *testing.T) {
	cfg := SessionConfig{TransportRetries: 50, RetryBackoff: -time.Second, CookieKey: "  "}
	cfg.Sanitize()

	if cfg.TransportRetries != 5 {
		t.Errorf("expected retries to be capped at 5, got %d", cfg.TransportRetries)
	}
	if cfg.RetryBackoff != 0 {
		t.Errorf("expected negative backoff to be zeroed, got %s", cfg.RetryBackoff)
	}
	if cfg.StaleAfter != 5*time.Minute || cfg.CookieTTL != 24*time.Hour {
		t.Errorf("expected duration defaults, got %#v", cfg)
	}
	if cfg.CookieStore != CookieStoreMemory || cfg.CookieKey != "default" {
		t.Errorf("expected store defaults, got %#v", cfg)
	}
}

func TestRedisConfig_Sanitize(t *testing.T) {
	cfg := RedisConfig{
		URI:       " redis://cache.internal:6379/1 ",
		DB:        -3,
		KeyPrefix: " shop: ",
	}
	cfg.Sanitize()

	if cfg.URI != "redis://cache.internal:6379/1" {
		t.Errorf("expected trimmed uri, got %q", cfg.URI)
	}
	if cfg.DB != 0 {
		t.Errorf("expected negative db to be clamped, got %d", cfg.DB)
	}
	if cfg.KeyPrefix != "shop:" {
		t.Errorf("expected trimmed key prefix, got %q", cfg.KeyPrefix)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
		Prefix:        ".shop.",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
	if cfg.Prefix != "shop" {
		t.Fatalf("expected prefix dots to be trimmed, got %q", cfg.Prefix)
	}
}
