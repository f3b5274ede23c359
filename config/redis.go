package config

import "strings"

// RedisConfig configures the Redis instance used by the redis cookie store.
type RedisConfig struct {
	// URI is a redis:// or rediss:// URL, or a bare host:port.
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
	// KeyPrefix namespaces every key this client writes.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"storefront:cookies:"`
}

// Sanitize trims the URI and clamps the DB index.
func (r *RedisConfig) Sanitize() {
	r.URI = strings.TrimSpace(r.URI)
	r.KeyPrefix = strings.TrimSpace(r.KeyPrefix)
	if r.DB < 0 {
		r.DB = 0
	}
}
