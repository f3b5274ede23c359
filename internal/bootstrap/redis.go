package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oasisnourish/storefront/config"
)

const redisPingTimeout = 5 * time.Second

// RedisOptions contains configuration for the Redis connection backing the cookie store.
type RedisOptions struct {
	Config config.RedisConfig
	Logger *slog.Logger
}

// ConnectRedis connects to the Redis instance named by REDIS_URI and pings it.
func ConnectRedis(ctx context.Context, cfg RedisOptions) (*redis.Client, error) {
	opts, err := redisClientOptions(cfg.Config)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.InfoContext(ctx, "redis connected", "addr", opts.Addr, "db", opts.DB, "tls", opts.TLSConfig != nil)
	}
	return client, nil
}

// redisClientOptions accepts either a redis:// (or rediss://) URL or a bare host:port.
// REDIS_PASSWORD and REDIS_DB fill in whatever the URL leaves unset.
func redisClientOptions(cfg config.RedisConfig) (*redis.Options, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, errors.New("redis configuration requires a URI")
	}

	if !isRedisURL(uri) {
		return &redis.Options{Addr: uri, Password: cfg.Password, DB: cfg.DB}, nil
	}

	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.Password == "" {
		opts.Password = cfg.Password
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	return opts, nil
}

func isRedisURL(uri string) bool {
	lower := strings.ToLower(uri)
	return strings.HasPrefix(lower, "redis://") || strings.HasPrefix(lower, "rediss://")
}
