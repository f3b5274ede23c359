package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/oasisnourish/storefront/config"
	"github.com/oasisnourish/storefront/internal/adapters/backend"
	"github.com/oasisnourish/storefront/internal/adapters/console"
	"github.com/oasisnourish/storefront/internal/adapters/cookiejar"
	redisadapter "github.com/oasisnourish/storefront/internal/adapters/redis"
	"github.com/oasisnourish/storefront/internal/domain/guard"
	"github.com/oasisnourish/storefront/internal/observability/notify"
	"github.com/oasisnourish/storefront/internal/observability/statsd"
	"github.com/oasisnourish/storefront/internal/ports"
	"github.com/oasisnourish/storefront/internal/service"
)

// ServiceContainer holds the wired client: backend adapter, session store, mutations and routes.
type ServiceContainer struct {
	Backend       *backend.Client
	Jar           *cookiejar.Jar
	Session       *service.SessionStore
	Auth          *service.AuthService
	Account       *service.AccountService
	Routes        *guard.Table
	Notifier      ports.Notifier
	Observability ObservabilityContainer

	redis redis.UniversalClient
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
	// Out receives user-facing notices; defaults to os.Stdout.
	Out io.Writer
	// CookieStore overrides the configured cookie persistence (tests).
	CookieStore ports.CookieStore
}

// NewServices wires every component. Redis and StatsD are brought up concurrently.
func NewServices(ctx context.Context, deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return nil, errors.New("service deps with config are required")
	}
	cfg := deps.Config
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		obs         ObservabilityContainer
		cookieStore = deps.CookieStore
		redisClient redis.UniversalClient
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		obs = buildObservability(logger, cfg.Observability)
		return nil
	})
	if cookieStore == nil {
		g.Go(func() error {
			var err error
			cookieStore, redisClient, err = buildCookieStore(gctx, cfg, logger)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		closeMetrics(obs, logger)
		return nil, err
	}

	c := &ServiceContainer{
		Observability: obs,
		Notifier:      buildNotifier(deps.Out, cfg.Observability.Notices, logger),
		Routes:        guard.MustNewTable(guard.DefaultRoutes()),
		redis:         redisClient,
	}
	if err := c.wire(ctx, cfg, cookieStore, logger); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *ServiceContainer) wire(ctx context.Context, cfg *config.AppConfig, store ports.CookieStore, logger *slog.Logger) error {
	sink := c.metricsSink()

	jar, err := cookiejar.New(ctx, cookiejar.Options{
		BaseURL: cfg.Backend.BaseURL,
		Store:   store,
		Key:     cfg.Session.CookieKey,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("build cookie jar: %w", err)
	}
	c.Jar = jar

	httpClient := newHTTPClient(cfg.Backend.Timeout, jar)
	if c.Backend, err = backend.NewClient(backend.Config{
		BaseURL:   cfg.Backend.BaseURL,
		TitleExpr: cfg.Backend.ErrorTitleExpr,
		UserAgent: cfg.Backend.UserAgent,
		Client:    httpClient,
		Logger:    logger,
	}); err != nil {
		return fmt.Errorf("build backend client: %w", err)
	}

	if c.Session, err = service.NewSessionStore(service.SessionStoreOptions{
		API:              c.Backend,
		Logger:           logger,
		Metrics:          sink,
		StaleAfter:       cfg.Session.StaleAfter,
		TransportRetries: cfg.Session.TransportRetries,
		RetryBackoff:     cfg.Session.RetryBackoff,
	}); err != nil {
		return fmt.Errorf("build session store: %w", err)
	}

	if c.Auth, err = service.NewAuthService(service.AuthServiceOptions{
		API:         c.Backend,
		Session:     c.Session,
		Credentials: c.Jar,
		Notifier:    c.Notifier,
		Logger:      logger,
		Metrics:     sink,
	}); err != nil {
		return fmt.Errorf("build auth service: %w", err)
	}

	if c.Account, err = service.NewAccountService(service.AccountServiceOptions{
		API:      c.Backend,
		Session:  c.Session,
		Notifier: c.Notifier,
		Logger:   logger,
		Metrics:  sink,
	}); err != nil {
		return fmt.Errorf("build account service: %w", err)
	}
	return nil
}

// metricsSink avoids handing a typed-nil *statsd.Client to consumers of statsd.Sink.
//
//nolint:ireturn // callers only need the Sink behaviour.
func (c *ServiceContainer) metricsSink() statsd.Sink {
	if c.Observability.MetricsSink == nil {
		return nil
	}
	return c.Observability.MetricsSink
}

// Close releases network resources held by the container.
func (c *ServiceContainer) Close() error {
	var errs []error
	if c.Observability.MetricsSink != nil {
		if err := c.Observability.MetricsSink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close statsd client: %w", err))
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis client: %w", err))
		}
	}
	return errors.Join(errs...)
}

func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obs := ObservabilityContainer{MetricsConfig: cfg.Metrics}
	if !cfg.Metrics.IsEnabled() {
		return obs
	}

	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.Metrics.StatsdAddress,
		Prefix:  cfg.Metrics.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return obs
	}
	obs.MetricsSink = client
	return obs
}

func closeMetrics(obs ObservabilityContainer, logger *slog.Logger) {
	if obs.MetricsSink == nil {
		return
	}
	if err := obs.MetricsSink.Close(); err != nil {
		logger.Warn("close statsd client", "error", err)
	}
}

//nolint:ireturn // the store implementation depends on configuration.
func buildCookieStore(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (ports.CookieStore, redis.UniversalClient, error) {
	if !cfg.UsesRedis() {
		return cookiejar.NewMemoryStore(), nil, nil
	}

	client, err := ConnectRedis(ctx, RedisOptions{Config: cfg.Redis, Logger: logger})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis cookie store: %w", err)
	}
	store := redisadapter.NewCookieStore(client, redisadapter.CookieStoreOptions{
		Prefix:     cfg.Redis.KeyPrefix,
		SessionTTL: cfg.Session.CookieTTL,
	})
	return store, client, nil
}

//nolint:ireturn // fan-out is only built when notices are mirrored to the log.
func buildNotifier(out io.Writer, cfg config.ObservabilityNoticesConfig, logger *slog.Logger) ports.Notifier {
	if out == nil {
		out = os.Stdout
	}
	terminal := console.NewNotifier(out)
	if !cfg.Log {
		return terminal
	}
	return notify.Multi{terminal, notify.LogNotifier{Logger: logger}}
}
