package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/oasisnourish/storefront/config"
	"github.com/oasisnourish/storefront/internal/bootstrap"
	"github.com/oasisnourish/storefront/internal/shell"
)

type options struct {
	StartPath string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status on bad flags
	}

	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil {
		slog.Default().ErrorContext(ctx, "fatal error", "error", err)
		stop()
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var opts options
	fs.StringVar(&opts.StartPath, "open", "/", "screen to open on start")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger := bootstrap.InitLogger(cfg)
	logStartupInfo(ctx, logger, &cfg)

	services, err := bootstrap.NewServices(ctx, &bootstrap.ServiceDeps{
		Config: &cfg,
		Logger: logger,
		Out:    out,
	})
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	defer func() {
		if cerr := services.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close services failed", "error", cerr)
		}
	}()

	sh, err := shell.New(shell.Options{
		Session:   services.Session,
		Auth:      services.Auth,
		Account:   services.Account,
		Routes:    services.Routes,
		Out:       out,
		Logger:    logger,
		StartPath: opts.StartPath,
	})
	if err != nil {
		return fmt.Errorf("init shell: %w", err)
	}
	return sh.Run(ctx, in)
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting storefront shell",
		"backend", cfg.Backend.BaseURL,
		"cookie_store", string(cfg.Session.CookieStore),
		"metrics_enabled", cfg.Observability.Metrics.IsEnabled(),
		"dev", cfg.IsDev,
	)
}
