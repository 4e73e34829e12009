// Package main is the entrypoint for the flight plan API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/flightplan/flightplan/internal/api"
	"github.com/flightplan/flightplan/internal/config"
	"github.com/flightplan/flightplan/internal/handler"
	"github.com/flightplan/flightplan/internal/repository"
	"github.com/flightplan/flightplan/internal/server"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize connection pool. It is constructed once here and
	// injected everywhere; no package-level singleton.
	pool, err := repository.NewPool(ctx, repository.PoolConfig{
		ConnectString:  cfg.DatabaseURL,
		AppName:        cfg.AppName,
		MaxConns:       cfg.MaxConns,
		MinConns:       cfg.MinConns,
		AcquireTimeout: cfg.AcquireTimeout,
		TestOnCheckout: cfg.TestOnCheckout,
		Logger:         logger,
	})
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}

	repo := repository.New(pool)
	defer repo.Close()

	stat := pool.Stat()
	logger.Info("connected to database",
		slog.Int("max_conns", int(stat.MaxConns())),
		slog.Int("total_conns", int(stat.TotalConns())),
	)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo)
	userHandler := handler.NewUserHandler(logger, repo)
	flightPlanHandler := handler.NewFlightPlanHandler(logger, repo)

	// Setup router
	r := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		Base:               h,
		Health:             healthHandler,
		Users:              userHandler,
		FlightPlans:        flightPlanHandler,
		Resolver:           repo,
		CORSAllowedOrigins: cfg.GetCORSAllowedOrigins(),
		BootstrapRateLimit: cfg.BootstrapRateLimit,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		server.TLSConfig{CertFile: cfg.TLSCertFile, KeyFile: cfg.TLSKeyFile},
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"app_name", cfg.AppName,
		"tls", cfg.TLSEnabled(),
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
