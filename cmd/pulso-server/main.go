// Command pulso-server runs the Pulso feedback platform API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/auth"
	"github.com/pulso-rh/pulso/internal/config"
	"github.com/pulso-rh/pulso/internal/handler"
	"github.com/pulso-rh/pulso/internal/limiter"
	"github.com/pulso-rh/pulso/internal/pkg/password"
	"github.com/pulso-rh/pulso/internal/repository"
	"github.com/pulso-rh/pulso/internal/repository/postgres"
	"github.com/pulso-rh/pulso/internal/repository/sqlite"
	"github.com/pulso-rh/pulso/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	logger := newLogger(cfg.Logging)
	logger.Info().Str("driver", cfg.Database.Driver).Msg("starting pulso-server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	repos, health, err := openStore(ctx, cfg, logger)
	cancel()
	if err != nil {
		// A missing store is fatal at startup; requests never probe it.
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer health.Close()

	attempts := newAttemptLimiter(cfg, logger)
	defer attempts.Close()

	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	authService := service.NewAuthService(repos.User, repos.Sector, hasher, issuer, attempts, logger)
	sectorService := service.NewSectorService(repos.Sector, repos.User, logger)
	collabService := service.NewCollaboratorService(repos.Collaborator, logger)
	feedbackService := service.NewFeedbackService(repos.Feedback, repos.Sector, repos.Collaborator, logger)
	dashboardService := service.NewDashboardService(repos.User, repos.Feedback, logger)

	router := handler.NewRouter(handler.RouterConfig{
		AuthHandler:         handler.NewAuthHandler(authService, logger),
		SectorHandler:       handler.NewSectorHandler(sectorService, logger),
		CollaboratorHandler: handler.NewCollaboratorHandler(collabService, logger),
		FeedbackHandler:     handler.NewFeedbackHandler(feedbackService, logger),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, logger),
		AuthMiddleware:      auth.Middleware(issuer, repos.User, logger),
		Health:              health,
		MetricsEnabled:      cfg.Metrics.Enabled,
		Logger:              logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = startMetricsServer(cfg.Metrics, logger)
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("API server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	if metricsServer != nil {
		_ = metricsServer.Shutdown(shutdownCtx)
	}

	logger.Info().Msg("shutdown complete")
}

// openStore connects to the configured database, runs migrations and
// returns the repository set.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*repository.Repositories, repository.DatabaseHealth, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		dbCfg := sqlite.DefaultConfig(cfg.Database.Path)
		dbCfg.JournalMode = cfg.Database.JournalMode
		dbCfg.BusyTimeout = cfg.Database.BusyTimeout
		dbCfg.SynchronousMode = cfg.Database.SynchronousMode

		db, err := sqlite.NewDB(ctx, dbCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewRepositories(db), db, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewRepositories(db), db, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// newAttemptLimiter selects the login limiter backend. Redis keeps the
// counter shared across instances; memory covers single-node deployments.
func newAttemptLimiter(cfg *config.Config, logger zerolog.Logger) limiter.AttemptLimiter {
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:        cfg.Redis.Addr(),
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		logger.Info().Str("addr", cfg.Redis.Addr()).Msg("using Redis login limiter")
		return limiter.NewRedis(client, cfg.Login.MaxAttempts, cfg.Login.Window)
	}
	return limiter.NewMemory(cfg.Login.MaxAttempts, cfg.Login.Window)
}

// startMetricsServer serves Prometheus metrics on a dedicated port.
func startMetricsServer(cfg config.MetricsConfig, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: mux,
	}

	go func() {
		logger.Info().Int("port", cfg.Port).Str("path", cfg.Path).Msg("metrics server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()

	return server
}

// newLogger builds the process logger from config.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: cfg.TimeFormat})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}
