// Command pulso-migrate manages the database schema.
//
// Usage:
//
//	pulso-migrate [-config path] status
//	pulso-migrate [-config path] up
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/config"
	"github.com/pulso-rh/pulso/internal/repository/postgres"
	"github.com/pulso-rh/pulso/internal/repository/sqlite"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pulso-migrate [-config path] status|up")
		os.Exit(2)
	}
	command := flag.Arg(0)

	cfg := config.MustLoad(*configPath)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.Database.Driver {
	case "sqlite":
		runSQLite(ctx, cfg, logger, command)
	case "postgres":
		runPostgres(ctx, cfg, logger, command)
	default:
		logger.Fatal().Str("driver", cfg.Database.Driver).Msg("unsupported database driver")
	}
}

func runSQLite(ctx context.Context, cfg *config.Config, logger zerolog.Logger, command string) {
	dbCfg := sqlite.DefaultConfig(cfg.Database.Path)
	dbCfg.JournalMode = cfg.Database.JournalMode
	dbCfg.BusyTimeout = cfg.Database.BusyTimeout
	dbCfg.SynchronousMode = cfg.Database.SynchronousMode

	db, err := sqlite.NewDB(ctx, dbCfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	switch command {
	case "status":
		version, err := db.SchemaVersion(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to read schema version")
		}
		fmt.Printf("schema version: %d\n", version)
	case "up":
		if err := db.Migrate(ctx); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
		fmt.Println("migrations applied")
	default:
		logger.Fatal().Str("command", command).Msg("unknown command")
	}
}

func runPostgres(ctx context.Context, cfg *config.Config, logger zerolog.Logger, command string) {
	db, err := postgres.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	switch command {
	case "status":
		if err := db.Ping(ctx); err != nil {
			logger.Fatal().Err(err).Msg("database unreachable")
		}
		fmt.Println("database reachable")
	case "up":
		if err := db.Migrate(ctx); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
		fmt.Println("migrations applied")
	default:
		logger.Fatal().Str("command", command).Msg("unknown command")
	}
}
