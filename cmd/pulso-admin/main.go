// Command pulso-admin performs administrative operations against the
// database directly, without going through the HTTP API.
//
// Usage:
//
//	pulso-admin [-config path] sector-create -name NAME [-description TEXT]
//	pulso-admin [-config path] sector-list
//	pulso-admin [-config path] user-create -name NAME -email EMAIL -password PASS -sector ID
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/auth"
	"github.com/pulso-rh/pulso/internal/config"
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

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	command := flag.Arg(0)
	args := flag.Args()[1:]

	cfg := config.MustLoad(*configPath)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer closeStore()

	switch command {
	case "sector-create":
		sectorCreate(ctx, cfg, repos, logger, args)
	case "sector-list":
		sectorList(ctx, cfg, repos, logger)
	case "user-create":
		userCreate(ctx, cfg, repos, logger, args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: pulso-admin [-config path] <command>

commands:
  sector-create -name NAME [-description TEXT]
  sector-list
  user-create -name NAME -email EMAIL -password PASS -sector ID`)
}

func sectorCreate(ctx context.Context, cfg *config.Config, repos *repository.Repositories, logger zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("sector-create", flag.ExitOnError)
	name := fs.String("name", "", "sector name")
	description := fs.String("description", "", "sector description")
	_ = fs.Parse(args)

	svc := service.NewSectorService(repos.Sector, repos.User, logger)

	input := service.CreateSectorInput{Name: *name}
	if *description != "" {
		input.Description = description
	}

	sector, err := svc.Create(ctx, input)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create sector")
	}

	fmt.Printf("created sector %d: %s\n", sector.ID, sector.Name)
}

func sectorList(ctx context.Context, cfg *config.Config, repos *repository.Repositories, logger zerolog.Logger) {
	svc := service.NewSectorService(repos.Sector, repos.User, logger)

	sectors, err := svc.List(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to list sectors")
	}

	for _, s := range sectors {
		desc := ""
		if s.Description != nil {
			desc = *s.Description
		}
		fmt.Printf("%d\t%s\t%s\n", s.ID, s.Name, desc)
	}
}

func userCreate(ctx context.Context, cfg *config.Config, repos *repository.Repositories, logger zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("user-create", flag.ExitOnError)
	name := fs.String("name", "", "user name")
	email := fs.String("email", "", "user email")
	pass := fs.String("password", "", "user password")
	sectorID := fs.Int64("sector", 0, "sector ID")
	_ = fs.Parse(args)

	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	svc := service.NewAuthService(repos.User, repos.Sector, hasher, issuer, limiter.NewNoop(), logger)

	out, err := svc.Register(ctx, service.RegisterInput{
		Name:     *name,
		Email:    *email,
		Password: *pass,
		SectorID: *sectorID,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user")
	}

	fmt.Printf("created user %d: %s\n", out.User.ID, out.User.Email)
}

// openStore connects to the configured database and runs migrations.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*repository.Repositories, func() error, error) {
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
		return sqlite.NewRepositories(db), db.Close, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewRepositories(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}
