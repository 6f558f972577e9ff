// Command seed replaces the contents of agentes and casos with the demo
// dataset on the database selected by APP_ENV / CI.
//
//	go run ./cmd/seed [-schema] [-force]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Harshitk-cp/casebook/internal/buildconfig"
	"github.com/Harshitk-cp/casebook/internal/config"
	"github.com/Harshitk-cp/casebook/internal/database"
	"github.com/Harshitk-cp/casebook/internal/logging"
	"github.com/Harshitk-cp/casebook/internal/seed"
	"go.uber.org/zap"
)

const productionProfile = "production"

var errProductionRefused = errors.New("refusing to seed the production profile without -force")

type options struct {
	createSchema bool
	force        bool
}

func main() {
	var opts options
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.BoolVar(&opts.createSchema, "schema", false, "create the agentes and casos tables if they are missing")
	flag.BoolVar(&opts.force, "force", false, "allow seeding the production profile")
	flag.Parse()

	if *showVersion {
		fmt.Println(buildconfig.String())
		return
	}

	if err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	logger, err := logging.New(config.LogLevel())
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err = run(ctx, logger, opts)
	stop()
	if err != nil {
		logger.Error("seed failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(ctx context.Context, logger *zap.Logger, opts options) error {
	logger.Info("casebook seed", zap.String("version", buildconfig.String()))

	env, err := config.ReadEnvironment()
	if err != nil {
		return err
	}

	profiles, err := config.LoadProfiles(config.ProfilesPath())
	if err != nil {
		return err
	}

	profile, err := config.Select(env, profiles)
	if err != nil {
		return err
	}
	logger.Info("database profile selected",
		zap.String("profile", profile.Name),
		zap.Bool("ci", env.InCI()),
	)

	if profile.Name == productionProfile && !opts.force {
		return errProductionRefused
	}

	db, err := database.Open(ctx, profile, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}()

	if opts.createSchema {
		if err := database.EnsureSchema(ctx, db); err != nil {
			return err
		}
	}

	res, err := seed.NewRunner(db, logger).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %s: %d agentes, %d casos (run %s)\n",
		res.Profile, res.AgentsInserted, res.CasesInserted, res.RunID)
	return nil
}
