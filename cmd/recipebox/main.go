package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/recipebox/internal/buildinfo"
	"github.com/dmitrijs2005/recipebox/internal/client/cli"
	"github.com/dmitrijs2005/recipebox/internal/client/client"
	"github.com/dmitrijs2005/recipebox/internal/client/config"
	"github.com/dmitrijs2005/recipebox/internal/client/services"
	"github.com/dmitrijs2005/recipebox/internal/client/session"
	"github.com/dmitrijs2005/recipebox/internal/filex"
	"github.com/dmitrijs2005/recipebox/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.NewConsole(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "recipebox stopped", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

// loadConfig turns the config loader's panic on invalid input into an error.
func loadConfig() (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("config: %v", r)
		}
	}()
	return config.LoadConfig(), nil
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return err
	}
	cfg.DataDir = dir

	db, err := client.InitDatabase(ctx, cfg.DatabasePath()+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return err
	}
	defer db.Close()

	store := session.NewStore(db, logger.With("component", "session"))
	if cfg.WatchSession {
		go func() {
			if err := store.Watch(ctx, cfg.DatabasePath()); err != nil {
				logger.Warn(ctx, "session watcher stopped", "error", err)
			}
		}()
	}

	api, err := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, store, logger.With("component", "api"))
	if err != nil {
		return err
	}

	app := cli.NewApp(cli.Deps{
		Auth:    services.NewAuthService(api, store),
		Recipes: services.NewRecipeService(api),
		Users:   services.NewUserService(api),
		Session: store,
		Logger:  logger,
	})
	return app.Run(ctx)
}
