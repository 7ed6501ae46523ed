package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/cli"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
	"github.com/SscSPs/ledger_engine/internal/platform/store"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

func main() {
	// Logs go to stderr so stdout stays valid JSON.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	closeStore := func() {}

	env := &cli.Env{
		Ctx:           ctx,
		Out:           os.Stdout,
		CursorMode:    cfg.CursorMode,
		ChartSeedPath: cfg.ChartSeedPath,
		Migrate: func(dir database.Direction) error {
			return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, dir)
		},
		Services: func() (*portssvc.ServiceContainer, error) {
			repos, closeFn, err := store.Open(ctx, cfg, store.Options{})
			if err != nil {
				return nil, err
			}
			closeStore = closeFn

			container := services.NewServiceContainer(cfg, repos, metrics.NewMetrics())
			if cfg.BlueprintsPath != "" {
				templates, err := services.LoadBlueprintTemplates(cfg.BlueprintsPath)
				if err != nil {
					return nil, err
				}
				if err := services.RegisterTemplates(container.Library, templates, cfg.BlueprintPrecision); err != nil {
					return nil, err
				}
			}
			return container, nil
		},
	}

	var cmds cli.Commands
	parser, err := cli.New(&cmds, env)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = kctx.Run()
	closeStore()
	kctx.FatalIfErrorf(err)
}
