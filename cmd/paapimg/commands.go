package main

import (
	"fmt"

	"github.com/augcode13-glitch/paapimg/internal/app"
	"github.com/augcode13-glitch/paapimg/internal/config"
	"github.com/augcode13-glitch/paapimg/internal/database/postgres"
	"github.com/augcode13-glitch/paapimg/internal/di"
	"github.com/urfave/cli/v2"
)

func rootApp() *cli.App {
	return &cli.App{
		Name:  "paapimg",
		Usage: "Pexels photo gallery backend",
		Description: `Serves the photo feed API, keeps the curated image cache filled
		and stores user favorites.

		Configuration is read from the environment (and .env when present), e.g.:

		DATABASE_URL, PEXELS_API_KEY, JWT_SECRET, RABBITMQ_URL, MINIO_ENDPOINT
		`,
		Commands: []*cli.Command{
			serveCmd(),
			modeCmd(app.ModeWorker, "Consume cache refill requests from RabbitMQ"),
			modeCmd(app.ModeScheduler, "Publish a cache refill request every REFILL_INTERVAL"),
			modeCmd(app.ModeRefill, "Run one cache refill and exit"),
			migrateCmd(),
			rollbackCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// без команды показываем справку
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{app.ModeServer},
		Usage:   "Start the HTTP API",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "migrate",
				Usage:   "Apply database migrations before starting",
				EnvVars: []string{"AUTO_MIGRATE"},
				Value:   true,
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger := di.NewLogger(cfg)

			if ctx.Bool("migrate") {
				if err := postgres.ApplyMigrations(cfg.DatabaseURL, logger); err != nil {
					return err
				}
			}

			application, err := di.BuildApp(ctx.Context, cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to build app: %w", err)
			}
			return application.Run(ctx.Context, app.ModeServer)
		},
	}
}

func modeCmd(mode, usage string) *cli.Command {
	return &cli.Command{
		Name:  mode,
		Usage: usage,
		Action: func(ctx *cli.Context) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger := di.NewLogger(cfg)

			application, err := di.BuildApp(ctx.Context, cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to build app: %w", err)
			}
			return application.Run(ctx.Context, mode)
		},
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:        "migrate",
		Usage:       "Run database migrations",
		Description: `Applies all embedded migrations to DATABASE_URL.`,
		Action: func(ctx *cli.Context) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return postgres.ApplyMigrations(cfg.DatabaseURL, di.NewLogger(cfg))
		},
	}
}

func rollbackCmd() *cli.Command {
	return &cli.Command{
		Name:        "rollback",
		Usage:       "Rollback database migration",
		Description: `Rolls back the last applied migration`,
		Action: func(ctx *cli.Context) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return postgres.RollbackMigration(cfg.DatabaseURL, di.NewLogger(cfg))
		},
	}
}
