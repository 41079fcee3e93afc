package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/paywall/cmd/app/commands"
	"github.com/allisson/paywall/internal/app"
	"github.com/allisson/paywall/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Migrate the article content store (all pending by default)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "dir",
					Value: "migrations",
					Usage: "Directory holding the postgresql and mysql migration sets",
				},
				&cli.IntFlag{
					Name:  "steps",
					Value: 0,
					Usage: "Number of migrations to apply, negative to roll back",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(
					container.Logger(),
					cfg.DBDriver,
					cfg.DBConnectionString,
					cmd.String("dir"),
					int(cmd.Int("steps")),
				)
			},
		},
		{
			Name:  "hash-api-key",
			Usage: "Hash a publisher API key for PUBLISHER_API_KEY_HASH (generates one when --key is omitted)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "key",
					Aliases: []string{"k"},
					Value:   "",
					Usage:   "Existing plain API key to hash",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunHashAPIKey(
					container.APIKeyService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("key"),
					cmd.String("format"),
				)
			},
		},
	}
}
