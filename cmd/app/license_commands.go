package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/paywall/cmd/app/commands"
	"github.com/allisson/paywall/internal/app"
	"github.com/allisson/paywall/internal/config"
)

func getLicenseCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "access-details",
			Usage: "Show how a reader can access an article",
			Flags: []cli.Flag{
				&cli.Uint64Flag{
					Name:     "article-id",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Article id",
				},
				&cli.StringFlag{
					Name:     "reader",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Reader wallet address",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accessUseCase, err := container.AccessUseCase()
				if err != nil {
					return err
				}

				return commands.RunAccessDetails(
					ctx,
					accessUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Uint64("article-id"),
					cmd.String("reader"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "purchase-license",
			Usage: "Buy and burn a license so the reader can open the article",
			Flags: []cli.Flag{
				&cli.Uint64Flag{
					Name:     "article-id",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Article id",
				},
				&cli.StringFlag{
					Name:     "reader",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Reader wallet address",
				},
				&cli.StringFlag{
					Name:  "seller",
					Value: "",
					Usage: "License holder to buy from (defaults to the first holder that is not the reader)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accessUseCase, err := container.AccessUseCase()
				if err != nil {
					return err
				}

				return commands.RunPurchaseLicense(
					ctx,
					accessUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Uint64("article-id"),
					cmd.String("reader"),
					cmd.String("seller"),
					cmd.String("format"),
				)
			},
		},
	}
}
