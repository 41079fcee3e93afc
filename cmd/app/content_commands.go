package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/paywall/cmd/app/commands"
	"github.com/allisson/paywall/internal/app"
	"github.com/allisson/paywall/internal/config"
)

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Value:   "",
		Usage:   "Read content from this file instead of stdin",
	}
}

func getContentCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "encrypt-article",
			Usage: "Encrypt article text and print the payload without storing it",
			Flags: []cli.Flag{
				inputFlag(),
				&cli.StringFlag{
					Name:     "publisher",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Publisher wallet address",
				},
				&cli.Uint64Flag{
					Name:    "article-id",
					Aliases: []string{"a"},
					Value:   0,
					Usage:   "Article id (0 predicts the next id from the ledger)",
				},
				&cli.StringFlag{
					Name:  "license-token-id",
					Value: "",
					Usage: "License token id bound into the key (empty for the unbound id readers use)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				encryptionUseCase, err := container.EncryptionUseCase()
				if err != nil {
					return err
				}

				return commands.RunEncryptArticle(
					ctx,
					encryptionUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("input"),
					cmd.String("publisher"),
					cmd.Uint64("article-id"),
					cmd.String("license-token-id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "decrypt-article",
			Usage: "Decrypt a payload for a reader after checking the reader's access on the ledger",
			Flags: []cli.Flag{
				inputFlag(),
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

				decryptionUseCase, err := container.DecryptionUseCase()
				if err != nil {
					return err
				}

				return commands.RunDecryptArticle(
					ctx,
					accessUseCase,
					decryptionUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("input"),
					cmd.Uint64("article-id"),
					cmd.String("reader"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "estimate-size",
			Usage: "Print the exact encrypted payload size for a plaintext",
			Flags: []cli.Flag{
				inputFlag(),
				&cli.IntFlag{
					Name:    "size",
					Aliases: []string{"s"},
					Value:   0,
					Usage:   "Plaintext size in bytes (reads content when omitted)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				encryptionUseCase, err := container.EncryptionUseCase()
				if err != nil {
					return err
				}

				return commands.RunEstimateSize(
					encryptionUseCase,
					commands.DefaultIO(),
					cmd.String("input"),
					int(cmd.Int("size")),
					cmd.String("format"),
				)
			},
		},
	}
}
