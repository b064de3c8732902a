package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/phiguard/cmd/app/commands"
	"github.com/allisson/phiguard/internal/app"
	"github.com/allisson/phiguard/internal/config"
	cryptoService "github.com/allisson/phiguard/internal/crypto/service"
	"github.com/allisson/phiguard/internal/gate"
)

func getEngineCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-secret",
			Usage: "Generate a new master secret for envelope encryption",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "kms-key-uri",
					Aliases: []string{"k"},
					Value:   "",
					Usage:   "KMS key URI to wrap the secret with (e.g., gcpkms://..., hashivault://...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateMasterSecret(
					ctx,
					cryptoService.NewKMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kms-key-uri"),
				)
			},
		},
		{
			Name:  "scan-text",
			Usage: "Classify text for sensitive identifiers without persisting anything",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "text",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Text to classify",
				},
				&cli.BoolFlag{
					Name:    "redact",
					Aliases: []string{"r"},
					Value:   false,
					Usage:   "Print the redacted text instead of the verdict",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunScanText(
					commands.DefaultIO().Writer,
					container.Scanner(),
					cmd.String("text"),
					cmd.Bool("redact"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:      "erase-files",
			Usage:     "Securely destroy one or more files, recording each attempt",
			ArgsUsage: "<path> [<path>...]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "actor",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Actor identity recorded on the deletion records",
				},
				&cli.StringFlag{
					Name:     "org",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Organization the deletion records belong to",
				},
				&cli.StringFlag{
					Name:     "justification",
					Aliases:  []string{"j"},
					Required: true,
					Usage:    "Business justification recorded with the erasure",
				},
				&cli.StringFlag{
					Name:    "method",
					Aliases: []string{"m"},
					Value:   "",
					Usage:   "Erasure method: overwrite3, overwrite7, dod5220 or crypto_erase (defaults to ERASURE_METHOD)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.ErasureUseCase()
				if err != nil {
					return err
				}

				method := cmd.String("method")
				if method == "" {
					method = cfg.ErasureMethod
				}

				actor := gate.Actor{
					ID:             cmd.String("actor"),
					OrganizationID: cmd.String("org"),
				}

				return commands.RunEraseFiles(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					actor,
					cmd.Args().Slice(),
					method,
					cmd.String("justification"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verify-audit-events",
			Usage: "Verify the tamper-evidence signatures of the audit trail",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "start-date",
					Aliases: []string{"s"},
					Value:   "",
					Usage:   "Start of the range (YYYY-MM-DD or YYYY-MM-DD HH:MM:SS, empty for open)",
				},
				&cli.StringFlag{
					Name:    "end-date",
					Aliases: []string{"e"},
					Value:   "",
					Usage:   "End of the range (YYYY-MM-DD or YYYY-MM-DD HH:MM:SS, empty for open)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.AuditUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyAuditEvents(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("start-date"),
					cmd.String("end-date"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "compliance-status",
			Usage: "Report the aggregated compliance posture for an organization",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "org",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Organization to report on",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.ComplianceUseCase()
				if err != nil {
					return err
				}

				return commands.RunComplianceStatus(
					ctx,
					useCase,
					commands.DefaultIO().Writer,
					cmd.String("org"),
					cmd.String("format"),
				)
			},
		},
	}
}
