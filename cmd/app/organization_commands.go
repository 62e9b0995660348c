package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/crm/cmd/app/commands"
	"github.com/allisson/crm/internal/app"
	"github.com/allisson/crm/internal/config"
)

func getOrganizationCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-organization",
			Usage: "Register an organization",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Display name",
				},
				&cli.StringFlag{
					Name:     "slug",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Unique URL slug (lowercase letters, digits and dashes)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				organizationUseCase, err := container.OrganizationUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateOrganization(
					ctx,
					organizationUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("slug"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "add-member",
			Usage: "Add a registered user to an organization",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "org-id",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Organization ID (UUID)",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Email of the registered user",
				},
				&cli.StringFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Value:   "member",
					Usage:   "Role: admin, owner, sales or member",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				organizationUseCase, err := container.OrganizationUseCase()
				if err != nil {
					return err
				}

				return commands.RunAddMember(
					ctx,
					organizationUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("org-id"),
					cmd.String("email"),
					cmd.String("role"),
					cmd.String("format"),
				)
			},
		},
	}
}
