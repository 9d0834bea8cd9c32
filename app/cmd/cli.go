package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spiceroute/backoffice/app/configs"
	"github.com/spiceroute/backoffice/app/db/seeders"
	"github.com/spiceroute/backoffice/app/helpers"
	"github.com/spiceroute/backoffice/app/models"
	"github.com/spiceroute/backoffice/app/models/migrations"
	"github.com/spiceroute/backoffice/app/repositories"
	"github.com/urfave/cli/v3"
)

func RunCli(env configs.ENV) {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Fill the database with demo catalog data",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := seeders.DBSeed(db); err != nil {
						return err
					}
					log.Println("Seeding complete")
					return nil
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create an admin user for the back office",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Value: "Admin"},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}

					userRepo := repositories.NewUserRepository(db)

					email := c.String("email")
					existing, err := userRepo.FindByEmail(ctx, email)
					if err != nil {
						return err
					}
					if existing != nil {
						return fmt.Errorf("user with email %s already exists", email)
					}

					user := models.User{
						Name:     c.String("name"),
						Email:    email,
						Password: helpers.HashPassword(c.String("password")),
						Role:     models.RoleAdmin,
					}
					if err := userRepo.Create(ctx, &user); err != nil {
						return err
					}

					log.Printf("Admin user %s created", email)
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateAndPrintSessionKeys()
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
