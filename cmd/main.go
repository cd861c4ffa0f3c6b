package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"

	"reserve-backend/cmd/config"
	migration "reserve-backend/cmd/database/migrate"
	"reserve-backend/cmd/database/seed"
	"reserve-backend/internal/utils"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reserve",
		Short:         "ReServe food donation backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newSeedCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			if migrate {
				if err := migration.Migrate(db); err != nil {
					return err
				}
			}

			app, err := config.NewApp(db)
			if err != nil {
				return err
			}

			addr := fmt.Sprintf(":%s", utils.GetConfig("PORT"))
			log.Infof("listening on %s", addr)
			return app.Listen(addr)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "run migrations before serving")
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			return migration.Migrate(db)
		},
	}
}

func newSeedCommand() *cobra.Command {
	opts := seed.Options{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the admin account and sample recipients",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.AdminPassword) < 8 {
				return fmt.Errorf("admin password must have at least 8 characters")
			}

			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			return seed.Seed(db, opts)
		},
	}

	cmd.Flags().StringVar(&opts.AdminEmail, "admin-email", "admin@reserve.local", "admin login email")
	cmd.Flags().StringVar(&opts.AdminPassword, "admin-password", "", "admin login password")
	return cmd
}
