package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tallyworks/tally/internal/infrastructure/config"
	pkgpostgres "github.com/tallyworks/tally/pkg/postgres"
)

func newMigrateCommand() *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply (or roll back) the ledger schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg := config.Load()

			dir := "file://" + cfg.MigrationsPath
			if down {
				return pkgpostgres.RunMigrationsDown(cfg.Database.DSN(), dir)
			}
			return pkgpostgres.RunMigrations(cfg.Database.DSN(), dir)
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back all migrations")
	return cmd
}
