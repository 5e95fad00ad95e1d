package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tallyworks/tally/internal/application/usecase"
	infrapostgres "github.com/tallyworks/tally/internal/infrastructure/postgres"
)

func newChartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Bootstrap a tenant's chart of accounts",
	}
	cmd.AddCommand(newChartImportCommand())
	return cmd
}

func newChartImportCommand() *cobra.Command {
	var (
		tenant string
		file   string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a YAML chart template into an empty chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			templateYAML, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read template: %w", err)
			}

			d, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			accounts, err := usecase.NewImportChart(
				infrapostgres.NewAccountRepo(d.pool), d.publisher, d.logger).
				Execute(cmd.Context(), tenantID, templateYAML)
			if err != nil {
				return err
			}

			fmt.Printf("imported %d accounts for tenant %s\n", len(accounts), tenantID)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant ID (required)")
	cmd.Flags().StringVar(&file, "file", "", "chart template YAML file (required)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
