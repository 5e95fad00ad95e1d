package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tallyworks/tally/internal/application/dto"
	"github.com/tallyworks/tally/internal/application/usecase"
	infrapostgres "github.com/tallyworks/tally/internal/infrastructure/postgres"
)

const flagDateLayout = "2006-01-02"

func newPeriodCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Manage accounting periods",
	}
	cmd.AddCommand(newPeriodCreateCommand())
	cmd.AddCommand(newPeriodDeleteCommand())
	cmd.AddCommand(newPeriodCloseCommand())
	cmd.AddCommand(newPeriodLockCommand())
	return cmd
}

func newPeriodCreateCommand() *cobra.Command {
	var (
		tenant     string
		name       string
		start      string
		end        string
		fiscalYear int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an open posting window",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			startDate, err := time.Parse(flagDateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			endDate, err := time.Parse(flagDateLayout, end)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}

			d, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			period, err := usecase.NewManagePeriod(infrapostgres.NewPeriodRepo(d.pool)).
				Create(cmd.Context(), dto.CreatePeriodRequest{
					TenantID:   tenantID,
					Name:       name,
					StartDate:  startDate,
					EndDate:    endDate,
					FiscalYear: fiscalYear,
				})
			if err != nil {
				return err
			}

			fmt.Printf("created period %s (%s)\n", period.ID, period.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "period name (required)")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&fiscalYear, "fiscal-year", 0, "fiscal year")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newPeriodDeleteCommand() *cobra.Command {
	var (
		tenant string
		period string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a period no journal posts into",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			periodID, err := uuid.Parse(period)
			if err != nil {
				return fmt.Errorf("invalid --period: %w", err)
			}

			d, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			if err := usecase.NewManagePeriod(infrapostgres.NewPeriodRepo(d.pool)).
				Delete(cmd.Context(), tenantID, periodID); err != nil {
				return err
			}

			fmt.Printf("deleted period %s\n", periodID)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant ID (required)")
	cmd.Flags().StringVar(&period, "period", "", "period ID (required)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("period")
	return cmd
}

func newPeriodCloseCommand() *cobra.Command {
	var (
		tenant      string
		period      string
		closingDate string
	)

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close a period, synthesizing its closing entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			periodID, err := uuid.Parse(period)
			if err != nil {
				return fmt.Errorf("invalid --period: %w", err)
			}
			var closing time.Time
			if closingDate != "" {
				closing, err = time.Parse(flagDateLayout, closingDate)
				if err != nil {
					return fmt.Errorf("invalid --closing-date: %w", err)
				}
			}

			d, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			accounts := infrapostgres.NewAccountRepo(d.pool)
			periods := infrapostgres.NewPeriodRepo(d.pool)
			journals := infrapostgres.NewJournalRepo(d.pool)
			engine := usecase.NewBalanceEngine(infrapostgres.NewLedgerReader(d.pool))

			result, err := usecase.NewClosePeriod(accounts, periods, journals, engine, d.publisher, d.logger).
				Execute(cmd.Context(), dto.ClosePeriodRequest{
					TenantID:    tenantID,
					PeriodID:    periodID,
					ClosingDate: closing,
				})
			if err != nil {
				return err
			}

			if result.ClosingJournalID != nil {
				fmt.Printf("closed period %s: closing journal %s, net profit %s\n",
					result.PeriodID, result.ClosingJournalID, result.NetProfit)
			} else {
				fmt.Printf("closed period %s: no closing journal needed\n", result.PeriodID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant ID (required)")
	cmd.Flags().StringVar(&period, "period", "", "period ID (required)")
	cmd.Flags().StringVar(&closingDate, "closing-date", "", "closing journal date, defaults to the period end")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("period")
	return cmd
}

func newPeriodLockCommand() *cobra.Command {
	var (
		tenant string
		period string
	)

	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Lock a closed period against deletions",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			periodID, err := uuid.Parse(period)
			if err != nil {
				return fmt.Errorf("invalid --period: %w", err)
			}

			d, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			if err := usecase.NewLockPeriod(infrapostgres.NewPeriodRepo(d.pool), d.publisher, d.logger).
				Execute(cmd.Context(), tenantID, periodID); err != nil {
				return err
			}

			fmt.Printf("locked period %s\n", periodID)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant ID (required)")
	cmd.Flags().StringVar(&period, "period", "", "period ID (required)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("period")
	return cmd
}
