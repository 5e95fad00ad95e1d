package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tallyworks/tally/internal/application/usecase"
	infrapostgres "github.com/tallyworks/tally/internal/infrastructure/postgres"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run ledger reports",
	}
	cmd.AddCommand(newTrialBalanceCommand())
	return cmd
}

func newTrialBalanceCommand() *cobra.Command {
	var (
		tenant string
		period string
	)

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print a period's trial balance",
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

			accounts := infrapostgres.NewAccountRepo(d.pool)
			periods := infrapostgres.NewPeriodRepo(d.pool)
			engine := usecase.NewBalanceEngine(infrapostgres.NewLedgerReader(d.pool))

			report, err := usecase.NewTrialBalance(accounts, periods, engine).
				Execute(cmd.Context(), tenantID, periodID)
			if err != nil {
				return err
			}

			fmt.Printf("%s  (%s to %s)\n", report.PeriodName,
				report.StartDate.Format(flagDateLayout), report.EndDate.Format(flagDateLayout))

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "CODE\tNAME\tOPENING\tDEBIT\tCREDIT\tCLOSING\t")
			for _, r := range report.Rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
					r.Code, r.Name, r.OpeningBalance, r.DebitMovement, r.CreditMovement, r.ClosingBalance)
			}
			fmt.Fprintf(w, "\tTOTAL\t\t%s\t%s\t\t\n", report.TotalDebit, report.TotalCredit)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant ID (required)")
	cmd.Flags().StringVar(&period, "period", "", "period ID (required)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("period")
	return cmd
}
