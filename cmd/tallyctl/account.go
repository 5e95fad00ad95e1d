package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tallyworks/tally/internal/application/dto"
	"github.com/tallyworks/tally/internal/application/usecase"
	infrapostgres "github.com/tallyworks/tally/internal/infrastructure/postgres"
)

func newAccountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage a tenant's chart of accounts",
	}
	cmd.AddCommand(newAccountCreateCommand())
	cmd.AddCommand(newAccountListCommand())
	cmd.AddCommand(newAccountDeleteCommand())
	return cmd
}

func newAccountCreateCommand() *cobra.Command {
	var (
		tenant      string
		code        string
		name        string
		accountType string
		parent      string
		sortOrder   int
		taxCategory string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an account to the chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			var parentID *uuid.UUID
			if parent != "" {
				id, err := uuid.Parse(parent)
				if err != nil {
					return fmt.Errorf("invalid --parent: %w", err)
				}
				parentID = &id
			}

			d, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			account, err := usecase.NewManageAccount(infrapostgres.NewAccountRepo(d.pool)).
				Create(cmd.Context(), dto.CreateAccountRequest{
					TenantID:    tenantID,
					Code:        code,
					Name:        name,
					Type:        accountType,
					ParentID:    parentID,
					SortOrder:   sortOrder,
					TaxCategory: taxCategory,
				})
			if err != nil {
				return err
			}

			fmt.Printf("created account %s (%s %s)\n", account.ID, account.Code, account.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant ID (required)")
	cmd.Flags().StringVar(&code, "code", "", "account code (required)")
	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	cmd.Flags().StringVar(&accountType, "type", "", "asset, liability, equity, revenue or expense (required)")
	cmd.Flags().StringVar(&parent, "parent", "", "parent account ID")
	cmd.Flags().IntVar(&sortOrder, "sort-order", 0, "display sort order")
	cmd.Flags().StringVar(&taxCategory, "tax-category", "", "tax category label")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newAccountListCommand() *cobra.Command {
	var tenant string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tenant's chart of accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}

			d, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			accounts, err := usecase.NewManageAccount(infrapostgres.NewAccountRepo(d.pool)).
				List(cmd.Context(), tenantID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCODE\tNAME\tTYPE\tACTIVE")
			for _, a := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", a.ID, a.Code, a.Name, a.Type, a.IsActive)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant ID (required)")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}

func newAccountDeleteCommand() *cobra.Command {
	var (
		tenant  string
		account string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an unreferenced account",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			accountID, err := uuid.Parse(account)
			if err != nil {
				return fmt.Errorf("invalid --account: %w", err)
			}

			d, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			if err := usecase.NewManageAccount(infrapostgres.NewAccountRepo(d.pool)).
				Delete(cmd.Context(), tenantID, accountID); err != nil {
				return err
			}

			fmt.Printf("deleted account %s\n", accountID)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant ID (required)")
	cmd.Flags().StringVar(&account, "account", "", "account ID (required)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}
