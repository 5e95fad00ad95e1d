package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyworks/tally/internal/application/usecase"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

func TestTrialBalance_CompleteAndReconciled(t *testing.T) {
	tenantID := uuid.New()
	period, err := model.NewAccountingPeriod(tenantID, "March 2026",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), 2026)
	require.NoError(t, err)

	assets := model.Account{ID: uuid.New(), TenantID: tenantID, Code: "1000", Name: "Assets",
		Type: valueobject.AccountTypeAsset, IsActive: true}
	cash := model.Account{ID: uuid.New(), TenantID: tenantID, Code: "1010", Name: "Cash",
		Type: valueobject.AccountTypeAsset, ParentID: &assets.ID, IsActive: true}
	sales := model.Account{ID: uuid.New(), TenantID: tenantID, Code: "4000", Name: "Sales",
		Type: valueobject.AccountTypeRevenue, IsActive: true}
	idle := model.Account{ID: uuid.New(), TenantID: tenantID, Code: "6000", Name: "Rent",
		Type: valueobject.AccountTypeExpense, IsActive: true}
	inactive := model.Account{ID: uuid.New(), TenantID: tenantID, Code: "9999", Name: "Suspense",
		Type: valueobject.AccountTypeAsset, IsActive: false}

	accounts := &mockAccountRepository{accounts: []model.Account{assets, cash, sales, idle, inactive}}
	periods := &mockPeriodRepository{periods: []model.AccountingPeriod{period}}
	ledger := &mockLedgerReader{
		sumFunc: func(_ context.Context, _ uuid.UUID, ids []uuid.UUID, r valueobject.DateRange) (map[uuid.UUID]valueobject.Movement, error) {
			if r.From == nil {
				// Opening: cash carried 200 in from February.
				return map[uuid.UUID]valueobject.Movement{cash.ID: {Debit: decimal.NewFromInt(200)}}, nil
			}
			return map[uuid.UUID]valueobject.Movement{
				cash.ID:  {Debit: decimal.NewFromInt(500)},
				sales.ID: {Credit: decimal.NewFromInt(500)},
			}, nil
		},
	}

	uc := usecase.NewTrialBalance(accounts, periods, usecase.NewBalanceEngine(ledger))
	report, err := uc.Execute(context.Background(), tenantID, period.ID)
	require.NoError(t, err)

	assert.Equal(t, period.ID, report.PeriodID)
	// Inactive account excluded, zero-activity accounts included.
	require.Len(t, report.Rows, 4)
	assert.Equal(t, []string{"1000", "1010", "4000", "6000"},
		[]string{report.Rows[0].Code, report.Rows[1].Code, report.Rows[2].Code, report.Rows[3].Code})

	cashRow := report.Rows[1]
	assert.Equal(t, 1, cashRow.HierarchyLevel)
	assert.True(t, cashRow.OpeningBalance.Equal(decimal.NewFromInt(200)))
	assert.True(t, cashRow.DebitMovement.Equal(decimal.NewFromInt(500)))
	assert.True(t, cashRow.ClosingBalance.Equal(decimal.NewFromInt(700)))

	salesRow := report.Rows[2]
	assert.True(t, salesRow.OpeningBalance.IsZero())
	assert.True(t, salesRow.ClosingBalance.Equal(decimal.NewFromInt(500)))

	rentRow := report.Rows[3]
	assert.True(t, rentRow.DebitMovement.IsZero())
	assert.True(t, rentRow.ClosingBalance.IsZero())

	assert.True(t, report.TotalDebit.Equal(report.TotalCredit))
	assert.True(t, report.TotalDebit.Equal(decimal.NewFromInt(500)))
}

func TestTrialBalance_UnknownPeriod(t *testing.T) {
	uc := usecase.NewTrialBalance(&mockAccountRepository{}, &mockPeriodRepository{},
		usecase.NewBalanceEngine(&mockLedgerReader{}))
	_, err := uc.Execute(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
}
