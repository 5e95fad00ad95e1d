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

func TestBalanceEngine_MovementsZeroFillsInactiveAccounts(t *testing.T) {
	tenantID := uuid.New()
	cash := model.Account{ID: uuid.New(), Code: "1000", Type: valueobject.AccountTypeAsset}
	idle := model.Account{ID: uuid.New(), Code: "1100", Type: valueobject.AccountTypeAsset}

	ledger := &mockLedgerReader{movements: map[uuid.UUID]valueobject.Movement{
		cash.ID: {Debit: decimal.NewFromInt(300), Credit: decimal.NewFromInt(100)},
	}}
	engine := usecase.NewBalanceEngine(ledger)

	out, err := engine.Movements(context.Background(), tenantID, []model.Account{cash, idle}, valueobject.DateRange{})
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.True(t, out[cash.ID].Debit.Equal(decimal.NewFromInt(300)))
	assert.True(t, out[idle.ID].IsZero())
}

func TestBalanceEngine_SignedBalancesByAccountType(t *testing.T) {
	tenantID := uuid.New()
	cash := model.Account{ID: uuid.New(), Code: "1000", Type: valueobject.AccountTypeAsset}
	loan := model.Account{ID: uuid.New(), Code: "2000", Type: valueobject.AccountTypeLiability}

	ledger := &mockLedgerReader{movements: map[uuid.UUID]valueobject.Movement{
		cash.ID: {Debit: decimal.NewFromInt(500), Credit: decimal.NewFromInt(200)},
		loan.ID: {Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(400)},
	}}
	engine := usecase.NewBalanceEngine(ledger)

	balances, err := engine.BalancesAsOf(context.Background(), tenantID,
		[]model.Account{cash, loan}, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Debit-normal: debit - credit; credit-normal: credit - debit.
	assert.True(t, balances[cash.ID].Equal(decimal.NewFromInt(300)))
	assert.True(t, balances[loan.ID].Equal(decimal.NewFromInt(300)))
}

func TestBalanceEngine_OpeningExcludesRangeStart(t *testing.T) {
	tenantID := uuid.New()
	cash := model.Account{ID: uuid.New(), Code: "1000", Type: valueobject.AccountTypeAsset}
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	var capturedTo time.Time
	ledger := &mockLedgerReader{
		sumFunc: func(_ context.Context, _ uuid.UUID, _ []uuid.UUID, r valueobject.DateRange) (map[uuid.UUID]valueobject.Movement, error) {
			require.Nil(t, r.From)
			require.NotNil(t, r.To)
			capturedTo = *r.To
			return nil, nil
		},
	}
	engine := usecase.NewBalanceEngine(ledger)

	_, err := engine.OpeningBalances(context.Background(), tenantID, []model.Account{cash}, start)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), capturedTo)
}

func TestBalanceEngine_ClosingIsOpeningPlusMovement(t *testing.T) {
	tenantID := uuid.New()
	cash := model.Account{ID: uuid.New(), Code: "1000", Type: valueobject.AccountTypeAsset}
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	ledger := &mockLedgerReader{
		sumFunc: func(_ context.Context, _ uuid.UUID, ids []uuid.UUID, r valueobject.DateRange) (map[uuid.UUID]valueobject.Movement, error) {
			if r.From == nil {
				// Opening query: everything before March.
				return map[uuid.UUID]valueobject.Movement{ids[0]: {Debit: decimal.NewFromInt(1000)}}, nil
			}
			return map[uuid.UUID]valueobject.Movement{ids[0]: {Debit: decimal.NewFromInt(250), Credit: decimal.NewFromInt(50)}}, nil
		},
	}
	engine := usecase.NewBalanceEngine(ledger)

	r, err := valueobject.NewDateRange(from, to)
	require.NoError(t, err)
	closing, err := engine.ClosingBalances(context.Background(), tenantID, []model.Account{cash}, r)
	require.NoError(t, err)
	assert.True(t, closing[cash.ID].Equal(decimal.NewFromInt(1200)))
}

func TestBalanceEngine_ClosingRequiresBoundedRange(t *testing.T) {
	engine := usecase.NewBalanceEngine(&mockLedgerReader{})
	_, err := engine.ClosingBalances(context.Background(), uuid.New(), nil, valueobject.DateRange{})
	require.Error(t, err)
}
