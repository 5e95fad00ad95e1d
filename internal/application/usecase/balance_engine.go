package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

// BalanceEngine derives account balances from raw posting history. Every
// report and the period-close procedure read through it; it never mutates
// state and never fails on empty result sets.
type BalanceEngine struct {
	ledger port.LedgerReader
}

func NewBalanceEngine(ledger port.LedgerReader) *BalanceEngine {
	return &BalanceEngine{ledger: ledger}
}

// Movements returns the raw debit/credit sums per account over r. Accounts
// with no activity are present in the result with zero movement.
func (e *BalanceEngine) Movements(ctx context.Context, tenantID uuid.UUID, accounts []model.Account, r valueobject.DateRange) (map[uuid.UUID]valueobject.Movement, error) {
	ids := make([]uuid.UUID, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}

	sums, err := e.ledger.SumMovements(ctx, tenantID, ids, r)
	if err != nil {
		return nil, fmt.Errorf("sum movements: %w", err)
	}

	out := make(map[uuid.UUID]valueobject.Movement, len(accounts))
	for _, a := range accounts {
		out[a.ID] = sums[a.ID]
	}
	return out, nil
}

// BalancesAsOf returns each account's signed balance from all postings up to
// and including asOf.
func (e *BalanceEngine) BalancesAsOf(ctx context.Context, tenantID uuid.UUID, accounts []model.Account, asOf time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	movements, err := e.Movements(ctx, tenantID, accounts, valueobject.Until(asOf))
	if err != nil {
		return nil, err
	}
	return signedBalances(accounts, movements), nil
}

// OpeningBalances returns each account's signed balance immediately before at,
// i.e. from all postings dated at-1 day or earlier.
func (e *BalanceEngine) OpeningBalances(ctx context.Context, tenantID uuid.UUID, accounts []model.Account, at time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	return e.BalancesAsOf(ctx, tenantID, accounts, at.AddDate(0, 0, -1))
}

// ClosingBalances returns opening balances at r.From plus the signed movement
// over r, for each account. The range must be bounded.
func (e *BalanceEngine) ClosingBalances(ctx context.Context, tenantID uuid.UUID, accounts []model.Account, r valueobject.DateRange) (map[uuid.UUID]decimal.Decimal, error) {
	if r.From == nil || r.To == nil {
		return nil, fmt.Errorf("closing balances require a bounded range")
	}

	opening, err := e.OpeningBalances(ctx, tenantID, accounts, *r.From)
	if err != nil {
		return nil, err
	}
	movements, err := e.Movements(ctx, tenantID, accounts, r)
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		out[a.ID] = opening[a.ID].Add(movements[a.ID].Signed(a.Type))
	}
	return out, nil
}

// PostedLines returns one account's lines over r in running-balance order.
func (e *BalanceEngine) PostedLines(ctx context.Context, tenantID, accountID uuid.UUID, r valueobject.DateRange) ([]model.PostedLine, error) {
	return e.ledger.ListPostedLines(ctx, tenantID, accountID, r)
}

func signedBalances(accounts []model.Account, movements map[uuid.UUID]valueobject.Movement) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		out[a.ID] = movements[a.ID].Signed(a.Type)
	}
	return out
}
