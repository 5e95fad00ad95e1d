package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyworks/tally/internal/application/dto"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
)

// TrialBalance builds the per-account opening/movement/closing report for a
// period. Every active account appears, including those with no activity, so
// the report is structurally complete and its totals reconcile.
type TrialBalance struct {
	accounts port.AccountRepository
	periods  port.PeriodRepository
	engine   *BalanceEngine
}

func NewTrialBalance(accounts port.AccountRepository, periods port.PeriodRepository, engine *BalanceEngine) *TrialBalance {
	return &TrialBalance{accounts: accounts, periods: periods, engine: engine}
}

func (uc *TrialBalance) Execute(ctx context.Context, tenantID, periodID uuid.UUID) (dto.TrialBalanceReport, error) {
	period, err := uc.periods.FindByID(ctx, tenantID, periodID)
	if err != nil {
		return dto.TrialBalanceReport{}, err
	}

	chart, err := uc.accounts.ListByTenant(ctx, tenantID)
	if err != nil {
		return dto.TrialBalanceReport{}, fmt.Errorf("load chart of accounts: %w", err)
	}

	active := make([]model.Account, 0, len(chart))
	for _, a := range chart {
		if a.IsActive {
			active = append(active, a)
		}
	}
	// Levels resolve against the full chart so an active child of an inactive
	// parent still reports its true depth.
	idx := model.NewAccountIndex(chart)

	opening, err := uc.engine.OpeningBalances(ctx, tenantID, active, period.StartDate)
	if err != nil {
		return dto.TrialBalanceReport{}, err
	}
	movements, err := uc.engine.Movements(ctx, tenantID, active, period.Range())
	if err != nil {
		return dto.TrialBalanceReport{}, err
	}

	rows := make([]dto.TrialBalanceRow, 0, len(active))
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, a := range active {
		level, err := idx.HierarchyLevel(a.ID)
		if err != nil {
			return dto.TrialBalanceReport{}, err
		}
		m := movements[a.ID]
		rows = append(rows, dto.TrialBalanceRow{
			AccountID:      a.ID,
			Code:           a.Code,
			Name:           a.Name,
			Type:           a.Type.String(),
			HierarchyLevel: level,
			OpeningBalance: opening[a.ID],
			DebitMovement:  m.Debit,
			CreditMovement: m.Credit,
			ClosingBalance: opening[a.ID].Add(m.Signed(a.Type)),
		})
		totalDebit = totalDebit.Add(m.Debit)
		totalCredit = totalCredit.Add(m.Credit)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })

	return dto.TrialBalanceReport{
		PeriodID:    period.ID,
		PeriodName:  period.Name,
		StartDate:   period.StartDate,
		EndDate:     period.EndDate,
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}
