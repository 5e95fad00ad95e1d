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
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

// BalanceSheetPL builds the combined balance sheet and profit-and-loss
// statement for a period. Balance-sheet sections carry cumulative balances as
// of the period end; revenue and expense sections carry the period's movement
// only, and their difference is the single net-profit figure.
type BalanceSheetPL struct {
	accounts port.AccountRepository
	periods  port.PeriodRepository
	engine   *BalanceEngine
}

func NewBalanceSheetPL(accounts port.AccountRepository, periods port.PeriodRepository, engine *BalanceEngine) *BalanceSheetPL {
	return &BalanceSheetPL{accounts: accounts, periods: periods, engine: engine}
}

func (uc *BalanceSheetPL) Execute(ctx context.Context, tenantID, periodID uuid.UUID) (dto.BSPLReport, error) {
	period, err := uc.periods.FindByID(ctx, tenantID, periodID)
	if err != nil {
		return dto.BSPLReport{}, err
	}

	chart, err := uc.accounts.ListByTenant(ctx, tenantID)
	if err != nil {
		return dto.BSPLReport{}, fmt.Errorf("load chart of accounts: %w", err)
	}
	active := make([]model.Account, 0, len(chart))
	for _, a := range chart {
		if a.IsActive {
			active = append(active, a)
		}
	}

	asOfEnd, err := uc.engine.BalancesAsOf(ctx, tenantID, active, period.EndDate)
	if err != nil {
		return dto.BSPLReport{}, err
	}
	movements, err := uc.engine.Movements(ctx, tenantID, active, period.Range())
	if err != nil {
		return dto.BSPLReport{}, err
	}

	report := dto.BSPLReport{
		PeriodID:   period.ID,
		PeriodName: period.Name,
		EndDate:    period.EndDate,
	}

	for _, a := range active {
		var amount decimal.Decimal
		if a.Type.IsTemporary() {
			amount = movements[a.ID].Signed(a.Type)
		} else {
			amount = asOfEnd[a.ID]
		}
		if amount.IsZero() {
			continue
		}
		entry := dto.ReportAccountAmount{AccountID: a.ID, Code: a.Code, Name: a.Name, Amount: amount}
		switch a.Type {
		case valueobject.AccountTypeAsset:
			appendToSection(&report.Assets, entry)
		case valueobject.AccountTypeLiability:
			appendToSection(&report.Liabilities, entry)
		case valueobject.AccountTypeEquity:
			appendToSection(&report.Equity, entry)
		case valueobject.AccountTypeRevenue:
			appendToSection(&report.Revenue, entry)
		case valueobject.AccountTypeExpense:
			appendToSection(&report.Expenses, entry)
		}
	}

	for _, s := range []*dto.ReportSection{&report.Assets, &report.Liabilities, &report.Equity, &report.Revenue, &report.Expenses} {
		sort.Slice(s.Accounts, func(i, j int) bool { return s.Accounts[i].Code < s.Accounts[j].Code })
	}

	report.NetProfit = report.Revenue.Subtotal.Sub(report.Expenses.Subtotal)
	return report, nil
}

func appendToSection(s *dto.ReportSection, entry dto.ReportAccountAmount) {
	s.Accounts = append(s.Accounts, entry)
	s.Subtotal = s.Subtotal.Add(entry.Amount)
}
