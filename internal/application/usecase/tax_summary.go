package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyworks/tally/internal/application/dto"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

// TaxSummary aggregates tax-carrying journal lines into a per-rate VAT
// summary. Credit lines on revenue accounts count as sales, debit lines on
// expense accounts as purchases; everything else is ignored. Rates with no
// activity in the range produce no row.
type TaxSummary struct {
	ledger port.LedgerReader
}

func NewTaxSummary(ledger port.LedgerReader) *TaxSummary {
	return &TaxSummary{ledger: ledger}
}

func (uc *TaxSummary) Execute(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (dto.TaxSummaryReport, error) {
	r, err := valueobject.NewDateRange(from, to)
	if err != nil {
		return dto.TaxSummaryReport{}, err
	}

	lines, err := uc.ledger.ListTaxLines(ctx, tenantID, r)
	if err != nil {
		return dto.TaxSummaryReport{}, err
	}

	byRate := map[uuid.UUID]*dto.TaxSummaryRow{}
	for _, l := range lines {
		row, ok := byRate[l.TaxRateID]
		if !ok {
			row = &dto.TaxSummaryRow{TaxRateID: l.TaxRateID, RateName: l.RateName, Rate: l.Rate}
			byRate[l.TaxRateID] = row
		}
		rate := model.TaxRate{Rate: l.Rate}
		switch {
		case l.AccountType == valueobject.AccountTypeRevenue && l.Credit.IsPositive():
			row.SalesBase = row.SalesBase.Add(l.Credit)
			row.SalesTax = row.SalesTax.Add(rate.TaxOn(l.Credit))
		case l.AccountType == valueobject.AccountTypeExpense && l.Debit.IsPositive():
			row.PurchasesBase = row.PurchasesBase.Add(l.Debit)
			row.PurchasesTax = row.PurchasesTax.Add(rate.TaxOn(l.Debit))
		}
	}

	rows := make([]dto.TaxSummaryRow, 0, len(byRate))
	netPayable := decimal.Zero
	for _, row := range byRate {
		if row.SalesBase.IsZero() && row.SalesTax.IsZero() && row.PurchasesBase.IsZero() && row.PurchasesTax.IsZero() {
			continue
		}
		rows = append(rows, *row)
		netPayable = netPayable.Add(row.SalesTax).Sub(row.PurchasesTax)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].RateName < rows[j].RateName })

	return dto.TaxSummaryReport{From: from, To: to, Rows: rows, NetPayable: netPayable}, nil
}
