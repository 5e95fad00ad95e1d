package service

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

// TemporaryBalance is a revenue or expense account paired with its signed
// period balance.
type TemporaryBalance struct {
	Account model.Account
	Balance decimal.Decimal
}

// ClosingEntry is the synthesized line set that zeroes temporary accounts and
// carries the net result into retained earnings.
type ClosingEntry struct {
	Lines     []model.JournalLine
	NetProfit decimal.Decimal
}

// SynthesizeClosingEntry builds the closing lines for a period from the signed
// balances of its temporary accounts.
//
// Revenue accounts are credit-normal, so a positive balance is zeroed with a
// debit of the same amount; expense accounts are debit-normal and are zeroed
// with a credit. Accounts with an exactly zero balance are skipped. Net profit
// (sum of revenue balances minus sum of expense balances) lands on the
// retained-earnings account: a credit when positive, a debit of the absolute
// value when negative, no line at all when zero. The resulting set balances by
// construction.
func SynthesizeClosingEntry(balances []TemporaryBalance, retainedEarnings model.Account) (ClosingEntry, error) {
	if len(balances) == 0 {
		return ClosingEntry{}, apperr.DependencyMissing(apperr.CodeNoTemporaryAccounts,
			"no revenue or expense accounts to close")
	}

	// Deterministic line order regardless of map iteration upstream.
	sorted := make([]TemporaryBalance, len(balances))
	copy(sorted, balances)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Account.Type != sorted[j].Account.Type {
			return sorted[i].Account.Type == valueobject.AccountTypeRevenue
		}
		return sorted[i].Account.Code < sorted[j].Account.Code
	})

	var lines []model.JournalLine
	totalRevenue := decimal.Zero
	totalExpense := decimal.Zero

	for _, tb := range sorted {
		if tb.Balance.IsZero() {
			continue
		}
		switch tb.Account.Type {
		case valueobject.AccountTypeRevenue:
			totalRevenue = totalRevenue.Add(tb.Balance)
			if tb.Balance.IsPositive() {
				lines = append(lines, closingLine(tb.Account.ID, tb.Balance, decimal.Zero))
			} else {
				// Contra balance: zeroing a debit-standing revenue account
				// takes a credit.
				lines = append(lines, closingLine(tb.Account.ID, decimal.Zero, tb.Balance.Abs()))
			}
		case valueobject.AccountTypeExpense:
			totalExpense = totalExpense.Add(tb.Balance)
			if tb.Balance.IsPositive() {
				lines = append(lines, closingLine(tb.Account.ID, decimal.Zero, tb.Balance))
			} else {
				lines = append(lines, closingLine(tb.Account.ID, tb.Balance.Abs(), decimal.Zero))
			}
		}
	}

	netProfit := totalRevenue.Sub(totalExpense)
	switch {
	case netProfit.IsPositive():
		lines = append(lines, closingLine(retainedEarnings.ID, decimal.Zero, netProfit))
	case netProfit.IsNegative():
		lines = append(lines, closingLine(retainedEarnings.ID, netProfit.Abs(), decimal.Zero))
	}

	return ClosingEntry{Lines: lines, NetProfit: netProfit}, nil
}

func closingLine(accountID uuid.UUID, debit, credit decimal.Decimal) model.JournalLine {
	return model.JournalLine{
		AccountID:   accountID,
		Debit:       debit,
		Credit:      credit,
		Description: "period closing entry",
	}
}
