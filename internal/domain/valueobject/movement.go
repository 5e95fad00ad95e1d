package valueobject

import (
	"github.com/shopspring/decimal"
)

// Movement is the raw debit/credit activity of one account over a date range,
// prior to sign normalization.
type Movement struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Add accumulates another movement into this one.
func (m Movement) Add(other Movement) Movement {
	return Movement{
		Debit:  m.Debit.Add(other.Debit),
		Credit: m.Credit.Add(other.Credit),
	}
}

// Signed folds the movement into a single signed amount using the account
// type's normal balance sign: debit minus credit for debit-normal accounts,
// credit minus debit for credit-normal ones.
func (m Movement) Signed(t AccountType) decimal.Decimal {
	if t.NormalBalanceSign() > 0 {
		return m.Debit.Sub(m.Credit)
	}
	return m.Credit.Sub(m.Debit)
}

// IsZero reports whether both sums are zero.
func (m Movement) IsZero() bool {
	return m.Debit.IsZero() && m.Credit.IsZero()
}
