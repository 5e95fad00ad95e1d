package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxRate is a VAT rate referenced by journal lines. Rate is a percentage
// (e.g. 20 for 20%).
type TaxRate struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string
	Rate     decimal.Decimal
	Category string
}

// TaxOn returns the tax amount for a base amount at this rate.
func (r TaxRate) TaxOn(base decimal.Decimal) decimal.Decimal {
	return base.Mul(r.Rate).Div(decimal.NewFromInt(100))
}
