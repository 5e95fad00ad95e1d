package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's opening, movement and closing amounts.
type TrialBalanceRow struct {
	AccountID      uuid.UUID
	Code           string
	Name           string
	Type           string
	HierarchyLevel int
	OpeningBalance decimal.Decimal
	DebitMovement  decimal.Decimal
	CreditMovement decimal.Decimal
	ClosingBalance decimal.Decimal
}

// TrialBalanceReport covers every active account of the period, including
// zero-activity rows, so that the debit/credit totals reconcile structurally.
type TrialBalanceReport struct {
	PeriodID    uuid.UUID
	PeriodName  string
	StartDate   time.Time
	EndDate     time.Time
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// GeneralLedgerRow is one line of the running-balance walk.
type GeneralLedgerRow struct {
	JournalID      uuid.UUID
	JournalDate    time.Time
	Memo           string
	Description    string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	RunningBalance decimal.Decimal
}

// GeneralLedgerReport is a single account's activity over a date range.
type GeneralLedgerReport struct {
	AccountID      uuid.UUID
	Code           string
	Name           string
	Type           string
	From           time.Time
	To             time.Time
	OpeningBalance decimal.Decimal
	Rows           []GeneralLedgerRow
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	ClosingBalance decimal.Decimal
}

// ReportAccountAmount is an account with its signed amount in a report section.
type ReportAccountAmount struct {
	AccountID uuid.UUID
	Code      string
	Name      string
	Amount    decimal.Decimal
}

// ReportSection is one titled block of a financial statement.
type ReportSection struct {
	Accounts []ReportAccountAmount
	Subtotal decimal.Decimal
}

// BSPLReport combines the balance sheet (as of period end) with the profit and
// loss statement (movement over the period). NetProfit is the single figure
// surfaced for gross, operating and net profit alike.
type BSPLReport struct {
	PeriodID    uuid.UUID
	PeriodName  string
	EndDate     time.Time
	Assets      ReportSection
	Liabilities ReportSection
	Equity      ReportSection
	Revenue     ReportSection
	Expenses    ReportSection
	NetProfit   decimal.Decimal
}

// TaxSummaryRow aggregates one tax rate's sales and purchase sides.
type TaxSummaryRow struct {
	TaxRateID     uuid.UUID
	RateName      string
	Rate          decimal.Decimal
	SalesBase     decimal.Decimal
	SalesTax      decimal.Decimal
	PurchasesBase decimal.Decimal
	PurchasesTax  decimal.Decimal
}

// TaxSummaryReport is the VAT summary over a date range.
type TaxSummaryReport struct {
	From       time.Time
	To         time.Time
	Rows       []TaxSummaryRow
	NetPayable decimal.Decimal
}
