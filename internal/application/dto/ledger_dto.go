package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalLineInput is one leg of a posting request.
type JournalLineInput struct {
	AccountID   uuid.UUID
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	TaxRateID   *uuid.UUID
	Description string
	Department  string
}

// PostJournalRequest is the input for posting a journal.
type PostJournalRequest struct {
	TenantID    uuid.UUID
	JournalDate time.Time
	PeriodID    *uuid.UUID // auto-resolved from JournalDate when nil
	Memo        string
	Source      string
	SourceType  string
	SourceID    string
	Lines       []JournalLineInput
}

// JournalLineOutput is one persisted journal line.
type JournalLineOutput struct {
	ID          uuid.UUID
	LineNumber  int
	AccountID   uuid.UUID
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	TaxRateID   *uuid.UUID
	Description string
	Department  string
}

// JournalResponse is the output for journal reads and writes.
type JournalResponse struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	JournalDate time.Time
	PeriodID    *uuid.UUID
	Memo        string
	Source      string
	SourceType  string
	SourceID    string
	IsApproved  bool
	Total       decimal.Decimal
	Lines       []JournalLineOutput
	CreatedAt   time.Time
}

// CreatePeriodRequest is the input for creating an accounting period.
type CreatePeriodRequest struct {
	TenantID   uuid.UUID
	Name       string
	StartDate  time.Time
	EndDate    time.Time
	FiscalYear int
}

// ClosePeriodRequest is the input for the period-close procedure.
type ClosePeriodRequest struct {
	TenantID    uuid.UUID
	PeriodID    uuid.UUID
	ClosingDate time.Time
}

// ClosePeriodResponse reports the outcome of a period close.
type ClosePeriodResponse struct {
	PeriodID         uuid.UUID
	ClosingJournalID *uuid.UUID // nil when every temporary balance was zero
	NetProfit        decimal.Decimal
}

// CreateAccountRequest is the input for adding an account to the chart.
type CreateAccountRequest struct {
	TenantID    uuid.UUID
	Code        string
	Name        string
	Type        string
	ParentID    *uuid.UUID
	SortOrder   int
	TaxCategory string
}
