package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyworks/tally/internal/domain/apperr"
)

// JournalLine is one debit/credit leg of a journal. Exactly one of Debit and
// Credit conventionally carries a nonzero value; both-nonzero lines are
// accepted as long as the journal as a whole balances.
type JournalLine struct {
	ID          uuid.UUID
	LineNumber  int
	AccountID   uuid.UUID
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	TaxRateID   *uuid.UUID
	Description string
	Department  string
}

// Provenance is the free-form back-reference to the document that produced a
// journal. The ledger stores and echoes it without interpretation.
type Provenance struct {
	Source     string
	SourceType string
	SourceID   string
}

// Journal is a balanced double-entry posting: a dated header plus its lines.
// The balance invariant (sum of debits equals sum of credits, strictly
// positive) is established at construction and never mutated afterwards.
type Journal struct {
	id          uuid.UUID
	tenantID    uuid.UUID
	journalDate time.Time
	periodID    *uuid.UUID
	memo        string
	provenance  Provenance
	isApproved  bool
	lines       []JournalLine
	createdAt   time.Time
}

// NewJournal validates lines and assembles a Journal. Line numbers are
// assigned from insertion order, which later drives running-balance tie
// breaking within a date.
func NewJournal(
	tenantID uuid.UUID,
	journalDate time.Time,
	periodID *uuid.UUID,
	memo string,
	provenance Provenance,
	lines []JournalLine,
) (Journal, error) {
	if len(lines) == 0 {
		return Journal{}, apperr.Validation(apperr.CodeZeroAmountJournal, "journal requires at least one line")
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i := range lines {
		l := &lines[i]
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return Journal{}, apperr.Validation(apperr.CodeNegativeAmount,
				"line %d carries a negative amount", i+1)
		}
		l.ID = uuid.New()
		l.LineNumber = i + 1
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return Journal{}, apperr.Validation(apperr.CodeUnbalancedJournal,
			"debits %s do not equal credits %s", totalDebit, totalCredit)
	}
	if !totalDebit.IsPositive() {
		return Journal{}, apperr.Validation(apperr.CodeZeroAmountJournal,
			"journal total must be strictly positive")
	}

	return Journal{
		id:          uuid.New(),
		tenantID:    tenantID,
		journalDate: journalDate,
		periodID:    periodID,
		memo:        memo,
		provenance:  provenance,
		lines:       lines,
		createdAt:   time.Now().UTC(),
	}, nil
}

// ReconstructJournal recreates a Journal from persistence without validation.
func ReconstructJournal(
	id, tenantID uuid.UUID,
	journalDate time.Time,
	periodID *uuid.UUID,
	memo string,
	provenance Provenance,
	isApproved bool,
	lines []JournalLine,
	createdAt time.Time,
) Journal {
	return Journal{
		id:          id,
		tenantID:    tenantID,
		journalDate: journalDate,
		periodID:    periodID,
		memo:        memo,
		provenance:  provenance,
		isApproved:  isApproved,
		lines:       lines,
		createdAt:   createdAt,
	}
}

// Approve marks the journal as approved (returns an updated copy).
func (j Journal) Approve() Journal {
	approved := j
	approved.isApproved = true
	return approved
}

// WithPeriod returns a copy bound to the given period.
func (j Journal) WithPeriod(periodID uuid.UUID) Journal {
	bound := j
	bound.periodID = &periodID
	return bound
}

// Total returns the common debit/credit total of the journal.
func (j Journal) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.lines {
		total = total.Add(l.Debit)
	}
	return total
}

func (j Journal) ID() uuid.UUID          { return j.id }
func (j Journal) TenantID() uuid.UUID    { return j.tenantID }
func (j Journal) JournalDate() time.Time { return j.journalDate }
func (j Journal) PeriodID() *uuid.UUID   { return j.periodID }
func (j Journal) Memo() string           { return j.memo }
func (j Journal) Provenance() Provenance { return j.provenance }
func (j Journal) IsApproved() bool       { return j.isApproved }
func (j Journal) Lines() []JournalLine   { return j.lines }
func (j Journal) CreatedAt() time.Time   { return j.createdAt }
