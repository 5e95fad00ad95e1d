package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

// AccountingPeriod is a dated posting window. Periods of one tenant never
// overlap; status moves one way through open, closed, locked.
type AccountingPeriod struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Name       string
	StartDate  time.Time
	EndDate    time.Time
	Status     valueobject.PeriodStatus
	FiscalYear int
}

// NewAccountingPeriod validates the date window and creates an open period.
func NewAccountingPeriod(tenantID uuid.UUID, name string, start, end time.Time, fiscalYear int) (AccountingPeriod, error) {
	if end.Before(start) {
		return AccountingPeriod{}, apperr.Validation(apperr.CodeInvalidDateRange,
			"period end %s precedes start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return AccountingPeriod{
		ID:         uuid.New(),
		TenantID:   tenantID,
		Name:       name,
		StartDate:  start,
		EndDate:    end,
		Status:     valueobject.PeriodStatusOpen,
		FiscalYear: fiscalYear,
	}, nil
}

// Contains reports whether the date falls within [StartDate, EndDate].
func (p AccountingPeriod) Contains(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// Range returns the period's inclusive date range.
func (p AccountingPeriod) Range() valueobject.DateRange {
	start, end := p.StartDate, p.EndDate
	return valueobject.DateRange{From: &start, To: &end}
}
