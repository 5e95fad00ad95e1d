package valueobject

import (
	"time"

	"github.com/tallyworks/tally/internal/domain/apperr"
)

// DateRange is an inclusive calendar-date interval. A nil bound is unbounded,
// which the balance engine uses for opening-balance queries.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// NewDateRange builds a bounded range, rejecting inverted bounds.
func NewDateRange(from, to time.Time) (DateRange, error) {
	if to.Before(from) {
		return DateRange{}, apperr.Validation(apperr.CodeInvalidDateRange,
			"from %s is after to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return DateRange{From: &from, To: &to}, nil
}

// Until returns the unbounded range (-inf, to].
func Until(to time.Time) DateRange {
	return DateRange{To: &to}
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	if r.From != nil && d.Before(*r.From) {
		return false
	}
	if r.To != nil && d.After(*r.To) {
		return false
	}
	return true
}
