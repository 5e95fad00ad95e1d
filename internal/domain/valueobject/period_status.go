package valueobject

import (
	"fmt"
	"strings"
)

// PeriodStatus tracks the lifecycle state of an accounting period.
// Transitions are one-directional: open -> closed -> locked.
type PeriodStatus string

const (
	PeriodStatusOpen   PeriodStatus = "open"
	PeriodStatusClosed PeriodStatus = "closed"
	PeriodStatusLocked PeriodStatus = "locked"
)

// ParsePeriodStatus validates and normalizes a status string.
func ParsePeriodStatus(s string) (PeriodStatus, error) {
	st := PeriodStatus(strings.ToLower(s))
	switch st {
	case PeriodStatusOpen, PeriodStatusClosed, PeriodStatusLocked:
		return st, nil
	}
	return "", fmt.Errorf("invalid period status %q", s)
}

// CanTransitionTo reports whether the one-directional state machine allows
// moving from s to target.
func (s PeriodStatus) CanTransitionTo(target PeriodStatus) bool {
	switch s {
	case PeriodStatusOpen:
		return target == PeriodStatusClosed
	case PeriodStatusClosed:
		return target == PeriodStatusLocked
	default:
		return false
	}
}

// AcceptsPostings reports whether ordinary postings may target the period.
// Closed periods accept postings only when the tenant policy allows it; locked
// periods never do.
func (s PeriodStatus) AcceptsPostings(allowClosed bool) bool {
	switch s {
	case PeriodStatusOpen:
		return true
	case PeriodStatusClosed:
		return allowClosed
	default:
		return false
	}
}

func (s PeriodStatus) String() string { return string(s) }
