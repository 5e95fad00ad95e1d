// Package apperr defines the error taxonomy shared by every ledger operation.
// Errors carry a kind (for transport mapping) and a stable reason code (for
// user-facing rendering); the message is free-form detail.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for propagation policy and transport mapping.
type Kind int

const (
	// KindValidation covers malformed input: unbalanced or zero-amount
	// journals, unknown references, inverted date ranges.
	KindValidation Kind = iota
	// KindState covers illegal lifecycle transitions: posting into a locked
	// period, closing a non-open period, locking a non-closed period.
	KindState
	// KindNotFound covers missing accounts, periods and journals.
	KindNotFound
	// KindIntegrity covers deletions blocked by existing references.
	KindIntegrity
	// KindDependencyMissing covers absent collaborator data the operation
	// cannot proceed without, such as a retained-earnings account at close.
	KindDependencyMissing
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindState:
		return "state"
	case KindNotFound:
		return "not_found"
	case KindIntegrity:
		return "integrity"
	case KindDependencyMissing:
		return "dependency_missing"
	default:
		return "unknown"
	}
}

// Stable reason codes surfaced to callers.
const (
	CodeUnbalancedJournal       = "unbalanced_journal"
	CodeZeroAmountJournal       = "zero_amount_journal"
	CodeNegativeAmount          = "negative_amount"
	CodeUnknownAccount          = "unknown_account"
	CodeInactiveAccount         = "inactive_account"
	CodeUnknownTaxRate          = "unknown_tax_rate"
	CodeUnknownJournal          = "unknown_journal"
	CodeUnknownPeriod           = "unknown_period"
	CodeInvalidDateRange        = "invalid_date_range"
	CodeCycleDetected           = "cycle_detected"
	CodePeriodLocked            = "period_locked"
	CodePeriodNotOpen           = "period_not_open"
	CodePeriodClosed            = "period_closed"
	CodeNotClosedYet            = "not_closed_yet"
	CodeOverlappingPeriod       = "overlapping_period"
	CodeHasChildren             = "has_children"
	CodeInUse                   = "in_use"
	CodePeriodHasJournals       = "period_has_journals"
	CodeChartNotEmpty           = "chart_not_empty"
	CodeRetainedEarningsMissing = "retained_earnings_account_missing"
	CodeNoTemporaryAccounts     = "no_temporary_accounts"
)

// Error is the taxonomy error type.
type Error struct {
	Kind Kind
	Code string
	msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.msg)
}

// New creates an Error with the given kind, reason code and message.
func New(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, msg: fmt.Sprintf(format, args...)}
}

// Validation creates a KindValidation error.
func Validation(code, format string, args ...any) *Error {
	return New(KindValidation, code, format, args...)
}

// State creates a KindState error.
func State(code, format string, args ...any) *Error {
	return New(KindState, code, format, args...)
}

// NotFound creates a KindNotFound error.
func NotFound(code, format string, args ...any) *Error {
	return New(KindNotFound, code, format, args...)
}

// Integrity creates a KindIntegrity error.
func Integrity(code, format string, args ...any) *Error {
	return New(KindIntegrity, code, format, args...)
}

// DependencyMissing creates a KindDependencyMissing error.
func DependencyMissing(code, format string, args ...any) *Error {
	return New(KindDependencyMissing, code, format, args...)
}

// KindOf returns the kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// CodeOf returns the reason code of err if it is (or wraps) an *Error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
