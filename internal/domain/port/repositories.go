package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

// AccountRepository defines persistence operations for the chart of accounts.
// Every operation is scoped by tenant; no entity is visible across tenants.
type AccountRepository interface {
	// Create persists a single account.
	Create(ctx context.Context, account model.Account) error
	// CreateBatch persists a set of accounts in one transaction (chart import).
	CreateBatch(ctx context.Context, accounts []model.Account) error
	// FindByID retrieves one account.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (model.Account, error)
	// ListByTenant returns the tenant's full chart ordered by code.
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Account, error)
	// CountByTenant returns the number of accounts in the tenant's chart.
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error)
	// HasChildren reports whether any account names this one as parent.
	HasChildren(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
	// IsReferenced reports whether any journal line posts to this account.
	IsReferenced(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
	// Delete removes an account. Reference checks run before this call.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	// FindRetainedEarnings resolves the tenant's designated retained-earnings
	// equity account by naming convention; found is false when absent.
	FindRetainedEarnings(ctx context.Context, tenantID uuid.UUID) (account model.Account, found bool, err error)
}

// TaxRateRepository defines read operations over the tax-rate directory.
type TaxRateRepository interface {
	// ListByTenant returns the tenant's tax rates.
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.TaxRate, error)
	// MissingIDs returns the subset of ids that do not exist for the tenant.
	MissingIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error)
}

// PeriodRepository defines persistence operations for accounting periods.
type PeriodRepository interface {
	// Create persists a new period.
	Create(ctx context.Context, period model.AccountingPeriod) error
	// FindByID retrieves one period.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (model.AccountingPeriod, error)
	// FindByDate resolves the period whose window contains the date; found is
	// false when no period covers it.
	FindByDate(ctx context.Context, tenantID uuid.UUID, date time.Time) (period model.AccountingPeriod, found bool, err error)
	// Overlaps reports whether any existing period intersects [start, end].
	Overlaps(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (bool, error)
	// TransitionStatus performs a compare-and-swap status update; swapped is
	// false when the period was not in the expected status.
	TransitionStatus(ctx context.Context, tenantID, id uuid.UUID, from, to valueobject.PeriodStatus) (swapped bool, err error)
	// HasJournals reports whether any journal references the period.
	HasJournals(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
	// Delete removes a period. Reference checks run before this call.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// JournalRepository defines persistence operations for journals. Header and
// lines are always written or removed as one transaction, so a header without
// lines is never observable.
type JournalRepository interface {
	// Create persists a journal header, its lines and its outbox events
	// atomically.
	Create(ctx context.Context, journal model.Journal) error
	// CreateClosing persists the closing journal and transitions its period
	// from open to closed in the same transaction. The transition is a
	// compare-and-swap; if the period is no longer open the whole transaction
	// rolls back and a state error is returned, so concurrent closes
	// serialize with at most one winner.
	CreateClosing(ctx context.Context, journal model.Journal, periodID uuid.UUID) error
	// FindByID retrieves a journal with its lines.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (model.Journal, error)
	// Delete removes the header and lines together.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// LedgerReader serves the balance engine's aggregate reads. Implementations
// should answer each call from a single query so one report row set is
// internally consistent.
type LedgerReader interface {
	// SumMovements returns per-account debit/credit sums for lines whose
	// journal date falls inside r. Accounts without activity are absent from
	// the result map.
	SumMovements(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID, r valueobject.DateRange) (map[uuid.UUID]valueobject.Movement, error)
	// ListPostedLines returns one account's lines inside r ordered by journal
	// date, journal insertion order, then line number.
	ListPostedLines(ctx context.Context, tenantID, accountID uuid.UUID, r valueobject.DateRange) ([]model.PostedLine, error)
	// ListTaxLines returns all lines inside r that carry a tax rate, joined
	// with the rate and the posting account's type.
	ListTaxLines(ctx context.Context, tenantID uuid.UUID, r valueobject.DateRange) ([]model.TaxLine, error)
}
