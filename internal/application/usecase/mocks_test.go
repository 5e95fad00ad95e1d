package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/valueobject"
	"github.com/tallyworks/tally/pkg/events"
)

// --- Mock implementations ---

// mockAccountRepository implements port.AccountRepository for testing.
type mockAccountRepository struct {
	accounts         []model.Account
	created          []model.Account
	batches          [][]model.Account
	retainedEarnings *model.Account
	hasChildren      bool
	isReferenced     bool
	deleted          []uuid.UUID

	createFunc func(ctx context.Context, account model.Account) error
	listFunc   func(ctx context.Context, tenantID uuid.UUID) ([]model.Account, error)
}

func (m *mockAccountRepository) Create(ctx context.Context, account model.Account) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, account)
	}
	m.created = append(m.created, account)
	return nil
}

func (m *mockAccountRepository) CreateBatch(_ context.Context, accounts []model.Account) error {
	m.batches = append(m.batches, accounts)
	return nil
}

func (m *mockAccountRepository) FindByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (model.Account, error) {
	for _, a := range m.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Account{}, apperr.NotFound(apperr.CodeUnknownAccount, "account %s not found", id)
}

func (m *mockAccountRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Account, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, tenantID)
	}
	return m.accounts, nil
}

func (m *mockAccountRepository) CountByTenant(_ context.Context, _ uuid.UUID) (int, error) {
	return len(m.accounts), nil
}

func (m *mockAccountRepository) HasChildren(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return m.hasChildren, nil
}

func (m *mockAccountRepository) IsReferenced(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return m.isReferenced, nil
}

func (m *mockAccountRepository) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockAccountRepository) FindRetainedEarnings(_ context.Context, _ uuid.UUID) (model.Account, bool, error) {
	if m.retainedEarnings == nil {
		return model.Account{}, false, nil
	}
	return *m.retainedEarnings, true, nil
}

// mockTaxRateRepository implements port.TaxRateRepository for testing.
type mockTaxRateRepository struct {
	rates   []model.TaxRate
	missing []uuid.UUID
}

func (m *mockTaxRateRepository) ListByTenant(_ context.Context, _ uuid.UUID) ([]model.TaxRate, error) {
	return m.rates, nil
}

func (m *mockTaxRateRepository) MissingIDs(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	if m.missing != nil {
		return m.missing, nil
	}
	known := map[uuid.UUID]struct{}{}
	for _, r := range m.rates {
		known[r.ID] = struct{}{}
	}
	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// mockPeriodRepository implements port.PeriodRepository for testing.
type mockPeriodRepository struct {
	periods     []model.AccountingPeriod
	created     []model.AccountingPeriod
	overlaps    bool
	hasJournals bool
	deleted     []uuid.UUID
	transitions []statusTransition

	transitionFunc func(ctx context.Context, tenantID, id uuid.UUID, from, to valueobject.PeriodStatus) (bool, error)
}

type statusTransition struct {
	PeriodID uuid.UUID
	From     valueobject.PeriodStatus
	To       valueobject.PeriodStatus
}

func (m *mockPeriodRepository) Create(_ context.Context, period model.AccountingPeriod) error {
	m.created = append(m.created, period)
	return nil
}

func (m *mockPeriodRepository) FindByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (model.AccountingPeriod, error) {
	for _, p := range m.periods {
		if p.ID == id {
			return p, nil
		}
	}
	return model.AccountingPeriod{}, apperr.NotFound(apperr.CodeUnknownPeriod, "period %s not found", id)
}

func (m *mockPeriodRepository) FindByDate(_ context.Context, _ uuid.UUID, date time.Time) (model.AccountingPeriod, bool, error) {
	for _, p := range m.periods {
		if p.Contains(date) {
			return p, true, nil
		}
	}
	return model.AccountingPeriod{}, false, nil
}

func (m *mockPeriodRepository) Overlaps(_ context.Context, _ uuid.UUID, _, _ time.Time) (bool, error) {
	return m.overlaps, nil
}

func (m *mockPeriodRepository) TransitionStatus(ctx context.Context, tenantID, id uuid.UUID, from, to valueobject.PeriodStatus) (bool, error) {
	if m.transitionFunc != nil {
		return m.transitionFunc(ctx, tenantID, id, from, to)
	}
	m.transitions = append(m.transitions, statusTransition{PeriodID: id, From: from, To: to})
	return true, nil
}

func (m *mockPeriodRepository) HasJournals(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return m.hasJournals, nil
}

func (m *mockPeriodRepository) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

// mockJournalRepository implements port.JournalRepository for testing.
type mockJournalRepository struct {
	created        []model.Journal
	closings       []closingCall
	deleted        []uuid.UUID
	stored         map[uuid.UUID]model.Journal
	createFunc     func(ctx context.Context, journal model.Journal) error
	createClosFunc func(ctx context.Context, journal model.Journal, periodID uuid.UUID) error
}

type closingCall struct {
	Journal  model.Journal
	PeriodID uuid.UUID
}

func (m *mockJournalRepository) Create(ctx context.Context, journal model.Journal) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, journal)
	}
	m.created = append(m.created, journal)
	return nil
}

func (m *mockJournalRepository) CreateClosing(ctx context.Context, journal model.Journal, periodID uuid.UUID) error {
	if m.createClosFunc != nil {
		return m.createClosFunc(ctx, journal, periodID)
	}
	m.closings = append(m.closings, closingCall{Journal: journal, PeriodID: periodID})
	return nil
}

func (m *mockJournalRepository) FindByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (model.Journal, error) {
	if j, ok := m.stored[id]; ok {
		return j, nil
	}
	return model.Journal{}, apperr.NotFound(apperr.CodeUnknownJournal, "journal %s not found", id)
}

func (m *mockJournalRepository) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

// mockLedgerReader implements port.LedgerReader for testing.
type mockLedgerReader struct {
	movements map[uuid.UUID]valueobject.Movement
	lines     []model.PostedLine
	taxLines  []model.TaxLine

	sumFunc func(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID, r valueobject.DateRange) (map[uuid.UUID]valueobject.Movement, error)
}

func (m *mockLedgerReader) SumMovements(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID, r valueobject.DateRange) (map[uuid.UUID]valueobject.Movement, error) {
	if m.sumFunc != nil {
		return m.sumFunc(ctx, tenantID, accountIDs, r)
	}
	out := map[uuid.UUID]valueobject.Movement{}
	for _, id := range accountIDs {
		if mv, ok := m.movements[id]; ok {
			out[id] = mv
		}
	}
	return out, nil
}

func (m *mockLedgerReader) ListPostedLines(_ context.Context, _, accountID uuid.UUID, r valueobject.DateRange) ([]model.PostedLine, error) {
	var out []model.PostedLine
	for _, l := range m.lines {
		if l.AccountID == accountID && r.Contains(l.JournalDate) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockLedgerReader) ListTaxLines(_ context.Context, _ uuid.UUID, _ valueobject.DateRange) ([]model.TaxLine, error) {
	return m.taxLines, nil
}

// mockEventPublisher implements events.EventPublisher for testing.
type mockEventPublisher struct {
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, topic string, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, topic, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}
