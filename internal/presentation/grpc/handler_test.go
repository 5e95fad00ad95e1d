package grpc

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tallyworks/tally/internal/application/usecase"
	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/valueobject"
	"github.com/tallyworks/tally/pkg/auth"
	"github.com/tallyworks/tally/pkg/events"
)

// --- Mock implementations ---

type stubAccounts struct {
	chart    []model.Account
	retained *model.Account
}

func (s *stubAccounts) Create(_ context.Context, _ model.Account) error        { return nil }
func (s *stubAccounts) CreateBatch(_ context.Context, _ []model.Account) error { return nil }

func (s *stubAccounts) FindByID(_ context.Context, _, id uuid.UUID) (model.Account, error) {
	for _, a := range s.chart {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Account{}, apperr.NotFound(apperr.CodeUnknownAccount, "account %s does not exist", id)
}

func (s *stubAccounts) ListByTenant(_ context.Context, _ uuid.UUID) ([]model.Account, error) {
	return s.chart, nil
}

func (s *stubAccounts) CountByTenant(_ context.Context, _ uuid.UUID) (int, error) {
	return len(s.chart), nil
}

func (s *stubAccounts) HasChildren(_ context.Context, _, _ uuid.UUID) (bool, error)  { return false, nil }
func (s *stubAccounts) IsReferenced(_ context.Context, _, _ uuid.UUID) (bool, error) { return false, nil }
func (s *stubAccounts) Delete(_ context.Context, _, _ uuid.UUID) error               { return nil }

func (s *stubAccounts) FindRetainedEarnings(_ context.Context, _ uuid.UUID) (model.Account, bool, error) {
	if s.retained == nil {
		return model.Account{}, false, nil
	}
	return *s.retained, true, nil
}

type stubTaxRates struct{}

func (s *stubTaxRates) ListByTenant(_ context.Context, _ uuid.UUID) ([]model.TaxRate, error) {
	return nil, nil
}

func (s *stubTaxRates) MissingIDs(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

type stubPeriods struct {
	periods []model.AccountingPeriod
}

func (s *stubPeriods) Create(_ context.Context, _ model.AccountingPeriod) error { return nil }

func (s *stubPeriods) FindByID(_ context.Context, _, id uuid.UUID) (model.AccountingPeriod, error) {
	for _, p := range s.periods {
		if p.ID == id {
			return p, nil
		}
	}
	return model.AccountingPeriod{}, apperr.NotFound(apperr.CodeUnknownPeriod, "period %s does not exist", id)
}

func (s *stubPeriods) FindByDate(_ context.Context, _ uuid.UUID, date time.Time) (model.AccountingPeriod, bool, error) {
	for _, p := range s.periods {
		if p.Contains(date) {
			return p, true, nil
		}
	}
	return model.AccountingPeriod{}, false, nil
}

func (s *stubPeriods) Overlaps(_ context.Context, _ uuid.UUID, _, _ time.Time) (bool, error) {
	return false, nil
}

func (s *stubPeriods) TransitionStatus(_ context.Context, _, id uuid.UUID, from, to valueobject.PeriodStatus) (bool, error) {
	for i, p := range s.periods {
		if p.ID == id && p.Status == from {
			s.periods[i].Status = to
			return true, nil
		}
	}
	return false, nil
}

func (s *stubPeriods) HasJournals(_ context.Context, _, _ uuid.UUID) (bool, error) { return false, nil }
func (s *stubPeriods) Delete(_ context.Context, _, _ uuid.UUID) error              { return nil }

type stubJournals struct {
	stored   map[uuid.UUID]model.Journal
	closings int
}

func newStubJournals() *stubJournals {
	return &stubJournals{stored: map[uuid.UUID]model.Journal{}}
}

func (s *stubJournals) Create(_ context.Context, j model.Journal) error {
	s.stored[j.ID()] = j
	return nil
}

func (s *stubJournals) CreateClosing(_ context.Context, j model.Journal, _ uuid.UUID) error {
	s.stored[j.ID()] = j
	s.closings++
	return nil
}

func (s *stubJournals) FindByID(_ context.Context, _, id uuid.UUID) (model.Journal, error) {
	j, ok := s.stored[id]
	if !ok {
		return model.Journal{}, apperr.NotFound(apperr.CodeUnknownJournal, "journal %s does not exist", id)
	}
	return j, nil
}

func (s *stubJournals) Delete(_ context.Context, _, id uuid.UUID) error {
	delete(s.stored, id)
	return nil
}

type stubLedger struct {
	// bounded movements only; an unbounded or as-of query answers empty, which
	// keeps opening balances at zero in these fixtures.
	movements map[uuid.UUID]valueobject.Movement
}

func (s *stubLedger) SumMovements(_ context.Context, _ uuid.UUID, accountIDs []uuid.UUID, dr valueobject.DateRange) (map[uuid.UUID]valueobject.Movement, error) {
	out := map[uuid.UUID]valueobject.Movement{}
	if dr.From == nil {
		return out, nil
	}
	for _, id := range accountIDs {
		if m, ok := s.movements[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

func (s *stubLedger) ListPostedLines(_ context.Context, _, _ uuid.UUID, _ valueobject.DateRange) ([]model.PostedLine, error) {
	return nil, nil
}

func (s *stubLedger) ListTaxLines(_ context.Context, _ uuid.UUID, _ valueobject.DateRange) ([]model.TaxLine, error) {
	return nil, nil
}

type stubPublisher struct{}

func (s *stubPublisher) Publish(_ context.Context, _ string, _ ...events.DomainEvent) error {
	return nil
}

// --- Fixture ---

type handlerFixture struct {
	tenantID uuid.UUID
	cash     model.Account
	sales    model.Account
	retained model.Account
	period   model.AccountingPeriod

	accounts *stubAccounts
	periods  *stubPeriods
	journals *stubJournals
	ledger   *stubLedger
	handler  *LedgerHandler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	tenantID := uuid.New()
	cash := model.Account{ID: uuid.New(), TenantID: tenantID, Code: "1000", Name: "Cash",
		Type: valueobject.AccountTypeAsset, IsActive: true}
	sales := model.Account{ID: uuid.New(), TenantID: tenantID, Code: "4000", Name: "Sales",
		Type: valueobject.AccountTypeRevenue, IsActive: true}
	retained := model.Account{ID: uuid.New(), TenantID: tenantID, Code: "3100", Name: "Retained Earnings",
		Type: valueobject.AccountTypeEquity, IsActive: true}

	period, err := model.NewAccountingPeriod(tenantID, "January 2025",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), 2025)
	require.NoError(t, err)

	f := &handlerFixture{
		tenantID: tenantID,
		cash:     cash,
		sales:    sales,
		retained: retained,
		period:   period,
		accounts: &stubAccounts{chart: []model.Account{cash, retained, sales}, retained: &retained},
		periods:  &stubPeriods{periods: []model.AccountingPeriod{period}},
		journals: newStubJournals(),
		ledger:   &stubLedger{movements: map[uuid.UUID]valueobject.Movement{}},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := &stubPublisher{}
	taxRates := &stubTaxRates{}
	engine := usecase.NewBalanceEngine(f.ledger)

	f.handler = NewLedgerHandler(
		usecase.NewPostJournal(f.journals, f.accounts, taxRates, f.periods, publisher, logger, true),
		usecase.NewGetJournal(f.journals),
		usecase.NewDeleteJournal(f.journals, f.periods, publisher, logger),
		usecase.NewTrialBalance(f.accounts, f.periods, engine),
		usecase.NewGeneralLedger(f.accounts, engine),
		usecase.NewBalanceSheetPL(f.accounts, f.periods, engine),
		usecase.NewTaxSummary(f.ledger),
		usecase.NewClosePeriod(f.accounts, f.periods, f.journals, engine, publisher, logger),
		usecase.NewLockPeriod(f.periods, publisher, logger),
	)
	return f
}

func (f *handlerFixture) ctx() context.Context {
	claims := &auth.Claims{
		UserID:   uuid.New(),
		TenantID: f.tenantID,
		Roles:    []string{"accountant"},
	}
	return auth.WithClaims(context.Background(), claims)
}

func (f *handlerFixture) postJournalRequest() *PostJournalRequest {
	return &PostJournalRequest{
		JournalDate: "2025-01-15",
		Memo:        "Cash sale",
		Source:      "manual",
		Lines: []*JournalLineMsg{
			{AccountID: f.cash.ID.String(), Debit: "100.00"},
			{AccountID: f.sales.ID.String(), Credit: "100.00"},
		},
	}
}

// --- Tests ---

func TestPostJournal(t *testing.T) {
	t.Run("missing claims returns Unauthenticated", func(t *testing.T) {
		f := newHandlerFixture(t)
		_, err := f.handler.PostJournal(context.Background(), f.postJournalRequest())
		requireGRPCCode(t, err, codes.Unauthenticated)
	})

	t.Run("invalid journal_date returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture(t)
		req := f.postJournalRequest()
		req.JournalDate = "not-a-date"
		_, err := f.handler.PostJournal(f.ctx(), req)
		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), "invalid journal_date")
	})

	t.Run("invalid line amount returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture(t)
		req := f.postJournalRequest()
		req.Lines[0].Debit = "not-a-number"
		_, err := f.handler.PostJournal(f.ctx(), req)
		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), "line 1")
	})

	t.Run("unbalanced journal returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture(t)
		req := f.postJournalRequest()
		req.Lines[1].Credit = "90.00"
		_, err := f.handler.PostJournal(f.ctx(), req)
		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), apperr.CodeUnbalancedJournal)
	})

	t.Run("happy path returns journal bound to period", func(t *testing.T) {
		f := newHandlerFixture(t)
		resp, err := f.handler.PostJournal(f.ctx(), f.postJournalRequest())
		require.NoError(t, err)
		require.NotNil(t, resp.Journal)
		assert.Equal(t, f.tenantID.String(), resp.Journal.TenantID)
		assert.Equal(t, f.period.ID.String(), resp.Journal.PeriodID)
		assert.Equal(t, "100", resp.Journal.Total)
		assert.True(t, resp.Journal.IsApproved)
		require.Len(t, resp.Journal.Lines, 2)
		assert.Equal(t, int32(1), resp.Journal.Lines[0].LineNumber)
	})

	t.Run("locked period returns FailedPrecondition", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.periods.periods[0].Status = valueobject.PeriodStatusLocked
		_, err := f.handler.PostJournal(f.ctx(), f.postJournalRequest())
		requireGRPCCode(t, err, codes.FailedPrecondition)
		assert.Contains(t, err.Error(), apperr.CodePeriodLocked)
	})
}

func TestGetJournal(t *testing.T) {
	t.Run("invalid journal_id returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture(t)
		_, err := f.handler.GetJournal(f.ctx(), &GetJournalRequest{JournalID: "not-a-uuid"})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("unknown journal returns NotFound", func(t *testing.T) {
		f := newHandlerFixture(t)
		_, err := f.handler.GetJournal(f.ctx(), &GetJournalRequest{JournalID: uuid.New().String()})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("round trips a posted journal", func(t *testing.T) {
		f := newHandlerFixture(t)
		posted, err := f.handler.PostJournal(f.ctx(), f.postJournalRequest())
		require.NoError(t, err)

		resp, err := f.handler.GetJournal(f.ctx(), &GetJournalRequest{JournalID: posted.Journal.ID})
		require.NoError(t, err)
		assert.Equal(t, posted.Journal.ID, resp.Journal.ID)
		assert.Equal(t, "Cash sale", resp.Journal.Memo)
		require.NotNil(t, resp.Journal.CreatedAt)
	})
}

func TestDeleteJournal(t *testing.T) {
	f := newHandlerFixture(t)
	posted, err := f.handler.PostJournal(f.ctx(), f.postJournalRequest())
	require.NoError(t, err)

	_, err = f.handler.DeleteJournal(f.ctx(), &DeleteJournalRequest{JournalID: posted.Journal.ID})
	require.NoError(t, err)

	_, err = f.handler.GetJournal(f.ctx(), &GetJournalRequest{JournalID: posted.Journal.ID})
	requireGRPCCode(t, err, codes.NotFound)
}

func TestGetTrialBalance(t *testing.T) {
	f := newHandlerFixture(t)
	f.ledger.movements[f.cash.ID] = valueobject.Movement{
		Debit: decimal.NewFromInt(100), Credit: decimal.Zero}
	f.ledger.movements[f.sales.ID] = valueobject.Movement{
		Debit: decimal.Zero, Credit: decimal.NewFromInt(100)}

	resp, err := f.handler.GetTrialBalance(f.ctx(), &GetTrialBalanceRequest{PeriodID: f.period.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "January 2025", resp.PeriodName)
	assert.Equal(t, "2025-01-01", resp.StartDate)
	require.Len(t, resp.Rows, 3)
	// Rows come back in code order.
	assert.Equal(t, "1000", resp.Rows[0].Code)
	assert.Equal(t, "100", resp.Rows[0].DebitMovement)
	assert.Equal(t, "100", resp.TotalDebit)
	assert.Equal(t, "100", resp.TotalCredit)
}

func TestClosePeriod(t *testing.T) {
	t.Run("closes period and synthesizes closing journal", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.ledger.movements[f.sales.ID] = valueobject.Movement{
			Debit: decimal.Zero, Credit: decimal.NewFromInt(250)}

		resp, err := f.handler.ClosePeriod(f.ctx(), &ClosePeriodRequest{PeriodID: f.period.ID.String()})
		require.NoError(t, err)
		assert.Equal(t, "250", resp.NetProfit)
		assert.NotEmpty(t, resp.ClosingJournalID)
		assert.Equal(t, 1, f.journals.closings)
	})

	t.Run("non-open period returns FailedPrecondition", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.periods.periods[0].Status = valueobject.PeriodStatusClosed
		_, err := f.handler.ClosePeriod(f.ctx(), &ClosePeriodRequest{PeriodID: f.period.ID.String()})
		requireGRPCCode(t, err, codes.FailedPrecondition)
	})
}

func TestLockPeriod(t *testing.T) {
	t.Run("open period returns FailedPrecondition", func(t *testing.T) {
		f := newHandlerFixture(t)
		_, err := f.handler.LockPeriod(f.ctx(), &LockPeriodRequest{PeriodID: f.period.ID.String()})
		requireGRPCCode(t, err, codes.FailedPrecondition)
		assert.Contains(t, err.Error(), apperr.CodeNotClosedYet)
	})

	t.Run("closed period locks", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.periods.periods[0].Status = valueobject.PeriodStatusClosed
		_, err := f.handler.LockPeriod(f.ctx(), &LockPeriodRequest{PeriodID: f.period.ID.String()})
		require.NoError(t, err)
		assert.Equal(t, valueobject.PeriodStatusLocked, f.periods.periods[0].Status)
	})
}

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"validation", apperr.Validation(apperr.CodeUnbalancedJournal, "x"), codes.InvalidArgument},
		{"not found", apperr.NotFound(apperr.CodeUnknownAccount, "x"), codes.NotFound},
		{"state", apperr.State(apperr.CodePeriodLocked, "x"), codes.FailedPrecondition},
		{"integrity", apperr.Integrity(apperr.CodeInUse, "x"), codes.FailedPrecondition},
		{"dependency", apperr.DependencyMissing(apperr.CodeRetainedEarningsMissing, "x"), codes.FailedPrecondition},
		{"opaque", context.DeadlineExceeded, codes.Internal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requireGRPCCode(t, statusFromError(tc.err), tc.want)
		})
	}
}

// requireGRPCCode asserts that an error is a gRPC status error with the given code.
func requireGRPCCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected a gRPC status error, got %v", err)
	require.Equal(t, code, st.Code(), "unexpected status code: %v", err)
}
