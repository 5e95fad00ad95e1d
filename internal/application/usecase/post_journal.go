package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tallyworks/tally/internal/application/dto"
	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/event"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
	"github.com/tallyworks/tally/internal/domain/valueobject"
	"github.com/tallyworks/tally/pkg/events"
)

// TopicLedger is the Kafka topic carrying ledger domain events.
const TopicLedger = "tally.ledger.events"

// PostJournal validates and stores a balanced double-entry posting.
type PostJournal struct {
	journals  port.JournalRepository
	accounts  port.AccountRepository
	taxRates  port.TaxRateRepository
	periods   port.PeriodRepository
	publisher events.EventPublisher
	logger    *slog.Logger

	// allowClosedPostings preserves the historical behavior of accepting
	// ordinary postings into closed (but not locked) periods.
	allowClosedPostings bool
}

func NewPostJournal(
	journals port.JournalRepository,
	accounts port.AccountRepository,
	taxRates port.TaxRateRepository,
	periods port.PeriodRepository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	allowClosedPostings bool,
) *PostJournal {
	return &PostJournal{
		journals:            journals,
		accounts:            accounts,
		taxRates:            taxRates,
		periods:             periods,
		publisher:           publisher,
		logger:              logger,
		allowClosedPostings: allowClosedPostings,
	}
}

func (uc *PostJournal) Execute(ctx context.Context, req dto.PostJournalRequest) (dto.JournalResponse, error) {
	if err := uc.validateReferences(ctx, req); err != nil {
		return dto.JournalResponse{}, err
	}

	lines := make([]model.JournalLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = model.JournalLine{
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			TaxRateID:   l.TaxRateID,
			Description: l.Description,
			Department:  l.Department,
		}
	}

	journal, err := model.NewJournal(req.TenantID, req.JournalDate, req.PeriodID, req.Memo,
		model.Provenance{Source: req.Source, SourceType: req.SourceType, SourceID: req.SourceID}, lines)
	if err != nil {
		return dto.JournalResponse{}, err
	}

	periodID, err := uc.resolvePeriod(ctx, req)
	if err != nil {
		return dto.JournalResponse{}, err
	}
	if periodID != nil {
		journal = journal.WithPeriod(*periodID)
	}
	journal = journal.Approve()

	if err := uc.journals.Create(ctx, journal); err != nil {
		return dto.JournalResponse{}, fmt.Errorf("store journal: %w", err)
	}

	// Event publication is a best-effort side channel; a broker outage must
	// not fail the posting.
	evt := event.NewJournalPosted(journal.ID(), journal.TenantID(), journal.JournalDate(), journal.Total(), len(journal.Lines()))
	if err := uc.publisher.Publish(ctx, TopicLedger, evt); err != nil {
		uc.logger.WarnContext(ctx, "journal posted event not published", "journal_id", journal.ID(), "error", err)
	}

	return toJournalResponse(journal), nil
}

func (uc *PostJournal) validateReferences(ctx context.Context, req dto.PostJournalRequest) error {
	if len(req.Lines) == 0 {
		return apperr.Validation(apperr.CodeZeroAmountJournal, "journal requires at least one line")
	}

	chart, err := uc.accounts.ListByTenant(ctx, req.TenantID)
	if err != nil {
		return fmt.Errorf("load chart of accounts: %w", err)
	}
	idx := model.NewAccountIndex(chart)

	var taxIDs []uuid.UUID
	seenTax := map[uuid.UUID]struct{}{}
	for _, l := range req.Lines {
		account, ok := idx.Get(l.AccountID)
		if !ok {
			return apperr.Validation(apperr.CodeUnknownAccount, "account %s does not exist", l.AccountID)
		}
		if !account.IsActive {
			return apperr.Validation(apperr.CodeInactiveAccount, "account %s (%s) is inactive", account.Code, account.Name)
		}
		if l.TaxRateID != nil {
			if _, seen := seenTax[*l.TaxRateID]; !seen {
				seenTax[*l.TaxRateID] = struct{}{}
				taxIDs = append(taxIDs, *l.TaxRateID)
			}
		}
	}

	if len(taxIDs) > 0 {
		missing, err := uc.taxRates.MissingIDs(ctx, req.TenantID, taxIDs)
		if err != nil {
			return fmt.Errorf("check tax rates: %w", err)
		}
		if len(missing) > 0 {
			return apperr.Validation(apperr.CodeUnknownTaxRate, "tax rate %s does not exist", missing[0])
		}
	}

	return nil
}

// resolvePeriod finds the period that should own the journal and enforces its
// posting policy. A journal dated outside every period posts without one.
func (uc *PostJournal) resolvePeriod(ctx context.Context, req dto.PostJournalRequest) (*uuid.UUID, error) {
	var period model.AccountingPeriod
	if req.PeriodID != nil {
		p, err := uc.periods.FindByID(ctx, req.TenantID, *req.PeriodID)
		if err != nil {
			return nil, err
		}
		period = p
	} else {
		p, found, err := uc.periods.FindByDate(ctx, req.TenantID, req.JournalDate)
		if err != nil {
			return nil, fmt.Errorf("resolve period: %w", err)
		}
		if !found {
			return nil, nil
		}
		period = p
	}

	if !period.Status.AcceptsPostings(uc.allowClosedPostings) {
		code := apperr.CodePeriodLocked
		if period.Status != valueobject.PeriodStatusLocked {
			code = apperr.CodePeriodClosed
		}
		return nil, apperr.State(code, "period %s is %s and does not accept postings", period.Name, period.Status)
	}

	id := period.ID
	return &id, nil
}

func toJournalResponse(j model.Journal) dto.JournalResponse {
	lines := make([]dto.JournalLineOutput, len(j.Lines()))
	for i, l := range j.Lines() {
		lines[i] = dto.JournalLineOutput{
			ID:          l.ID,
			LineNumber:  l.LineNumber,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			TaxRateID:   l.TaxRateID,
			Description: l.Description,
			Department:  l.Department,
		}
	}
	p := j.Provenance()
	return dto.JournalResponse{
		ID:          j.ID(),
		TenantID:    j.TenantID(),
		JournalDate: j.JournalDate(),
		PeriodID:    j.PeriodID(),
		Memo:        j.Memo(),
		Source:      p.Source,
		SourceType:  p.SourceType,
		SourceID:    p.SourceID,
		IsApproved:  j.IsApproved(),
		Total:       j.Total(),
		Lines:       lines,
		CreatedAt:   j.CreatedAt(),
	}
}
