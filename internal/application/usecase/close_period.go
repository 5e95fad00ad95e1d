package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tallyworks/tally/internal/application/dto"
	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/event"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
	"github.com/tallyworks/tally/internal/domain/service"
	"github.com/tallyworks/tally/internal/domain/valueobject"
	"github.com/tallyworks/tally/pkg/events"
)

// ClosePeriod runs the period-close procedure: it zeroes every revenue and
// expense balance of the period with a synthesized closing journal, carries
// the net result into retained earnings, and transitions the period from open
// to closed. The closing journal insert and the status transition commit in
// one transaction, so concurrent closes serialize with a single winner.
type ClosePeriod struct {
	accounts  port.AccountRepository
	periods   port.PeriodRepository
	journals  port.JournalRepository
	engine    *BalanceEngine
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewClosePeriod(
	accounts port.AccountRepository,
	periods port.PeriodRepository,
	journals port.JournalRepository,
	engine *BalanceEngine,
	publisher events.EventPublisher,
	logger *slog.Logger,
) *ClosePeriod {
	return &ClosePeriod{
		accounts:  accounts,
		periods:   periods,
		journals:  journals,
		engine:    engine,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *ClosePeriod) Execute(ctx context.Context, req dto.ClosePeriodRequest) (dto.ClosePeriodResponse, error) {
	period, err := uc.periods.FindByID(ctx, req.TenantID, req.PeriodID)
	if err != nil {
		return dto.ClosePeriodResponse{}, err
	}
	if period.Status != valueobject.PeriodStatusOpen {
		return dto.ClosePeriodResponse{}, apperr.State(apperr.CodePeriodNotOpen,
			"period %s is %s, only open periods close", period.Name, period.Status)
	}

	chart, err := uc.accounts.ListByTenant(ctx, req.TenantID)
	if err != nil {
		return dto.ClosePeriodResponse{}, fmt.Errorf("load chart of accounts: %w", err)
	}
	temporary := make([]model.Account, 0, len(chart))
	for _, a := range chart {
		if a.IsActive && a.Type.IsTemporary() {
			temporary = append(temporary, a)
		}
	}
	if len(temporary) == 0 {
		return dto.ClosePeriodResponse{}, apperr.DependencyMissing(apperr.CodeNoTemporaryAccounts,
			"tenant has no revenue or expense accounts to close")
	}

	movements, err := uc.engine.Movements(ctx, req.TenantID, temporary, period.Range())
	if err != nil {
		return dto.ClosePeriodResponse{}, err
	}
	balances := make([]service.TemporaryBalance, len(temporary))
	for i, a := range temporary {
		balances[i] = service.TemporaryBalance{Account: a, Balance: movements[a.ID].Signed(a.Type)}
	}

	retained, found, err := uc.accounts.FindRetainedEarnings(ctx, req.TenantID)
	if err != nil {
		return dto.ClosePeriodResponse{}, fmt.Errorf("resolve retained earnings: %w", err)
	}
	if !found {
		return dto.ClosePeriodResponse{}, apperr.DependencyMissing(apperr.CodeRetainedEarningsMissing,
			"no retained earnings equity account configured")
	}

	entry, err := service.SynthesizeClosingEntry(balances, retained)
	if err != nil {
		return dto.ClosePeriodResponse{}, err
	}

	resp := dto.ClosePeriodResponse{PeriodID: period.ID, NetProfit: entry.NetProfit}

	if len(entry.Lines) == 0 {
		// Every temporary balance was already zero; close without a journal.
		swapped, err := uc.periods.TransitionStatus(ctx, req.TenantID, period.ID,
			valueobject.PeriodStatusOpen, valueobject.PeriodStatusClosed)
		if err != nil {
			return dto.ClosePeriodResponse{}, fmt.Errorf("transition period: %w", err)
		}
		if !swapped {
			return dto.ClosePeriodResponse{}, apperr.State(apperr.CodePeriodNotOpen,
				"period %s was closed concurrently", period.Name)
		}
	} else {
		closingDate := req.ClosingDate
		if closingDate.IsZero() {
			closingDate = period.EndDate
		}
		journal, err := model.NewJournal(req.TenantID, closingDate, &period.ID,
			fmt.Sprintf("Closing entry for %s", period.Name),
			model.Provenance{Source: "system", SourceType: "period_close", SourceID: period.ID.String()},
			entry.Lines)
		if err != nil {
			return dto.ClosePeriodResponse{}, fmt.Errorf("build closing journal: %w", err)
		}
		journal = journal.Approve()

		if err := uc.journals.CreateClosing(ctx, journal, period.ID); err != nil {
			return dto.ClosePeriodResponse{}, err
		}
		id := journal.ID()
		resp.ClosingJournalID = &id
	}

	closingID := ""
	if resp.ClosingJournalID != nil {
		closingID = resp.ClosingJournalID.String()
	}
	evt := event.NewPeriodClosed(period.ID, req.TenantID, closingID, entry.NetProfit)
	if err := uc.publisher.Publish(ctx, TopicLedger, evt); err != nil {
		uc.logger.WarnContext(ctx, "period closed event not published", "period_id", period.ID, "error", err)
	}

	return resp, nil
}
