package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/event"
	"github.com/tallyworks/tally/internal/domain/port"
	"github.com/tallyworks/tally/internal/domain/valueobject"
	"github.com/tallyworks/tally/pkg/events"
)

// DeleteJournal removes a journal and its lines unless the owning period is
// locked.
type DeleteJournal struct {
	journals  port.JournalRepository
	periods   port.PeriodRepository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewDeleteJournal(journals port.JournalRepository, periods port.PeriodRepository, publisher events.EventPublisher, logger *slog.Logger) *DeleteJournal {
	return &DeleteJournal{journals: journals, periods: periods, publisher: publisher, logger: logger}
}

func (uc *DeleteJournal) Execute(ctx context.Context, tenantID, journalID uuid.UUID) error {
	journal, err := uc.journals.FindByID(ctx, tenantID, journalID)
	if err != nil {
		return err
	}

	if pid := journal.PeriodID(); pid != nil {
		period, err := uc.periods.FindByID(ctx, tenantID, *pid)
		if err != nil {
			return fmt.Errorf("load owning period: %w", err)
		}
		if period.Status == valueobject.PeriodStatusLocked {
			return apperr.State(apperr.CodePeriodLocked,
				"journal %s belongs to locked period %s", journalID, period.Name)
		}
	}

	if err := uc.journals.Delete(ctx, tenantID, journalID); err != nil {
		return fmt.Errorf("delete journal: %w", err)
	}

	evt := event.NewJournalDeleted(journalID, tenantID)
	if err := uc.publisher.Publish(ctx, TopicLedger, evt); err != nil {
		uc.logger.WarnContext(ctx, "journal deleted event not published", "journal_id", journalID, "error", err)
	}

	return nil
}
