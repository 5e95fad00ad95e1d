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

// LockPeriod makes a closed period permanently immutable.
type LockPeriod struct {
	periods   port.PeriodRepository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewLockPeriod(periods port.PeriodRepository, publisher events.EventPublisher, logger *slog.Logger) *LockPeriod {
	return &LockPeriod{periods: periods, publisher: publisher, logger: logger}
}

func (uc *LockPeriod) Execute(ctx context.Context, tenantID, periodID uuid.UUID) error {
	period, err := uc.periods.FindByID(ctx, tenantID, periodID)
	if err != nil {
		return err
	}
	if period.Status != valueobject.PeriodStatusClosed {
		return apperr.State(apperr.CodeNotClosedYet,
			"period %s is %s, only closed periods lock", period.Name, period.Status)
	}

	swapped, err := uc.periods.TransitionStatus(ctx, tenantID, periodID,
		valueobject.PeriodStatusClosed, valueobject.PeriodStatusLocked)
	if err != nil {
		return fmt.Errorf("transition period: %w", err)
	}
	if !swapped {
		return apperr.State(apperr.CodeNotClosedYet,
			"period %s changed status concurrently", period.Name)
	}

	evt := event.NewPeriodLocked(periodID, tenantID)
	if err := uc.publisher.Publish(ctx, TopicLedger, evt); err != nil {
		uc.logger.WarnContext(ctx, "period locked event not published", "period_id", periodID, "error", err)
	}

	return nil
}
