package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/tallyworks/tally/internal/application/dto"
	"github.com/tallyworks/tally/internal/domain/port"
)

// GetJournal retrieves a journal with its lines.
type GetJournal struct {
	journals port.JournalRepository
}

func NewGetJournal(journals port.JournalRepository) *GetJournal {
	return &GetJournal{journals: journals}
}

func (uc *GetJournal) Execute(ctx context.Context, tenantID, journalID uuid.UUID) (dto.JournalResponse, error) {
	journal, err := uc.journals.FindByID(ctx, tenantID, journalID)
	if err != nil {
		return dto.JournalResponse{}, err
	}
	return toJournalResponse(journal), nil
}
