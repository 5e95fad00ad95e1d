package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tallyworks/tally/internal/application/dto"
	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
)

// ManagePeriod covers the provisioning side of the period lifecycle: creating
// new posting windows and deleting ones never posted into.
type ManagePeriod struct {
	periods port.PeriodRepository
}

func NewManagePeriod(periods port.PeriodRepository) *ManagePeriod {
	return &ManagePeriod{periods: periods}
}

// Create validates the date window against existing periods and persists a new
// open period.
func (uc *ManagePeriod) Create(ctx context.Context, req dto.CreatePeriodRequest) (model.AccountingPeriod, error) {
	period, err := model.NewAccountingPeriod(req.TenantID, req.Name, req.StartDate, req.EndDate, req.FiscalYear)
	if err != nil {
		return model.AccountingPeriod{}, err
	}

	overlaps, err := uc.periods.Overlaps(ctx, req.TenantID, req.StartDate, req.EndDate)
	if err != nil {
		return model.AccountingPeriod{}, fmt.Errorf("check overlap: %w", err)
	}
	if overlaps {
		return model.AccountingPeriod{}, apperr.Validation(apperr.CodeOverlappingPeriod,
			"period %s overlaps an existing period", req.Name)
	}

	if err := uc.periods.Create(ctx, period); err != nil {
		return model.AccountingPeriod{}, fmt.Errorf("store period: %w", err)
	}
	return period, nil
}

// Get retrieves one period.
func (uc *ManagePeriod) Get(ctx context.Context, tenantID, periodID uuid.UUID) (model.AccountingPeriod, error) {
	return uc.periods.FindByID(ctx, tenantID, periodID)
}

// Delete removes a period that no journal references.
func (uc *ManagePeriod) Delete(ctx context.Context, tenantID, periodID uuid.UUID) error {
	if _, err := uc.periods.FindByID(ctx, tenantID, periodID); err != nil {
		return err
	}

	has, err := uc.periods.HasJournals(ctx, tenantID, periodID)
	if err != nil {
		return fmt.Errorf("check journals: %w", err)
	}
	if has {
		return apperr.Integrity(apperr.CodePeriodHasJournals,
			"period %s has journals posted into it", periodID)
	}

	return uc.periods.Delete(ctx, tenantID, periodID)
}
