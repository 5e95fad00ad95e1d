package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

// Compile-time interface check
var _ port.PeriodRepository = (*PeriodRepo)(nil)

// PeriodRepo implements PeriodRepository using PostgreSQL.
type PeriodRepo struct {
	pool *pgxpool.Pool
}

func NewPeriodRepo(pool *pgxpool.Pool) *PeriodRepo {
	return &PeriodRepo{pool: pool}
}

const periodColumns = `id, tenant_id, name, start_date, end_date, status, fiscal_year`

func (r *PeriodRepo) Create(ctx context.Context, period model.AccountingPeriod) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounting_periods (id, tenant_id, name, start_date, end_date, status, fiscal_year)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, period.ID, period.TenantID, period.Name, period.StartDate, period.EndDate,
		string(period.Status), period.FiscalYear)
	if err != nil {
		return fmt.Errorf("insert period: %w", err)
	}
	return nil
}

func (r *PeriodRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (model.AccountingPeriod, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+periodColumns+` FROM accounting_periods WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)
	period, err := scanPeriod(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AccountingPeriod{}, apperr.NotFound(apperr.CodeUnknownPeriod, "period %s not found", id)
		}
		return model.AccountingPeriod{}, fmt.Errorf("query period: %w", err)
	}
	return period, nil
}

func (r *PeriodRepo) FindByDate(ctx context.Context, tenantID uuid.UUID, date time.Time) (model.AccountingPeriod, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+periodColumns+` FROM accounting_periods
		WHERE tenant_id = $1 AND start_date <= $2 AND end_date >= $2
	`, tenantID, date)
	period, err := scanPeriod(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AccountingPeriod{}, false, nil
		}
		return model.AccountingPeriod{}, false, fmt.Errorf("query period by date: %w", err)
	}
	return period, true, nil
}

func (r *PeriodRepo) Overlaps(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM accounting_periods
			WHERE tenant_id = $1 AND start_date <= $3 AND end_date >= $2
		)
	`, tenantID, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check overlap: %w", err)
	}
	return exists, nil
}

func (r *PeriodRepo) TransitionStatus(ctx context.Context, tenantID, id uuid.UUID, from, to valueobject.PeriodStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounting_periods SET status = $4
		WHERE tenant_id = $1 AND id = $2 AND status = $3
	`, tenantID, id, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("transition period status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PeriodRepo) HasJournals(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM journals WHERE tenant_id = $1 AND period_id = $2)
	`, tenantID, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check period journals: %w", err)
	}
	return exists, nil
}

func (r *PeriodRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM accounting_periods WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(apperr.CodeUnknownPeriod, "period %s not found", id)
	}
	return nil
}

func scanPeriod(row pgx.Row) (model.AccountingPeriod, error) {
	var (
		period model.AccountingPeriod
		status string
	)
	err := row.Scan(&period.ID, &period.TenantID, &period.Name, &period.StartDate,
		&period.EndDate, &status, &period.FiscalYear)
	if err != nil {
		return model.AccountingPeriod{}, err
	}
	parsed, err := valueobject.ParsePeriodStatus(status)
	if err != nil {
		return model.AccountingPeriod{}, fmt.Errorf("stored period status: %w", err)
	}
	period.Status = parsed
	return period, nil
}
