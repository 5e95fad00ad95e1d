package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
)

// Compile-time interface check
var _ port.TaxRateRepository = (*TaxRateRepo)(nil)

// TaxRateRepo implements TaxRateRepository using PostgreSQL.
type TaxRateRepo struct {
	pool *pgxpool.Pool
}

func NewTaxRateRepo(pool *pgxpool.Pool) *TaxRateRepo {
	return &TaxRateRepo{pool: pool}
}

func (r *TaxRateRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.TaxRate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, name, rate, category FROM tax_rates
		WHERE tenant_id = $1 ORDER BY name
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query tax rates: %w", err)
	}
	defer rows.Close()

	var rates []model.TaxRate
	for rows.Next() {
		var rate model.TaxRate
		if err := rows.Scan(&rate.ID, &rate.TenantID, &rate.Name, &rate.Rate, &rate.Category); err != nil {
			return nil, fmt.Errorf("scan tax rate: %w", err)
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}

func (r *TaxRateRepo) MissingIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id FROM tax_rates WHERE tenant_id = $1 AND id = ANY($2)
	`, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("query tax rate ids: %w", err)
	}
	defer rows.Close()

	known := make(map[uuid.UUID]struct{}, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tax rate id: %w", err)
		}
		known[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
