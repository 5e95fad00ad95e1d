package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
	"github.com/tallyworks/tally/internal/domain/valueobject"
	pkgpostgres "github.com/tallyworks/tally/pkg/postgres"
)

// Compile-time interface check
var _ port.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implements AccountRepository using PostgreSQL.
type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

const accountColumns = `id, tenant_id, code, name, account_type, parent_id, sort_order, tax_category, is_active`

func (r *AccountRepo) Create(ctx context.Context, account model.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, tenant_id, code, name, account_type, parent_id, sort_order, tax_category, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, account.ID, account.TenantID, account.Code, account.Name, string(account.Type),
		account.ParentID, account.SortOrder, account.TaxCategory, account.IsActive)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepo) CreateBatch(ctx context.Context, accounts []model.Account) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for _, account := range accounts {
			_, err := tx.Exec(ctx, `
				INSERT INTO accounts (id, tenant_id, code, name, account_type, parent_id, sort_order, tax_category, is_active)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`, account.ID, account.TenantID, account.Code, account.Name, string(account.Type),
				account.ParentID, account.SortOrder, account.TaxCategory, account.IsActive)
			if err != nil {
				return fmt.Errorf("insert account %s: %w", account.Code, err)
			}
		}
		return nil
	})
}

func (r *AccountRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (model.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, apperr.NotFound(apperr.CodeUnknownAccount, "account %s not found", id)
		}
		return model.Account{}, fmt.Errorf("query account: %w", err)
	}
	return account, nil
}

func (r *AccountRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE tenant_id = $1 ORDER BY code
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *AccountRepo) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM accounts WHERE tenant_id = $1
	`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

func (r *AccountRepo) HasChildren(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE tenant_id = $1 AND parent_id = $2)
	`, tenantID, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check children: %w", err)
	}
	return exists, nil
}

func (r *AccountRepo) IsReferenced(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM journal_lines jl
			JOIN journals j ON j.id = jl.journal_id
			WHERE j.tenant_id = $1 AND jl.account_id = $2
		)
	`, tenantID, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check references: %w", err)
	}
	return exists, nil
}

func (r *AccountRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM accounts WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(apperr.CodeUnknownAccount, "account %s not found", id)
	}
	return nil
}

func (r *AccountRepo) FindRetainedEarnings(ctx context.Context, tenantID uuid.UUID) (model.Account, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE tenant_id = $1 AND account_type = 'equity' AND name ILIKE '%retained earnings%' AND is_active
		ORDER BY code LIMIT 1
	`, tenantID)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, false, nil
		}
		return model.Account{}, false, fmt.Errorf("query retained earnings: %w", err)
	}
	return account, true, nil
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var (
		account     model.Account
		accountType string
	)
	err := row.Scan(&account.ID, &account.TenantID, &account.Code, &account.Name,
		&accountType, &account.ParentID, &account.SortOrder, &account.TaxCategory, &account.IsActive)
	if err != nil {
		return model.Account{}, err
	}
	parsed, err := valueobject.ParseAccountType(accountType)
	if err != nil {
		return model.Account{}, fmt.Errorf("stored account type: %w", err)
	}
	account.Type = parsed
	return account, nil
}
