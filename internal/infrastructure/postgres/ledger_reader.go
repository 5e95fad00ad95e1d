package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

// Compile-time interface check
var _ port.LedgerReader = (*LedgerReader)(nil)

// LedgerReader serves the balance engine's aggregate reads over journal lines.
// Each method answers from a single query so a report's rows are internally
// consistent.
type LedgerReader struct {
	pool *pgxpool.Pool
}

func NewLedgerReader(pool *pgxpool.Pool) *LedgerReader {
	return &LedgerReader{pool: pool}
}

func (r *LedgerReader) SumMovements(ctx context.Context, tenantID uuid.UUID, accountIDs []uuid.UUID, dr valueobject.DateRange) (map[uuid.UUID]valueobject.Movement, error) {
	if len(accountIDs) == 0 {
		return map[uuid.UUID]valueobject.Movement{}, nil
	}

	query := strings.Builder{}
	query.WriteString(`
		SELECT jl.account_id, COALESCE(SUM(jl.debit), 0), COALESCE(SUM(jl.credit), 0)
		FROM journal_lines jl
		JOIN journals j ON j.id = jl.journal_id
		WHERE j.tenant_id = $1 AND jl.account_id = ANY($2)`)
	args := []any{tenantID, accountIDs}
	appendRangeFilter(&query, &args, dr)
	query.WriteString(` GROUP BY jl.account_id`)

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]valueobject.Movement)
	for rows.Next() {
		var (
			accountID uuid.UUID
			m         valueobject.Movement
		)
		if err := rows.Scan(&accountID, &m.Debit, &m.Credit); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out[accountID] = m
	}
	return out, rows.Err()
}

func (r *LedgerReader) ListPostedLines(ctx context.Context, tenantID, accountID uuid.UUID, dr valueobject.DateRange) ([]model.PostedLine, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT j.id, j.journal_date, j.memo, jl.line_number, jl.account_id, jl.debit, jl.credit, jl.description
		FROM journal_lines jl
		JOIN journals j ON j.id = jl.journal_id
		WHERE j.tenant_id = $1 AND jl.account_id = $2`)
	args := []any{tenantID, accountID}
	appendRangeFilter(&query, &args, dr)
	query.WriteString(` ORDER BY j.journal_date, j.created_at, jl.line_number`)

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query posted lines: %w", err)
	}
	defer rows.Close()

	var lines []model.PostedLine
	for rows.Next() {
		var l model.PostedLine
		if err := rows.Scan(&l.JournalID, &l.JournalDate, &l.Memo, &l.LineNumber,
			&l.AccountID, &l.Debit, &l.Credit, &l.Description); err != nil {
			return nil, fmt.Errorf("scan posted line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *LedgerReader) ListTaxLines(ctx context.Context, tenantID uuid.UUID, dr valueobject.DateRange) ([]model.TaxLine, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT tr.id, tr.name, tr.rate, a.account_type, jl.debit, jl.credit
		FROM journal_lines jl
		JOIN journals j ON j.id = jl.journal_id
		JOIN tax_rates tr ON tr.id = jl.tax_rate_id
		JOIN accounts a ON a.id = jl.account_id
		WHERE j.tenant_id = $1 AND jl.tax_rate_id IS NOT NULL`)
	args := []any{tenantID}
	appendRangeFilter(&query, &args, dr)

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query tax lines: %w", err)
	}
	defer rows.Close()

	var lines []model.TaxLine
	for rows.Next() {
		var (
			l           model.TaxLine
			accountType string
		)
		if err := rows.Scan(&l.TaxRateID, &l.RateName, &l.Rate, &accountType, &l.Debit, &l.Credit); err != nil {
			return nil, fmt.Errorf("scan tax line: %w", err)
		}
		parsed, err := valueobject.ParseAccountType(accountType)
		if err != nil {
			return nil, fmt.Errorf("stored account type: %w", err)
		}
		l.AccountType = parsed
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// appendRangeFilter adds journal-date bounds to a query for the non-nil ends
// of the range.
func appendRangeFilter(query *strings.Builder, args *[]any, dr valueobject.DateRange) {
	if dr.From != nil {
		*args = append(*args, *dr.From)
		fmt.Fprintf(query, " AND j.journal_date >= $%d", len(*args))
	}
	if dr.To != nil {
		*args = append(*args, *dr.To)
		fmt.Fprintf(query, " AND j.journal_date <= $%d", len(*args))
	}
}
