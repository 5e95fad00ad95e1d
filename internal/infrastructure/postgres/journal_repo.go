package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/internal/domain/event"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
	"github.com/tallyworks/tally/pkg/events"
	pkgpostgres "github.com/tallyworks/tally/pkg/postgres"
)

// Compile-time interface check
var _ port.JournalRepository = (*JournalRepo)(nil)

// JournalRepo implements JournalRepository using PostgreSQL. Header, lines and
// outbox rows commit in one transaction, so a header without lines is never
// observable.
type JournalRepo struct {
	pool *pgxpool.Pool
}

func NewJournalRepo(pool *pgxpool.Pool) *JournalRepo {
	return &JournalRepo{pool: pool}
}

func (r *JournalRepo) Create(ctx context.Context, journal model.Journal) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return insertJournal(ctx, tx, journal)
	})
}

func (r *JournalRepo) CreateClosing(ctx context.Context, journal model.Journal, periodID uuid.UUID) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := insertJournal(ctx, tx, journal); err != nil {
			return err
		}

		// The open -> closed transition rides in the same transaction as the
		// closing journal; losing the compare-and-swap rolls everything back.
		tag, err := tx.Exec(ctx, `
			UPDATE accounting_periods SET status = 'closed'
			WHERE tenant_id = $1 AND id = $2 AND status = 'open'
		`, journal.TenantID(), periodID)
		if err != nil {
			return fmt.Errorf("transition period status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.State(apperr.CodePeriodNotOpen,
				"period %s is no longer open", periodID)
		}
		return nil
	})
}

func insertJournal(ctx context.Context, tx pgx.Tx, journal model.Journal) error {
	p := journal.Provenance()
	_, err := tx.Exec(ctx, `
		INSERT INTO journals (id, tenant_id, journal_date, period_id, memo, source, source_type, source_id, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, journal.ID(), journal.TenantID(), journal.JournalDate(), journal.PeriodID(),
		journal.Memo(), p.Source, p.SourceType, p.SourceID, journal.IsApproved(), journal.CreatedAt())
	if err != nil {
		return fmt.Errorf("insert journal: %w", err)
	}

	for _, l := range journal.Lines() {
		_, err = tx.Exec(ctx, `
			INSERT INTO journal_lines (id, journal_id, line_number, account_id, debit, credit, tax_rate_id, description, department)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, l.ID, journal.ID(), l.LineNumber, l.AccountID, l.Debit, l.Credit,
			l.TaxRateID, l.Description, l.Department)
		if err != nil {
			return fmt.Errorf("insert journal line %d: %w", l.LineNumber, err)
		}
	}

	evt := event.NewJournalPosted(journal.ID(), journal.TenantID(),
		journal.JournalDate(), journal.Total(), len(journal.Lines()))
	return insertOutbox(ctx, tx, evt)
}

func insertOutbox(ctx context.Context, tx pgx.Tx, evt events.DomainEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal outbox event: %w", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO outbox (id, aggregate_id, aggregate_type, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, evt.EventID(), evt.AggregateID(), evt.AggregateType(), evt.EventType(), payload, evt.OccurredAt())
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

func (r *JournalRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (model.Journal, error) {
	var (
		journalID   uuid.UUID
		jTenantID   uuid.UUID
		journalDate time.Time
		periodID    *uuid.UUID
		memo        string
		provenance  model.Provenance
		isApproved  bool
		createdAt   time.Time
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, journal_date, period_id, memo, source, source_type, source_id, is_approved, created_at
		FROM journals WHERE tenant_id = $1 AND id = $2
	`, tenantID, id).Scan(&journalID, &jTenantID, &journalDate, &periodID, &memo,
		&provenance.Source, &provenance.SourceType, &provenance.SourceID, &isApproved, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Journal{}, apperr.NotFound(apperr.CodeUnknownJournal, "journal %s not found", id)
		}
		return model.Journal{}, fmt.Errorf("query journal: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, line_number, account_id, debit, credit, tax_rate_id, description, department
		FROM journal_lines WHERE journal_id = $1 ORDER BY line_number
	`, id)
	if err != nil {
		return model.Journal{}, fmt.Errorf("query journal lines: %w", err)
	}
	defer rows.Close()

	var lines []model.JournalLine
	for rows.Next() {
		var l model.JournalLine
		if err := rows.Scan(&l.ID, &l.LineNumber, &l.AccountID, &l.Debit, &l.Credit,
			&l.TaxRateID, &l.Description, &l.Department); err != nil {
			return model.Journal{}, fmt.Errorf("scan journal line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return model.Journal{}, err
	}

	return model.ReconstructJournal(journalID, jTenantID, journalDate, periodID,
		memo, provenance, isApproved, lines, createdAt), nil
}

func (r *JournalRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	// Lines cascade from the header delete.
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM journals WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete journal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(apperr.CodeUnknownJournal, "journal %s not found", id)
	}
	return nil
}
