package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mgirard/ledgerline/internal/audit"
	auditstore "github.com/mgirard/ledgerline/internal/audit/store"
	"github.com/mgirard/ledgerline/internal/fact"
	"github.com/mgirard/ledgerline/internal/reconcile"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func wrapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return fmt.Errorf("%w: %s", reconcile.ErrConflict, pgErr.Code)
		}
	}

	return err
}

const selectFactColumns = `
	id, tenant_id, source, external_id, kind, amount_minor, tax_minor, settled_minor,
	issue_date, period, category, supplier_version_id, account_version_id, product_version_id,
	needs_linking, status, raw_record_id, created_at, updated_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanFact(s scanner) (*fact.Fact, error) {
	var f fact.Fact

	var kindStr, statusStr string

	if err := s.Scan(
		&f.ID, &f.TenantID, &f.Source, &f.ExternalID, &kindStr,
		&f.AmountMinor, &f.TaxMinor, &f.SettledMinor,
		&f.IssueDate, &f.Period, &f.Category,
		&f.SupplierVersionID, &f.AccountVersionID, &f.ProductVersionID,
		&f.NeedsLinking, &statusStr, &f.RawRecordID,
		&f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}

	f.Kind = fact.Kind(kindStr)
	f.Status = fact.Status(statusStr)

	return &f, nil
}

func (s *Store) GetMovement(ctx context.Context, tenantID, movementID uuid.UUID) (*fact.Fact, error) {
	query := `SELECT ` + selectFactColumns + `
		FROM financial_facts
		WHERE tenant_id = $1 AND id = $2 AND kind = 'movement'`

	f, err := scanFact(s.db.QueryRowContext(ctx, query, tenantID, movementID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reconcile.ErrNotFound
		}

		return nil, fmt.Errorf("getting movement: %w", err)
	}

	return f, nil
}

func (s *Store) GetLink(ctx context.Context, tenantID, linkID uuid.UUID) (*reconcile.Link, error) {
	query := `
		SELECT id, tenant_id, movement_id, document_id, allocated_minor, created_at
		FROM reconciliation_links
		WHERE tenant_id = $1 AND id = $2
	`

	var l reconcile.Link

	err := s.db.QueryRowContext(ctx, query, tenantID, linkID).
		Scan(&l.ID, &l.TenantID, &l.MovementID, &l.DocumentID, &l.AllocatedMinor, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reconcile.ErrNotFound
		}

		return nil, fmt.Errorf("getting link: %w", err)
	}

	return &l, nil
}

func (s *Store) MovementAllocated(ctx context.Context, tenantID, movementID uuid.UUID) (int64, error) {
	return movementAllocated(ctx, s.db, tenantID, movementID)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func movementAllocated(ctx context.Context, q querier, tenantID, movementID uuid.UUID) (int64, error) {
	query := `
		SELECT COALESCE(SUM(allocated_minor), 0)
		FROM reconciliation_links
		WHERE tenant_id = $1 AND movement_id = $2
	`

	var sum int64
	if err := q.QueryRowContext(ctx, query, tenantID, movementID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("summing movement allocations: %w", wrapConflict(err))
	}

	return sum, nil
}

func (s *Store) CandidateDocuments(ctx context.Context, tenantID uuid.UUID) ([]*fact.Fact, error) {
	query := `SELECT ` + selectFactColumns + `
		FROM financial_facts
		WHERE tenant_id = $1
		  AND kind IN ('invoice', 'payment')
		  AND status IN ('PENDING', 'PARTIALLY_SETTLED')
		  AND amount_minor - settled_minor > 0
		ORDER BY issue_date ASC, external_id ASC`

	rows, err := s.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing candidate documents: %w", err)
	}
	defer rows.Close()

	var docs []*fact.Fact

	for rows.Next() {
		f, err := scanFact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		docs = append(docs, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

type matchTx struct {
	tx         *sql.Tx
	tenantID   uuid.UUID
	movementID uuid.UUID
	documentID uuid.UUID
}

// BeginMatch locks the movement and document rows in id order, so two
// confirms touching the same pair cannot deadlock and cannot interleave.
func (s *Store) BeginMatch(ctx context.Context, tenantID, movementID, documentID uuid.UUID) (reconcile.MatchTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning match tx: %w", err)
	}

	lock := `
		SELECT id FROM financial_facts
		WHERE tenant_id = $1 AND id IN ($2, $3)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := dbTx.QueryContext(ctx, lock, tenantID, movementID, documentID)
	if err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("locking match rows: %w", wrapConflict(err))
	}

	var locked int
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			dbTx.Rollback()

			return nil, fmt.Errorf("scanning lock row: %w", err)
		}

		locked++
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("iterating lock rows: %w", wrapConflict(err))
	}

	if locked != 2 {
		dbTx.Rollback()
		return nil, reconcile.ErrNotFound
	}

	return &matchTx{tx: dbTx, tenantID: tenantID, movementID: movementID, documentID: documentID}, nil
}

func (m *matchTx) Commit() error   { return wrapConflict(m.tx.Commit()) }
func (m *matchTx) Rollback() error { return m.tx.Rollback() }

func (m *matchTx) get(ctx context.Context, id uuid.UUID) (*fact.Fact, error) {
	query := `SELECT ` + selectFactColumns + ` FROM financial_facts WHERE tenant_id = $1 AND id = $2`

	f, err := scanFact(m.tx.QueryRowContext(ctx, query, m.tenantID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reconcile.ErrNotFound
		}

		return nil, fmt.Errorf("getting fact: %w", wrapConflict(err))
	}

	return f, nil
}

func (m *matchTx) Movement(ctx context.Context) (*fact.Fact, error) {
	return m.get(ctx, m.movementID)
}

func (m *matchTx) Document(ctx context.Context) (*fact.Fact, error) {
	return m.get(ctx, m.documentID)
}

func (m *matchTx) MovementAllocated(ctx context.Context) (int64, error) {
	return movementAllocated(ctx, m.tx, m.tenantID, m.movementID)
}

func (m *matchTx) InsertLink(ctx context.Context, l *reconcile.Link) error {
	query := `
		INSERT INTO reconciliation_links (tenant_id, movement_id, document_id, allocated_minor, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := m.tx.QueryRowContext(ctx, query, l.TenantID, l.MovementID, l.DocumentID, l.AllocatedMinor).
		Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting link: %w", wrapConflict(err))
	}

	return nil
}

func (m *matchTx) DeleteLink(ctx context.Context, linkID uuid.UUID) error {
	query := `DELETE FROM reconciliation_links WHERE tenant_id = $1 AND id = $2`

	res, err := m.tx.ExecContext(ctx, query, m.tenantID, linkID)
	if err != nil {
		return fmt.Errorf("deleting link: %w", wrapConflict(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}

	if n == 0 {
		return reconcile.ErrNotFound
	}

	return nil
}

// RecomputeSettled re-derives the document's settled amount as the full
// sum over its links.
func (m *matchTx) RecomputeSettled(ctx context.Context) (int64, error) {
	query := `
		UPDATE financial_facts
		SET settled_minor = (
			SELECT COALESCE(SUM(allocated_minor), 0)
			FROM reconciliation_links
			WHERE tenant_id = $1 AND document_id = $2
		), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING settled_minor
	`

	var settled int64
	if err := m.tx.QueryRowContext(ctx, query, m.tenantID, m.documentID).Scan(&settled); err != nil {
		return 0, fmt.Errorf("recomputing settled amount: %w", wrapConflict(err))
	}

	return settled, nil
}

func (m *matchTx) SetStatus(ctx context.Context, entity audit.EntityType, id uuid.UUID, previous, next fact.Status, actor string) error {
	query := `UPDATE financial_facts SET status = $1, updated_at = NOW() WHERE tenant_id = $2 AND id = $3`

	if _, err := m.tx.ExecContext(ctx, query, next, m.tenantID, id); err != nil {
		return fmt.Errorf("updating status: %w", wrapConflict(err))
	}

	prev := string(previous)

	return auditstore.Append(ctx, m.tx, audit.Transition(m.tenantID, entity, id, &prev, string(next), actor))
}
