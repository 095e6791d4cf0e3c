package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mgirard/ledgerline/internal/audit"
	auditstore "github.com/mgirard/ledgerline/internal/audit/store"
	"github.com/mgirard/ledgerline/internal/fact"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectFactColumns = `
	id, tenant_id, source, external_id, kind, amount_minor, tax_minor, settled_minor,
	issue_date, period, category, supplier_version_id, account_version_id, product_version_id,
	needs_linking, status, raw_record_id, created_at, updated_at
`

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

// Load performs the existence-check-and-insert as one conditional
// statement backed by the natural-key unique constraint. Two concurrent
// deliveries of the same record cannot both insert.
func (s *Store) Load(ctx context.Context, f *fact.Fact) (fact.LoadResult, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fact.LoadResult{}, fmt.Errorf("beginning load tx: %w", err)
	}
	defer dbTx.Rollback()

	insert := `
		INSERT INTO financial_facts (
			tenant_id, source, external_id, kind, amount_minor, tax_minor, settled_minor,
			issue_date, period, category, supplier_version_id, account_version_id, product_version_id,
			needs_linking, status, raw_record_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
		ON CONFLICT (tenant_id, source, external_id) DO NOTHING
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, insert,
		f.TenantID, f.Source, f.ExternalID, f.Kind, f.AmountMinor, f.TaxMinor,
		f.IssueDate, f.Period, f.Category,
		f.SupplierVersionID, f.AccountVersionID, f.ProductVersionID,
		f.NeedsLinking, f.Status, f.RawRecordID,
	).Scan(&f.ID, &f.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// Natural key already present: report the existing fact, write
		// nothing further.
		existing, lookupErr := s.getByNaturalKey(ctx, dbTx, f.TenantID, f.Source, f.ExternalID)
		if lookupErr != nil {
			return fact.LoadResult{}, fmt.Errorf("resolving duplicate: %w", lookupErr)
		}

		return fact.LoadResult{Outcome: fact.OutcomeDuplicate, Fact: existing}, nil
	}

	if err != nil {
		return fact.LoadResult{}, fmt.Errorf("inserting fact: %w", err)
	}

	markRecord := `
		UPDATE staging_records
		SET status = 'INTEGRATED', fact_id = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3
	`

	if _, err := dbTx.ExecContext(ctx, markRecord, f.ID, f.TenantID, f.RawRecordID); err != nil {
		return fact.LoadResult{}, fmt.Errorf("marking record integrated: %w", err)
	}

	ev := audit.Transition(f.TenantID, audit.EntityFact, f.ID, nil, string(f.Status), audit.ActorPipeline)
	if err := auditstore.Append(ctx, dbTx, ev); err != nil {
		return fact.LoadResult{}, err
	}

	if err := dbTx.Commit(); err != nil {
		return fact.LoadResult{}, fmt.Errorf("committing load: %w", err)
	}

	return fact.LoadResult{Outcome: fact.OutcomeLoaded, Fact: f}, nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) getByNaturalKey(ctx context.Context, q querier, tenantID uuid.UUID, source, externalID string) (*fact.Fact, error) {
	query := `SELECT ` + selectFactColumns + `
		FROM financial_facts
		WHERE tenant_id = $1 AND source = $2 AND external_id = $3`

	f, err := scanFact(q.QueryRowContext(ctx, query, tenantID, source, externalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fact.ErrNotFound
		}

		return nil, fmt.Errorf("getting fact by natural key: %w", err)
	}

	return f, nil
}

func (s *Store) GetByNaturalKey(ctx context.Context, tenantID uuid.UUID, source, externalID string) (*fact.Fact, error) {
	return s.getByNaturalKey(ctx, s.db, tenantID, source, externalID)
}

func (s *Store) Get(ctx context.Context, tenantID, id uuid.UUID) (*fact.Fact, error) {
	query := `SELECT ` + selectFactColumns + `
		FROM financial_facts
		WHERE tenant_id = $1 AND id = $2`

	f, err := scanFact(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fact.ErrNotFound
		}

		return nil, fmt.Errorf("getting fact: %w", err)
	}

	return f, nil
}

// UpdateStatus transitions the workflow status and appends the audit
// event in the same transaction. A same-status update writes nothing.
func (s *Store) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, next fact.Status, actor string) (fact.Status, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning status tx: %w", err)
	}
	defer dbTx.Rollback()

	var prevStr string

	lock := `SELECT status FROM financial_facts WHERE tenant_id = $1 AND id = $2 FOR UPDATE`
	if err := dbTx.QueryRowContext(ctx, lock, tenantID, id).Scan(&prevStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fact.ErrNotFound
		}

		return "", fmt.Errorf("locking fact: %w", err)
	}

	previous := fact.Status(prevStr)
	if previous == next {
		return previous, nil
	}

	update := `UPDATE financial_facts SET status = $1, updated_at = NOW() WHERE tenant_id = $2 AND id = $3`
	if _, err := dbTx.ExecContext(ctx, update, next, tenantID, id); err != nil {
		return "", fmt.Errorf("updating status: %w", err)
	}

	ev := audit.Transition(tenantID, audit.EntityFact, id, &prevStr, string(next), actor)
	if err := auditstore.Append(ctx, dbTx, ev); err != nil {
		return "", err
	}

	if err := dbTx.Commit(); err != nil {
		return "", fmt.Errorf("committing status: %w", err)
	}

	return previous, nil
}
