package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mgirard/ledgerline/internal/staging"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectRecordColumns = `
	id, tenant_id, batch_id, kind, source, external_id,
	fields, confidence, status, violations, fact_id, error_note,
	created_at, updated_at
`

func scanRecord(s scanner) (*staging.RawRecord, error) {
	var rec staging.RawRecord

	var kindStr, statusStr string

	var fieldsJSON, confidenceJSON, violationsJSON []byte

	var errorNote sql.NullString

	if err := s.Scan(
		&rec.ID, &rec.TenantID, &rec.BatchID, &kindStr, &rec.Source, &rec.ExternalID,
		&fieldsJSON, &confidenceJSON, &statusStr, &violationsJSON, &rec.FactID, &errorNote,
		&rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rec.Kind = staging.Kind(kindStr)
	rec.Status = staging.Status(statusStr)
	rec.ErrorNote = errorNote.String

	if err := json.Unmarshal(fieldsJSON, &rec.Fields); err != nil {
		return nil, fmt.Errorf("decoding fields: %w", err)
	}

	if err := json.Unmarshal(confidenceJSON, &rec.Confidence); err != nil {
		return nil, fmt.Errorf("decoding confidence: %w", err)
	}

	if len(violationsJSON) > 0 {
		if err := json.Unmarshal(violationsJSON, &rec.Violations); err != nil {
			return nil, fmt.Errorf("decoding violations: %w", err)
		}
	}

	return &rec, nil
}

func (s *Store) InsertRecords(ctx context.Context, records []*staging.RawRecord) error {
	query := `
		INSERT INTO staging_records (tenant_id, batch_id, kind, source, external_id, fields, confidence, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning ingest tx: %w", err)
	}
	defer dbTx.Rollback()

	for _, rec := range records {
		fieldsJSON, err := json.Marshal(rec.Fields)
		if err != nil {
			return fmt.Errorf("encoding fields: %w", err)
		}

		confidenceJSON, err := json.Marshal(rec.Confidence)
		if err != nil {
			return fmt.Errorf("encoding confidence: %w", err)
		}

		err = dbTx.QueryRowContext(ctx, query,
			rec.TenantID, rec.BatchID, rec.Kind, rec.Source, rec.ExternalID,
			fieldsJSON, confidenceJSON, rec.Status,
		).Scan(&rec.ID, &rec.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting staged record %s: %w", rec.ExternalID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing ingest: %w", err)
	}

	return nil
}

func (s *Store) ListPending(ctx context.Context, tenantID, batchID uuid.UUID) ([]*staging.RawRecord, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM staging_records
		WHERE tenant_id = $1 AND batch_id = $2
		  AND status NOT IN ('INTEGRATED', 'DUPLICATE', 'REJECTED')
		ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, tenantID, batchID)
	if err != nil {
		return nil, fmt.Errorf("listing pending records: %w", err)
	}
	defer rows.Close()

	var records []*staging.RawRecord

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning staged record: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating staged records: %w", err)
	}

	return records, nil
}

func (s *Store) SetValidation(ctx context.Context, tenantID, recordID uuid.UUID, status staging.Status, violations []staging.Violation) error {
	violationsJSON, err := json.Marshal(violations)
	if err != nil {
		return fmt.Errorf("encoding violations: %w", err)
	}

	query := `
		UPDATE staging_records
		SET status = $1, violations = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4
	`

	res, err := s.db.ExecContext(ctx, query, status, violationsJSON, tenantID, recordID)
	if err != nil {
		return fmt.Errorf("setting validation: %w", err)
	}

	return mustAffectOne(res)
}

func (s *Store) MarkError(ctx context.Context, tenantID, recordID uuid.UUID, status staging.Status, note string) error {
	query := `
		UPDATE staging_records
		SET status = $1, error_note = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4
	`

	res, err := s.db.ExecContext(ctx, query, status, note, tenantID, recordID)
	if err != nil {
		return fmt.Errorf("marking record error: %w", err)
	}

	return mustAffectOne(res)
}

func (s *Store) Report(ctx context.Context, tenantID, batchID uuid.UUID) ([]staging.ReportEntry, error) {
	query := `
		SELECT id, external_id, status, violations, error_note
		FROM staging_records
		WHERE tenant_id = $1 AND batch_id = $2
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, tenantID, batchID)
	if err != nil {
		return nil, fmt.Errorf("loading batch report: %w", err)
	}
	defer rows.Close()

	var entries []staging.ReportEntry

	for rows.Next() {
		var entry staging.ReportEntry

		var statusStr string

		var violationsJSON []byte

		var errorNote sql.NullString

		if err := rows.Scan(&entry.RecordID, &entry.ExternalID, &statusStr, &violationsJSON, &errorNote); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}

		entry.Status = staging.Status(statusStr)
		entry.ErrorNote = errorNote.String

		if len(violationsJSON) > 0 {
			if err := json.Unmarshal(violationsJSON, &entry.Violations); err != nil {
				return nil, fmt.Errorf("decoding violations: %w", err)
			}
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report rows: %w", err)
	}

	return entries, nil
}

func mustAffectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}

	if n == 0 {
		return staging.ErrNotFound
	}

	return nil
}
