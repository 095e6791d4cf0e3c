package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mgirard/ledgerline/internal/dimension"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// versionLockKey derives the advisory lock key serializing SCD2
// transitions per (tenant, kind, business key).
func versionLockKey(tenantID uuid.UUID, kind dimension.Kind, businessKey string) int64 {
	h := fnv.New64a()
	h.Write(tenantID[:])
	h.Write([]byte{0})
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(businessKey))

	return int64(h.Sum64())
}

// wrapConflict maps Postgres lock and serialization failures onto the
// retryable domain error.
func wrapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return fmt.Errorf("%w: %s", dimension.ErrConflict, pgErr.Code)
		}
	}

	return err
}

type scanner interface {
	Scan(dest ...any) error
}

const selectVersionColumns = `
	id, tenant_id, kind, business_key, attrs, valid_from, valid_to, is_current, created_at
`

func scanVersion(s scanner) (*dimension.Version, error) {
	var v dimension.Version

	var kindStr string

	var attrsJSON []byte

	var validTo sql.NullTime

	if err := s.Scan(
		&v.ID, &v.TenantID, &kindStr, &v.BusinessKey, &attrsJSON,
		&v.ValidFrom, &validTo, &v.Current, &v.CreatedAt,
	); err != nil {
		return nil, err
	}

	v.Kind = dimension.Kind(kindStr)

	if validTo.Valid {
		t := validTo.Time
		v.ValidTo = &t
	}

	if err := json.Unmarshal(attrsJSON, &v.Attrs); err != nil {
		return nil, fmt.Errorf("decoding attrs: %w", err)
	}

	return &v, nil
}

type upsertTx struct {
	tx          *sql.Tx
	tenantID    uuid.UUID
	kind        dimension.Kind
	businessKey string
}

func (s *Store) BeginUpsert(ctx context.Context, tenantID uuid.UUID, kind dimension.Kind, businessKey string) (dimension.UpsertTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning version tx: %w", err)
	}

	lockKey := versionLockKey(tenantID, kind, businessKey)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring version lock: %w", wrapConflict(err))
	}

	return &upsertTx{tx: dbTx, tenantID: tenantID, kind: kind, businessKey: businessKey}, nil
}

func (u *upsertTx) Commit() error   { return wrapConflict(u.tx.Commit()) }
func (u *upsertTx) Rollback() error { return u.tx.Rollback() }

func (u *upsertTx) Current(ctx context.Context) (*dimension.Version, error) {
	query := `SELECT ` + selectVersionColumns + `
		FROM dimension_versions
		WHERE tenant_id = $1 AND kind = $2 AND business_key = $3 AND is_current
		FOR UPDATE`

	v, err := scanVersion(u.tx.QueryRowContext(ctx, query, u.tenantID, u.kind, u.businessKey))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dimension.ErrNotFound
		}

		return nil, fmt.Errorf("selecting current version: %w", wrapConflict(err))
	}

	return v, nil
}

func (u *upsertTx) Close(ctx context.Context, versionID uuid.UUID, validTo time.Time) error {
	query := `
		UPDATE dimension_versions
		SET valid_to = $1, is_current = FALSE
		WHERE id = $2 AND is_current
	`

	res, err := u.tx.ExecContext(ctx, query, validTo, versionID)
	if err != nil {
		return fmt.Errorf("closing version: %w", wrapConflict(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}

	if n == 0 {
		// The version was closed underneath us despite the lock.
		return dimension.ErrConflict
	}

	return nil
}

func (u *upsertTx) Replace(ctx context.Context, versionID uuid.UUID, attrs map[string]string) error {
	attrsJSON, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("encoding attrs: %w", err)
	}

	query := `
		UPDATE dimension_versions
		SET attrs = $1
		WHERE id = $2 AND is_current
	`

	res, err := u.tx.ExecContext(ctx, query, attrsJSON, versionID)
	if err != nil {
		return fmt.Errorf("replacing version attrs: %w", wrapConflict(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}

	if n == 0 {
		return dimension.ErrConflict
	}

	return nil
}

func (u *upsertTx) Insert(ctx context.Context, v *dimension.Version) error {
	attrsJSON, err := json.Marshal(v.Attrs)
	if err != nil {
		return fmt.Errorf("encoding attrs: %w", err)
	}

	query := `
		INSERT INTO dimension_versions (tenant_id, kind, business_key, attrs, valid_from, valid_to, is_current, created_at)
		VALUES ($1, $2, $3, $4, $5, NULL, TRUE, NOW())
		RETURNING id, created_at
	`

	err = u.tx.QueryRowContext(ctx, query,
		v.TenantID, v.Kind, v.BusinessKey, attrsJSON, v.ValidFrom,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting version: %w", wrapConflict(err))
	}

	return nil
}

func (s *Store) CurrentVersion(ctx context.Context, tenantID uuid.UUID, kind dimension.Kind, businessKey string, asOf *time.Time) (*dimension.Version, error) {
	var (
		row *sql.Row
	)

	if asOf == nil {
		query := `SELECT ` + selectVersionColumns + `
			FROM dimension_versions
			WHERE tenant_id = $1 AND kind = $2 AND business_key = $3 AND is_current`
		row = s.db.QueryRowContext(ctx, query, tenantID, kind, businessKey)
	} else {
		query := `SELECT ` + selectVersionColumns + `
			FROM dimension_versions
			WHERE tenant_id = $1 AND kind = $2 AND business_key = $3
			  AND valid_from <= $4
			  AND (valid_to IS NULL OR valid_to >= $4)`
		row = s.db.QueryRowContext(ctx, query, tenantID, kind, businessKey, asOf.Truncate(24*time.Hour))
	}

	v, err := scanVersion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dimension.ErrNotFound
		}

		return nil, fmt.Errorf("resolving version: %w", err)
	}

	return v, nil
}

func (s *Store) History(ctx context.Context, tenantID uuid.UUID, kind dimension.Kind, businessKey string) ([]*dimension.Version, error) {
	query := `SELECT ` + selectVersionColumns + `
		FROM dimension_versions
		WHERE tenant_id = $1 AND kind = $2 AND business_key = $3
		ORDER BY valid_from ASC`

	rows, err := s.db.QueryContext(ctx, query, tenantID, kind, businessKey)
	if err != nil {
		return nil, fmt.Errorf("loading version history: %w", err)
	}
	defer rows.Close()

	var versions []*dimension.Version

	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning version: %w", err)
		}

		versions = append(versions, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating versions: %w", err)
	}

	return versions, nil
}
