package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mgirard/ledgerline/internal/aggregate"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SumRealized(ctx context.Context, tenantID uuid.UUID, key aggregate.Key) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount_minor), 0)
		FROM financial_facts
		WHERE tenant_id = $1 AND kind = 'invoice' AND category = $2 AND period = $3
	`

	var sum int64
	if err := s.db.QueryRowContext(ctx, query, tenantID, key.DimensionKey, key.Period).Scan(&sum); err != nil {
		return 0, fmt.Errorf("summing realized amount: %w", err)
	}

	return sum, nil
}

func (s *Store) Get(ctx context.Context, tenantID uuid.UUID, key aggregate.Key) (*aggregate.Aggregate, error) {
	query := `
		SELECT tenant_id, dimension_key, period, planned_minor, realized_minor, ratio, tier, updated_at
		FROM period_aggregates
		WHERE tenant_id = $1 AND dimension_key = $2 AND period = $3
	`

	agg, err := scanAggregate(s.db.QueryRowContext(ctx, query, tenantID, key.DimensionKey, key.Period))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, aggregate.ErrNotFound
		}

		return nil, fmt.Errorf("getting aggregate: %w", err)
	}

	return agg, nil
}

func (s *Store) Upsert(ctx context.Context, agg *aggregate.Aggregate) error {
	query := `
		INSERT INTO period_aggregates (tenant_id, dimension_key, period, planned_minor, realized_minor, ratio, tier, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (tenant_id, dimension_key, period) DO UPDATE
		SET planned_minor = EXCLUDED.planned_minor,
		    realized_minor = EXCLUDED.realized_minor,
		    ratio = EXCLUDED.ratio,
		    tier = EXCLUDED.tier,
		    updated_at = NOW()
	`

	_, err := s.db.ExecContext(ctx, query,
		agg.TenantID, agg.DimensionKey, agg.Period,
		agg.PlannedMinor, agg.RealizedMinor, agg.Ratio, agg.Tier,
	)
	if err != nil {
		return fmt.Errorf("upserting aggregate: %w", err)
	}

	return nil
}

func (s *Store) Overruns(ctx context.Context, tenantID uuid.UUID, period string) ([]*aggregate.Aggregate, error) {
	query := `
		SELECT tenant_id, dimension_key, period, planned_minor, realized_minor, ratio, tier, updated_at
		FROM period_aggregates
		WHERE tenant_id = $1 AND period = $2 AND tier = 'DEPASSEMENT'
		ORDER BY dimension_key ASC
	`

	rows, err := s.db.QueryContext(ctx, query, tenantID, period)
	if err != nil {
		return nil, fmt.Errorf("listing overruns: %w", err)
	}
	defer rows.Close()

	var aggs []*aggregate.Aggregate

	for rows.Next() {
		agg, err := scanAggregate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning aggregate: %w", err)
		}

		aggs = append(aggs, agg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating aggregates: %w", err)
	}

	return aggs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAggregate(s scanner) (*aggregate.Aggregate, error) {
	var agg aggregate.Aggregate

	var tierStr string

	if err := s.Scan(
		&agg.TenantID, &agg.DimensionKey, &agg.Period,
		&agg.PlannedMinor, &agg.RealizedMinor, &agg.Ratio, &tierStr, &agg.UpdatedAt,
	); err != nil {
		return nil, err
	}

	agg.Tier = aggregate.Tier(tierStr)

	return &agg, nil
}
