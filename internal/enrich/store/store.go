package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Resolve finds the category whose learned pattern matches the label.
// The longest pattern wins so "edf energie pro" beats "edf". Returns
// the empty string when nothing matches.
func (s *Store) Resolve(ctx context.Context, tenantID uuid.UUID, label string) (string, error) {
	query := `
		SELECT category
		FROM category_mappings
		WHERE tenant_id = $1 AND $2 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, tenantID, label).Scan(&category)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("resolving category mapping: %w", err)
	}

	return category, nil
}

// Learn stores a pattern-to-category mapping. Re-learning the same
// pattern overwrites the previous category.
func (s *Store) Learn(ctx context.Context, tenantID uuid.UUID, rawPattern, category string) error {
	query := `
		INSERT INTO category_mappings (tenant_id, raw_pattern, category, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (tenant_id, raw_pattern) DO UPDATE SET category = EXCLUDED.category
	`

	_, err := s.db.ExecContext(ctx, query, tenantID, rawPattern, category)
	if err != nil {
		return fmt.Errorf("learning category mapping: %w", err)
	}

	return nil
}
