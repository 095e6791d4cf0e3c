package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mgirard/ledgerline/internal/audit"
)

// execer is satisfied by *sql.DB and *sql.Tx, so events can be appended
// inside the same transaction as the status change they record.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Append inserts one status-change event. Callers mutating a status pass
// their own transaction; the event and the mutation commit together.
func Append(ctx context.Context, ex execer, ev *audit.Event) error {
	query := `
		INSERT INTO status_change_events (tenant_id, entity_type, entity_id, previous_status, next_status, actor, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, occurred_at
	`

	err := ex.QueryRowContext(ctx, query,
		ev.TenantID, ev.EntityType, ev.EntityID, ev.Previous, ev.Next, ev.Actor,
	).Scan(&ev.ID, &ev.OccurredAt)
	if err != nil {
		return fmt.Errorf("appending status event: %w", err)
	}

	return nil
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Trail returns the status history of one entity, oldest first.
func (s *Store) Trail(ctx context.Context, tenantID uuid.UUID, entityType audit.EntityType, entityID uuid.UUID) ([]*audit.Event, error) {
	query := `
		SELECT id, tenant_id, entity_type, entity_id, previous_status, next_status, actor, occurred_at
		FROM status_change_events
		WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3
		ORDER BY occurred_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, tenantID, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("loading status trail: %w", err)
	}
	defer rows.Close()

	var events []*audit.Event

	for rows.Next() {
		var ev audit.Event

		var typeStr string

		if err := rows.Scan(&ev.ID, &ev.TenantID, &typeStr, &ev.EntityID, &ev.Previous, &ev.Next, &ev.Actor, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("scanning status event: %w", err)
		}

		ev.EntityType = audit.EntityType(typeStr)

		events = append(events, &ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status events: %w", err)
	}

	return events, nil
}
