package audit

import (
	"time"

	"github.com/google/uuid"
)

// ActorPipeline is recorded on transitions applied by the batch
// pipeline; interactive operations carry the caller's actor string.
const ActorPipeline = "pipeline"

// EntityType of the record a status event belongs to.
type EntityType string

const (
	EntityFact     EntityType = "fact"
	EntityMovement EntityType = "movement"
)

// Event is one append-only status transition. Previous is nil for the
// initial status observed at load time.
type Event struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	EntityType EntityType
	EntityID   uuid.UUID
	Previous   *string
	Next       string
	Actor      string
	OccurredAt time.Time
}

// Transition builds the event for an observed status change.
func Transition(tenantID uuid.UUID, entityType EntityType, entityID uuid.UUID, previous *string, next, actor string) *Event {
	return &Event{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   entityID,
		Previous:   previous,
		Next:       next,
		Actor:      actor,
	}
}
