package aggregate

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("aggregate not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=aggregate
type Repository interface {
	// SumRealized fully re-sums the period's invoice facts for the
	// dimension key. Never a delta: a missed or doubled increment
	// self-heals on the next recalculation.
	SumRealized(ctx context.Context, tenantID uuid.UUID, key Key) (int64, error)

	Get(ctx context.Context, tenantID uuid.UUID, key Key) (*Aggregate, error)
	Upsert(ctx context.Context, agg *Aggregate) error
	Overruns(ctx context.Context, tenantID uuid.UUID, period string) ([]*Aggregate, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Recalculate recomputes every touched aggregate from scratch.
func (s *Service) Recalculate(ctx context.Context, tenantID uuid.UUID, keys []Key) error {
	seen := make(map[Key]bool, len(keys))

	for _, key := range keys {
		if key.DimensionKey == "" || key.Period == "" || seen[key] {
			continue
		}

		seen[key] = true

		if err := s.recalculateOne(ctx, tenantID, key); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) recalculateOne(ctx context.Context, tenantID uuid.UUID, key Key) error {
	realized, err := s.repo.SumRealized(ctx, tenantID, key)
	if err != nil {
		return err
	}

	var planned int64

	existing, err := s.repo.Get(ctx, tenantID, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	if existing != nil {
		planned = existing.PlannedMinor
	}

	ratio, tier := TierOf(planned, realized)

	return s.repo.Upsert(ctx, &Aggregate{
		TenantID:      tenantID,
		DimensionKey:  key.DimensionKey,
		Period:        key.Period,
		PlannedMinor:  planned,
		RealizedMinor: realized,
		Ratio:         ratio,
		Tier:          tier,
	})
}

// SetPlanned records the budget envelope for a key and re-grades it.
func (s *Service) SetPlanned(ctx context.Context, tenantID uuid.UUID, key Key, plannedMinor int64) error {
	realized, err := s.repo.SumRealized(ctx, tenantID, key)
	if err != nil {
		return err
	}

	ratio, tier := TierOf(plannedMinor, realized)

	return s.repo.Upsert(ctx, &Aggregate{
		TenantID:      tenantID,
		DimensionKey:  key.DimensionKey,
		Period:        key.Period,
		PlannedMinor:  plannedMinor,
		RealizedMinor: realized,
		Ratio:         ratio,
		Tier:          tier,
	})
}

// Get returns one aggregate row.
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID, key Key) (*Aggregate, error) {
	return s.repo.Get(ctx, tenantID, key)
}

// Overruns lists the period's DEPASSEMENT rows.
func (s *Service) Overruns(ctx context.Context, tenantID uuid.UUID, period string) ([]*Aggregate, error) {
	return s.repo.Overruns(ctx, tenantID, period)
}
