package fact

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("fact not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=fact
type Repository interface {
	// Load is one atomic conditional insert: either the fact is new and
	// the staging record is marked INTEGRATED with the initial status
	// event in the same transaction, or the natural key already exists
	// and nothing is written.
	Load(ctx context.Context, f *Fact) (LoadResult, error)

	Get(ctx context.Context, tenantID, id uuid.UUID) (*Fact, error)
	GetByNaturalKey(ctx context.Context, tenantID uuid.UUID, source, externalID string) (*Fact, error)

	// UpdateStatus applies a workflow transition and appends its audit
	// event in the same transaction. Returns the previous status.
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, next Status, actor string) (Status, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Load inserts a fact if its natural key is new, reporting DUPLICATE
// otherwise. Re-delivery of the same record is therefore harmless.
func (s *Service) Load(ctx context.Context, f *Fact) (LoadResult, error) {
	if f.TenantID == uuid.Nil {
		return LoadResult{}, fmt.Errorf("missing tenant id")
	}

	if f.Source == "" || f.ExternalID == "" {
		return LoadResult{}, fmt.Errorf("incomplete natural key (source %q, external id %q)", f.Source, f.ExternalID)
	}

	if f.Period == "" {
		f.Period = PeriodOf(f.IssueDate)
	}

	if f.Status == "" {
		f.Status = InitialStatus(f.Kind)
	}

	return s.repo.Load(ctx, f)
}

func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*Fact, error) {
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) GetByNaturalKey(ctx context.Context, tenantID uuid.UUID, source, externalID string) (*Fact, error) {
	return s.repo.GetByNaturalKey(ctx, tenantID, source, externalID)
}

// UpdateStatus transitions a fact's workflow status, appending the audit
// event. Setting the status it already has is a no-op.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, next Status, actor string) error {
	if _, err := s.repo.UpdateStatus(ctx, tenantID, id, next, actor); err != nil {
		return err
	}

	return nil
}
