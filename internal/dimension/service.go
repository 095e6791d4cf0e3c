package dimension

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mgirard/ledgerline/internal/retry"
)

var (
	ErrNotFound = errors.New("dimension version not found")

	// ErrConflict marks lock or serialization contention on a business
	// key. Callers may retry; the service already does so with backoff.
	ErrConflict = errors.New("dimension version conflict")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=dimension
type Repository interface {
	// BeginUpsert opens a transaction and takes the per-business-key
	// lock, serializing concurrent writers of the same key.
	BeginUpsert(ctx context.Context, tenantID uuid.UUID, kind Kind, businessKey string) (UpsertTx, error)

	CurrentVersion(ctx context.Context, tenantID uuid.UUID, kind Kind, businessKey string, asOf *time.Time) (*Version, error)
	History(ctx context.Context, tenantID uuid.UUID, kind Kind, businessKey string) ([]*Version, error)
}

// UpsertTx is the transaction scope of one SCD2 transition. The close
// and open happen inside it or not at all.
type UpsertTx interface {
	Current(ctx context.Context) (*Version, error)
	Close(ctx context.Context, versionID uuid.UUID, validTo time.Time) error
	Insert(ctx context.Context, v *Version) error
	// Replace rewrites the attrs of an open version without touching
	// its validity window. Used for same-day corrections.
	Replace(ctx context.Context, versionID uuid.UUID, attrs map[string]string) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo  Repository
	retry retry.Policy
}

func NewService(repo Repository, retryPolicy retry.Policy) *Service {
	return &Service{repo: repo, retry: retryPolicy}
}

// Upsert applies one attribute observation to a business key's history:
// no current version inserts the first one; identical attributes are a
// no-op; anything else atomically closes the current version the day
// before effectiveDate and opens the new one at effectiveDate.
func (s *Service) Upsert(ctx context.Context, tenantID uuid.UUID, kind Kind, businessKey string, attrs map[string]string, effectiveDate time.Time) (*Version, error) {
	if businessKey == "" {
		return nil, fmt.Errorf("empty business key")
	}

	effective := effectiveDate.Truncate(24 * time.Hour)

	var result *Version

	err := s.retry.Do(ctx, func(err error) bool { return errors.Is(err, ErrConflict) }, func() error {
		v, err := s.upsertOnce(ctx, tenantID, kind, businessKey, attrs, effective)
		if err != nil {
			return err
		}

		result = v

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) upsertOnce(ctx context.Context, tenantID uuid.UUID, kind Kind, businessKey string, attrs map[string]string, effective time.Time) (*Version, error) {
	utx, err := s.repo.BeginUpsert(ctx, tenantID, kind, businessKey)
	if err != nil {
		return nil, fmt.Errorf("begin version upsert: %w", err)
	}
	defer utx.Rollback()

	current, err := utx.Current(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("loading current version: %w", err)
	}

	if current != nil {
		if AttrsEqual(current.Attrs, attrs) {
			// Nothing changed; leave history untouched.
			return current, nil
		}

		if effective.Before(current.ValidFrom) {
			return nil, fmt.Errorf("effective date %s precedes current version start %s",
				effective.Format(time.DateOnly), current.ValidFrom.Format(time.DateOnly))
		}

		if effective.Equal(current.ValidFrom) {
			// A change effective the day the current version opened is a
			// correction of that version, not a new one. Closing it would
			// leave valid_to before valid_from.
			if err := utx.Replace(ctx, current.ID, attrs); err != nil {
				return nil, fmt.Errorf("replacing version attrs: %w", err)
			}

			if err := utx.Commit(); err != nil {
				return nil, fmt.Errorf("committing version upsert: %w", err)
			}

			corrected := *current
			corrected.Attrs = attrs

			return &corrected, nil
		}

		if err := utx.Close(ctx, current.ID, effective.AddDate(0, 0, -1)); err != nil {
			return nil, fmt.Errorf("closing version: %w", err)
		}
	}

	next := &Version{
		TenantID:    tenantID,
		Kind:        kind,
		BusinessKey: businessKey,
		Attrs:       attrs,
		ValidFrom:   effective,
		Current:     true,
	}

	if err := utx.Insert(ctx, next); err != nil {
		return nil, fmt.Errorf("inserting version: %w", err)
	}

	if err := utx.Commit(); err != nil {
		return nil, fmt.Errorf("committing version upsert: %w", err)
	}

	return next, nil
}

// Current resolves the version covering asOf, or the open version when
// asOf is nil. Point-in-time queries drive enrichment and audit screens.
func (s *Service) Current(ctx context.Context, tenantID uuid.UUID, kind Kind, businessKey string, asOf *time.Time) (*Version, error) {
	return s.repo.CurrentVersion(ctx, tenantID, kind, businessKey, asOf)
}

// History returns the full version chain of a business key, oldest first.
func (s *Service) History(ctx context.Context, tenantID uuid.UUID, kind Kind, businessKey string) ([]*Version, error) {
	return s.repo.History(ctx, tenantID, kind, businessKey)
}

// Unknown resolves the never-closed sentinel version facts reference
// when a business key cannot be resolved.
func (s *Service) Unknown(ctx context.Context, tenantID uuid.UUID, kind Kind) (*Version, error) {
	v, err := s.repo.CurrentVersion(ctx, tenantID, kind, UnknownBusinessKey, nil)
	if err == nil {
		return v, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return s.Upsert(ctx, tenantID, kind, UnknownBusinessKey,
		map[string]string{"label": "unresolved reference"}, time.Unix(0, 0).UTC())
}
