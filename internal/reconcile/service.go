package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mgirard/ledgerline/internal/audit"
	"github.com/mgirard/ledgerline/internal/fact"
	"github.com/mgirard/ledgerline/internal/money"
	"github.com/mgirard/ledgerline/internal/retry"
)

var (
	ErrNotFound = errors.New("reconciliation target not found")

	// ErrConflict marks lock contention on a movement or document row.
	ErrConflict = errors.New("reconciliation conflict")

	// ErrOverAllocation rejects a confirm that would breach either
	// conservation bound.
	ErrOverAllocation = errors.New("allocation exceeds remainder")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=reconcile
type Repository interface {
	GetMovement(ctx context.Context, tenantID, movementID uuid.UUID) (*fact.Fact, error)
	GetLink(ctx context.Context, tenantID, linkID uuid.UUID) (*Link, error)

	// MovementAllocated sums the movement's existing link allocations.
	MovementAllocated(ctx context.Context, tenantID, movementID uuid.UUID) (int64, error)

	// CandidateDocuments returns the tenant's open documents (positive
	// outstanding balance); tolerance filtering and ranking happen in
	// the service.
	CandidateDocuments(ctx context.Context, tenantID uuid.UUID) ([]*fact.Fact, error)

	// BeginMatch opens a transaction holding row locks on both the
	// movement and the document, taken in a stable order.
	BeginMatch(ctx context.Context, tenantID, movementID, documentID uuid.UUID) (MatchTx, error)
}

// MatchTx is the serialized scope of one confirm or unlink.
type MatchTx interface {
	Movement(ctx context.Context) (*fact.Fact, error)
	Document(ctx context.Context) (*fact.Fact, error)
	MovementAllocated(ctx context.Context) (int64, error)
	InsertLink(ctx context.Context, l *Link) error
	DeleteLink(ctx context.Context, linkID uuid.UUID) error

	// RecomputeSettled re-derives the document's settled amount as the
	// full sum over its links and returns the new value.
	RecomputeSettled(ctx context.Context) (int64, error)

	// SetStatus updates a fact's workflow status and appends the audit
	// event inside this transaction.
	SetStatus(ctx context.Context, entity audit.EntityType, id uuid.UUID, previous, next fact.Status, actor string) error

	Commit() error
	Rollback() error
}

type Config struct {
	TolerancePct float64
	TopK         int
}

type Service struct {
	repo  Repository
	cfg   Config
	retry retry.Policy
}

func NewService(repo Repository, cfg Config, retryPolicy retry.Policy) *Service {
	if cfg.TolerancePct <= 0 {
		cfg.TolerancePct = 0.01
	}

	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}

	return &Service{repo: repo, cfg: cfg, retry: retryPolicy}
}

// Suggest ranks open documents against a movement's unallocated amount.
// Candidates within tolerance are ordered by amount difference, then
// date proximity, then external id for a stable order.
func (s *Service) Suggest(ctx context.Context, tenantID, movementID uuid.UUID) ([]Candidate, error) {
	mov, err := s.repo.GetMovement(ctx, tenantID, movementID)
	if err != nil {
		return nil, err
	}

	allocated, err := s.repo.MovementAllocated(ctx, tenantID, movementID)
	if err != nil {
		return nil, err
	}

	remainder := money.Abs(mov.AmountMinor) - allocated
	if remainder <= 0 {
		return nil, nil
	}

	docs, err := s.repo.CandidateDocuments(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	band := Tolerance(remainder, s.cfg.TolerancePct)

	var candidates []Candidate

	for _, doc := range docs {
		outstanding := doc.Outstanding()
		if outstanding <= 0 {
			continue
		}

		diff := money.Abs(outstanding - remainder)
		if diff > band {
			continue
		}

		candidates = append(candidates, Candidate{
			Document:     doc,
			DiffMinor:    diff,
			DateDiffDays: DateDiffDays(doc.IssueDate, mov.IssueDate),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].DiffMinor != candidates[j].DiffMinor {
			return candidates[i].DiffMinor < candidates[j].DiffMinor
		}

		if candidates[i].DateDiffDays != candidates[j].DateDiffDays {
			return candidates[i].DateDiffDays < candidates[j].DateDiffDays
		}

		return candidates[i].Document.ExternalID < candidates[j].Document.ExternalID
	})

	if len(candidates) > s.cfg.TopK {
		candidates = candidates[:s.cfg.TopK]
	}

	return candidates, nil
}

// Confirm allocates part of a movement to a document. The allocation
// must fit both the movement's unallocated remainder and the document's
// outstanding balance; settled amounts are recomputed from the links.
func (s *Service) Confirm(ctx context.Context, tenantID, movementID, documentID uuid.UUID, amountMinor int64, actor string) (*Link, error) {
	if amountMinor <= 0 {
		return nil, fmt.Errorf("allocation must be positive, got %d", amountMinor)
	}

	var link *Link

	err := s.retry.Do(ctx, func(err error) bool { return errors.Is(err, ErrConflict) }, func() error {
		l, err := s.confirmOnce(ctx, tenantID, movementID, documentID, amountMinor, actor)
		if err != nil {
			return err
		}

		link = l

		return nil
	})
	if err != nil {
		return nil, err
	}

	return link, nil
}

func (s *Service) confirmOnce(ctx context.Context, tenantID, movementID, documentID uuid.UUID, amountMinor int64, actor string) (*Link, error) {
	mtx, err := s.repo.BeginMatch(ctx, tenantID, movementID, documentID)
	if err != nil {
		return nil, err
	}
	defer mtx.Rollback()

	mov, err := mtx.Movement(ctx)
	if err != nil {
		return nil, err
	}

	if mov.Kind != fact.KindMovement {
		return nil, fmt.Errorf("%s is not a bank movement", movementID)
	}

	doc, err := mtx.Document(ctx)
	if err != nil {
		return nil, err
	}

	if doc.Kind == fact.KindMovement {
		return nil, fmt.Errorf("%s is not a settleable document", documentID)
	}

	allocated, err := mtx.MovementAllocated(ctx)
	if err != nil {
		return nil, err
	}

	movRemainder := money.Abs(mov.AmountMinor) - allocated
	if amountMinor > movRemainder {
		return nil, fmt.Errorf("%w: %d over movement remainder %d", ErrOverAllocation, amountMinor, movRemainder)
	}

	if amountMinor > doc.Outstanding() {
		return nil, fmt.Errorf("%w: %d over document outstanding %d", ErrOverAllocation, amountMinor, doc.Outstanding())
	}

	link := &Link{
		TenantID:       tenantID,
		MovementID:     movementID,
		DocumentID:     documentID,
		AllocatedMinor: amountMinor,
	}

	if err := mtx.InsertLink(ctx, link); err != nil {
		return nil, err
	}

	settled, err := mtx.RecomputeSettled(ctx)
	if err != nil {
		return nil, err
	}

	if next := documentStatus(doc.AmountMinor, settled); next != doc.Status {
		if err := mtx.SetStatus(ctx, audit.EntityFact, doc.ID, doc.Status, next, actor); err != nil {
			return nil, err
		}
	}

	// The movement is matched only once its full amount is allocated.
	if allocated+amountMinor == money.Abs(mov.AmountMinor) && mov.Status != fact.StatusMatched {
		if err := mtx.SetStatus(ctx, audit.EntityMovement, mov.ID, mov.Status, fact.StatusMatched, actor); err != nil {
			return nil, err
		}
	}

	if err := mtx.Commit(); err != nil {
		return nil, fmt.Errorf("committing match: %w", err)
	}

	return link, nil
}

// Unlink reverses a confirmed allocation and recomputes the affected
// settled amount and statuses.
func (s *Service) Unlink(ctx context.Context, tenantID, linkID uuid.UUID, actor string) error {
	link, err := s.repo.GetLink(ctx, tenantID, linkID)
	if err != nil {
		return err
	}

	return s.retry.Do(ctx, func(err error) bool { return errors.Is(err, ErrConflict) }, func() error {
		return s.unlinkOnce(ctx, tenantID, link, actor)
	})
}

func (s *Service) unlinkOnce(ctx context.Context, tenantID uuid.UUID, link *Link, actor string) error {
	mtx, err := s.repo.BeginMatch(ctx, tenantID, link.MovementID, link.DocumentID)
	if err != nil {
		return err
	}
	defer mtx.Rollback()

	mov, err := mtx.Movement(ctx)
	if err != nil {
		return err
	}

	doc, err := mtx.Document(ctx)
	if err != nil {
		return err
	}

	if err := mtx.DeleteLink(ctx, link.ID); err != nil {
		return err
	}

	settled, err := mtx.RecomputeSettled(ctx)
	if err != nil {
		return err
	}

	if next := documentStatus(doc.AmountMinor, settled); next != doc.Status {
		if err := mtx.SetStatus(ctx, audit.EntityFact, doc.ID, doc.Status, next, actor); err != nil {
			return err
		}
	}

	allocated, err := mtx.MovementAllocated(ctx)
	if err != nil {
		return err
	}

	if allocated < money.Abs(mov.AmountMinor) && mov.Status == fact.StatusMatched {
		if err := mtx.SetStatus(ctx, audit.EntityMovement, mov.ID, mov.Status, fact.StatusUnmatched, actor); err != nil {
			return err
		}
	}

	if err := mtx.Commit(); err != nil {
		return fmt.Errorf("committing unlink: %w", err)
	}

	return nil
}
