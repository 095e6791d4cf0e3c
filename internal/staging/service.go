package staging

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("staged record not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=staging
type Repository interface {
	InsertRecords(ctx context.Context, records []*RawRecord) error
	ListPending(ctx context.Context, tenantID, batchID uuid.UUID) ([]*RawRecord, error)
	SetValidation(ctx context.Context, tenantID, recordID uuid.UUID, status Status, violations []Violation) error
	MarkError(ctx context.Context, tenantID, recordID uuid.UUID, status Status, note string) error
	Report(ctx context.Context, tenantID, batchID uuid.UUID) ([]ReportEntry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Ingest stages a delivery of extracted records. Records arrive with
// status EXTRACTED; anything else is a caller bug.
func (s *Service) Ingest(ctx context.Context, records []*RawRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, rec := range records {
		if rec.Status == "" {
			rec.Status = StatusExtracted
		}

		if rec.Status != StatusExtracted {
			return fmt.Errorf("record %s: cannot ingest with status %s", rec.ExternalID, rec.Status)
		}
	}

	return s.repo.InsertRecords(ctx, records)
}

// ListPending returns the batch records still awaiting processing.
func (s *Service) ListPending(ctx context.Context, tenantID, batchID uuid.UUID) ([]*RawRecord, error) {
	return s.repo.ListPending(ctx, tenantID, batchID)
}

// SetValidation persists a validation outcome and its violations.
func (s *Service) SetValidation(ctx context.Context, tenantID, recordID uuid.UUID, status Status, violations []Violation) error {
	return s.repo.SetValidation(ctx, tenantID, recordID, status, violations)
}

// MarkError parks a record with a captured processing error.
func (s *Service) MarkError(ctx context.Context, tenantID, recordID uuid.UUID, status Status, note string) error {
	return s.repo.MarkError(ctx, tenantID, recordID, status, note)
}

// Report returns the per-record validation report for a batch.
func (s *Service) Report(ctx context.Context, tenantID, batchID uuid.UUID) ([]ReportEntry, error) {
	return s.repo.Report(ctx, tenantID, batchID)
}
