// Package pipeline drives a batch through validation, enrichment and
// fact loading, then refreshes the period aggregates the batch touched.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mgirard/ledgerline/internal/aggregate"
	"github.com/mgirard/ledgerline/internal/fact"
	"github.com/mgirard/ledgerline/internal/staging"
	"github.com/mgirard/ledgerline/internal/validation"
)

//go:generate mockgen -source=pipeline.go -destination=pipeline_mock.go -package=pipeline

// Records is the staging surface the pipeline needs. Satisfied by
// staging.Service.
type Records interface {
	ListPending(ctx context.Context, tenantID, batchID uuid.UUID) ([]*staging.RawRecord, error)
	SetValidation(ctx context.Context, tenantID, recordID uuid.UUID, status staging.Status, violations []staging.Violation) error
	MarkError(ctx context.Context, tenantID, recordID uuid.UUID, status staging.Status, note string) error
	Report(ctx context.Context, tenantID, batchID uuid.UUID) ([]staging.ReportEntry, error)
}

// Validator is the rule engine surface. Satisfied by validation.Engine.
type Validator interface {
	Validate(rec *staging.RawRecord) validation.Result
	Outcome(rec *staging.RawRecord, res validation.Result) staging.Status
}

// Enricher builds fact candidates from validated records. Satisfied by
// enrich.Service.
type Enricher interface {
	Enrich(ctx context.Context, rec *staging.RawRecord) (*fact.Fact, error)
}

// Loader persists fact candidates. Satisfied by fact.Service.
type Loader interface {
	Load(ctx context.Context, f *fact.Fact) (fact.LoadResult, error)
}

// Aggregates refreshes period totals. Satisfied by aggregate.Service.
type Aggregates interface {
	Recalculate(ctx context.Context, tenantID uuid.UUID, keys []aggregate.Key) error
}

// Summary counts the terminal outcome of every record processed in a
// run. Validated counts records that passed the rule engine this run,
// whatever happened to them afterwards.
type Summary struct {
	Total           int `json:"total"`
	Validated       int `json:"validated"`
	Integrated      int `json:"integrated"`
	Duplicates      int `json:"duplicates"`
	NeedsReview     int `json:"needs_review"`
	NeedsCompletion int `json:"needs_completion"`
	Errors          int `json:"errors"`
}

type Service struct {
	records    Records
	validator  Validator
	enricher   Enricher
	loader     Loader
	aggregates Aggregates
	workers    int
}

func NewService(records Records, validator Validator, enricher Enricher, loader Loader, aggregates Aggregates, workers int) *Service {
	if workers <= 0 {
		workers = 4
	}

	return &Service{
		records:    records,
		validator:  validator,
		enricher:   enricher,
		loader:     loader,
		aggregates: aggregates,
		workers:    workers,
	}
}

// RunBatch processes every pending record of the batch. Records already
// in a terminal status are not listed, so rerunning a batch resumes
// where the previous run stopped. A failure on one record parks that
// record and never aborts the others; only context cancellation stops
// the run early.
func (s *Service) RunBatch(ctx context.Context, tenantID, batchID uuid.UUID) (Summary, error) {
	records, err := s.records.ListPending(ctx, tenantID, batchID)
	if err != nil {
		return Summary{}, fmt.Errorf("running batch %s: %w", batchID, err)
	}

	var (
		mu      sync.Mutex
		summary = Summary{Total: len(records)}
		touched = make(map[aggregate.Key]struct{})
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			outcome, key, validated := s.processRecord(gctx, rec)

			mu.Lock()
			defer mu.Unlock()

			if validated {
				summary.Validated++
			}

			switch outcome {
			case outcomeIntegrated:
				summary.Integrated++
				touched[key] = struct{}{}
			case outcomeDuplicate:
				summary.Duplicates++
			case outcomeNeedsReview:
				summary.NeedsReview++
			case outcomeNeedsCompletion:
				summary.NeedsCompletion++
			case outcomeError:
				summary.Errors++
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, fmt.Errorf("running batch %s: %w", batchID, err)
	}

	keys := make([]aggregate.Key, 0, len(touched))
	for key := range touched {
		keys = append(keys, key)
	}

	if err := s.aggregates.Recalculate(ctx, tenantID, keys); err != nil {
		return summary, fmt.Errorf("running batch %s: refreshing aggregates: %w", batchID, err)
	}

	return summary, nil
}

type recordOutcome int

const (
	outcomeIntegrated recordOutcome = iota
	outcomeDuplicate
	outcomeNeedsReview
	outcomeNeedsCompletion
	outcomeError
)

func (s *Service) processRecord(ctx context.Context, rec *staging.RawRecord) (recordOutcome, aggregate.Key, bool) {
	res := s.validator.Validate(rec)
	status := s.validator.Outcome(rec, res)

	if status != staging.StatusValidated {
		if err := s.records.SetValidation(ctx, rec.TenantID, rec.ID, status, res.Violations); err != nil {
			slog.Error("failed to persist validation outcome", "record", rec.ID, "error", err)
			return outcomeError, aggregate.Key{}, false
		}

		if status == staging.StatusNeedsCompletion {
			return outcomeNeedsCompletion, aggregate.Key{}, false
		}

		return outcomeNeedsReview, aggregate.Key{}, false
	}

	if err := s.records.SetValidation(ctx, rec.TenantID, rec.ID, status, res.Violations); err != nil {
		slog.Error("failed to persist validation outcome", "record", rec.ID, "error", err)
		return outcomeError, aggregate.Key{}, true
	}

	f, err := s.enricher.Enrich(ctx, rec)
	if err != nil {
		slog.Error("enrichment failed", "record", rec.ID, "error", err)
		s.parkRecord(ctx, rec, err)

		return outcomeError, aggregate.Key{}, true
	}

	result, err := s.loader.Load(ctx, f)
	if err != nil {
		slog.Error("fact load failed", "record", rec.ID, "error", err)
		s.parkRecord(ctx, rec, err)

		return outcomeError, aggregate.Key{}, true
	}

	if result.Outcome == fact.OutcomeDuplicate {
		// Keep the violations recorded above; DUPLICATE is terminal and
		// the report still has to show what validation found.
		if err := s.records.SetValidation(ctx, rec.TenantID, rec.ID, staging.StatusDuplicate, res.Violations); err != nil {
			slog.Error("failed to mark duplicate", "record", rec.ID, "error", err)
			return outcomeError, aggregate.Key{}, true
		}

		return outcomeDuplicate, aggregate.Key{}, true
	}

	key := aggregate.Key{DimensionKey: result.Fact.Category, Period: result.Fact.Period}

	return outcomeIntegrated, key, true
}

func (s *Service) parkRecord(ctx context.Context, rec *staging.RawRecord, cause error) {
	if err := s.records.MarkError(ctx, rec.TenantID, rec.ID, staging.StatusNeedsReview, cause.Error()); err != nil {
		slog.Error("failed to park record", "record", rec.ID, "error", err)
	}
}

// Report returns the per-record validation report for a batch.
func (s *Service) Report(ctx context.Context, tenantID, batchID uuid.UUID) ([]staging.ReportEntry, error) {
	return s.records.Report(ctx, tenantID, batchID)
}
