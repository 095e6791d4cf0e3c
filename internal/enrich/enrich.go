// Package enrich turns validated staging records into loadable fact
// candidates: monetary fields derived in minor units, categories
// resolved through learned mappings, dimension references pinned to
// the version current at the document date.
package enrich

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mgirard/ledgerline/internal/dimension"
	"github.com/mgirard/ledgerline/internal/fact"
	"github.com/mgirard/ledgerline/internal/money"
	"github.com/mgirard/ledgerline/internal/staging"
)

//go:generate mockgen -source=enrich.go -destination=enrich_mock.go -package=enrich

// Mappings is the learned category lookup. Resolve returns the empty
// string when no pattern matches.
type Mappings interface {
	Resolve(ctx context.Context, tenantID uuid.UUID, label string) (string, error)
	Learn(ctx context.Context, tenantID uuid.UUID, rawPattern, category string) error
}

// Dimensions resolves business keys to dimension versions. Satisfied
// by dimension.Service.
type Dimensions interface {
	Current(ctx context.Context, tenantID uuid.UUID, kind dimension.Kind, businessKey string, asOf *time.Time) (*dimension.Version, error)
	Unknown(ctx context.Context, tenantID uuid.UUID, kind dimension.Kind) (*dimension.Version, error)
}

type Service struct {
	mappings      Mappings
	dimensions    Dimensions
	lookupTimeout time.Duration
}

func NewService(mappings Mappings, dimensions Dimensions, lookupTimeout time.Duration) *Service {
	if lookupTimeout <= 0 {
		lookupTimeout = 2 * time.Second
	}

	return &Service{
		mappings:      mappings,
		dimensions:    dimensions,
		lookupTimeout: lookupTimeout,
	}
}

// Enrich builds a fact candidate from a validated record. Reference
// misses never fail the record: unresolved keys fall back to the
// unknown sentinel version and mark the fact for manual linking.
// Anything else that goes wrong, including a panic in a derivation,
// is returned as an error so the caller can park the record.
func (s *Service) Enrich(ctx context.Context, rec *staging.RawRecord) (f *fact.Fact, err error) {
	defer func() {
		if r := recover(); r != nil {
			f = nil
			err = fmt.Errorf("enriching record %s: panic: %v", rec.ID, r)
		}
	}()

	switch rec.Kind {
	case staging.KindInvoice, staging.KindPayment:
		return s.enrichDocument(ctx, rec)
	case staging.KindMovement:
		return s.enrichMovement(ctx, rec)
	default:
		return nil, fmt.Errorf("enriching record %s: unknown kind %q", rec.ID, rec.Kind)
	}
}

func (s *Service) enrichDocument(ctx context.Context, rec *staging.RawRecord) (*fact.Fact, error) {
	issueDate, err := time.Parse("2006-01-02", rec.Field(staging.FieldIssueDate))
	if err != nil {
		return nil, fmt.Errorf("enriching record %s: parsing issue date: %w", rec.ID, err)
	}

	baseMinor, err := money.ParseMinor(rec.Field(staging.FieldTotalAmount))
	if err != nil {
		return nil, fmt.Errorf("enriching record %s: parsing total amount: %w", rec.ID, err)
	}

	var taxMinor int64

	if raw := rec.Field(staging.FieldTaxRate); raw != "" {
		rate, err := money.ParseRate(raw)
		if err != nil {
			return nil, fmt.Errorf("enriching record %s: parsing tax rate: %w", rec.ID, err)
		}

		taxMinor = money.Tax(baseMinor, rate)
	}

	f := &fact.Fact{
		TenantID:    rec.TenantID,
		Source:      rec.Source,
		ExternalID:  rec.ExternalID,
		Kind:        documentKind(rec.Kind),
		AmountMinor: baseMinor + taxMinor,
		TaxMinor:    taxMinor,
		IssueDate:   issueDate,
		RawRecordID: rec.ID,
	}

	f.Category = s.resolveCategory(ctx, rec)

	supplier, err := s.resolveDimension(ctx, rec, dimension.KindSupplier, rec.Field(staging.FieldSupplierID), issueDate, f)
	if err != nil {
		return nil, fmt.Errorf("enriching record %s: %w", rec.ID, err)
	}

	f.SupplierVersionID = &supplier

	if code := rec.Field(staging.FieldProductCode); code != "" {
		product, err := s.resolveDimension(ctx, rec, dimension.KindProduct, code, issueDate, f)
		if err != nil {
			return nil, fmt.Errorf("enriching record %s: %w", rec.ID, err)
		}

		f.ProductVersionID = &product
	}

	return f, nil
}

func (s *Service) enrichMovement(ctx context.Context, rec *staging.RawRecord) (*fact.Fact, error) {
	valueDate, err := time.Parse("2006-01-02", rec.Field(staging.FieldValueDate))
	if err != nil {
		return nil, fmt.Errorf("enriching record %s: parsing value date: %w", rec.ID, err)
	}

	amountMinor, err := money.ParseMinor(rec.Field(staging.FieldAmount))
	if err != nil {
		return nil, fmt.Errorf("enriching record %s: parsing amount: %w", rec.ID, err)
	}

	f := &fact.Fact{
		TenantID:    rec.TenantID,
		Source:      rec.Source,
		ExternalID:  rec.ExternalID,
		Kind:        fact.KindMovement,
		AmountMinor: amountMinor,
		IssueDate:   valueDate,
		RawRecordID: rec.ID,
	}

	f.Category = s.resolveCategory(ctx, rec)

	account, err := s.resolveDimension(ctx, rec, dimension.KindAccount, rec.Field(staging.FieldAccountKey), valueDate, f)
	if err != nil {
		return nil, fmt.Errorf("enriching record %s: %w", rec.ID, err)
	}

	f.AccountVersionID = &account

	return f, nil
}

// resolveCategory prefers the declared category code; free-text labels
// go through the learned mappings. Misses land in the uncategorized
// bucket, never an error.
func (s *Service) resolveCategory(ctx context.Context, rec *staging.RawRecord) string {
	if declared := NormalizeCode(rec.Field(staging.FieldCategory)); declared != "" {
		return declared
	}

	label := NormalizeLabel(rec.Field(staging.FieldLabel))
	if label == "" {
		return fact.CategoryUncategorized
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	mapped, err := s.mappings.Resolve(lookupCtx, rec.TenantID, label)
	if err != nil || mapped == "" {
		return fact.CategoryUncategorized
	}

	return mapped
}

// resolveDimension pins a business key to the version current at the
// document date. A miss or lookup failure falls back to the tenant's
// unknown sentinel and flags the fact for manual linking. An error
// means even the sentinel could not be resolved; the version columns
// carry foreign keys, so there is no loadable fallback left.
func (s *Service) resolveDimension(ctx context.Context, rec *staging.RawRecord, kind dimension.Kind, businessKey string, asOf time.Time, f *fact.Fact) (uuid.UUID, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	if businessKey != "" {
		v, err := s.dimensions.Current(lookupCtx, rec.TenantID, kind, businessKey, &asOf)
		if err == nil {
			return v.ID, nil
		}
	}

	f.NeedsLinking = true

	sentinel, err := s.dimensions.Unknown(ctx, rec.TenantID, kind)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolving %s sentinel: %w", kind, err)
	}

	return sentinel.ID, nil
}

// Learn records a label-to-category mapping so future records with a
// matching label resolve without review.
func (s *Service) Learn(ctx context.Context, tenantID uuid.UUID, rawPattern, category string) error {
	pattern := NormalizeLabel(rawPattern)
	if pattern == "" {
		return fmt.Errorf("learning mapping: empty pattern")
	}

	code := NormalizeCode(category)
	if code == "" {
		return fmt.Errorf("learning mapping: empty category")
	}

	return s.mappings.Learn(ctx, tenantID, pattern, code)
}

func documentKind(k staging.Kind) fact.Kind {
	if k == staging.KindPayment {
		return fact.KindPayment
	}

	return fact.KindInvoice
}
