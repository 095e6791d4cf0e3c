// Package ingest turns uploaded deliveries into staged records. Each
// delivery format has its own parser; the service picks one by format
// and stamps the delivery envelope onto the parsed records.
package ingest

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mgirard/ledgerline/internal/ingest/bank"
	"github.com/mgirard/ledgerline/internal/ingest/extractor"
	"github.com/mgirard/ledgerline/internal/staging"
)

// Format identifies a supported delivery format.
type Format string

const (
	// FormatExtractor is the document extraction vendor's CSV, with
	// per-field confidence columns.
	FormatExtractor Format = "extractor"
	// FormatBank is a bank movement export.
	FormatBank Format = "bank"
)

// Delivery carries the envelope of one upload.
type Delivery struct {
	TenantID uuid.UUID
	BatchID  uuid.UUID
	Source   string
}

type Parser interface {
	Parse(r io.Reader) ([]*staging.RawRecord, error)
}

type Service struct {
	extractorParser Parser
	bankParser      Parser
}

func NewService() *Service {
	return &Service{
		extractorParser: extractor.New(),
		bankParser:      bank.New(),
	}
}

func (s *Service) Parse(format Format, r io.Reader, d Delivery) ([]*staging.RawRecord, error) {
	var parser Parser

	switch format {
	case FormatExtractor:
		parser = s.extractorParser
	case FormatBank:
		parser = s.bankParser
	default:
		return nil, fmt.Errorf("unknown delivery format: %s", format)
	}

	records, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		rec.ID = uuid.New()
		rec.TenantID = d.TenantID
		rec.BatchID = d.BatchID
		rec.Source = d.Source
		rec.Status = staging.StatusExtracted
	}

	return records, nil
}
