// Package extractor parses the extraction vendor's CSV export. Each
// value column may carry a sibling "<name>_confidence" column holding
// the vendor's 0-100 score for that field.
package extractor

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	enc "github.com/mgirard/ledgerline/internal/encoding"
	"github.com/mgirard/ledgerline/internal/staging"
)

const (
	colKind       = "kind"
	colExternalID = "external_id"

	confidenceSuffix = "_confidence"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]*staging.RawRecord, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	header, headerIdx := findHeader(rows)
	if header == nil {
		return nil, fmt.Errorf("no extraction header found: expected %q and %q columns", colKind, colExternalID)
	}

	var records []*staging.RawRecord

	for i, row := range rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2 // 1-based, for error messages

		externalID := cellValue(row, header[colExternalID])
		if externalID == "" {
			// Footer or separator row.
			continue
		}

		kind, err := parseKind(cellValue(row, header[colKind]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		rec := &staging.RawRecord{
			Kind:       kind,
			ExternalID: externalID,
			Fields:     make(map[string]string),
			Confidence: make(map[string]int),
		}

		for name, idx := range header {
			if name == colKind || name == colExternalID || strings.HasSuffix(name, confidenceSuffix) {
				continue
			}

			value := cellValue(row, idx)
			if value == "" {
				continue
			}

			rec.Fields[name] = value

			if scoreIdx, ok := header[name+confidenceSuffix]; ok {
				if score, ok := parseConfidence(cellValue(row, scoreIdx)); ok {
					rec.Confidence[name] = score
				}
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

// findHeader scans for the row carrying the kind and external_id
// columns. Vendor exports prepend free-form metadata rows before it.
func findHeader(rows [][]string) (map[string]int, int) {
	for rowIdx, row := range rows {
		cols := make(map[string]int)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		_, hasKind := cols[colKind]
		_, hasID := cols[colExternalID]

		if hasKind && hasID {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func parseKind(s string) (staging.Kind, error) {
	switch staging.Kind(strings.ToLower(s)) {
	case staging.KindInvoice:
		return staging.KindInvoice, nil
	case staging.KindPayment:
		return staging.KindPayment, nil
	case staging.KindMovement:
		return staging.KindMovement, nil
	}

	return "", fmt.Errorf("unknown record kind %q", s)
}

// parseConfidence parses a 0-100 score, clamping out-of-range values.
func parseConfidence(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	score, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	if score < 0 {
		score = 0
	}

	if score > 100 {
		score = 100
	}

	return score, true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
