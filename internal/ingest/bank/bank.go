// Package bank parses bank movement exports into staged movement
// records. The export format is auto-detected by matching column
// headers against known profiles.
package bank

import (
	"encoding/csv"
	"fmt"
	"hash/fnv"
	"io"
	"regexp"
	"strings"
	"time"

	enc "github.com/mgirard/ledgerline/internal/encoding"
	"github.com/mgirard/ledgerline/internal/money"
	"github.com/mgirard/ledgerline/internal/staging"
)

var ibanPattern = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{10,30}$`)

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

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching bank export format found")
	}

	// Some banks put the account IBAN in the preamble instead of a
	// per-row column.
	accountKey := preambleIBAN(rows[:headerIdx])

	return parseRows(profile, cols, rows[headerIdx+1:], accountKey)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// preambleIBAN scans metadata rows above the header for an IBAN cell.
func preambleIBAN(rows [][]string) string {
	for _, row := range rows {
		for _, cell := range row {
			candidate := strings.ReplaceAll(strings.TrimSpace(cell), " ", "")
			if ibanPattern.MatchString(candidate) {
				return candidate
			}
		}
	}

	return ""
}

// parseRows extracts movements from data rows using the matched profile.
func parseRows(p *Profile, cols colIndex, rows [][]string, accountKey string) ([]*staging.RawRecord, error) {
	var records []*staging.RawRecord

	for _, row := range rows {
		valueDate, ok := parseDate(row, cols[p.DateCol])
		if !ok {
			// Footer or separator row.
			continue
		}

		label := cellValue(row, cols[p.LabelCol])

		amount, ok := parseAmount(p, cols, row)
		if !ok {
			continue
		}

		key := accountKey
		if p.IBANCol != "" {
			if iban := cellValue(row, cols[p.IBANCol]); iban != "" {
				key = strings.ReplaceAll(iban, " ", "")
			}
		}

		var externalID string
		if p.RefCol != "" {
			externalID = cellValue(row, cols[p.RefCol])
		}

		if externalID == "" {
			externalID = syntheticRef(valueDate, amount, label)
		}

		rec := &staging.RawRecord{
			Kind:       staging.KindMovement,
			ExternalID: externalID,
			Fields: map[string]string{
				staging.FieldValueDate:  valueDate,
				staging.FieldAmount:     formatMinor(amount),
				staging.FieldLabel:      label,
				staging.FieldAccountKey: key,
				staging.FieldIBAN:       key,
			},
		}

		// Bank exports are authoritative, not OCR output: every field
		// gets full confidence so validated movements flow straight
		// through.
		rec.Confidence = make(map[string]int, len(rec.Fields))
		for name, value := range rec.Fields {
			if value != "" {
				rec.Confidence[name] = 100
			} else {
				delete(rec.Fields, name)
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

// parseDate normalizes a bank date (dd-mm-yyyy or dd/mm/yyyy) to ISO.
// Returns false for empty or unparseable cells (footer rows, etc).
func parseDate(row []string, idx int) (string, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return "", false
	}

	for _, layout := range []string{"02-01-2006", "02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	return "", false
}

// parseAmount extracts the signed amount in minor units based on the
// profile's amount mode. Debit columns are negated.
func parseAmount(p *Profile, cols colIndex, row []string) (int64, bool) {
	switch p.AmountMode {
	case amountSingle:
		s := cellValue(row, cols[p.AmountCol])
		if s == "" {
			return 0, false
		}

		cents, err := money.ParseMinor(s)
		if err != nil || cents == 0 {
			return 0, false
		}

		return cents, true
	case amountSplit:
		if s := cellValue(row, cols[p.DebitCol]); s != "" {
			if cents, err := money.ParseMinor(s); err == nil && cents != 0 {
				return -money.Abs(cents), true
			}
		}

		if s := cellValue(row, cols[p.CreditCol]); s != "" {
			if cents, err := money.ParseMinor(s); err == nil && cents != 0 {
				return money.Abs(cents), true
			}
		}
	}

	return 0, false
}

// formatMinor renders minor units as a plain decimal string ("-588.74").
func formatMinor(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
	}

	a := money.Abs(v)

	return fmt.Sprintf("%s%d.%02d", sign, a/100, a%100)
}

// syntheticRef builds a stable reference for rows without one, so
// re-uploading the same export stays idempotent.
func syntheticRef(valueDate string, amount int64, label string) string {
	h := fnv.New64a()
	h.Write([]byte(label))

	return fmt.Sprintf("%s:%d:%x", valueDate, amount, h.Sum64())
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
