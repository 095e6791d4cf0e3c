package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mgirard/ledgerline/internal/money"
	"github.com/mgirard/ledgerline/internal/staging"
)

// amountTolerance is the arithmetic slack, in minor units, granted to
// extracted amounts before a mismatch becomes blocking. OCR rounding
// routinely loses a cent or two.
const amountTolerance = 2

var (
	supplierIDPattern = regexp.MustCompile(`^\d{9}$`)
	ibanPattern       = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{10,30}$`)
)

// requiredFields lists the mandatory extractor fields per record kind.
// Order is fixed so violation order is reproducible.
var requiredFields = map[staging.Kind][]string{
	staging.KindInvoice:  {staging.FieldSupplierID, staging.FieldInvoiceNumber, staging.FieldIssueDate, staging.FieldTotalAmount},
	staging.KindPayment:  {staging.FieldSupplierID, staging.FieldValueDate, staging.FieldAmount},
	staging.KindMovement: {staging.FieldAccountKey, staging.FieldIBAN, staging.FieldValueDate, staging.FieldAmount},
}

// allowedTaxCodes maps a declared category to the tax codes it accepts.
var allowedTaxCodes = map[string]map[string]bool{
	"FOURNITURES": {"TVA20": true, "TVA10": true},
	"TRANSPORT":   {"TVA10": true, "TVA55": true},
	"ALIMENTAIRE": {"TVA55": true, "TVA21": true},
	"SERVICES":    {"TVA20": true},
}

// DefaultRules is the ordered mandatory rule set.
func DefaultRules() []Rule {
	return []Rule{
		{ID: "required-fields", Check: checkRequiredFields},
		{ID: "identifier-format", Check: checkIdentifierFormat},
		{ID: "date-format", Check: checkDateFormat},
		{ID: "line-arithmetic", Check: checkLineArithmetic},
		{ID: "total-consistency", Check: checkTotalConsistency},
		{ID: "tax-code-category", Check: checkTaxCodeCategory},
	}
}

func blocking(ruleID, format string, args ...any) staging.Violation {
	return staging.Violation{RuleID: ruleID, Severity: staging.SeverityBlocking, Message: fmt.Sprintf(format, args...)}
}

func warning(ruleID, format string, args ...any) staging.Violation {
	return staging.Violation{RuleID: ruleID, Severity: staging.SeverityWarning, Message: fmt.Sprintf(format, args...)}
}

func checkRequiredFields(rec *staging.RawRecord) []staging.Violation {
	var out []staging.Violation

	for _, name := range requiredFields[rec.Kind] {
		if !rec.HasField(name) {
			out = append(out, blocking("required-fields", "missing mandatory field %q", name))
		}
	}

	return out
}

func checkIdentifierFormat(rec *staging.RawRecord) []staging.Violation {
	var out []staging.Violation

	if rec.HasField(staging.FieldSupplierID) && !supplierIDPattern.MatchString(rec.Field(staging.FieldSupplierID)) {
		out = append(out, blocking("identifier-format", "supplier id %q is not a 9-digit identifier", rec.Field(staging.FieldSupplierID)))
	}

	if rec.HasField(staging.FieldIBAN) && !ibanPattern.MatchString(rec.Field(staging.FieldIBAN)) {
		out = append(out, blocking("identifier-format", "iban %q is malformed", rec.Field(staging.FieldIBAN)))
	}

	return out
}

func checkDateFormat(rec *staging.RawRecord) []staging.Violation {
	var out []staging.Violation

	for _, name := range []string{staging.FieldIssueDate, staging.FieldValueDate} {
		if !rec.HasField(name) {
			continue
		}

		if _, err := time.Parse(time.DateOnly, rec.Field(name)); err != nil {
			out = append(out, blocking("date-format", "field %q: %q is not a valid date", name, rec.Field(name)))
		}
	}

	return out
}

// checkLineArithmetic verifies unit price × quantity against each line
// amount. A gap within tolerance is a warning; beyond it, blocking.
func checkLineArithmetic(rec *staging.RawRecord) []staging.Violation {
	var out []staging.Violation

	for _, n := range rec.Lines() {
		priceField := staging.LineField(n, "unit_price")
		qtyField := staging.LineField(n, "quantity")
		amountField := staging.LineField(n, "amount")

		if !rec.HasField(priceField) || !rec.HasField(qtyField) {
			continue
		}

		amount, err := money.ParseMinor(rec.Field(amountField))
		if err != nil {
			out = append(out, blocking("line-arithmetic", "line %d: unparseable amount %q", n, rec.Field(amountField)))
			continue
		}

		price, err := money.ParseMinor(rec.Field(priceField))
		if err != nil {
			out = append(out, blocking("line-arithmetic", "line %d: unparseable unit price %q", n, rec.Field(priceField)))
			continue
		}

		qty, err := money.ParseQuantity(rec.Field(qtyField))
		if err != nil {
			out = append(out, blocking("line-arithmetic", "line %d: unparseable quantity %q", n, rec.Field(qtyField)))
			continue
		}

		expected := qty.Mul(decimal.NewFromInt(price)).Round(0).IntPart()

		switch gap := money.Abs(expected - amount); {
		case gap == 0:
		case gap <= amountTolerance:
			out = append(out, warning("line-arithmetic", "line %d: price×quantity differs from amount by %d minor units", n, gap))
		default:
			out = append(out, blocking("line-arithmetic", "line %d: price×quantity differs from amount by %d minor units", n, gap))
		}
	}

	return out
}

// checkTotalConsistency compares the declared total against the sum of
// line amounts, with the same tolerance split as line arithmetic.
func checkTotalConsistency(rec *staging.RawRecord) []staging.Violation {
	lines := rec.Lines()
	if len(lines) == 0 || !rec.HasField(staging.FieldTotalAmount) {
		return nil
	}

	total, err := money.ParseMinor(rec.Field(staging.FieldTotalAmount))
	if err != nil {
		return []staging.Violation{blocking("total-consistency", "unparseable total amount %q", rec.Field(staging.FieldTotalAmount))}
	}

	var sum int64

	for _, n := range lines {
		amount, err := money.ParseMinor(rec.Field(staging.LineField(n, "amount")))
		if err != nil {
			// line-arithmetic already reports the parse failure
			return nil
		}

		sum += amount
	}

	switch gap := money.Abs(total - sum); {
	case gap == 0:
		return nil
	case gap <= amountTolerance:
		return []staging.Violation{warning("total-consistency", "lines sum to %d, declared total is %d", sum, total)}
	default:
		return []staging.Violation{blocking("total-consistency", "lines sum to %d, declared total is %d", sum, total)}
	}
}

// checkTaxCodeCategory is the cross-field rule: a declared tax code must
// be allowed for the declared category. Warning-level; the record still
// progresses but the finding stays on its report.
func checkTaxCodeCategory(rec *staging.RawRecord) []staging.Violation {
	category := rec.Field(staging.FieldCategory)
	taxCode := rec.Field(staging.FieldTaxCode)

	if category == "" || taxCode == "" {
		return nil
	}

	allowed, known := allowedTaxCodes[category]
	if !known {
		// Unmapped categories resolve to a sentinel downstream; no
		// tax-code constraint applies to them here.
		return nil
	}

	if !allowed[taxCode] {
		return []staging.Violation{warning("tax-code-category", "tax code %q is not allowed for category %q", taxCode, category)}
	}

	return nil
}
