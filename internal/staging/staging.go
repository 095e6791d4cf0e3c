package staging

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a staged record.
type Status string

const (
	StatusExtracted       Status = "EXTRACTED"
	StatusValidated       Status = "VALIDATED"
	StatusNeedsCompletion Status = "NEEDS_COMPLETION"
	StatusNeedsReview     Status = "NEEDS_REVIEW"
	StatusDuplicate       Status = "DUPLICATE"
	StatusRejected        Status = "REJECTED"
	StatusIntegrated      Status = "INTEGRATED"
)

// Terminal reports whether a record in this status is done for the batch.
// Re-running a batch skips terminal records, which is what makes a batch
// safely re-runnable after a partial failure.
func (s Status) Terminal() bool {
	return s == StatusIntegrated || s == StatusDuplicate || s == StatusRejected
}

// Kind identifies which family of fact a staged record produces.
type Kind string

const (
	KindInvoice  Kind = "invoice"
	KindPayment  Kind = "payment"
	KindMovement Kind = "movement"
)

// Severity of a validation rule violation.
type Severity string

const (
	SeverityBlocking Severity = "BLOCKING"
	SeverityWarning  Severity = "WARNING"
)

// Violation is one validation finding attached to a record. The slice
// order follows rule-set order, so re-validation reproduces it exactly.
type Violation struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Well-known raw field names produced by the extractor.
const (
	FieldSupplierID    = "supplier_id"
	FieldInvoiceNumber = "invoice_number"
	FieldIssueDate     = "issue_date"
	FieldTotalAmount   = "total_amount"
	FieldTaxRate       = "tax_rate"
	FieldTaxCode       = "tax_code"
	FieldCategory      = "category"
	FieldProductCode   = "product_code"
	FieldAccountKey    = "account_key"
	FieldIBAN          = "iban"
	FieldValueDate     = "value_date"
	FieldAmount        = "amount"
	FieldLabel         = "label"
)

// LineField names an indexed invoice line field, e.g. line_2_amount.
// The extractor flattens line items into numbered key/value pairs.
func LineField(n int, suffix string) string {
	return fmt.Sprintf("line_%d_%s", n, suffix)
}

// RawRecord is a staged extraction result awaiting promotion into a fact.
// The extractor creates it; only the pipeline mutates it afterwards.
type RawRecord struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	BatchID    uuid.UUID
	Kind       Kind
	Source     string
	ExternalID string
	Fields     map[string]string
	Confidence map[string]int
	Status     Status
	Violations []Violation
	FactID     *uuid.UUID
	ErrorNote  string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Field returns a raw field value, empty string when absent.
func (r *RawRecord) Field(name string) string {
	return r.Fields[name]
}

// HasField reports whether the extractor produced a non-empty value.
func (r *RawRecord) HasField(name string) bool {
	return r.Fields[name] != ""
}

// Lines enumerates the indexed line numbers present on the record,
// in ascending order, stopping at the first gap.
func (r *RawRecord) Lines() []int {
	var lines []int

	for n := 1; ; n++ {
		if !r.HasField(LineField(n, "amount")) {
			break
		}

		lines = append(lines, n)
	}

	return lines
}

// OverallConfidence is the lowest per-field confidence across the fields
// the extractor scored. A record with no scores at all counts as 0.
func (r *RawRecord) OverallConfidence() int {
	if len(r.Confidence) == 0 {
		return 0
	}

	lowest := 100
	for _, c := range r.Confidence {
		if c < lowest {
			lowest = c
		}
	}

	return lowest
}

// ReportEntry is one row of a batch validation report.
type ReportEntry struct {
	RecordID   uuid.UUID
	ExternalID string
	Status     Status
	Violations []Violation
	ErrorNote  string
}
