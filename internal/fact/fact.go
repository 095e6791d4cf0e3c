package fact

import (
	"time"

	"github.com/google/uuid"
)

// Kind of financial fact.
type Kind string

const (
	KindInvoice  Kind = "invoice"
	KindPayment  Kind = "payment"
	KindMovement Kind = "movement"
)

// Status is the workflow state of a fact. Documents (invoices, payments)
// settle; bank movements match.
type Status string

const (
	StatusPending          Status = "PENDING"
	StatusPartiallySettled Status = "PARTIALLY_SETTLED"
	StatusSettled          Status = "SETTLED"
	StatusUnmatched        Status = "UNMATCHED"
	StatusMatched          Status = "MATCHED"
)

// CategoryUncategorized is the sentinel an unmapped category code
// resolves to. Mapping misses never block a load.
const CategoryUncategorized = "UNCATEGORIZED"

// Fact is one row of financial history. The natural key
// (tenant, source, external id) carries idempotence; everything except
// Status and SettledMinor is immutable after load.
type Fact struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Source     string
	ExternalID string
	Kind       Kind

	AmountMinor  int64
	TaxMinor     int64
	SettledMinor int64

	IssueDate time.Time
	Period    string // YYYY-MM, derived from IssueDate
	Category  string

	// Dimension surrogate refs current at load time; the UNKNOWN
	// sentinel version substitutes for unresolved keys.
	SupplierVersionID *uuid.UUID
	AccountVersionID  *uuid.UUID
	ProductVersionID  *uuid.UUID

	// NeedsLinking flags a sentinel substitution for later manual
	// relinking.
	NeedsLinking bool

	Status      Status
	RawRecordID uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Outstanding is the unsettled remainder of a document.
func (f *Fact) Outstanding() int64 {
	return f.AmountMinor - f.SettledMinor
}

// PeriodOf formats a date as an aggregation period key.
func PeriodOf(d time.Time) string {
	return d.Format("2006-01")
}

// InitialStatus returns the workflow entry state for a fact kind.
func InitialStatus(kind Kind) Status {
	if kind == KindMovement {
		return StatusUnmatched
	}

	return StatusPending
}

// Outcome of a load call.
type Outcome string

const (
	OutcomeLoaded    Outcome = "LOADED"
	OutcomeDuplicate Outcome = "DUPLICATE"
)

// LoadResult reports what a load did. On DUPLICATE, Fact is the
// pre-existing row and nothing was written.
type LoadResult struct {
	Outcome Outcome
	Fact    *Fact
}
