// Package reconcile pairs bank movements with the documents they
// settle. Settled amounts are always recomputed as the sum over links,
// never patched in place, so the conservation invariants cannot drift.
package reconcile

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mgirard/ledgerline/internal/fact"
)

// Link allocates part of a movement's amount to one document. Several
// links may settle one document, and one movement may pay several
// documents.
type Link struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	MovementID     uuid.UUID
	DocumentID     uuid.UUID
	AllocatedMinor int64
	CreatedAt      time.Time
}

// Candidate is a ranked suggestion for settling a movement.
type Candidate struct {
	Document     *fact.Fact
	DiffMinor    int64
	DateDiffDays int
}

// Tolerance returns the acceptance band for a movement of absolute
// amount a: max(pct*a, 1 minor unit). Computed in decimal so float
// representation error cannot shave a unit off the band.
func Tolerance(a int64, pct float64) int64 {
	band := decimal.NewFromInt(a).
		Mul(decimal.NewFromFloat(pct)).
		Round(0).
		IntPart()
	if band < 1 {
		band = 1
	}

	return band
}

// DateDiffDays is the absolute distance in whole days between two dates.
func DateDiffDays(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}

	return int(d.Hours() / 24)
}

// documentStatus derives a document's workflow status from its settled
// amount.
func documentStatus(amount, settled int64) fact.Status {
	switch {
	case settled == 0:
		return fact.StatusPending
	case settled < amount:
		return fact.StatusPartiallySettled
	default:
		return fact.StatusSettled
	}
}
