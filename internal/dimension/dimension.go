package dimension

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies a reference entity family kept under SCD2 history.
type Kind string

const (
	KindAccount  Kind = "account"
	KindSupplier Kind = "supplier"
	KindProduct  Kind = "product"
)

// UnknownBusinessKey is the sentinel business key facts point at when a
// reference could not be resolved at load time. One sentinel version
// exists per (tenant, kind) and is never closed.
const UnknownBusinessKey = "__UNKNOWN__"

// Version is one temporal slice of a reference entity. Validity is day
// granular: a version covers [ValidFrom, ValidTo] inclusive, and the
// open version has ValidTo == nil. Per business key exactly one version
// is current, and the slices tile time without gap or overlap.
type Version struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Kind        Kind
	BusinessKey string
	Attrs       map[string]string
	ValidFrom   time.Time
	ValidTo     *time.Time
	Current     bool
	CreatedAt   time.Time
}

// Covers reports whether asOf falls inside the version's validity.
func (v *Version) Covers(asOf time.Time) bool {
	day := asOf.Truncate(24 * time.Hour)

	if day.Before(v.ValidFrom) {
		return false
	}

	return v.ValidTo == nil || !day.After(*v.ValidTo)
}

// AttrsEqual compares attribute payloads; an equal payload makes an
// upsert a no-op instead of opening a redundant version.
func AttrsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}

	for k, av := range a {
		if bv, ok := b[k]; !ok || av != bv {
			return false
		}
	}

	return true
}
