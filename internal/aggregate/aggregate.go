package aggregate

import (
	"time"

	"github.com/google/uuid"
)

// Tier grades budget consumption for a period.
type Tier string

const (
	TierOK        Tier = "OK"          // < 75%
	TierAttention Tier = "ATTENTION"   // < 90%
	TierAlert     Tier = "ALERTE"      // < 100%
	TierOverrun   Tier = "DEPASSEMENT" // >= 100%
)

// Key addresses one aggregate: a budget dimension (category code) in
// one YYYY-MM period.
type Key struct {
	DimensionKey string
	Period       string
}

// Aggregate compares realized spending against the planned envelope.
// Realized is always a full re-sum over the period's facts.
type Aggregate struct {
	TenantID      uuid.UUID
	DimensionKey  string
	Period        string
	PlannedMinor  int64
	RealizedMinor int64
	Ratio         float64
	Tier          Tier
	UpdatedAt     time.Time
}

// TierOf grades a realized amount against a planned one. A zero plan
// with any realized spending is already an overrun.
func TierOf(plannedMinor, realizedMinor int64) (float64, Tier) {
	if plannedMinor <= 0 {
		if realizedMinor > 0 {
			return 0, TierOverrun
		}

		return 0, TierOK
	}

	ratio := float64(realizedMinor) / float64(plannedMinor)

	switch {
	case ratio < 0.75:
		return ratio, TierOK
	case ratio < 0.90:
		return ratio, TierAttention
	case ratio < 1.0:
		return ratio, TierAlert
	default:
		return ratio, TierOverrun
	}
}
