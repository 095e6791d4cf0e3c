package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMinor parses an extracted amount string into minor units (cents).
// Extraction output is inconsistent about separators, so both European
// ("1.234,56") and plain ("1234.56") notations are accepted.
func ParseMinor(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return 0, fmt.Errorf("empty amount")
	}

	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, " ", "")

	if strings.Contains(clean, ",") {
		// European notation: dots are thousands separators.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// Tax computes base × rate/100 in minor units, rounded half-up.
// rateBasisPoints is the rate in hundredths of a percent (20.00% = 2000).
func Tax(baseMinor, rateBasisPoints int64) int64 {
	return decimal.NewFromInt(baseMinor).
		Mul(decimal.NewFromInt(rateBasisPoints)).
		Div(decimal.NewFromInt(10000)).
		Round(0).
		IntPart()
}

// UnitPrice normalizes a line amount by its physical quantity, in minor
// units rounded half-up. Returns 0 when the quantity is not positive.
func UnitPrice(amountMinor int64, quantity decimal.Decimal) int64 {
	if !quantity.IsPositive() {
		return 0
	}

	return decimal.NewFromInt(amountMinor).
		Div(quantity).
		Round(0).
		IntPart()
}

// ParseQuantity parses a physical quantity, accepting comma decimals.
func ParseQuantity(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty quantity")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing quantity %q: %w", s, err)
	}

	return d, nil
}

// ParseRate parses a percentage ("20", "5,5") into basis points (2000, 550).
func ParseRate(s string) (int64, error) {
	clean := strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if clean == "" {
		return 0, fmt.Errorf("empty rate")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("parsing rate %q: %w", s, err)
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// Abs returns the absolute value of a minor-unit amount.
func Abs(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}
