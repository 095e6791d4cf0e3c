package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgirard/ledgerline/internal/money"
)

func TestParseMinor(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "EuropeanThousands", input: "1.234,56", want: 123456},
		{name: "EuropeanNegative", input: "-588,74", want: -58874},
		{name: "EuropeanSimple", input: "10,00", want: 1000},
		{name: "PlainDot", input: "1234.56", want: 123456},
		{name: "PlainInteger", input: "99", want: 9900},
		{name: "NonBreakingSpaces", input: "1 234,50", want: 123450},
		{name: "Empty", input: "", wantErr: true},
		{name: "Garbage", input: "12x,00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseMinor(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTax_HalfUpRounding(t *testing.T) {
	// 10.01 at 5.5% = 0.550550... -> 55 cents
	assert.Equal(t, int64(55), money.Tax(1001, 550))

	// 0.25 at 10% = 0.025 -> rounds half-up to 3 cents
	assert.Equal(t, int64(3), money.Tax(25, 1000))

	// 100.00 at 20% = 20.00
	assert.Equal(t, int64(2000), money.Tax(10000, 2000))
}

func TestUnitPrice(t *testing.T) {
	three := decimal.NewFromInt(3)

	// 10.00 over 3 units -> 3.33
	assert.Equal(t, int64(333), money.UnitPrice(1000, three))

	// non-positive quantity yields zero
	assert.Equal(t, int64(0), money.UnitPrice(1000, decimal.Zero))
}

func TestParseRate(t *testing.T) {
	got, err := money.ParseRate("5,5")
	require.NoError(t, err)
	assert.Equal(t, int64(550), got)

	got, err = money.ParseRate("20")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), got)

	_, err = money.ParseRate("")
	assert.Error(t, err)
}
