package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgirard/ledgerline/internal/staging"
	"github.com/mgirard/ledgerline/internal/validation"
)

func invoiceRecord(confidence int) *staging.RawRecord {
	return &staging.RawRecord{
		Kind: staging.KindInvoice,
		Fields: map[string]string{
			staging.FieldSupplierID:    "552100554",
			staging.FieldInvoiceNumber: "FA-2024-0187",
			staging.FieldIssueDate:     "2024-06-12",
			staging.FieldTotalAmount:   "100,00",
			staging.FieldCategory:      "FOURNITURES",
			staging.FieldTaxCode:       "TVA20",
			staging.LineField(1, "amount"):     "60,00",
			staging.LineField(1, "unit_price"): "30,00",
			staging.LineField(1, "quantity"):   "2",
			staging.LineField(2, "amount"):     "40,00",
		},
		Confidence: map[string]int{
			staging.FieldSupplierID:  confidence,
			staging.FieldTotalAmount: confidence,
		},
	}
}

func TestEngine_Validate(t *testing.T) {
	type testCase struct {
		name       string
		mutate     func(rec *staging.RawRecord)
		confidence int
		wantStatus staging.Status
		wantRules  []string
	}

	tests := []testCase{
		{
			name:       "CleanRecord",
			confidence: 90,
			wantStatus: staging.StatusValidated,
		},
		{
			name:       "LowConfidenceNeedsReview",
			confidence: 55,
			wantStatus: staging.StatusNeedsReview,
		},
		{
			name: "MissingSupplierBlocks",
			mutate: func(rec *staging.RawRecord) {
				delete(rec.Fields, staging.FieldSupplierID)
			},
			confidence: 90,
			wantStatus: staging.StatusNeedsCompletion,
			wantRules:  []string{"required-fields"},
		},
		{
			name: "BadSupplierFormatBlocks",
			mutate: func(rec *staging.RawRecord) {
				rec.Fields[staging.FieldSupplierID] = "55210"
			},
			confidence: 90,
			wantStatus: staging.StatusNeedsCompletion,
			wantRules:  []string{"identifier-format"},
		},
		{
			name: "BadDateBlocks",
			mutate: func(rec *staging.RawRecord) {
				rec.Fields[staging.FieldIssueDate] = "12/06/2024"
			},
			confidence: 90,
			wantStatus: staging.StatusNeedsCompletion,
			wantRules:  []string{"date-format"},
		},
		{
			name: "OneCentGapIsWarningOnly",
			mutate: func(rec *staging.RawRecord) {
				// total=100.00, lines sum to 99.99
				rec.Fields[staging.LineField(2, "amount")] = "39,99"
			},
			confidence: 90,
			wantStatus: staging.StatusValidated,
			wantRules:  []string{"total-consistency"},
		},
		{
			name: "LargeTotalGapBlocks",
			mutate: func(rec *staging.RawRecord) {
				rec.Fields[staging.LineField(2, "amount")] = "25,00"
			},
			confidence: 90,
			wantStatus: staging.StatusNeedsCompletion,
			wantRules:  []string{"total-consistency"},
		},
		{
			name: "LineArithmeticGapBlocks",
			mutate: func(rec *staging.RawRecord) {
				// 30.00 × 2 = 60.00 against a declared 65.00
				rec.Fields[staging.LineField(1, "amount")] = "65,00"
			},
			confidence: 90,
			wantStatus: staging.StatusNeedsCompletion,
		},
		{
			name: "DisallowedTaxCodeIsWarning",
			mutate: func(rec *staging.RawRecord) {
				rec.Fields[staging.FieldTaxCode] = "TVA55"
			},
			confidence: 90,
			wantStatus: staging.StatusValidated,
			wantRules:  []string{"tax-code-category"},
		},
	}

	engine := validation.NewEngine(validation.DefaultRules(), 70)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := invoiceRecord(tt.confidence)
			if tt.mutate != nil {
				tt.mutate(rec)
			}

			res := engine.Validate(rec)
			status := engine.Outcome(rec, res)

			assert.Equal(t, tt.wantStatus, status)

			var gotRules []string
			for _, v := range res.Violations {
				gotRules = append(gotRules, v.RuleID)
			}

			for _, want := range tt.wantRules {
				assert.Contains(t, gotRules, want)
			}
		})
	}
}

func TestEngine_ScenarioA_OneCentGap(t *testing.T) {
	engine := validation.NewEngine(validation.DefaultRules(), 70)

	rec := invoiceRecord(70)
	rec.Fields[staging.LineField(2, "amount")] = "39,99"

	res := engine.Validate(rec)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "total-consistency", res.Violations[0].RuleID)
	assert.Equal(t, staging.SeverityWarning, res.Violations[0].Severity)
	assert.Equal(t, staging.StatusValidated, engine.Outcome(rec, res))
}

func TestEngine_Deterministic(t *testing.T) {
	engine := validation.NewEngine(validation.DefaultRules(), 70)

	rec := invoiceRecord(60)
	delete(rec.Fields, staging.FieldInvoiceNumber)
	rec.Fields[staging.FieldSupplierID] = "bad"
	rec.Fields[staging.LineField(2, "amount")] = "39,98"

	first := engine.Validate(rec)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, engine.Validate(rec))
	}
}

func TestEngine_MovementRules(t *testing.T) {
	engine := validation.NewEngine(validation.DefaultRules(), 70)

	rec := &staging.RawRecord{
		Kind: staging.KindMovement,
		Fields: map[string]string{
			staging.FieldAccountKey: "BQ-COURANT-01",
			staging.FieldIBAN:       "FR7630006000011234567890189",
			staging.FieldValueDate:  "2024-06-03",
			staging.FieldAmount:     "-1.500,00",
		},
		Confidence: map[string]int{staging.FieldAmount: 95},
	}

	res := engine.Validate(rec)
	assert.Empty(t, res.Violations)
	assert.Equal(t, staging.StatusValidated, engine.Outcome(rec, res))

	rec.Fields[staging.FieldIBAN] = "FR76-not-an-iban"
	res = engine.Validate(rec)
	require.NotEmpty(t, res.Violations)
	assert.Equal(t, staging.StatusNeedsCompletion, engine.Outcome(rec, res))
}
