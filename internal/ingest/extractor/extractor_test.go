package extractor_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgirard/ledgerline/internal/ingest/extractor"
	"github.com/mgirard/ledgerline/internal/staging"
)

func TestParser_InvoiceDelivery(t *testing.T) {
	csv := `Extraction batch;2024-06-20;vendor=docuparse
Tenant;ACME

kind;external_id;supplier_id;supplier_id_confidence;invoice_number;issue_date;issue_date_confidence;total_amount;total_amount_confidence;tax_rate;category
invoice;FA-2024-0042;123456789;95;FA-2024-0042;2024-06-15;88;1.234,56;91;20;FOURNITURES
invoice;FA-2024-0043;987654321;62;FA-2024-0043;2024-06-16;90;500,00;85;10;TRANSPORT
`

	p := extractor.New()
	records, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, staging.KindInvoice, first.Kind)
	assert.Equal(t, "FA-2024-0042", first.ExternalID)
	assert.Equal(t, "123456789", first.Field(staging.FieldSupplierID))
	assert.Equal(t, "1.234,56", first.Field(staging.FieldTotalAmount))
	assert.Equal(t, 95, first.Confidence[staging.FieldSupplierID])
	assert.Equal(t, 88, first.Confidence[staging.FieldIssueDate])
	assert.Equal(t, 91, first.Confidence[staging.FieldTotalAmount])

	// tax_rate has no confidence column so it stays unscored.
	_, scored := first.Confidence[staging.FieldTaxRate]
	assert.False(t, scored)

	assert.Equal(t, 62, records[1].OverallConfidence())
}

func TestParser_LineItems(t *testing.T) {
	csv := `kind;external_id;supplier_id;line_1_amount;line_1_quantity;line_1_unit_price;line_2_amount
invoice;FA-1;123456789;50,00;2;25,00;49,99
`

	p := extractor.New()
	records, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, []int{1, 2}, rec.Lines())
	assert.Equal(t, "50,00", rec.Field(staging.LineField(1, "amount")))
	assert.Equal(t, "49,99", rec.Field(staging.LineField(2, "amount")))
}

func TestParser_UnknownKindFails(t *testing.T) {
	csv := `kind;external_id
receipt;X-1
`

	p := extractor.New()
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown record kind")
}

func TestParser_SkipsFooterRows(t *testing.T) {
	csv := `kind;external_id;supplier_id
invoice;FA-1;123456789
;;
Total;;
`

	p := extractor.New()
	records, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestParser_ClampsConfidence(t *testing.T) {
	csv := `kind;external_id;supplier_id;supplier_id_confidence
invoice;FA-1;123456789;150
`

	p := extractor.New()
	records, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, 100, records[0].Confidence[staging.FieldSupplierID])
}

func TestParser_NoHeader(t *testing.T) {
	p := extractor.New()
	_, err := p.Parse(strings.NewReader("just;some;cells\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no extraction header")
}
