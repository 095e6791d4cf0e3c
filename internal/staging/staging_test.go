package staging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mgirard/ledgerline/internal/staging"
)

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, staging.StatusIntegrated.Terminal())
	assert.True(t, staging.StatusDuplicate.Terminal())
	assert.True(t, staging.StatusRejected.Terminal())

	assert.False(t, staging.StatusExtracted.Terminal())
	assert.False(t, staging.StatusValidated.Terminal())
	assert.False(t, staging.StatusNeedsCompletion.Terminal())
	assert.False(t, staging.StatusNeedsReview.Terminal())
}

func TestRawRecord_Lines(t *testing.T) {
	rec := &staging.RawRecord{Fields: map[string]string{
		staging.LineField(1, "amount"): "10,00",
		staging.LineField(2, "amount"): "20,00",
		// line 3 missing: enumeration stops at the gap.
		staging.LineField(4, "amount"): "40,00",
	}}

	assert.Equal(t, []int{1, 2}, rec.Lines())
	assert.Empty(t, (&staging.RawRecord{Fields: map[string]string{}}).Lines())
}

func TestRawRecord_OverallConfidence(t *testing.T) {
	rec := &staging.RawRecord{Confidence: map[string]int{
		staging.FieldSupplierID:  95,
		staging.FieldIssueDate:   72,
		staging.FieldTotalAmount: 88,
	}}

	assert.Equal(t, 72, rec.OverallConfidence())
	assert.Equal(t, 0, (&staging.RawRecord{}).OverallConfidence())
}

func TestService_Ingest(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("defaults status to extracted", func(t *testing.T) {
		repo := staging.NewMockRepository(ctrl)
		repo.EXPECT().InsertRecords(gomock.Any(), gomock.Any()).Return(nil)

		records := []*staging.RawRecord{{ExternalID: "FA-1", Kind: staging.KindInvoice}}

		err := staging.NewService(repo).Ingest(context.Background(), records)
		require.NoError(t, err)
		assert.Equal(t, staging.StatusExtracted, records[0].Status)
	})

	t.Run("rejects records already past extraction", func(t *testing.T) {
		repo := staging.NewMockRepository(ctrl)

		records := []*staging.RawRecord{{ExternalID: "FA-1", Status: staging.StatusIntegrated}}

		err := staging.NewService(repo).Ingest(context.Background(), records)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot ingest")
	})

	t.Run("empty delivery is a no-op", func(t *testing.T) {
		repo := staging.NewMockRepository(ctrl)

		err := staging.NewService(repo).Ingest(context.Background(), nil)
		require.NoError(t, err)
	})
}
