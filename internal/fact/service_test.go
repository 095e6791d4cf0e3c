package fact_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mgirard/ledgerline/internal/fact"
)

func invoiceFact(tenant uuid.UUID) *fact.Fact {
	return &fact.Fact{
		TenantID:    tenant,
		Source:      "supplier-portal",
		ExternalID:  "FA-2024-0187",
		Kind:        fact.KindInvoice,
		AmountMinor: 12000,
		TaxMinor:    2000,
		IssueDate:   time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		Category:    "FOURNITURES",
		RawRecordID: uuid.New(),
	}
}

func TestService_Load_DerivesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := fact.NewMockRepository(ctrl)
	svc := fact.NewService(repo)

	tenant := uuid.New()
	f := invoiceFact(tenant)

	repo.EXPECT().Load(gomock.Any(), f).DoAndReturn(func(_ context.Context, got *fact.Fact) (fact.LoadResult, error) {
		got.ID = uuid.New()
		return fact.LoadResult{Outcome: fact.OutcomeLoaded, Fact: got}, nil
	})

	res, err := svc.Load(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, fact.OutcomeLoaded, res.Outcome)
	assert.Equal(t, "2024-06", f.Period)
	assert.Equal(t, fact.StatusPending, f.Status)
}

func TestService_Load_MovementStartsUnmatched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := fact.NewMockRepository(ctrl)
	svc := fact.NewService(repo)

	f := &fact.Fact{
		TenantID:    uuid.New(),
		Source:      "bank-feed",
		ExternalID:  "MV-445",
		Kind:        fact.KindMovement,
		AmountMinor: -15000,
		IssueDate:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		RawRecordID: uuid.New(),
	}

	repo.EXPECT().Load(gomock.Any(), f).Return(fact.LoadResult{Outcome: fact.OutcomeLoaded, Fact: f}, nil)

	_, err := svc.Load(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, fact.StatusUnmatched, f.Status)
}

// Loading the same natural key twice yields exactly one fact; the
// second call reports DUPLICATE.
func TestService_Load_SecondDeliveryIsDuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := fact.NewMockRepository(ctrl)
	svc := fact.NewService(repo)

	tenant := uuid.New()
	first := invoiceFact(tenant)
	second := invoiceFact(tenant)

	existingID := uuid.New()

	gomock.InOrder(
		repo.EXPECT().Load(gomock.Any(), first).DoAndReturn(func(_ context.Context, got *fact.Fact) (fact.LoadResult, error) {
			got.ID = existingID
			return fact.LoadResult{Outcome: fact.OutcomeLoaded, Fact: got}, nil
		}),
		repo.EXPECT().Load(gomock.Any(), second).Return(fact.LoadResult{Outcome: fact.OutcomeDuplicate, Fact: first}, nil),
	)

	res1, err := svc.Load(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, fact.OutcomeLoaded, res1.Outcome)

	res2, err := svc.Load(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, fact.OutcomeDuplicate, res2.Outcome)
	assert.Equal(t, existingID, res2.Fact.ID)
}

func TestService_Load_RejectsIncompleteKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := fact.NewMockRepository(ctrl)
	svc := fact.NewService(repo)

	f := invoiceFact(uuid.New())
	f.ExternalID = ""

	_, err := svc.Load(context.Background(), f)
	assert.Error(t, err)

	f = invoiceFact(uuid.New())
	f.TenantID = uuid.Nil

	_, err = svc.Load(context.Background(), f)
	assert.Error(t, err)
}

func TestFact_Outstanding(t *testing.T) {
	f := &fact.Fact{AmountMinor: 15000, SettledMinor: 4000}
	assert.Equal(t, int64(11000), f.Outstanding())
}
