package reconcile_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mgirard/ledgerline/internal/audit"
	"github.com/mgirard/ledgerline/internal/fact"
	"github.com/mgirard/ledgerline/internal/reconcile"
	"github.com/mgirard/ledgerline/internal/retry"
)

var fastRetry = retry.Policy{Attempts: 3, Backoff: time.Millisecond}

func defaultConfig() reconcile.Config {
	return reconcile.Config{TolerancePct: 0.01, TopK: 5}
}

func movement(tenant uuid.UUID, amount int64, date time.Time) *fact.Fact {
	return &fact.Fact{
		ID:          uuid.New(),
		TenantID:    tenant,
		Kind:        fact.KindMovement,
		AmountMinor: amount,
		IssueDate:   date,
		Status:      fact.StatusUnmatched,
	}
}

func document(tenant uuid.UUID, externalID string, amount, settled int64, date time.Time) *fact.Fact {
	status := fact.StatusPending
	if settled > 0 {
		status = fact.StatusPartiallySettled
	}

	return &fact.Fact{
		ID:           uuid.New(),
		TenantID:     tenant,
		ExternalID:   externalID,
		Kind:         fact.KindInvoice,
		AmountMinor:  amount,
		SettledMinor: settled,
		IssueDate:    date,
		Status:       status,
	}
}

// Movement of 150.00 against balances {148.60, 152.00, 90.00} with 1%
// tolerance (±1.50): only 148.60 (diff 1.40) qualifies.
func TestService_Suggest_ToleranceFiltering(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	svc := reconcile.NewService(repo, defaultConfig(), fastRetry)

	tenant := uuid.New()
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	mov := movement(tenant, -15000, date)

	docs := []*fact.Fact{
		document(tenant, "FA-1", 14860, 0, date.AddDate(0, 0, -5)),
		document(tenant, "FA-2", 15200, 0, date.AddDate(0, 0, -2)),
		document(tenant, "FA-3", 9000, 0, date),
	}

	repo.EXPECT().GetMovement(gomock.Any(), tenant, mov.ID).Return(mov, nil)
	repo.EXPECT().MovementAllocated(gomock.Any(), tenant, mov.ID).Return(int64(0), nil)
	repo.EXPECT().CandidateDocuments(gomock.Any(), tenant).Return(docs, nil)

	candidates, err := svc.Suggest(context.Background(), tenant, mov.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "FA-1", candidates[0].Document.ExternalID)
	assert.Equal(t, int64(140), candidates[0].DiffMinor)
}

func TestService_Suggest_RankingAndTopK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	svc := reconcile.NewService(repo, reconcile.Config{TolerancePct: 0.01, TopK: 3}, fastRetry)

	tenant := uuid.New()
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	mov := movement(tenant, -10000, date)

	docs := []*fact.Fact{
		document(tenant, "FA-far", 10050, 0, date.AddDate(0, 0, -30)),
		document(tenant, "FA-near", 10050, 0, date.AddDate(0, 0, -1)),
		document(tenant, "FA-exact", 10000, 0, date.AddDate(0, 0, -10)),
		document(tenant, "FA-b", 9990, 0, date),
		document(tenant, "FA-a", 9990, 0, date),
	}

	repo.EXPECT().GetMovement(gomock.Any(), tenant, mov.ID).Return(mov, nil)
	repo.EXPECT().MovementAllocated(gomock.Any(), tenant, mov.ID).Return(int64(0), nil)
	repo.EXPECT().CandidateDocuments(gomock.Any(), tenant).Return(docs, nil)

	candidates, err := svc.Suggest(context.Background(), tenant, mov.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	// Exact amount first, then the 10-cent gap pair ordered by date
	// proximity, then external id.
	assert.Equal(t, "FA-exact", candidates[0].Document.ExternalID)
	assert.Equal(t, "FA-a", candidates[1].Document.ExternalID)
	assert.Equal(t, "FA-b", candidates[2].Document.ExternalID)
}

func TestService_Suggest_FullyAllocatedMovement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	svc := reconcile.NewService(repo, defaultConfig(), fastRetry)

	tenant := uuid.New()
	mov := movement(tenant, -10000, time.Now())

	repo.EXPECT().GetMovement(gomock.Any(), tenant, mov.ID).Return(mov, nil)
	repo.EXPECT().MovementAllocated(gomock.Any(), tenant, mov.ID).Return(int64(10000), nil)

	candidates, err := svc.Suggest(context.Background(), tenant, mov.ID)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestService_Confirm_PartialThenSettled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	mtx := reconcile.NewMockMatchTx(ctrl)
	svc := reconcile.NewService(repo, defaultConfig(), fastRetry)

	tenant := uuid.New()
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	mov := movement(tenant, -15000, date)
	doc := document(tenant, "FA-1", 15000, 0, date)

	repo.EXPECT().BeginMatch(gomock.Any(), tenant, mov.ID, doc.ID).Return(mtx, nil)
	mtx.EXPECT().Movement(gomock.Any()).Return(mov, nil)
	mtx.EXPECT().Document(gomock.Any()).Return(doc, nil)
	mtx.EXPECT().MovementAllocated(gomock.Any()).Return(int64(0), nil)
	mtx.EXPECT().InsertLink(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *reconcile.Link) error {
		l.ID = uuid.New()
		return nil
	})
	mtx.EXPECT().RecomputeSettled(gomock.Any()).Return(int64(9000), nil)
	mtx.EXPECT().
		SetStatus(gomock.Any(), audit.EntityFact, doc.ID, fact.StatusPending, fact.StatusPartiallySettled, "treasurer").
		Return(nil)
	mtx.EXPECT().Commit().Return(nil)
	mtx.EXPECT().Rollback().Return(nil)

	link, err := svc.Confirm(context.Background(), tenant, mov.ID, doc.ID, 9000, "treasurer")
	require.NoError(t, err)
	assert.Equal(t, int64(9000), link.AllocatedMinor)
}

func TestService_Confirm_FullAllocationMatchesMovement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	mtx := reconcile.NewMockMatchTx(ctrl)
	svc := reconcile.NewService(repo, defaultConfig(), fastRetry)

	tenant := uuid.New()
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	mov := movement(tenant, -6000, date)
	doc := document(tenant, "FA-1", 6000, 0, date)

	repo.EXPECT().BeginMatch(gomock.Any(), tenant, mov.ID, doc.ID).Return(mtx, nil)
	mtx.EXPECT().Movement(gomock.Any()).Return(mov, nil)
	mtx.EXPECT().Document(gomock.Any()).Return(doc, nil)
	mtx.EXPECT().MovementAllocated(gomock.Any()).Return(int64(0), nil)
	mtx.EXPECT().InsertLink(gomock.Any(), gomock.Any()).Return(nil)
	mtx.EXPECT().RecomputeSettled(gomock.Any()).Return(int64(6000), nil)
	mtx.EXPECT().
		SetStatus(gomock.Any(), audit.EntityFact, doc.ID, fact.StatusPending, fact.StatusSettled, "treasurer").
		Return(nil)
	mtx.EXPECT().
		SetStatus(gomock.Any(), audit.EntityMovement, mov.ID, fact.StatusUnmatched, fact.StatusMatched, "treasurer").
		Return(nil)
	mtx.EXPECT().Commit().Return(nil)
	mtx.EXPECT().Rollback().Return(nil)

	_, err := svc.Confirm(context.Background(), tenant, mov.ID, doc.ID, 6000, "treasurer")
	require.NoError(t, err)
}

func TestService_Confirm_ConservationBounds(t *testing.T) {
	type testCase struct {
		name         string
		movAmount    int64
		allocated    int64
		docAmount    int64
		docSettled   int64
		confirmWith  int64
	}

	tests := []testCase{
		{
			name:        "ExceedsMovementRemainder",
			movAmount:   -10000,
			allocated:   9500,
			docAmount:   20000,
			confirmWith: 1000,
		},
		{
			name:        "ExceedsDocumentOutstanding",
			movAmount:   -10000,
			allocated:   0,
			docAmount:   5000,
			docSettled:  4500,
			confirmWith: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := reconcile.NewMockRepository(ctrl)
			mtx := reconcile.NewMockMatchTx(ctrl)
			svc := reconcile.NewService(repo, defaultConfig(), fastRetry)

			tenant := uuid.New()
			date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
			mov := movement(tenant, tt.movAmount, date)
			doc := document(tenant, "FA-1", tt.docAmount, tt.docSettled, date)

			repo.EXPECT().BeginMatch(gomock.Any(), tenant, mov.ID, doc.ID).Return(mtx, nil)
			mtx.EXPECT().Movement(gomock.Any()).Return(mov, nil)
			mtx.EXPECT().Document(gomock.Any()).Return(doc, nil)
			mtx.EXPECT().MovementAllocated(gomock.Any()).Return(tt.allocated, nil)
			mtx.EXPECT().Rollback().Return(nil)
			// No InsertLink, no Commit: the over-allocation is refused.

			_, err := svc.Confirm(context.Background(), tenant, mov.ID, doc.ID, tt.confirmWith, "treasurer")
			require.Error(t, err)
			assert.ErrorIs(t, err, reconcile.ErrOverAllocation)
		})
	}
}

func TestService_Confirm_RejectsNonPositiveAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	svc := reconcile.NewService(repo, defaultConfig(), fastRetry)

	_, err := svc.Confirm(context.Background(), uuid.New(), uuid.New(), uuid.New(), 0, "treasurer")
	assert.Error(t, err)
}

func TestService_Confirm_RetriesOnConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	mtxFail := reconcile.NewMockMatchTx(ctrl)
	mtxOK := reconcile.NewMockMatchTx(ctrl)
	svc := reconcile.NewService(repo, defaultConfig(), fastRetry)

	tenant := uuid.New()
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	mov := movement(tenant, -6000, date)
	doc := document(tenant, "FA-1", 6000, 0, date)

	gomock.InOrder(
		repo.EXPECT().BeginMatch(gomock.Any(), tenant, mov.ID, doc.ID).Return(mtxFail, nil),
		repo.EXPECT().BeginMatch(gomock.Any(), tenant, mov.ID, doc.ID).Return(mtxOK, nil),
	)

	mtxFail.EXPECT().Movement(gomock.Any()).Return(nil, reconcile.ErrConflict)
	mtxFail.EXPECT().Rollback().Return(nil)

	mtxOK.EXPECT().Movement(gomock.Any()).Return(mov, nil)
	mtxOK.EXPECT().Document(gomock.Any()).Return(doc, nil)
	mtxOK.EXPECT().MovementAllocated(gomock.Any()).Return(int64(0), nil)
	mtxOK.EXPECT().InsertLink(gomock.Any(), gomock.Any()).Return(nil)
	mtxOK.EXPECT().RecomputeSettled(gomock.Any()).Return(int64(6000), nil)
	mtxOK.EXPECT().SetStatus(gomock.Any(), audit.EntityFact, doc.ID, fact.StatusPending, fact.StatusSettled, "treasurer").Return(nil)
	mtxOK.EXPECT().SetStatus(gomock.Any(), audit.EntityMovement, mov.ID, fact.StatusUnmatched, fact.StatusMatched, "treasurer").Return(nil)
	mtxOK.EXPECT().Commit().Return(nil)
	mtxOK.EXPECT().Rollback().Return(nil)

	_, err := svc.Confirm(context.Background(), tenant, mov.ID, doc.ID, 6000, "treasurer")
	require.NoError(t, err)
}

func TestService_Unlink_RevertsStatuses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	mtx := reconcile.NewMockMatchTx(ctrl)
	svc := reconcile.NewService(repo, defaultConfig(), fastRetry)

	tenant := uuid.New()
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	mov := movement(tenant, -6000, date)
	mov.Status = fact.StatusMatched

	doc := document(tenant, "FA-1", 6000, 6000, date)
	doc.Status = fact.StatusSettled

	link := &reconcile.Link{
		ID:             uuid.New(),
		TenantID:       tenant,
		MovementID:     mov.ID,
		DocumentID:     doc.ID,
		AllocatedMinor: 6000,
	}

	repo.EXPECT().GetLink(gomock.Any(), tenant, link.ID).Return(link, nil)
	repo.EXPECT().BeginMatch(gomock.Any(), tenant, mov.ID, doc.ID).Return(mtx, nil)
	mtx.EXPECT().Movement(gomock.Any()).Return(mov, nil)
	mtx.EXPECT().Document(gomock.Any()).Return(doc, nil)
	mtx.EXPECT().DeleteLink(gomock.Any(), link.ID).Return(nil)
	mtx.EXPECT().RecomputeSettled(gomock.Any()).Return(int64(0), nil)
	mtx.EXPECT().
		SetStatus(gomock.Any(), audit.EntityFact, doc.ID, fact.StatusSettled, fact.StatusPending, "treasurer").
		Return(nil)
	mtx.EXPECT().MovementAllocated(gomock.Any()).Return(int64(0), nil)
	mtx.EXPECT().
		SetStatus(gomock.Any(), audit.EntityMovement, mov.ID, fact.StatusMatched, fact.StatusUnmatched, "treasurer").
		Return(nil)
	mtx.EXPECT().Commit().Return(nil)
	mtx.EXPECT().Rollback().Return(nil)

	err := svc.Unlink(context.Background(), tenant, link.ID, "treasurer")
	require.NoError(t, err)
}

func TestTolerance(t *testing.T) {
	// 1% of 150.00 is 1.50
	assert.Equal(t, int64(150), reconcile.Tolerance(15000, 0.01))

	// Floor of one minor unit for tiny amounts.
	assert.Equal(t, int64(1), reconcile.Tolerance(50, 0.01))

	// Amounts whose product is inexact in binary float must not lose a
	// unit: 0.29 * 100 is 28.999... as float64.
	assert.Equal(t, int64(29), reconcile.Tolerance(100, 0.29))
	assert.Equal(t, int64(1000), reconcile.Tolerance(100000, 0.01))
}
