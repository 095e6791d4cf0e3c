package dimension_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mgirard/ledgerline/internal/dimension"
	"github.com/mgirard/ledgerline/internal/retry"
)

var fastRetry = retry.Policy{Attempts: 3, Backoff: time.Millisecond}

func TestService_Upsert_FirstVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := dimension.NewMockRepository(ctrl)
	utx := dimension.NewMockUpsertTx(ctrl)
	svc := dimension.NewService(repo, fastRetry)

	tenant := uuid.New()
	effective := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	attrs := map[string]string{"label": "Compte courant", "bank": "CA"}

	repo.EXPECT().BeginUpsert(gomock.Any(), tenant, dimension.KindAccount, "BQ-01").Return(utx, nil)
	utx.EXPECT().Current(gomock.Any()).Return(nil, dimension.ErrNotFound)
	utx.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, v *dimension.Version) error {
		v.ID = uuid.New()
		return nil
	})
	utx.EXPECT().Commit().Return(nil)
	utx.EXPECT().Rollback().Return(nil)

	v, err := svc.Upsert(context.Background(), tenant, dimension.KindAccount, "BQ-01", attrs, effective)
	require.NoError(t, err)
	assert.True(t, v.Current)
	assert.Nil(t, v.ValidTo)
	assert.Equal(t, effective, v.ValidFrom)
}

// Scenario: attributes change on 2024-06-01 while a version is open
// since 2024-01-01. The old version must close on 2024-05-31 and the
// new one open on 2024-06-01.
func TestService_Upsert_ClosesAndOpens(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := dimension.NewMockRepository(ctrl)
	utx := dimension.NewMockUpsertTx(ctrl)
	svc := dimension.NewService(repo, fastRetry)

	tenant := uuid.New()
	openSince := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	effective := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	current := &dimension.Version{
		ID:          uuid.New(),
		TenantID:    tenant,
		Kind:        dimension.KindAccount,
		BusinessKey: "BQ-01",
		Attrs:       map[string]string{"label": "Compte courant", "bank": "CA"},
		ValidFrom:   openSince,
		Current:     true,
	}

	repo.EXPECT().BeginUpsert(gomock.Any(), tenant, dimension.KindAccount, "BQ-01").Return(utx, nil)
	utx.EXPECT().Current(gomock.Any()).Return(current, nil)
	utx.EXPECT().
		Close(gomock.Any(), current.ID, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)).
		Return(nil)
	utx.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, v *dimension.Version) error {
		v.ID = uuid.New()
		return nil
	})
	utx.EXPECT().Commit().Return(nil)
	utx.EXPECT().Rollback().Return(nil)

	v, err := svc.Upsert(context.Background(), tenant, dimension.KindAccount, "BQ-01",
		map[string]string{"label": "Compte courant", "bank": "BNP"}, effective)
	require.NoError(t, err)
	assert.Equal(t, effective, v.ValidFrom)
	assert.True(t, v.Current)
	assert.Nil(t, v.ValidTo)
}

// Scenario: a second observation arrives effective the same day the
// current version opened. The attrs are corrected in place; closing the
// version would put valid_to before valid_from.
func TestService_Upsert_SameDayChangeReplacesInPlace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := dimension.NewMockRepository(ctrl)
	utx := dimension.NewMockUpsertTx(ctrl)
	svc := dimension.NewService(repo, fastRetry)

	tenant := uuid.New()
	openSince := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	corrected := map[string]string{"label": "Compte courant", "bank": "BNP"}

	current := &dimension.Version{
		ID:          uuid.New(),
		TenantID:    tenant,
		Kind:        dimension.KindAccount,
		BusinessKey: "BQ-01",
		Attrs:       map[string]string{"label": "Compte courant", "bank": "CA"},
		ValidFrom:   openSince,
		Current:     true,
	}

	repo.EXPECT().BeginUpsert(gomock.Any(), tenant, dimension.KindAccount, "BQ-01").Return(utx, nil)
	utx.EXPECT().Current(gomock.Any()).Return(current, nil)
	utx.EXPECT().Replace(gomock.Any(), current.ID, corrected).Return(nil)
	utx.EXPECT().Commit().Return(nil)
	utx.EXPECT().Rollback().Return(nil)
	// No Close, no Insert.

	v, err := svc.Upsert(context.Background(), tenant, dimension.KindAccount, "BQ-01", corrected, openSince)
	require.NoError(t, err)
	assert.Equal(t, current.ID, v.ID)
	assert.Equal(t, corrected, v.Attrs)
	assert.Equal(t, openSince, v.ValidFrom)
	assert.True(t, v.Current)
	assert.Nil(t, v.ValidTo)
}

func TestService_Upsert_EqualAttrsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := dimension.NewMockRepository(ctrl)
	utx := dimension.NewMockUpsertTx(ctrl)
	svc := dimension.NewService(repo, fastRetry)

	tenant := uuid.New()
	attrs := map[string]string{"label": "Compte courant"}

	current := &dimension.Version{
		ID:          uuid.New(),
		BusinessKey: "BQ-01",
		Attrs:       map[string]string{"label": "Compte courant"},
		ValidFrom:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Current:     true,
	}

	repo.EXPECT().BeginUpsert(gomock.Any(), tenant, dimension.KindAccount, "BQ-01").Return(utx, nil)
	utx.EXPECT().Current(gomock.Any()).Return(current, nil)
	utx.EXPECT().Rollback().Return(nil)
	// No Close, no Insert, no Commit.

	v, err := svc.Upsert(context.Background(), tenant, dimension.KindAccount, "BQ-01", attrs,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, current.ID, v.ID)
}

func TestService_Upsert_RetriesOnConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := dimension.NewMockRepository(ctrl)
	utxFail := dimension.NewMockUpsertTx(ctrl)
	utxOK := dimension.NewMockUpsertTx(ctrl)
	svc := dimension.NewService(repo, fastRetry)

	tenant := uuid.New()
	effective := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		repo.EXPECT().BeginUpsert(gomock.Any(), tenant, dimension.KindSupplier, "552100554").Return(utxFail, nil),
		repo.EXPECT().BeginUpsert(gomock.Any(), tenant, dimension.KindSupplier, "552100554").Return(utxOK, nil),
	)

	utxFail.EXPECT().Current(gomock.Any()).Return(nil, dimension.ErrConflict)
	utxFail.EXPECT().Rollback().Return(nil)

	utxOK.EXPECT().Current(gomock.Any()).Return(nil, dimension.ErrNotFound)
	utxOK.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	utxOK.EXPECT().Commit().Return(nil)
	utxOK.EXPECT().Rollback().Return(nil)

	_, err := svc.Upsert(context.Background(), tenant, dimension.KindSupplier, "552100554",
		map[string]string{"name": "ACME SAS"}, effective)
	require.NoError(t, err)
}

func TestService_Upsert_EffectiveBeforeCurrentFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := dimension.NewMockRepository(ctrl)
	utx := dimension.NewMockUpsertTx(ctrl)
	svc := dimension.NewService(repo, fastRetry)

	tenant := uuid.New()

	current := &dimension.Version{
		ID:        uuid.New(),
		Attrs:     map[string]string{"name": "ACME SAS"},
		ValidFrom: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Current:   true,
	}

	repo.EXPECT().BeginUpsert(gomock.Any(), tenant, dimension.KindSupplier, "552100554").Return(utx, nil)
	utx.EXPECT().Current(gomock.Any()).Return(current, nil)
	utx.EXPECT().Rollback().Return(nil)

	_, err := svc.Upsert(context.Background(), tenant, dimension.KindSupplier, "552100554",
		map[string]string{"name": "ACME SA"}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

func TestVersion_Covers(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	closed := &dimension.Version{ValidFrom: from, ValidTo: &to}
	open := &dimension.Version{ValidFrom: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}

	assert.True(t, closed.Covers(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, closed.Covers(to))
	assert.False(t, closed.Covers(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, closed.Covers(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))

	assert.True(t, open.Covers(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, open.Covers(to))

	// The two versions tile time: the closed one ends the day before
	// the open one starts.
	boundary := to.AddDate(0, 0, 1)
	assert.False(t, closed.Covers(boundary))
	assert.True(t, open.Covers(boundary))
}
