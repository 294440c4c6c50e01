package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/club-invaders/fanclub/internal/cache"
	"github.com/club-invaders/fanclub/internal/defaults"
	"github.com/club-invaders/fanclub/internal/entity"
	repo "github.com/club-invaders/fanclub/internal/repository/settings"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

type fakeRepo struct {
	rows      map[string]json.RawMessage
	getErr    error
	upsertErr error
	upserts   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[string]json.RawMessage)}
}

func (f *fakeRepo) GetByKey(_ context.Context, key string) (*entity.Setting, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	value, ok := f.rows[key]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &entity.Setting{Key: key, Value: value}, nil
}

func (f *fakeRepo) Upsert(_ context.Context, key string, value json.RawMessage) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts++
	f.rows[key] = value
	return nil
}

type spyStore struct {
	*cache.MemoryStore
	deletes []string
}

func newSpyStore() *spyStore {
	return &spyStore{MemoryStore: cache.NewMemoryStore(time.Minute)}
}

func (s *spyStore) Delete(ctx context.Context, key string) error {
	s.deletes = append(s.deletes, key)
	return s.MemoryStore.Delete(ctx, key)
}

func newTestService(r Repository, store cache.Store) *Service {
	return &Service{
		repo:     r,
		cache:    store,
		cacheTTL: time.Minute,
		logger:   zap.NewNop(),
	}
}

func TestBankInfoFallsBackWhenMissing(t *testing.T) {
	svc := newTestService(newFakeRepo(), newSpyStore())

	info, fallback := svc.BankInfo(context.Background())
	assert.True(t, fallback)
	assert.Equal(t, defaults.BankTransferInfo(), info)
}

func TestBankInfoFallsBackOnRepoError(t *testing.T) {
	r := newFakeRepo()
	r.getErr = errors.New("connection refused")
	svc := newTestService(r, newSpyStore())

	info, fallback := svc.BankInfo(context.Background())
	assert.True(t, fallback)
	assert.Equal(t, "Club Invaders", info.AccountName)
}

func TestBankInfoFallsBackOnCorruptValue(t *testing.T) {
	r := newFakeRepo()
	r.rows[entity.SettingBankTransferInfo] = json.RawMessage(`{"bankName":`)
	svc := newTestService(r, newSpyStore())

	_, fallback := svc.BankInfo(context.Background())
	assert.True(t, fallback)
}

func TestBankInfoReadsStoredRow(t *testing.T) {
	r := newFakeRepo()
	stored := entity.BankTransferInfo{BankName: "MIB", AccountName: "Invaders FC", AccountNumber: "9990001"}
	raw, err := json.Marshal(stored)
	require.NoError(t, err)
	r.rows[entity.SettingBankTransferInfo] = raw

	svc := newTestService(r, newSpyStore())
	info, fallback := svc.BankInfo(context.Background())
	assert.False(t, fallback)
	assert.Equal(t, stored, info)
}

func TestBankInfoCachesReads(t *testing.T) {
	r := newFakeRepo()
	stored := entity.BankTransferInfo{BankName: "MIB", AccountName: "Invaders FC", AccountNumber: "9990001"}
	raw, err := json.Marshal(stored)
	require.NoError(t, err)
	r.rows[entity.SettingBankTransferInfo] = raw

	store := newSpyStore()
	svc := newTestService(r, store)

	_, fallback := svc.BankInfo(context.Background())
	require.False(t, fallback)

	// Repo failure is invisible while the cache holds the value.
	r.getErr = errors.New("down")
	info, fallback := svc.BankInfo(context.Background())
	assert.False(t, fallback)
	assert.Equal(t, "MIB", info.BankName)
}

func TestUpdateBankInfoValidation(t *testing.T) {
	r := newFakeRepo()
	svc := newTestService(r, newSpyStore())

	cases := []entity.BankTransferInfo{
		{AccountName: "A", AccountNumber: "1"},
		{BankName: "B", AccountNumber: "1"},
		{BankName: "B", AccountName: "A"},
	}
	for _, info := range cases {
		err := svc.UpdateBankInfo(context.Background(), info)
		require.Error(t, err)
		assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
	}
	assert.Zero(t, r.upserts)
}

func TestUpdateBankInfoInvalidatesCache(t *testing.T) {
	r := newFakeRepo()
	store := newSpyStore()
	svc := newTestService(r, store)

	err := svc.UpdateBankInfo(context.Background(), entity.BankTransferInfo{
		BankName: "MIB", AccountName: "Invaders FC", AccountNumber: "9990001",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, r.upserts)
	assert.Equal(t, []string{"settings:" + entity.SettingBankTransferInfo}, store.deletes)
}

func TestFailedUpdateLeavesCache(t *testing.T) {
	r := newFakeRepo()
	r.upsertErr = errors.New("disk full")
	store := newSpyStore()
	svc := newTestService(r, store)

	err := svc.UpdateBankInfo(context.Background(), entity.BankTransferInfo{
		BankName: "MIB", AccountName: "Invaders FC", AccountNumber: "9990001",
	})
	require.Error(t, err)
	assert.Equal(t, errorbank.KindInternal, errorbank.From(err).Kind())
	assert.Empty(t, store.deletes)
}

func TestSizeGuideFallback(t *testing.T) {
	svc := newTestService(newFakeRepo(), newSpyStore())

	guide, fallback := svc.SizeGuide(context.Background())
	assert.True(t, fallback)
	assert.Len(t, guide.Adult, 6)
	assert.Len(t, guide.Kids, 6)
	assert.Equal(t, "XS", guide.Adult[0].Size)
	assert.Equal(t, "4", guide.Kids[0].Size)
}

func TestUpdateSizeGuideRoundTrip(t *testing.T) {
	r := newFakeRepo()
	svc := newTestService(r, newSpyStore())

	guide := entity.SizeGuide{
		Adult: []entity.SizeGuideRow{{Size: "M", Chest: `38"`, Length: `28"`, Shoulder: `18"`}},
		Kids:  []entity.SizeGuideRow{{Size: "8", Chest: `26"`, Length: `20"`, Age: "7-8"}},
	}
	require.NoError(t, svc.UpdateSizeGuide(context.Background(), guide))

	got, fallback := svc.SizeGuide(context.Background())
	assert.False(t, fallback)
	assert.Equal(t, guide, got)
}
