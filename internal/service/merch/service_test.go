package merch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/club-invaders/fanclub/internal/cache"
	"github.com/club-invaders/fanclub/internal/defaults"
	"github.com/club-invaders/fanclub/internal/entity"
	repo "github.com/club-invaders/fanclub/internal/repository/merch"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

type fakeRepo struct {
	items     []entity.MerchItem
	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeRepo) List(context.Context) ([]entity.MerchItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*entity.MerchItem, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRepo) Create(_ context.Context, item *entity.MerchItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	item.ID = int64(len(f.items) + 1)
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeRepo) Update(context.Context, *entity.MerchItem) error { return f.updateErr }
func (f *fakeRepo) Delete(context.Context, int64) error             { return f.deleteErr }

// spyStore wraps a memory store and counts invalidations.
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

func TestListServesDefaultsOnRepoError(t *testing.T) {
	svc := newTestService(&fakeRepo{listErr: errors.New("connection refused")}, newSpyStore())

	items, fallback := svc.List(context.Background())
	assert.True(t, fallback)
	require.Len(t, items, 4)
	assert.Equal(t, defaults.MerchItems(), items)
}

func TestListServesDefaultsWhenEmpty(t *testing.T) {
	svc := newTestService(&fakeRepo{}, newSpyStore())

	items, fallback := svc.List(context.Background())
	assert.True(t, fallback)
	assert.Equal(t, defaults.MerchItems(), items)
}

func TestListCachesRealRows(t *testing.T) {
	r := &fakeRepo{items: []entity.MerchItem{{ID: 7, Name: "Scarf", Price: "MVR 100", KidsPrice: "MVR 100"}}}
	store := newSpyStore()
	svc := newTestService(r, store)

	items, fallback := svc.List(context.Background())
	assert.False(t, fallback)
	require.Len(t, items, 1)

	// Second read comes from the cache even if the repo now fails.
	r.listErr = errors.New("connection refused")
	items, fallback = svc.List(context.Background())
	assert.False(t, fallback)
	assert.Equal(t, "Scarf", items[0].Name)
}

func TestFallbackListIsNeverCached(t *testing.T) {
	r := &fakeRepo{listErr: errors.New("down")}
	store := newSpyStore()
	svc := newTestService(r, store)

	_, fallback := svc.List(context.Background())
	require.True(t, fallback)

	_, err := store.Get(context.Background(), "merch:list")
	assert.ErrorIs(t, err, cache.ErrCacheMiss, "defaults must not poison the cache")
}

func TestAddInvalidatesListOnce(t *testing.T) {
	store := newSpyStore()
	svc := newTestService(&fakeRepo{}, store)

	err := svc.Add(context.Background(), &entity.MerchItem{Name: "Scarf", Price: "MVR 100"})
	require.NoError(t, err)
	assert.Equal(t, []string{"merch:list"}, store.deletes)
}

func TestFailedAddLeavesCacheUntouched(t *testing.T) {
	store := newSpyStore()
	svc := newTestService(&fakeRepo{createErr: errors.New("disk full")}, store)

	err := svc.Add(context.Background(), &entity.MerchItem{Name: "Scarf", Price: "MVR 100"})
	require.Error(t, err)
	assert.Empty(t, store.deletes)
}

func TestAddValidation(t *testing.T) {
	svc := newTestService(&fakeRepo{}, newSpyStore())

	err := svc.Add(context.Background(), &entity.MerchItem{Price: "MVR 100"})
	require.Error(t, err)
	assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())

	err = svc.Add(context.Background(), &entity.MerchItem{Name: "Scarf"})
	require.Error(t, err)

	// Missing kids price inherits the adult price.
	item := &entity.MerchItem{Name: "Scarf", Price: "MVR 100"}
	require.NoError(t, svc.Add(context.Background(), item))
	assert.Equal(t, "MVR 100", item.KidsPrice)
}

func TestUpdateMissingItem(t *testing.T) {
	store := newSpyStore()
	svc := newTestService(&fakeRepo{updateErr: repo.ErrNotFound}, store)

	err := svc.Update(context.Background(), &entity.MerchItem{ID: 9, Name: "Scarf", Price: "MVR 100"})
	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
	assert.Empty(t, store.deletes)
}

func TestDeleteInvalidatesList(t *testing.T) {
	store := newSpyStore()
	svc := newTestService(&fakeRepo{}, store)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []string{"merch:list"}, store.deletes)
}

func TestGetFallsBackToDefaultCatalogue(t *testing.T) {
	svc := newTestService(&fakeRepo{getErr: errors.New("connection refused")}, newSpyStore())

	item, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Invaders Jersey", item.Name)
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{}, newSpyStore())

	_, err := svc.Get(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}
