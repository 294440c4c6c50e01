package hero

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
	repo "github.com/club-invaders/fanclub/internal/repository/hero"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

type fakeRepo struct {
	heroes    []entity.Hero
	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeRepo) List(context.Context) ([]entity.Hero, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.heroes, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*entity.Hero, error) {
	for i := range f.heroes {
		if f.heroes[i].ID == id {
			return &f.heroes[i], nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRepo) Create(_ context.Context, hero *entity.Hero) error {
	if f.createErr != nil {
		return f.createErr
	}
	hero.ID = int64(len(f.heroes) + 1)
	f.heroes = append(f.heroes, *hero)
	return nil
}

func (f *fakeRepo) Update(context.Context, *entity.Hero) error { return f.updateErr }
func (f *fakeRepo) Delete(context.Context, int64) error        { return f.deleteErr }

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

func TestListServesDefaultRosterOnError(t *testing.T) {
	svc := newTestService(&fakeRepo{listErr: errors.New("connection refused")}, newSpyStore())

	heroes, fallback := svc.List(context.Background())
	assert.True(t, fallback)
	require.Len(t, heroes, 12)
	assert.Equal(t, defaults.Heroes(), heroes)
}

func TestListServesDefaultRosterWhenEmpty(t *testing.T) {
	svc := newTestService(&fakeRepo{}, newSpyStore())

	heroes, fallback := svc.List(context.Background())
	assert.True(t, fallback)
	assert.Equal(t, "Ahmed Rasheed", heroes[0].Name)
}

func TestListCachesRealRoster(t *testing.T) {
	r := &fakeRepo{heroes: []entity.Hero{{ID: 1, Name: "New Signing", Position: "Forward"}}}
	store := newSpyStore()
	svc := newTestService(r, store)

	heroes, fallback := svc.List(context.Background())
	assert.False(t, fallback)
	require.Len(t, heroes, 1)

	r.listErr = errors.New("down")
	heroes, fallback = svc.List(context.Background())
	assert.False(t, fallback)
	assert.Equal(t, "New Signing", heroes[0].Name)
}

func TestAddValidation(t *testing.T) {
	svc := newTestService(&fakeRepo{}, newSpyStore())

	err := svc.Add(context.Background(), &entity.Hero{Position: "Forward"})
	require.Error(t, err)
	assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())

	err = svc.Add(context.Background(), &entity.Hero{Name: "X"})
	require.Error(t, err)

	// Number is optional; substitutes may not have one yet.
	require.NoError(t, svc.Add(context.Background(), &entity.Hero{Name: "X", Position: "Substitute"}))
}

func TestMutationsInvalidateOnce(t *testing.T) {
	store := newSpyStore()
	svc := newTestService(&fakeRepo{}, store)

	require.NoError(t, svc.Add(context.Background(), &entity.Hero{Name: "X", Position: "Forward"}))
	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []string{"heroes:list", "heroes:list"}, store.deletes)
}

func TestFailedMutationLeavesCache(t *testing.T) {
	store := newSpyStore()
	svc := newTestService(&fakeRepo{updateErr: repo.ErrNotFound}, store)

	err := svc.Update(context.Background(), &entity.Hero{ID: 3, Name: "X", Position: "Forward"})
	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
	assert.Empty(t, store.deletes)
}
