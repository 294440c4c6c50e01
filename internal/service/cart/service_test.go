package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/club-invaders/fanclub/internal/cache"
	cartdomain "github.com/club-invaders/fanclub/internal/cart"
	"github.com/club-invaders/fanclub/internal/entity"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

type fakeProducts struct {
	item *entity.MerchItem
	err  error
}

func (f *fakeProducts) Get(context.Context, int64) (*entity.MerchItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}

type fakeOrders struct {
	created []*entity.Order
	err     error
}

func (f *fakeOrders) Create(_ context.Context, order *entity.Order) error {
	if f.err != nil {
		return f.err
	}
	order.ID = int64(len(f.created) + 1)
	f.created = append(f.created, order)
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newTestService(orders *fakeOrders) *Service {
	return &Service{
		store:      cache.NewMemoryStore(time.Minute),
		sessionTTL: 30 * time.Minute,
		merch: &fakeProducts{item: &entity.MerchItem{
			ID: 1, Name: "Invaders Jersey", Price: "MVR 450", KidsPrice: "MVR 350",
		}},
		orders: orders,
		logger: zap.NewNop(),
	}
}

func TestOpenCreatesSession(t *testing.T) {
	svc := newTestService(&fakeOrders{})

	session, err := svc.Open(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "Invaders Jersey", session.ProductName)
	assert.Equal(t, cartdomain.CategoryAdult, session.Selection.SizeCategory)

	loaded, err := svc.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
}

func TestOpenUnknownProduct(t *testing.T) {
	svc := newTestService(&fakeOrders{})
	svc.merch = &fakeProducts{err: errorbank.NotFound("merch item not found")}

	_, err := svc.Open(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestGetExpiredSession(t *testing.T) {
	svc := newTestService(&fakeOrders{})

	_, err := svc.Get(context.Background(), "gone")
	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestSelectionAndItemsPersistAcrossLoads(t *testing.T) {
	svc := newTestService(&fakeOrders{})
	ctx := context.Background()

	session, err := svc.Open(ctx, 1)
	require.NoError(t, err)

	_, err = svc.UpdateSelection(ctx, session.ID, cartdomain.Update{
		Size: strPtr("M"), JerseyName: strPtr("AISHA"), JerseyNumber: strPtr("10"), Quantity: intPtr(2),
	})
	require.NoError(t, err)

	updated, err := svc.AddItem(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 2, updated.Items[0].Quantity)

	// A fresh load sees the accumulated cart, not just the copy we held.
	loaded, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 1)
	assert.Equal(t, "", loaded.Selection.Size)
}

func TestInvalidSelectionIsNotSaved(t *testing.T) {
	svc := newTestService(&fakeOrders{})
	ctx := context.Background()

	session, err := svc.Open(ctx, 1)
	require.NoError(t, err)

	_, err = svc.UpdateSelection(ctx, session.ID, cartdomain.Update{Size: strPtr("999")})
	require.Error(t, err)

	loaded, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "", loaded.Selection.Size)
}

func TestRemoveItem(t *testing.T) {
	svc := newTestService(&fakeOrders{})
	ctx := context.Background()

	session, err := svc.Open(ctx, 1)
	require.NoError(t, err)

	_, err = svc.UpdateSelection(ctx, session.ID, cartdomain.Update{
		Size: strPtr("M"), JerseyName: strPtr("A"), JerseyNumber: strPtr("1"),
	})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, session.ID)
	require.NoError(t, err)

	updated, err := svc.RemoveItem(ctx, session.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, updated.Items)

	_, err = svc.RemoveItem(ctx, session.ID, 0)
	require.Error(t, err)
}

func TestSubmitCreatesPendingOrderAndDiscardsSession(t *testing.T) {
	orders := &fakeOrders{}
	svc := newTestService(orders)
	ctx := context.Background()

	session, err := svc.Open(ctx, 1)
	require.NoError(t, err)

	_, err = svc.UpdateSelection(ctx, session.ID, cartdomain.Update{
		Size: strPtr("M"), JerseyName: strPtr("AISHA"), JerseyNumber: strPtr("10"), Quantity: intPtr(2),
	})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, session.ID)
	require.NoError(t, err)

	order, err := svc.Submit(ctx, session.ID, SubmitRequest{
		CustomerName:  "  Aishath  ",
		CustomerPhone: "7771234",
	})
	require.NoError(t, err)

	assert.Equal(t, "Aishath", order.CustomerName, "customer name is trimmed")
	assert.Equal(t, "900.00", order.TotalPrice)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "AISHA", order.Items[0].JerseyName)
	require.Len(t, orders.created, 1)

	// The session is gone once submitted.
	_, err = svc.Get(ctx, session.ID)
	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestSubmitRequiresCustomerAndItems(t *testing.T) {
	orders := &fakeOrders{}
	svc := newTestService(orders)
	ctx := context.Background()

	session, err := svc.Open(ctx, 1)
	require.NoError(t, err)

	// No items yet.
	_, err = svc.Submit(ctx, session.ID, SubmitRequest{CustomerName: "A", CustomerPhone: "7"})
	require.Error(t, err)

	_, err = svc.UpdateSelection(ctx, session.ID, cartdomain.Update{
		Size: strPtr("M"), JerseyName: strPtr("A"), JerseyNumber: strPtr("1"),
	})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, session.ID, SubmitRequest{CustomerPhone: "7"})
	require.Error(t, err)

	_, err = svc.Submit(ctx, session.ID, SubmitRequest{CustomerName: "A"})
	require.Error(t, err)

	assert.Empty(t, orders.created)

	// A failed submit keeps the session alive for another attempt.
	_, err = svc.Get(ctx, session.ID)
	require.NoError(t, err)
}

func TestFailedOrderCreateKeepsSession(t *testing.T) {
	orders := &fakeOrders{err: errorbank.Internal("failed to create order")}
	svc := newTestService(orders)
	ctx := context.Background()

	session, err := svc.Open(ctx, 1)
	require.NoError(t, err)

	_, err = svc.UpdateSelection(ctx, session.ID, cartdomain.Update{
		Size: strPtr("M"), JerseyName: strPtr("A"), JerseyNumber: strPtr("1"),
	})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, session.ID, SubmitRequest{CustomerName: "A", CustomerPhone: "7"})
	require.Error(t, err)

	_, err = svc.Get(ctx, session.ID)
	require.NoError(t, err)
}

func TestClose(t *testing.T) {
	svc := newTestService(&fakeOrders{})
	ctx := context.Background()

	session, err := svc.Open(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Close(ctx, session.ID))

	_, err = svc.Get(ctx, session.ID)
	require.Error(t, err)
}
