package service_test

import (
	"context"
	"errors"
	"testing"

	"storefront-service/internal/cart"
	"storefront-service/internal/models"
	"storefront-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubOrders реализует service.OrderService только для CreateOrder
type stubOrders struct {
	service.OrderService
	created []service.CreateOrderInput
	failAt  int
}

func (s *stubOrders) CreateOrder(_ context.Context, in service.CreateOrderInput) (*models.Order, error) {
	if s.failAt > 0 && len(s.created)+1 == s.failAt {
		return nil, errors.New("db down")
	}
	s.created = append(s.created, in)
	return &models.Order{
		ID:          int64(len(s.created)),
		OrderNumber: "MD" + string(rune('0'+len(s.created))),
		TotalAmount: in.TotalAmount,
	}, nil
}

func checkoutInput() service.CheckoutInput {
	return service.CheckoutInput{
		CustomerName:  "Ana",
		CustomerPhone: "923000000",
		PlayerID:      "p-1",
		PaymentMethod: models.PaymentUnitel,
	}
}

func seededStore() *MockCartStore {
	return &MockCartStore{Carts: map[string]*cart.Cart{
		"sid": {Items: []cart.Item{
			{ProductID: 1, ProductName: "100 Diamantes", ProductPrice: 50000, GameName: "Free Fire", Quantity: 2},
			{ProductID: 2, ProductName: "UC 60", ProductPrice: 30000, GameName: "PUBG", Quantity: 1},
		}},
	}}
}

func TestCartService_AddAndUpdate(t *testing.T) {
	store := &MockCartStore{}
	svc := service.NewCartService(store, &stubOrders{}, zap.NewNop())
	ctx := context.Background()

	item := service.AddCartItemInput{ProductID: 1, ProductName: "100 Diamantes", ProductPrice: 50000, GameName: "Free Fire"}
	_, err := svc.AddItem(ctx, "sid", item)
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, "sid", item)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, int32(2), c.Items[0].Quantity)

	c, err = svc.UpdateQuantity(ctx, "sid", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(1), c.Items[0].Quantity)

	c, err = svc.RemoveItem(ctx, "sid", 1)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	_, err = svc.AddItem(ctx, "sid", service.AddCartItemInput{ProductID: 0, ProductName: "x", ProductPrice: 1, GameName: "g"})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCartService_RequiresSessionAndStore(t *testing.T) {
	svc := service.NewCartService(&MockCartStore{}, &stubOrders{}, zap.NewNop())
	_, err := svc.Get(context.Background(), " ")
	assert.ErrorIs(t, err, service.ErrValidation)

	noStore := service.NewCartService(nil, &stubOrders{}, zap.NewNop())
	_, err = noStore.Get(context.Background(), "sid")
	assert.ErrorIs(t, err, service.ErrCartStoreUnavailable)
}

func TestCartService_Checkout_CreatesOrderPerLine(t *testing.T) {
	store := seededStore()
	orders := &stubOrders{}
	svc := service.NewCartService(store, orders, zap.NewNop())

	res, err := svc.Checkout(context.Background(), "sid", checkoutInput())
	require.NoError(t, err)
	assert.Equal(t, []string{"MD1", "MD2"}, res.OrderNumbers)
	assert.Equal(t, int64(130000), res.TotalAmount)

	require.Len(t, orders.created, 2)
	assert.Equal(t, int64(100000), orders.created[0].TotalAmount)
	assert.Equal(t, int32(2), orders.created[0].Quantity)
	assert.Equal(t, "PUBG", orders.created[1].GameName)
	assert.Equal(t, models.PaymentUnitel, orders.created[1].PaymentMethod)

	assert.Equal(t, []string{"sid"}, store.Deleted)
	assert.NotContains(t, store.Carts, "sid")
}

func TestCartService_Checkout_EmptyCart(t *testing.T) {
	svc := service.NewCartService(&MockCartStore{}, &stubOrders{}, zap.NewNop())
	_, err := svc.Checkout(context.Background(), "sid", checkoutInput())
	assert.ErrorIs(t, err, service.ErrEmptyCart)
}

func TestCartService_Checkout_InvalidCustomer(t *testing.T) {
	store := seededStore()
	orders := &stubOrders{}
	svc := service.NewCartService(store, orders, zap.NewNop())

	in := checkoutInput()
	in.PlayerID = ""
	_, err := svc.Checkout(context.Background(), "sid", in)
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Empty(t, orders.created)
	assert.Len(t, store.Carts["sid"].Items, 2)
}

func TestCartService_Checkout_PartialFailureKeepsRemainingLines(t *testing.T) {
	store := seededStore()
	orders := &stubOrders{failAt: 2}
	svc := service.NewCartService(store, orders, zap.NewNop())

	res, err := svc.Checkout(context.Background(), "sid", checkoutInput())
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []string{"MD1"}, res.OrderNumbers)

	require.Contains(t, store.Carts, "sid")
	left := store.Carts["sid"].Items
	require.Len(t, left, 1)
	assert.Equal(t, int64(2), left[0].ProductID)
	assert.Empty(t, store.Deleted)
}

func TestCartService_Checkout_FirstLineFails(t *testing.T) {
	store := seededStore()
	svc := service.NewCartService(store, &stubOrders{failAt: 1}, zap.NewNop())

	res, err := svc.Checkout(context.Background(), "sid", checkoutInput())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Len(t, store.Carts["sid"].Items, 2)
}
