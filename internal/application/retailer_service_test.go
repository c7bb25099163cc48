// internal/application/retailer_service_test.go
package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galliconnect/server/internal/adapters/repository"
	"github.com/galliconnect/server/internal/domain"
	"github.com/galliconnect/server/internal/ports"
)

func newRetailer(t *testing.T) (*RetailerService, ports.Store) {
	t.Helper()
	store, err := repository.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.UpsertShop(ctx, domain.Shop{
		ID: "shop-1", OwnerID: "ret-1", Name: "Ravi's Store", IsOpen: false,
	}))
	return NewRetailerService(store, testLogger()), store
}

func TestRetailerShopLookup(t *testing.T) {
	svc, _ := newRetailer(t)
	ctx := context.Background()

	shop, err := svc.Shop(ctx, "ret-1")
	require.NoError(t, err)
	assert.Equal(t, "shop-1", shop.ID)

	_, err = svc.Shop(ctx, "stranger")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleShop(t *testing.T) {
	svc, store := newRetailer(t)
	ctx := context.Background()

	shop, err := svc.ToggleShop(ctx, "ret-1")
	require.NoError(t, err)
	assert.True(t, shop.IsOpen)

	persisted, _ := store.Shops(ctx)
	assert.True(t, persisted[0].IsOpen)
}

func TestAddProductAlwaysInStock(t *testing.T) {
	svc, store := newRetailer(t)
	ctx := context.Background()

	product, err := svc.AddProduct(ctx, "ret-1", "Tomatoes", 40, "1 kg")
	require.NoError(t, err)
	assert.True(t, product.InStock)
	assert.Equal(t, "shop-1", product.ShopID)
	assert.Contains(t, product.Image, "picsum.photos/seed/")

	persisted, _ := store.Products(ctx, "shop-1")
	require.Len(t, persisted, 1)
	assert.Equal(t, *product, persisted[0])
}

func TestSetProductStock(t *testing.T) {
	svc, store := newRetailer(t)
	ctx := context.Background()

	product, err := svc.AddProduct(ctx, "ret-1", "Tomatoes", 40, "1 kg")
	require.NoError(t, err)

	require.NoError(t, svc.SetProductStock(ctx, "ret-1", product.ID, false))
	persisted, _ := store.Products(ctx, "shop-1")
	assert.False(t, persisted[0].InStock)

	// a product outside the retailer's shop is unreachable
	require.NoError(t, store.UpsertProduct(ctx, domain.Product{ID: "foreign", ShopID: "shop-2"}))
	err = svc.SetProductStock(ctx, "ret-1", "foreign", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func seedOrder(t *testing.T, store ports.Store, id string, status domain.OrderStatus, total float64, at time.Time) {
	t.Helper()
	require.NoError(t, store.UpsertOrder(context.Background(), domain.Order{
		ID: id, CustomerID: "cust-1", ShopID: "shop-1",
		Items:  []domain.OrderItem{{ProductID: "p1", Name: "Milk", Price: total, Quantity: 1}},
		Status: status, Total: total, PlatformCharge: total * 0.05, DeliveryCharge: 20,
		GrandTotal: total*1.05 + 20, CreatedAt: at,
	}))
}

func TestAdvanceOrder(t *testing.T) {
	svc, store := newRetailer(t)
	ctx := context.Background()
	seedOrder(t, store, "o1", domain.StatusOrdered, 100, time.Now().UTC())

	// dispatch is not available while the order is still Ordered
	_, err := svc.AdvanceOrder(ctx, "ret-1", "o1", domain.ActionDispatch)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	order, err := svc.AdvanceOrder(ctx, "ret-1", "o1", domain.ActionConfirm)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, order.Status)

	order, err = svc.AdvanceOrder(ctx, "ret-1", "o1", domain.ActionDispatch)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, order.Status)

	// terminal
	_, err = svc.AdvanceOrder(ctx, "ret-1", "o1", domain.ActionDispatch)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	persisted, _ := store.Orders(ctx)
	assert.Equal(t, domain.StatusDelivered, persisted[0].Status)
}

func TestAdvanceOrderOfAnotherShop(t *testing.T) {
	svc, store := newRetailer(t)
	ctx := context.Background()
	require.NoError(t, store.UpsertOrder(ctx, domain.Order{
		ID: "foreign", ShopID: "shop-2", Status: domain.StatusOrdered,
	}))

	_, err := svc.AdvanceOrder(ctx, "ret-1", "foreign", domain.ActionConfirm)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRetailerOrdersNewestFirst(t *testing.T) {
	svc, store := newRetailer(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	seedOrder(t, store, "old", domain.StatusOrdered, 50, base)
	seedOrder(t, store, "new", domain.StatusOrdered, 80, base.Add(time.Hour))
	require.NoError(t, store.UpsertOrder(ctx, domain.Order{ID: "other-shop", ShopID: "shop-9", CreatedAt: base}))

	orders, err := svc.Orders(ctx, "ret-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "new", orders[0].ID)
	assert.Equal(t, "old", orders[1].ID)
}

func TestRetailerEarnings(t *testing.T) {
	svc, store := newRetailer(t)
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	seedOrder(t, store, "o1", domain.StatusDelivered, 100, day)
	seedOrder(t, store, "o2", domain.StatusDelivered, 250, day.Add(2*time.Hour))
	seedOrder(t, store, "o3", domain.StatusAccepted, 999, day)

	stats, err := svc.Earnings(context.Background(), "ret-1")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, domain.EarningStat{Date: "2025-03-10", Amount: 350}, stats[0])
}
