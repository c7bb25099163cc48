// internal/application/admin_service_test.go
package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galliconnect/server/internal/adapters/repository"
	"github.com/galliconnect/server/internal/domain"
	"github.com/galliconnect/server/internal/ports"
)

func newAdmin(t *testing.T) (*AdminService, ports.Store) {
	t.Helper()
	store, err := repository.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return NewAdminService(store, testLogger()), store
}

func TestPlatformStats(t *testing.T) {
	svc, store := newAdmin(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertUser(ctx, domain.User{ID: "r1", Role: domain.RoleRetailer}))
	require.NoError(t, store.UpsertUser(ctx, domain.User{ID: "r2", Role: domain.RoleRetailer}))
	require.NoError(t, store.UpsertUser(ctx, domain.User{ID: "c1", Role: domain.RoleCustomer}))

	require.NoError(t, store.UpsertShop(ctx, domain.Shop{ID: "shop-1", Name: "Ravi's Store"}))
	require.NoError(t, store.UpsertShop(ctx, domain.Shop{ID: "shop-2", Name: "Meena's Store"}))

	at := time.Now().UTC()
	require.NoError(t, store.UpsertOrder(ctx, domain.Order{
		ID: "o1", ShopID: "shop-1", Status: domain.StatusDelivered, Total: 200, CreatedAt: at,
	}))
	require.NoError(t, store.UpsertOrder(ctx, domain.Order{
		ID: "o2", ShopID: "shop-2", Status: domain.StatusDelivered, Total: 100, CreatedAt: at,
	}))
	require.NoError(t, store.UpsertOrder(ctx, domain.Order{
		ID: "o3", ShopID: "shop-1", Status: domain.StatusOrdered, Total: 999, CreatedAt: at,
	}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRetailers)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 300.0, stats.GMV)
	assert.InDelta(t, 15.0, stats.Commission, 1e-9)

	require.Len(t, stats.Shops, 2)
	assert.Equal(t, "Ravi", stats.Shops[0].Name)
	assert.Equal(t, 200.0, stats.Shops[0].Revenue)
	assert.InDelta(t, 10.0, stats.Shops[0].Commission, 1e-9)
	assert.Equal(t, "Meena", stats.Shops[1].Name)
}

func TestPlatformStatsShopBreakdownKeepsGatewayOrder(t *testing.T) {
	svc, store := newAdmin(t)
	ctx := context.Background()

	// seven shops, revenue increasing with index: a revenue sort would
	// surface the last ones, the breakdown keeps the first five instead
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("shop-%d", i)
		require.NoError(t, store.UpsertShop(ctx, domain.Shop{ID: id, Name: id}))
		require.NoError(t, store.UpsertOrder(ctx, domain.Order{
			ID: fmt.Sprintf("o-%d", i), ShopID: id,
			Status: domain.StatusDelivered, Total: float64((i + 1) * 10),
		}))
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats.Shops, 5)
	for i, shop := range stats.Shops {
		assert.Equal(t, fmt.Sprintf("shop-%d", i), shop.Name)
		assert.Equal(t, float64((i+1)*10), shop.Revenue)
	}
}

func TestPlatformStatsEmpty(t *testing.T) {
	svc, _ := newAdmin(t)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalRetailers)
	assert.Equal(t, 0, stats.TotalOrders)
	assert.Zero(t, stats.GMV)
	assert.Empty(t, stats.Shops)
}

func TestRetailersListing(t *testing.T) {
	svc, store := newAdmin(t)
	ctx := context.Background()
	require.NoError(t, store.UpsertUser(ctx, domain.User{ID: "r1", Role: domain.RoleRetailer, Name: "Ravi"}))
	require.NoError(t, store.UpsertUser(ctx, domain.User{ID: "c1", Role: domain.RoleCustomer}))

	retailers, err := svc.Retailers(ctx)
	require.NoError(t, err)
	require.Len(t, retailers, 1)
	assert.Equal(t, "Ravi", retailers[0].Name)
}
