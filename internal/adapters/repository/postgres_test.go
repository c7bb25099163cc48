// internal/adapters/repository/postgres_test.go
package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galliconnect/server/internal/domain"
	"github.com/galliconnect/server/internal/ports"
)

var orderColumns = []string{
	"id", "customer_id", "customer_name", "customer_address", "customer_contact",
	"shop_id", "shop_name", "items", "status", "total", "platform_charge",
	"delivery_charge", "grand_total", "delivery_slot", "created_at",
}

func orderRow(rows *sqlmock.Rows, id, shopID string, status domain.OrderStatus) *sqlmock.Rows {
	return rows.AddRow(id, "cust-1", "Asha", "12 MG Road", "9800000000",
		shopID, "Ravi's Store",
		[]byte(`[{"productId":"p1","name":"Milk","price":30,"quantity":2}]`),
		string(status), 60.0, 3.0, 20.0, 83.0, "9 AM - 11 AM", time.Now().UTC())
}

func waitSnapshot(t *testing.T, ch <-chan []domain.Order) []domain.Order {
	t.Helper()
	select {
	case snapshot, ok := <-ch:
		require.True(t, ok, "subscription closed early")
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot received")
		return nil
	}
}

func TestSubscribeOrdersEmitsFilteredSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	events := make(chan struct{}, 1)
	stopped := make(chan struct{})
	notifier := ports.NewMockOrderNotifier(ctrl)
	notifier.EXPECT().Subscribe(gomock.Any()).
		Return((<-chan struct{})(events), func() { close(stopped) })

	mock.ExpectQuery("FROM orders").WillReturnRows(
		orderRow(orderRow(sqlmock.NewRows(orderColumns),
			"o1", "shop-1", domain.StatusOrdered), "o2", "shop-2", domain.StatusOrdered))

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	store := NewPostgresStore(db, notifier, log)

	sub, cancel, err := store.SubscribeOrders(context.Background(), ports.OrderFilter{ShopID: "shop-1"})
	require.NoError(t, err)

	// the first snapshot arrives before any change signal, already
	// narrowed to the subscriber's shop
	snapshot := waitSnapshot(t, sub)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "o1", snapshot[0].ID)
	assert.Equal(t, []domain.OrderItem{{ProductID: "p1", Name: "Milk", Price: 30, Quantity: 2}}, snapshot[0].Items)

	// a change signal triggers a whole-table re-fetch, not a delta
	mock.ExpectQuery("FROM orders").WillReturnRows(
		orderRow(sqlmock.NewRows(orderColumns), "o1", "shop-1", domain.StatusAccepted))
	events <- struct{}{}

	snapshot = waitSnapshot(t, sub)
	require.Len(t, snapshot, 1)
	assert.Equal(t, domain.StatusAccepted, snapshot[0].Status)

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("cancel did not release the notifier subscription")
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscribeOrdersEndsWhenFeedCloses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	events := make(chan struct{})
	notifier := ports.NewMockOrderNotifier(ctrl)
	notifier.EXPECT().Subscribe(gomock.Any()).
		Return((<-chan struct{})(events), func() {})

	mock.ExpectQuery("FROM orders").WillReturnRows(sqlmock.NewRows(orderColumns))

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	store := NewPostgresStore(db, notifier, log)

	sub, cancel, err := store.SubscribeOrders(context.Background(), ports.OrderFilter{})
	require.NoError(t, err)
	defer cancel()

	assert.Empty(t, waitSnapshot(t, sub))

	close(events)
	select {
	case _, ok := <-sub:
		assert.False(t, ok, "snapshot channel must close with the feed")
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot channel did not close")
	}
}

func TestFilterOrders(t *testing.T) {
	orders := []domain.Order{
		{ID: "o1", ShopID: "shop-1", CustomerID: "c1"},
		{ID: "o2", ShopID: "shop-2", CustomerID: "c1"},
		{ID: "o3", ShopID: "shop-1", CustomerID: "c2"},
	}

	got := filterOrders(orders, ports.OrderFilter{ShopID: "shop-1", CustomerID: "c1"})
	require.Len(t, got, 1)
	assert.Equal(t, "o1", got[0].ID)

	assert.Len(t, filterOrders(orders, ports.OrderFilter{ShopID: "shop-1"}), 2)
	assert.Len(t, filterOrders(orders, ports.OrderFilter{}), 3)
}
