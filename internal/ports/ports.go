// internal/ports/ports.go
package ports

import (
	"context"

	"github.com/galliconnect/server/internal/domain"
)

// OrderFilter narrows an order subscription or listing to one shop,
// one customer, or both. The zero value matches everything.
type OrderFilter struct {
	ShopID     string
	CustomerID string
}

func (f OrderFilter) Match(o domain.Order) bool {
	if f.ShopID != "" && o.ShopID != f.ShopID {
		return false
	}
	if f.CustomerID != "" && o.CustomerID != f.CustomerID {
		return false
	}
	return true
}

// Store is the persistence gateway over users, shops, products and
// orders. Reads return whole tables; writes are upserts or targeted
// field updates by primary key. Implementations do not validate order
// status transitions, that is the application layer's job.
type Store interface {
	Users(ctx context.Context) ([]domain.User, error)
	UpsertUser(ctx context.Context, u domain.User) error
	SetEmailVerified(ctx context.Context, userID string) error

	Shops(ctx context.Context) ([]domain.Shop, error)
	UpsertShop(ctx context.Context, s domain.Shop) error
	ToggleShopOpen(ctx context.Context, shopID string) error

	// Products returns the catalog of one shop, or every product when
	// shopID is empty.
	Products(ctx context.Context, shopID string) ([]domain.Product, error)
	UpsertProduct(ctx context.Context, p domain.Product) error
	SetProductStock(ctx context.Context, productID string, inStock bool) error

	Orders(ctx context.Context) ([]domain.Order, error)
	UpsertOrder(ctx context.Context, o domain.Order) error
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error

	// SubscribeOrders emits the filtered snapshot immediately and again
	// after every detected change. Each emission is a full snapshot,
	// not a delta. The returned cancel func releases the subscription.
	// Backends without change detection return a closed channel.
	SubscribeOrders(ctx context.Context, filter OrderFilter) (<-chan []domain.Order, func(), error)
}

// OrderNotifier fans out "the orders table changed" signals between
// processes. Payloads carry no data; receivers re-fetch.
type OrderNotifier interface {
	OrdersChanged(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan struct{}, func())
}

// Mailer delivers the one-time verification code to a user.
type Mailer interface {
	SendVerificationCode(ctx context.Context, name, email, code string) error
}
