// internal/application/customer_service.go
package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/galliconnect/server/internal/domain"
	"github.com/galliconnect/server/internal/ports"
)

// CustomerService backs the customer storefront: shop discovery, the
// per-customer cart and checkout, and the order history. Carts live in
// memory for the lifetime of the process, keyed by customer id.
type CustomerService struct {
	store ports.Store
	log   *logrus.Logger

	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewCustomerService(store ports.Store, log *logrus.Logger) *CustomerService {
	return &CustomerService{
		store: store,
		log:   log,
		carts: make(map[string]*domain.Cart),
	}
}

// Shops lists open shops. With a caller position they are sorted by
// distance ascending, shops without coordinates last; without one the
// gateway order is kept.
func (s *CustomerService) Shops(ctx context.Context, lat, lng *float64) ([]domain.Shop, error) {
	shops, err := s.store.Shops(ctx)
	if err != nil {
		return nil, err
	}
	open := make([]domain.Shop, 0, len(shops))
	for _, shop := range shops {
		if shop.IsOpen {
			open = append(open, shop)
		}
	}
	if lat != nil && lng != nil {
		return domain.SortShopsByDistance(open, *lat, *lng), nil
	}
	return open, nil
}

// Catalog returns the in-stock products of one shop.
func (s *CustomerService) Catalog(ctx context.Context, shopID string) ([]domain.Product, error) {
	products, err := s.store.Products(ctx, shopID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.InStock {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *CustomerService) cart(customerID string) *domain.Cart {
	c, ok := s.carts[customerID]
	if !ok {
		c = &domain.Cart{}
		s.carts[customerID] = c
	}
	return c
}

func (s *CustomerService) Cart(customerID string) ([]domain.OrderItem, domain.CartSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(customerID)
	return c.Items(), c.Summary()
}

func (s *CustomerService) AddToCart(ctx context.Context, customerID, productID string) error {
	products, err := s.store.Products(ctx, "")
	if err != nil {
		return err
	}
	for _, p := range products {
		if p.ID == productID {
			if !p.InStock {
				return ErrOutOfStock
			}
			s.mu.Lock()
			s.cart(customerID).Add(p)
			s.mu.Unlock()
			return nil
		}
	}
	return ErrNotFound
}

func (s *CustomerService) RemoveFromCart(customerID, productID string) {
	s.mu.Lock()
	s.cart(customerID).Remove(productID)
	s.mu.Unlock()
}

// Checkout snapshots the cart, the customer's profile fields and the
// shop name into a new Ordered order, persists it and clears the cart.
// Stock is not decremented; availability is managed manually by the
// retailer.
func (s *CustomerService) Checkout(ctx context.Context, customerID, shopID, deliverySlot string) (*domain.Order, error) {
	s.mu.Lock()
	cart := s.cart(customerID)
	if cart.Empty() {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}
	items := cart.Items()
	summary := cart.Summary()
	s.mu.Unlock()

	customer, err := s.userByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	shop, err := s.shopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if deliverySlot == "" {
		deliverySlot = domain.DeliverySlots[0]
	}

	order := domain.Order{
		ID:              uuid.NewString(),
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerAddress: customer.Address,
		CustomerContact: customer.Contact,
		ShopID:          shop.ID,
		ShopName:        shop.Name,
		Items:           items,
		Status:          domain.StatusOrdered,
		Total:           summary.Subtotal,
		PlatformCharge:  summary.PlatformCharge,
		DeliveryCharge:  summary.DeliveryCharge,
		GrandTotal:      summary.GrandTotal,
		DeliverySlot:    deliverySlot,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.UpsertOrder(ctx, order); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cart(customerID).Clear()
	s.mu.Unlock()
	return &order, nil
}

// Orders returns the customer's own orders, newest first.
func (s *CustomerService) Orders(ctx context.Context, customerID string) ([]domain.Order, error) {
	orders, err := s.store.Orders(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.CustomerID == customerID {
			mine = append(mine, o)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })
	return mine, nil
}

func (s *CustomerService) SubscribeOrders(ctx context.Context, customerID string) (<-chan []domain.Order, func(), error) {
	return s.store.SubscribeOrders(ctx, ports.OrderFilter{CustomerID: customerID})
}

func (s *CustomerService) userByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *CustomerService) shopByID(ctx context.Context, id string) (*domain.Shop, error) {
	shops, err := s.store.Shops(ctx)
	if err != nil {
		return nil, err
	}
	for _, sh := range shops {
		if sh.ID == id {
			return &sh, nil
		}
	}
	return nil, ErrNotFound
}
