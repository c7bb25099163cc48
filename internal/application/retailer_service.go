// internal/application/retailer_service.go
package application

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/galliconnect/server/internal/domain"
	"github.com/galliconnect/server/internal/ports"
)

// RetailerService backs one retailer's dashboard: their single shop,
// its catalog, incoming orders and derived earnings. Every operation
// resolves the shop through its ownerId.
type RetailerService struct {
	store ports.Store
	log   *logrus.Logger
}

func NewRetailerService(store ports.Store, log *logrus.Logger) *RetailerService {
	return &RetailerService{store: store, log: log}
}

func (s *RetailerService) Shop(ctx context.Context, ownerID string) (*domain.Shop, error) {
	shops, err := s.store.Shops(ctx)
	if err != nil {
		return nil, err
	}
	for _, shop := range shops {
		if shop.OwnerID == ownerID {
			return &shop, nil
		}
	}
	return nil, ErrNotFound
}

func (s *RetailerService) ToggleShop(ctx context.Context, ownerID string) (*domain.Shop, error) {
	shop, err := s.Shop(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.store.ToggleShopOpen(ctx, shop.ID); err != nil {
		return nil, err
	}
	shop.IsOpen = !shop.IsOpen
	return shop, nil
}

func (s *RetailerService) Products(ctx context.Context, ownerID string) ([]domain.Product, error) {
	shop, err := s.Shop(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.store.Products(ctx, shop.ID)
}

// AddProduct creates a catalog entry, always in stock.
func (s *RetailerService) AddProduct(ctx context.Context, ownerID, name string, price float64, quantity string) (*domain.Product, error) {
	shop, err := s.Shop(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	product := domain.Product{
		ID:       uuid.NewString(),
		ShopID:   shop.ID,
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Image:    fmt.Sprintf("https://picsum.photos/seed/%s/200", url.PathEscape(name)),
		InStock:  true,
	}
	if err := s.store.UpsertProduct(ctx, product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *RetailerService) SetProductStock(ctx context.Context, ownerID, productID string, inStock bool) error {
	shop, err := s.Shop(ctx, ownerID)
	if err != nil {
		return err
	}
	products, err := s.store.Products(ctx, shop.ID)
	if err != nil {
		return err
	}
	for _, p := range products {
		if p.ID == productID {
			return s.store.SetProductStock(ctx, productID, inStock)
		}
	}
	return ErrNotFound
}

// Orders returns the shop's orders, newest first.
func (s *RetailerService) Orders(ctx context.Context, ownerID string) ([]domain.Order, error) {
	shop, err := s.Shop(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.store.Orders(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.ShopID == shop.ID {
			mine = append(mine, o)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })
	return mine, nil
}

// AdvanceOrder moves one of the shop's orders forward by exactly one
// step. The transition table is the only authority; the gateway itself
// accepts any status write.
func (s *RetailerService) AdvanceOrder(ctx context.Context, ownerID, orderID string, action domain.StatusAction) (*domain.Order, error) {
	shop, err := s.Shop(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.store.Orders(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.ID != orderID || o.ShopID != shop.ID {
			continue
		}
		next, err := domain.NextStatus(o.Status, action)
		if err != nil {
			return nil, err
		}
		if err := s.store.UpdateOrderStatus(ctx, orderID, next); err != nil {
			return nil, err
		}
		o.Status = next
		return &o, nil
	}
	return nil, ErrNotFound
}

// Earnings recomputes the per-date aggregation from the full order set.
func (s *RetailerService) Earnings(ctx context.Context, ownerID string) ([]domain.EarningStat, error) {
	shop, err := s.Shop(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.store.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return domain.EarningStats(orders, shop.ID), nil
}

func (s *RetailerService) SubscribeOrders(ctx context.Context, ownerID string) (<-chan []domain.Order, func(), error) {
	shop, err := s.Shop(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	return s.store.SubscribeOrders(ctx, ports.OrderFilter{ShopID: shop.ID})
}
