// internal/adapters/repository/localstore.go
package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/galliconnect/server/internal/domain"
	"github.com/galliconnect/server/internal/ports"
)

const (
	fileUsers    = "users.json"
	fileShops    = "shops.json"
	fileProducts = "products.json"
	fileOrders   = "orders.json"
)

// LocalStore is the fallback gateway for deployments without hosted
// backend credentials. Each table is a JSON-encoded array in its own
// file; every operation reads the whole array, mutates it, and writes
// the whole array back. There is no change detection, so order
// subscriptions are no-ops.
type LocalStore struct {
	mu  sync.Mutex
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	return &LocalStore{dir: dir}, nil
}

var _ ports.Store = (*LocalStore)(nil)

func readTable[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read table")
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "decode table")
	}
	return out, nil
}

func writeTable[T any](path string, rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return errors.Wrap(err, "encode table")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write table")
}

func (s *LocalStore) path(file string) string { return filepath.Join(s.dir, file) }

func (s *LocalStore) Users(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readTable[domain.User](s.path(fileUsers))
}

func (s *LocalStore) UpsertUser(ctx context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := readTable[domain.User](s.path(fileUsers))
	if err != nil {
		return err
	}
	users = upsertByID(users, u, func(x domain.User) string { return x.ID })
	return writeTable(s.path(fileUsers), users)
}

func (s *LocalStore) SetEmailVerified(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := readTable[domain.User](s.path(fileUsers))
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == userID {
			users[i].IsEmailVerified = true
		}
	}
	return writeTable(s.path(fileUsers), users)
}

func (s *LocalStore) Shops(ctx context.Context) ([]domain.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readTable[domain.Shop](s.path(fileShops))
}

func (s *LocalStore) UpsertShop(ctx context.Context, shop domain.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	shops, err := readTable[domain.Shop](s.path(fileShops))
	if err != nil {
		return err
	}
	shops = upsertByID(shops, shop, func(x domain.Shop) string { return x.ID })
	return writeTable(s.path(fileShops), shops)
}

func (s *LocalStore) ToggleShopOpen(ctx context.Context, shopID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	shops, err := readTable[domain.Shop](s.path(fileShops))
	if err != nil {
		return err
	}
	for i := range shops {
		if shops[i].ID == shopID {
			shops[i].IsOpen = !shops[i].IsOpen
		}
	}
	return writeTable(s.path(fileShops), shops)
}

func (s *LocalStore) Products(ctx context.Context, shopID string) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := readTable[domain.Product](s.path(fileProducts))
	if err != nil || shopID == "" {
		return products, err
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ShopID == shopID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *LocalStore) UpsertProduct(ctx context.Context, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := readTable[domain.Product](s.path(fileProducts))
	if err != nil {
		return err
	}
	products = upsertByID(products, p, func(x domain.Product) string { return x.ID })
	return writeTable(s.path(fileProducts), products)
}

func (s *LocalStore) SetProductStock(ctx context.Context, productID string, inStock bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := readTable[domain.Product](s.path(fileProducts))
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == productID {
			products[i].InStock = inStock
		}
	}
	return writeTable(s.path(fileProducts), products)
}

func (s *LocalStore) Orders(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readTable[domain.Order](s.path(fileOrders))
}

func (s *LocalStore) UpsertOrder(ctx context.Context, o domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders, err := readTable[domain.Order](s.path(fileOrders))
	if err != nil {
		return err
	}
	orders = upsertByID(orders, o, func(x domain.Order) string { return x.ID })
	return writeTable(s.path(fileOrders), orders)
}

func (s *LocalStore) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders, err := readTable[domain.Order](s.path(fileOrders))
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == orderID {
			orders[i].Status = status
		}
	}
	return writeTable(s.path(fileOrders), orders)
}

// SubscribeOrders has no backing change feed in local mode. The channel
// is returned already closed and the cancel func does nothing.
func (s *LocalStore) SubscribeOrders(ctx context.Context, filter ports.OrderFilter) (<-chan []domain.Order, func(), error) {
	ch := make(chan []domain.Order)
	close(ch)
	return ch, func() {}, nil
}

func upsertByID[T any](rows []T, row T, id func(T) string) []T {
	for i := range rows {
		if id(rows[i]) == id(row) {
			rows[i] = row
			return rows
		}
	}
	return append(rows, row)
}
