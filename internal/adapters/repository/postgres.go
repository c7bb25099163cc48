// internal/adapters/repository/postgres.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/galliconnect/server/internal/domain"
	"github.com/galliconnect/server/internal/ports"
)

// PostgresStore is the hosted-mode gateway. Every read is a whole-table
// query, every write an upsert by primary key. Order writes publish a
// change signal through the notifier; subscriptions re-fetch the whole
// orders table per signal and reapply their filter in memory.
type PostgresStore struct {
	db       *sql.DB
	notifier ports.OrderNotifier
	log      *logrus.Logger
}

func NewPostgresStore(db *sql.DB, notifier ports.OrderNotifier, log *logrus.Logger) ports.Store {
	return &PostgresStore{db: db, notifier: notifier, log: log}
}

func (r *PostgresStore) Users(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, name, role, contact, address, landmarks, is_verified, is_email_verified FROM users`)
	if err != nil {
		return nil, errors.Wrap(err, "query users")
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Contact, &u.Address,
			&u.Landmarks, &u.IsVerified, &u.IsEmailVerified); err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresStore) UpsertUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, role, contact, address, landmarks, is_verified, is_email_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email, name = EXCLUDED.name, role = EXCLUDED.role,
			contact = EXCLUDED.contact, address = EXCLUDED.address, landmarks = EXCLUDED.landmarks,
			is_verified = EXCLUDED.is_verified, is_email_verified = EXCLUDED.is_email_verified`,
		u.ID, u.Email, u.Name, u.Role, u.Contact, u.Address, u.Landmarks, u.IsVerified, u.IsEmailVerified)
	return errors.Wrap(err, "upsert user")
}

func (r *PostgresStore) SetEmailVerified(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET is_email_verified = TRUE WHERE id = $1`, userID)
	return errors.Wrap(err, "verify email")
}

func (r *PostgresStore) Shops(ctx context.Context) ([]domain.Shop, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, name, type, area, address, is_open, rating, latitude, longitude FROM shops`)
	if err != nil {
		return nil, errors.Wrap(err, "query shops")
	}
	defer rows.Close()

	var shops []domain.Shop
	for rows.Next() {
		var s domain.Shop
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Type, &s.Area, &s.Address,
			&s.IsOpen, &s.Rating, &s.Latitude, &s.Longitude); err != nil {
			return nil, errors.Wrap(err, "scan shop")
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}

func (r *PostgresStore) UpsertShop(ctx context.Context, s domain.Shop) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shops (id, owner_id, name, type, area, address, is_open, rating, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id, name = EXCLUDED.name, type = EXCLUDED.type,
			area = EXCLUDED.area, address = EXCLUDED.address, is_open = EXCLUDED.is_open,
			rating = EXCLUDED.rating, latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude`,
		s.ID, s.OwnerID, s.Name, s.Type, s.Area, s.Address, s.IsOpen, s.Rating, s.Latitude, s.Longitude)
	return errors.Wrap(err, "upsert shop")
}

func (r *PostgresStore) ToggleShopOpen(ctx context.Context, shopID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE shops SET is_open = NOT is_open WHERE id = $1`, shopID)
	return errors.Wrap(err, "toggle shop")
}

func (r *PostgresStore) Products(ctx context.Context, shopID string) ([]domain.Product, error) {
	query := `SELECT id, shop_id, name, price, quantity, image, in_stock FROM products`
	args := []interface{}{}
	if shopID != "" {
		query += ` WHERE shop_id = $1`
		args = append(args, shopID)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.ShopID, &p.Name, &p.Price, &p.Quantity, &p.Image, &p.InStock); err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresStore) UpsertProduct(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, shop_id, name, price, quantity, image, in_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			shop_id = EXCLUDED.shop_id, name = EXCLUDED.name, price = EXCLUDED.price,
			quantity = EXCLUDED.quantity, image = EXCLUDED.image, in_stock = EXCLUDED.in_stock`,
		p.ID, p.ShopID, p.Name, p.Price, p.Quantity, p.Image, p.InStock)
	return errors.Wrap(err, "upsert product")
}

func (r *PostgresStore) SetProductStock(ctx context.Context, productID string, inStock bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE products SET in_stock = $2 WHERE id = $1`, productID, inStock)
	return errors.Wrap(err, "set product stock")
}

func (r *PostgresStore) Orders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, customer_name, customer_address, customer_contact,
			shop_id, shop_name, items, status, total, platform_charge, delivery_charge,
			grand_total, delivery_slot, created_at
		FROM orders`)
	if err != nil {
		return nil, errors.Wrap(err, "query orders")
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var items []byte
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerAddress, &o.CustomerContact,
			&o.ShopID, &o.ShopName, &items, &o.Status, &o.Total, &o.PlatformCharge, &o.DeliveryCharge,
			&o.GrandTotal, &o.DeliverySlot, &o.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan order")
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, errors.Wrap(err, "decode order items")
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PostgresStore) UpsertOrder(ctx context.Context, o domain.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return errors.Wrap(err, "encode order items")
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, customer_name, customer_address, customer_contact,
			shop_id, shop_name, items, status, total, platform_charge, delivery_charge,
			grand_total, delivery_slot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			customer_id = EXCLUDED.customer_id, customer_name = EXCLUDED.customer_name,
			customer_address = EXCLUDED.customer_address, customer_contact = EXCLUDED.customer_contact,
			shop_id = EXCLUDED.shop_id, shop_name = EXCLUDED.shop_name, items = EXCLUDED.items,
			status = EXCLUDED.status, total = EXCLUDED.total, platform_charge = EXCLUDED.platform_charge,
			delivery_charge = EXCLUDED.delivery_charge, grand_total = EXCLUDED.grand_total,
			delivery_slot = EXCLUDED.delivery_slot, created_at = EXCLUDED.created_at`,
		o.ID, o.CustomerID, o.CustomerName, o.CustomerAddress, o.CustomerContact,
		o.ShopID, o.ShopName, items, o.Status, o.Total, o.PlatformCharge, o.DeliveryCharge,
		o.GrandTotal, o.DeliverySlot, o.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "upsert order")
	}
	r.publishChange(ctx)
	return nil
}

func (r *PostgresStore) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, orderID, status)
	if err != nil {
		return errors.Wrap(err, "update order status")
	}
	r.publishChange(ctx)
	return nil
}

// publishChange is best effort. A lost signal only delays the next
// snapshot, it does not affect the persisted write.
func (r *PostgresStore) publishChange(ctx context.Context) {
	if err := r.notifier.OrdersChanged(ctx); err != nil {
		r.log.WithError(err).Warn("order change notification failed")
	}
}

func (r *PostgresStore) SubscribeOrders(ctx context.Context, filter ports.OrderFilter) (<-chan []domain.Order, func(), error) {
	events, stop := r.notifier.Subscribe(ctx)
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan []domain.Order, 1)

	push := func() {
		orders, err := r.Orders(ctx)
		if err != nil {
			if ctx.Err() == nil {
				r.log.WithError(err).Warn("orders re-fetch failed")
			}
			return
		}
		snapshot := filterOrders(orders, filter)
		// last full re-fetch wins: replace any undelivered snapshot
		select {
		case out <- snapshot:
		default:
			select {
			case <-out:
			default:
			}
			select {
			case out <- snapshot:
			default:
			}
		}
	}

	go func() {
		defer close(out)
		defer stop()
		push()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				push()
			}
		}
	}()

	return out, cancel, nil
}

func filterOrders(orders []domain.Order, filter ports.OrderFilter) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if filter.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

// InitSchema creates the four tables used by hosted mode.
func InitSchema(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			role VARCHAR(16) NOT NULL,
			contact VARCHAR(64) NOT NULL,
			address TEXT NOT NULL,
			landmarks TEXT NOT NULL DEFAULT '',
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			is_email_verified BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS shops (
			id VARCHAR(64) PRIMARY KEY,
			owner_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(32) NOT NULL,
			area VARCHAR(255) NOT NULL,
			address TEXT NOT NULL,
			is_open BOOLEAN NOT NULL DEFAULT FALSE,
			rating DOUBLE PRECISION NOT NULL,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(64) PRIMARY KEY,
			shop_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			quantity VARCHAR(64) NOT NULL,
			image TEXT NOT NULL,
			in_stock BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id VARCHAR(64) PRIMARY KEY,
			customer_id VARCHAR(64) NOT NULL,
			customer_name VARCHAR(255) NOT NULL,
			customer_address TEXT NOT NULL,
			customer_contact VARCHAR(64) NOT NULL,
			shop_id VARCHAR(64) NOT NULL,
			shop_name VARCHAR(255) NOT NULL,
			items JSONB NOT NULL,
			status VARCHAR(16) NOT NULL,
			total DOUBLE PRECISION NOT NULL,
			platform_charge DOUBLE PRECISION NOT NULL,
			delivery_charge DOUBLE PRECISION NOT NULL,
			grand_total DOUBLE PRECISION NOT NULL,
			delivery_slot VARCHAR(64) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
