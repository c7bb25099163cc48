// internal/adapters/redisfeed/redisfeed.go
package redisfeed

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const ordersChannel = "galliconnect:orders"

// Feed relays order change signals over a Redis pub/sub channel.
// Messages carry no payload; subscribers re-fetch the orders table.
type Feed struct {
	client *redis.Client
}

func New(addr, username, password string, db int) *Feed {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})
	return &Feed{client: client}
}

func (f *Feed) OrdersChanged(ctx context.Context) error {
	return f.client.Publish(ctx, ordersChannel, "changed").Err()
}

func (f *Feed) Subscribe(ctx context.Context) (<-chan struct{}, func()) {
	sub := f.client.Subscribe(ctx, ordersChannel)
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for range sub.Channel() {
			// coalesce rapid successive signals into one pending tick
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()
	return out, func() { _ = sub.Close() }
}

func (f *Feed) Ping(ctx context.Context) error {
	return f.client.Ping(ctx).Err()
}
