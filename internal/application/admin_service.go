// internal/application/admin_service.go
package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/galliconnect/server/internal/domain"
	"github.com/galliconnect/server/internal/ports"
)

// shopBreakdownLimit caps the per-shop revenue breakdown. Shops are
// taken in gateway order, not sorted by revenue first.
const shopBreakdownLimit = 5

// AdminService is a read-only aggregation over the whole marketplace.
type AdminService struct {
	store ports.Store
	log   *logrus.Logger
}

func NewAdminService(store ports.Store, log *logrus.Logger) *AdminService {
	return &AdminService{store: store, log: log}
}

type ShopRevenue struct {
	Name       string  `json:"name"`
	Revenue    float64 `json:"revenue"`
	Commission float64 `json:"commission"`
}

type PlatformStats struct {
	TotalRetailers int           `json:"totalRetailers"`
	TotalOrders    int           `json:"totalOrders"`
	GMV            float64       `json:"gmv"`
	Commission     float64       `json:"commission"`
	Shops          []ShopRevenue `json:"shops"`
}

// Stats computes platform GMV from Delivered order subtotals and the
// commission as the platform percentage of it.
func (s *AdminService) Stats(ctx context.Context) (*PlatformStats, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	shops, err := s.store.Shops(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.store.Orders(ctx)
	if err != nil {
		return nil, err
	}

	stats := &PlatformStats{TotalOrders: len(orders)}
	for _, u := range users {
		if u.Role == domain.RoleRetailer {
			stats.TotalRetailers++
		}
	}
	for _, o := range orders {
		if o.Status == domain.StatusDelivered {
			stats.GMV += o.Total
		}
	}
	stats.Commission = stats.GMV * domain.PlatformChargePercent

	for _, shop := range shops {
		if len(stats.Shops) == shopBreakdownLimit {
			break
		}
		var revenue float64
		for _, o := range orders {
			if o.ShopID == shop.ID && o.Status == domain.StatusDelivered {
				revenue += o.Total
			}
		}
		stats.Shops = append(stats.Shops, ShopRevenue{
			Name:       strings.SplitN(shop.Name, "'", 2)[0],
			Revenue:    revenue,
			Commission: revenue * domain.PlatformChargePercent,
		})
	}
	return stats, nil
}

// Retailers lists every RETAILER user for the verification view. There
// is no mutation behind it.
func (s *AdminService) Retailers(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.Role == domain.RoleRetailer {
			out = append(out, u)
		}
	}
	return out, nil
}
