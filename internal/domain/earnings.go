// internal/domain/earnings.go
package domain

import "sort"

// EarningStats aggregates a shop's Delivered orders by the UTC calendar
// date of their creation. Only the order subtotal counts towards
// retailer earnings; platform fee and delivery charge are excluded.
func EarningStats(orders []Order, shopID string) []EarningStat {
	byDate := make(map[string]float64)
	for _, o := range orders {
		if o.ShopID != shopID || o.Status != StatusDelivered {
			continue
		}
		date := o.CreatedAt.UTC().Format("2006-01-02")
		byDate[date] += o.Total
	}

	out := make([]EarningStat, 0, len(byDate))
	for date, amount := range byDate {
		out = append(out, EarningStat{Date: date, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
