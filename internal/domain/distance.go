// internal/domain/distance.go
package domain

import (
	"sort"

	"github.com/galliconnect/server/pkg/geo"
)

// SortShopsByDistance returns a copy of shops ordered by great-circle
// distance from the given position, ascending. Shops without stored
// coordinates sort last, keeping their relative order.
func SortShopsByDistance(shops []Shop, lat, lng float64) []Shop {
	out := make([]Shop, len(shops))
	copy(out, shops)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.HasCoordinates() {
			return false
		}
		if !b.HasCoordinates() {
			return true
		}
		da := geo.Distance(lat, lng, *a.Latitude, *a.Longitude)
		db := geo.Distance(lat, lng, *b.Latitude, *b.Longitude)
		return da < db
	})
	return out
}
