// internal/domain/constants.go
package domain

// PlatformChargePercent is the marketplace commission added on top of
// every order subtotal.
const PlatformChargePercent = 0.05

// DeliveryCharge is a flat fee per order.
const DeliveryCharge = 20.0

var DeliverySlots = []string{
	"9 AM - 11 AM",
	"12 PM - 2 PM",
	"4 PM - 6 PM",
	"7 PM - 9 PM",
}

// DefaultShopRating is assigned to every shop at registration and never
// updated afterwards.
const DefaultShopRating = 4.5
