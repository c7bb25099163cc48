// internal/domain/cart.go
package domain

// Cart holds line items ordered by first add. Quantities only ever move
// by one: Add increments an existing line or appends a new one, Remove
// decrements and drops the line entirely when it reaches zero.
type Cart struct {
	items []OrderItem
}

func (c *Cart) Add(p Product) {
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, OrderItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
}

func (c *Cart) Remove(productID string) {
	for i := range c.items {
		if c.items[i].ProductID != productID {
			continue
		}
		if c.items[i].Quantity > 1 {
			c.items[i].Quantity--
			return
		}
		c.items = append(c.items[:i], c.items[i+1:]...)
		return
	}
}

func (c *Cart) Items() []OrderItem {
	out := make([]OrderItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Empty() bool { return len(c.items) == 0 }

func (c *Cart) Clear() { c.items = nil }

type CartSummary struct {
	Subtotal       float64 `json:"subtotal"`
	PlatformCharge float64 `json:"platformCharge"`
	DeliveryCharge float64 `json:"deliveryCharge"`
	GrandTotal     float64 `json:"grandTotal"`
}

// Summary computes the order totals. Values are kept unrounded; rounding
// is a display concern.
func (c *Cart) Summary() CartSummary {
	var subtotal float64
	for _, it := range c.items {
		subtotal += it.Price * float64(it.Quantity)
	}
	platform := subtotal * PlatformChargePercent
	return CartSummary{
		Subtotal:       subtotal,
		PlatformCharge: platform,
		DeliveryCharge: DeliveryCharge,
		GrandTotal:     subtotal + platform + DeliveryCharge,
	}
}
