// internal/domain/models.go
package domain

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleRetailer UserRole = "RETAILER"
	RoleCustomer UserRole = "CUSTOMER"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleRetailer, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	Role            UserRole `json:"role"`
	Contact         string   `json:"contact"`
	Address         string   `json:"address"`
	Landmarks       string   `json:"landmarks,omitempty"`
	IsVerified      bool     `json:"isVerified"`
	IsEmailVerified bool     `json:"isEmailVerified"`
}

type ShopType string

const (
	ShopTypeGroceries ShopType = "Groceries"
	ShopTypeFruits    ShopType = "Fruits"
	ShopTypePharmacy  ShopType = "Pharmacy"
)

var ShopTypes = []ShopType{ShopTypeGroceries, ShopTypeFruits, ShopTypePharmacy}

func (t ShopType) Valid() bool {
	for _, s := range ShopTypes {
		if t == s {
			return true
		}
	}
	return false
}

// Shop is owned one-to-one by a RETAILER user. Coordinates are captured
// once at registration and may be absent when the retailer declined to
// share a location.
type Shop struct {
	ID        string   `json:"id"`
	OwnerID   string   `json:"ownerId"`
	Name      string   `json:"name"`
	Type      ShopType `json:"type"`
	Area      string   `json:"area"`
	Address   string   `json:"address"`
	IsOpen    bool     `json:"isOpen"`
	Rating    float64  `json:"rating"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (s Shop) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

type Product struct {
	ID       string  `json:"id"`
	ShopID   string  `json:"shopId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity string  `json:"quantity"`
	Image    string  `json:"image"`
	InStock  bool    `json:"inStock"`
}

// OrderItem is a snapshot of a product at the time it was added to the
// cart. Later price or name edits never reach persisted orders.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order carries denormalized customer and shop fields captured at
// checkout. Monetary fields are computed once and persisted, never
// recomputed on read.
type Order struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customerId"`
	CustomerName    string      `json:"customerName"`
	CustomerAddress string      `json:"customerAddress"`
	CustomerContact string      `json:"customerContact"`
	ShopID          string      `json:"shopId"`
	ShopName        string      `json:"shopName"`
	Items           []OrderItem `json:"items"`
	Status          OrderStatus `json:"status"`
	Total           float64     `json:"total"`
	PlatformCharge  float64     `json:"platformCharge"`
	DeliveryCharge  float64     `json:"deliveryCharge"`
	GrandTotal      float64     `json:"grandTotal"`
	DeliverySlot    string      `json:"deliverySlot"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// EarningStat is derived at read time, never persisted.
type EarningStat struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}
