package models

import "time"

// User is the stored account record. It carries the password hash and must
// never be serialized to a client; use Public instead.
type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}

// PublicUser is the only user shape exposed outside the service layer
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Category groups foods in the storefront
type Category struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Image string `db:"image" json:"image"`
}

// Food is a catalog item. Price is in minor units, rating in tenths of a star.
type Food struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Description  string `db:"description" json:"description"`
	PriceMinor   int64  `db:"price_minor" json:"price_minor"`
	Image        string `db:"image" json:"image"`
	RatingTenths int    `db:"rating_tenths" json:"rating_tenths"`
	Reviews      int    `db:"reviews" json:"reviews"`
	Category     string `db:"category" json:"category"`
}

// OrderItem is a snapshot of a cart line taken when the order is placed
type OrderItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Quantity   int    `json:"quantity"`
}

// Order represents a customer order
type Order struct {
	ID            int64       `db:"id" json:"id"`
	UserID        int64       `db:"user_id" json:"user_id"`
	Items         []OrderItem `db:"-" json:"items"`
	TotalMinor    int64       `db:"total_minor" json:"total_minor"`
	Status        OrderStatus `db:"status" json:"status"`
	PaymentMethod string      `db:"payment_method" json:"payment_method"`
	Address       string      `db:"address" json:"address"`
	Phone         string      `db:"phone" json:"phone"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

// Clone returns a deep copy so callers cannot alias stored item slices.
func (o *Order) Clone() *Order {
	cp := *o
	cp.Items = append([]OrderItem(nil), o.Items...)
	return &cp
}

// OrderStatus is the lifecycle state of an order
type OrderStatus string

// Order statuses
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every accepted status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusDelivered,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// PaymentMethodCOD is the only payment method: cash on delivery.
const PaymentMethodCOD = "COD"
