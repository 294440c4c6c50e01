package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// OrderStatus enumerates the order lifecycle values. Administrators may set
// any value at any time; no transition graph is enforced.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// ValidStatus reports whether s is one of the five known order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order represents a submitted customer order. Content is immutable once
// created; only the status may change afterwards.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID              int64        `bun:",pk,autoincrement"`
	CustomerName    string       `bun:"customer_name"`
	CustomerPhone   string       `bun:"customer_phone"`
	TotalPrice      string       `bun:"total_price"`
	TransferSlipURI string       `bun:"transfer_slip_uri,nullzero"`
	Status          OrderStatus  `bun:"status"`
	CreatedAt       time.Time    `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time    `bun:"updated_at,nullzero"`
	Items           []*OrderItem `bun:"rel:has-many,join:id=order_id"`
}

// OrderItem is one line of an order: a product snapshot plus the chosen
// size, sleeve and jersey personalisation.
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oi"`

	ID           int64  `bun:",pk,autoincrement"`
	OrderID      int64  `bun:"order_id"`
	ProductName  string `bun:"product_name"`
	ProductImage string `bun:"product_image"`
	Price        string `bun:"price"`
	Size         string `bun:"size"`
	SizeCategory string `bun:"size_category"`
	SleeveType   string `bun:"sleeve_type"`
	JerseyName   string `bun:"jersey_name"`
	JerseyNumber string `bun:"jersey_number"`
	Quantity     int    `bun:"quantity"`
}
