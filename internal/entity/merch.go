package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// MerchItem is a purchasable product. Prices are currency-prefixed strings
// (e.g. "MVR 450"); image holds a remote URL or an inline data-URI.
type MerchItem struct {
	bun.BaseModel `bun:"table:merch_items,alias:m"`

	ID        int64     `bun:",pk,autoincrement"`
	Name      string    `bun:"name"`
	Price     string    `bun:"price"`
	KidsPrice string    `bun:"kids_price"`
	Image     string    `bun:"image"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `bun:"updated_at,nullzero"`
}
