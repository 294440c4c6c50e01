package dto

import (
	cartdomain "github.com/club-invaders/fanclub/internal/cart"
)

// CartSessionResponse represents a checkout session as exposed over HTTP.
// The total and available sizes are derived so clients never compute money.
type CartSessionResponse struct {
	ID             string               `json:"id"`
	ProductID      int64                `json:"productId"`
	ProductName    string               `json:"productName"`
	ProductImage   string               `json:"productImage"`
	Price          string               `json:"price"`
	KidsPrice      string               `json:"kidsPrice"`
	Selection      cartdomain.Selection `json:"selection"`
	AvailableSizes []string             `json:"availableSizes"`
	Items          []cartdomain.Item    `json:"items"`
	ItemCount      int                  `json:"itemCount"`
	Total          string               `json:"total"`
}

// FromCartSession converts a session into its transport shape.
func FromCartSession(s *cartdomain.Session) CartSessionResponse {
	items := s.Items
	if items == nil {
		items = []cartdomain.Item{}
	}
	return CartSessionResponse{
		ID:             s.ID,
		ProductID:      s.ProductID,
		ProductName:    s.ProductName,
		ProductImage:   s.ProductImage,
		Price:          s.Price,
		KidsPrice:      s.KidsPrice,
		Selection:      s.Selection,
		AvailableSizes: cartdomain.SizesFor(s.Selection.SizeCategory),
		Items:          items,
		ItemCount:      s.ItemCount(),
		Total:          cartdomain.FormatTotal(s.Total()),
	}
}
