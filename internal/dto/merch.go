package dto

import "github.com/club-invaders/fanclub/internal/entity"

// MerchItemResponse represents a merch item as exposed over HTTP.
type MerchItemResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	KidsPrice string `json:"kidsPrice"`
	Image     string `json:"image"`
}

// FromMerchItem converts a merch entity into its transport shape.
func FromMerchItem(item entity.MerchItem) MerchItemResponse {
	return MerchItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Price:     item.Price,
		KidsPrice: item.KidsPrice,
		Image:     item.Image,
	}
}

// FromMerchItems converts a list of merch entities.
func FromMerchItems(items []entity.MerchItem) []MerchItemResponse {
	out := make([]MerchItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FromMerchItem(item))
	}
	return out
}
