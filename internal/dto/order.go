package dto

import (
	"time"

	"github.com/club-invaders/fanclub/internal/entity"
)

// OrderItemResponse is one order line as exposed over HTTP.
type OrderItemResponse struct {
	ID           int64  `json:"id"`
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage"`
	Price        string `json:"price"`
	Size         string `json:"size"`
	SizeCategory string `json:"sizeCategory"`
	SleeveType   string `json:"sleeveType"`
	JerseyName   string `json:"jerseyName"`
	JerseyNumber string `json:"jerseyNumber"`
	Quantity     int    `json:"quantity"`
}

// OrderResponse represents an order as exposed over HTTP.
type OrderResponse struct {
	ID              int64               `json:"id"`
	CustomerName    string              `json:"customerName"`
	CustomerPhone   string              `json:"customerPhone"`
	TotalPrice      string              `json:"totalPrice"`
	TransferSlipURI string              `json:"transferSlipUri,omitempty"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	Items           []OrderItemResponse `json:"items"`
}

// FromOrder converts an order entity into its transport shape.
func FromOrder(order *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:              order.ID,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		TotalPrice:      order.TotalPrice,
		TransferSlipURI: order.TransferSlipURI,
		Status:          string(order.Status),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Items:           make([]OrderItemResponse, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:           item.ID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Price:        item.Price,
			Size:         item.Size,
			SizeCategory: item.SizeCategory,
			SleeveType:   item.SleeveType,
			JerseyName:   item.JerseyName,
			JerseyNumber: item.JerseyNumber,
			Quantity:     item.Quantity,
		})
	}
	return resp
}

// FromOrders converts a list of order entities.
func FromOrders(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromOrder(order))
	}
	return out
}
