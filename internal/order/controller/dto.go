package controller

import (
	"time"

	"vitrine/internal/domain"
)

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingZipcode string             `json:"shippingZipcode"`
}

type OrderItemRequest struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	ID           uint                `json:"id"`
	TotalPrice   float64             `json:"totalPrice"`
	ShippingCost float64             `json:"shippingCost"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

type OrderItemResponse struct {
	ID        uint    `json:"id"`
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return OrderResponse{
		ID:           order.ID,
		TotalPrice:   order.TotalPrice,
		ShippingCost: order.ShippingCost,
		Status:       order.Status,
		Items:        items,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

func toOrderResponses(orders []domain.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = toOrderResponse(&orders[i])
	}
	return responses
}
