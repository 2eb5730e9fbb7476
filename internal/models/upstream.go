package models

import "encoding/json"

// Shapes owned by the Order/Payment API. This service only honors them,
// it never computes order or payment state itself.

type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CreateOrderRequest struct {
	OrderItems []OrderItemInput `json:"order_items"`
}

// The backend returns the order id as a number; order ids are carried as
// strings everywhere on this side.
type CreateOrderResponse struct {
	ID json.Number `json:"id"`
}

type UpdateOrderRequest struct {
	OrderID         string  `json:"order_id"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	DeliveryAddress string  `json:"delivery_address"`
	City            string  `json:"city"`
	OrderNotes      string  `json:"order_notes"`
	PickupPointID   int64   `json:"pickup_point_id"`
	TotalAmount     float64 `json:"total_amount"`
}

type RecordPaymentRequest struct {
	MpesaCode   string  `json:"mpesa_code"`
	PhoneNumber string  `json:"phone_number"`
	Amount      float64 `json:"amount"`
	OrderID     string  `json:"order_id"`
}

type Payment struct {
	ID      json.Number `json:"id"`
	Status  string      `json:"status"`
	OrderID json.Number `json:"order_id"`
}

type PickupPoint struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	LocationDetails string  `json:"location_details"`
	City            string  `json:"city"`
	Cost            float64 `json:"cost"`
	PhoneNumber     string  `json:"phone_number"`
	DeliveryMethod  string  `json:"delivery_method"`
	IsDoorstep      bool    `json:"is_doorstep"`
}

type PickupPointsResponse struct {
	PickupPoints []PickupPoint `json:"pickup_points"`
}
