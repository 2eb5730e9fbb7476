package models

type CheckoutRequest struct {
	CustomerName    string `json:"customer_name"   validate:"required,min=2,max=100"`
	CustomerPhone   string `json:"customer_phone"  validate:"required,min=9,max=15"`
	DeliveryAddress string `json:"delivery_address" validate:"max=255"`
	City            string `json:"city"            validate:"max=100"`
	OrderNotes      string `json:"order_notes"     validate:"max=500"`
	PickupPointID   int64  `json:"pickup_point_id" validate:"required"`
}

type CheckoutResult struct {
	OrderIDs     []string `json:"order_ids"`
	Subtotal     float64  `json:"subtotal"`
	DeliveryCost float64  `json:"delivery_cost"`
	Total        float64  `json:"total"`
}

type PaymentRequest struct {
	MpesaCode   string  `json:"mpesa_code"   validate:"required,alphanum,min=8,max=12"`
	PhoneNumber string  `json:"phone_number" validate:"required,min=9,max=15"`
	Amount      float64 `json:"amount"       validate:"required,gt=0"`
	OrderID     string  `json:"order_id"     validate:"required"`
}
