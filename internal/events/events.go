// Package events emits cart activity for downstream analytics. Emission is
// best-effort: a dead broker never fails a cart operation.
package events

import (
	"context"
	"time"
)

const (
	TypeItemAdded         = "cart.item_added"
	TypeItemRemoved       = "cart.item_removed"
	TypeCartCleared       = "cart.cleared"
	TypeCheckoutSubmitted = "checkout.submitted"
	TypePaymentRecorded   = "payment.recorded"
)

type Envelope struct {
	Type       string    `json:"type"`
	SessionID  string    `json:"session_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

type ItemAdded struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Custom    bool   `json:"custom"`
	OrderID   string `json:"order_id,omitempty"`
}

type ItemRemoved struct {
	ProductID int64 `json:"product_id"`
}

type CheckoutSubmitted struct {
	OrderIDs []string `json:"order_ids"`
	Total    float64  `json:"total"`
}

type PaymentRecorded struct {
	OrderID string  `json:"order_id"`
	Amount  float64 `json:"amount"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType, sessionID string, payload any) error
	Close() error
}
