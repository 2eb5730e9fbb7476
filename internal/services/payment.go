package service

import (
	"context"
	"log/slog"

	"github.com/JBcollo1/magnet-sub000/internal/api/middleware"
	"github.com/JBcollo1/magnet-sub000/internal/events"
	"github.com/JBcollo1/magnet-sub000/internal/gateway"
	"github.com/JBcollo1/magnet-sub000/internal/metrics"
	"github.com/JBcollo1/magnet-sub000/internal/models"
)

// PaymentService forwards manually entered M-Pesa confirmations to the
// backend. Verification against the Daraja API happens upstream; this side
// only relays the code.
type PaymentService struct {
	gateway gateway.Client
	events  events.Publisher
}

func NewPaymentService(gw gateway.Client, pub events.Publisher) *PaymentService {
	return &PaymentService{gateway: gw, events: pub}
}

func (s *PaymentService) Record(ctx context.Context, sessionID string, req *models.PaymentRequest) (*models.Payment, error) {
	payment, err := s.gateway.RecordPayment(ctx, &models.RecordPaymentRequest{
		MpesaCode:   req.MpesaCode,
		PhoneNumber: req.PhoneNumber,
		Amount:      req.Amount,
		OrderID:     req.OrderID,
	})
	if err != nil {
		return nil, err
	}

	metrics.ObservePayment()

	if err := s.events.Publish(ctx, events.TypePaymentRecorded, sessionID, events.PaymentRecorded{
		OrderID: req.OrderID,
		Amount:  req.Amount,
	}); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to publish payment event",
			slog.String("error", err.Error()),
		)
	}

	return payment, nil
}
