package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	appErrors "github.com/JBcollo1/magnet-sub000/internal/errors"

	"github.com/JBcollo1/magnet-sub000/internal/api/middleware"
	"github.com/JBcollo1/magnet-sub000/internal/events"
	"github.com/JBcollo1/magnet-sub000/internal/gateway"
	"github.com/JBcollo1/magnet-sub000/internal/metrics"
	"github.com/JBcollo1/magnet-sub000/internal/models"
	"github.com/JBcollo1/magnet-sub000/internal/store"
	"github.com/microcosm-cc/bluemonday"
)

// CheckoutService turns the session's cart into backend orders. Custom lines
// already carry the order opened when they were added; plain lines are
// bundled into one new order here. Every distinct order then gets the
// customer and delivery details stamped on it.
type CheckoutService struct {
	gateway   gateway.Client
	pickup    *PickupPointService
	events    events.Publisher
	sanitizer *bluemonday.Policy
}

func NewCheckoutService(gw gateway.Client, pickup *PickupPointService, pub events.Publisher) *CheckoutService {
	return &CheckoutService{
		gateway:   gw,
		pickup:    pickup,
		events:    pub,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *CheckoutService) clean(in string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(in))
}

func (s *CheckoutService) Checkout(ctx context.Context, st store.Store, sessionID string, req *models.CheckoutRequest) (*models.CheckoutResult, error) {
	c := loadCart(ctx, st, sessionID)
	if c.Len() == 0 {
		return nil, appErrors.BadRequestError("cart is empty")
	}

	point, err := s.pickup.ByID(ctx, req.PickupPointID)
	if err != nil {
		return nil, err
	}

	// Plain catalog lines have no order yet. Open one order covering all of
	// them and stamp the lines so repeated checkouts stay idempotent.
	if unassigned := c.UnassignedItems(); len(unassigned) > 0 {
		orderItems := make([]models.OrderItemInput, 0, len(unassigned))
		for _, line := range unassigned {
			orderItems = append(orderItems, models.OrderItemInput{
				ProductID: line.ID,
				Quantity:  line.Quantity,
			})
		}

		orderID, err := s.gateway.CreateOrder(ctx, orderItems)
		if err != nil {
			return nil, err
		}

		c.AssignOrderID(orderID)
		persistCart(ctx, st, sessionID, c)
	}

	subtotal := c.Total()
	total := subtotal + point.Cost
	orderIDs := c.OrderIDs()

	update := models.UpdateOrderRequest{
		CustomerName:    s.clean(req.CustomerName),
		CustomerPhone:   s.clean(req.CustomerPhone),
		DeliveryAddress: s.clean(req.DeliveryAddress),
		City:            s.clean(req.City),
		OrderNotes:      s.clean(req.OrderNotes),
		PickupPointID:   point.ID,
		TotalAmount:     total,
	}

	for _, id := range orderIDs {
		u := update
		u.OrderID = id

		if err := s.gateway.UpdateOrder(ctx, &u); err != nil {
			return nil, appErrors.UpstreamError(fmt.Sprintf("failed to update order %s", id)).WithError(err)
		}
	}

	metrics.ObserveCheckout()

	if err := s.events.Publish(ctx, events.TypeCheckoutSubmitted, sessionID, events.CheckoutSubmitted{
		OrderIDs: orderIDs,
		Total:    total,
	}); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to publish checkout event",
			slog.String("error", err.Error()),
		)
	}

	return &models.CheckoutResult{
		OrderIDs:     orderIDs,
		Subtotal:     subtotal,
		DeliveryCost: point.Cost,
		Total:        total,
	}, nil
}
