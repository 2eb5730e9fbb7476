package service

import (
	"context"
	"log/slog"

	"github.com/JBcollo1/magnet-sub000/internal/api/middleware"
	"github.com/JBcollo1/magnet-sub000/internal/cart"
	"github.com/JBcollo1/magnet-sub000/internal/events"
	"github.com/JBcollo1/magnet-sub000/internal/gateway"
	"github.com/JBcollo1/magnet-sub000/internal/metrics"
	"github.com/JBcollo1/magnet-sub000/internal/models"
	"github.com/JBcollo1/magnet-sub000/internal/store"
)

// CartService applies one cart operation per request against whichever store
// backend the deployment selected. Loads that fail fall back to an empty
// cart; saves are fire-and-forget. Cart mutations themselves are total and
// cannot fail. Only the custom-line flow, which has to ask the backend for
// an order id first, can error.
type CartService struct {
	gateway gateway.Client
	events  events.Publisher
}

func NewCartService(gw gateway.Client, pub events.Publisher) *CartService {
	return &CartService{gateway: gw, events: pub}
}

// loadCart restores the session's persisted cart. Any failure, whether an
// absent key, a storage error or a corrupt payload, yields an empty ready
// cart. Never an error: a broken blob must not block the storefront.
func loadCart(ctx context.Context, st store.Store, sessionID string) *cart.Cart {
	c := cart.New()

	items, ok, err := st.Load(ctx, sessionID)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Falling back to empty cart",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)

		c.Restore(nil)

		return c
	}

	if !ok {
		c.Restore(nil)

		return c
	}

	c.Restore(items)

	return c
}

// persistCart re-serializes the whole cart. Only a ready cart may be saved;
// failures are logged and swallowed, matching the fire-and-forget write
// contract.
func persistCart(ctx context.Context, st store.Store, sessionID string, c *cart.Cart) {
	if !c.Ready() {
		return
	}

	if err := st.Save(ctx, sessionID, c.Items()); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to persist cart",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CartService) publish(ctx context.Context, eventType, sessionID string, payload any) {
	if err := s.events.Publish(ctx, eventType, sessionID, payload); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to publish cart event",
			slog.String("event", eventType),
			slog.String("error", err.Error()),
		)
	}
}

func view(c *cart.Cart) *models.CartView {
	return &models.CartView{
		Items: c.Items(),
		Total: c.Total(),
	}
}

func (s *CartService) GetCart(ctx context.Context, st store.Store, sessionID string) *models.CartView {
	return view(loadCart(ctx, st, sessionID))
}

func (s *CartService) AddItem(ctx context.Context, st store.Store, sessionID string, req *models.AddItemRequest) *models.CartView {
	c := loadCart(ctx, st, sessionID)

	line := c.AddItem(*req)

	persistCart(ctx, st, sessionID, c)
	metrics.ObserveItemAdded(false)
	s.publish(ctx, events.TypeItemAdded, sessionID, events.ItemAdded{
		ProductID: line.ID,
		Quantity:  line.Quantity,
	})

	return view(c)
}

// AddCustomItem opens a backend order for the customized product before the
// line enters the cart, so the line always carries its order id. An upstream
// failure leaves the cart untouched for a clean retry.
func (s *CartService) AddCustomItem(ctx context.Context, st store.Store, sessionID string, req *models.AddCustomItemRequest) (*models.CartView, error) {
	orderID, err := s.gateway.CreateOrder(ctx, []models.OrderItemInput{
		{ProductID: req.ProductID, Quantity: 1},
	})
	if err != nil {
		return nil, err
	}

	images := make([]models.CustomImage, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, models.CustomImage{
			ID:           img.ID,
			URL:          img.URL,
			Name:         img.Name,
			UploadStatus: img.UploadStatus,
		})
	}

	c := loadCart(ctx, st, sessionID)

	line := c.AddCustomItem(models.CartLineItem{
		ID:           req.ProductID,
		Name:         req.Name,
		Price:        req.Price,
		Image:        req.Image,
		Description:  req.Description,
		Quantity:     1,
		CustomImages: images,
		OrderID:      orderID,
	})

	persistCart(ctx, st, sessionID, c)
	metrics.ObserveItemAdded(true)
	s.publish(ctx, events.TypeItemAdded, sessionID, events.ItemAdded{
		ProductID: line.ID,
		Quantity:  line.Quantity,
		Custom:    true,
		OrderID:   orderID,
	})

	return view(c), nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, st store.Store, sessionID string, req *models.UpdateQuantityRequest) *models.CartView {
	c := loadCart(ctx, st, sessionID)

	c.UpdateQuantity(req.ProductID, req.Quantity)

	persistCart(ctx, st, sessionID, c)

	return view(c)
}

func (s *CartService) RemoveItem(ctx context.Context, st store.Store, sessionID string, productID int64) *models.CartView {
	c := loadCart(ctx, st, sessionID)

	removed := c.RemoveItem(productID)

	persistCart(ctx, st, sessionID, c)

	for _, line := range removed {
		s.releaseTempImages(ctx, line)
	}

	if len(removed) > 0 {
		s.publish(ctx, events.TypeItemRemoved, sessionID, events.ItemRemoved{ProductID: productID})
	}

	return view(c)
}

// releaseTempImages asks the backend to drop uploads attached to a removed
// line. Best effort: the backend also reaps orphaned temp images.
func (s *CartService) releaseTempImages(ctx context.Context, line models.CartLineItem) {
	for _, img := range line.CustomImages {
		if err := s.gateway.DeleteTempImage(ctx, img.ID); err != nil {
			middleware.LoggerFromContext(ctx).Warn("Failed to delete temp image",
				slog.String("image_id", img.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// ClearCart deletes the storage key outright rather than saving an empty
// array. Eager and unconditional; a storage failure is logged, not surfaced.
func (s *CartService) ClearCart(ctx context.Context, st store.Store, sessionID string) {
	if err := st.Clear(ctx, sessionID); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to clear persisted cart",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	metrics.ObserveCartCleared()
	s.publish(ctx, events.TypeCartCleared, sessionID, nil)
}

// OrderGroups exposes the cart's order-id derivations: distinct ids in first
// occurrence order and the lines grouped under each.
func (s *CartService) OrderGroups(ctx context.Context, st store.Store, sessionID string) *models.OrderGroupsView {
	c := loadCart(ctx, st, sessionID)

	ids := c.OrderIDs()
	groups := make([]models.OrderGroup, 0, len(ids))

	for _, id := range ids {
		groups = append(groups, models.OrderGroup{
			OrderID: id,
			Items:   c.ItemsByOrderID(id),
		})
	}

	return &models.OrderGroupsView{OrderIDs: ids, Groups: groups}
}
