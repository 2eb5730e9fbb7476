package service

import (
	"context"
	"log/slog"
	"time"

	appErrors "github.com/JBcollo1/magnet-sub000/internal/errors"

	"github.com/JBcollo1/magnet-sub000/internal/api/middleware"
	"github.com/JBcollo1/magnet-sub000/internal/cache"
	"github.com/JBcollo1/magnet-sub000/internal/gateway"
	"github.com/JBcollo1/magnet-sub000/internal/models"
)

// PickupPointService serves the delivery-location list through a read-through
// cache. The list is small and changes rarely, so cache misses only pay one
// backend round trip per TTL window.
type PickupPointService struct {
	gateway gateway.Client
	cache   cache.Cache
	ttl     time.Duration
}

func NewPickupPointService(gw gateway.Client, c cache.Cache, ttl time.Duration) *PickupPointService {
	return &PickupPointService{gateway: gw, cache: c, ttl: ttl}
}

func (s *PickupPointService) List(ctx context.Context) ([]models.PickupPoint, error) {
	var points []models.PickupPoint

	found, err := s.cache.Get(ctx, cache.PickupPointsKey, &points)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Pickup point cache read failed",
			slog.String("error", err.Error()),
		)
	}

	if found {
		return points, nil
	}

	points, err = s.gateway.ListPickupPoints(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.PickupPointsKey, points, s.ttl); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Pickup point cache write failed",
			slog.String("error", err.Error()),
		)
	}

	return points, nil
}

// ByID resolves a single pickup point from the cached list.
func (s *PickupPointService) ByID(ctx context.Context, id int64) (*models.PickupPoint, error) {
	points, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range points {
		if points[i].ID == id {
			return &points[i], nil
		}
	}

	return nil, appErrors.NotFoundError("pickup point not found")
}
