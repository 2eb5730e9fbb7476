package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	// PickupPointsKey caches the full pickup-point list; it changes only
	// when an admin edits delivery locations upstream.
	PickupPointsKey = "pickup_points:all"
)
