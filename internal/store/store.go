// Package store defines the persistence port for cart state and its
// server-side backends. The browser-cookie backend lives in internal/cookie;
// all of them honor the same contract: full-array writes, eager deletes on
// clear, and a 30-day TTL re-armed on every save.
package store

import (
	"context"

	"github.com/JBcollo1/magnet-sub000/internal/models"
)

// Store persists one session's line items. Load returns ok=false when no
// cart exists for the session; callers treat that, and any load error, as an
// empty cart.
type Store interface {
	Load(ctx context.Context, sessionID string) ([]models.CartLineItem, bool, error)
	Save(ctx context.Context, sessionID string, items []models.CartLineItem) error
	Clear(ctx context.Context, sessionID string) error
}

const KeyPrefix = "cart"

func Key(sessionID string) string {
	return KeyPrefix + ":" + sessionID
}
