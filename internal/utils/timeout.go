package utils

import (
	"context"
	"time"
)

// StoreTimeout bounds one cart row operation. Every query the store issues
// is a single-key read, upsert or delete, so a slow answer means the
// database is in trouble, not that the work is big. Keeping this short lets
// the request fall back to the empty-cart path quickly.
const StoreTimeout = 3 * time.Second

func WithStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, StoreTimeout)
}
