package cache

import (
	"context"
	"time"
)

type noopCache struct{}

// NewNoopCache is used when no redis instance is configured; every read is
// a miss and writes are discarded.
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, any) (bool, error) { return false, nil }

func (noopCache) Set(context.Context, string, any, time.Duration) error { return nil }

func (noopCache) Delete(context.Context, string) error { return nil }
