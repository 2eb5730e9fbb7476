package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/JBcollo1/magnet-sub000/internal/config"
	"github.com/JBcollo1/magnet-sub000/internal/models"
	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg *config.RedisConnect) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.DB = cfg.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Connected to Redis", slog.String("host", cfg.Host))

	return client, nil
}

// NewRedisStore keys carts as cart:{session} with a JSON value. The TTL is
// re-armed on every save, never on reads.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Load(ctx context.Context, sessionID string) ([]models.CartLineItem, bool, error) {
	data, err := s.client.Get(ctx, Key(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to get cart for session %s: %w", sessionID, err)
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cart for session %s: %w", sessionID, err)
	}

	return items, true, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, items []models.CartLineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for session %s: %w", sessionID, err)
	}

	if err := s.client.Set(ctx, Key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart for session %s: %w", sessionID, err)
	}

	return nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, Key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart for session %s: %w", sessionID, err)
	}

	return nil
}
