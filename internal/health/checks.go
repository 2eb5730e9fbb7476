package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/JBcollo1/magnet-sub000/internal/config"
	"github.com/JBcollo1/magnet-sub000/internal/gateway"
	"github.com/hellofresh/health-go/v5"
	healthPostgres "github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// Endpoints carries the live dependencies to probe. Nil fields are skipped:
// a cookie-backed deployment has neither a database nor redis.
type Endpoints struct {
	DB      *sql.DB
	Redis   bool
	Gateway gateway.Client
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {
	checks := []health.Config{
		{
			Name:      "order-api",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check: func(ctx context.Context) error {
				if endpoints.Gateway == nil {
					return fmt.Errorf("gateway is not initialized")
				}

				if _, err := endpoints.Gateway.ListPickupPoints(ctx); err != nil {
					return fmt.Errorf("failed to reach the order api: %w", err)
				}

				return nil
			},
		},
	}

	if endpoints.DB != nil {
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: healthPostgres.New(healthPostgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	}

	if endpoints.Redis {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "magnet-cart",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
