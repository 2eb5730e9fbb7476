package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JBcollo1/magnet-sub000/internal/config"
	"github.com/JBcollo1/magnet-sub000/internal/models"
	"github.com/JBcollo1/magnet-sub000/internal/utils"
	"github.com/XSAM/otelsql"

	_ "github.com/lib/pq"
)

// PostgresStore keeps one row per session with the items as a jsonb column,
// mirroring the wholesale-rewrite contract of the cookie backend.
type PostgresStore struct {
	DB *sql.DB
}

func OpenPostgres(cfg *config.Database) (*sql.DB, error) {
	db, err := otelsql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Load(ctx context.Context, sessionID string) ([]models.CartLineItem, bool, error) {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	query := `
		SELECT items
		FROM carts
		WHERE session_id = $1
	`

	var itemsJSON []byte

	err := s.DB.QueryRowContext(dbCtx, query, sessionID).Scan(&itemsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("querying cart for session %s: %w", sessionID, err)
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	return items, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, sessionID string, items []models.CartLineItem) error {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO carts (session_id, items, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_id)
		DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()
	`

	if _, err := s.DB.ExecContext(dbCtx, query, sessionID, itemsJSON); err != nil {
		return fmt.Errorf("failed to save cart for session %s: %w", sessionID, err)
	}

	return nil
}

func (s *PostgresStore) Clear(ctx context.Context, sessionID string) error {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM carts
		WHERE session_id = $1
	`

	if _, err := s.DB.ExecContext(dbCtx, query, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart for session %s: %w", sessionID, err)
	}

	return nil
}

// PurgeExpired drops carts idle longer than maxAge. SQL rows have no native
// TTL, so a janitor calls this periodically to match the 30-day expiry of the
// cookie and redis backends.
func (s *PostgresStore) PurgeExpired(ctx context.Context, maxAge time.Duration) (int64, error) {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM carts
		WHERE updated_at < NOW() - $1::interval
	`

	result, err := s.DB.ExecContext(dbCtx, query, fmt.Sprintf("%d seconds", int64(maxAge.Seconds())))
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired carts: %w", err)
	}

	return result.RowsAffected()
}
