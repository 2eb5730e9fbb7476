package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JBcollo1/magnet-sub000/internal/api/handlers"
	"github.com/JBcollo1/magnet-sub000/internal/api/middleware"
	"github.com/JBcollo1/magnet-sub000/internal/cache"
	"github.com/JBcollo1/magnet-sub000/internal/config"
	"github.com/JBcollo1/magnet-sub000/internal/cookie"
	"github.com/JBcollo1/magnet-sub000/internal/events"
	"github.com/JBcollo1/magnet-sub000/internal/gateway"
	"github.com/JBcollo1/magnet-sub000/internal/health"
	"github.com/JBcollo1/magnet-sub000/internal/metrics"
	service "github.com/JBcollo1/magnet-sub000/internal/services"
	"github.com/JBcollo1/magnet-sub000/internal/session"
	"github.com/JBcollo1/magnet-sub000/internal/store"
	"github.com/JBcollo1/magnet-sub000/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// purgeInterval is how often the postgres backend sweeps carts whose TTL
// elapsed. Cookie and redis carts expire on their own.
const purgeInterval = 6 * time.Hour

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Init(context.Background(), &cfg.Telemetry)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Upstream Order/Payment API client
	backendClient := gateway.NewClient(&cfg.Backend)

	// Cart storage setup. The resolver hides the backend choice from the
	// handlers: cookie carts persist via Set-Cookie on the live response,
	// redis and postgres carts persist under the signed session id.
	var (
		resolve     handlers.StoreResolver
		healthDeps  = &health.Endpoints{Gateway: backendClient}
		redisClient *redis.Client
	)

	switch cfg.Cart.StoreKind {
	case config.StoreCookie:
		codec := cookie.NewCodec(cfg.Cart.CookieName, cfg.Cart.TTL)

		resolve = func(w http.ResponseWriter, r *http.Request) (store.Store, string) {
			return cookie.NewRequestStore(codec, w, r), ""
		}

	case config.StoreRedis:
		redisClient, err = store.NewRedisClient(&cfg.RedisConnect)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
			os.Exit(1)
		}

		sessions := session.NewManager(&cfg.Session)
		redisStore := store.NewRedisStore(redisClient, cfg.Cart.TTL)

		resolve = func(w http.ResponseWriter, r *http.Request) (store.Store, string) {
			return redisStore, sessions.Resolve(w, r)
		}
		healthDeps.Redis = true

	case config.StorePostgres:
		db, err := store.OpenPostgres(&cfg.Database)
		if err != nil {
			slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
			} else {
				slog.Info("✅ Database connection closed")
			}
		}()

		if err := store.Migrate(db); err != nil {
			slog.Error("❌ Error running migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		sessions := session.NewManager(&cfg.Session)
		pgStore := store.NewPostgresStore(db)

		resolve = func(w http.ResponseWriter, r *http.Request) (store.Store, string) {
			return pgStore, sessions.Resolve(w, r)
		}
		healthDeps.DB = db

		go purgeLoop(pgStore, cfg.Cart.TTL)

	default:
		slog.Error("❌ Unknown cart store", slog.String("store", cfg.Cart.StoreKind))
		os.Exit(1)
	}

	// Pickup point cache: redis when available, otherwise straight through
	// to the backend on every request.
	var pickupCache cache.Cache

	if redisClient == nil {
		if client, err := store.NewRedisClient(&cfg.RedisConnect); err == nil {
			redisClient = client
		} else {
			slog.Warn("⚠️ Redis unavailable, pickup points will not be cached", slog.String("error", err.Error()))
		}
	}

	if redisClient != nil {
		pickupCache = cache.NewRedisCache(redisClient, &cfg.Cache)
	} else {
		pickupCache = cache.NewNoopCache()
	}

	// Event publishing
	var publisher events.Publisher
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.Brokers[0] != "" {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		publisher = events.NewNoopPublisher()
	}

	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("⚠️ Error closing event publisher", slog.String("error", err.Error()))
		}
	}()

	cartService := service.NewCartService(backendClient, publisher)
	cartHandler := handlers.NewCartHandler(cartService, resolve)
	pickupService := service.NewPickupPointService(backendClient, pickupCache, cfg.Cache.DefaultTTL)
	pickupHandler := handlers.NewPickupPointHandler(pickupService)
	checkoutService := service.NewCheckoutService(backendClient, pickupService, publisher)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, resolve)
	paymentService := service.NewPaymentService(backendClient, publisher)
	paymentHandler := handlers.NewPaymentHandler(paymentService, resolve)

	healthHandler, err := health.NewHealthHandler(cfg, healthDeps)
	if err != nil {
		slog.Error("❌ Error building health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("store", cfg.Cart.StoreKind))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/cart/custom-items", cartHandler.AddCustomItem())
	routerMux.HandleFunc("GET /api/v1/cart/orders", cartHandler.OrderGroups())
	routerMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Checkout())
	routerMux.HandleFunc("POST /api/v1/payments", paymentHandler.RecordPayment())
	routerMux.HandleFunc("GET /api/v1/pickup-points", pickupHandler.ListPickupPoints())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "magnet-cart")
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}

// purgeLoop periodically deletes carts that outlived the TTL. Postgres rows
// have no native expiry, unlike cookies and redis keys.
func purgeLoop(pgStore *store.PostgresStore, ttl time.Duration) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)

		purged, err := pgStore.PurgeExpired(ctx, ttl)
		if err != nil {
			slog.Error("⚠️ Cart purge failed", slog.String("error", err.Error()))
		} else if purged > 0 {
			slog.Info("Expired carts purged", slog.Int64("count", purged))
		}

		cancel()
	}
}
