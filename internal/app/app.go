package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/dailypantry/pantry-assistant/internal/cart"
	"github.com/dailypantry/pantry-assistant/internal/catalog"
	"github.com/dailypantry/pantry-assistant/internal/checkout"
	"github.com/dailypantry/pantry-assistant/internal/httpapi"
	"github.com/dailypantry/pantry-assistant/internal/order"
	"github.com/dailypantry/pantry-assistant/internal/recipe"
	"github.com/dailypantry/pantry-assistant/internal/session"
	"github.com/dailypantry/pantry-assistant/internal/slotorder"
	"github.com/dailypantry/pantry-assistant/internal/storage/file"
	"github.com/dailypantry/pantry-assistant/internal/storage/postgres"
	"github.com/dailypantry/pantry-assistant/pkg/health"
	"github.com/dailypantry/pantry-assistant/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("storage", cfg.Storage),
	)

	healthSvc := health.New()
	healthSvc.Add(health.Liveness, "goroutines", time.Second, health.GoroutineCountCheck(10000))

	var (
		catalogStore catalog.Store
		orderStore   order.Store
	)
	switch cfg.Storage {
	case StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "create db pool")
		}
		defer pool.Close()

		if err := postgres.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}

		pgCatalog := postgres.NewCatalogStore(pool)
		n, err := pgCatalog.Count(ctx)
		if err != nil {
			return errors.Wrap(err, "count catalog items")
		}
		if n == 0 {
			if err := pgCatalog.Seed(ctx, catalog.DefaultItems()); err != nil {
				return errors.Wrap(err, "seed catalog")
			}
			lg.Info("Seeded catalog", zap.Int("items", len(catalog.DefaultItems())))
		}

		catalogStore = pgCatalog
		orderStore = postgres.NewOrderStore(pool)

		healthSvc.Add(health.Readiness, "postgres", 5*time.Second, func(ctx context.Context) error {
			return pool.Ping(ctx)
		})

	case StorageFile:
		fileCatalog, err := file.OpenCatalog(cfg.CatalogPath)
		if err != nil {
			return errors.Wrap(err, "open catalog")
		}
		fileOrders, err := file.NewOrderStore(cfg.OrdersDir)
		if err != nil {
			return errors.Wrap(err, "open order store")
		}

		catalogStore = fileCatalog
		orderStore = fileOrders

		healthSvc.Add(health.Readiness, "orders-dir", 5*time.Second, health.DirWritableCheck(cfg.OrdersDir))

	default:
		return errors.Errorf("unknown storage backend %q", cfg.Storage)
	}

	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Domain services.
	resolver := recipe.NewResolver(recipe.DefaultDefinitions(), catalogStore)
	finalizer := order.NewFinalizer(orderStore)
	deps := session.Deps{
		Cart:      cart.NewService(catalogStore, resolver),
		Checkout:  checkout.NewService(finalizer),
		SlotOrder: slotorder.NewService(finalizer, catalogStore),
	}
	sessions := session.NewManager(deps)

	// Mux: health endpoints + tool API on one server.
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	httpapi.NewHandler(sessions, catalogStore).Register(mux)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("pantry-api", m.TracerProvider()),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
