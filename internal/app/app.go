package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ovenbird/bakehouse/internal/content"
	"github.com/ovenbird/bakehouse/internal/domain/cart"
	"github.com/ovenbird/bakehouse/internal/domain/catalog"
	"github.com/ovenbird/bakehouse/internal/domain/checkout"
	"github.com/ovenbird/bakehouse/internal/handler"
	"github.com/ovenbird/bakehouse/internal/session"
	"github.com/ovenbird/bakehouse/internal/storage/memory"
	"github.com/ovenbird/bakehouse/internal/storage/postgres"
	"github.com/ovenbird/bakehouse/pkg/health"
	"github.com/ovenbird/bakehouse/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))

	// Cart storage: PostgreSQL when configured, otherwise in-memory.
	var carts cart.Store
	sessions := session.NewRegistry(cfg.Sessions.Expected, cfg.Sessions.FalsePositiveRate)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "create db pool")
		}
		defer pool.Close()

		if err := postgres.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}
		healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
			return pool.Ping(ctx)
		})

		store := postgres.NewCartStore(pool)
		carts = store

		// Seed the session registry so saved carts survive restarts.
		ids, err := store.Sessions(ctx)
		if err != nil {
			return errors.Wrap(err, "list cart sessions")
		}
		for _, id := range ids {
			sessions.Remember(id)
		}
		lg.Info("Restored sessions", zap.Int("count", len(ids)))
	} else {
		lg.Warn("No database configured, carts will not survive restarts")
		carts = memory.NewCartStore()
	}

	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Published content. Sections that fail to load fall back to
	// built-in copy, so a broken CMS never blocks startup.
	var source content.Source = content.DirSource{Dir: cfg.ContentDir}
	if cfg.ContentBaseURL != "" {
		source = content.HTTPSource{BaseURL: cfg.ContentBaseURL}
	}
	bundle, err := content.NewLoader(source).LoadAll(ctx)
	if err != nil {
		return errors.Wrap(err, "load content")
	}
	for section := range bundle.SectionErrs {
		lg.Warn("Content section using fallback", zap.String("section", section))
	}

	h := handler.New(
		bundle,
		catalog.NewStore(bundle.Products),
		carts,
		sessions,
		checkout.NewHTTPSubmitter(cfg.CheckoutURL, nil),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", http.StripPrefix("/api", h.Routes()))

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
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
			httpmiddleware.Instrument("bakehouse-api",
				otelhttp.WithTracerProvider(m.TracerProvider()),
				otelhttp.WithMeterProvider(m.MeterProvider()),
			),
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
