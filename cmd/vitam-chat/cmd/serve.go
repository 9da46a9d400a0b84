package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/vitam-chat/api/openapi"
	"github.com/donaldgifford/vitam-chat/internal/api/handlers"
	"github.com/donaldgifford/vitam-chat/internal/api/middleware"
	"github.com/donaldgifford/vitam-chat/internal/config"
	"github.com/donaldgifford/vitam-chat/internal/engine"
	"github.com/donaldgifford/vitam-chat/internal/session"
	"github.com/donaldgifford/vitam-chat/internal/store"
	"github.com/donaldgifford/vitam-chat/internal/tracing"
	"github.com/donaldgifford/vitam-chat/internal/upstream"
	"github.com/donaldgifford/vitam-chat/internal/web"
	"github.com/donaldgifford/vitam-chat/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	ctx := context.Background()

	tp, shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, Version)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}

	// A disabled exchange log must stay a nil interface, not a typed nil.
	var st store.Store
	var pg *store.PostgresStore
	if cfg.Database.Enabled {
		pg, err = openStore(ctx, &cfg.Database, log)
		if err != nil {
			return err
		}
		defer pg.Close()
		st = pg
	} else {
		log.Info("exchange log disabled")
	}

	if cfg.Upstream.Endpoint == "" {
		log.Warn("upstream endpoint not configured, sends will fail",
			"env", config.EndpointEnvVar)
	}

	rl := newRateLimiter(cfg.Upstream.RateLimit)
	client := newWebhookClient(cfg.Upstream, rl, tp, log)

	sessions := session.NewManager(
		session.WithWelcomeMessage(cfg.Chat.WelcomeMessage),
		session.WithLogger(log),
	)

	engOpts := []engine.EngineOption{
		engine.WithLogger(log),
		engine.WithNotifier(newNotifier(cfg.Notifications, log)),
		engine.WithTracerProvider(tp),
		engine.WithEndpoint(cfg.Upstream.Endpoint),
		engine.WithErrorMessage(cfg.Chat.ErrorMessage),
		engine.WithOpenOnAdd(cfg.Cart.OpenOnAdd),
		engine.WithRetention(cfg.Database.Retention),
	}
	if st != nil {
		engOpts = append(engOpts, engine.WithStore(st))
	}
	eng := engine.NewEngine(sessions, client, newNormalizer(cfg.Chat), engOpts...)

	var purgeInterval time.Duration
	if st != nil {
		purgeInterval = cfg.Database.PurgeInterval
	}
	scheduler, err := engine.NewScheduler(
		eng,
		cfg.Session.SweepInterval,
		cfg.Session.IdleTTL,
		purgeInterval,
		log,
	)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	scheduler.Start()

	e := newServer(cfg, eng, st, rl, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "version", Version)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("scheduler jobs still running at shutdown")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("flushing traces", "error", err)
	}

	log.Info("server stopped")
	return nil
}

func openStore(ctx context.Context, db *config.DatabaseConfig, log *slog.Logger) (*store.PostgresStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pg, err := store.NewPostgresStore(connectCtx, db.DSN(), store.WithPoolSize(db.PoolSize))
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := pg.Migrate(connectCtx); err != nil {
		pg.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Info("exchange log connected", "host", db.Host, "database", db.Name)
	return pg, nil
}

// newServer builds the Echo instance with every route mounted.
func newServer(
	cfg *config.Config,
	eng *engine.Engine,
	st store.Store,
	rl *upstream.RateLimiter,
	log *slog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Recovery(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(st)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("vitam-chat", Version))
	handlers.RegisterSessionRoutes(api, handlers.NewSessionsHandler(eng))
	handlers.RegisterCartRoutes(api, handlers.NewCartHandler(eng))
	handlers.RegisterNormalizeRoutes(api, handlers.NewNormalizeHandler(eng))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(rl))
	handlers.RegisterExchangeRoutes(api, handlers.NewExchangesHandler(st))

	web.RegisterRoutes(e, web.NewHandler(eng.Sessions()))
	openapi.RegisterRoutes(e, api)

	return e
}
