package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"omnicasa-gateway/internal/handlers"
	"omnicasa-gateway/internal/middleware"
	"omnicasa-gateway/internal/services"
	"omnicasa-gateway/internal/validators"
	"omnicasa-gateway/pkg/cache"
	"omnicasa-gateway/pkg/config"
	"omnicasa-gateway/pkg/logger"
	"omnicasa-gateway/pkg/metrics"
	"omnicasa-gateway/pkg/omnicasa"

	"github.com/gin-gonic/gin"
)

// App represents the application structure
type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Store           cache.Store
	Client          *omnicasa.Client
	OmnicasaHandler *handlers.OmnicasaHandler
	HealthHandler   *handlers.HealthHandler
	RateLimiter     *middleware.RateLimiter
	Server          *http.Server

	closeStore func() error
	cancel     context.CancelFunc
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{Config: cfg, cancel: cancel}

	// infrastructure
	app.initializeMetrics()
	if err := app.initializeCache(ctx); err != nil {
		cancel()
		return nil, err
	}
	if err := app.initializeClient(); err != nil {
		app.cleanup()
		return nil, err
	}
	app.initializeRateLimiter(ctx)

	// business logic
	app.initializeDependencies()

	// web layer
	app.initializeRouter()

	return app, nil
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the response cache store selected by configuration
func (a *App) initializeCache(ctx context.Context) error {
	store, closeStore, err := cache.NewStore(ctx, a.Config)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize cache: driver=%s, error=%v", a.Config.Cache.Driver, err)
		return err
	}
	a.Store = store
	a.closeStore = closeStore
	go cache.PurgeExpired(ctx, store, time.Hour)
	logger.GlobalLogger.Printf("Cache initialized: driver=%s, namespace=%s, ttl=%v", a.Config.Cache.Driver, a.Config.Cache.Namespace, a.Config.Cache.TTL)
	return nil
}

// initialize the Omnicasa client sharing the application cache store
func (a *App) initializeClient() error {
	a.Client = newOmnicasaClient(a.Config, a.Store)
	if path := a.Config.Logging.RequestFile; path != "" {
		if err := a.Client.EnableLogging(path); err != nil {
			logger.GlobalLogger.Errorf("Failed to enable request logging: file=%s, error=%v", path, err)
			return err
		}
	}
	return nil
}

func newOmnicasaClient(cfg *config.Config, store cache.Store) *omnicasa.Client {
	oc := cfg.Omnicasa
	opts := []omnicasa.Option{
		omnicasa.WithCache(store),
		omnicasa.WithCaching(cfg.Cache.Enabled),
		omnicasa.WithCacheTTL(cfg.Cache.TTL),
		omnicasa.WithHTTPClient(&http.Client{Timeout: oc.Timeout}),
		omnicasa.WithRetryAttempts(uint(oc.RetryAttempts), time.Second),
	}
	if oc.BaseURL != "" {
		base := oc.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		opts = append(opts, omnicasa.WithBaseURL(base))
	}
	return omnicasa.NewClient(oc.Username, oc.Password, oc.Language, oc.APIVersion, opts...)
}

// initialize the rate limiter
func (a *App) initializeRateLimiter(ctx context.Context) {
	a.RateLimiter = middleware.NewRateLimiter(middleware.PerMinute(a.Config.RateLimit.RequestsPerMinute), a.Config.RateLimit.Burst)
	go a.RateLimiter.Cleanup(ctx, time.Hour)
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	requestValidator := validators.NewRequestValidator()
	gatewayService := services.NewGatewayService(a.Client, a.Store, requestValidator)

	a.OmnicasaHandler = handlers.NewOmnicasaHandler(gatewayService)
	a.HealthHandler = handlers.NewHealthHandler(gatewayService)
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	if a.Config.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	a.cancel()
	if a.Client != nil {
		if err := a.Client.Close(); err != nil {
			logger.GlobalLogger.Errorf("Failed to close request log: %v", err)
		}
	}
	if a.closeStore != nil {
		if err := a.closeStore(); err != nil {
			logger.GlobalLogger.Errorf("Failed to close cache store: %v", err)
		}
	}
}
