package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/solecrafted/internal/catalog"
	"github.com/utafrali/solecrafted/internal/config"
	"github.com/utafrali/solecrafted/internal/event"
	handler "github.com/utafrali/solecrafted/internal/handler/http"
	"github.com/utafrali/solecrafted/internal/payment"
	redisrepo "github.com/utafrali/solecrafted/internal/repository/redis"
	"github.com/utafrali/solecrafted/internal/service"
	"github.com/utafrali/solecrafted/pkg/health"
	"github.com/utafrali/solecrafted/pkg/httpclient"
	pkgkafka "github.com/utafrali/solecrafted/pkg/kafka"
	"github.com/utafrali/solecrafted/pkg/middleware"
	"github.com/utafrali/solecrafted/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize Redis client.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Load the product catalog from the embedded seed data.
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded", slog.Int("products", cat.Len()))

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	storeTTL := cfg.StoreTTLDuration()
	cartRepo := redisrepo.NewCartRepository(rdb, storeTTL)
	wishlistRepo := redisrepo.NewWishlistRepository(rdb, storeTTL)
	prefsRepo := redisrepo.NewPreferencesRepository(rdb)
	orderRepo := redisrepo.NewOrderRepository(rdb)
	eventProducer := event.NewProducer(producer, logger)

	gateway, err := newPaymentGateway(cfg, logger)
	if err != nil {
		return nil, err
	}

	svcs := handler.Services{
		Products:    service.NewProductService(cat, logger),
		Cart:        service.NewCartService(cat, cartRepo, eventProducer, logger),
		Wishlist:    service.NewWishlistService(cat, wishlistRepo, eventProducer, logger),
		Checkout:    service.NewCheckoutService(cartRepo, orderRepo, gateway, eventProducer, logger),
		Auth:        service.NewAuthService(prefsRepo, logger),
		Preferences: service.NewPreferencesService(prefsRepo, logger),
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(svcs, healthHandler, corsCfg, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		rdb:            rdb,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// newPaymentGateway selects the payment gateway implementation based on config.
func newPaymentGateway(cfg *config.Config, logger *slog.Logger) (payment.Gateway, error) {
	switch cfg.PaymentMode {
	case config.PaymentModeSimulated:
		logger.Info("using simulated payment gateway",
			slog.Duration("latency", cfg.PaymentLatency),
			slog.Float64("failure_rate", cfg.PaymentFailureRate),
		)
		return payment.NewSimulatedGateway(payment.SimulatedConfig{
			Latency:     cfg.PaymentLatency,
			FailureRate: cfg.PaymentFailureRate,
		}, logger), nil

	case config.PaymentModeHTTP:
		baseClient := httpclient.New(httpclient.Config{
			Timeout:         10 * time.Second,
			MaxRetries:      3,
			RetryWaitMin:    500 * time.Millisecond,
			RetryWaitMax:    5 * time.Second,
			MaxConnsPerHost: 100,
		})
		cbClient := httpclient.NewCircuitBreakerClient(
			baseClient,
			httpclient.DefaultCircuitBreakerConfig("payment-gateway"),
			logger,
		)
		logger.Info("using HTTP payment gateway", slog.String("url", cfg.PaymentGatewayURL))
		return payment.NewHTTPGateway(cbClient, cfg.PaymentGatewayURL, logger), nil

	default:
		return nil, fmt.Errorf("unknown payment mode: %q", cfg.PaymentMode)
	}
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: HTTP server first so
// in-flight requests drain, then the tracer flushes their spans, then the
// Kafka producer and Redis client close.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
