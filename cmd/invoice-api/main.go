package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/richxcame/trip-invoice/internal/billing"
	"github.com/richxcame/trip-invoice/internal/invoice"
	"github.com/richxcame/trip-invoice/pkg/common"
	"github.com/richxcame/trip-invoice/pkg/config"
	"github.com/richxcame/trip-invoice/pkg/health"
	"github.com/richxcame/trip-invoice/pkg/logger"
	"github.com/richxcame/trip-invoice/pkg/middleware"
	"github.com/richxcame/trip-invoice/pkg/tracing"
	"go.uber.org/zap"
)

const (
	serviceName = "invoice-api"
	version     = "1.0.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load(serviceName)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	shutdownTracing, err := tracing.Init(context.Background(), serviceName, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.SampleRatio)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	if cfg.Telemetry.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Telemetry.SentryDSN,
			Environment: cfg.Server.Environment,
			Release:     serviceName + "@" + version,
		}); err != nil {
			logger.Fatal("Failed to initialize Sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Create calculator, renderer, service and handler
	branding := invoice.BrandingFromConfig(cfg.Invoice, serviceName+" "+version)
	encoder := invoice.NewQREncoder()
	calculator := billing.NewCalculator(billing.WithCurrencySymbol(cfg.Invoice.CurrencySymbol))
	renderer := invoice.NewRenderer(branding, invoice.WithEncoder(encoder))
	service := invoice.NewService(calculator, renderer, invoice.WithLocation(renderer.Branding().Location))
	handler := invoice.NewHandler(service, cfg.Invoice.CurrencyCode)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery())
	if cfg.Telemetry.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(middleware.CorrelationID())
	router.Use(middleware.Tracing(serviceName))
	router.Use(middleware.RequestLogger("/healthz", "/metrics"))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics(serviceName))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins()
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", "X-Invoice-Number", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	// Health check and metrics
	router.GET("/healthz", health.Handler(serviceName, version, map[string]health.Checker{
		"paycode": health.PaymentCodeChecker(encoder),
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/", timeout.New(
		timeout.WithTimeout(cfg.Server.RequestTimeoutDuration()),
		timeout.WithResponse(func(c *gin.Context) {
			common.ErrorResponse(c, http.StatusGatewayTimeout, "request timed out")
		}),
	))
	handler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Invoice service starting",
			zap.String("port", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
			zap.Bool("split_tax", cfg.Invoice.SplitTax),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down invoice service")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("Failed to flush traces", zap.Error(err))
	}
}
