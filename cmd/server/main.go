package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	adminapp "github.com/shopfront/backend/internal/application/admin"
	checkoutapp "github.com/shopfront/backend/internal/application/checkout"
	fulfillmentapp "github.com/shopfront/backend/internal/application/fulfillment"
	visitorapp "github.com/shopfront/backend/internal/application/visitor"
	"github.com/shopfront/backend/internal/infrastructure/auth"
	"github.com/shopfront/backend/internal/infrastructure/catalog"
	"github.com/shopfront/backend/internal/infrastructure/config"
	"github.com/shopfront/backend/internal/infrastructure/geoip"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/infrastructure/payment"
	"github.com/shopfront/backend/internal/infrastructure/storage"
	"github.com/shopfront/backend/internal/infrastructure/visitlog"
	"github.com/shopfront/backend/internal/interfaces/http/handler"
	"github.com/shopfront/backend/internal/interfaces/http/middleware"
	"github.com/shopfront/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	// Product catalog
	productCatalog, err := catalog.NewFileCatalog(cfg.Catalog.Path)
	if err != nil {
		log.Fatal("Failed to load product catalog", zap.Error(err))
	}
	log.Info("Loaded product catalog",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("products", len(productCatalog.Products())))

	// Asset storage
	var assetStorage fulfillmentapp.AssetStorage
	switch cfg.Assets.Backend {
	case "s3":
		assetStorage, err = storage.NewS3AssetStorage(&cfg.Assets, log)
		if err != nil {
			log.Fatal("Failed to initialize S3 asset storage", zap.Error(err))
		}
		log.Info("Using S3 asset storage", zap.String("bucket", cfg.Assets.S3Bucket))
	default:
		assetStorage, err = storage.NewLocalAssetStorage(cfg.Assets.Dir)
		if err != nil {
			log.Fatal("Failed to initialize local asset storage", zap.Error(err))
		}
		log.Info("Using local asset storage", zap.String("dir", cfg.Assets.Dir))
	}

	// Tokens for admin sessions and download grants
	tokens := auth.NewTokenService(cfg.Session.Secret, cfg.Session.TTL, cfg.App.Name)

	// Payment providers
	stripeAdapter, err := payment.NewStripeAdapter(&payment.StripeConfig{
		SecretKey: cfg.Stripe.SecretKey,
		Currency:  cfg.Stripe.Currency,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize Stripe adapter", zap.Error(err))
	}

	paypalAdapter, err := payment.NewPayPalAdapter(&payment.PayPalConfig{
		ClientID:    cfg.PayPal.ClientID,
		Secret:      cfg.PayPal.Secret,
		Environment: cfg.PayPal.Environment,
		Timeout:     cfg.PayPal.Timeout,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize PayPal adapter", zap.Error(err))
	}

	// Application services
	checkoutService := checkoutapp.NewService(checkoutapp.Config{
		PublicBaseURL:       cfg.App.PublicBaseURL,
		SuccessPath:         cfg.Stripe.SuccessPath,
		CancelPath:          cfg.Stripe.CancelPath,
		AttachDownloadToken: cfg.Fulfillment.RequireToken,
		DownloadTokenTTL:    cfg.Fulfillment.TokenTTL,
	}, stripeAdapter, paypalAdapter, tokens, log)

	fulfillmentService := fulfillmentapp.NewService(
		productCatalog, assetStorage, tokens, cfg.Fulfillment.RequireToken, log)

	visitStore := visitlog.NewStore(cfg, log)
	var locator visitorapp.Locator
	if cfg.GeoIP.Enabled {
		locator = geoip.NewClient(cfg.GeoIP.BaseURL, cfg.GeoIP.Timeout)
	}
	visitorRecorder := visitorapp.NewRecorder(visitStore, locator, log)

	adminService := adminapp.NewService(cfg.Admin.Username, cfg.Admin.PasswordHash, tokens, log)

	// HTTP layer
	middleware.SetupValidator()

	engine, err := router.New(router.Dependencies{
		Config:   cfg,
		Logger:   log,
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Download: handler.NewDownloadHandler(fulfillmentService),
		Catalog:  handler.NewCatalogHandler(productCatalog),
		Admin: handler.NewAdminHandler(adminService, visitorRecorder, handler.AdminCookieConfig{
			Name:   cfg.Session.CookieName,
			MaxAge: cfg.Session.TTL,
			Secure: cfg.Session.CookieSecure,
		}),
		System:      handler.NewSystemHandler(),
		Visitors:    visitorRecorder,
		Credentials: adminService,
		Sessions:    tokens,
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           cfg.App.Addr(),
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
