// Package router assembles the gin engine: middleware chain first,
// then the storefront and admin routes.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/application/visitor"
	"github.com/shopfront/backend/internal/infrastructure/config"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/interfaces/http/handler"
	"github.com/shopfront/backend/internal/interfaces/http/middleware"
)

// Dependencies carries everything the router wires together.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Checkout *handler.CheckoutHandler
	Download *handler.DownloadHandler
	Catalog  *handler.CatalogHandler
	Admin    *handler.AdminHandler
	System   *handler.SystemHandler
	Visitors *visitor.Recorder

	// Credentials guards the admin surface. Sessions is only used in
	// "session" mode.
	Credentials middleware.CredentialChecker
	Sessions    middleware.SessionValidator
}

// visitSkipPrefixes lists paths never recorded in the visitor log:
// the admin surface and operational endpoints.
var visitSkipPrefixes = []string{
	"/admin", "/login", "/logout", "/dashboard", "/health", "/favicon.ico",
}

// New builds the HTTP engine with the full middleware chain and all
// routes registered.
func New(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	log := deps.Logger

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return nil, err
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.RequestLogger(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}
	engine.Use(middleware.VisitLogger(deps.Visitors, visitSkipPrefixes))

	registerRoutes(engine, deps)
	return engine, nil
}

func registerRoutes(engine *gin.Engine, deps Dependencies) {
	cfg := deps.Config

	engine.GET("/health", deps.System.Health)
	engine.GET("/products", deps.Catalog.ListProducts)
	engine.POST("/create-checkout-session", deps.Checkout.CreateCheckoutSession)
	engine.POST("/capture-paypal-order", deps.Checkout.CapturePayPalOrder)
	engine.GET("/download/:productId", deps.Download.Download)

	switch cfg.Admin.Mode {
	case "session":
		engine.GET("/login", deps.Admin.ShowLogin)
		engine.POST("/login", deps.Admin.Login)
		engine.GET("/logout", deps.Admin.Logout)

		guard := middleware.AdminSessionGuard(deps.Sessions, cfg.Session.CookieName, "/login")
		engine.GET("/dashboard", guard, deps.Admin.Dashboard)
		engine.GET("/admin/visitors", guard, deps.Admin.ListVisitors)
	default:
		guard := middleware.AdminBasicAuth(deps.Credentials, cfg.App.Name)
		engine.GET("/admin/visitors", guard, deps.Admin.ListVisitors)
	}
}
