package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/scentalux/storefront/internal/cart"
	"github.com/scentalux/storefront/internal/catalog"
	"github.com/scentalux/storefront/internal/handler"
	mid "github.com/scentalux/storefront/internal/middleware"
	"github.com/scentalux/storefront/internal/model"
	"github.com/scentalux/storefront/internal/session"
	"github.com/scentalux/storefront/pkg/backend"
	"github.com/scentalux/storefront/pkg/config"
	"github.com/scentalux/storefront/pkg/database"
	"github.com/scentalux/storefront/pkg/logger"
	"github.com/scentalux/storefront/prometheus"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env when present)
	appConfig, err := config.Load("storefront")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting storefront", appConfig.LogConfig()...)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database for session, cart and sale-ledger state
	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(&model.Session{}, &model.CartItem{}, &model.Sale{}); err != nil {
		log.Fatal("Failed to migrate models", zap.Error(err))
	}
	log.Info("Database connection established")

	// Backend client for the external catalog/order API
	client := backend.NewClient(appConfig.Backend.BaseURL, appConfig.Backend.Timeout)
	log.Info("Backend client initialized",
		zap.String("base_url", appConfig.Backend.BaseURL))

	// Wire the stores: catalog caches the backend's products, the cart
	// validates against it, and sessions clear carts on teardown
	catalog.Initialize(client, catalog.NewGormSaleLog(db))
	cart.Initialize(cart.NewGormRepository(db), catalog.GetStore())
	session.Initialize(session.NewGormRepository(db), cart.GetStore())
	handler.Initialize(client)

	// Warm the catalog cache; the refresh endpoint recovers from a failure here
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := catalog.GetStore().Refresh(logger.WithContext(ctx, log)); err != nil {
		log.Warn("Initial catalog refresh failed, serving empty catalog until next refresh",
			zap.Error(err))
	}
	cancel()

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Public routes
	e.POST("/api/auth/register", handler.Register)
	e.POST("/api/auth/login", handler.Login)
	e.GET("/api/perfumes", handler.ListPerfumes)
	e.GET("/api/perfumes/:id", handler.GetPerfume, mid.OptionalAuthMiddleware)
	e.POST("/api/advisor/recommendations", handler.Recommend)

	// Authenticated customer routes
	api := e.Group("/api", mid.AuthMiddleware)
	api.POST("/auth/logout", handler.Logout)
	api.GET("/cart", handler.GetCart)
	api.POST("/cart/items", handler.AddCartItem)
	api.PUT("/cart/items/:id", handler.SetCartItem)
	api.DELETE("/cart/items/:id", handler.RemoveCartItem)
	api.DELETE("/cart", handler.ClearCart)
	api.POST("/checkout", handler.Checkout)
	api.GET("/orders", handler.MyOrders)
	api.PUT("/orders/:id/receipt", handler.AttachReceipt)
	api.POST("/upload/receipt", handler.UploadReceipt)

	// Admin routes
	admin := e.Group("/api/admin", mid.AuthMiddleware, mid.AdminMiddleware)
	admin.GET("/perfumes", handler.ListAllPerfumes)
	admin.POST("/perfumes", handler.CreatePerfume)
	admin.DELETE("/perfumes/:id", handler.DeletePerfume)
	admin.PUT("/perfumes/:id/publish", handler.TogglePublish)
	admin.PUT("/perfumes/:id/stock", handler.UpdateStock)
	admin.POST("/perfumes/refresh", handler.RefreshCatalog)
	admin.GET("/orders", handler.AllOrders)
	admin.PUT("/orders/:id/status", handler.UpdateOrderStatus)
	admin.GET("/statistics", handler.GetStatistics)
	admin.POST("/sales", handler.RecordSale)
	admin.POST("/upload/image", handler.UploadImage)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
