package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appstock "github.com/hotelstock/backend/internal/application/stock"
	"github.com/hotelstock/backend/internal/domain/stock"
	"github.com/hotelstock/backend/internal/infrastructure/cache"
	"github.com/hotelstock/backend/internal/infrastructure/config"
	"github.com/hotelstock/backend/internal/infrastructure/event"
	"github.com/hotelstock/backend/internal/infrastructure/logger"
	"github.com/hotelstock/backend/internal/infrastructure/persistence"
	"github.com/hotelstock/backend/internal/interfaces/http/handler"
	"github.com/hotelstock/backend/internal/interfaces/http/middleware"
	"github.com/hotelstock/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//	@title			Hotel Stock API
//	@version		1.0
//	@description	Stock valuation and period close backend for hotel food and beverage operations.

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Hotel Stock Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Event bus with audit logging of every domain event
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Approval guard. Redis makes the guard shared across replicas; the
	// in-memory fallback is only safe for a single server instance.
	var guard appstock.ApprovalGuard
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		guard = cache.NewRedisApprovalGuard(redisClient, cfg.Approval.GuardTTL)
		log.Info("Redis approval guard enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		guard = cache.NewInMemoryApprovalGuard(cfg.Approval.GuardTTL)
		log.Warn("Using in-memory approval guard, not safe for multiple replicas")
	}

	// Domain services
	converter := stock.NewDefaultConverter()
	valuator := stock.NewValuator(converter)

	// Application services
	txnScope := persistence.NewGormTransactionScope(db.DB)
	itemRepo := persistence.NewGormStockItemRepository(db.DB)
	itemService := appstock.NewItemService(itemRepo, eventBus)
	stocktakeService := appstock.NewStocktakeService(txnScope, valuator, guard, eventBus)
	periodService := appstock.NewPeriodService(txnScope, valuator, eventBus)

	// HTTP handlers
	itemHandler := handler.NewStockItemHandler(itemService)
	periodHandler := handler.NewPeriodHandler(periodService, stocktakeService)
	stocktakeHandler := handler.NewStocktakeHandler(stocktakeService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack in order: request ID, panic recovery, request
	// logging, security headers, CORS.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Probes outside API versioning
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	stockRoutes := router.NewDomainGroup("stock", "/stock")

	// Stock item routes
	stockRoutes.POST("/items", itemHandler.Create)
	stockRoutes.GET("/items", itemHandler.List)
	stockRoutes.GET("/items/:id", itemHandler.GetByID)
	stockRoutes.GET("/items/sku/:sku", itemHandler.GetBySKU)
	stockRoutes.PUT("/items/:id/costs", itemHandler.UpdateCosts)
	stockRoutes.POST("/items/:id/activate", itemHandler.Activate)
	stockRoutes.POST("/items/:id/deactivate", itemHandler.Deactivate)

	// Accounting period routes
	stockRoutes.POST("/periods", periodHandler.Create)
	stockRoutes.GET("/periods", periodHandler.List)
	stockRoutes.GET("/periods/:id", periodHandler.GetByID)
	stockRoutes.POST("/periods/:id/close", periodHandler.Close)
	stockRoutes.POST("/periods/:id/reopen", periodHandler.Reopen)
	stockRoutes.GET("/periods/:id/stocktake", periodHandler.GetStocktake)
	stockRoutes.GET("/periods/:id/snapshots", periodHandler.GetSnapshots)

	// Stocktake routes
	stockRoutes.GET("/stocktakes/:id", stocktakeHandler.GetByID)
	stockRoutes.POST("/stocktakes/:id/counts", stocktakeHandler.RecordCounts)
	stockRoutes.POST("/stocktakes/:id/purchases", stocktakeHandler.AddPurchase)
	stockRoutes.POST("/stocktakes/:id/waste", stocktakeHandler.AddWaste)
	stockRoutes.POST("/stocktakes/:id/approve", stocktakeHandler.Approve)
	stockRoutes.GET("/stocktakes/:id/variance-report", stocktakeHandler.VarianceReport)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r.Register(stockRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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
