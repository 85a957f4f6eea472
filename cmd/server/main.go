package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	appinventory "github.com/drumflow/backend/internal/application/inventory"
	"github.com/drumflow/backend/internal/application/orders"
	"github.com/drumflow/backend/internal/application/scanning"
	"github.com/drumflow/backend/internal/domain/inventory"
	"github.com/drumflow/backend/internal/infrastructure/config"
	"github.com/drumflow/backend/internal/infrastructure/event"
	"github.com/drumflow/backend/internal/infrastructure/lock"
	"github.com/drumflow/backend/internal/infrastructure/logger"
	"github.com/drumflow/backend/internal/infrastructure/persistence"
	"github.com/drumflow/backend/internal/interfaces/http/handler"
	"github.com/drumflow/backend/internal/interfaces/http/middleware"
	"github.com/drumflow/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting drum inventory backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	gormLogLevel := gormlogger.Silent
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	drumRepo := persistence.NewGormDrumRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)

	// Status transitions: trigger mode trusts database triggers to move the
	// drum and only verifies; explicit mode performs the conditional update
	// itself.
	var transitions inventory.StatusTransitionPort
	switch cfg.Scan.TransitionMode {
	case "explicit":
		transitions = persistence.NewExplicitStatusTransition(db.DB)
	default:
		transitions = persistence.NewTriggerStatusTransition(db.DB)
	}
	log.Info("Status transition mode", zap.String("mode", cfg.Scan.TransitionMode))

	// Per-drum scan lock: Redis when configured, otherwise in-process.
	// The in-process lock is only safe for a single instance.
	var locker inventory.ScanLocker
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisLocker, err := lock.NewRedisScanLocker(redisClient, cfg.Scan.LockTTL, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		locker = redisLocker
		log.Info("Using Redis scan lock", zap.String("addr", cfg.Redis.Addr()))
	} else {
		locker = lock.NewInMemoryScanLocker()
		log.Info("Using in-process scan lock")
	}

	// Initialize event bus and the scan feed handler
	eventBus := event.NewInMemoryEventBus(log)

	streamHandler := handler.NewScanStreamHandler(
		handler.WithStreamLogger(log),
		handler.WithStreamHeartbeat(cfg.Scan.SSEHeartbeat),
		handler.WithStreamMaxClients(cfg.Scan.SSEMaxClients),
	)
	eventBus.Subscribe(streamHandler)
	streamHandler.Start()
	defer streamHandler.Stop()

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	scanService := scanning.NewScanService(
		drumRepo, orderRepo, transactionRepo,
		transitions, locker, cfg.Scan.CooldownMinutes, log,
	)
	scanService.SetEventPublisher(eventBus)
	orderService := orders.NewOrderService(orderRepo, drumRepo, log)
	drumService := appinventory.NewDrumService(drumRepo, orderRepo, transactionRepo, log)

	// Initialize HTTP handlers
	scanHandler := handler.NewScanHandler(scanService)
	orderHandler := handler.NewOrderHandler(orderService)
	drumHandler := handler.NewDrumHandler(drumService)
	systemHandler := handler.NewSystemHandler(db, version)
	if redisClient != nil {
		systemHandler.SetRedisPinger(handler.PingerFunc(func() error {
			return redisClient.Ping(context.Background()).Err()
		}))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
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

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health endpoints live outside API versioning so load balancers can
	// probe them without version knowledge
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.NewScanRoutes(scanHandler, streamHandler)).
		Register(router.NewDrumRoutes(drumHandler, scanHandler)).
		Register(router.NewOrderRoutes(orderHandler))
	r.Setup()

	// WriteTimeout stays unset: the scan feed holds SSE connections open
	// indefinitely and a server-wide write deadline would sever them.
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
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
