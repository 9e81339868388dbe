package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"provider-directory/config"
	"provider-directory/internal/delivery/dto"
	deliveryHttp "provider-directory/internal/delivery/http"
	"provider-directory/internal/delivery/http/handler"
	"provider-directory/internal/delivery/http/middleware"
	"provider-directory/internal/infrastructure/cache"
	"provider-directory/internal/infrastructure/database"
	"provider-directory/internal/repository"
	"provider-directory/internal/service"
	"provider-directory/internal/usecase"
	"provider-directory/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the resource server
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	rateLimit *middleware.RateLimitMiddleware
	done      chan struct{}
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{done: make(chan struct{})}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	app.DB = db
	logrus.WithField("driver", cfg.DB.Driver).Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	if redisClient != nil {
		logrus.Info("Redis connected successfully")
	} else {
		logrus.Info("Redis not configured, catalog cache and token revocation disabled")
	}

	app.rateLimit = middleware.NewRateLimitMiddleware(cfg.Rate.RPS, cfg.Rate.Burst)
	app.Server = &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.App.Port),
		Handler: NewHandler(cfg, db, redisClient, logrus.StandardLogger(), app.rateLimit),
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// NewHandler wires repositories, usecases and handlers into the router.
// redisClient may be nil.
func NewHandler(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, rateLimit *middleware.RateLimitMiddleware) http.Handler {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := dto.NewValidator()

	// Initialize repositories
	providerRepo := repository.NewProviderRepository()
	branchRepo := repository.NewBranchRepository()
	specialtyRepo := repository.NewSpecialtyRepository()
	insuranceRepo := repository.NewInsuranceRepository()
	procedureRepo := repository.NewProcedureRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	catalogCache := service.NewCatalogCache(redisClient, cfg.Redis.TTL, log)

	// Initialize usecases
	providerUsecase := usecase.NewProviderUsecase(db, log, providerRepo, auditService)
	branchUsecase := usecase.NewBranchUsecase(db, log, branchRepo, providerRepo, auditService)
	catalogUsecase := usecase.NewCatalogUsecase(db, log, specialtyRepo, insuranceRepo, procedureRepo, auditService, catalogCache)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	providerHandler := handler.NewProviderHandler(providerUsecase, customValidator)
	branchHandler := handler.NewBranchHandler(branchUsecase, customValidator)
	catalogHandler := handler.NewCatalogHandler(catalogUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient, cfg.JWT.Required, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)
	if rateLimit == nil {
		rateLimit = middleware.NewRateLimitMiddleware(cfg.Rate.RPS, cfg.Rate.Burst)
	}

	router := deliveryHttp.NewRouter(
		providerHandler,
		branchHandler,
		catalogHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		rateLimit,
	)
	return router.Setup()
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go app.rateLimit.Cleanup(time.Minute, app.done)

	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	close(app.done)

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
