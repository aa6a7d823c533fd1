package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freshlink/marketplace-api/internal/api/handler"
	"github.com/freshlink/marketplace-api/internal/api/middleware"
	"github.com/freshlink/marketplace-api/internal/core/domain"
	"github.com/freshlink/marketplace-api/internal/core/service"
	mongodb "github.com/freshlink/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/freshlink/marketplace-api/internal/infrastructure/db/redis"
	"github.com/freshlink/marketplace-api/internal/pkg/config"
	"github.com/freshlink/marketplace-api/internal/upload"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Repositories and services are constructed here and passed by reference;
// nothing is process-global.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	grievanceRepo := mongodb.NewGrievanceRepository(db)
	catalogRepo := mongodb.NewCatalogRepository(db)
	guard := redisdb.NewGrievanceGuard(rdb)
	codec := upload.NewCodec(cfg.Upload.TempDir, cfg.Upload.MaxAttachmentBytes, log)

	authService := service.NewAuthService(
		accountRepo,
		service.NewBcryptVerifier(),
		service.AdminCredentials{Email: cfg.Admin.Email, Password: cfg.Admin.Password},
		cfg.JWTSecret,
		24*time.Hour,
		log,
	)
	verificationService := service.NewVerificationService(accountRepo, log)
	grievanceService := service.NewGrievanceService(grievanceRepo, guard, log)
	catalogService := service.NewCatalogService(catalogRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	verificationHandler := handler.NewVerificationHandler(verificationService)
	grievanceHandler := handler.NewGrievanceHandler(grievanceService, codec)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	adminOnly := []echo.MiddlewareFunc{
		middleware.Auth(cfg.JWTSecret),
		middleware.RBAC(string(domain.RoleAdmin)),
	}

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/admin/login", authHandler.LoginAdmin)

	// --- Verification routes (admin token required) ---
	e.GET("/unverified-users", verificationHandler.ListPending, adminOnly...)
	e.POST("/verify-user", verificationHandler.Approve, adminOnly...)
	e.DELETE("/reject-user/:type/:id", verificationHandler.Reject, adminOnly...)

	// --- Grievance routes ---
	e.POST("/grievance", grievanceHandler.Submit)
	e.GET("/grievances", grievanceHandler.List)
	e.GET("/grievances/:id", grievanceHandler.Get)
	e.GET("/grievances/:id/attachments/:index", grievanceHandler.DownloadAttachment)

	// --- Catalog and cart routes ---
	e.POST("/menu", catalogHandler.AddMenuItem)
	e.GET("/menu/supplier/:phone", catalogHandler.MenuBySupplier)
	e.GET("/menu/tax/:taxId", catalogHandler.MenuByTaxID)
	e.PUT("/suppliers/shop-status", authHandler.SetShopStatus)
	e.POST("/cart", catalogHandler.AddCartEntry)
	e.GET("/cart/:vendorPhone", catalogHandler.CartLog)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
