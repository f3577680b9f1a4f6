package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snapspend-api/internal/config"
	"snapspend-api/internal/database"
	"snapspend-api/internal/extract"
	"snapspend-api/internal/handlers"
	custommw "snapspend-api/internal/middleware"
	"snapspend-api/internal/repositories"
	"snapspend-api/internal/services"
	"snapspend-api/internal/storage"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	cfg := config.Load()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		logger.Error("failed to initialize image storage", "error", err, "dir", cfg.Upload.Dir)
		os.Exit(1)
	}

	extractor := extract.NewOpenAIExtractor(&cfg.Extraction, logger)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	receiptRepo := repositories.NewReceiptRepository(db)
	itemRepo := repositories.NewReceiptItemRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	passwordService := services.NewPasswordService(cfg.Security.BCryptCost, cfg.Security.PasswordMinLength)
	tokenService := services.NewTokenService(&cfg.Session)
	authService := services.NewAuthService(userRepo, passwordService, tokenService, metrics, logger)
	receiptService := services.NewReceiptService(receiptRepo, itemRepo, store, metrics, logger)
	uploadService := services.NewUploadService(receiptRepo, extractor, store, &cfg.Upload, metrics, logger)
	aggregationService := services.NewAggregationService(receiptRepo)
	duplicateService := services.NewDuplicateService(receiptRepo)
	exportService := services.NewExportService(receiptRepo, metrics, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Session)
	receiptHandler := handlers.NewReceiptHandler(receiptService, duplicateService)
	itemHandler := handlers.NewItemHandler(receiptService)
	uploadHandler := handlers.NewUploadHandler(uploadService, cfg.Upload)
	aggregateHandler := handlers.NewAggregateHandler(aggregationService)
	exportHandler := handlers.NewExportHandler(exportService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = custommw.CustomHTTPErrorHandler

	e.Use(custommw.PanicRecovery())
	e.Use(custommw.RequestID())
	e.Use(custommw.SecurityHeaders())
	e.Use(custommw.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.CORSAllowOrigins,
		AllowCredentials: true,
	}))
	e.Use(echomw.BodyLimit(fmt.Sprintf("%dM", uploadBodyLimitMB(&cfg.Upload))))

	registerRoutes(e, cfg, tokenService, authHandler, receiptHandler, itemHandler, uploadHandler, aggregateHandler, exportHandler, healthHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("starting server", "addr", addr, "environment", cfg.Server.Environment)

		server := &http.Server{
			Addr:         addr,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}
		if err := e.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

func registerRoutes(
	e *echo.Echo,
	cfg *config.Config,
	tokenService services.TokenServiceInterface,
	authHandler *handlers.AuthHandler,
	receiptHandler *handlers.ReceiptHandler,
	itemHandler *handlers.ItemHandler,
	uploadHandler *handlers.UploadHandler,
	aggregateHandler *handlers.AggregateHandler,
	exportHandler *handlers.ExportHandler,
	healthHandler *handlers.HealthCheckHandler,
) {
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	// Public auth endpoints
	api.POST("/auth/signup/", authHandler.Signup)
	api.POST("/auth/login/", authHandler.Login)
	api.POST("/auth/logout/", authHandler.Logout)

	// Everything else requires a session cookie
	session := custommw.RequireSession(tokenService, cfg.Session.CookieName)

	api.GET("/auth/me/", authHandler.Me, session)

	receipts := api.Group("/receipts", session)
	receipts.GET("/", receiptHandler.ListReceipts)
	receipts.POST("/upload/", uploadHandler.Upload)
	receipts.GET("/duplicates/", receiptHandler.ListDuplicates)
	receipts.GET("/aggregates/", aggregateHandler.Aggregate)
	receipts.GET("/export/", exportHandler.Export)
	receipts.GET("/:receiptId/", receiptHandler.GetReceipt)
	receipts.PATCH("/:receiptId/", receiptHandler.UpdateReceipt)
	receipts.DELETE("/:receiptId/", receiptHandler.DeleteReceipt)
	receipts.GET("/:receiptId/image/", receiptHandler.GetReceiptImage)

	items := api.Group("/receipt-items", session)
	items.GET("/:itemId/", itemHandler.GetItem)
	items.PATCH("/:itemId/", itemHandler.UpdateItem)
	items.DELETE("/:itemId/", itemHandler.DeleteItem)
}

// newLogger builds the process logger: JSON in production so log collectors
// can parse it, human-readable text everywhere else
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

// uploadBodyLimitMB sizes the request body cap from the per-file limit and
// batch size, with headroom for multipart framing
func uploadBodyLimitMB(cfg *config.UploadConfig) int64 {
	totalBytes := cfg.MaxFileBytes * int64(cfg.MaxFiles)
	mb := totalBytes / (1 << 20)
	if mb < 1 {
		mb = 1
	}
	return mb + 1
}
