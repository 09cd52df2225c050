package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bunq-wrapped/internal/config"
	"bunq-wrapped/internal/database"
	"bunq-wrapped/internal/dto"
	"bunq-wrapped/internal/handlers"
	"bunq-wrapped/internal/middleware"
	"bunq-wrapped/internal/models"
	"bunq-wrapped/internal/repositories"
	"bunq-wrapped/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	setupLogging(cfg)

	db, err := database.New(&cfg.Database)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	transactionRepo := repositories.NewTransactionRepository(db.DB)

	if cfg.Server.SeedFile != "" {
		seedTransactions(cfg.Server.SeedFile, transactionRepo)
	}

	var generator services.GeneratorInterface
	if cfg.Generation.APIKey == "" {
		slog.Warn("no generation API key configured, generative report entries will degrade")
		generator = services.NewUnavailableGenerator()
	} else {
		generator, err = services.NewGenerationService(context.Background(), cfg.Generation)
		if err != nil {
			slog.Error("failed to create generation client", "error", err)
			os.Exit(1)
		}
	}

	metrics := services.NewPrometheusMetrics()
	reportService := services.NewReportService(generator, metrics)

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	defer limiter.Stop()

	e := buildServer(cfg, db, transactionRepo, reportService, metrics, limiter)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		slog.Info("starting server", "addr", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	slog.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
}

func setupLogging(cfg *config.Config) {
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}

func buildServer(
	cfg *config.Config,
	db *database.DB,
	transactionRepo repositories.TransactionRepositoryInterface,
	reportService services.ReportServiceInterface,
	metrics services.MetricsRecorderInterface,
	limiter *middleware.IPRateLimiter,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(limiter.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
	}))

	reportHandler := handlers.NewReportHandler(transactionRepo, reportService)
	transactionHandler := handlers.NewTransactionHandler(transactionRepo, metrics)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e.GET("/report", reportHandler.GetReport)
	e.POST("/transactions", transactionHandler.IngestTransactions)
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

// seedTransactions loads raw records from a JSON file into an empty
// store. A missing or unreadable file is not fatal: an empty store is a
// valid input and yields the all-defaults report.
func seedTransactions(path string, repo repositories.TransactionRepositoryInterface) {
	count, err := repo.Count()
	if err != nil {
		slog.Error("failed to count transactions before seeding", "error", err)
		return
	}
	if count > 0 {
		slog.Info("skipping seed, store already populated", "count", count)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("seed file not readable, starting with empty store", "path", path, "error", err)
		return
	}

	var raw []dto.RawTransaction
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Error("seed file is not a JSON array of transactions", "path", path, "error", err)
		return
	}

	accepted := make([]*models.Transaction, 0, len(raw))
	rejected := 0
	for i := range raw {
		tx, err := raw[i].ToModel()
		if err != nil {
			rejected++
			continue
		}
		accepted = append(accepted, tx)
	}

	if err := repo.CreateBatch(accepted); err != nil {
		slog.Error("failed to store seed transactions", "error", err)
		return
	}

	slog.Info("seeded transactions", "path", path, "accepted", len(accepted), "rejected", rejected)
}
