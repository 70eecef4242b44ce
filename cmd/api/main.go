package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"stockledger/internal/config"
	"stockledger/internal/database"
	"stockledger/internal/logger"
	"stockledger/internal/provider"
	"stockledger/internal/router"
	"stockledger/internal/services"
	"stockledger/internal/store"
	"stockledger/internal/validator"
)

// @title           Stock Ledger API
// @version         1.0
// @description     Per-user stock portfolio ledger with weighted-average cost basis.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the identity provider token.

const shutdownTimeout = 15 * time.Second

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(ctx context.Context) error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.FinnhubAPIKey == "" {
		log.Warn("FINNHUB_API_KEY is not set, quotes will be unavailable")
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(dbManager.DB()); err != nil {
			return fmt.Errorf("failed to auto-migrate database: %w", err)
		}
	} else if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	quoteClient := &http.Client{Timeout: cfg.QuoteTimeout}
	opts := provider.FinnhubOptions{
		APIKey:      cfg.FinnhubAPIKey,
		BaseURL:     cfg.FinnhubBaseURL,
		CacheTTL:    cfg.QuoteCacheTTL,
		Concurrency: cfg.QuoteConcurrency,
	}
	if cfg.YahooFallback {
		opts.Fallback = provider.NewYahoo(quoteClient, cfg.YahooBaseURL)
	}
	quotes := provider.NewFinnhub(quoteClient, opts)
	ledger := services.NewLedgerService(store.NewGormStore(dbManager.DB()))
	portfolio := services.NewPortfolioService(ledger, quotes)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.New(router.Deps{
			Ledger:    ledger,
			Portfolio: portfolio,
			Quotes:    quotes,
			JWTSecret: []byte(cfg.JWTSecret),
			JWTIssuer: cfg.JWTIssuer,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting stock ledger server on port %s", cfg.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
