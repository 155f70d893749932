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

	"stockdash/internal/config"
	"stockdash/internal/handler"
	"stockdash/internal/infra"
	"stockdash/internal/repository"
	"stockdash/internal/router"
	"stockdash/internal/service"
	"stockdash/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title        stockdash API
// @version      1.0
// @description  Inventory and sales dashboard backend with an atomic stock ledger.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	// Redis is optional: without it the dashboard cache and the job queue
	// degrade to no-ops and the API keeps serving.
	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, cache and workers disabled")
		rdb = nil
	}

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb, log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Repositories
	productRepo := repository.NewProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	userRepo := repository.NewUserRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	// Services
	dashboardSvc := service.NewDashboardService(summaryRepo, productRepo, purchaseRepo, saleRepo, rdb, cfg, log.Logger)
	ledgerSvc := service.NewLedgerService(productRepo, purchaseRepo, saleRepo, customerRepo, movementRepo, cfg, dashboardSvc, dispatcher, log.Logger)
	productSvc := service.NewProductService(productRepo, purchaseRepo, saleRepo, movementRepo, dashboardSvc, log.Logger)
	customerSvc := service.NewCustomerService(customerRepo, saleRepo, dashboardSvc, log.Logger)
	reportSvc := service.NewReportService(productRepo, dispatcher, cfg, log.Logger)
	authSvc := service.NewAuthService(userRepo, cfg, log.Logger)

	// Background workers
	pool := worker.NewPool(rdb, cfg.WorkerPoolSize, map[string]worker.Handler{
		worker.JobEmailSend:     worker.NewEmailHandler(mailer, log.Logger),
		worker.JobLowStockAlert: worker.NewLowStockHandler(mailer, rdb, cfg, log.Logger),
	}, log.Logger)
	pool.Start(ctx)
	worker.StartLowStockCron(ctx, 6*time.Hour, dashboardSvc, dispatcher, cfg, log.Logger)

	engine := router.New(cfg, router.Handlers{
		Health:    handler.NewHealthHandler(db, rdb),
		Auth:      handler.NewAuthHandler(authSvc),
		Users:     handler.NewUserHandler(authSvc),
		Products:  handler.NewProductHandler(productSvc, ledgerSvc),
		Purchases: handler.NewPurchaseHandler(ledgerSvc),
		Sales:     handler.NewSaleHandler(ledgerSvc),
		Customers: handler.NewCustomerHandler(customerSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Inventory: handler.NewInventoryHandler(ledgerSvc),
		Reports:   handler.NewReportHandler(reportSvc),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
