package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-ferreteria-api/internal/gateway"
	"go-ferreteria-api/internal/handler"
	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/repository"
	"go-ferreteria-api/internal/service"
	"go-ferreteria-api/internal/ws"
	"go-ferreteria-api/pkg/config"
	"go-ferreteria-api/pkg/database"
	"go-ferreteria-api/pkg/logger"
	"go-ferreteria-api/pkg/metrics"
	pkgredis "go-ferreteria-api/pkg/redis"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const serviceName = "ferreteria-api"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ferreteria-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Config & logger
	cfg, envFileFound, err := config.Load()
	if err != nil {
		return err
	}
	logg := logger.New(logger.Options{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
	})
	if !envFileFound {
		logg.Warn(ctx, ".env file not found, using process environment")
	}

	// 2. Database
	db, err := database.Connect(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logg.Error(ctx, "close database", err)
		}
	}()
	if err := model.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// 3. Realtime hub & metrics
	hub := ws.NewHub(logg)
	go hub.Run(ctx)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry, registry)

	// 4. Optional redis for Idempotency-Key
	var idempotencyStore pkgredis.IdempotencyStore
	if cfg.Redis.Enabled() {
		client, err := pkgredis.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		idempotencyStore = client
		logg.Info(ctx, "idempotency store connected")
	}

	// 5. Wiring
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	branchRepo := repository.NewBranchRepo(db)
	rateRepo := repository.NewRateRepo(db)

	currencyService := service.NewCurrencyService(rateRepo, rateSource(cfg.FX, logg), m, logg,
		service.WithEvents(hub))
	svc := handler.Services{
		Products:  service.NewProductService(productRepo, categoryRepo, hub),
		Customers: service.NewCustomerService(customerRepo),
		Branches:  service.NewBranchService(branchRepo),
		Orders:    service.NewOrderService(db, repository.NewOrderRepo(db), branchRepo, productRepo, hub, m, logg),
		Payments: service.NewPaymentService(repository.NewPaymentRepo(db), customerRepo,
			gateway.NewWebpaySimulator(cfg.Payments.WebpayBaseURL), hub, m),
		Currency: currencyService,
		Catalog:  service.NewCatalogService(productRepo, categoryRepo, currencyService, cfg.App.NativeCurrency, logg),
	}

	if cfg.App.SeedSampleData {
		seed(ctx, db, rateRepo, currencyService, logg)
	}

	var operatorSecret []byte
	if cfg.Auth.OperatorAuthEnabled() {
		operatorSecret = []byte(cfg.Auth.OperatorJWTSecret)
	} else {
		logg.Warn(ctx, "operator secret not set, rate refresh is open")
	}

	// 6. HTTP
	app, err := handler.NewApp(svc, handler.Options{
		Version:          cfg.App.Version,
		Logger:           logg,
		Metrics:          m,
		Hub:              hub,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.Redis.IdempotencyTTL,
		OperatorSecret:   operatorSecret,
		PaymentRateLimit: cfg.Payments.RateLimit,
	})
	if err != nil {
		return err
	}

	listenErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "http server listening")
		listenErr <- app.Listen(":" + cfg.App.Port)
	}()

	// 7. Graceful shutdown
	select {
	case err := <-listenErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logg.Info(context.Background(), "server exited")
	return nil
}

func rateSource(cfg config.FXConfig, logg *logger.Logger) gateway.RateSource {
	if cfg.Provider == config.FXProviderMindicador {
		return gateway.NewMindicadorSource(cfg.MindicadorURL, cfg.Timeout, gateway.WithLogger(logg))
	}
	return gateway.NewStaticSource()
}
