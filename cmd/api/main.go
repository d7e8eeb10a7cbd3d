package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/barcodegenpro/barcodegen-backend/api/routes"
	"github.com/barcodegenpro/barcodegen-backend/internal/catalog"
	"github.com/barcodegenpro/barcodegen-backend/internal/generation"
	"github.com/barcodegenpro/barcodegen-backend/internal/orders"
	"github.com/barcodegenpro/barcodegen-backend/internal/pricing"
	"github.com/barcodegenpro/barcodegen-backend/pkg/config"
	"github.com/barcodegenpro/barcodegen-backend/pkg/db"
	"github.com/barcodegenpro/barcodegen-backend/pkg/logger"
	"github.com/barcodegenpro/barcodegen-backend/pkg/metrics"
	"github.com/barcodegenpro/barcodegen-backend/pkg/migrate"
	"github.com/barcodegenpro/barcodegen-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// The quote cache is optional; the pricing service recomputes on miss.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)

	catalogService := catalog.NewService(cfg.Catalog.Currency)
	evaluator := pricing.NewEvaluator(cfg.Pricing.HomeState, cfg.Pricing.TaxRate())

	pricingParams := pricing.ServiceParams{
		Catalog:   catalogService,
		Evaluator: evaluator,
		CacheTTL:  cfg.Redis.QuoteCacheTTL,
		Metrics:   orderMetrics,
		Logger:    logg,
	}
	if redisClient != nil {
		pricingParams.Cache = redisClient
	}
	pricingService, err := pricing.NewService(pricingParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:    orders.NewRepository(dbClient.DB()),
		Pricing: pricingService,
		Metrics: orderMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	generationService, err := generation.NewService(generation.ServiceParams{
		Orders:    ordersService,
		Catalog:   catalogService,
		Evaluator: evaluator,
		Sheet:     cfg.Generation.WorkbookSheet,
		Metrics:   orderMetrics,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create generation service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			catalogService,
			pricingService,
			ordersService,
			generationService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
