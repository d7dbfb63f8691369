package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smuvr/spraby/api/routes"
	"github.com/smuvr/spraby/internal/brands"
	"github.com/smuvr/spraby/internal/categories"
	"github.com/smuvr/spraby/internal/collections"
	"github.com/smuvr/spraby/internal/images"
	"github.com/smuvr/spraby/internal/options"
	"github.com/smuvr/spraby/internal/products"
	"github.com/smuvr/spraby/internal/variants"
	"github.com/smuvr/spraby/pkg/config"
	"github.com/smuvr/spraby/pkg/db"
	"github.com/smuvr/spraby/pkg/logger"
	"github.com/smuvr/spraby/pkg/metrics"
	"github.com/smuvr/spraby/pkg/migrate"
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	conn := dbClient.DB()

	optionService, err := options.NewService(options.NewRepository(conn), dbClient)
	requireService(logg, "options", err)

	collectionService, err := collections.NewService(collections.NewRepository(conn), dbClient)
	requireService(logg, "collections", err)

	categoryService, err := categories.NewService(categories.NewRepository(conn), dbClient)
	requireService(logg, "categories", err)

	brandService, err := brands.NewService(brands.NewRepository(conn), dbClient, logg)
	requireService(logg, "brands", err)

	productService, err := products.NewService(products.NewRepository(conn), dbClient)
	requireService(logg, "products", err)

	variantService, err := variants.NewService(variants.NewRepository(conn), dbClient)
	requireService(logg, "variants", err)

	imageService, err := images.NewService(images.NewRepository(conn), dbClient)
	requireService(logg, "images", err)

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
			httpMetrics,
			metricsHandler,
			optionService,
			collectionService,
			categoryService,
			brandService,
			productService,
			variantService,
			imageService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	ctx := logg.WithField(context.Background(), "service", name)
	logg.Error(ctx, "failed to build service", err)
	os.Exit(1)
}
