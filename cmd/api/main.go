package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jeanmnorhen/precoreal-backend/api/routes"
	"github.com/jeanmnorhen/precoreal-backend/internal/locations"
	"github.com/jeanmnorhen/precoreal-backend/internal/permissions"
	"github.com/jeanmnorhen/precoreal-backend/internal/roles"
	"github.com/jeanmnorhen/precoreal-backend/internal/stores"
	"github.com/jeanmnorhen/precoreal-backend/internal/users"
	"github.com/jeanmnorhen/precoreal-backend/pkg/config"
	"github.com/jeanmnorhen/precoreal-backend/pkg/db"
	"github.com/jeanmnorhen/precoreal-backend/pkg/logger"
	"github.com/jeanmnorhen/precoreal-backend/pkg/metrics"
	"github.com/jeanmnorhen/precoreal-backend/pkg/migrate"
	"github.com/jeanmnorhen/precoreal-backend/pkg/outbox"
	"github.com/jeanmnorhen/precoreal-backend/pkg/pubsub"
	"github.com/jeanmnorhen/precoreal-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub client", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	decisionMetrics := metrics.NewDecisionMetrics(registry)

	gormDB := dbClient.DB()
	outboxService := outbox.NewService(outbox.NewRepository(gormDB), logg)
	roleRepo := roles.NewRepository(gormDB)
	locationRepo := locations.NewRepository(gormDB)
	userRepo := users.NewRepository(gormDB)
	storeRepo := stores.NewRepository(gormDB)

	permissionService := permissions.NewService(roleRepo, locationRepo, cfg.Permissions, logg, decisionMetrics)
	roleService := roles.NewService(dbClient, roleRepo, outboxService, logg)
	userService := users.NewService(dbClient, userRepo, locationRepo, outboxService, logg)
	storeService := stores.NewService(dbClient, storeRepo, roleRepo, locationRepo, outboxService, logg)

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
		Handler: routes.NewRouter(routes.Dependencies{
			Config:     cfg,
			Logger:     logg,
			DB:         dbClient,
			Redis:      redisClient,
			PubSub:     pubsubClient,
			Registry:   registry,
			Permission: permissionService,
			Roles:      roleService,
			Users:      userService,
			Stores:     storeService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
