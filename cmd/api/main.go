// Command api runs the restaurant order HTTP service.
//
// @title                       Restaurant Orders API
// @version                     1.0
// @description                 Customer registration, menu browsing and order lifecycle management.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sabor/restaurant-orders/internal/api"
	"github.com/sabor/restaurant-orders/internal/api/handler"
	"github.com/sabor/restaurant-orders/internal/core/service"
	"github.com/sabor/restaurant-orders/internal/infrastructure/db/mongo"
	"github.com/sabor/restaurant-orders/internal/infrastructure/db/redis"
	"github.com/sabor/restaurant-orders/internal/infrastructure/queue"
	"github.com/sabor/restaurant-orders/internal/pkg/config"
	"github.com/sabor/restaurant-orders/pkg/logger"
)

const (
	serviceName     = "restaurant-orders"
	startupTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		// The logger is not configured yet.
		fmt.Fprintf(os.Stderr, "refusing to start: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("service stopped with error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(startupCtx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(ctx)
	}()
	if err := mongo.EnsureIndexes(startupCtx, db); err != nil {
		return err
	}

	rdb, err := redis.Connect(startupCtx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	userRepo := mongo.NewUserRepository(db)
	productRepo := mongo.NewProductRepository(db)
	orderRepo := mongo.NewOrderRepository(db)
	eventRepo := mongo.NewEventRepository(db)
	productCache := redis.NewProductCache(rdb, cfg.Redis.CacheTTL)

	if err := productRepo.Seed(startupCtx, mongo.DefaultMenu); err != nil {
		return err
	}
	if err := productCache.Invalidate(startupCtx); err != nil {
		log.Warn().Err(err).Msg("could not invalidate catalog cache after seeding")
	}

	// --- Services ---
	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	authService := service.NewAuthService(userRepo, tokens, cfg.BcryptCost, logger.Component("auth"))
	catalogService := service.NewCatalogService(productRepo, productCache, logger.Component("catalog"))
	eventService := service.NewStatusEventService(eventRepo, logger.Component("status_events"))

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Events.Workers, eventService, logger.Component("dispatcher"))
	dispatcher.Start(dispatcherCtx)
	defer func() {
		stopDispatcher()
		dispatcher.Wait()
	}()

	orderService := service.NewOrderService(
		orderRepo, catalogService, userRepo, eventService,
		logger.Component("orders"),
		service.WithEventPublisher(dispatcher),
	)

	if cfg.Admin.Enabled() {
		if _, err := authService.EnsureAdmin(startupCtx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Log:     log,
		Auth:    authService,
		Tokens:  tokens,
		Users:   userRepo,
		Catalog: catalogService,
		Orders:  orderService,
		Checks: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("api listening")
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var serveErr error
	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("server error: %w", err)
		}
	case <-stopCtx.Done():
		log.Info().Msg("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
	return serveErr
}
