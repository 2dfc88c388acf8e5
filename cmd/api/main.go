package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	cartstore "storefront-cart/internal/cart"
	"storefront-cart/internal/config"
	"storefront-cart/internal/db"
	"storefront-cart/internal/httpserver"
	"storefront-cart/internal/repository/catalog"
	"storefront-cart/internal/seed"
	cartsvc "storefront-cart/internal/service/cart"
	"storefront-cart/internal/storage"
)

func main() {
	cfg := config.FromEnv()
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "storefront-cart-api").Logger()

	ctx := context.Background()

	var pool *pgxpool.Pool
	if cfg.DBConnString != "" {
		var err error
		pool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect to db")
		}
		defer pool.Close()
	}

	backend, err := buildBackend(ctx, cfg, pool)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.CartBackend).Msg("init cart backend")
	}
	logger.Info().Str("backend", cfg.CartBackend).Msg("cart backend ready")

	var catalogRepo catalog.Repository
	if pool != nil {
		catalogRepo = catalog.NewPostgres(pool, logger)
	} else {
		catalogRepo = catalog.NewMemory(seed.Products()...)
		logger.Info().Msg("no DB_DSN set, serving in-memory demo catalog")
	}

	manager := cartstore.NewManager(backend, logger)
	cartService := cartsvc.New(manager, catalogRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, pool, httpserver.Deps{
		CartSvc: cartService,
		Catalog: catalogRepo,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("server stopped")
	}
}

func buildBackend(ctx context.Context, cfg config.Config, pool *pgxpool.Pool) (storage.Backend, error) {
	switch cfg.CartBackend {
	case config.BackendMemory:
		return storage.NewMemory(), nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		return storage.NewRedis(client, cfg.CartNamespace), nil
	case config.BackendPostgres:
		if pool == nil {
			return nil, errors.New("CART_BACKEND=postgres requires DB_DSN")
		}
		return storage.NewPostgres(pool), nil
	default:
		return nil, errors.New("unknown CART_BACKEND " + cfg.CartBackend)
	}
}
