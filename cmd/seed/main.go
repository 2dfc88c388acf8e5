package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"storefront-cart/internal/config"
	"storefront-cart/internal/db"
	"storefront-cart/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "storefront-cart-seed").Logger()

	if cfg.DBConnString == "" {
		logger.Fatal().Msg("DB_DSN required")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("seed apply")
	}

	logger.Info().Msg("seed applied")
}
