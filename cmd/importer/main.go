package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"storefront-cart/internal/config"
	"storefront-cart/internal/db"
	"storefront-cart/internal/importer"
	"storefront-cart/internal/repository/catalog"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to supplier catalog CSV export")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "storefront-cart-importer").Logger()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	if cfg.DBConnString == "" {
		logger.Fatal().Msg("DB_DSN required")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal().Err(err).Str("file", filePath).Msg("open csv")
	}
	defer f.Close()

	repo := catalog.NewPostgres(pool, logger)
	imp := importer.NewCSVImporter(f, repo)

	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Int("imported", count).Msg("import failed")
	}
	logger.Info().Int("imported", count).Msg("import complete")
}
