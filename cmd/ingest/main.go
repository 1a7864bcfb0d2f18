// Command ingest runs a single download+normalize+replace pass against the
// configured repository, grounded on original_source/jp-postal-code/src/
// usecase.rs's update_postal_code_database CLI entrypoint and adapted to
// this repository's cmd/ layout (mirrors cmd/worker for the recurring case).
package main

import (
	"bytes"
	"context"
	"flag"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/address-parser/internal/config"
	"github.com/address-parser/internal/ingest"
	"github.com/address-parser/internal/logging"
	"github.com/address-parser/internal/repository"
	"github.com/address-parser/internal/search"
)

func main() {
	configPath := flag.String("config", "config/postal.yaml", "path to YAML configuration")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		panic(err)
	}

	logger, err := logging.New(config.C.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), config.IngestTimeout())
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(config.C.Mongo.URI))
	if err != nil {
		logger.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	repo, err := repository.NewMongoRepository(mongoClient.Database(config.C.Mongo.Database), logger)
	if err != nil {
		logger.Fatal("failed to build mongo repository", zap.Error(err))
	}

	var reindexer ingest.Reindexer
	if config.C.Meilisearch.Host != "" {
		idx, err := search.NewTownIndex(config.C.Meilisearch.Host, config.C.Meilisearch.APIKey, logger)
		if err != nil {
			logger.Warn("meilisearch unavailable, skipping supplemental index rebuild", zap.Error(err))
		} else {
			reindexer = idx
		}
	}

	uc := ingest.New(downloadSource(config.C.Ingest.UtfKenAllURL), repo, reindexer, logger)
	stats, err := uc.Run(ctx)
	if err != nil {
		logger.Fatal("ingestion run failed", zap.Error(err))
	}

	logger.Info("ingestion complete",
		zap.Int("parsed", stats.RecordsParsed),
		zap.Int("normalized", stats.RecordsNormalized),
		zap.Int("pairing_mismatches", stats.PairingMismatches))
}

// downloadSource adapts ingest.Download to the ingest.Source shape.
func downloadSource(url string) ingest.Source {
	return func(ctx context.Context) ([]byte, error) {
		var buf bytes.Buffer
		if err := ingest.Download(ctx, url, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}
