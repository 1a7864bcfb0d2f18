// Command worker re-runs the ingestion usecase on a fixed interval, keeping
// the repository's dataset in sync with Japan Post's published utf_ken_all
// file. Grounded on the teacher's cmd/worker/main.go signal-handling shape,
// adapted from an unimplemented address-parsing background worker to a
// recurring ingest.Usecase.Run loop.
package main

import (
	"bytes"
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

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
	interval := flag.Duration("interval", 24*time.Hour, "re-ingestion interval")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		panic(err)
	}

	logger, err := logging.New(config.C.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting postal ingest worker", zap.Duration("interval", *interval))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(config.C.Mongo.URI))
	if err != nil {
		logger.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())

	repo, err := repository.NewMongoRepository(mongoClient.Database(config.C.Mongo.Database), logger)
	if err != nil {
		logger.Fatal("failed to build mongo repository", zap.Error(err))
	}

	var reindexer ingest.Reindexer
	if config.C.Meilisearch.Host != "" {
		if idx, err := search.NewTownIndex(config.C.Meilisearch.Host, config.C.Meilisearch.APIKey, logger); err == nil {
			reindexer = idx
		} else {
			logger.Warn("meilisearch unavailable, skipping supplemental index rebuild", zap.Error(err))
		}
	}

	uc := ingest.New(downloadSource(config.C.Ingest.UtfKenAllURL), repo, reindexer, logger)

	runOnce(ctx, uc, logger)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down postal ingest worker")
			return
		case <-ticker.C:
			runOnce(ctx, uc, logger)
		}
	}
}

func runOnce(parent context.Context, uc *ingest.Usecase, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(parent, config.IngestTimeout())
	defer cancel()

	stats, err := uc.Run(ctx)
	if err != nil {
		logger.Error("ingestion run failed", zap.Error(err))
		return
	}
	logger.Info("ingestion run complete",
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
