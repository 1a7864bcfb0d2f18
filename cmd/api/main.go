package main

import (
	"bytes"
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/address-parser/app/controllers"
	"github.com/address-parser/internal/config"
	"github.com/address-parser/internal/ingest"
	"github.com/address-parser/internal/logging"
	"github.com/address-parser/internal/repository"
	"github.com/address-parser/internal/search"
	"github.com/address-parser/routes"
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

	logger.Info("starting postal code service")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(config.C.Mongo.URI))
	cancel()
	if err != nil {
		logger.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("failed to disconnect from mongo", zap.Error(err))
		}
	}()

	baseRepo, err := repository.NewMongoRepository(mongoClient.Database(config.C.Mongo.Database), logger)
	if err != nil {
		logger.Fatal("failed to build mongo repository", zap.Error(err))
	}

	var redisClient *redis.Client
	if config.C.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: config.C.Redis.Addr})
	}
	cached, err := repository.NewCachedRepository(baseRepo, config.C.L1CacheSize, redisClient, logger)
	if err != nil {
		logger.Fatal("failed to build cached repository", zap.Error(err))
	}

	var reindexer ingest.Reindexer
	var townIndex *search.TownIndex
	if config.C.Meilisearch.Host != "" {
		idx, err := search.NewTownIndex(config.C.Meilisearch.Host, config.C.Meilisearch.APIKey, logger)
		if err != nil {
			logger.Warn("meilisearch unavailable, supplemental town search disabled", zap.Error(err))
		} else {
			townIndex = idx
			reindexer = idx
		}
	}

	usecase := ingest.New(downloadSource(config.C.Ingest.UtfKenAllURL), cached, reindexer, logger)

	fuzzy := buildFuzzyMatcher(context.Background(), cached, logger)

	postalController := controllers.NewPostalController(cached, townIndex, fuzzy, logger)
	adminController := controllers.NewAdminController(usecase, cached, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	routes.SetupAllRoutes(router, postalController, adminController)

	srv := &http.Server{
		Addr:    listenAddr(),
		Handler: router,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("server exited")
}

// buildFuzzyMatcher snapshots up to the first 100,000 records of the
// repository's current dataset (in its Search order) into an in-process
// FuzzyMatcher, once at startup. Best-effort: a failed snapshot disables
// /v1/postal/suggest rather than blocking startup.
func buildFuzzyMatcher(ctx context.Context, repo repository.Repository, logger *zap.Logger) *search.FuzzyMatcher {
	resp, err := repo.Search(ctx, repository.SearchRequest{PageSize: 100000})
	if err != nil {
		logger.Warn("failed to snapshot dataset for fuzzy matcher, /v1/postal/suggest disabled", zap.Error(err))
		return nil
	}
	return search.NewFuzzyMatcher(resp.Records)
}

func downloadSource(url string) ingest.Source {
	return func(ctx context.Context) ([]byte, error) {
		var buf bytes.Buffer
		if err := ingest.Download(ctx, url, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

func listenAddr() string {
	if config.C.ListenAddr != "" {
		return config.C.ListenAddr
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}
