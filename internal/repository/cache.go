package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/address-parser/internal/model"
)

// CacheStats mirrors the hit/miss accounting the teacher's cache services
// expose via ICacheService.GetStats.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	L1Hits     int64   `json:"l1_hits"`
	L1Miss     int64   `json:"l1_miss"`
	RedisHits  int64   `json:"redis_hits"`
	RedisMiss  int64   `json:"redis_miss"`
}

// CachedRepository wraps a Repository with a two-level cache in front of
// Search: an in-process LRU (L1) backed by Redis (L2). Grounded on
// app/services/hybrid_cache_service.go and app/services/redis_cache_service.go,
// adapted from caching *models.AddressResult by a free-text key to caching
// SearchResponse by a postal-code-prefix + page-token key.
type CachedRepository struct {
	inner  Repository
	l1     *lru.Cache[string, SearchResponse]
	redis  *redis.Client
	logger *zap.Logger
	ttl    time.Duration
	prefix string

	totalHits, totalMiss     int64
	l1Hits, l1Miss           int64
	redisHits, redisMiss     int64
}

// NewCachedRepository wraps inner with an l1Size-entry LRU and a Redis
// client. redisClient may be nil, in which case only the L1 cache is used
// (matching the teacher's MVP fallback of running without Meilisearch/Redis
// wired up yet — see cmd/api/main.go's comments in the teacher repo).
func NewCachedRepository(inner Repository, l1Size int, redisClient *redis.Client, logger *zap.Logger) (*CachedRepository, error) {
	l1, err := lru.New[string, SearchResponse](l1Size)
	if err != nil {
		return nil, fmt.Errorf("failed to create L1 cache: %w", err)
	}
	return &CachedRepository{
		inner:  inner,
		l1:     l1,
		redis:  redisClient,
		logger: logger,
		ttl:    1 * time.Hour,
		prefix: "postal:search:",
	}, nil
}

// Replace invalidates both cache levels (the dataset is changing wholesale)
// and delegates to the wrapped repository.
func (c *CachedRepository) Replace(ctx context.Context, records []model.PostalRecord) error {
	c.Purge(ctx)
	return c.inner.Replace(ctx, records)
}

// Purge drops both cache levels without touching the wrapped repository's
// dataset, the operation the admin "invalidate cache" route needs (as
// opposed to Replace, which also swaps the dataset).
func (c *CachedRepository) Purge(ctx context.Context) {
	c.l1.Purge()
	if c.redis != nil {
		if err := c.redis.FlushDB(ctx).Err(); err != nil {
			c.logger.Warn("failed to flush redis search cache", zap.Error(err))
		}
	}
}

// Search tries L1 then Redis before falling through to the wrapped
// repository, populating both cache levels on a miss. Mirrors the
// Get-then-fallback shape of MongoCacheService.Get.
func (c *CachedRepository) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	key := c.cacheKey(req)

	if resp, found := c.l1.Get(key); found {
		c.l1Hits++
		c.totalHits++
		return resp, nil
	}
	c.l1Miss++

	if c.redis != nil {
		if raw, err := c.redis.Get(ctx, c.prefix+key).Result(); err == nil {
			var resp SearchResponse
			if jsonErr := json.Unmarshal([]byte(raw), &resp); jsonErr == nil {
				c.redisHits++
				c.totalHits++
				c.l1.Add(key, resp)
				return resp, nil
			}
		} else if err != redis.Nil {
			c.logger.Warn("redis search cache get failed", zap.Error(err))
		}
		c.redisMiss++
	}
	c.totalMiss++

	resp, err := c.inner.Search(ctx, req)
	if err != nil {
		return SearchResponse{}, err
	}

	c.l1.Add(key, resp)
	if c.redis != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := c.redis.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
				c.logger.Warn("redis search cache set failed", zap.Error(err))
			}
		}
	}
	return resp, nil
}

// Count is read straight through; it is cheap and changes only on Replace.
func (c *CachedRepository) Count(ctx context.Context) (int64, error) {
	return c.inner.Count(ctx)
}

// GetStats returns the current hit/miss accounting for both cache levels.
func (c *CachedRepository) GetStats() CacheStats {
	total := c.totalHits + c.totalMiss
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(c.totalHits) / float64(total)
	}
	return CacheStats{
		HitRate:   hitRate,
		TotalHits: c.totalHits,
		TotalMiss: c.totalMiss,
		L1Hits:    c.l1Hits,
		L1Miss:    c.l1Miss,
		RedisHits: c.redisHits,
		RedisMiss: c.redisMiss,
	}
}

func (c *CachedRepository) cacheKey(req SearchRequest) string {
	return fmt.Sprintf("%s|%d|%s", req.PostalCodePrefix, req.PageSize, req.PageToken)
}
