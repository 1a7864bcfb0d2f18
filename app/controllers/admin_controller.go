package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/address-parser/app/requests"
	"github.com/address-parser/app/responses"
	"github.com/address-parser/internal/ingest"
	"github.com/address-parser/internal/repository"
)

// AdminController serves the administrative surface over ingestion and
// cache state, grounded on the teacher's AdminController shape (a struct
// holding its service dependency plus a *zap.Logger) but over the ingestion
// usecase instead of gazetteer seeding.
type AdminController struct {
	usecase *ingest.Usecase
	cached  *repository.CachedRepository // nil if caching is not configured
	logger  *zap.Logger

	lastStats ingest.Stats
}

// NewAdminController builds an AdminController. cached may be nil.
func NewAdminController(usecase *ingest.Usecase, cached *repository.CachedRepository, logger *zap.Logger) *AdminController {
	return &AdminController{usecase: usecase, cached: cached, logger: logger}
}

// TriggerIngest serves POST /v1/admin/ingest: runs one download+normalize+
// replace pass synchronously and returns its Stats. Grounded on the
// original implementation's update_postal_code_database being invoked as a
// standalone admin operation (original_source/jp-postal-code/src/usecase.rs).
func (ac *AdminController) TriggerIngest(c *gin.Context) {
	var req requests.IngestTriggerRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	stats, err := ac.usecase.Run(c.Request.Context())
	if err != nil {
		ac.logger.Error("manual ingest trigger failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "INGEST_ERROR",
			Message: err.Error(),
		})
		return
	}
	ac.lastStats = stats

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "ingestion run complete",
		Data:    stats,
	})
}

// IngestStats serves GET /v1/admin/ingest/stats, surfacing the counters the
// §9 pairing-mismatch Open Question resolution requires (SPEC_FULL.md §9).
func (ac *AdminController) IngestStats(c *gin.Context) {
	var cacheHitRate float64
	if ac.cached != nil {
		cacheHitRate = ac.cached.GetStats().HitRate
	}

	c.JSON(http.StatusOK, responses.IngestStatsResponse{
		RecordsParsed:     ac.lastStats.RecordsParsed,
		RecordsNormalized: ac.lastStats.RecordsNormalized,
		PairingMismatches: ac.lastStats.PairingMismatches,
		SampledOverSplits: ac.lastStats.SampledOverSplits,
		CacheHitRate:      cacheHitRate,
	})
}

// InvalidateCache serves POST /v1/admin/cache/invalidate: forces the next
// Search to go to the repository by purging both cache levels without
// touching the stored dataset. Grounded on the teacher's
// AdminController.InvalidateCache, adapted from a gazetteer-version-scoped
// purge (there is no versioning concept here) to an unconditional purge.
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	if ac.cached == nil {
		c.JSON(http.StatusOK, responses.SuccessResponse{Success: true, Message: "no cache configured"})
		return
	}

	ac.cached.Purge(c.Request.Context())
	c.JSON(http.StatusOK, responses.SuccessResponse{Success: true, Message: "cache invalidated"})
}
