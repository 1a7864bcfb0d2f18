// Package controllers holds the Gin handler structs for the postal HTTP
// front-end, grounded on the teacher's app/controllers/address_controller.go
// shape: a struct holding its service dependencies plus a *zap.Logger,
// constructed once and wired into routes/api.go.
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/address-parser/app/requests"
	"github.com/address-parser/app/responses"
	"github.com/address-parser/helpers/utils"
	"github.com/address-parser/internal/repository"
	"github.com/address-parser/internal/search"
)

// PostalController serves postal-code lookup and town search, grounded on
// the teacher's AddressController but over the deterministic
// normalize-and-lookup domain instead of fuzzy address parsing: no job
// queue, no cache-hit short-circuit on the handler itself (the cached
// repository already does that at the Repository.Search boundary).
type PostalController struct {
	repo    repository.Repository
	towns   *search.TownIndex // nil if Meilisearch is not configured
	fuzzy   *search.FuzzyMatcher
	logger  *zap.Logger
}

// NewPostalController builds a PostalController. towns may be nil.
func NewPostalController(repo repository.Repository, towns *search.TownIndex, fuzzy *search.FuzzyMatcher, logger *zap.Logger) *PostalController {
	return &PostalController{repo: repo, towns: towns, fuzzy: fuzzy, logger: logger}
}

// Lookup serves GET /v1/postal/:code: a prefix search on the path parameter,
// returning up to 100 stored rows whose postal code starts with it (for a
// full 7-digit code, the rows of that code: a row per normalized
// town/town_kana pair produced by the same source record).
func (pc *PostalController) Lookup(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		respondError(c, http.StatusBadRequest, "MISSING_CODE", "postal code is required")
		return
	}

	resp, err := pc.repo.Search(c.Request.Context(), repository.SearchRequest{
		PostalCodePrefix: code,
		PageSize:         100,
	})
	if err != nil {
		pc.logger.Error("lookup failed", zap.String("code", code), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "LOOKUP_ERROR", err.Error())
		return
	}

	c.JSON(http.StatusOK, responses.LookupResponse{PostalCode: code, Records: resp.Records})
}

// Search serves GET /v1/postal/search: paginated postal-code-prefix search
// against the repository.
func (pc *PostalController) Search(c *gin.Context) {
	prefix := c.Query("prefix")
	pageToken := c.Query("page_token")

	resp, err := pc.repo.Search(c.Request.Context(), repository.SearchRequest{
		PostalCodePrefix: prefix,
		PageToken:        pageToken,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidPageToken) {
			respondError(c, http.StatusBadRequest, "INVALID_PAGE_TOKEN", err.Error())
			return
		}
		pc.logger.Error("search failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "SEARCH_ERROR", err.Error())
		return
	}

	c.JSON(http.StatusOK, responses.SearchResponse{Records: resp.Records, NextPageToken: resp.NextPageToken})
}

// SearchByTown serves GET /v1/postal/towns: free-text town search, the
// feature the bare postal-code-prefix Repository contract cannot serve
// (SPEC_FULL.md §11.3). Falls back to 503 if Meilisearch is not configured.
func (pc *PostalController) SearchByTown(c *gin.Context) {
	var req requests.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if pc.towns == nil {
		respondError(c, http.StatusServiceUnavailable, "SEARCH_UNAVAILABLE", "town search index is not configured")
		return
	}

	records, err := pc.towns.SearchTownsByPrefecture(req.Query, req.Prefecture)
	if err != nil {
		pc.logger.Error("town search failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "SEARCH_ERROR", err.Error())
		return
	}

	c.JSON(http.StatusOK, responses.SearchResponse{Records: records})
}

// Suggest serves GET /v1/postal/suggest: a fuzzy "did you mean" fallback
// over the normalized town corpus.
func (pc *PostalController) Suggest(c *gin.Context) {
	var req requests.SuggestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.TopK <= 0 {
		req.TopK = 5
	}
	if pc.fuzzy == nil {
		respondError(c, http.StatusServiceUnavailable, "SUGGEST_UNAVAILABLE", "fuzzy matcher is not yet built")
		return
	}

	matches := pc.fuzzy.Suggest(req.Query, req.TopK)
	out := make([]responses.Suggestion, 0, len(matches))
	for _, m := range matches {
		out = append(out, responses.Suggestion{Record: m.Record, Score: m.Score})
	}
	c.JSON(http.StatusOK, responses.SuggestResponse{Suggestions: out})
}

// HealthCheck serves /health, /ready, /live.
func (pc *PostalController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:  "healthy",
		Version: "1.0.0",
		Services: map[string]string{
			"repository": "healthy",
		},
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, responses.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: requestID(c),
	})
}

// requestID reads the request-scoped ID set by the RequestID middleware
// (routes/api.go), falling back to a freshly generated one the way the
// teacher's controllers generate ad hoc IDs via helpers/utils.GenerateUUID.
func requestID(c *gin.Context) string {
	if id, ok := c.Get("request_id"); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return utils.GenerateShortID()
}
