// Package responses holds the Gin-serialized response DTOs for the postal
// HTTP front-end, grounded on the teacher's app/responses/address_response.go
// shape (plain structs with json tags, an ErrorResponse/SuccessResponse
// envelope pair, a HealthCheckResponse).
package responses

import "github.com/address-parser/internal/model"

// LookupResponse answers GET /v1/postal/:code with up to 100 stored rows
// whose postal code starts with the path parameter (a row per normalized
// town/town_kana pair).
type LookupResponse struct {
	PostalCode string                `json:"postal_code"`
	Records    []model.PostalRecord  `json:"records"`
}

// SearchResponse answers GET /v1/postal/search (postal-code-prefix results
// from the repository, paginated via NextPageToken) and GET
// /v1/postal/towns (free-text town index results, with no next page token).
type SearchResponse struct {
	Records       []model.PostalRecord `json:"records"`
	NextPageToken string               `json:"next_page_token,omitempty"`
}

// Suggestion is a single fuzzy-match "did you mean" candidate.
type Suggestion struct {
	Record model.PostalRecord `json:"record"`
	Score  float64            `json:"score"`
}

// SuggestResponse answers GET /v1/postal/suggest.
type SuggestResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// IngestStatsResponse answers GET /v1/admin/ingest/stats, surfacing the
// counters the §9 pairing-mismatch Open Question resolution demands.
type IngestStatsResponse struct {
	LastRunAt          string `json:"last_run_at,omitempty"`
	RecordsParsed      int    `json:"records_parsed"`
	RecordsNormalized  int    `json:"records_normalized"`
	PairingMismatches  int    `json:"pairing_mismatches"`
	SampledOverSplits  int    `json:"sampled_over_splits"`
	TotalRecords       int64  `json:"total_records"`
	CacheHitRate       float64 `json:"cache_hit_rate"`
}

// ErrorResponse is the uniform error envelope every handler returns on
// failure.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// SuccessResponse is the uniform envelope for handlers with no dedicated
// response shape (cache invalidation, manual ingest trigger).
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// HealthCheckResponse answers /health, /ready, /live.
type HealthCheckResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Services map[string]string `json:"services"`
}
