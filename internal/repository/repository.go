// Package repository implements the storage-agnostic contract SPEC_FULL.md
// §6 requires of the core: Replace, Search, Count over PostalRecord rows.
package repository

import (
	"context"
	"errors"

	"github.com/address-parser/internal/model"
)

// DefaultSearchPageSize is used whenever a caller passes pageSize <= 0.
// Grounded on the original implementation's DEFAULT_SEARCH_PAGE_SIZE.
const DefaultSearchPageSize = 10

// ErrInvalidPageToken is returned by Search when the caller-supplied
// page token cannot be decoded by the repository implementation.
var ErrInvalidPageToken = errors.New("repository: invalid page token")

// SearchRequest describes a single paginated postal-code-prefix search.
type SearchRequest struct {
	PostalCodePrefix string
	PageSize         int
	PageToken        string
}

// SearchResponse is the paginated result of a Search call. NextPageToken is
// empty when there are no further pages.
type SearchResponse struct {
	Records       []model.PostalRecord
	NextPageToken string
}

// Repository is the storage contract the normalization core is independent
// of. Every implementation (Mongo-backed, in-memory) must satisfy it.
type Repository interface {
	// Replace swaps the entire dataset for records. Used by the ingestion
	// usecase after a fresh download + normalize pass. MemoryRepository
	// swaps it atomically; MongoRepository drops the collection and then
	// inserts in batches, so a concurrent Search can see an empty or
	// partial dataset while it runs.
	Replace(ctx context.Context, records []model.PostalRecord) error

	// Search returns records whose postal code has the given prefix, one
	// page at a time.
	Search(ctx context.Context, req SearchRequest) (SearchResponse, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)
}
