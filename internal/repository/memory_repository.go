package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/address-parser/internal/model"
)

// MemoryRepository is an in-process, slice-backed Repository implementation.
// Grounded on original_source/jp-postal-code/src/infra/ephemeral.rs, which
// the original implementation's own test suite relies on instead of a live
// database. Used here for the same purpose: unit-testing the ingestion
// usecase without a MongoDB dependency.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []model.PostalRecord
}

// NewMemoryRepository returns an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Replace(_ context.Context, records []model.PostalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append([]model.PostalRecord(nil), records...)
	return nil
}

func (r *MemoryRepository) Search(_ context.Context, req SearchRequest) (SearchResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = DefaultSearchPageSize
	}

	var matched []model.PostalRecord
	for _, rec := range r.records {
		if strings.HasPrefix(rec.PostalCode, req.PostalCodePrefix) {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PostalCode < matched[j].PostalCode
	})

	start := 0
	if req.PageToken != "" {
		offset, err := strconv.Atoi(req.PageToken)
		if err != nil || offset < 0 {
			return SearchResponse{}, ErrInvalidPageToken
		}
		start = offset
	}
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	resp := SearchResponse{Records: matched[start:end]}
	if end < len(matched) {
		resp.NextPageToken = strconv.Itoa(end)
	}
	return resp, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.records)), nil
}
