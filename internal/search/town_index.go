// Package search provides a supplemental full-text index over normalized
// town names, on top of the Repository's postal-code-prefix contract.
package search

import (
	"context"
	"fmt"

	"github.com/address-parser/internal/model"
	ms "github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// IndexName is the Meilisearch index this package manages.
const IndexName = "postal_towns"

// TownIndex wraps a Meilisearch client for free-text town lookup, grounded
// on internal/search/meili_client.go's ClientWrapper and
// internal/search/gazetteer_searcher.go's GazetteerSearcher construction
// style, adapted from admin-unit hierarchy search to flat postal-record
// search (this dataset has no parent_id hierarchy to filter on).
type TownIndex struct {
	client ms.ServiceManager
	logger *zap.Logger
}

// NewTownIndex connects to Meilisearch and verifies the connection with a
// health check, the way NewGazetteerSearcher does in the teacher repo.
func NewTownIndex(host, apiKey string, logger *zap.Logger) (*TownIndex, error) {
	client := ms.New(host, ms.WithAPIKey(apiKey))

	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("failed to connect to meilisearch: %w", err)
	}

	return &TownIndex{client: client, logger: logger}, nil
}

// ReplaceAll clears and repopulates the town index. Called by the
// ingestion usecase (SPEC_FULL.md §11.5) right after Repository.Replace.
func (t *TownIndex) ReplaceAll(ctx context.Context, records []model.PostalRecord) error {
	idx := t.client.Index(IndexName)

	if _, err := idx.DeleteAllDocuments(); err != nil {
		return fmt.Errorf("failed to clear town index: %w", err)
	}

	docs := make([]map[string]interface{}, 0, len(records))
	for i, rec := range records {
		docs = append(docs, map[string]interface{}{
			"id":          i,
			"postal_code": rec.PostalCode,
			"prefecture":  rec.Prefecture,
			"city":        rec.City,
			"town":        rec.Town,
			"town_kana":   rec.TownKana,
		})
	}

	if _, err := idx.AddDocuments(docs); err != nil {
		return fmt.Errorf("failed to index town documents: %w", err)
	}

	t.logger.Info("replaced town search index", zap.Int("count", len(docs)))
	return nil
}

// SearchTownsByPrefecture performs a free-text town search scoped to a
// prefecture, the feature named in SPEC_FULL.md §11.3 that the bare
// postal-code-prefix Repository contract cannot serve.
func (t *TownIndex) SearchTownsByPrefecture(query, prefecture string) ([]model.PostalRecord, error) {
	idx := t.client.Index(IndexName)

	req := &ms.SearchRequest{Limit: 50}
	if prefecture != "" {
		req.Filter = fmt.Sprintf("prefecture = %q", prefecture)
	}

	result, err := idx.Search(query, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search town index: %w", err)
	}

	records := make([]model.PostalRecord, 0, len(result.Hits))
	for _, hit := range result.Hits {
		doc, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		records = append(records, model.PostalRecord{
			PostalCode: stringField(doc, "postal_code"),
			Prefecture: stringField(doc, "prefecture"),
			City:       stringField(doc, "city"),
			Town:       stringField(doc, "town"),
			TownKana:   stringField(doc, "town_kana"),
		})
	}
	return records, nil
}

func stringField(doc map[string]interface{}, key string) string {
	v, _ := doc[key].(string)
	return v
}
