package repository

import (
	"context"
	"testing"

	"github.com/address-parser/internal/model"
)

func TestMemoryRepository_SearchPagination(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	records := []model.PostalRecord{
		{PostalCode: "1000001", Town: "千代田"},
		{PostalCode: "1000002", Town: "丸の内"},
		{PostalCode: "1000003", Town: "大手町"},
		{PostalCode: "2000001", Town: "別の区"},
	}
	if err := repo.Replace(ctx, records); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 4 {
		t.Fatalf("Count = %d, want 4", count)
	}

	page1, err := repo.Search(ctx, SearchRequest{PostalCodePrefix: "100", PageSize: 2})
	if err != nil {
		t.Fatalf("Search page 1 failed: %v", err)
	}
	if len(page1.Records) != 2 {
		t.Fatalf("page1 records = %d, want 2", len(page1.Records))
	}
	if page1.NextPageToken == "" {
		t.Fatalf("expected a next page token")
	}

	page2, err := repo.Search(ctx, SearchRequest{PostalCodePrefix: "100", PageSize: 2, PageToken: page1.NextPageToken})
	if err != nil {
		t.Fatalf("Search page 2 failed: %v", err)
	}
	if len(page2.Records) != 1 {
		t.Fatalf("page2 records = %d, want 1", len(page2.Records))
	}
	if page2.NextPageToken != "" {
		t.Fatalf("expected no further pages, got token %q", page2.NextPageToken)
	}
}

func TestMemoryRepository_SearchInvalidPageToken(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_ = repo.Replace(ctx, []model.PostalRecord{{PostalCode: "1000001"}})

	_, err := repo.Search(ctx, SearchRequest{PostalCodePrefix: "100", PageToken: "not-a-number"})
	if err != ErrInvalidPageToken {
		t.Fatalf("Search with bad page token = %v, want ErrInvalidPageToken", err)
	}
}
