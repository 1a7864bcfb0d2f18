package search

import (
	"testing"

	"github.com/address-parser/internal/model"
)

func TestFuzzyMatcher_Suggest(t *testing.T) {
	m := NewFuzzyMatcher([]model.PostalRecord{
		{PostalCode: "1000001", Town: "千代田"},
		{PostalCode: "1000002", Town: "丸の内"},
		{PostalCode: "1000003", Town: "大手町"},
	})

	got := m.Suggest("千代田", 2)
	if len(got) != 2 {
		t.Fatalf("Suggest returned %d results, want 2", len(got))
	}
	if got[0].Record.Town != "千代田" {
		t.Fatalf("top suggestion = %q, want exact match 千代田", got[0].Record.Town)
	}
	if got[0].Score < got[1].Score {
		t.Fatalf("suggestions not sorted descending by score: %v", got)
	}
}

func TestFuzzyMatcher_EmptyCorpus(t *testing.T) {
	m := NewFuzzyMatcher(nil)
	if got := m.Suggest("anything", 5); got != nil {
		t.Fatalf("Suggest over empty corpus = %v, want nil", got)
	}
}
