// Package search also provides a small in-process fuzzy matcher used as a
// "did you mean" fallback when an exact postal-code or Meilisearch lookup
// comes back empty. Grounded on the teacher's GazetteerSearcher construction
// style (internal/search/gazetteer_searcher.go, since adapted into
// town_index.go) but scoring candidates with the teacher's two
// string-distance dependencies instead of querying Meilisearch a second
// time: agnivade/levenshtein for edit distance and xrash/smetrics for
// Jaro-Winkler similarity, combined the way the teacher's ParserCfg.JWWeight
// / LevWeight pair blended the two scores.
package search

import (
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"

	"github.com/address-parser/internal/model"
)

// FuzzyMatcher suggests the closest known town names to a misspelled or
// partially-typed query. It holds the records it was built with and does
// not see later ingestion runs; cmd/api builds it once at startup.
type FuzzyMatcher struct {
	records []model.PostalRecord
}

// NewFuzzyMatcher builds a matcher over records. The slice is kept as
// given, not copied; callers must call NewFuzzyMatcher again after a
// Repository.Replace to pick up the new dataset.
func NewFuzzyMatcher(records []model.PostalRecord) *FuzzyMatcher {
	return &FuzzyMatcher{records: records}
}

// Suggestion is one ranked fuzzy-match candidate.
type Suggestion struct {
	Record model.PostalRecord
	Score  float64 // higher is a better match, in [0, 1]
}

// jwWeight and levWeight mirror the teacher's ParserCfg blend of a
// similarity score and a normalized edit-distance score into one ranking
// figure.
const (
	jwWeight  = 0.6
	levWeight = 0.4
)

// Suggest returns the topK records whose Town field is closest to query,
// ranked by a blend of Jaro-Winkler similarity and normalized Levenshtein
// distance. Returns fewer than topK if the corpus is smaller.
func (m *FuzzyMatcher) Suggest(query string, topK int) []Suggestion {
	if topK <= 0 || len(m.records) == 0 {
		return nil
	}

	scored := make([]Suggestion, 0, len(m.records))
	for _, rec := range m.records {
		if rec.Town == "" {
			continue
		}
		scored = append(scored, Suggestion{Record: rec, Score: similarity(query, rec.Town)})
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// similarity blends Jaro-Winkler similarity (already in [0, 1]) with a
// length-normalized Levenshtein score.
func similarity(a, b string) float64 {
	jw := smetrics.JaroWinkler(a, b, 0.7, 4)

	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len([]rune(a))
	if bl := len([]rune(b)); bl > maxLen {
		maxLen = bl
	}
	levScore := 1.0
	if maxLen > 0 {
		levScore = 1.0 - float64(dist)/float64(maxLen)
	}

	return jwWeight*jw + levWeight*levScore
}
