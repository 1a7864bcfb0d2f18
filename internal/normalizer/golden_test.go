package normalizer

import (
	"os"
	"reflect"
	"testing"

	"github.com/address-parser/internal/model"
	"gopkg.in/yaml.v3"
)

type goldenCase struct {
	Name string   `yaml:"name"`
	City string   `yaml:"city"`
	Town string   `yaml:"town"`
	Want []string `yaml:"want"`
}

func loadGoldenCases(t *testing.T, path string) []goldenCase {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	var cases []goldenCase
	if err := yaml.Unmarshal(raw, &cases); err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
	return cases
}

func TestNormalizeTown_GoldenCorpus(t *testing.T) {
	for _, tc := range loadGoldenCases(t, "testdata/town_corpus.yaml") {
		t.Run(tc.Name, func(t *testing.T) {
			got := NormalizeTown(model.PostalRecord{City: tc.City, Town: tc.Town})
			if !reflect.DeepEqual(sortedCopy(got), sortedCopy(tc.Want)) {
				t.Errorf("NormalizeTown(town=%q) = %v, want %v", tc.Town, got, tc.Want)
			}
		})
	}
}
