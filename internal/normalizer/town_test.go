package normalizer

import (
	"reflect"
	"sort"
	"testing"

	"github.com/address-parser/internal/model"
)

func sortedCopy(ss []string) []string {
	out := append([]string(nil), ss...)
	sort.Strings(out)
	return out
}

func TestNormalizeTown_LiteralScenarios(t *testing.T) {
	cases := []struct {
		name   string
		record model.PostalRecord
		want   []string
	}{
		{
			name:   "no_listing_sentinel",
			record: model.PostalRecord{City: "札幌市中央区", Town: "以下に掲載がない場合"},
			want:   []string{""},
		},
		{
			name:   "next_address_sentinel",
			record: model.PostalRecord{City: "境町", Town: "境町の次に番地がくる場合"},
			want:   []string{""},
		},
		{
			name:   "village_entire_area_sentinel",
			record: model.PostalRecord{City: "北安曇郡松川村", Town: "松川村一円"},
			want:   []string{""},
		},
		{
			name:   "chome_range_with_parent",
			record: model.PostalRecord{Town: "三ツ木（１～５丁目）"},
			want:   []string{"三ツ木１丁目", "三ツ木２丁目", "三ツ木３丁目", "三ツ木４丁目", "三ツ木５丁目", "三ツ木"},
		},
		{
			name:   "chiwari_range_parenthesized_no_parent",
			record: model.PostalRecord{Town: "葛巻（第４０地割「５７番地１２５、１７６を除く」～第４５地割）"},
			want: []string{
				"葛巻第４０地割", "葛巻第４１地割", "葛巻第４２地割",
				"葛巻第４３地割", "葛巻第４４地割", "葛巻第４５地割",
			},
		},
		{
			name:   "middle_dot_enumeration",
			record: model.PostalRecord{Town: "釜ケ島（土手畑・藤場）"},
			want:   []string{"釜ケ島土手畑", "釜ケ島藤場"},
		},
		{
			name:   "comma_enumeration_with_parent",
			record: model.PostalRecord{Town: "上美唄町（協和、南）"},
			want:   []string{"上美唄町協和", "上美唄町南", "上美唄町"},
		},
		{
			name:   "floor_unwrap",
			record: model.PostalRecord{Town: "六本木ヒルズ森タワー（１階）"},
			want:   []string{"六本木ヒルズ森タワー１階"},
		},
		{
			name:   "wing_token_preserved",
			record: model.PostalRecord{Town: "名駅ミッドランドスクエア（高層棟）（１０階）"},
			want:   []string{"名駅ミッドランドスクエア（高層棟）１０階"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeTown(tc.record)
			if len(got) == 0 {
				t.Fatalf("NormalizeTown returned empty list")
			}
			if !reflect.DeepEqual(sortedCopy(got), sortedCopy(tc.want)) {
				t.Errorf("NormalizeTown(%+v) = %v, want %v", tc.record, got, tc.want)
			}
		})
	}
}

// TestNormalizeTown_NonEmptyOutput checks property 1 from SPEC_FULL.md §8
// over a small representative corpus.
func TestNormalizeTown_NonEmptyOutput(t *testing.T) {
	towns := []string{
		"", "本町", "本町（その他）", "大字山田字東", "三ツ木（１～５丁目）",
		"上美唄町（協和、南）", "釜ケ島（土手畑・藤場）",
	}
	for _, town := range towns {
		got := NormalizeTown(model.PostalRecord{Town: town})
		if len(got) < 1 {
			t.Errorf("NormalizeTown(town=%q) returned empty list", town)
		}
	}
}

func TestNormalizeTown_DashIdempotence(t *testing.T) {
	r := model.PostalRecord{Town: "三ツ木（１〜５丁目）"}
	first := NormalizeTown(r)

	// Run again on a record whose town has already gone through Phase B.
	r2 := model.PostalRecord{Town: "三ツ木（１～５丁目）"}
	second := NormalizeTown(r2)

	if !reflect.DeepEqual(sortedCopy(first), sortedCopy(second)) {
		t.Errorf("dash unification not idempotent: %v vs %v", first, second)
	}
}

func TestNormalizeTown_DefaultFallthrough(t *testing.T) {
	got := NormalizeTown(model.PostalRecord{Town: "本町"})
	want := []string{"本町"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTown(本町) = %v, want %v", got, want)
	}
}

// TestNormalizeTownDiagnostics_BareCommaOverSplit covers the SPEC_FULL.md
// §9 bare-comma-over-split signal: Phase P firing on a string with more
// than 3 、 separators should be flagged, without changing the split
// result itself.
func TestNormalizeTownDiagnostics_BareCommaOverSplit(t *testing.T) {
	got, diag := NormalizeTownDiagnostics(model.PostalRecord{Town: "一、二、三、四、五"})
	want := []string{"一", "二", "三", "四", "五"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTownDiagnostics split = %v, want %v", got, want)
	}
	if !diag.BareCommaOverSplit {
		t.Errorf("diag.BareCommaOverSplit = false, want true for 4 separators")
	}
	if diag.CommaCount != 4 {
		t.Errorf("diag.CommaCount = %d, want 4", diag.CommaCount)
	}
}

func TestNormalizeTownDiagnostics_BareCommaNoOverSplit(t *testing.T) {
	_, diag := NormalizeTownDiagnostics(model.PostalRecord{Town: "東町、西町"})
	if diag.BareCommaOverSplit {
		t.Errorf("diag.BareCommaOverSplit = true, want false for 1 separator")
	}
}
