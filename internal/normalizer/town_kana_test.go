package normalizer

import (
	"reflect"
	"testing"

	"github.com/address-parser/internal/model"
)

func TestNormalizeTownKana_Sentinels(t *testing.T) {
	cases := []struct {
		name   string
		record model.PostalRecord
		want   []string
	}{
		{
			name:   "no_listing_sentinel",
			record: model.PostalRecord{CityKana: "サッポロシチュウオウク", TownKana: "イカニケイサイガナイバアイ"},
			want:   []string{""},
		},
		{
			name:   "next_address_sentinel",
			record: model.PostalRecord{CityKana: "サカイマチ", TownKana: "サカイマチノツギニバンチガクルバアイ"},
			want:   []string{""},
		},
		{
			name:   "village_entire_area_sentinel",
			record: model.PostalRecord{CityKana: "キタアズミグンマツカワムラ", TownKana: "マツカワムライチエン"},
			want:   []string{""},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeTownKana(tc.record)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("NormalizeTownKana(%+v) = %v, want %v", tc.record, got, tc.want)
			}
		})
	}
}

func TestNormalizeTownKana_ChomeRangeWithParent(t *testing.T) {
	got := NormalizeTownKana(model.PostalRecord{TownKana: "ミツギ（１～５チョウメ）"})
	want := []string{"ミツギ１チョウメ", "ミツギ２チョウメ", "ミツギ３チョウメ", "ミツギ４チョウメ", "ミツギ５チョウメ", "ミツギ"}
	if !reflect.DeepEqual(sortedCopy(got), sortedCopy(want)) {
		t.Errorf("NormalizeTownKana chome range = %v, want %v", got, want)
	}
}

func TestNormalizeTownKana_MiddleDotEnumeration(t *testing.T) {
	got := NormalizeTownKana(model.PostalRecord{TownKana: "カマガシマ（ドテバタケ・フジバ）"})
	want := []string{"カマガシマドテバタケ", "カマガシマフジバ"}
	if !reflect.DeepEqual(sortedCopy(got), sortedCopy(want)) {
		t.Errorf("NormalizeTownKana middle dot = %v, want %v", got, want)
	}
}

func TestNormalizeTownKana_CommaEnumerationWithParent(t *testing.T) {
	got := NormalizeTownKana(model.PostalRecord{TownKana: "カミビバイチョウ（キョウワ、ミナミ）"})
	want := []string{"カミビバイチョウキョウワ", "カミビバイチョウミナミ", "カミビバイチョウ"}
	if !reflect.DeepEqual(sortedCopy(got), sortedCopy(want)) {
		t.Errorf("NormalizeTownKana comma enumeration = %v, want %v", got, want)
	}
}

func TestNormalizeTownKana_WingTokenPreserved(t *testing.T) {
	got := NormalizeTownKana(model.PostalRecord{TownKana: "メイエキミッドランドスクエア（コウソウトウ）（１０カイ）"})
	want := []string{"メイエキミッドランドスクエア（コウソウトウ）１０カイ"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTownKana wing token = %v, want %v", got, want)
	}
}

// TestPairingLength checks property 4 from SPEC_FULL.md §8: for records
// whose Kanji/Katakana annotations are structurally parallel, the two
// pipelines must produce result lists of equal length.
func TestPairingLength(t *testing.T) {
	cases := []model.PostalRecord{
		{Town: "三ツ木（１～５丁目）", TownKana: "ミツギ（１～５チョウメ）"},
		{Town: "釜ケ島（土手畑・藤場）", TownKana: "カマガシマ（ドテバタケ・フジバ）"},
		{Town: "上美唄町（協和、南）", TownKana: "カミビバイチョウ（キョウワ、ミナミ）"},
		{Town: "本町", TownKana: "ホンマチ"},
	}
	for _, r := range cases {
		kanji := NormalizeTown(r)
		kana := NormalizeTownKana(r)
		if len(kanji) != len(kana) {
			t.Errorf("pairing length mismatch for %+v: kanji=%v (%d) kana=%v (%d)",
				r, kanji, len(kanji), kana, len(kana))
		}
	}
}
