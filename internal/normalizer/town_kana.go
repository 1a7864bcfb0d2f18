package normalizer

import (
	"regexp"
	"strings"

	"github.com/address-parser/internal/model"
)

// Precompiled pattern set for the Katakana town-kana pipeline. Structurally
// parallel to town.go's pattern set — see SPEC_FULL.md §4.3.
var (
	townKanaYashikiRe        = regexp.MustCompile(`（.*?ヤシキチク）`)
	townKanaFloorRe          = regexp.MustCompile(`（([０-９]+カイ)）`)
	townKanaNumberLotRe      = regexp.MustCompile(`(?:(?:[０-９]+[～－])?[０-９]+、)*(?:[０-９]+[～－])?[０-９]+バン(?:チ)?(?:イコウ|イカ|イジョウ|イガイ)?`)
	townKanaWithinRe         = regexp.MustCompile(`（[０-９]+ノ[０-９]+イナイ）`)
	townKanaExcludeBracketRe = regexp.MustCompile(`＜.*?ヲノゾク＞`)
	townKanaExceptBracketRe  = regexp.MustCompile(`＜.*?＞イガイ`)
	townKanaSingleNumParenRe = regexp.MustCompile(`（(?:[０-９]+[～－])?[０-９]+）`)
	townKanaChiwariSuffixRe  = regexp.MustCompile(`チワリ（.*?）`)

	townKanaKouOtsuTrailingParenRe = regexp.MustCompile(`^(コウ、オツ.*?)（.*）$`)

	townKanaChomeRangeRe        = regexp.MustCompile(`（([０-９]+)[～－]([０-９]+)チョウメ）`)
	townKanaChiwariRangeParenRe = regexp.MustCompile(`（(ダイ[０-９]+チワリ)[～－](ダイ[０-９]+チワリ)）`)
	townKanaChiwariRangeBareRe  = regexp.MustCompile(`(ダイ[０-９]+チワリ)[～－](ダイ[０-９]+チワリ)`)
	townKanaChiwariLabeledRe    = regexp.MustCompile(`((.*?)[０-９]+チワリ)[～－](.*?[０-９]+チワリ)`)
	townKanaMiddleDotRe         = regexp.MustCompile(`（(.*?・.*?)）`)
	townKanaCommaEnumRe         = regexp.MustCompile(`（(.*?、.*?|.*?ヲフクム)）`)

	townKanaFinalParenRe = regexp.MustCompile(`（(.*?)）`)
	townKanaFinalAngleRe = regexp.MustCompile(`＜(.*?)＞`)
)

var townKanaFixedPhrases = []string{
	"（ゼンイキ）", "（チカイ・カイソウフメイ）", "（ツギノビルヲノゾク）", "（チョウメ）",
	"（カクマチ）", "（バンチ）", "（ムバンチ）", "（ソノタ）",
}

const townKanaFenceException = "（コウソウトウ）"

// NormalizeTownKana runs a PostalRecord's Katakana town_kana field through
// the pipeline described in SPEC_FULL.md §4.3. Structurally identical to
// NormalizeTown, with Katakana trigger strings and the angle-bracket
// secondary fence.
func NormalizeTownKana(record model.PostalRecord) []string {
	towns, _ := NormalizeTownKanaDiagnostics(record)
	return towns
}

// NormalizeTownKanaDiagnostics runs the same pipeline as NormalizeTownKana
// and additionally reports Diagnostics about the run, mirroring
// NormalizeTownDiagnostics in town.go.
func NormalizeTownKanaDiagnostics(record model.PostalRecord) ([]string, Diagnostics) {
	townKana := record.TownKana

	// Phase A.
	if townKana == "イカニケイサイガナイバアイ" {
		return []string{""}, Diagnostics{}
	}
	if strings.HasSuffix(townKana, "ノツギニバンチガクルバアイ") {
		return []string{""}, Diagnostics{}
	}
	if trimmed := strings.TrimSuffix(townKana, "イチエン"); townKana != "イチエン" && strings.HasSuffix(record.CityKana, trimmed) {
		return []string{""}, Diagnostics{}
	}

	s := townKana

	// Phase B.
	s = townDashFamily.ReplaceAllString(s, "～")
	s = townHyphenFamily.ReplaceAllString(s, "－")

	// Phase C.
	for _, phrase := range townKanaFixedPhrases {
		s = strings.ReplaceAll(s, phrase, "")
	}

	// Phase D.
	s = townKanaYashikiRe.ReplaceAllString(s, "")

	// Phase E.
	s = townKanaFloorRe.ReplaceAllString(s, "$1")

	// Phase F.
	s = townKanaNumberLotRe.ReplaceAllString(s, "")
	s = townKanaWithinRe.ReplaceAllString(s, "")
	s = townKanaExcludeBracketRe.ReplaceAllString(s, "")
	s = townKanaExceptBracketRe.ReplaceAllString(s, "")
	s = townKanaSingleNumParenRe.ReplaceAllString(s, "")

	// Phase G.
	s = townKanaChiwariSuffixRe.ReplaceAllString(s, "チワリ")

	// Phase H.
	s = townCommaRunRe.ReplaceAllString(s, "、")
	s = strings.ReplaceAll(s, "（、", "（")
	s = strings.ReplaceAll(s, "、）", "）")
	s = strings.ReplaceAll(s, "（）", "")

	// Phase I.
	if strings.HasPrefix(s, "コウ、オツ") {
		s = townKanaKouOtsuTrailingParenRe.ReplaceAllString(s, "$1")
		return splitAny(s, "、・"), Diagnostics{}
	}

	// Phase J.
	if loc := townKanaChomeRangeRe.FindStringSubmatchIndex(s); loc != nil {
		start := s[loc[2]:loc[3]] + "チョウメ"
		end := s[loc[4]:loc[5]] + "チョウメ"
		prefix := s[:loc[0]] + s[loc[1]:]
		suffixes, err := RangeLabel(start, end)
		if err != nil {
			return []string{townKana}, Diagnostics{}
		}
		suffixes = append(suffixes, "")
		return prefixEach(prefix, suffixes), Diagnostics{}
	}

	// Phase K.
	if loc := townKanaChiwariRangeParenRe.FindStringSubmatchIndex(s); loc != nil {
		start := s[loc[2]:loc[3]]
		end := s[loc[4]:loc[5]]
		prefix := s[:loc[0]] + s[loc[1]:]
		suffixes, err := RangeLabel(start, end)
		if err != nil {
			return []string{townKana}, Diagnostics{}
		}
		return prefixEach(prefix, suffixes), Diagnostics{}
	}

	// Phase L.
	if loc := townKanaChiwariRangeBareRe.FindStringSubmatchIndex(s); loc != nil {
		start := s[loc[2]:loc[3]]
		end := s[loc[4]:loc[5]]
		prefix := s[:loc[0]] + s[loc[1]:]
		suffixes, err := RangeLabel(start, end)
		if err != nil {
			return []string{townKana}, Diagnostics{}
		}
		suffixes = append(suffixes, "")
		return prefixEach(prefix, suffixes), Diagnostics{}
	}

	// Phase M.
	if loc := townKanaChiwariLabeledRe.FindStringSubmatchIndex(s); loc != nil {
		startLabel := s[loc[2]:loc[3]]
		labelPrefix := s[loc[4]:loc[5]]
		endLabel := s[loc[6]:loc[7]]
		prefix := s[:loc[0]] + s[loc[1]:]
		suffixes, err := RangeLabel(startLabel, endLabel)
		if err != nil {
			return []string{townKana}, Diagnostics{}
		}
		suffixes = append(suffixes, labelPrefix)
		return prefixEach(prefix, suffixes), Diagnostics{}
	}

	// Phase N.
	if loc := townKanaMiddleDotRe.FindStringSubmatchIndex(s); loc != nil {
		inner := s[loc[2]:loc[3]]
		prefix := s[:loc[0]] + s[loc[1]:]
		return prefixEach(prefix, strings.Split(inner, "・")), Diagnostics{}
	}

	// Phase O.
	if loc := townKanaCommaEnumRe.FindStringSubmatchIndex(s); loc != nil {
		inner := s[loc[2]:loc[3]]
		prefix := s[:loc[0]] + s[loc[1]:]
		inner = strings.TrimSuffix(inner, "、ソノタ")
		inner = strings.ReplaceAll(inner, "ヲフクム", "")
		parts := strings.Split(inner, "、")
		parts = append(parts, "")
		return prefixEach(prefix, parts), Diagnostics{}
	}

	// Phase P.
	if strings.Contains(s, "、") {
		parts := strings.Split(s, "、")
		count := strings.Count(s, "、")
		return parts, Diagnostics{BareCommaOverSplit: count > 3, CommaCount: count}
	}

	// Phase Q.
	s = stripFencesExcept(s, townKanaFinalParenRe, townKanaFenceException)
	s = stripFencesExcept(s, townKanaFinalAngleRe, townKanaFenceException)

	return []string{s}, Diagnostics{}
}
