package normalizer

import (
	"regexp"
	"strings"

	"github.com/address-parser/internal/model"
)

// Precompiled pattern set for the Kanji town pipeline. Built once at package
// init and shared read-only for the lifetime of the process — see §5 of
// SPEC_FULL.md.
var (
	townDashFamily  = regexp.MustCompile(`[〜～]`)
	townHyphenFamily = regexp.MustCompile(`[—\-−–－]`)

	townYashikiRe        = regexp.MustCompile(`（.*?屋敷）`)
	townFloorRe          = regexp.MustCompile(`（([０-９]+階)）`)
	townNumberLotRe      = regexp.MustCompile(`(?:(?:[０-９]+[～－])?[０-９]+、)*(?:[０-９]+[～－])?[０-９]+番地?(?:以降|以下|以上|以外)?`)
	townWithinRe         = regexp.MustCompile(`（[０-９]+の[０-９]+以内）`)
	townExcludeBracketRe = regexp.MustCompile(`「.*?を除く」`)
	townExceptBracketRe  = regexp.MustCompile(`「.*?」以外`)
	townSingleNumParenRe = regexp.MustCompile(`（(?:[０-９]+[～－])?[０-９]+）`)
	townChiwariSuffixRe  = regexp.MustCompile(`地割（.*?）`)
	townCommaRunRe       = regexp.MustCompile(`、+`)

	townKouOtsuTrailingParenRe = regexp.MustCompile(`^(甲、乙.*?)（.*）$`)

	townChomeRangeRe       = regexp.MustCompile(`（([０-９]+)[～－]([０-９]+)丁目）`)
	townChiwariRangeParenRe = regexp.MustCompile(`（(第[０-９]+地割)[～－](第[０-９]+地割)）`)
	townChiwariRangeBareRe  = regexp.MustCompile(`(第[０-９]+地割)[～－](第[０-９]+地割)`)
	townChiwariLabeledRe    = regexp.MustCompile(`((.*?)[０-９]+地割)[～－](.*?[０-９]+地割)`)
	townMiddleDotRe         = regexp.MustCompile(`（(.*?・.*?)）`)
	townCommaEnumRe         = regexp.MustCompile(`（(.*?、.*?|.*?を含む)）`)

	townFinalParenRe  = regexp.MustCompile(`（(.*?)）`)
	townFinalCornerRe = regexp.MustCompile(`「(.*?)」`)
)

// townFixedPhrases are removed verbatim in Phase C.
var townFixedPhrases = []string{
	"（全域）", "（地階・階層不明）", "（次のビルを除く）", "（丁目）",
	"（各町）", "（番地）", "（無番地）", "（その他）",
}

// townFenceException is the single literal token Phase Q must never unwrap.
const townFenceException = "（高層棟）"

// Diagnostics carries soft, non-authoritative signals about a single
// normalization call, surfaced so a caller (internal/ingest) can log a
// sampled debug line without the normalizer itself performing any I/O —
// see SPEC_FULL.md §9's resolution of the bare-comma-enumeration Open
// Question. It never changes the returned town list.
type Diagnostics struct {
	// BareCommaOverSplit is true when Phase P fired (a bare, unfenced 、
	// enumeration) on a string whose 、 count exceeds 3 — a soft sign the
	// split may be over-eager on a town name that happens to contain a
	// literal comma.
	BareCommaOverSplit bool
	// CommaCount is the number of 、 separators Phase P split on, valid
	// only when BareCommaOverSplit is true.
	CommaCount int
}

// NormalizeTown runs a PostalRecord's Kanji town field through the ordered
// rule pipeline described in SPEC_FULL.md §4.2 and returns a non-empty list
// of canonical town strings. It reads only record.City and record.Town.
func NormalizeTown(record model.PostalRecord) []string {
	towns, _ := NormalizeTownDiagnostics(record)
	return towns
}

// NormalizeTownDiagnostics runs the same pipeline as NormalizeTown and
// additionally reports Diagnostics about the run. Both functions are pure;
// Diagnostics carries no side effects of its own, only a signal the caller
// may choose to log.
func NormalizeTownDiagnostics(record model.PostalRecord) ([]string, Diagnostics) {
	town := record.Town

	// Phase A — empty-town sentinel cases.
	if town == "以下に掲載がない場合" {
		return []string{""}, Diagnostics{}
	}
	if strings.HasSuffix(town, "の次に番地がくる場合") {
		return []string{""}, Diagnostics{}
	}
	if trimmed := strings.TrimSuffix(town, "一円"); town != "一円" && strings.HasSuffix(record.City, trimmed) {
		return []string{""}, Diagnostics{}
	}

	s := town

	// Phase B — character unification.
	s = townDashFamily.ReplaceAllString(s, "～")
	s = townHyphenFamily.ReplaceAllString(s, "－")

	// Phase C — fixed annotation removal.
	for _, phrase := range townFixedPhrases {
		s = strings.ReplaceAll(s, phrase, "")
	}

	// Phase D — yashiki clean-up.
	s = townYashikiRe.ReplaceAllString(s, "")

	// Phase E — floor unwrap.
	s = townFloorRe.ReplaceAllString(s, "$1")

	// Phase F — number/lot phrase removal.
	s = townNumberLotRe.ReplaceAllString(s, "")
	s = townWithinRe.ReplaceAllString(s, "")
	s = townExcludeBracketRe.ReplaceAllString(s, "")
	s = townExceptBracketRe.ReplaceAllString(s, "")
	s = townSingleNumParenRe.ReplaceAllString(s, "")

	// Phase G — chiwari suffix cleanup.
	s = townChiwariSuffixRe.ReplaceAllString(s, "地割")

	// Phase H — garbage collapse.
	s = townCommaRunRe.ReplaceAllString(s, "、")
	s = strings.ReplaceAll(s, "（、", "（")
	s = strings.ReplaceAll(s, "、）", "）")
	s = strings.ReplaceAll(s, "（）", "")

	// Phase I — "甲、乙" split.
	if strings.HasPrefix(s, "甲、乙") {
		s = townKouOtsuTrailingParenRe.ReplaceAllString(s, "$1")
		return splitAny(s, "、・"), Diagnostics{}
	}

	// Phase J — parenthesized chome range.
	if loc := townChomeRangeRe.FindStringSubmatchIndex(s); loc != nil {
		start := s[loc[2]:loc[3]] + "丁目"
		end := s[loc[4]:loc[5]] + "丁目"
		prefix := s[:loc[0]] + s[loc[1]:]
		suffixes, err := RangeLabel(start, end)
		if err != nil {
			return []string{town}, Diagnostics{}
		}
		suffixes = append(suffixes, "")
		return prefixEach(prefix, suffixes), Diagnostics{}
	}

	// Phase K — parenthesized chiwari range (no parent).
	if loc := townChiwariRangeParenRe.FindStringSubmatchIndex(s); loc != nil {
		start := s[loc[2]:loc[3]]
		end := s[loc[4]:loc[5]]
		prefix := s[:loc[0]] + s[loc[1]:]
		suffixes, err := RangeLabel(start, end)
		if err != nil {
			return []string{town}, Diagnostics{}
		}
		return prefixEach(prefix, suffixes), Diagnostics{}
	}

	// Phase L — bare chiwari range (parent included).
	if loc := townChiwariRangeBareRe.FindStringSubmatchIndex(s); loc != nil {
		start := s[loc[2]:loc[3]]
		end := s[loc[4]:loc[5]]
		prefix := s[:loc[0]] + s[loc[1]:]
		suffixes, err := RangeLabel(start, end)
		if err != nil {
			return []string{town}, Diagnostics{}
		}
		suffixes = append(suffixes, "")
		return prefixEach(prefix, suffixes), Diagnostics{}
	}

	// Phase M — labeled-prefix chiwari range.
	if loc := townChiwariLabeledRe.FindStringSubmatchIndex(s); loc != nil {
		startLabel := s[loc[2]:loc[3]]
		labelPrefix := s[loc[4]:loc[5]]
		endLabel := s[loc[6]:loc[7]]
		prefix := s[:loc[0]] + s[loc[1]:]
		suffixes, err := RangeLabel(startLabel, endLabel)
		if err != nil {
			return []string{town}, Diagnostics{}
		}
		suffixes = append(suffixes, labelPrefix)
		return prefixEach(prefix, suffixes), Diagnostics{}
	}

	// Phase N — middle-dot enumeration (no parent).
	if loc := townMiddleDotRe.FindStringSubmatchIndex(s); loc != nil {
		inner := s[loc[2]:loc[3]]
		prefix := s[:loc[0]] + s[loc[1]:]
		return prefixEach(prefix, strings.Split(inner, "・")), Diagnostics{}
	}

	// Phase O — comma enumeration / "を含む" (parent included).
	if loc := townCommaEnumRe.FindStringSubmatchIndex(s); loc != nil {
		inner := s[loc[2]:loc[3]]
		prefix := s[:loc[0]] + s[loc[1]:]
		inner = strings.TrimSuffix(inner, "、その他")
		inner = strings.ReplaceAll(inner, "を含む", "")
		parts := strings.Split(inner, "、")
		parts = append(parts, "")
		return prefixEach(prefix, parts), Diagnostics{}
	}

	// Phase P — bare comma enumeration (no parent).
	if strings.Contains(s, "、") {
		parts := strings.Split(s, "、")
		count := strings.Count(s, "、")
		return parts, Diagnostics{BareCommaOverSplit: count > 3, CommaCount: count}
	}

	// Phase Q — final parenthesis stripping.
	s = stripFencesExcept(s, townFinalParenRe, townFenceException)
	s = stripFencesExcept(s, townFinalCornerRe, townFenceException)

	return []string{s}, Diagnostics{}
}

// stripFencesExcept unwraps every match of re (expected to capture the
// fenced content as group 1) by replacing the whole match with its inner
// content, except for the literal token named in exception, which is kept
// verbatim.
func stripFencesExcept(s string, re *regexp.Regexp, exception string) string {
	return re.ReplaceAllStringFunc(s, func(match string) string {
		if match == exception {
			return match
		}
		sub := re.FindStringSubmatch(match)
		return sub[1]
	})
}

// prefixEach concatenates prefix with every element of suffixes.
func prefixEach(prefix string, suffixes []string) []string {
	out := make([]string, len(suffixes))
	for i, suf := range suffixes {
		out[i] = prefix + suf
	}
	return out
}

// splitAny splits s on any rune in cutset, mirroring a split over the set
// {、, ・}.
func splitAny(s, cutset string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(cutset, r)
	})
}
