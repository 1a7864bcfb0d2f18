package normalizer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedNumber is returned by ParseZenkaku when its input carries no
// full-width digit run at all. RangeLabel reports the same condition as
// ErrMalformedRange.
var ErrMalformedNumber = errors.New("normalizer: malformed zenkaku number")

// ErrMalformedRange is returned by RangeLabel when either label lacks a
// full-width digit run. Indicates upstream data corruption; the preceding
// regex captures in town.go/town_kana.go guarantee this never fires in
// practice.
var ErrMalformedRange = errors.New("normalizer: malformed range label")

var zenkakuDigitRun = regexp.MustCompile(`[０-９]+`)

// IsZenkakuDigit reports whether r is one of the full-width decimal digits
// U+FF10 ("０") through U+FF19 ("９").
func IsZenkakuDigit(r rune) bool {
	return r >= '０' && r <= '９'
}

// ExtractLeadingRun returns the longest contiguous run of full-width digits
// in s, starting at the first full-width digit encountered. It returns ""
// if s contains no full-width digit.
func ExtractLeadingRun(s string) string {
	return zenkakuDigitRun.FindString(s)
}

// ParseZenkaku extracts the leading full-width digit run from s and parses
// it as a non-negative base-10 integer.
func ParseZenkaku(s string) (int, error) {
	run := ExtractLeadingRun(s)
	if run == "" {
		return 0, fmt.Errorf("%w: no zenkaku digit run in %q", ErrMalformedNumber, s)
	}
	var b strings.Builder
	b.Grow(len(run))
	for _, r := range run {
		b.WriteRune('0' + (r - '０'))
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedNumber, err)
	}
	return n, nil
}

// RenderZenkaku writes n in base-10 ASCII and maps each digit to its
// full-width form.
func RenderZenkaku(n int) string {
	ascii := strconv.Itoa(n)
	var b strings.Builder
	b.Grow(len(ascii))
	for _, r := range ascii {
		if r == '-' {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('０' + (r - '0'))
	}
	return b.String()
}

// RangeLabel expands a labeled numeric range into a list of labeled
// strings. It computes s = ParseZenkaku(startLabel) and e =
// ParseZenkaku(endLabel), then for every integer k in [s, e] produces a
// label formed by replacing the FIRST full-width-digit run in startLabel
// with RenderZenkaku(k). The caller is responsible for ensuring startLabel
// and endLabel share the same non-digit surround (true whenever both come
// from the same regex capture group, as they do in town.go/town_kana.go).
//
// If s > e, RangeLabel returns an empty, non-error list.
func RangeLabel(startLabel, endLabel string) ([]string, error) {
	start, err := ParseZenkaku(startLabel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRange, err)
	}
	end, err := ParseZenkaku(endLabel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRange, err)
	}
	if start > end {
		return []string{}, nil
	}
	loc := zenkakuDigitRun.FindStringIndex(startLabel)
	if loc == nil {
		return nil, fmt.Errorf("%w: no zenkaku digit run in %q", ErrMalformedRange, startLabel)
	}
	result := make([]string, 0, end-start+1)
	for k := start; k <= end; k++ {
		label := startLabel[:loc[0]] + RenderZenkaku(k) + startLabel[loc[1]:]
		result = append(result, label)
	}
	return result, nil
}
