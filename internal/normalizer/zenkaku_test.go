package normalizer

import (
	"errors"
	"reflect"
	"testing"
)

func TestIsZenkakuDigit(t *testing.T) {
	cases := []struct {
		name string
		r    rune
		want bool
	}{
		{"zero", '０', true},
		{"nine", '９', true},
		{"ascii_digit", '0', false},
		{"kanji", '丁', false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsZenkakuDigit(tc.r); got != tc.want {
				t.Errorf("IsZenkakuDigit(%q) = %v, want %v", tc.r, got, tc.want)
			}
		})
	}
}

func TestExtractLeadingRun(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "１２丁目", "１２"},
		{"prefixed_text", "第４０地割", "４０"},
		{"no_digits", "丁目", ""},
		{"trailing_text_stops_run", "１２丁目３", "１２"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractLeadingRun(tc.input); got != tc.want {
				t.Errorf("ExtractLeadingRun(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseZenkaku(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"simple", "１２丁目", 12, false},
		{"zero", "０番地", 0, false},
		{"no_digits", "丁目", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseZenkaku(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedNumber) {
					t.Fatalf("ParseZenkaku(%q) error = %v, want ErrMalformedNumber", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseZenkaku(%q) unexpected error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseZenkaku(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestRenderZenkaku(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "０"},
		{12, "１２"},
		{140, "１４０"},
	}
	for _, tc := range cases {
		if got := RenderZenkaku(tc.n); got != tc.want {
			t.Errorf("RenderZenkaku(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestRangeLabel(t *testing.T) {
	cases := []struct {
		name    string
		start   string
		end     string
		want    []string
		wantErr bool
	}{
		{
			name:  "chome_range",
			start: "８丁目",
			end:   "１２丁目",
			want:  []string{"８丁目", "９丁目", "１０丁目", "１１丁目", "１２丁目"},
		},
		{
			name:  "single_element",
			start: "５丁目",
			end:   "５丁目",
			want:  []string{"５丁目"},
		},
		{
			name:  "start_after_end_returns_empty",
			start: "５丁目",
			end:   "３丁目",
			want:  []string{},
		},
		{
			name:  "chiwari_label_with_prefix",
			start: "第４０地割",
			end:   "第４２地割",
			want:  []string{"第４０地割", "第４１地割", "第４２地割"},
		},
		{
			name:    "malformed_start",
			start:   "丁目",
			end:     "５丁目",
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RangeLabel(tc.start, tc.end)
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedRange) {
					t.Fatalf("RangeLabel(%q, %q) error = %v, want ErrMalformedRange", tc.start, tc.end, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("RangeLabel(%q, %q) unexpected error: %v", tc.start, tc.end, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("RangeLabel(%q, %q) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}
