package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// containsPlain reports whether s contains sub once ANSI styling is removed.
func containsPlain(s, sub string) bool {
	return strings.Contains(ansi.Strip(s), sub)
}

func TestTruncateRunesHelper(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		max    int
		suffix string
		want   string
	}{
		{name: "zero max", input: "hello", max: 0, suffix: "…", want: ""},
		{name: "fits", input: "hello", max: 10, suffix: "…", want: "hello"},
		{name: "ellipsis", input: "hello world", max: 6, suffix: "…", want: "hello…"},
		{name: "wide runes", input: "日本語のタイトル", max: 7, suffix: "…", want: "日本語…"},
		{name: "suffix too wide", input: "hello", max: 2, suffix: "...", want: ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateRunesHelper(tt.input, tt.max, tt.suffix)
			if got != tt.want {
				t.Fatalf("truncateRunesHelper(%q, %d) = %q; want %q", tt.input, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("output is not valid UTF-8: %q", got)
			}
			if w := runewidth.StringWidth(got); w > tt.max {
				t.Fatalf("output width %d exceeds %d", w, tt.max)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("go", 5); got != "go   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("日本", 5); runewidth.StringWidth(got) != 5 {
		t.Errorf("padRight should pad to cell width, got %q", got)
	}
	if got := padRight("toolong", 3); got != "toolong" {
		t.Errorf("padRight should not truncate, got %q", got)
	}
}

func TestPluralize(t *testing.T) {
	cases := map[int]string{0: "0 tutorials", 1: "1 tutorial", 12: "12 tutorials"}
	for n, want := range cases {
		if got := pluralize(n, "tutorial"); got != want {
			t.Errorf("pluralize(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestItoa(t *testing.T) {
	for n, want := range map[int]string{0: "0", 7: "7", 42: "42", -13: "-13"} {
		if got := itoa(n); got != want {
			t.Errorf("itoa(%d) = %q, want %q", n, got, want)
		}
	}
}
