package slug

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Hello World":             "hello-world",
		"  --Morning__walk!!  ":   "morning-walk",
		"0190c3a4-7d2e-7b1f-9c11": "0190c3a4-7d2e-7b1f-9c11",
		"Café au lait":            "café-au-lait",
		"???":                     "note",
		"":                        "note",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeTruncates(t *testing.T) {
	t.Parallel()
	got := Make(strings.Repeat("ab ", 40))
	if utf8.RuneCountInString(got) > MaxLen {
		t.Fatalf("slug too long: %d runes", utf8.RuneCountInString(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Fatalf("slug ends with a dash: %q", got)
	}
}
