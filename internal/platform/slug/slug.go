package slug

import (
	"strings"
	"unicode"
)

// MaxLen bounds slugs used in file names.
const MaxLen = 64

// Make lowercases input and joins its letter and digit runs with single dashes.
// Letters outside ASCII are kept so that non-English titles still produce a name.
func Make(input string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(input) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	s := b.String()
	if runes := []rune(s); len(runes) > MaxLen {
		s = strings.TrimRight(string(runes[:MaxLen]), "-")
	}
	if s == "" {
		return "note"
	}
	return s
}
