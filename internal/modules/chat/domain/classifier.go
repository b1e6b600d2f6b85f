package domain

import (
	"regexp"
	"strings"
)

type Category string

const (
	CategorySad      Category = "sad"
	CategoryAnxious  Category = "anxious"
	CategoryAngry    Category = "angry"
	CategoryHappy    Category = "happy"
	CategoryConfused Category = "confused"
	CategoryGeneral  Category = "general"
)

type vocabulary struct {
	category Category
	pattern  *regexp.Regexp
}

func words(list ...string) *regexp.Regexp {
	quoted := make([]string, 0, len(list))
	for _, w := range list {
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Order matters: the first matching category wins.
var vocabularies = []vocabulary{
	{CategorySad, words("sad", "down", "depressed", "unhappy", "lonely", "cry", "crying", "hopeless", "grief", "heartbroken", "lost")},
	{CategoryAnxious, words("anxious", "anxiety", "worried", "worry", "nervous", "stress", "stressed", "overwhelmed", "panic", "afraid", "scared")},
	{CategoryAngry, words("angry", "mad", "furious", "frustrated", "annoyed", "irritated", "hate", "rage", "resent")},
	{CategoryHappy, words("happy", "glad", "excited", "great", "joy", "joyful", "grateful", "thankful", "proud", "wonderful")},
	{CategoryConfused, words("confused", "unsure", "uncertain", "don't know", "dont know", "torn", "stuck", "unclear")},
}

func Classify(text string) Category {
	lower := strings.ToLower(text)
	for _, v := range vocabularies {
		if v.pattern.MatchString(lower) {
			return v.category
		}
	}
	return CategoryGeneral
}
