package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const MaxInsights = 5

type theme struct {
	label   string
	pattern *regexp.Regexp
}

var themes = []theme{
	{"work and responsibilities", words("work", "job", "boss", "career", "meeting", "deadline", "project", "office")},
	{"relationships", words("friend", "friends", "family", "partner", "relationship", "mom", "dad", "mother", "father", "colleague")},
	{"health and energy", words("sleep", "tired", "exercise", "health", "sick", "energy", "rest")},
	{"stress and worry", words("stress", "stressed", "anxious", "worried", "overwhelmed", "pressure")},
	{"personal growth", words("learn", "learned", "goal", "goals", "improve", "grow", "growth", "progress")},
	{"gratitude", words("grateful", "thankful", "appreciate", "gratitude")},
}

// Summarize writes a short paragraph from the themes found in the user's messages.
func Summarize(messages []Message) string {
	texts := strings.ToLower(strings.Join(userTexts(messages), "\n"))
	var found []string
	for _, t := range themes {
		if t.pattern.MatchString(texts) {
			found = append(found, t.label)
		}
	}
	turns := len(userTexts(messages))
	if len(found) == 0 {
		return fmt.Sprintf("You took %s to reflect on what was on your mind. Keep checking in with yourself; small reflections add up over time.", plural(turns, "message"))
	}
	mood := Classify(texts)
	summary := fmt.Sprintf("In this conversation you reflected on %s across %s.", joinLabels(found), plural(turns, "message"))
	if mood != CategoryGeneral {
		summary += fmt.Sprintf(" The overall tone felt %s.", mood)
	}
	return summary + " Consider revisiting these themes in your journal."
}

type insightRule struct {
	pattern *regexp.Regexp
	format  string
}

var insightRules = []insightRule{
	{regexp.MustCompile(`(?i)\bi (?:feel|felt|am feeling|was feeling)\s+([a-z][a-z -]{1,40}?)(?:[.,!?]|\s+(?:about|because|when)\b|$)`), "You described feeling %s"},
	{regexp.MustCompile(`(?i)\bgrateful (?:for|that)\s+([^.!?\n]+)`), "You are grateful for %s"},
	{regexp.MustCompile(`(?i)\bi (?:want|hope|plan|would like) to\s+([^.!?\n]+)`), "You want to %s"},
	{regexp.MustCompile(`(?i)\bi (?:realized|realised|learned|noticed)\s+(?:that\s+)?([^.!?\n]+)`), "You noticed that %s"},
	{regexp.MustCompile(`(?i)\bi need\s+([^.!?\n]+)`), "You recognized a need for %s"},
	{regexp.MustCompile(`(?i)\b(?:struggling|struggle|hard time) with\s+([^.!?\n]+)`), "You are working through %s"},
}

var fillerInsights = []string{
	"Taking time to reflect is a meaningful step",
	"Putting feelings into words helps you understand them",
}

// ExtractInsights applies the rule table to every user message, deduplicates and caps the result.
func ExtractInsights(messages []Message) []string {
	seen := map[string]bool{}
	var out []string
	for _, text := range userTexts(messages) {
		for _, rule := range insightRules {
			for _, match := range rule.pattern.FindAllStringSubmatch(text, -1) {
				fragment := clip(strings.TrimSpace(match[1]), 80)
				if fragment == "" {
					continue
				}
				insight := fmt.Sprintf(rule.format, fragment)
				key := strings.ToLower(insight)
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, insight)
				if len(out) == MaxInsights {
					return out
				}
			}
		}
	}
	if len(out) == 0 {
		return append([]string(nil), fillerInsights...)
	}
	return out
}

func joinLabels(labels []string) string {
	switch len(labels) {
	case 1:
		return labels[0]
	case 2:
		return labels[0] + " and " + labels[1]
	default:
		return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func clip(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:max])) + "…"
}
