package domain

import (
	"fmt"
	"unicode/utf8"
)

type Prompt struct {
	ID         string
	Text       string
	Difficulty string
	Material   string
}

// MaterialPrompt is a prompt that comes with an owned material.
type MaterialPrompt struct {
	MaterialID string
	Text       string
}

// WithMaterialPrompts appends the material prompts after the role prompts. Their ids are
// material_<id>_<n>, numbered per material from 1.
func WithMaterialPrompts(prompts []Prompt, extra []MaterialPrompt) []Prompt {
	seen := map[string]int{}
	for _, mp := range extra {
		seen[mp.MaterialID]++
		prompts = append(prompts, Prompt{
			ID:       fmt.Sprintf("material_%s_%d", mp.MaterialID, seen[mp.MaterialID]),
			Text:     mp.Text,
			Material: mp.MaterialID,
		})
	}
	return prompts
}

// RoleForFrequency maps the chosen journaling frequency to a role.
func RoleForFrequency(frequency string) Role {
	switch frequency {
	case "every-2-days":
		return RoleAmateur
	case "everyday":
		return RolePro
	default:
		return RoleBeginner
	}
}

var promptsByRole = map[Role][]Prompt{
	RoleBeginner: {
		{ID: "beginner_1", Text: "What did you do today?", Difficulty: "easy"},
		{ID: "beginner_2", Text: "How did you feel about your interactions with others today?", Difficulty: "challenging"},
	},
	RoleAmateur: {
		{ID: "amateur_1", Text: "What was the most meaningful moment of your day?", Difficulty: "easy"},
		{ID: "amateur_2", Text: "What pattern do you notice in your thoughts today?", Difficulty: "easy"},
		{ID: "amateur_3", Text: "How did you grow or learn something new?", Difficulty: "easy"},
	},
	RolePro: {
		{ID: "pro_1", Text: "What deeper insight emerged from today's experiences?", Difficulty: "challenging"},
		{ID: "pro_2", Text: "How does today connect to your larger life narrative?", Difficulty: "challenging"},
	},
}

func PromptsForRole(role Role) []Prompt {
	return append([]Prompt{}, promptsByRole[role]...)
}

const maxSuggestions = 3

// Suggestions nudges the writer based on how much has been written so far.
func Suggestions(content string, role Role) []string {
	var out []string
	switch n := utf8.RuneCountInString(content); {
	case n < 50:
		out = append(out, "Try writing about specific details from your day", "What emotions did you experience?")
	case n < 150:
		out = append(out, "Consider the impact this had on you", "What would you do differently next time?")
	default:
		out = append(out, "What insights can you draw from this experience?", "How does this relate to your goals?")
	}
	switch role {
	case RoleBeginner:
		out = append(out, "Remember: there are no wrong answers in journaling")
	case RoleAmateur:
		out = append(out, "Consider the broader context of this experience")
	default:
		out = append(out, "What deeper patterns or themes do you see?")
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
