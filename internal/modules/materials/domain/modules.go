package domain

import (
	"fmt"
	"strings"
)

// Module is a topic card of the home grid. Headings name the sections of the materials
// markdown file that make up the module, in reading order.
type Module struct {
	Slug        string   `yaml:"slug" json:"slug"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Icon        string   `yaml:"icon,omitempty" json:"icon,omitempty"`
	Color       string   `yaml:"color,omitempty" json:"color,omitempty"`
	Category    string   `yaml:"category" json:"category"`
	Enabled     bool     `yaml:"enabled" json:"enabled"`
	Headings    []string `yaml:"headings,omitempty" json:"headings,omitempty"`
}

const (
	headingFatheringIdentity = "Levels of Fathering Identity Development in Christians"
	headingLeadership        = "The Full Range Leadership Model"
	headingStewardship       = "Christian Financial Stewardship: A Developmental Model"
	headingStewardshipV2     = "Christian Financial Stewardship: A Developmental Model v2"
)

func DefaultModules() []Module {
	return []Module{
		{
			Slug:        "foundations-of-fatherhood",
			Title:       "Foundations of Fatherhood",
			Description: "Core principles of present, intentional fathering. Clarify your values and define your vision as a dad.",
			Icon:        "🧭",
			Color:       "#3B82F6",
			Category:    "Fatherhood",
			Enabled:     true,
			Headings:    []string{headingFatheringIdentity},
		},
		{
			Slug:        "navigating-career-changes",
			Title:       "Navigating Career Changes",
			Description: "Plan career transitions without sacrificing family connection. Map options, risks, and supports.",
			Icon:        "💼",
			Color:       "#10B981",
			Category:    "Career",
			Enabled:     true,
			Headings:    []string{headingLeadership},
		},
		{
			Slug:        "co-parenting-and-partnership",
			Title:       "Co-Parenting & Partnership",
			Description: "Improve communication, resolve conflict, and align on parenting approaches with your partner or co-parent.",
			Icon:        "🤝",
			Color:       "#F59E0B",
			Category:    "Relationships",
			Enabled:     true,
			Headings:    []string{headingFatheringIdentity},
		},
		{
			Slug:        "raising-toddlers-with-calm",
			Title:       "Raising Toddlers with Calm",
			Description: "Evidence-based strategies for boundaries, routines, and emotional co-regulation in early childhood.",
			Icon:        "🧸",
			Color:       "#EC4899",
			Category:    "Parenting",
			Enabled:     true,
			Headings:    []string{headingFatheringIdentity},
		},
		{
			Slug:        "connecting-with-teens",
			Title:       "Connecting with Teens",
			Description: "Build trust, set fair limits, and keep conversations open through the teen years.",
			Icon:        "🗣️",
			Color:       "#8B5CF6",
			Category:    "Parenting",
			Enabled:     true,
			Headings:    []string{headingFatheringIdentity},
		},
		{
			Slug:        "work-life-rhythm",
			Title:       "Work-Life Rhythm",
			Description: "Design weekly rhythms, rituals, and boundaries that protect family time and your energy.",
			Icon:        "📅",
			Color:       "#6366F1",
			Category:    "Balance",
			Enabled:     true,
			Headings:    []string{headingStewardshipV2},
		},
		{
			Slug:        "fathers-self-care",
			Title:       "Father's Self-Care",
			Description: "Sleep, stress, and fitness basics for sustainable presence at home and at work.",
			Icon:        "🧘",
			Color:       "#14B8A6",
			Category:    "Wellness",
			Enabled:     true,
			Headings:    []string{headingFatheringIdentity},
		},
		{
			Slug:        "family-finance-basics",
			Title:       "Family Finance Basics",
			Description: "Budgeting, emergency funds, and long-term planning with simple family-first frameworks.",
			Icon:        "💰",
			Color:       "#EF4444",
			Category:    "Finance",
			Enabled:     false,
			Headings:    []string{headingStewardship, headingStewardshipV2},
		},
		{
			Slug:        "mindful-discipline",
			Title:       "Mindful Discipline",
			Description: "Calm, consistent consequences that teach skills and preserve the relationship.",
			Icon:        "🧠",
			Color:       "#06B6D4",
			Category:    "Parenting",
			Enabled:     false,
			Headings:    []string{headingFatheringIdentity},
		},
	}
}

// ModuleView is one module page: the catalog entry when the slug is listed, the materials
// mapped to the slug and the extracted markdown.
type ModuleView struct {
	Slug      string
	Module    Module
	Listed    bool
	Materials []Item
	Content   string
}

func ValidateModules(modules []Module) error {
	seen := map[string]bool{}
	for _, m := range modules {
		if strings.TrimSpace(m.Slug) == "" {
			return fmt.Errorf("module slug is required")
		}
		if seen[m.Slug] {
			return fmt.Errorf("module %q listed twice", m.Slug)
		}
		seen[m.Slug] = true
	}
	return nil
}

func FindModule(modules []Module, slug string) (Module, bool) {
	for _, m := range modules {
		if m.Slug == slug {
			return m, true
		}
	}
	return Module{}, false
}

// FilterModules keeps catalog order. Categories compare case-insensitively and an empty
// category matches every module.
func FilterModules(modules []Module, category string, enabledOnly bool) []Module {
	out := make([]Module, 0, len(modules))
	for _, m := range modules {
		if category != "" && !strings.EqualFold(m.Category, category) {
			continue
		}
		if enabledOnly && !m.Enabled {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Categories lists the distinct module categories in first-seen order.
func Categories(modules []Module) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range modules {
		if m.Category == "" || seen[m.Category] {
			continue
		}
		seen[m.Category] = true
		out = append(out, m.Category)
	}
	return out
}
