package domain

import (
	"fmt"
	"math"
	"strings"
)

const basisPoints = 10000

// Rules holds the experience constants of the engine.
type Rules struct {
	SessionXP         int   `yaml:"session_xp" json:"session_xp"`
	MessageXP         int   `yaml:"message_xp" json:"message_xp"`
	DailyQuestionXP   int   `yaml:"daily_question_xp" json:"daily_question_xp"`
	StreakBonusPct    int   `yaml:"streak_bonus_pct" json:"streak_bonus_pct"`
	StreakBonusCapPct int   `yaml:"streak_bonus_cap_pct" json:"streak_bonus_cap_pct"`
	Milestones        []int `yaml:"milestones" json:"milestones"`
}

type JourneyOffer struct {
	Days        int     `yaml:"days" json:"days"`
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Multiplier  float64 `yaml:"multiplier" json:"multiplier"`
}

// Material is a purchasable unlock. PDF names a file in the PDF directory, Module a section slug of the
// materials markdown file. Headings, when set, list the exact markdown headings of the module.
// Prompts are journaling prompts offered once the material is owned.
// A zero cost material is free and always open.
type Material struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Category    string   `yaml:"category" json:"category"`
	Cost        int      `yaml:"cost" json:"cost"`
	PDF         string   `yaml:"pdf,omitempty" json:"pdf,omitempty"`
	Module      string   `yaml:"module,omitempty" json:"module,omitempty"`
	Headings    []string `yaml:"headings,omitempty" json:"headings,omitempty"`
	Prompts     []string `yaml:"prompts,omitempty" json:"prompts,omitempty"`
}

type Catalog struct {
	Rules            Rules          `yaml:"rules" json:"rules"`
	Journeys         []JourneyOffer `yaml:"journeys" json:"journeys"`
	Materials        []Material     `yaml:"materials" json:"materials"`
	StreakFreezeCost int            `yaml:"streak_freeze_cost" json:"streak_freeze_cost"`
}

func DefaultRules() Rules {
	return Rules{
		SessionXP:         10,
		MessageXP:         5,
		DailyQuestionXP:   25,
		StreakBonusPct:    10,
		StreakBonusCapPct: 100,
		Milestones:        []int{1, 7, 30, 100},
	}
}

func DefaultCatalog() Catalog {
	return Catalog{
		Rules: DefaultRules(),
		Journeys: []JourneyOffer{
			{Days: 7, Name: "Week of Clarity", Description: "Seven days of steady reflection", Multiplier: 1.25},
			{Days: 14, Name: "Fortnight of Focus", Description: "Two weeks to build the habit", Multiplier: 1.5},
			{Days: 30, Name: "Month of Depth", Description: "A full month of daily practice", Multiplier: 2},
		},
		Materials: []Material{
			{
				ID: "getting-started", Name: "Getting Started", Description: "How reflection works here", Category: "guide", Cost: 0,
				Module: "foundations-of-fatherhood",
				Prompts: []string{
					"What kind of father do you want your children to remember?",
					"Which value did you live out at home today?",
				},
			},
			{
				ID: "mindfulness-basics", Name: "Mindfulness Basics", Description: "Short grounding exercises", Category: "module", Cost: 100,
				Module: "fathers-self-care",
				Prompts: []string{
					"Where did you notice tension in your body today?",
					"What helped you slow down before reacting?",
				},
			},
			{
				ID: "emotional-awareness", Name: "Emotional Awareness", Description: "Naming and sitting with feelings", Category: "module", Cost: 150,
				Module: "co-parenting-and-partnership",
				Prompts: []string{
					"Which feeling was hardest to name today, and what was underneath it?",
					"How did you and your partner handle a disagreement this week?",
				},
			},
			{
				ID: "gratitude-workbook", Name: "Gratitude Workbook", Description: "Printable gratitude practice", Category: "workbook", Cost: 200,
				PDF: "gratitude-workbook.pdf",
				Prompts: []string{
					"Name three small moments with your family you are grateful for.",
				},
			},
		},
		StreakFreezeCost: 50,
	}
}

func (c Catalog) Validate() error {
	r := c.Rules
	if r.SessionXP < 0 || r.MessageXP < 0 || r.DailyQuestionXP < 0 || r.StreakBonusPct < 0 || r.StreakBonusCapPct < 0 {
		return fmt.Errorf("catalog rules must not be negative")
	}
	seenDays := map[int]bool{}
	for _, j := range c.Journeys {
		if j.Days <= 0 {
			return fmt.Errorf("journey %q: days must be positive", j.Name)
		}
		if j.Multiplier < 1 {
			return fmt.Errorf("journey %q: multiplier must be at least 1.0", j.Name)
		}
		if seenDays[j.Days] {
			return fmt.Errorf("journey duration %d listed twice", j.Days)
		}
		seenDays[j.Days] = true
	}
	seenIDs := map[string]bool{}
	for _, m := range c.Materials {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("material id is required")
		}
		if m.Cost < 0 {
			return fmt.Errorf("material %q: cost must not be negative", m.ID)
		}
		if seenIDs[m.ID] {
			return fmt.Errorf("material %q listed twice", m.ID)
		}
		seenIDs[m.ID] = true
	}
	if c.StreakFreezeCost < 0 {
		return fmt.Errorf("streak freeze cost must not be negative")
	}
	return nil
}

func (c Catalog) Journey(days int) (JourneyOffer, bool) {
	for _, j := range c.Journeys {
		if j.Days == days {
			return j, true
		}
	}
	return JourneyOffer{}, false
}

func (c Catalog) Material(id string) (Material, bool) {
	for _, m := range c.Materials {
		if m.ID == id {
			return m, true
		}
	}
	return Material{}, false
}

func (r Rules) IsMilestone(streak int) bool {
	for _, m := range r.Milestones {
		if m == streak {
			return true
		}
	}
	return false
}

func multiplierBP(m float64) int {
	bp := int(math.Round(m * basisPoints))
	if bp < basisPoints {
		return basisPoints
	}
	return bp
}
