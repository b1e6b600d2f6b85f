package dto

import "time"

type GoalOutput struct {
	Type        string `json:"type"`
	Target      int    `json:"target"`
	Current     int    `json:"current"`
	Description string `json:"description"`
}

type JourneyOutput struct {
	DurationDays int     `json:"duration_days"`
	Name         string  `json:"name,omitempty"`
	StartDate    string  `json:"start_date,omitempty"`
	EndDate      string  `json:"end_date,omitempty"`
	Completed    bool    `json:"completed"`
	Active       bool    `json:"active"`
	XPMultiplier float64 `json:"xp_multiplier"`
}

type StateOutput struct {
	UserID             string          `json:"user_id"`
	StreakCurrent      int             `json:"streak_current"`
	StreakLongest      int             `json:"streak_longest"`
	LastActiveDate     string          `json:"last_active_date,omitempty"`
	TotalSessions      int             `json:"total_sessions"`
	TotalMessages      int             `json:"total_messages"`
	Experience         int             `json:"experience"`
	Level              int             `json:"level"`
	XPToNextLevel      int             `json:"xp_to_next_level"`
	Badges             []string        `json:"badges"`
	Goal               GoalOutput      `json:"goal"`
	Journey            JourneyOutput   `json:"journey"`
	JourneyHistory     []JourneyOutput `json:"journey_history,omitempty"`
	StreakFreeze       int             `json:"streak_freeze"`
	StreakRecoveryUsed bool            `json:"streak_recovery_used"`
	RecoverableStreak  int             `json:"recoverable_streak"`
	Materials          []string        `json:"materials"`
	TotalXPEarned      int             `json:"total_xp_earned"`
	TotalXPSpent       int             `json:"total_xp_spent"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type OutcomeOutput struct {
	Kind    string `json:"kind"`
	Value   int    `json:"value,omitempty"`
	Badge   string `json:"badge,omitempty"`
	Message string `json:"message"`
}

// ChangeOutput is the state after an operation plus the outcomes it produced.
type ChangeOutput struct {
	State    StateOutput     `json:"state"`
	Outcomes []OutcomeOutput `json:"outcomes"`
}

type StartJourneyInput struct {
	Days int `json:"days"`
}

type PurchaseInput struct {
	MaterialID string `json:"material_id"`
}

type GoalInput struct {
	Type        string `json:"type"`
	Target      int    `json:"target"`
	Description string `json:"description"`
}

type JourneyOfferOutput struct {
	Days        int     `json:"days"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Multiplier  float64 `json:"multiplier"`
}

type MaterialOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Cost        int      `json:"cost"`
	PDF         string   `json:"pdf,omitempty"`
	Module      string   `json:"module,omitempty"`
	Headings    []string `json:"headings,omitempty"`
	Prompts     []string `json:"prompts,omitempty"`
}

type BadgeOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CatalogOutput struct {
	Journeys         []JourneyOfferOutput `json:"journeys"`
	Materials        []MaterialOutput     `json:"materials"`
	Badges           []BadgeOutput        `json:"badges"`
	StreakFreezeCost int                  `json:"streak_freeze_cost"`
}

type EventOutput struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Detail     string    `json:"detail,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	Experience int       `json:"experience"`
	Level      int       `json:"level"`
	Streak     int       `json:"streak"`
	At         time.Time `json:"at"`
}
