package domain

import (
	"fmt"
	"sort"
	"time"

	apperrors "fathom/internal/platform/errors"
)

const (
	SchemaVersion = 1
	XPPerLevel    = 100
)

type BadgeID string

type GoalType string

const (
	GoalDaily   GoalType = "daily"
	GoalWeekly  GoalType = "weekly"
	GoalMonthly GoalType = "monthly"
)

func (g GoalType) Validate() error {
	switch g {
	case GoalDaily, GoalWeekly, GoalMonthly:
		return nil
	default:
		return fmt.Errorf("%w: unsupported goal type %q", apperrors.ErrInvalidGoal, string(g))
	}
}

type Goal struct {
	Type        GoalType `json:"type"`
	Target      int      `json:"target"`
	Current     int      `json:"current"`
	Description string   `json:"description"`
}

func (g Goal) Validate() error {
	if err := g.Type.Validate(); err != nil {
		return err
	}
	if g.Target <= 0 {
		return fmt.Errorf("%w: target must be positive", apperrors.ErrInvalidGoal)
	}
	return nil
}

func DefaultGoal() Goal {
	return Goal{Type: GoalDaily, Target: 1, Description: "Reflect once a day"}
}

type Journey struct {
	DurationDays int     `json:"duration_days"`
	Name         string  `json:"name,omitempty"`
	StartDate    string  `json:"start_date,omitempty"`
	EndDate      string  `json:"end_date,omitempty"`
	Completed    bool    `json:"completed"`
	XPMultiplier float64 `json:"xp_multiplier"`
}

// Active reports whether the journey multiplier currently applies.
func (j Journey) Active() bool {
	return j.DurationDays > 0 && !j.Completed
}

// State is the progression snapshot of one user. Level is derived from Experience by LevelFor.
type State struct {
	SchemaVersion      int       `json:"schema_version"`
	UserID             string    `json:"user_id"`
	StreakCurrent      int       `json:"streak_current"`
	StreakLongest      int       `json:"streak_longest"`
	LastActiveDate     string    `json:"last_active_date,omitempty"`
	TotalSessions      int       `json:"total_sessions"`
	TotalMessages      int       `json:"total_messages"`
	Experience         int       `json:"experience"`
	Level              int       `json:"level"`
	Badges             []BadgeID `json:"badges"`
	Goal               Goal      `json:"goal"`
	Journey            Journey   `json:"journey"`
	JourneyHistory     []Journey `json:"journey_history,omitempty"`
	StreakFreeze       int       `json:"streak_freeze"`
	StreakRecoveryUsed bool      `json:"streak_recovery_used"`
	RecoverableStreak  int       `json:"recoverable_streak"`
	Materials          []string  `json:"materials"`
	TotalXPEarned      int       `json:"total_xp_earned"`
	TotalXPSpent       int       `json:"total_xp_spent"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewState(userID string) State {
	return State{
		SchemaVersion: SchemaVersion,
		UserID:        userID,
		Level:         1,
		Badges:        []BadgeID{},
		Goal:          DefaultGoal(),
		Journey:       Journey{XPMultiplier: 1},
		Materials:     []string{},
	}
}

func LevelFor(experience int) int {
	if experience < 0 {
		experience = 0
	}
	return experience/XPPerLevel + 1
}

// XPToNextLevel is the experience still missing before the next level.
func (s State) XPToNextLevel() int {
	return LevelFor(s.Experience)*XPPerLevel - s.Experience
}

func (s State) HasBadge(id BadgeID) bool {
	for _, b := range s.Badges {
		if b == id {
			return true
		}
	}
	return false
}

func (s State) Owns(materialID string) bool {
	for _, m := range s.Materials {
		if m == materialID {
			return true
		}
	}
	return false
}

// Normalize repairs derived fields of a snapshot read from disk.
func (s State) Normalize() State {
	if s.SchemaVersion == 0 {
		s.SchemaVersion = SchemaVersion
	}
	if s.Experience < 0 {
		s.Experience = 0
	}
	s.Level = LevelFor(s.Experience)
	if s.StreakLongest < s.StreakCurrent {
		s.StreakLongest = s.StreakCurrent
	}
	if s.Goal.Type == "" {
		s.Goal = DefaultGoal()
	}
	if s.Journey.XPMultiplier < 1 {
		s.Journey.XPMultiplier = 1
	}
	if s.Badges == nil {
		s.Badges = []BadgeID{}
	}
	if s.Materials == nil {
		s.Materials = []string{}
	}
	sort.Slice(s.Badges, func(i, j int) bool { return s.Badges[i] < s.Badges[j] })
	return s
}

func (s State) clone() State {
	out := s
	out.Badges = append([]BadgeID{}, s.Badges...)
	out.Materials = append([]string{}, s.Materials...)
	if s.JourneyHistory != nil {
		out.JourneyHistory = append([]Journey{}, s.JourneyHistory...)
	}
	return out
}
