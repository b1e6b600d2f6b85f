package domain

import (
	"fmt"
	"strings"
	"time"
)

type OutcomeKind string

const (
	OutcomeBadgeEarned      OutcomeKind = "badge_earned"
	OutcomeStreakBroken     OutcomeKind = "streak_broken"
	OutcomeStreakMilestone  OutcomeKind = "streak_milestone"
	OutcomeStreakFrozen     OutcomeKind = "streak_frozen"
	OutcomeLevelUp          OutcomeKind = "level_up"
	OutcomeJourneyCompleted OutcomeKind = "journey_completed"
)

// Outcome is a notable result of an engine operation that callers may surface.
type Outcome struct {
	Kind  OutcomeKind `json:"kind"`
	Value int         `json:"value,omitempty"`
	Badge BadgeID     `json:"badge,omitempty"`
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeBadgeEarned:
		return fmt.Sprintf("Badge earned: %s", BadgeName(o.Badge))
	case OutcomeStreakBroken:
		return fmt.Sprintf("Your %d day streak was broken", o.Value)
	case OutcomeStreakMilestone:
		if o.Value == 1 {
			return "Streak started"
		}
		return fmt.Sprintf("%d day streak!", o.Value)
	case OutcomeStreakFrozen:
		return fmt.Sprintf("Streak freeze covered %d missed day(s)", o.Value)
	case OutcomeLevelUp:
		return fmt.Sprintf("Level up! You reached level %d", o.Value)
	case OutcomeJourneyCompleted:
		return fmt.Sprintf("Journey of %d days completed", o.Value)
	default:
		return string(o.Kind)
	}
}

type EventKind string

const (
	EventSession       EventKind = "session"
	EventMessage       EventKind = "message"
	EventDailyQuestion EventKind = "daily_question"
	EventJourney       EventKind = "journey"
	EventPurchase      EventKind = "purchase"
	EventFreeze        EventKind = "freeze"
	EventRecover       EventKind = "recover"
	EventGoal          EventKind = "goal"
)

// Event is one applied operation as recorded in the event log.
type Event struct {
	ID         string
	UserID     string
	Kind       EventKind
	Detail     string
	Outcomes   []Outcome
	Experience int
	Level      int
	Streak     int
	At         time.Time
}

func SummarizeOutcomes(outcomes []Outcome) string {
	parts := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		parts = append(parts, o.String())
	}
	return strings.Join(parts, "; ")
}
