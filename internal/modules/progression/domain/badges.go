package domain

import "sort"

const (
	BadgeFirstSteps       BadgeID = "first_steps"
	BadgeStreak3          BadgeID = "streak_3"
	BadgeStreak7          BadgeID = "streak_7"
	BadgeStreak14         BadgeID = "streak_14"
	BadgeStreak30         BadgeID = "streak_30"
	BadgeStreak100        BadgeID = "streak_100"
	BadgeWiseOwl          BadgeID = "wise_owl"
	BadgeReflectionMaster BadgeID = "reflection_master"
)

type BadgeRule struct {
	ID          BadgeID
	Name        string
	Description string
	earned      func(State) bool
}

var badgeRules = []BadgeRule{
	{ID: BadgeFirstSteps, Name: "First Steps", Description: "Completed a first session", earned: func(s State) bool { return s.TotalSessions >= 1 }},
	{ID: BadgeStreak3, Name: "Warming Up", Description: "3 day streak", earned: streakAtLeast(3)},
	{ID: BadgeStreak7, Name: "Week Strong", Description: "7 day streak", earned: streakAtLeast(7)},
	{ID: BadgeStreak14, Name: "Fortnight Flow", Description: "14 day streak", earned: streakAtLeast(14)},
	{ID: BadgeStreak30, Name: "Monthly Devotion", Description: "30 day streak", earned: streakAtLeast(30)},
	{ID: BadgeStreak100, Name: "Centurion", Description: "100 day streak", earned: streakAtLeast(100)},
	{ID: BadgeWiseOwl, Name: "Wise Owl", Description: "Reached level 5", earned: func(s State) bool { return s.Level >= 5 }},
	{ID: BadgeReflectionMaster, Name: "Reflection Master", Description: "Reached level 10", earned: func(s State) bool { return s.Level >= 10 }},
}

func streakAtLeast(n int) func(State) bool {
	return func(s State) bool { return s.StreakCurrent >= n }
}

// BadgeRules lists the badge table in award order.
func BadgeRules() []BadgeRule {
	return append([]BadgeRule{}, badgeRules...)
}

func BadgeName(id BadgeID) string {
	for _, r := range badgeRules {
		if r.ID == id {
			return r.Name
		}
	}
	return string(id)
}

// awardBadges unions newly earned badges into state. Existing badges are never removed.
func awardBadges(state *State) []Outcome {
	var outcomes []Outcome
	for _, rule := range badgeRules {
		if state.HasBadge(rule.ID) || !rule.earned(*state) {
			continue
		}
		state.Badges = append(state.Badges, rule.ID)
		outcomes = append(outcomes, Outcome{Kind: OutcomeBadgeEarned, Badge: rule.ID})
	}
	if len(outcomes) > 0 {
		sort.Slice(state.Badges, func(i, j int) bool { return state.Badges[i] < state.Badges[j] })
	}
	return outcomes
}
