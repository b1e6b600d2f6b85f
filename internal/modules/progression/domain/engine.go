package domain

import (
	"fmt"
	"time"

	"fathom/internal/platform/clock"
	apperrors "fathom/internal/platform/errors"
)

// Engine applies progression events to a snapshot. Every method is a pure function of its
// arguments: the input state is never modified and no I/O happens here.
type Engine struct {
	catalog  Catalog
	calendar clock.Calendar
}

func NewEngine(catalog Catalog, calendar clock.Calendar) Engine {
	return Engine{catalog: catalog, calendar: calendar}
}

func (e Engine) Catalog() Catalog { return e.catalog }

func (e Engine) Today(now time.Time) string { return e.calendar.Date(now) }

// NewSession records one qualifying session on the civil date of now.
func (e Engine) NewSession(prev State, now time.Time) (State, []Outcome) {
	next := prev.clone()
	today := e.calendar.Date(now)
	previous := prev.StreakCurrent
	var outcomes []Outcome
	restarted := false

	delta, known := daysSince(prev.LastActiveDate, today)
	switch {
	case !known:
		next.StreakCurrent = 1
	case delta <= 0:
		// same day, or a clock that moved backwards: once per day
	case delta == 1:
		next.StreakCurrent++
	default:
		missed := delta - 1
		if previous > 0 && next.StreakFreeze >= missed {
			next.StreakFreeze -= missed
			next.StreakCurrent++
			outcomes = append(outcomes, Outcome{Kind: OutcomeStreakFrozen, Value: missed})
			break
		}
		if previous > 0 {
			next.RecoverableStreak = previous
			outcomes = append(outcomes, Outcome{Kind: OutcomeStreakBroken, Value: previous})
		}
		next.StreakCurrent = 1
		restarted = true
	}
	if next.StreakCurrent > next.StreakLongest {
		next.StreakLongest = next.StreakCurrent
	}
	next.TotalSessions++
	next.LastActiveDate = today
	next.Goal.Current++

	outcomes = append(outcomes, expireJourney(&next, today)...)
	outcomes = append(outcomes, e.applyExperience(&next, e.catalog.Rules.SessionXP)...)
	outcomes = append(outcomes, awardBadges(&next)...)

	changed := !known || restarted || next.StreakCurrent != previous
	if changed && e.catalog.Rules.IsMilestone(next.StreakCurrent) {
		outcomes = append(outcomes, Outcome{Kind: OutcomeStreakMilestone, Value: next.StreakCurrent})
	}
	return next, outcomes
}

// ApplyExperience awards raw experience, scaled by the journey multiplier while the
// journey is still running on the civil date of now.
func (e Engine) ApplyExperience(prev State, raw int, now time.Time) (State, []Outcome) {
	next := prev.clone()
	outcomes := expireJourney(&next, e.calendar.Date(now))
	outcomes = append(outcomes, e.applyExperience(&next, raw)...)
	outcomes = append(outcomes, awardBadges(&next)...)
	return next, outcomes
}

func (e Engine) MessageSent(prev State, now time.Time) (State, []Outcome) {
	next := prev.clone()
	next.TotalMessages++
	outcomes := expireJourney(&next, e.calendar.Date(now))
	outcomes = append(outcomes, e.applyExperience(&next, e.catalog.Rules.MessageXP)...)
	outcomes = append(outcomes, awardBadges(&next)...)
	return next, outcomes
}

// DailyQuestionAnswered awards the daily question bonus for the streak held at answer time.
func (e Engine) DailyQuestionAnswered(prev State, streakAtAnswer int, now time.Time) (State, []Outcome) {
	next := prev.clone()
	outcomes := expireJourney(&next, e.calendar.Date(now))
	outcomes = append(outcomes, e.applyExperience(&next, e.DailyQuestionXP(streakAtAnswer))...)
	outcomes = append(outcomes, awardBadges(&next)...)
	return next, outcomes
}

// expireJourney completes a running journey once today reaches its end date.
// It runs before every award so the multiplier never outlives the journey.
func expireJourney(state *State, today string) []Outcome {
	j := state.Journey
	if !j.Active() || j.EndDate == "" || j.EndDate > today {
		return nil
	}
	state.Journey.Completed = true
	return []Outcome{{Kind: OutcomeJourneyCompleted, Value: j.DurationDays}}
}

// DailyQuestionXP is the raw award before any journey multiplier.
func (e Engine) DailyQuestionXP(streak int) int {
	if streak < 0 {
		streak = 0
	}
	rules := e.catalog.Rules
	bonus := streak * rules.StreakBonusPct
	if bonus > rules.StreakBonusCapPct {
		bonus = rules.StreakBonusCapPct
	}
	return rules.DailyQuestionXP * (100 + bonus) / 100
}

func (e Engine) StartJourney(prev State, days int, now time.Time) (State, error) {
	offer, ok := e.catalog.Journey(days)
	if !ok {
		return prev, fmt.Errorf("%w: no %d day journey offered", apperrors.ErrInvalidDuration, days)
	}
	next := prev.clone()
	start := e.calendar.Date(now)
	end, err := clock.AddDays(start, days)
	if err != nil {
		return prev, err
	}
	if prev.Journey.DurationDays > 0 {
		next.JourneyHistory = append(next.JourneyHistory, prev.Journey)
	}
	next.Journey = Journey{
		DurationDays: days,
		Name:         offer.Name,
		StartDate:    start,
		EndDate:      end,
		XPMultiplier: offer.Multiplier,
	}
	return next, nil
}

func (e Engine) PurchaseMaterial(prev State, materialID string) (State, error) {
	material, ok := e.catalog.Material(materialID)
	if !ok {
		return prev, fmt.Errorf("%w: %q", apperrors.ErrUnknownMaterial, materialID)
	}
	if prev.Owns(materialID) {
		return prev, fmt.Errorf("%w: %q", apperrors.ErrAlreadyOwned, materialID)
	}
	next, err := spend(prev, material.Cost)
	if err != nil {
		return prev, err
	}
	next.Materials = append(next.Materials, materialID)
	return next, nil
}

func (e Engine) PurchaseStreakFreeze(prev State) (State, error) {
	next, err := spend(prev, e.catalog.StreakFreezeCost)
	if err != nil {
		return prev, err
	}
	next.StreakFreeze++
	return next, nil
}

// RecoverStreak restores the streak captured at the last reset. It can be used once.
func (e Engine) RecoverStreak(prev State) (State, []Outcome, error) {
	if prev.StreakRecoveryUsed {
		return prev, nil, fmt.Errorf("%w: already used", apperrors.ErrRecoveryUnavailable)
	}
	if prev.RecoverableStreak <= 0 {
		return prev, nil, fmt.Errorf("%w: no broken streak to recover", apperrors.ErrRecoveryUnavailable)
	}
	next := prev.clone()
	if next.RecoverableStreak > next.StreakCurrent {
		next.StreakCurrent = next.RecoverableStreak
	}
	next.RecoverableStreak = 0
	next.StreakRecoveryUsed = true
	if next.StreakCurrent > next.StreakLongest {
		next.StreakLongest = next.StreakCurrent
	}
	return next, awardBadges(&next), nil
}

func (e Engine) SetGoal(prev State, goal Goal) (State, error) {
	if err := goal.Validate(); err != nil {
		return prev, err
	}
	next := prev.clone()
	goal.Current = 0
	next.Goal = goal
	return next, nil
}

func (e Engine) applyExperience(state *State, raw int) []Outcome {
	if raw <= 0 {
		return nil
	}
	bp := basisPoints
	if state.Journey.Active() {
		bp = multiplierBP(state.Journey.XPMultiplier)
	}
	effective := raw * bp / basisPoints
	before := LevelFor(state.Experience)
	state.Experience += effective
	state.TotalXPEarned += effective
	state.Level = LevelFor(state.Experience)
	if state.Level > before {
		return []Outcome{{Kind: OutcomeLevelUp, Value: state.Level}}
	}
	return nil
}

func spend(prev State, cost int) (State, error) {
	if prev.Experience < cost {
		return prev, fmt.Errorf("%w: need %d, have %d", apperrors.ErrInsufficientXP, cost, prev.Experience)
	}
	next := prev.clone()
	next.Experience -= cost
	next.TotalXPSpent += cost
	next.Level = LevelFor(next.Experience)
	return next, nil
}

func daysSince(last, today string) (int, bool) {
	if last == "" {
		return 0, false
	}
	delta, err := clock.DaysBetween(last, today)
	if err != nil {
		return 0, false
	}
	return delta, true
}
