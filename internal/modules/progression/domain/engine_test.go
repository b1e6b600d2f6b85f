package domain_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fathom/internal/modules/progression/domain"
	"fathom/internal/platform/clock"
	apperrors "fathom/internal/platform/errors"
)

func newEngine() domain.Engine {
	return domain.NewEngine(domain.DefaultCatalog(), clock.NewCalendar(time.UTC))
}

func day(d int) time.Time {
	return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func hasOutcome(outcomes []domain.Outcome, kind domain.OutcomeKind, value int) bool {
	for _, o := range outcomes {
		if o.Kind == kind && o.Value == value {
			return true
		}
	}
	return false
}

func TestStreakContinuationAndBreak(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state := domain.NewState("u1")

	state, outcomes := engine.NewSession(state, day(0))
	require.Equal(t, 1, state.StreakCurrent)
	assert.True(t, hasOutcome(outcomes, domain.OutcomeStreakMilestone, 1))

	state, _ = engine.NewSession(state, day(1))
	require.Equal(t, 2, state.StreakCurrent)

	state, outcomes = engine.NewSession(state, day(4))
	require.Equal(t, 1, state.StreakCurrent)
	assert.True(t, hasOutcome(outcomes, domain.OutcomeStreakBroken, 2), "expected StreakBroken(2), got %v", outcomes)
	assert.Equal(t, 2, state.StreakLongest)
	assert.Equal(t, 2, state.RecoverableStreak)
	assert.Equal(t, 3, state.TotalSessions)
	assert.Equal(t, "2026-03-05", state.LastActiveDate)
}

func TestSameDaySessionKeepsStreak(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state, _ := engine.NewSession(domain.NewState("u1"), day(0))
	state, outcomes := engine.NewSession(state, day(0).Add(3*time.Hour))
	if state.StreakCurrent != 1 {
		t.Fatalf("expected streak to stay 1, got %d", state.StreakCurrent)
	}
	if state.TotalSessions != 2 || state.Goal.Current != 2 {
		t.Fatalf("expected counters to advance, got sessions=%d goal=%d", state.TotalSessions, state.Goal.Current)
	}
	if hasOutcome(outcomes, domain.OutcomeStreakMilestone, 1) {
		t.Fatalf("milestone must not repeat for an unchanged streak")
	}
}

func TestSessionDateUsesCalendarTimezone(t *testing.T) {
	t.Parallel()
	loc, err := time.LoadLocation("Asia/Singapore")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	engine := domain.NewEngine(domain.DefaultCatalog(), clock.NewCalendar(loc))
	state, _ := engine.NewSession(domain.NewState("u1"), time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC))
	if state.LastActiveDate != "2026-03-01" {
		t.Fatalf("expected 2026-03-01, got %s", state.LastActiveDate)
	}
	// 17:00 UTC is already the next day in Singapore.
	state, _ = engine.NewSession(state, time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC))
	if state.StreakCurrent != 2 || state.LastActiveDate != "2026-03-02" {
		t.Fatalf("expected streak 2 on 2026-03-02, got %d on %s", state.StreakCurrent, state.LastActiveDate)
	}
}

func TestStreakFreezeCoversMissedDays(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state, _ := engine.NewSession(domain.NewState("u1"), day(0))
	state, _ = engine.NewSession(state, day(1))
	state.StreakFreeze = 2

	state, outcomes := engine.NewSession(state, day(4))
	require.Equal(t, 3, state.StreakCurrent)
	require.Equal(t, 0, state.StreakFreeze)
	assert.True(t, hasOutcome(outcomes, domain.OutcomeStreakFrozen, 2))
	assert.False(t, hasOutcome(outcomes, domain.OutcomeStreakBroken, 2))

	state.StreakFreeze = 1
	state, outcomes = engine.NewSession(state, day(8))
	require.Equal(t, 1, state.StreakCurrent, "one freeze cannot cover three missed days")
	require.Equal(t, 1, state.StreakFreeze)
	assert.True(t, hasOutcome(outcomes, domain.OutcomeStreakBroken, 3))
}

func TestDailyQuestionBonusIsCapped(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	cases := []struct {
		streak int
		want   int
	}{
		{streak: 0, want: 25},
		{streak: 4, want: 35},
		{streak: 10, want: 50},
		{streak: 45, want: 50},
		{streak: -3, want: 25},
	}
	for _, tc := range cases {
		next, _ := engine.DailyQuestionAnswered(domain.NewState("u1"), tc.streak, day(0))
		if next.Experience != tc.want {
			t.Fatalf("streak %d: expected %d xp, got %d", tc.streak, tc.want, next.Experience)
		}
	}
}

func TestJourneyMultiplierScalesExperience(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state, err := engine.StartJourney(domain.NewState("u1"), 14, day(0))
	require.NoError(t, err)
	require.InDelta(t, 1.5, state.Journey.XPMultiplier, 1e-9)
	assert.Equal(t, "2026-03-01", state.Journey.StartDate)
	assert.Equal(t, "2026-03-15", state.Journey.EndDate)

	next, _ := engine.ApplyExperience(state, 10, day(1))
	assert.Equal(t, 15, next.Experience-state.Experience)
	assert.Equal(t, 15, next.TotalXPEarned)

	if _, err := engine.StartJourney(state, 9, day(0)); !errors.Is(err, apperrors.ErrInvalidDuration) {
		t.Fatalf("expected invalid duration, got %v", err)
	}
}

func TestJourneyReplacementKeepsHistoryAndCompletes(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state, err := engine.StartJourney(domain.NewState("u1"), 7, day(0))
	require.NoError(t, err)
	state, err = engine.StartJourney(state, 30, day(1))
	require.NoError(t, err)
	require.Len(t, state.JourneyHistory, 1)
	assert.Equal(t, 7, state.JourneyHistory[0].DurationDays)
	assert.Equal(t, 30, state.Journey.DurationDays)

	state, outcomes := engine.NewSession(state, day(31))
	assert.True(t, state.Journey.Completed)
	assert.True(t, hasOutcome(outcomes, domain.OutcomeJourneyCompleted, 30))
	// the completed journey no longer multiplies the session award
	assert.Equal(t, 10, state.Experience)
}

func TestPurchaseMaterialGuards(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state := domain.NewState("u1")
	state.Experience = 250
	state.Level = domain.LevelFor(250)

	if _, err := engine.PurchaseMaterial(state, "nope"); !errors.Is(err, apperrors.ErrUnknownMaterial) {
		t.Fatalf("expected unknown material, got %v", err)
	}
	bought, err := engine.PurchaseMaterial(state, "gratitude-workbook")
	require.NoError(t, err)
	assert.Equal(t, 50, bought.Experience)
	assert.Equal(t, 1, bought.Level)
	assert.Equal(t, 200, bought.TotalXPSpent)
	assert.True(t, bought.Owns("gratitude-workbook"))
	assert.False(t, state.Owns("gratitude-workbook"), "input state must not be modified")

	again, err := engine.PurchaseMaterial(bought, "gratitude-workbook")
	require.ErrorIs(t, err, apperrors.ErrAlreadyOwned)
	assert.Equal(t, bought.Experience, again.Experience)
	assert.Equal(t, bought.TotalXPSpent, again.TotalXPSpent)

	if _, err := engine.PurchaseMaterial(bought, "emotional-awareness"); !errors.Is(err, apperrors.ErrInsufficientXP) {
		t.Fatalf("expected insufficient xp, got %v", err)
	}
}

func TestAlreadyOwnedIsCheckedBeforeFunds(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state := domain.NewState("u1")
	state.Materials = []string{"mindfulness-basics"}
	if _, err := engine.PurchaseMaterial(state, "mindfulness-basics"); !errors.Is(err, apperrors.ErrAlreadyOwned) {
		t.Fatalf("expected already owned with zero xp, got %v", err)
	}
}

func TestStreakFreezePurchase(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state := domain.NewState("u1")
	if _, err := engine.PurchaseStreakFreeze(state); !errors.Is(err, apperrors.ErrInsufficientXP) {
		t.Fatalf("expected insufficient xp, got %v", err)
	}
	state.Experience = 60
	next, err := engine.PurchaseStreakFreeze(state)
	require.NoError(t, err)
	assert.Equal(t, 1, next.StreakFreeze)
	assert.Equal(t, 10, next.Experience)
	assert.Equal(t, 50, next.TotalXPSpent)
}

func TestRecoverStreakRestoresCapturedValueOnce(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state := domain.NewState("u1")
	if _, _, err := engine.RecoverStreak(state); !errors.Is(err, apperrors.ErrRecoveryUnavailable) {
		t.Fatalf("expected recovery unavailable on fresh state, got %v", err)
	}
	for d := 0; d < 5; d++ {
		state, _ = engine.NewSession(state, day(d))
	}
	state, _ = engine.NewSession(state, day(10))
	require.Equal(t, 1, state.StreakCurrent)

	recovered, _, err := engine.RecoverStreak(state)
	require.NoError(t, err)
	assert.Equal(t, 5, recovered.StreakCurrent)
	assert.True(t, recovered.StreakRecoveryUsed)
	assert.True(t, recovered.HasBadge(domain.BadgeStreak3))

	recovered, _ = engine.NewSession(recovered, day(11))
	assert.Equal(t, 6, recovered.StreakCurrent)

	if _, _, err := engine.RecoverStreak(recovered); !errors.Is(err, apperrors.ErrRecoveryUnavailable) {
		t.Fatalf("expected second recovery to fail, got %v", err)
	}
}

func TestSetGoalValidates(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state, _ := engine.NewSession(domain.NewState("u1"), day(0))
	if _, err := engine.SetGoal(state, domain.Goal{Type: "yearly", Target: 3}); !errors.Is(err, apperrors.ErrInvalidGoal) {
		t.Fatalf("expected invalid goal for type, got %v", err)
	}
	if _, err := engine.SetGoal(state, domain.Goal{Type: domain.GoalWeekly, Target: 0}); !errors.Is(err, apperrors.ErrInvalidGoal) {
		t.Fatalf("expected invalid goal for target, got %v", err)
	}
	next, err := engine.SetGoal(state, domain.Goal{Type: domain.GoalWeekly, Target: 5, Current: 9, Description: "five a week"})
	require.NoError(t, err)
	assert.Equal(t, domain.Goal{Type: domain.GoalWeekly, Target: 5, Current: 0, Description: "five a week"}, next.Goal)
}

func TestLevelUpAndBadges(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state, outcomes := engine.NewSession(domain.NewState("u1"), day(0))
	assert.True(t, state.HasBadge(domain.BadgeFirstSteps))
	assert.Contains(t, outcomes, domain.Outcome{Kind: domain.OutcomeBadgeEarned, Badge: domain.BadgeFirstSteps})

	state, outcomes = engine.ApplyExperience(state, 400, day(0))
	assert.Equal(t, 5, state.Level)
	assert.Contains(t, outcomes, domain.Outcome{Kind: domain.OutcomeLevelUp, Value: 5})
	assert.True(t, state.HasBadge(domain.BadgeWiseOwl))

	spent, err := engine.PurchaseMaterial(state, "emotional-awareness")
	require.NoError(t, err)
	assert.Equal(t, 3, spent.Level)
	assert.True(t, spent.HasBadge(domain.BadgeWiseOwl), "badges survive spending")
}

func TestInvariantsHoldOverRandomSequences(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	rng := rand.New(rand.NewSource(42))
	materials := []string{"getting-started", "mindfulness-basics", "emotional-awareness", "gratitude-workbook", "unknown"}

	for run := 0; run < 50; run++ {
		state := domain.NewState("u1")
		offset := 0
		for step := 0; step < 200; step++ {
			prevBadges := append([]domain.BadgeID{}, state.Badges...)
			switch rng.Intn(8) {
			case 0, 1:
				offset += rng.Intn(4)
				state, _ = engine.NewSession(state, day(offset))
			case 2:
				state, _ = engine.MessageSent(state, day(offset))
			case 3:
				state, _ = engine.DailyQuestionAnswered(state, state.StreakCurrent, day(offset))
			case 4:
				if next, err := engine.StartJourney(state, []int{7, 14, 30, 3}[rng.Intn(4)], day(offset)); err == nil {
					state = next
				}
			case 5:
				if next, err := engine.PurchaseMaterial(state, materials[rng.Intn(len(materials))]); err == nil {
					state = next
				}
			case 6:
				if next, err := engine.PurchaseStreakFreeze(state); err == nil {
					state = next
				}
			case 7:
				if next, _, err := engine.RecoverStreak(state); err == nil {
					state = next
				}
			}
			if state.StreakLongest < state.StreakCurrent {
				t.Fatalf("run %d step %d: longest %d < current %d", run, step, state.StreakLongest, state.StreakCurrent)
			}
			if state.Level != state.Experience/100+1 {
				t.Fatalf("run %d step %d: level %d does not match experience %d", run, step, state.Level, state.Experience)
			}
			if state.Experience < 0 {
				t.Fatalf("run %d step %d: negative experience", run, step)
			}
			for _, b := range prevBadges {
				if !state.HasBadge(b) {
					t.Fatalf("run %d step %d: badge %s was removed", run, step, b)
				}
			}
		}
	}
}

func TestStreakRestartFromOneEmitsMilestone(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state, _ := engine.NewSession(domain.NewState("u1"), day(0))
	require.Equal(t, 1, state.StreakCurrent)

	state, outcomes := engine.NewSession(state, day(3))
	require.Equal(t, 1, state.StreakCurrent)
	assert.True(t, hasOutcome(outcomes, domain.OutcomeStreakBroken, 1))
	assert.True(t, hasOutcome(outcomes, domain.OutcomeStreakMilestone, 1), "a restarted streak is a new streak: %v", outcomes)
}

func TestSameDayLeavesStreakUntouched(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state := domain.NewState("u1")
	state.LastActiveDate = "2026-03-01"

	next, outcomes := engine.NewSession(state, day(0))
	assert.Equal(t, 0, next.StreakCurrent)
	assert.Equal(t, 1, next.TotalSessions)
	assert.False(t, hasOutcome(outcomes, domain.OutcomeStreakMilestone, 1))
}

func TestExpiredJourneyStopsMultiplying(t *testing.T) {
	t.Parallel()
	engine := newEngine()
	state, err := engine.StartJourney(domain.NewState("u1"), 14, day(0))
	require.NoError(t, err)

	during, _ := engine.MessageSent(state, day(13))
	assert.Equal(t, 7, during.Experience, "5 XP under a 1.5x journey")
	assert.False(t, during.Journey.Completed)

	after, outcomes := engine.MessageSent(state, day(14))
	assert.Equal(t, 5, after.Experience)
	assert.True(t, after.Journey.Completed)
	assert.True(t, hasOutcome(outcomes, domain.OutcomeJourneyCompleted, 14))

	answered, _ := engine.DailyQuestionAnswered(state, 0, day(20))
	assert.Equal(t, 25, answered.Experience)
	assert.True(t, answered.Journey.Completed)

	again, outcomes := engine.MessageSent(after, day(15))
	assert.Equal(t, 10, again.Experience)
	assert.False(t, hasOutcome(outcomes, domain.OutcomeJourneyCompleted, 14), "completion is reported once")
}
