package domain

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fathom/internal/platform/errors"
)

func TestClassifyFirstMatchWins(t *testing.T) {
	t.Parallel()
	cases := map[string]Category{
		"I feel so sad and anxious today":      CategorySad,
		"Work has me stressed and angry":       CategoryAnxious,
		"I'm FURIOUS but also happy it's over": CategoryAngry,
		"Such a wonderful walk":                CategoryHappy,
		"I don't know what to do next":         CategoryConfused,
		"Just had lunch":                       CategoryGeneral,
		"The crusade of the mad hatter":        CategoryAngry,
		"":                                     CategoryGeneral,
	}
	for text, want := range cases {
		if got := Classify(text); got != want {
			t.Fatalf("Classify(%q) = %s, want %s", text, got, want)
		}
	}
}

func TestCannedResponderIsDeterministicWithSeed(t *testing.T) {
	t.Parallel()
	a := NewCannedResponder(rand.New(rand.NewPCG(7, 11)))
	b := NewCannedResponder(rand.New(rand.NewPCG(7, 11)))
	for i := 0; i < 20; i++ {
		got := a.Respond(CategoryAnxious)
		require.Equal(t, got, b.Respond(CategoryAnxious))
		assert.Contains(t, Templates(CategoryAnxious), got)
	}
	assert.Contains(t, Templates(CategoryGeneral), a.Respond(Category("unknown")))
}

func TestDurationMinutes(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DurationMinutes(start, start.Add(29*time.Second)))
	assert.Equal(t, 1, DurationMinutes(start, start.Add(30*time.Second)))
	assert.Equal(t, 12, DurationMinutes(start, start.Add(12*time.Minute+10*time.Second)))
	assert.Equal(t, 0, DurationMinutes(start, start.Add(-5*time.Minute)))
}

func TestCloseDerivesSummaryAndInsights(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	messages := []Message{
		{Role: RoleAssistant, Content: Greeting, Timestamp: start},
		{Role: RoleUser, Content: "Work was a lot today. I feel exhausted. I want to rest this weekend.", Timestamp: start.Add(time.Minute)},
		{Role: RoleAssistant, Content: "Tell me more", Timestamp: start.Add(time.Minute)},
		{Role: RoleUser, Content: "I'm grateful for my friend who listened.", Timestamp: start.Add(2 * time.Minute)},
	}
	session, err := Close("s1", messages, start, start.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 4, session.MessageCount)
	assert.Equal(t, 5, session.DurationMinutes)
	assert.Contains(t, session.Summary, "work and responsibilities")
	assert.Contains(t, session.Summary, "relationships")
	assert.Contains(t, session.Summary, "2 messages")
	assert.Equal(t, []string{
		"You described feeling exhausted",
		"You want to rest this weekend",
		"You are grateful for my friend who listened",
	}, session.KeyInsights)
}

func TestCloseRejectsEmptyConversation(t *testing.T) {
	t.Parallel()
	_, err := Close("s1", nil, time.Now(), time.Now())
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	_, err = Close("s1", []Message{{Role: "system", Content: "x"}}, time.Now(), time.Now())
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown role, got %v", err)
	}
}

func TestExtractInsightsCapAndFiller(t *testing.T) {
	t.Parallel()
	filler := ExtractInsights([]Message{{Role: RoleUser, Content: "Nothing much."}})
	assert.Equal(t, fillerInsights, filler)

	var lines []string
	for _, w := range []string{"calm", "tired", "hopeful", "restless", "proud", "curious", "light"} {
		lines = append(lines, "I feel "+w+".")
	}
	lines = append(lines, "I feel calm.")
	got := ExtractInsights([]Message{{Role: RoleUser, Content: strings.Join(lines, " ")}})
	require.Len(t, got, MaxInsights)
	assert.Equal(t, "You described feeling calm", got[0])
}
