package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "fathom/internal/platform/errors"
)

const SchemaVersion = 1

const (
	Greeting      = "Hello! I'm here to support you in your reflection journey. What's on your mind today?"
	FallbackReply = "I'm sorry, I'm having trouble responding right now. Please try again."
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ActiveChat is the conversation currently in progress.
type ActiveChat struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Messages  []Message `json:"messages"`
}

// Session is a closed conversation with its derived summary.
type Session struct {
	ID              string
	Messages        []Message
	StartedAt       time.Time
	EndedAt         time.Time
	Summary         string
	KeyInsights     []string
	MessageCount    int
	DurationMinutes int
	NotePath        string
}

// DurationMinutes rounds to the nearest minute and never goes negative.
func DurationMinutes(startedAt, endedAt time.Time) int {
	d := endedAt.Sub(startedAt)
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Minutes()))
}

// Close derives the summary and insights of a finished conversation.
func Close(id string, messages []Message, startedAt, endedAt time.Time) (Session, error) {
	if len(messages) == 0 {
		return Session{}, fmt.Errorf("%w: a chat session needs at least one message", apperrors.ErrInvalidInput)
	}
	if startedAt.IsZero() {
		startedAt = messages[0].Timestamp
	}
	if startedAt.IsZero() || startedAt.After(endedAt) {
		startedAt = endedAt
	}
	for idx, m := range messages {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			return Session{}, fmt.Errorf("%w: message %d has role %q", apperrors.ErrInvalidInput, idx, m.Role)
		}
	}
	return Session{
		ID:              id,
		Messages:        append([]Message(nil), messages...),
		StartedAt:       startedAt,
		EndedAt:         endedAt,
		Summary:         Summarize(messages),
		KeyInsights:     ExtractInsights(messages),
		MessageCount:    len(messages),
		DurationMinutes: DurationMinutes(startedAt, endedAt),
	}, nil
}

func userTexts(messages []Message) []string {
	var out []string
	for _, m := range messages {
		if m.Role == RoleUser && strings.TrimSpace(m.Content) != "" {
			out = append(out, m.Content)
		}
	}
	return out
}
