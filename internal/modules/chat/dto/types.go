package dto

import "time"

type MessageDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ReplyInput mirrors the body of POST /api/ai-chat.
type ReplyInput struct {
	Message             string       `json:"message"`
	LoadJournalContext  bool         `json:"loadJournalContext,omitempty"`
	ConversationHistory []MessageDTO `json:"conversationHistory,omitempty"`
}

type ReplyOutput struct {
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
	Outcomes  []string  `json:"outcomes,omitempty"`
}

type StartOutput struct {
	ID        string     `json:"id"`
	StartedAt time.Time  `json:"startedAt"`
	Greeting  MessageDTO `json:"greeting"`
	Outcomes  []string   `json:"outcomes,omitempty"`
}

type SendInput struct {
	Text string `json:"text"`
}

type SendOutput struct {
	Reply    MessageDTO `json:"reply"`
	Outcomes []string   `json:"outcomes,omitempty"`
}

type ActiveOutput struct {
	ID        string       `json:"id"`
	StartedAt time.Time    `json:"startedAt"`
	Messages  []MessageDTO `json:"messages"`
}

// CloseInput mirrors the body of POST /api/chat-sessions.
type CloseInput struct {
	Messages  []MessageDTO `json:"messages"`
	StartedAt time.Time    `json:"startedAt"`
}

type SessionOutput struct {
	ID              string       `json:"id"`
	Messages        []MessageDTO `json:"messages,omitempty"`
	StartedAt       time.Time    `json:"startedAt"`
	EndedAt         time.Time    `json:"endedAt"`
	Summary         string       `json:"summary"`
	KeyInsights     []string     `json:"keyInsights"`
	MessageCount    int          `json:"messageCount"`
	DurationMinutes int          `json:"durationMinutes"`
	NotePath        string       `json:"-"`
}

type CloseOutput struct {
	Session  SessionOutput `json:"session"`
	Outcomes []string      `json:"outcomes,omitempty"`
}
