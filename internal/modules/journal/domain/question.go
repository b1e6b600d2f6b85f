package domain

import "time"

type DailyQuestion struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Date       string     `json:"date"`
	Answered   bool       `json:"answered"`
	Answer     string     `json:"answer,omitempty"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
}

var DefaultQuestionPool = []string{
	"What is one thing you are grateful for today?",
	"What challenged you today, and how did you respond?",
	"When did you feel most like yourself today?",
	"What is something you learned about yourself this week?",
	"Which emotion visited you most often today?",
	"What would you like to let go of?",
	"Who made a difference to your day, and how?",
	"What small win deserves a moment of recognition?",
	"What are you looking forward to tomorrow?",
	"If today had a title, what would it be?",
}

// QuestionForDay picks deterministically: dayOfMonth mod len(pool).
func QuestionForDay(dayOfMonth int, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	idx := dayOfMonth % len(pool)
	if idx < 0 {
		idx += len(pool)
	}
	return pool[idx]
}
