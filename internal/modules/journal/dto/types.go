package dto

import "time"

type CreateEntryInput struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
	Purpose string `json:"purpose,omitempty"`
	Role    string `json:"role,omitempty"`
}

type CreateEntryOutput struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	NotePath  string    `json:"-"`
	Outcomes  []string  `json:"outcomes,omitempty"`
}

type EntryOutput struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	Purpose   string    `json:"purpose"`
	Role      string    `json:"role"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	NotePath  string    `json:"-"`
}

type ReindexInput struct{}

type SearchInput struct {
	Query string
	Limit int
}

type SearchHit struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Date    string    `json:"date"`
	Snippet string    `json:"snippet"`
	Created time.Time `json:"createdAt"`
}

type PromptsInput struct {
	Role      string
	Frequency string
}

type PromptOutput struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Difficulty string `json:"difficulty,omitempty"`
	Material   string `json:"material,omitempty"`
}

type PromptsOutput struct {
	Role    string         `json:"role"`
	Prompts []PromptOutput `json:"prompts"`
}

type SuggestionsInput struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

type QuestionOutput struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Date     string `json:"date"`
	Answered bool   `json:"answered"`
	Answer   string `json:"answer,omitempty"`
}

type AnswerInput struct {
	Answer string `json:"answer"`
}

type AnswerOutput struct {
	Question QuestionOutput `json:"question"`
	Outcomes []string       `json:"outcomes,omitempty"`
}
