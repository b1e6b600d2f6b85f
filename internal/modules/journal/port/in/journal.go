package in

import (
	"context"

	"fathom/internal/modules/journal/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateEntryInput) (dto.CreateEntryOutput, error)
	List(ctx context.Context) ([]dto.EntryOutput, error)
	Get(ctx context.Context, id string) (dto.EntryOutput, error)
	Search(ctx context.Context, input dto.SearchInput) ([]dto.SearchHit, error)
	Reindex(ctx context.Context, input dto.ReindexInput) error
	Prompts(ctx context.Context, input dto.PromptsInput) (dto.PromptsOutput, error)
	Suggestions(ctx context.Context, input dto.SuggestionsInput) ([]string, error)
	TodayQuestion(ctx context.Context) (dto.QuestionOutput, error)
	AnswerQuestion(ctx context.Context, input dto.AnswerInput) (dto.AnswerOutput, error)
}
