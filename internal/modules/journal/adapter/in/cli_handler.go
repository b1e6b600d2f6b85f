package in

import (
	"context"

	journaldto "fathom/internal/modules/journal/dto"
	journalin "fathom/internal/modules/journal/port/in"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Write(ctx context.Context, input journaldto.CreateEntryInput) (journaldto.CreateEntryOutput, error) {
	return h.usecase.Create(ctx, input)
}

func (h CLIHandler) List(ctx context.Context) ([]journaldto.EntryOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Show(ctx context.Context, id string) (journaldto.EntryOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Search(ctx context.Context, query string, limit int) ([]journaldto.SearchHit, error) {
	return h.usecase.Search(ctx, journaldto.SearchInput{Query: query, Limit: limit})
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx, journaldto.ReindexInput{})
}

func (h CLIHandler) Prompts(ctx context.Context, role, frequency string) (journaldto.PromptsOutput, error) {
	return h.usecase.Prompts(ctx, journaldto.PromptsInput{Role: role, Frequency: frequency})
}

func (h CLIHandler) Suggestions(ctx context.Context, content, role string) ([]string, error) {
	return h.usecase.Suggestions(ctx, journaldto.SuggestionsInput{Content: content, Role: role})
}

func (h CLIHandler) Question(ctx context.Context) (journaldto.QuestionOutput, error) {
	return h.usecase.TodayQuestion(ctx)
}

func (h CLIHandler) Answer(ctx context.Context, answer string) (journaldto.AnswerOutput, error) {
	return h.usecase.AnswerQuestion(ctx, journaldto.AnswerInput{Answer: answer})
}
