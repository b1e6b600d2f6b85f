package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"fathom/internal/modules/journal/domain"
	"fathom/internal/modules/journal/dto"
	journalin "fathom/internal/modules/journal/port/in"
	journalout "fathom/internal/modules/journal/port/out"
	"fathom/internal/modules/journal/service"
)

type Interactor struct {
	svc      *service.JournalService
	progress journalout.ProgressPort
	logger   *zap.Logger
}

func NewInteractor(svc *service.JournalService, progress journalout.ProgressPort, logger *zap.Logger) journalin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, progress: progress, logger: logger.With(zap.String("module", "journal"))}
}

// Create saves the entry and then credits a session. A progression failure does not undo the entry.
func (i *Interactor) Create(ctx context.Context, input dto.CreateEntryInput) (dto.CreateEntryOutput, error) {
	purpose, err := domain.ParsePurpose(input.Purpose)
	if err != nil {
		return dto.CreateEntryOutput{}, err
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return dto.CreateEntryOutput{}, err
	}
	entry, err := i.svc.Create(ctx, input.Title, input.Content, purpose, role)
	if err != nil {
		return dto.CreateEntryOutput{}, err
	}
	out := dto.CreateEntryOutput{ID: entry.ID, CreatedAt: entry.CreatedAt, NotePath: entry.NotePath}
	if i.progress != nil {
		outcomes, err := i.progress.RecordSession(ctx)
		if err != nil {
			i.logger.Warn("credit journal session", zap.String("entry", entry.ID), zap.Error(err))
		}
		out.Outcomes = outcomes
	}
	return out, nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.EntryOutput, error) {
	entries, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toEntryOutput(entry))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.EntryOutput, error) {
	entry, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return toEntryOutput(entry), nil
}

func (i *Interactor) Search(ctx context.Context, input dto.SearchInput) ([]dto.SearchHit, error) {
	entries, err := i.svc.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SearchHit, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.SearchHit{
			ID:      entry.ID,
			Title:   entry.DisplayTitle(),
			Date:    entry.Date,
			Snippet: snippet(entry.Content, input.Query),
			Created: entry.CreatedAt,
		})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context, _ dto.ReindexInput) error {
	return i.svc.Reindex(ctx)
}

// Prompts lists the role prompts followed by the prompts of owned materials. When progression
// cannot be read the role prompts are still returned.
func (i *Interactor) Prompts(ctx context.Context, input dto.PromptsInput) (dto.PromptsOutput, error) {
	role := domain.RoleForFrequency(input.Frequency)
	if strings.TrimSpace(input.Role) != "" {
		parsed, err := domain.ParseRole(input.Role)
		if err != nil {
			return dto.PromptsOutput{}, err
		}
		role = parsed
	}
	prompts := domain.PromptsForRole(role)
	if i.progress != nil {
		extra, err := i.progress.MaterialPrompts(ctx)
		if err != nil {
			i.logger.Warn("load material prompts", zap.Error(err))
		}
		prompts = domain.WithMaterialPrompts(prompts, extra)
	}
	out := dto.PromptsOutput{Role: string(role)}
	for _, p := range prompts {
		out.Prompts = append(out.Prompts, dto.PromptOutput{ID: p.ID, Text: p.Text, Difficulty: p.Difficulty, Material: p.Material})
	}
	return out, nil
}

func (i *Interactor) Suggestions(_ context.Context, input dto.SuggestionsInput) ([]string, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	return domain.Suggestions(input.Content, role), nil
}

func (i *Interactor) TodayQuestion(ctx context.Context) (dto.QuestionOutput, error) {
	question, err := i.svc.TodayQuestion(ctx)
	if err != nil {
		return dto.QuestionOutput{}, err
	}
	return toQuestionOutput(question), nil
}

// AnswerQuestion stores the answer and awards the daily question bonus for the current streak.
// When the bonus cannot be credited the answer is withdrawn, so resubmitting retries both.
func (i *Interactor) AnswerQuestion(ctx context.Context, input dto.AnswerInput) (dto.AnswerOutput, error) {
	question, err := i.svc.AnswerQuestion(ctx, input.Answer)
	if err != nil {
		return dto.AnswerOutput{}, err
	}
	out := dto.AnswerOutput{Question: toQuestionOutput(question)}
	if i.progress != nil {
		outcomes, err := i.progress.RecordDailyQuestion(ctx)
		if err != nil {
			if rerr := i.svc.ReopenQuestion(ctx, question); rerr != nil {
				i.logger.Error("reopen daily question", zap.String("date", question.Date), zap.Error(rerr))
			}
			return dto.AnswerOutput{}, err
		}
		out.Outcomes = outcomes
	}
	return out, nil
}

func toEntryOutput(entry domain.Entry) dto.EntryOutput {
	return dto.EntryOutput{
		ID:        entry.ID,
		Title:     entry.Title,
		Content:   entry.Content,
		Purpose:   string(entry.Purpose),
		Role:      string(entry.Role),
		Date:      entry.Date,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
		NotePath:  entry.NotePath,
	}
}

func toQuestionOutput(q domain.DailyQuestion) dto.QuestionOutput {
	return dto.QuestionOutput{ID: q.ID, Question: q.Question, Date: q.Date, Answered: q.Answered, Answer: q.Answer}
}

func snippet(content, query string) string {
	const radius = 40
	runes := []rune(content)
	idx := strings.Index(strings.ToLower(content), strings.ToLower(query))
	if idx < 0 {
		if len(runes) > 2*radius {
			return string(runes[:2*radius]) + "…"
		}
		return content
	}
	if idx > len(content) {
		idx = len(content)
	}
	start := len([]rune(content[:idx])) - radius
	if start < 0 {
		start = 0
	}
	end := start + 2*radius + len([]rune(query))
	if end > len(runes) {
		end = len(runes)
	}
	out := string(runes[start:end])
	if start > 0 {
		out = "…" + out
	}
	if end < len(runes) {
		out += "…"
	}
	return out
}
