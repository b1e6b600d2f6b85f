package in_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	journalin "fathom/internal/modules/journal/adapter/in"
	"fathom/internal/modules/journal/dto"
	apperrors "fathom/internal/platform/errors"
)

type fakeJournal struct {
	created  []dto.CreateEntryInput
	answered bool
}

func (f *fakeJournal) Create(_ context.Context, input dto.CreateEntryInput) (dto.CreateEntryOutput, error) {
	if len(strings.TrimSpace(input.Content)) < 10 {
		return dto.CreateEntryOutput{}, fmt.Errorf("%w: need at least 10 characters", apperrors.ErrContentTooShort)
	}
	f.created = append(f.created, input)
	return dto.CreateEntryOutput{ID: "e1", CreatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), NotePath: "/vault/journal/e1.md"}, nil
}
func (f *fakeJournal) List(context.Context) ([]dto.EntryOutput, error) { return nil, nil }
func (f *fakeJournal) Get(_ context.Context, id string) (dto.EntryOutput, error) {
	if id != "e1" {
		return dto.EntryOutput{}, apperrors.ErrNotFound
	}
	return dto.EntryOutput{ID: "e1", Content: "Some saved content"}, nil
}
func (f *fakeJournal) Search(_ context.Context, input dto.SearchInput) ([]dto.SearchHit, error) {
	return []dto.SearchHit{{ID: "e1", Snippet: input.Query}}, nil
}
func (f *fakeJournal) Reindex(context.Context, dto.ReindexInput) error { return nil }
func (f *fakeJournal) Prompts(_ context.Context, input dto.PromptsInput) (dto.PromptsOutput, error) {
	return dto.PromptsOutput{Role: input.Frequency}, nil
}
func (f *fakeJournal) Suggestions(context.Context, dto.SuggestionsInput) ([]string, error) {
	return []string{"What emotions did you experience?"}, nil
}
func (f *fakeJournal) TodayQuestion(context.Context) (dto.QuestionOutput, error) {
	return dto.QuestionOutput{ID: "q1", Question: "What would you like to let go of?", Date: "2026-05-01", Answered: f.answered}, nil
}
func (f *fakeJournal) AnswerQuestion(_ context.Context, input dto.AnswerInput) (dto.AnswerOutput, error) {
	if f.answered {
		return dto.AnswerOutput{}, apperrors.ErrAlreadyAnswered
	}
	f.answered = true
	return dto.AnswerOutput{Question: dto.QuestionOutput{ID: "q1", Answered: true, Answer: input.Answer}}, nil
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestJournalRoutes(t *testing.T) {
	t.Parallel()
	f := &fakeJournal{}
	r := chi.NewRouter()
	journalin.NewHTTPHandler(f).Routes(r)

	rec := do(r, http.MethodPost, "/api/journal", `{"content":"A long enough reflection","purpose":"daily-reflection"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"e1","createdAt":"2026-05-01T00:00:00Z"}`, rec.Body.String())

	rec = do(r, http.MethodPost, "/api/journal", `{"content":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/api/journal", `{"content":"A long enough reflection","mood":"sunny"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodGet, "/api/journal", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(r, http.MethodGet, "/api/journal/e1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Some saved content")

	rec = do(r, http.MethodGet, "/api/journal/e2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodGet, "/api/journal/search?q=river", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"snippet":"river"`)

	rec = do(r, http.MethodGet, "/api/journal/prompts?frequency=everyday", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"everyday"`)

	rec = do(r, http.MethodPost, "/api/journal/suggestions", `{"content":"hi","role":"beginner"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "emotions")
}

func TestDailyQuestionRoutes(t *testing.T) {
	t.Parallel()
	f := &fakeJournal{}
	r := chi.NewRouter()
	journalin.NewHTTPHandler(f).Routes(r)

	rec := do(r, http.MethodGet, "/api/daily-question", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"answered":false`)

	rec = do(r, http.MethodPost, "/api/daily-question", `{"answer":"My worries"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"answer":"My worries"`)

	rec = do(r, http.MethodPost, "/api/daily-question", `{"answer":"Again"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
