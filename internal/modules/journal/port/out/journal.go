package out

import (
	"context"

	"fathom/internal/modules/journal/domain"
)

type EntryStore interface {
	Save(ctx context.Context, entry domain.Entry) (string, error)
	FindByID(ctx context.Context, id string) (domain.Entry, error)
	List(ctx context.Context) ([]domain.Entry, error)
}

type EntryIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertEntry(ctx context.Context, entry domain.Entry) error
	Search(ctx context.Context, query string, limit int) ([]domain.Entry, error)
}

// QuestionStore returns apperrors.ErrNotFound when no question exists for the date.
type QuestionStore interface {
	Load(ctx context.Context, date string) (domain.DailyQuestion, error)
	Save(ctx context.Context, question domain.DailyQuestion) error
	// List returns every stored question, newest date first.
	List(ctx context.Context) ([]domain.DailyQuestion, error)
}

// ProgressPort credits journaling activity to the progression engine and reads the prompts
// unlocked by owned materials. The Record methods return human readable outcome messages.
type ProgressPort interface {
	RecordSession(ctx context.Context) ([]string, error)
	RecordDailyQuestion(ctx context.Context) ([]string, error)
	MaterialPrompts(ctx context.Context) ([]domain.MaterialPrompt, error)
}
