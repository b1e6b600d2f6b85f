package out

import (
	"context"

	"fathom/internal/modules/chat/domain"
)

// ActiveChatStore returns apperrors.ErrNoActiveChat when nothing is in progress.
type ActiveChatStore interface {
	SaveActive(ctx context.Context, chat domain.ActiveChat) error
	LoadActive(ctx context.Context) (domain.ActiveChat, error)
	ClearActive(ctx context.Context) error
}

type SessionStore interface {
	Save(ctx context.Context, session domain.Session) (string, error)
	FindByID(ctx context.Context, id string) (domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
}

type Responder interface {
	Reply(ctx context.Context, text string) (string, error)
}

type ProgressRecorder interface {
	RecordSession(ctx context.Context) ([]string, error)
	RecordMessage(ctx context.Context) ([]string, error)
}
