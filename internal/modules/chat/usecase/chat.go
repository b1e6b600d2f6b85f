package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fathom/internal/modules/chat/domain"
	"fathom/internal/modules/chat/dto"
	chatin "fathom/internal/modules/chat/port/in"
	chatout "fathom/internal/modules/chat/port/out"
	"fathom/internal/modules/chat/service"
	apperrors "fathom/internal/platform/errors"
)

type Interactor struct {
	svc      *service.ChatService
	active   chatout.ActiveChatStore
	progress chatout.ProgressRecorder
	logger   *zap.Logger
}

func NewInteractor(svc *service.ChatService, active chatout.ActiveChatStore, progress chatout.ProgressRecorder, logger *zap.Logger) chatin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, active: active, progress: progress, logger: logger.With(zap.String("module", "chat"))}
}

// Reply answers a single message without touching the active chat.
func (i *Interactor) Reply(ctx context.Context, input dto.ReplyInput) (dto.ReplyOutput, error) {
	reply, category, err := i.svc.Respond(ctx, input.Message)
	if err != nil {
		return dto.ReplyOutput{}, err
	}
	return dto.ReplyOutput{
		Message:   reply.Content,
		Category:  string(category),
		Timestamp: reply.Timestamp,
		Outcomes:  i.credit(ctx, "message"),
	}, nil
}

func (i *Interactor) Start(ctx context.Context) (dto.StartOutput, error) {
	if i.active == nil {
		return dto.StartOutput{}, fmt.Errorf("active chat store is not configured")
	}
	_, err := i.active.LoadActive(ctx)
	if err == nil {
		return dto.StartOutput{}, apperrors.ErrActiveChatExists
	}
	if !errors.Is(err, apperrors.ErrNoActiveChat) {
		return dto.StartOutput{}, err
	}

	chat := i.svc.Start()
	if err := i.active.SaveActive(ctx, chat); err != nil {
		return dto.StartOutput{}, err
	}
	return dto.StartOutput{
		ID:        chat.ID,
		StartedAt: chat.StartedAt,
		Greeting:  toMessageDTO(chat.Messages[0]),
		Outcomes:  i.credit(ctx, "session"),
	}, nil
}

func (i *Interactor) Send(ctx context.Context, input dto.SendInput) (dto.SendOutput, error) {
	if i.active == nil {
		return dto.SendOutput{}, apperrors.ErrNoActiveChat
	}
	chat, err := i.active.LoadActive(ctx)
	if err != nil {
		return dto.SendOutput{}, err
	}
	chat, reply, err := i.svc.Append(ctx, chat, input.Text)
	if err != nil {
		return dto.SendOutput{}, err
	}
	if err := i.active.SaveActive(ctx, chat); err != nil {
		return dto.SendOutput{}, err
	}
	return dto.SendOutput{Reply: toMessageDTO(reply), Outcomes: i.credit(ctx, "message")}, nil
}

func (i *Interactor) Active(ctx context.Context) (dto.ActiveOutput, error) {
	if i.active == nil {
		return dto.ActiveOutput{}, apperrors.ErrNoActiveChat
	}
	chat, err := i.active.LoadActive(ctx)
	if err != nil {
		return dto.ActiveOutput{}, err
	}
	return dto.ActiveOutput{ID: chat.ID, StartedAt: chat.StartedAt, Messages: toMessageDTOs(chat.Messages)}, nil
}

// End closes the active chat. The session was already credited when it started.
func (i *Interactor) End(ctx context.Context) (dto.CloseOutput, error) {
	if i.active == nil {
		return dto.CloseOutput{}, apperrors.ErrNoActiveChat
	}
	chat, err := i.active.LoadActive(ctx)
	if err != nil {
		return dto.CloseOutput{}, err
	}
	session, err := i.svc.Close(ctx, chat.ID, chat.Messages, chat.StartedAt)
	if err != nil {
		return dto.CloseOutput{}, err
	}
	if err := i.active.ClearActive(ctx); err != nil {
		return dto.CloseOutput{}, err
	}
	return dto.CloseOutput{Session: toSessionOutput(session)}, nil
}

// Close stores a conversation held by the client and credits it as a session.
func (i *Interactor) Close(ctx context.Context, input dto.CloseInput) (dto.CloseOutput, error) {
	messages := make([]domain.Message, 0, len(input.Messages))
	for _, m := range input.Messages {
		messages = append(messages, domain.Message{Role: domain.Role(m.Role), Content: m.Content, Timestamp: m.Timestamp})
	}
	session, err := i.svc.Close(ctx, "", messages, input.StartedAt)
	if err != nil {
		return dto.CloseOutput{}, err
	}
	return dto.CloseOutput{Session: toSessionOutput(session), Outcomes: i.credit(ctx, "session")}, nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		summary := toSessionOutput(s)
		summary.Messages = nil
		out = append(out, summary)
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.SessionOutput, error) {
	session, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toSessionOutput(session), nil
}

// credit records chat activity with progression. Failures are logged and never fail the chat.
func (i *Interactor) credit(ctx context.Context, kind string) []string {
	if i.progress == nil {
		return nil
	}
	var (
		outcomes []string
		err      error
	)
	switch kind {
	case "session":
		outcomes, err = i.progress.RecordSession(ctx)
	default:
		outcomes, err = i.progress.RecordMessage(ctx)
	}
	if err != nil {
		i.logger.Warn("credit chat activity", zap.String("kind", kind), zap.Error(err))
		return nil
	}
	return outcomes
}

func toMessageDTO(m domain.Message) dto.MessageDTO {
	return dto.MessageDTO{Role: string(m.Role), Content: m.Content, Timestamp: m.Timestamp}
}

func toMessageDTOs(messages []domain.Message) []dto.MessageDTO {
	out := make([]dto.MessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageDTO(m))
	}
	return out
}

func toSessionOutput(s domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		ID:              s.ID,
		Messages:        toMessageDTOs(s.Messages),
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		Summary:         s.Summary,
		KeyInsights:     s.KeyInsights,
		MessageCount:    s.MessageCount,
		DurationMinutes: s.DurationMinutes,
		NotePath:        s.NotePath,
	}
}
