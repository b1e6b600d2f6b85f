package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"fathom/internal/modules/chat/domain"
	chatout "fathom/internal/modules/chat/port/out"
	"fathom/internal/platform/clock"
	apperrors "fathom/internal/platform/errors"
	"fathom/internal/platform/id"
	"fathom/internal/platform/storeio"
)

type ChatService struct {
	clock     clock.Clock
	idGen     id.Generator
	sessions  chatout.SessionStore
	responder chatout.Responder
	logger    *zap.Logger
	timeout   time.Duration
}

func NewChatService(clock clock.Clock, idGen id.Generator, sessions chatout.SessionStore, responder chatout.Responder, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		clock:     clock,
		idGen:     idGen,
		sessions:  sessions,
		responder: responder,
		logger:    logger.With(zap.String("module", "chat")),
	}
}

func (s *ChatService) WithStoreTimeout(timeout time.Duration) *ChatService {
	s.timeout = timeout
	return s
}

// Respond never fails once the text is valid: responder errors degrade to the fallback reply.
func (s *ChatService) Respond(ctx context.Context, text string) (domain.Message, domain.Category, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Message{}, "", fmt.Errorf("%w: message is required", apperrors.ErrInvalidInput)
	}
	category := domain.Classify(text)
	reply, err := s.responder.Reply(ctx, text)
	if err != nil || strings.TrimSpace(reply) == "" {
		s.logger.Warn("responder failed, using fallback", zap.String("category", string(category)), zap.Error(err))
		reply = domain.FallbackReply
	}
	return domain.Message{Role: domain.RoleAssistant, Content: reply, Timestamp: s.clock.Now()}, category, nil
}

func (s *ChatService) Start() domain.ActiveChat {
	now := s.clock.Now()
	return domain.ActiveChat{
		ID:        s.idGen.New(),
		StartedAt: now,
		Messages:  []domain.Message{{Role: domain.RoleAssistant, Content: domain.Greeting, Timestamp: now}},
	}
}

// Append adds the user's text and the reply to the conversation.
func (s *ChatService) Append(ctx context.Context, active domain.ActiveChat, text string) (domain.ActiveChat, domain.Message, error) {
	text = strings.TrimSpace(text)
	userMsg := domain.Message{Role: domain.RoleUser, Content: text, Timestamp: s.clock.Now()}
	reply, _, err := s.Respond(ctx, text)
	if err != nil {
		return domain.ActiveChat{}, domain.Message{}, err
	}
	active.Messages = append(active.Messages, userMsg, reply)
	return active, reply, nil
}

func (s *ChatService) Close(ctx context.Context, sessionID string, messages []domain.Message, startedAt time.Time) (domain.Session, error) {
	if sessionID == "" {
		sessionID = s.idGen.New()
	}
	session, err := domain.Close(sessionID, messages, startedAt, s.clock.Now())
	if err != nil {
		return domain.Session{}, err
	}
	ctx, cancel := storeio.Context(ctx, s.timeout)
	defer cancel()
	path, err := s.sessions.Save(ctx, session)
	if err != nil {
		s.logger.Warn("save chat session", zap.String("session", session.ID), zap.Error(err))
		return domain.Session{}, err
	}
	session.NotePath = path
	s.logger.Info("chat session closed",
		zap.String("session", session.ID),
		zap.Int("messages", session.MessageCount),
		zap.Int("duration_minutes", session.DurationMinutes),
	)
	return session, nil
}

// List returns sessions newest first by end time.
func (s *ChatService) List(ctx context.Context) ([]domain.Session, error) {
	ctx, cancel := storeio.Context(ctx, s.timeout)
	defer cancel()
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].EndedAt.After(sessions[j].EndedAt)
	})
	return sessions, nil
}

func (s *ChatService) Get(ctx context.Context, id string) (domain.Session, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Session{}, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	ctx, cancel := storeio.Context(ctx, s.timeout)
	defer cancel()
	return s.sessions.FindByID(ctx, id)
}
