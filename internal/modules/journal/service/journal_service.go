package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"fathom/internal/modules/journal/domain"
	journalout "fathom/internal/modules/journal/port/out"
	"fathom/internal/platform/clock"
	apperrors "fathom/internal/platform/errors"
	"fathom/internal/platform/id"
	"fathom/internal/platform/storeio"
)

type JournalService struct {
	clock     clock.Clock
	calendar  clock.Calendar
	idGen     id.Generator
	store     journalout.EntryStore
	projector journalout.EntryIndexProjector
	questions journalout.QuestionStore
	pool      []string
	timeout   time.Duration
	logger    *zap.Logger
}

func NewJournalService(clock clock.Clock, calendar clock.Calendar, idGen id.Generator, store journalout.EntryStore, projector journalout.EntryIndexProjector, questions journalout.QuestionStore) *JournalService {
	return &JournalService{
		clock:     clock,
		calendar:  calendar,
		idGen:     idGen,
		store:     store,
		projector: projector,
		questions: questions,
		pool:      domain.DefaultQuestionPool,
		logger:    zap.NewNop(),
	}
}

func (s *JournalService) WithLogger(logger *zap.Logger) *JournalService {
	if logger != nil {
		s.logger = logger.With(zap.String("module", "journal"))
	}
	return s
}

// WithStoreTimeout bounds every store call made by the service.
func (s *JournalService) WithStoreTimeout(timeout time.Duration) *JournalService {
	s.timeout = timeout
	return s
}

func (s *JournalService) WithQuestionPool(pool []string) *JournalService {
	if len(pool) > 0 {
		s.pool = pool
	}
	return s
}

func (s *JournalService) Create(ctx context.Context, title, content string, purpose domain.Purpose, role domain.Role) (domain.Entry, error) {
	if err := domain.ValidateContent(content); err != nil {
		return domain.Entry{}, err
	}
	now := s.clock.Now()
	entry := domain.Entry{
		ID:        s.idGen.New(),
		Title:     strings.TrimSpace(title),
		Content:   content,
		Purpose:   purpose,
		Role:      role,
		Date:      s.calendar.Date(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, err
	}
	ctx, cancel := storeio.Context(ctx, s.timeout)
	defer cancel()
	path, err := s.store.Save(ctx, entry)
	if err != nil {
		return domain.Entry{}, err
	}
	entry.NotePath = path
	// The note is the source of truth; a stale index is repaired by reindex.
	if s.projector != nil {
		if err := s.projector.UpsertEntry(ctx, entry); err != nil {
			s.logger.Warn("index journal entry", zap.String("entry", entry.ID), zap.Error(err))
		}
	}
	return entry, nil
}

// List returns entries newest first.
func (s *JournalService) List(ctx context.Context) ([]domain.Entry, error) {
	ctx, cancel := storeio.Context(ctx, s.timeout)
	defer cancel()
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *JournalService) Get(ctx context.Context, id string) (domain.Entry, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Entry{}, fmt.Errorf("%w: entry id is required", apperrors.ErrInvalidInput)
	}
	ctx, cancel := storeio.Context(ctx, s.timeout)
	defer cancel()
	return s.store.FindByID(ctx, id)
}

func (s *JournalService) Search(ctx context.Context, query string, limit int) ([]domain.Entry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", apperrors.ErrInvalidInput)
	}
	if s.projector == nil {
		return nil, fmt.Errorf("journal index is not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	ctx, cancel := storeio.Context(ctx, s.timeout)
	defer cancel()
	entries, err := s.projector.Search(ctx, query, limit)
	if err != nil {
		return nil, storeio.Unavailable(err)
	}
	return entries, nil
}

func (s *JournalService) Reindex(ctx context.Context) error {
	if s.projector == nil {
		return nil
	}
	entries, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := s.projector.UpsertEntry(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// TodayQuestion returns the question of the current day, creating it on first view.
func (s *JournalService) TodayQuestion(ctx context.Context) (domain.DailyQuestion, error) {
	now := s.clock.Now()
	date := s.calendar.Date(now)
	ctx, cancel := storeio.Context(ctx, s.timeout)
	defer cancel()
	question, err := s.questions.Load(ctx, date)
	if err == nil {
		return question, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.DailyQuestion{}, err
	}
	question = domain.DailyQuestion{
		ID:       s.idGen.New(),
		Question: domain.QuestionForDay(s.calendar.DayOfMonth(now), s.pool),
		Date:     date,
	}
	if err := s.questions.Save(ctx, question); err != nil {
		return domain.DailyQuestion{}, err
	}
	return question, nil
}

func (s *JournalService) AnswerQuestion(ctx context.Context, answer string) (domain.DailyQuestion, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return domain.DailyQuestion{}, fmt.Errorf("%w: answer is required", apperrors.ErrInvalidInput)
	}
	question, err := s.TodayQuestion(ctx)
	if err != nil {
		return domain.DailyQuestion{}, err
	}
	if question.Answered {
		return domain.DailyQuestion{}, fmt.Errorf("%w: %s", apperrors.ErrAlreadyAnswered, question.Date)
	}
	ctx, cancel := storeio.Context(ctx, s.timeout)
	defer cancel()
	answeredAt := s.clock.Now()
	question.Answered = true
	question.Answer = answer
	question.AnsweredAt = &answeredAt
	if err := s.questions.Save(ctx, question); err != nil {
		return domain.DailyQuestion{}, err
	}
	return question, nil
}

// ReopenQuestion stores question as unanswered again. It undoes an answer whose
// bonus could not be credited, so the user can resubmit it.
func (s *JournalService) ReopenQuestion(ctx context.Context, question domain.DailyQuestion) error {
	question.Answered = false
	question.Answer = ""
	question.AnsweredAt = nil
	ctx, cancel := storeio.Context(ctx, s.timeout)
	defer cancel()
	return s.questions.Save(ctx, question)
}
