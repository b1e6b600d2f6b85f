package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fathom/internal/modules/progression/domain"
	progressout "fathom/internal/modules/progression/port/out"
	"fathom/internal/platform/clock"
	"fathom/internal/platform/id"
	"fathom/internal/platform/storeio"
	"fathom/internal/platform/tx"
)

type Options struct {
	UserID       string
	StoreTimeout time.Duration
	Logger       *zap.Logger
	Tx           tx.Manager
	Events       progressout.EventLog
}

// ProgressService runs every mutation as load, compute, save against the state store.
type ProgressService struct {
	clock   clock.Clock
	idGen   id.Generator
	engine  domain.Engine
	store   progressout.StateStore
	events  progressout.EventLog
	tx      tx.Manager
	logger  *zap.Logger
	userID  string
	timeout time.Duration
}

func NewProgressService(clock clock.Clock, idGen id.Generator, engine domain.Engine, store progressout.StateStore, opts Options) *ProgressService {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Tx == nil {
		opts.Tx = tx.NoopManager{}
	}
	if opts.UserID == "" {
		opts.UserID = "local"
	}
	return &ProgressService{
		clock:   clock,
		idGen:   idGen,
		engine:  engine,
		store:   store,
		events:  opts.Events,
		tx:      opts.Tx,
		logger:  opts.Logger.With(zap.String("module", "progression"), zap.String("user", opts.UserID)),
		userID:  opts.UserID,
		timeout: opts.StoreTimeout,
	}
}

func (s *ProgressService) Catalog() domain.Catalog { return s.engine.Catalog() }

func (s *ProgressService) Snapshot(ctx context.Context) (domain.State, error) {
	sctx, cancel := s.storeContext(ctx)
	defer cancel()
	state, err := s.store.Load(sctx, s.userID)
	if err != nil {
		s.logger.Warn("load progression state", zap.Error(err))
		return domain.State{}, err
	}
	return state, nil
}

func (s *ProgressService) RecordSession(ctx context.Context) (domain.State, []domain.Outcome, error) {
	return s.apply(ctx, domain.EventSession, "", func(state domain.State, now time.Time) (domain.State, []domain.Outcome, error) {
		next, outcomes := s.engine.NewSession(state, now)
		return next, outcomes, nil
	})
}

func (s *ProgressService) RecordMessage(ctx context.Context) (domain.State, []domain.Outcome, error) {
	return s.apply(ctx, domain.EventMessage, "", func(state domain.State, now time.Time) (domain.State, []domain.Outcome, error) {
		next, outcomes := s.engine.MessageSent(state, now)
		return next, outcomes, nil
	})
}

// RecordDailyQuestion awards the answer bonus using the streak stored at answer time.
func (s *ProgressService) RecordDailyQuestion(ctx context.Context) (domain.State, []domain.Outcome, error) {
	return s.apply(ctx, domain.EventDailyQuestion, "", func(state domain.State, now time.Time) (domain.State, []domain.Outcome, error) {
		next, outcomes := s.engine.DailyQuestionAnswered(state, state.StreakCurrent, now)
		return next, outcomes, nil
	})
}

func (s *ProgressService) StartJourney(ctx context.Context, days int) (domain.State, []domain.Outcome, error) {
	return s.apply(ctx, domain.EventJourney, fmt.Sprintf("%d days", days), func(state domain.State, now time.Time) (domain.State, []domain.Outcome, error) {
		next, err := s.engine.StartJourney(state, days, now)
		return next, nil, err
	})
}

func (s *ProgressService) PurchaseMaterial(ctx context.Context, materialID string) (domain.State, []domain.Outcome, error) {
	return s.apply(ctx, domain.EventPurchase, materialID, func(state domain.State, _ time.Time) (domain.State, []domain.Outcome, error) {
		next, err := s.engine.PurchaseMaterial(state, materialID)
		return next, nil, err
	})
}

func (s *ProgressService) PurchaseStreakFreeze(ctx context.Context) (domain.State, []domain.Outcome, error) {
	return s.apply(ctx, domain.EventFreeze, "", func(state domain.State, _ time.Time) (domain.State, []domain.Outcome, error) {
		next, err := s.engine.PurchaseStreakFreeze(state)
		return next, nil, err
	})
}

func (s *ProgressService) RecoverStreak(ctx context.Context) (domain.State, []domain.Outcome, error) {
	return s.apply(ctx, domain.EventRecover, "", func(state domain.State, _ time.Time) (domain.State, []domain.Outcome, error) {
		return s.engine.RecoverStreak(state)
	})
}

func (s *ProgressService) SetGoal(ctx context.Context, goal domain.Goal) (domain.State, []domain.Outcome, error) {
	return s.apply(ctx, domain.EventGoal, string(goal.Type), func(state domain.State, _ time.Time) (domain.State, []domain.Outcome, error) {
		next, err := s.engine.SetGoal(state, goal)
		return next, nil, err
	})
}

func (s *ProgressService) History(ctx context.Context, limit int) ([]domain.Event, error) {
	if s.events == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	sctx, cancel := s.storeContext(ctx)
	defer cancel()
	events, err := s.events.Recent(sctx, s.userID, limit)
	if err != nil {
		return nil, storeio.Unavailable(err)
	}
	return events, nil
}

type mutation func(state domain.State, now time.Time) (domain.State, []domain.Outcome, error)

func (s *ProgressService) apply(ctx context.Context, kind domain.EventKind, detail string, fn mutation) (domain.State, []domain.Outcome, error) {
	var (
		next     domain.State
		outcomes []domain.Outcome
	)
	now := s.clock.Now()
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		sctx, cancel := s.storeContext(ctx)
		defer cancel()
		current, err := s.store.Load(sctx, s.userID)
		if err != nil {
			return err
		}
		next, outcomes, err = fn(current, now)
		if err != nil {
			return err
		}
		next.UpdatedAt = now
		return s.store.Save(sctx, next)
	})
	if err != nil {
		s.logger.Debug("progression operation rejected", zap.String("kind", string(kind)), zap.Error(err))
		return domain.State{}, nil, err
	}

	s.logOutcomes(kind, outcomes)
	s.recordEvent(ctx, domain.Event{
		ID:         s.idGen.New(),
		UserID:     s.userID,
		Kind:       kind,
		Detail:     detail,
		Outcomes:   outcomes,
		Experience: next.Experience,
		Level:      next.Level,
		Streak:     next.StreakCurrent,
		At:         now,
	})
	return next, outcomes, nil
}

func (s *ProgressService) logOutcomes(kind domain.EventKind, outcomes []domain.Outcome) {
	for _, o := range outcomes {
		s.logger.Info("progression outcome",
			zap.String("event", string(kind)),
			zap.String("outcome", string(o.Kind)),
			zap.Int("value", o.Value),
			zap.String("badge", string(o.Badge)),
		)
	}
}

// recordEvent appends to the event log. The log is a projection, so failures are logged only.
func (s *ProgressService) recordEvent(ctx context.Context, event domain.Event) {
	if s.events == nil {
		return
	}
	sctx, cancel := s.storeContext(ctx)
	defer cancel()
	if err := s.events.Append(sctx, event); err != nil {
		s.logger.Warn("append progression event", zap.String("kind", string(event.Kind)), zap.Error(err))
	}
}

func (s *ProgressService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return storeio.Context(ctx, s.timeout)
}
