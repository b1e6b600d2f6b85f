package usecase

import (
	"context"
	"strings"

	"fathom/internal/modules/progression/domain"
	"fathom/internal/modules/progression/dto"
	progressin "fathom/internal/modules/progression/port/in"
	"fathom/internal/modules/progression/service"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Snapshot(ctx context.Context) (dto.StateOutput, error) {
	state, err := i.svc.Snapshot(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toStateOutput(state), nil
}

func (i *Interactor) RecordSession(ctx context.Context) (dto.ChangeOutput, error) {
	return toChange(i.svc.RecordSession(ctx))
}

func (i *Interactor) RecordMessage(ctx context.Context) (dto.ChangeOutput, error) {
	return toChange(i.svc.RecordMessage(ctx))
}

func (i *Interactor) RecordDailyQuestion(ctx context.Context) (dto.ChangeOutput, error) {
	return toChange(i.svc.RecordDailyQuestion(ctx))
}

func (i *Interactor) StartJourney(ctx context.Context, input dto.StartJourneyInput) (dto.ChangeOutput, error) {
	return toChange(i.svc.StartJourney(ctx, input.Days))
}

func (i *Interactor) PurchaseMaterial(ctx context.Context, input dto.PurchaseInput) (dto.ChangeOutput, error) {
	return toChange(i.svc.PurchaseMaterial(ctx, strings.TrimSpace(input.MaterialID)))
}

func (i *Interactor) PurchaseStreakFreeze(ctx context.Context) (dto.ChangeOutput, error) {
	return toChange(i.svc.PurchaseStreakFreeze(ctx))
}

func (i *Interactor) RecoverStreak(ctx context.Context) (dto.ChangeOutput, error) {
	return toChange(i.svc.RecoverStreak(ctx))
}

func (i *Interactor) SetGoal(ctx context.Context, input dto.GoalInput) (dto.ChangeOutput, error) {
	goal := domain.Goal{
		Type:        domain.GoalType(strings.ToLower(strings.TrimSpace(input.Type))),
		Target:      input.Target,
		Description: strings.TrimSpace(input.Description),
	}
	return toChange(i.svc.SetGoal(ctx, goal))
}

func (i *Interactor) Catalog(_ context.Context) (dto.CatalogOutput, error) {
	catalog := i.svc.Catalog()
	out := dto.CatalogOutput{StreakFreezeCost: catalog.StreakFreezeCost}
	for _, j := range catalog.Journeys {
		out.Journeys = append(out.Journeys, dto.JourneyOfferOutput{Days: j.Days, Name: j.Name, Description: j.Description, Multiplier: j.Multiplier})
	}
	for _, m := range catalog.Materials {
		out.Materials = append(out.Materials, dto.MaterialOutput{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Category:    m.Category,
			Cost:        m.Cost,
			PDF:         m.PDF,
			Module:      m.Module,
			Headings:    m.Headings,
			Prompts:     m.Prompts,
		})
	}
	for _, b := range domain.BadgeRules() {
		out.Badges = append(out.Badges, dto.BadgeOutput{ID: string(b.ID), Name: b.Name, Description: b.Description})
	}
	return out, nil
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.EventOutput, error) {
	events, err := i.svc.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EventOutput, 0, len(events))
	for _, e := range events {
		out = append(out, dto.EventOutput{
			ID:         e.ID,
			Kind:       string(e.Kind),
			Detail:     e.Detail,
			Summary:    domain.SummarizeOutcomes(e.Outcomes),
			Experience: e.Experience,
			Level:      e.Level,
			Streak:     e.Streak,
			At:         e.At,
		})
	}
	return out, nil
}

func toChange(state domain.State, outcomes []domain.Outcome, err error) (dto.ChangeOutput, error) {
	if err != nil {
		return dto.ChangeOutput{}, err
	}
	out := dto.ChangeOutput{State: toStateOutput(state), Outcomes: make([]dto.OutcomeOutput, 0, len(outcomes))}
	for _, o := range outcomes {
		out.Outcomes = append(out.Outcomes, dto.OutcomeOutput{Kind: string(o.Kind), Value: o.Value, Badge: string(o.Badge), Message: o.String()})
	}
	return out, nil
}

func toStateOutput(state domain.State) dto.StateOutput {
	badges := make([]string, 0, len(state.Badges))
	for _, b := range state.Badges {
		badges = append(badges, string(b))
	}
	history := make([]dto.JourneyOutput, 0, len(state.JourneyHistory))
	for _, j := range state.JourneyHistory {
		history = append(history, toJourneyOutput(j))
	}
	return dto.StateOutput{
		UserID:             state.UserID,
		StreakCurrent:      state.StreakCurrent,
		StreakLongest:      state.StreakLongest,
		LastActiveDate:     state.LastActiveDate,
		TotalSessions:      state.TotalSessions,
		TotalMessages:      state.TotalMessages,
		Experience:         state.Experience,
		Level:              state.Level,
		XPToNextLevel:      state.XPToNextLevel(),
		Badges:             badges,
		Goal:               dto.GoalOutput{Type: string(state.Goal.Type), Target: state.Goal.Target, Current: state.Goal.Current, Description: state.Goal.Description},
		Journey:            toJourneyOutput(state.Journey),
		JourneyHistory:     history,
		StreakFreeze:       state.StreakFreeze,
		StreakRecoveryUsed: state.StreakRecoveryUsed,
		RecoverableStreak:  state.RecoverableStreak,
		Materials:          append([]string{}, state.Materials...),
		TotalXPEarned:      state.TotalXPEarned,
		TotalXPSpent:       state.TotalXPSpent,
		UpdatedAt:          state.UpdatedAt,
	}
}

func toJourneyOutput(j domain.Journey) dto.JourneyOutput {
	return dto.JourneyOutput{
		DurationDays: j.DurationDays,
		Name:         j.Name,
		StartDate:    j.StartDate,
		EndDate:      j.EndDate,
		Completed:    j.Completed,
		Active:       j.Active(),
		XPMultiplier: j.XPMultiplier,
	}
}
