package in

import (
	"context"

	progressdto "fathom/internal/modules/progression/dto"
	progressin "fathom/internal/modules/progression/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (progressdto.StateOutput, error) {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) Session(ctx context.Context) (progressdto.ChangeOutput, error) {
	return h.usecase.RecordSession(ctx)
}

func (h CLIHandler) Message(ctx context.Context) (progressdto.ChangeOutput, error) {
	return h.usecase.RecordMessage(ctx)
}

func (h CLIHandler) StartJourney(ctx context.Context, days int) (progressdto.ChangeOutput, error) {
	return h.usecase.StartJourney(ctx, progressdto.StartJourneyInput{Days: days})
}

func (h CLIHandler) Buy(ctx context.Context, materialID string) (progressdto.ChangeOutput, error) {
	return h.usecase.PurchaseMaterial(ctx, progressdto.PurchaseInput{MaterialID: materialID})
}

func (h CLIHandler) BuyFreeze(ctx context.Context) (progressdto.ChangeOutput, error) {
	return h.usecase.PurchaseStreakFreeze(ctx)
}

func (h CLIHandler) Recover(ctx context.Context) (progressdto.ChangeOutput, error) {
	return h.usecase.RecoverStreak(ctx)
}

func (h CLIHandler) SetGoal(ctx context.Context, goalType string, target int, description string) (progressdto.ChangeOutput, error) {
	return h.usecase.SetGoal(ctx, progressdto.GoalInput{Type: goalType, Target: target, Description: description})
}

func (h CLIHandler) Catalog(ctx context.Context) (progressdto.CatalogOutput, error) {
	return h.usecase.Catalog(ctx)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]progressdto.EventOutput, error) {
	return h.usecase.History(ctx, limit)
}
