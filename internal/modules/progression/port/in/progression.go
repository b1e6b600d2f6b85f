package in

import (
	"context"

	"fathom/internal/modules/progression/dto"
)

type Usecase interface {
	Snapshot(ctx context.Context) (dto.StateOutput, error)
	RecordSession(ctx context.Context) (dto.ChangeOutput, error)
	RecordMessage(ctx context.Context) (dto.ChangeOutput, error)
	RecordDailyQuestion(ctx context.Context) (dto.ChangeOutput, error)
	StartJourney(ctx context.Context, input dto.StartJourneyInput) (dto.ChangeOutput, error)
	PurchaseMaterial(ctx context.Context, input dto.PurchaseInput) (dto.ChangeOutput, error)
	PurchaseStreakFreeze(ctx context.Context) (dto.ChangeOutput, error)
	RecoverStreak(ctx context.Context) (dto.ChangeOutput, error)
	SetGoal(ctx context.Context, input dto.GoalInput) (dto.ChangeOutput, error)
	Catalog(ctx context.Context) (dto.CatalogOutput, error)
	History(ctx context.Context, limit int) ([]dto.EventOutput, error)
}
