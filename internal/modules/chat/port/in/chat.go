package in

import (
	"context"

	"fathom/internal/modules/chat/dto"
)

type Usecase interface {
	Reply(ctx context.Context, input dto.ReplyInput) (dto.ReplyOutput, error)
	Start(ctx context.Context) (dto.StartOutput, error)
	Send(ctx context.Context, input dto.SendInput) (dto.SendOutput, error)
	Active(ctx context.Context) (dto.ActiveOutput, error)
	End(ctx context.Context) (dto.CloseOutput, error)
	Close(ctx context.Context, input dto.CloseInput) (dto.CloseOutput, error)
	List(ctx context.Context) ([]dto.SessionOutput, error)
	Get(ctx context.Context, id string) (dto.SessionOutput, error)
}
