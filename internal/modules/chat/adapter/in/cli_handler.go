package in

import (
	"context"

	chatdto "fathom/internal/modules/chat/dto"
	chatin "fathom/internal/modules/chat/port/in"
)

type CLIHandler struct {
	usecase chatin.Usecase
}

func NewCLIHandler(usecase chatin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (chatdto.StartOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Send(ctx context.Context, text string) (chatdto.SendOutput, error) {
	return h.usecase.Send(ctx, chatdto.SendInput{Text: text})
}

func (h CLIHandler) Active(ctx context.Context) (chatdto.ActiveOutput, error) {
	return h.usecase.Active(ctx)
}

func (h CLIHandler) End(ctx context.Context) (chatdto.CloseOutput, error) {
	return h.usecase.End(ctx)
}

func (h CLIHandler) List(ctx context.Context) ([]chatdto.SessionOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Show(ctx context.Context, id string) (chatdto.SessionOutput, error) {
	return h.usecase.Get(ctx, id)
}
