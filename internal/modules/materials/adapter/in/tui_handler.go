package in

import (
	"context"

	materialsdto "fathom/internal/modules/materials/dto"
	materialsin "fathom/internal/modules/materials/port/in"
)

type TUIHandler struct {
	usecase materialsin.Usecase
}

func NewTUIHandler(usecase materialsin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Catalog(ctx context.Context) (materialsdto.CatalogOutput, error) {
	return h.usecase.List(ctx)
}

func (h TUIHandler) Open(ctx context.Context, id string, page int) (materialsdto.OpenOutput, error) {
	return h.usecase.Open(ctx, materialsdto.OpenInput{ID: id, Page: page})
}

func (h TUIHandler) Unlock(ctx context.Context, id string) (materialsdto.UnlockOutput, error) {
	return h.usecase.Unlock(ctx, materialsdto.UnlockInput{ID: id})
}
