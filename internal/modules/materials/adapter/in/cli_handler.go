package in

import (
	"context"

	materialsdto "fathom/internal/modules/materials/dto"
	materialsin "fathom/internal/modules/materials/port/in"
)

type CLIHandler struct {
	usecase materialsin.Usecase
}

func NewCLIHandler(usecase materialsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) (materialsdto.CatalogOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Open(ctx context.Context, id string, page int, launchExternal bool) (materialsdto.OpenOutput, error) {
	return h.usecase.Open(ctx, materialsdto.OpenInput{ID: id, Page: page, LaunchExternal: launchExternal})
}

func (h CLIHandler) Unlock(ctx context.Context, id string) (materialsdto.UnlockOutput, error) {
	return h.usecase.Unlock(ctx, materialsdto.UnlockInput{ID: id})
}

func (h CLIHandler) PDFs(ctx context.Context) ([]materialsdto.PDFOutput, error) {
	return h.usecase.PDFs(ctx)
}

func (h CLIHandler) Modules(ctx context.Context, category string, enabledOnly bool) (materialsdto.ModulesOutput, error) {
	return h.usecase.Modules(ctx, materialsdto.ModulesInput{Category: category, EnabledOnly: enabledOnly})
}

func (h CLIHandler) Module(ctx context.Context, slug string) (materialsdto.ModuleOutput, error) {
	return h.usecase.Module(ctx, slug)
}
