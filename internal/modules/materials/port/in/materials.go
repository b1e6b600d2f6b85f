package in

import (
	"context"

	"fathom/internal/modules/materials/dto"
)

type Usecase interface {
	List(ctx context.Context) (dto.CatalogOutput, error)
	Open(ctx context.Context, input dto.OpenInput) (dto.OpenOutput, error)
	Unlock(ctx context.Context, input dto.UnlockInput) (dto.UnlockOutput, error)
	PDFs(ctx context.Context) ([]dto.PDFOutput, error)
	PDFPath(ctx context.Context, filename string) (string, error)
	Modules(ctx context.Context, input dto.ModulesInput) (dto.ModulesOutput, error)
	Module(ctx context.Context, slug string) (dto.ModuleOutput, error)
}
