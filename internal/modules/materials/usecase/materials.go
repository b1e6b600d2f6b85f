package usecase

import (
	"context"

	"go.uber.org/zap"

	"fathom/internal/modules/materials/domain"
	"fathom/internal/modules/materials/dto"
	materialsin "fathom/internal/modules/materials/port/in"
	"fathom/internal/modules/materials/service"
)

type Interactor struct {
	svc    *service.MaterialsService
	logger *zap.Logger
}

func NewInteractor(svc *service.MaterialsService, logger *zap.Logger) materialsin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, logger: logger.With(zap.String("module", "materials"))}
}

func (i *Interactor) List(ctx context.Context) (dto.CatalogOutput, error) {
	items, wallet, err := i.svc.Catalog(ctx)
	if err != nil {
		return dto.CatalogOutput{}, err
	}
	out := dto.CatalogOutput{Experience: wallet.Experience, Materials: make([]dto.MaterialOutput, 0, len(items))}
	for _, item := range items {
		out.Materials = append(out.Materials, toMaterialOutput(item))
	}
	return out, nil
}

func (i *Interactor) Open(ctx context.Context, input dto.OpenInput) (dto.OpenOutput, error) {
	opened, err := i.svc.Open(ctx, input.ID, input.Page, input.LaunchExternal)
	if err != nil {
		return dto.OpenOutput{}, err
	}
	out := dto.OpenOutput{
		Material:         toMaterialOutput(opened.Item),
		Page:             opened.Page,
		TotalPages:       opened.TotalPages,
		Content:          opened.Text,
		ExternalLaunched: opened.Launched,
	}
	if opened.Launched {
		out.ExternalTarget = opened.Target
	}
	return out, nil
}

func (i *Interactor) Unlock(ctx context.Context, input dto.UnlockInput) (dto.UnlockOutput, error) {
	item, outcomes, err := i.svc.Unlock(ctx, input.ID)
	if err != nil {
		return dto.UnlockOutput{}, err
	}
	i.logger.Info("material unlocked", zap.String("material", item.ID), zap.Int("cost", item.Cost))
	return dto.UnlockOutput{Material: toMaterialOutput(item), Outcomes: outcomes}, nil
}

func (i *Interactor) PDFs(ctx context.Context) ([]dto.PDFOutput, error) {
	files, err := i.svc.ListPDFs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PDFOutput, 0, len(files))
	for _, f := range files {
		out = append(out, dto.PDFOutput{Filename: f.Filename, DisplayName: f.DisplayName, Size: f.Size, Modified: f.Modified})
	}
	return out, nil
}

func (i *Interactor) PDFPath(ctx context.Context, filename string) (string, error) {
	return i.svc.PDFPath(ctx, filename)
}

func (i *Interactor) Modules(ctx context.Context, input dto.ModulesInput) (dto.ModulesOutput, error) {
	modules, categories, err := i.svc.Modules(ctx, input.Category, input.EnabledOnly)
	if err != nil {
		return dto.ModulesOutput{}, err
	}
	out := dto.ModulesOutput{Categories: categories, Modules: make([]dto.ModuleInfoOutput, 0, len(modules))}
	if out.Categories == nil {
		out.Categories = []string{}
	}
	for _, m := range modules {
		out.Modules = append(out.Modules, toModuleInfoOutput(m))
	}
	return out, nil
}

func (i *Interactor) Module(ctx context.Context, slug string) (dto.ModuleOutput, error) {
	view, err := i.svc.Module(ctx, slug)
	if err != nil {
		return dto.ModuleOutput{}, err
	}
	out := dto.ModuleOutput{Slug: view.Slug, Content: view.Content}
	if view.Listed {
		info := toModuleInfoOutput(view.Module)
		out.Module = &info
	}
	for _, item := range view.Materials {
		out.Materials = append(out.Materials, toMaterialOutput(item))
	}
	return out, nil
}

func toModuleInfoOutput(m domain.Module) dto.ModuleInfoOutput {
	return dto.ModuleInfoOutput{
		Slug:        m.Slug,
		Title:       m.Title,
		Description: m.Description,
		Icon:        m.Icon,
		Color:       m.Color,
		Category:    m.Category,
		Enabled:     m.Enabled,
	}
}

func toMaterialOutput(item domain.Item) dto.MaterialOutput {
	return dto.MaterialOutput{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Cost:        item.Cost,
		Kind:        string(item.Kind()),
		PDF:         item.PDF,
		Module:      item.Module,
		Owned:       item.Owned,
		Locked:      item.Locked(),
		Affordable:  item.Affordable,
	}
}
