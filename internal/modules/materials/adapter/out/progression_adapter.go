package out

import (
	"context"

	"fathom/internal/modules/materials/domain"
	materialsout "fathom/internal/modules/materials/port/out"
	progressdto "fathom/internal/modules/progression/dto"
	progressin "fathom/internal/modules/progression/port/in"
)

type ProgressionAdapter struct {
	progression progressin.Usecase
}

func NewProgressionAdapter(progression progressin.Usecase) materialsout.ProgressPort {
	return &ProgressionAdapter{progression: progression}
}

func (a *ProgressionAdapter) Materials(ctx context.Context) ([]domain.Item, error) {
	catalog, err := a.progression.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(catalog.Materials))
	for _, m := range catalog.Materials {
		items = append(items, domain.Item{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Category:    m.Category,
			Cost:        m.Cost,
			PDF:         m.PDF,
			Module:      m.Module,
			Headings:    m.Headings,
		})
	}
	return items, nil
}

func (a *ProgressionAdapter) Wallet(ctx context.Context) (domain.Wallet, error) {
	state, err := a.progression.Snapshot(ctx)
	if err != nil {
		return domain.Wallet{}, err
	}
	return domain.Wallet{Experience: state.Experience, Owned: state.Materials}, nil
}

func (a *ProgressionAdapter) Purchase(ctx context.Context, materialID string) ([]string, error) {
	change, err := a.progression.PurchaseMaterial(ctx, progressdto.PurchaseInput{MaterialID: materialID})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(change.Outcomes))
	for _, o := range change.Outcomes {
		out = append(out, o.Message)
	}
	return out, nil
}
