package out

import (
	"context"

	"fathom/internal/modules/journal/domain"
	journalout "fathom/internal/modules/journal/port/out"
	progressdto "fathom/internal/modules/progression/dto"
	progressin "fathom/internal/modules/progression/port/in"
)

type ProgressionAdapter struct {
	progression progressin.Usecase
}

func NewProgressionAdapter(progression progressin.Usecase) journalout.ProgressPort {
	return &ProgressionAdapter{progression: progression}
}

func (a *ProgressionAdapter) RecordSession(ctx context.Context) ([]string, error) {
	return messages(a.progression.RecordSession(ctx))
}

func (a *ProgressionAdapter) RecordDailyQuestion(ctx context.Context) ([]string, error) {
	return messages(a.progression.RecordDailyQuestion(ctx))
}

// MaterialPrompts returns the prompts of free and purchased materials in catalog order.
func (a *ProgressionAdapter) MaterialPrompts(ctx context.Context) ([]domain.MaterialPrompt, error) {
	catalog, err := a.progression.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	state, err := a.progression.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(state.Materials))
	for _, id := range state.Materials {
		owned[id] = true
	}
	var out []domain.MaterialPrompt
	for _, m := range catalog.Materials {
		if m.Cost > 0 && !owned[m.ID] {
			continue
		}
		for _, text := range m.Prompts {
			out = append(out, domain.MaterialPrompt{MaterialID: m.ID, Text: text})
		}
	}
	return out, nil
}

func messages(change progressdto.ChangeOutput, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(change.Outcomes))
	for _, o := range change.Outcomes {
		out = append(out, o.Message)
	}
	return out, nil
}
