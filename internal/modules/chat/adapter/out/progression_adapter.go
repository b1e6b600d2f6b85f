package out

import (
	"context"

	chatout "fathom/internal/modules/chat/port/out"
	progressdto "fathom/internal/modules/progression/dto"
	progressin "fathom/internal/modules/progression/port/in"
)

type ProgressionAdapter struct {
	progression progressin.Usecase
}

func NewProgressionAdapter(progression progressin.Usecase) chatout.ProgressRecorder {
	return &ProgressionAdapter{progression: progression}
}

func (a *ProgressionAdapter) RecordSession(ctx context.Context) ([]string, error) {
	return messages(a.progression.RecordSession(ctx))
}

func (a *ProgressionAdapter) RecordMessage(ctx context.Context) ([]string, error) {
	return messages(a.progression.RecordMessage(ctx))
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
