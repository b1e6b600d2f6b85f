package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fathom/internal/modules/progression/domain"
	progressout "fathom/internal/modules/progression/port/out"
	"fathom/internal/platform/slug"
	"fathom/internal/platform/storeio"
)

// FileStateStore keeps one JSON snapshot per user under <data>/progress.
type FileStateStore struct {
	dir string
}

func NewFileStateStore(dataDir string) progressout.StateStore {
	return &FileStateStore{dir: filepath.Join(dataDir, "progress")}
}

func (s *FileStateStore) path(userID string) string {
	return filepath.Join(s.dir, slug.Make(userID)+".json")
}

func (s *FileStateStore) Load(ctx context.Context, userID string) (domain.State, error) {
	var state domain.State
	err := storeio.Run(ctx, func() error {
		payload, err := os.ReadFile(s.path(userID))
		if err != nil {
			if os.IsNotExist(err) {
				state = domain.NewState(userID)
				return nil
			}
			return fmt.Errorf("read progression state: %w", err)
		}
		if err := json.Unmarshal(payload, &state); err != nil {
			return fmt.Errorf("decode progression state: %w", err)
		}
		if state.UserID == "" {
			state.UserID = userID
		}
		state = state.Normalize()
		return nil
	})
	if err != nil {
		return domain.State{}, err
	}
	return state, nil
}

// Save writes through a temp file and rename so readers never see a torn snapshot.
func (s *FileStateStore) Save(ctx context.Context, state domain.State) error {
	return storeio.Run(ctx, func() error {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return fmt.Errorf("create progress dir: %w", err)
		}
		payload, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal progression state: %w", err)
		}
		target := s.path(state.UserID)
		tmp := target + ".tmp"
		if err := os.WriteFile(tmp, payload, 0o644); err != nil {
			return fmt.Errorf("write progression state: %w", err)
		}
		if err := os.Rename(tmp, target); err != nil {
			return fmt.Errorf("replace progression state: %w", err)
		}
		return nil
	})
}
