package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fathom/internal/modules/journal/domain"
	journalout "fathom/internal/modules/journal/port/out"
	apperrors "fathom/internal/platform/errors"
	"fathom/internal/platform/storeio"
)

// FileQuestionStore keeps the daily questions in one JSON file keyed by date.
type FileQuestionStore struct {
	path string
}

func NewFileQuestionStore(dataDir string) journalout.QuestionStore {
	return &FileQuestionStore{path: filepath.Join(dataDir, "daily-questions.json")}
}

func (s *FileQuestionStore) Load(ctx context.Context, date string) (domain.DailyQuestion, error) {
	var question domain.DailyQuestion
	err := storeio.Run(ctx, func() error {
		all, err := s.read()
		if err != nil {
			return err
		}
		q, ok := all[date]
		if !ok {
			return fmt.Errorf("%w: daily question for %s", apperrors.ErrNotFound, date)
		}
		question = q
		return nil
	})
	return question, err
}

func (s *FileQuestionStore) Save(ctx context.Context, question domain.DailyQuestion) error {
	return storeio.Run(ctx, func() error {
		all, err := s.read()
		if err != nil {
			return err
		}
		all[question.Date] = question
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		payload, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal daily questions: %w", err)
		}
		tmp := s.path + ".tmp"
		if err := os.WriteFile(tmp, payload, 0o644); err != nil {
			return fmt.Errorf("write daily questions: %w", err)
		}
		if err := os.Rename(tmp, s.path); err != nil {
			return fmt.Errorf("replace daily questions: %w", err)
		}
		return nil
	})
}

func (s *FileQuestionStore) List(ctx context.Context) ([]domain.DailyQuestion, error) {
	var out []domain.DailyQuestion
	err := storeio.Run(ctx, func() error {
		all, err := s.read()
		if err != nil {
			return err
		}
		out = make([]domain.DailyQuestion, 0, len(all))
		for _, q := range all {
			out = append(out, q)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
		return nil
	})
	return out, err
}

func (s *FileQuestionStore) read() (map[string]domain.DailyQuestion, error) {
	all := map[string]domain.DailyQuestion{}
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return all, nil
		}
		return nil, fmt.Errorf("read daily questions: %w", err)
	}
	if err := json.Unmarshal(payload, &all); err != nil {
		return nil, fmt.Errorf("decode daily questions: %w", err)
	}
	return all, nil
}
