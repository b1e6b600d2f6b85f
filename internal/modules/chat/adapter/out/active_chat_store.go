package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fathom/internal/modules/chat/domain"
	chatout "fathom/internal/modules/chat/port/out"
	apperrors "fathom/internal/platform/errors"
	"fathom/internal/platform/storeio"
)

type FileActiveChatStore struct {
	path string
}

func NewFileActiveChatStore(dataDir string) chatout.ActiveChatStore {
	return &FileActiveChatStore{path: filepath.Join(dataDir, "active-chat.json")}
}

func (s *FileActiveChatStore) SaveActive(ctx context.Context, chat domain.ActiveChat) error {
	return storeio.Run(ctx, func() error {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return fmt.Errorf("create active chat dir: %w", err)
		}
		payload, err := json.MarshalIndent(chat, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal active chat: %w", err)
		}
		if err := os.WriteFile(s.path, payload, 0o644); err != nil {
			return fmt.Errorf("write active chat: %w", err)
		}
		return nil
	})
}

func (s *FileActiveChatStore) LoadActive(ctx context.Context) (domain.ActiveChat, error) {
	var chat domain.ActiveChat
	err := storeio.Run(ctx, func() error {
		payload, err := os.ReadFile(s.path)
		if err != nil {
			if os.IsNotExist(err) {
				return apperrors.ErrNoActiveChat
			}
			return fmt.Errorf("read active chat: %w", err)
		}
		if err := json.Unmarshal(payload, &chat); err != nil {
			return fmt.Errorf("decode active chat: %w", err)
		}
		if chat.ID == "" {
			return apperrors.ErrNoActiveChat
		}
		return nil
	})
	if err != nil {
		return domain.ActiveChat{}, err
	}
	return chat, nil
}

func (s *FileActiveChatStore) ClearActive(ctx context.Context) error {
	return storeio.Run(ctx, func() error {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clear active chat: %w", err)
		}
		return nil
	})
}
