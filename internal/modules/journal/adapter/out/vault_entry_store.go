package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fathom/internal/modules/journal/domain"
	journalout "fathom/internal/modules/journal/port/out"
	"fathom/internal/platform/clock"
	apperrors "fathom/internal/platform/errors"
	"fathom/internal/platform/markdown"
	"fathom/internal/platform/slug"
	"fathom/internal/platform/storeio"
)

// VaultEntryStore writes one markdown note per entry under <vault>/journal/YYYY/MM.
type VaultEntryStore struct {
	vaultPath string
}

func NewVaultEntryStore(vaultPath string) journalout.EntryStore {
	return &VaultEntryStore{vaultPath: vaultPath}
}

func (s *VaultEntryStore) notePath(entry domain.Entry) string {
	date := entry.Date
	if _, err := time.Parse(clock.DateLayout, date); err != nil {
		date = entry.CreatedAt.Format(clock.DateLayout)
	}
	name := date + "-" + slug.Make(entry.ID) + ".md"
	return filepath.Join(s.vaultPath, "journal", date[:4], date[5:7], name)
}

func (s *VaultEntryStore) Save(ctx context.Context, entry domain.Entry) (string, error) {
	path := s.notePath(entry)
	err := storeio.Run(ctx, func() error {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create journal directory: %w", err)
		}
		rendered, err := markdown.RenderFrontmatter(toFrontmatter(entry), "\n"+entry.Content)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("write journal entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

func (s *VaultEntryStore) FindByID(ctx context.Context, id string) (domain.Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return domain.Entry{}, err
	}
	for _, entry := range entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return domain.Entry{}, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
}

func (s *VaultEntryStore) List(ctx context.Context) ([]domain.Entry, error) {
	var out []domain.Entry
	err := storeio.Run(ctx, func() error {
		matches, err := filepath.Glob(filepath.Join(s.vaultPath, "journal", "*", "*", "*.md"))
		if err != nil {
			return fmt.Errorf("glob journal notes: %w", err)
		}
		sort.Strings(matches)
		out = make([]domain.Entry, 0, len(matches))
		for _, path := range matches {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			meta, body, err := markdown.SplitFrontmatter(string(content))
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
			entry, err := fromFrontmatter(meta, strings.TrimPrefix(body, "\n"), path)
			if err != nil {
				return fmt.Errorf("decode entry %s: %v", path, err)
			}
			out = append(out, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toFrontmatter(entry domain.Entry) map[string]any {
	meta := map[string]any{
		"schema_version": domain.SchemaVersion,
		"id":             entry.ID,
		"purpose":        string(entry.Purpose),
		"role":           string(entry.Role),
		"date":           entry.Date,
		"created_at":     entry.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":     entry.UpdatedAt.Format(time.RFC3339Nano),
	}
	if entry.Title != "" {
		meta["title"] = entry.Title
	}
	return meta
}

func fromFrontmatter(meta map[string]any, content, notePath string) (domain.Entry, error) {
	purpose, err := domain.ParsePurpose(asString(meta["purpose"]))
	if err != nil {
		return domain.Entry{}, err
	}
	role, err := domain.ParseRole(asString(meta["role"]))
	if err != nil {
		return domain.Entry{}, err
	}
	entry := domain.Entry{
		ID:       asString(meta["id"]),
		Title:    asString(meta["title"]),
		Content:  content,
		Purpose:  purpose,
		Role:     role,
		Date:     asDate(meta["date"]),
		NotePath: notePath,
	}
	entry.CreatedAt, _ = time.Parse(time.RFC3339Nano, asString(meta["created_at"]))
	entry.UpdatedAt, _ = time.Parse(time.RFC3339Nano, asString(meta["updated_at"]))
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

func asDate(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(clock.DateLayout)
	}
	return asString(v)
}
