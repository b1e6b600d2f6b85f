package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fathom/internal/modules/chat/domain"
	chatout "fathom/internal/modules/chat/port/out"
	apperrors "fathom/internal/platform/errors"
	"fathom/internal/platform/markdown"
	"fathom/internal/platform/slug"
	"fathom/internal/platform/storeio"
)

// VaultSessionStore writes closed chats to <vault>/chats/YYYY/MM/DD as markdown notes.
// The transcript is kept in frontmatter so that notes can be read back.
type VaultSessionStore struct {
	vaultPath string
}

func NewVaultSessionStore(vaultPath string) chatout.SessionStore {
	return &VaultSessionStore{vaultPath: vaultPath}
}

func (s *VaultSessionStore) Save(ctx context.Context, session domain.Session) (string, error) {
	date := session.StartedAt.UTC()
	dir := filepath.Join(s.vaultPath, "chats", date.Format("2006"), date.Format("01"), date.Format("02"))
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(session.ID)))
	err := storeio.Run(ctx, func() error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chat dir: %w", err)
		}
		rendered, err := markdown.RenderFrontmatter(toFrontmatter(session), renderTranscript(session))
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("write chat note: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

func (s *VaultSessionStore) FindByID(ctx context.Context, id string) (domain.Session, error) {
	sessions, err := s.List(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	for _, session := range sessions {
		if session.ID == id {
			return session, nil
		}
	}
	return domain.Session{}, fmt.Errorf("%w: chat session %s", apperrors.ErrNotFound, id)
}

func (s *VaultSessionStore) List(ctx context.Context) ([]domain.Session, error) {
	var out []domain.Session
	err := storeio.Run(ctx, func() error {
		matches, err := filepath.Glob(filepath.Join(s.vaultPath, "chats", "*", "*", "*", "*.md"))
		if err != nil {
			return fmt.Errorf("glob chat notes: %w", err)
		}
		sort.Strings(matches)
		out = make([]domain.Session, 0, len(matches))
		for _, path := range matches {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			meta, _, err := markdown.SplitFrontmatter(string(content))
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
			session := fromFrontmatter(meta)
			session.NotePath = path
			out = append(out, session)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toFrontmatter(session domain.Session) map[string]any {
	messages := make([]map[string]any, 0, len(session.Messages))
	for _, m := range session.Messages {
		messages = append(messages, map[string]any{
			"role":      string(m.Role),
			"content":   m.Content,
			"timestamp": m.Timestamp.Format(time.RFC3339Nano),
		})
	}
	return map[string]any{
		"schema_version":   domain.SchemaVersion,
		"id":               session.ID,
		"started_at":       session.StartedAt.Format(time.RFC3339Nano),
		"ended_at":         session.EndedAt.Format(time.RFC3339Nano),
		"message_count":    session.MessageCount,
		"duration_minutes": session.DurationMinutes,
		"summary":          session.Summary,
		"key_insights":     session.KeyInsights,
		"messages":         messages,
	}
}

func fromFrontmatter(meta map[string]any) domain.Session {
	session := domain.Session{
		ID:              asString(meta["id"]),
		StartedAt:       asTime(meta["started_at"]),
		EndedAt:         asTime(meta["ended_at"]),
		Summary:         asString(meta["summary"]),
		KeyInsights:     asStringSlice(meta["key_insights"]),
		MessageCount:    asInt(meta["message_count"]),
		DurationMinutes: asInt(meta["duration_minutes"]),
	}
	if raw, ok := meta["messages"].([]any); ok {
		for _, item := range raw {
			fields, ok := item.(map[string]any)
			if !ok {
				continue
			}
			session.Messages = append(session.Messages, domain.Message{
				Role:      domain.Role(asString(fields["role"])),
				Content:   asString(fields["content"]),
				Timestamp: asTime(fields["timestamp"]),
			})
		}
	}
	return session
}

func renderTranscript(session domain.Session) string {
	var b strings.Builder
	b.WriteString("\n# Reflection chat\n\n## Summary\n\n")
	b.WriteString(session.Summary)
	b.WriteString("\n\n## Key insights\n\n")
	for _, insight := range session.KeyInsights {
		b.WriteString("- " + insight + "\n")
	}
	b.WriteString("\n## Transcript\n\n")
	for _, m := range session.Messages {
		speaker := "Companion"
		if m.Role == domain.RoleUser {
			speaker = "You"
		}
		fmt.Fprintf(&b, "**%s** (%s): %s\n\n", speaker, m.Timestamp.Format("15:04"), m.Content)
	}
	return b.String()
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(v)
	}
}

func asInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	default:
		return 0
	}
}

func asTime(v any) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x
	case string:
		t, _ := time.Parse(time.RFC3339Nano, x)
		return t
	default:
		return time.Time{}
	}
}

func asStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item != nil {
			out = append(out, fmt.Sprint(item))
		}
	}
	return out
}
