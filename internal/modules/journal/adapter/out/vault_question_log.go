package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fathom/internal/modules/journal/domain"
	journalout "fathom/internal/modules/journal/port/out"
	"fathom/internal/platform/markdown"
	"fathom/internal/platform/storeio"
)

const (
	questionLogStart = "<!-- fathom:questions:start -->"
	questionLogEnd   = "<!-- fathom:questions:end -->"
)

// VaultQuestionLog mirrors answered daily questions into <vault>/journal/questions.md.
// Only the managed block is rewritten; anything the user adds around it is kept.
type VaultQuestionLog struct {
	journalout.QuestionStore
	path string
}

func NewVaultQuestionLog(store journalout.QuestionStore, vaultPath string) *VaultQuestionLog {
	return &VaultQuestionLog{QuestionStore: store, path: filepath.Join(vaultPath, "journal", "questions.md")}
}

func (l *VaultQuestionLog) Path() string { return l.path }

// Save stores the question and rebuilds the managed block from the store, so the
// log always matches the answered questions the store holds.
func (l *VaultQuestionLog) Save(ctx context.Context, question domain.DailyQuestion) error {
	if err := l.QuestionStore.Save(ctx, question); err != nil {
		return err
	}
	all, err := l.QuestionStore.List(ctx)
	if err != nil {
		return err
	}
	answered := make([]domain.DailyQuestion, 0, len(all))
	for _, q := range all {
		if q.Answered {
			answered = append(answered, q)
		}
	}
	return storeio.Run(ctx, func() error {
		body, err := os.ReadFile(l.path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read question log: %w", err)
		}
		if len(answered) == 0 && len(body) == 0 {
			return nil
		}
		updated := markdown.ReplaceManagedBlock(string(body), questionLogStart, questionLogEnd, renderQuestionLog(answered))
		if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
			return fmt.Errorf("create journal directory: %w", err)
		}
		if err := os.WriteFile(l.path, []byte(updated), 0o644); err != nil {
			return fmt.Errorf("write question log: %w", err)
		}
		return nil
	})
}

// renderQuestionLog expects answered sorted newest first.
func renderQuestionLog(answered []domain.DailyQuestion) string {
	var b strings.Builder
	for i, q := range answered {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n**%s**\n\n%s\n", q.Date, q.Question, strings.TrimSpace(q.Answer))
	}
	return strings.TrimRight(b.String(), "\n")
}
