package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fathom/internal/modules/journal/domain"
	journalout "fathom/internal/modules/journal/port/out"

	_ "modernc.org/sqlite"
)

const indexTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteEntryProjector mirrors vault notes into a table used for search.
type SQLiteEntryProjector struct {
	db *sql.DB
}

func NewSQLiteEntryProjector(dbPath string) (journalout.EntryIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return NewSQLiteEntryProjectorDB(db)
}

func NewSQLiteEntryProjectorDB(db *sql.DB) (*SQLiteEntryProjector, error) {
	projector := &SQLiteEntryProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteEntryProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS journal_entries (
  id TEXT PRIMARY KEY,
  title TEXT,
  content TEXT NOT NULL,
  purpose TEXT NOT NULL,
  role TEXT NOT NULL,
  date TEXT NOT NULL,
  note_path TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journal_entries_created ON journal_entries(created_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create journal_entries table: %w", err)
	}
	return nil
}

func (s *SQLiteEntryProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries`); err != nil {
		return fmt.Errorf("reset journal entries: %w", err)
	}
	return nil
}

func (s *SQLiteEntryProjector) UpsertEntry(ctx context.Context, entry domain.Entry) error {
	const stmt = `
INSERT INTO journal_entries (id, title, content, purpose, role, date, note_path, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  content=excluded.content,
  purpose=excluded.purpose,
  role=excluded.role,
  date=excluded.date,
  note_path=excluded.note_path,
  updated_at=excluded.updated_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		entry.ID,
		entry.Title,
		entry.Content,
		string(entry.Purpose),
		string(entry.Role),
		entry.Date,
		entry.NotePath,
		entry.CreatedAt.UTC().Format(indexTimeLayout),
		entry.UpdatedAt.UTC().Format(indexTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert journal entry: %w", err)
	}
	return nil
}

// Search matches the query case-insensitively against title and content, newest first.
func (s *SQLiteEntryProjector) Search(ctx context.Context, query string, limit int) ([]domain.Entry, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"
	const stmt = `
SELECT id, title, content, purpose, role, date, note_path, created_at, updated_at
FROM journal_entries
WHERE lower(content) LIKE ? ESCAPE '\' OR lower(title) LIKE ? ESCAPE '\'
ORDER BY created_at DESC, id DESC
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, stmt, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search journal entries: %w", err)
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		var (
			entry              domain.Entry
			title, notePath    sql.NullString
			purpose, role      string
			createdAt, updated string
		)
		if err := rows.Scan(&entry.ID, &title, &entry.Content, &purpose, &role, &entry.Date, &notePath, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.Title = title.String
		entry.NotePath = notePath.String
		entry.Purpose = domain.Purpose(purpose)
		entry.Role = domain.Role(role)
		entry.CreatedAt, _ = time.Parse(indexTimeLayout, createdAt)
		entry.UpdatedAt, _ = time.Parse(indexTimeLayout, updated)
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return out, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
