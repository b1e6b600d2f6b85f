package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fathom/internal/modules/progression/domain"
	progressout "fathom/internal/modules/progression/port/out"

	_ "modernc.org/sqlite"
)

// eventTimeLayout has a fixed width so that text ordering matches time ordering.
const eventTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteEventLog struct {
	db *sql.DB
}

func NewSQLiteEventLog(dbPath string) (progressout.EventLog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return NewSQLiteEventLogDB(db)
}

// NewSQLiteEventLogDB uses an already opened database, whatever its driver.
func NewSQLiteEventLogDB(db *sql.DB) (*SQLiteEventLog, error) {
	log := &SQLiteEventLog{db: db}
	if err := log.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *SQLiteEventLog) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS progress_events (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  detail TEXT,
  outcomes TEXT NOT NULL,
  experience INTEGER NOT NULL,
  level INTEGER NOT NULL,
  streak INTEGER NOT NULL,
  at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_progress_events_user_at ON progress_events(user_id, at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create progress_events table: %w", err)
	}
	return nil
}

func (s *SQLiteEventLog) Append(ctx context.Context, event domain.Event) error {
	outcomes, err := json.Marshal(event.Outcomes)
	if err != nil {
		return fmt.Errorf("marshal outcomes: %w", err)
	}
	const stmt = `
INSERT INTO progress_events (id, user_id, kind, detail, outcomes, experience, level, streak, at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING;
`
	_, err = s.db.ExecContext(ctx, stmt,
		event.ID,
		event.UserID,
		string(event.Kind),
		event.Detail,
		string(outcomes),
		event.Experience,
		event.Level,
		event.Streak,
		event.At.UTC().Format(eventTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert progress event: %w", err)
	}
	return nil
}

func (s *SQLiteEventLog) Recent(ctx context.Context, userID string, limit int) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, kind, detail, outcomes, experience, level, streak, at
FROM progress_events
WHERE user_id = ?
ORDER BY at DESC, rowid DESC
LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query progress events: %w", err)
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var (
			event    domain.Event
			kind     string
			detail   sql.NullString
			outcomes string
			at       string
		)
		if err := rows.Scan(&event.ID, &kind, &detail, &outcomes, &event.Experience, &event.Level, &event.Streak, &at); err != nil {
			return nil, fmt.Errorf("scan progress event: %w", err)
		}
		event.UserID = userID
		event.Kind = domain.EventKind(kind)
		event.Detail = detail.String
		if err := json.Unmarshal([]byte(outcomes), &event.Outcomes); err != nil {
			return nil, fmt.Errorf("decode outcomes of %s: %w", event.ID, err)
		}
		event.At, _ = time.Parse(eventTimeLayout, at)
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress events: %w", err)
	}
	return out, nil
}
