package out_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	progressout "fathom/internal/modules/progression/adapter/out"
	"fathom/internal/modules/progression/domain"
	apperrors "fathom/internal/platform/errors"
)

func TestFileStateStoreRoundTrip(t *testing.T) {
	t.Parallel()
	store := progressout.NewFileStateStore(t.TempDir())
	ctx := context.Background()

	fresh, err := store.Load(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Level)
	assert.Equal(t, "local", fresh.UserID)

	state := fresh
	state.StreakCurrent = 3
	state.StreakLongest = 5
	state.LastActiveDate = "2026-03-04"
	state.Experience = 240
	state.Level = domain.LevelFor(240)
	state.Badges = []domain.BadgeID{domain.BadgeFirstSteps, domain.BadgeStreak3}
	state.Materials = []string{"mindfulness-basics"}
	state.JourneyHistory = []domain.Journey{{DurationDays: 7, StartDate: "2026-02-01", EndDate: "2026-02-08", Completed: true, XPMultiplier: 1.25}}
	state.UpdatedAt = time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx, "local")
	require.NoError(t, err)
	if diff := cmp.Diff(state, loaded); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStateStoreFailuresAreStoreUnavailable(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := progressout.NewFileStateStore(dir)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Load(canceled, "local"); !errors.Is(err, apperrors.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable for canceled context, got %v", err)
	}

	if err := os.MkdirAll(filepath.Join(dir, "progress"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "progress", "local.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt state: %v", err)
	}
	if _, err := store.Load(context.Background(), "local"); !errors.Is(err, apperrors.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable for corrupt file, got %v", err)
	}
}

func TestYAMLCatalogStoreOverridesDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	ctx := context.Background()

	catalog, err := progressout.NewYAMLCatalogStore(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCatalog(), catalog)

	override := `
rules:
  session_xp: 20
journeys:
  - days: 21
    name: Three Weeks
    multiplier: 1.75
streak_freeze_cost: 80
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))
	catalog, err = progressout.NewYAMLCatalogStore(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, catalog.Rules.SessionXP)
	assert.Equal(t, 5, catalog.Rules.MessageXP, "unset rules keep defaults")
	assert.Equal(t, 80, catalog.StreakFreezeCost)
	require.Len(t, catalog.Journeys, 1)
	assert.Equal(t, 21, catalog.Journeys[0].Days)
	assert.Len(t, catalog.Materials, len(domain.DefaultCatalog().Materials))

	require.NoError(t, os.WriteFile(path, []byte("journeys:\n  - days: 5\n    multiplier: 0.5\n"), 0o644))
	if _, err := progressout.NewYAMLCatalogStore(path).Load(ctx); err == nil {
		t.Fatalf("invalid multiplier should fail")
	}
}

func TestWriteDefaultCatalogDoesNotOverwrite(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".fathom", "catalog.yaml")
	written, err := progressout.WriteDefaultCatalog(path)
	require.NoError(t, err)
	assert.True(t, written)
	written, err = progressout.WriteDefaultCatalog(path)
	require.NoError(t, err)
	assert.False(t, written)

	catalog, err := progressout.NewYAMLCatalogStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCatalog(), catalog)
}

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Skipf("sqlite3 driver unavailable: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("sqlite3 driver unavailable: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteEventLogRecentIsNewestFirst(t *testing.T) {
	t.Parallel()
	log, err := progressout.NewSQLiteEventLogDB(openMemoryDB(t))
	require.NoError(t, err)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	events := []domain.Event{
		{ID: "e1", UserID: "local", Kind: domain.EventSession, Experience: 10, Level: 1, Streak: 1, At: base,
			Outcomes: []domain.Outcome{{Kind: domain.OutcomeBadgeEarned, Badge: domain.BadgeFirstSteps}}},
		{ID: "e2", UserID: "local", Kind: domain.EventMessage, Experience: 15, Level: 1, Streak: 1, At: base.Add(500 * time.Millisecond)},
		{ID: "e3", UserID: "local", Kind: domain.EventPurchase, Detail: "mindfulness-basics", Experience: 5, Level: 1, Streak: 1, At: base.Add(time.Second)},
		{ID: "x1", UserID: "other", Kind: domain.EventSession, At: base.Add(2 * time.Second)},
	}
	for _, e := range events {
		require.NoError(t, log.Append(ctx, e))
	}
	require.NoError(t, log.Append(ctx, events[0]), "appending the same id twice is ignored")

	recent, err := log.Recent(ctx, "local", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "e3", recent[0].ID)
	assert.Equal(t, "mindfulness-basics", recent[0].Detail)
	assert.Equal(t, "e2", recent[1].ID)

	all, err := log.Recent(ctx, "local", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, events[0].Outcomes, all[2].Outcomes)
	assert.True(t, all[2].At.Equal(base))
}
