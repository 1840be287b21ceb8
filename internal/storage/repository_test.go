// ABOUTME: Tests for Repository implementations.
// ABOUTME: Runs the same cases against SQLite and badger backends.
package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/hoops/internal/models"
	"go.uber.org/zap"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "hoops.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestBadger(t *testing.T) *KVStore {
	t.Helper()

	store, err := OpenBadger(filepath.Join(t.TempDir(), "badger"), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// forEachBackend runs fn once per locally testable backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, repo Repository)) {
	t.Helper()
	t.Run("sqlite", func(t *testing.T) { fn(t, setupTestDB(t)) })
	t.Run("badger", func(t *testing.T) { fn(t, setupTestBadger(t)) })
}

var base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newSession(day string, offset int) *models.TrainingSession {
	s := models.NewTrainingSession(models.MustParseDate(day))
	s.CreatedAt = base.Add(time.Duration(offset) * time.Minute)
	return s
}

func logsFor(s *models.TrainingSession, counts map[models.ShotType][2]int) []models.ShotLog {
	var logs []models.ShotLog
	for _, st := range models.AllShotTypes {
		c, ok := counts[st]
		if !ok {
			continue
		}
		l := models.NewShotLog(s.ID, st, c[0], c[1])
		l.CreatedAt = s.CreatedAt
		logs = append(logs, *l)
	}
	return logs
}

func TestCreateAndGetSession(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		s := newSession("2024-06-10", 0).WithDifficulty(4).WithMood(models.MoodTired).WithNotes("legs heavy")
		logs := logsFor(s, map[models.ShotType][2]int{
			models.ShotPost:      {3, 2},
			models.ShotFreeThrow: {8, 2},
		})
		// Insert out of canonical order; reads come back sorted.
		logs[0], logs[1] = logs[1], logs[0]

		if err := repo.CreateSession(ctx, s, logs); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		got, err := repo.GetSession(ctx, s.ID.String())
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got.ID != s.ID {
			t.Errorf("ID mismatch: got %v, want %v", got.ID, s.ID)
		}
		if got.Date != s.Date {
			t.Errorf("Date mismatch: got %v, want %v", got.Date, s.Date)
		}
		if got.Difficulty != 4 || got.Mood != models.MoodTired {
			t.Errorf("got difficulty %d mood %s, want 4 tired", got.Difficulty, got.Mood)
		}
		if got.Notes == nil || *got.Notes != "legs heavy" {
			t.Errorf("Notes mismatch: got %v", got.Notes)
		}
		if got.VideoURL != nil {
			t.Errorf("expected nil video URL, got %v", *got.VideoURL)
		}
		if len(got.ShotLogs) != 2 {
			t.Fatalf("expected 2 shot logs, got %d", len(got.ShotLogs))
		}
		if got.ShotLogs[0].ShotType != models.ShotFreeThrow || got.ShotLogs[1].ShotType != models.ShotPost {
			t.Errorf("shot logs not in canonical order: %v, %v", got.ShotLogs[0].ShotType, got.ShotLogs[1].ShotType)
		}
		if got.ShotLogs[0].Made != 8 || got.ShotLogs[0].Missed != 2 {
			t.Errorf("free throws: got %d/%d, want 8 made 2 missed", got.ShotLogs[0].Made, got.ShotLogs[0].Missed)
		}

		// Retrieve by 8-char prefix
		byPrefix, err := repo.GetSession(ctx, s.ID.String()[:8])
		if err != nil {
			t.Fatalf("GetSession by prefix failed: %v", err)
		}
		if byPrefix.ID != s.ID {
			t.Errorf("prefix lookup returned %v", byPrefix.ID)
		}
	})
}

func TestGetSessionErrors(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		_, err := repo.GetSession(ctx, "deadbeef")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		for i, id := range []string{
			"abcd1111-0000-4000-8000-000000000001",
			"abcd2222-0000-4000-8000-000000000002",
		} {
			s := newSession("2024-06-10", i)
			s.ID = uuid.MustParse(id)
			if err := repo.CreateSession(ctx, s, nil); err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}
		}

		_, err = repo.GetSession(ctx, "abcd")
		if !errors.Is(err, ErrAmbiguousPrefix) {
			t.Errorf("expected ErrAmbiguousPrefix, got %v", err)
		}

		got, err := repo.GetSession(ctx, "abcd2")
		if err != nil {
			t.Fatalf("unique prefix lookup failed: %v", err)
		}
		if len(got.ShotLogs) != 0 {
			t.Errorf("expected no shot logs, got %d", len(got.ShotLogs))
		}
	})
}

func TestCreateSessionValidation(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		tests := []struct {
			name  string
			build func() (*models.TrainingSession, []models.ShotLog)
		}{
			{"difficulty too high", func() (*models.TrainingSession, []models.ShotLog) {
				return newSession("2024-06-10", 0).WithDifficulty(6), nil
			}},
			{"negative duration", func() (*models.TrainingSession, []models.ShotLog) {
				return newSession("2024-06-10", 0).WithDuration(-5), nil
			}},
			{"unknown mood", func() (*models.TrainingSession, []models.ShotLog) {
				return newSession("2024-06-10", 0).WithMood("sleepy"), nil
			}},
			{"duplicate shot type", func() (*models.TrainingSession, []models.ShotLog) {
				s := newSession("2024-06-10", 0)
				return s, []models.ShotLog{
					*models.NewShotLog(s.ID, models.ShotLayup, 1, 1),
					*models.NewShotLog(s.ID, models.ShotLayup, 2, 2),
				}
			}},
			{"negative made", func() (*models.TrainingSession, []models.ShotLog) {
				s := newSession("2024-06-10", 0)
				return s, []models.ShotLog{*models.NewShotLog(s.ID, models.ShotLayup, -1, 1)}
			}},
			{"unknown shot type", func() (*models.TrainingSession, []models.ShotLog) {
				s := newSession("2024-06-10", 0)
				return s, []models.ShotLog{*models.NewShotLog(s.ID, "hook", 1, 1)}
			}},
			{"log for another session", func() (*models.TrainingSession, []models.ShotLog) {
				s := newSession("2024-06-10", 0)
				return s, []models.ShotLog{*models.NewShotLog(uuid.New(), models.ShotLayup, 1, 1)}
			}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s, logs := tt.build()
				if err := repo.CreateSession(ctx, s, logs); err == nil {
					t.Error("expected error, got nil")
				}
			})
		}

		sessions, err := repo.ListSessions(ctx, SessionQuery{})
		if err != nil {
			t.Fatalf("ListSessions failed: %v", err)
		}
		if len(sessions) != 0 {
			t.Errorf("rejected sessions were stored: %d", len(sessions))
		}
	})
}

func TestListSessions(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		days := []string{"2024-06-03", "2024-06-01", "2024-06-05", "2024-06-05", "2024-06-02"}
		var created []*models.TrainingSession
		for i, d := range days {
			s := newSession(d, i)
			if err := repo.CreateSession(ctx, s, nil); err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}
			created = append(created, s)
		}

		desc, err := repo.ListSessions(ctx, SessionQuery{})
		if err != nil {
			t.Fatalf("ListSessions failed: %v", err)
		}
		if len(desc) != 5 {
			t.Fatalf("expected 5 sessions, got %d", len(desc))
		}
		// Same-day sessions order by creation time.
		if desc[0].ID != created[3].ID || desc[1].ID != created[2].ID {
			t.Errorf("newest first: got %s, %s", desc[0].Date, desc[1].Date)
		}
		if desc[4].Date.String() != "2024-06-01" {
			t.Errorf("oldest last: got %s", desc[4].Date)
		}

		asc, err := repo.ListSessions(ctx, SessionQuery{Order: Asc, Limit: 2})
		if err != nil {
			t.Fatalf("ListSessions asc failed: %v", err)
		}
		if len(asc) != 2 || asc[0].Date.String() != "2024-06-01" || asc[1].Date.String() != "2024-06-02" {
			t.Errorf("asc with limit: got %v", asc)
		}

		from := models.MustParseDate("2024-06-02")
		to := models.MustParseDate("2024-06-03")
		ranged, err := repo.ListSessions(ctx, SessionQuery{From: &from, To: &to, Order: Asc})
		if err != nil {
			t.Fatalf("ListSessions range failed: %v", err)
		}
		if len(ranged) != 2 || ranged[0].Date != from || ranged[1].Date != to {
			t.Errorf("range: got %v", ranged)
		}
	})
}

func TestListShotLogsMembership(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		a := newSession("2024-06-01", 0)
		b := newSession("2024-06-02", 1)
		c := newSession("2024-06-03", 2)
		for _, s := range []*models.TrainingSession{a, b, c} {
			logs := logsFor(s, map[models.ShotType][2]int{
				models.ShotLayup:    {5, 5},
				models.ShotMidRange: {2, 8},
			})
			if err := repo.CreateSession(ctx, s, logs); err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}
		}

		logs, err := repo.ListShotLogs(ctx, []uuid.UUID{a.ID, c.ID})
		if err != nil {
			t.Fatalf("ListShotLogs failed: %v", err)
		}
		if len(logs) != 4 {
			t.Fatalf("expected 4 logs, got %d", len(logs))
		}
		for _, l := range logs {
			if l.SessionID == b.ID {
				t.Errorf("log from unrequested session %s", b.ID)
			}
		}

		empty, err := repo.ListShotLogs(ctx, nil)
		if err != nil {
			t.Fatalf("ListShotLogs(nil) failed: %v", err)
		}
		if len(empty) != 0 {
			t.Errorf("expected no logs, got %d", len(empty))
		}

		joined, err := LoadSessionsWithShots(ctx, repo, SessionQuery{Order: Asc})
		if err != nil {
			t.Fatalf("LoadSessionsWithShots failed: %v", err)
		}
		if len(joined) != 3 {
			t.Fatalf("expected 3 sessions, got %d", len(joined))
		}
		for _, s := range joined {
			if len(s.ShotLogs) != 2 || s.ShotLogs[0].ShotType != models.ShotMidRange {
				t.Errorf("session %s: got logs %v", s.Date, s.ShotLogs)
			}
		}
	})
}

func TestPickupGames(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		g1 := models.NewPickupGame(models.MustParseDate("2024-06-01"), models.ResultWin).
			WithLocation("Rucker Park").WithPlayers("Sam, Alex")
		g1.BoxScore = models.BoxScore{Points: 12, Assists: 3, Rebounds: 5}
		g2 := models.NewPickupGame(models.MustParseDate("2024-06-08"), models.ResultLoss)
		g2.CreatedAt = g1.CreatedAt.Add(time.Minute)

		for _, g := range []*models.PickupGame{g1, g2} {
			if err := repo.CreatePickupGame(ctx, g); err != nil {
				t.Fatalf("CreatePickupGame failed: %v", err)
			}
		}

		games, err := repo.ListPickupGames(ctx, GameQuery{})
		if err != nil {
			t.Fatalf("ListPickupGames failed: %v", err)
		}
		if len(games) != 2 {
			t.Fatalf("expected 2 games, got %d", len(games))
		}
		if games[0].ID != g2.ID {
			t.Errorf("expected newest first")
		}
		got := games[1]
		if got.Points != 12 || got.Assists != 3 || got.Rebounds != 5 {
			t.Errorf("box score mismatch: %v", got.BoxScore)
		}
		if got.Location == nil || *got.Location != "Rucker Park" {
			t.Errorf("location mismatch: %v", got.Location)
		}
		if got.PlayersNotes == nil || *got.PlayersNotes != "Sam, Alex" {
			t.Errorf("players mismatch: %v", got.PlayersNotes)
		}

		bad := models.NewPickupGame(models.MustParseDate("2024-06-09"), "draw")
		if err := repo.CreatePickupGame(ctx, bad); err == nil {
			t.Error("expected error for unknown result")
		}
	})
}

func TestOfficialGames(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		scheduled := models.NewOfficialGame(models.MustParseDate("2024-07-01"), "  Eagles ").WithTime("19:30")
		// Stats on a scheduled game are discarded.
		scheduled.TeamScore = intPtr(50)
		scheduled.Points = 20

		played := models.NewOfficialGame(models.MustParseDate("2024-06-01"), "Hawks").WithFinalScore(61, 58)
		played.BoxScore = models.BoxScore{Points: 14, Steals: 2}
		played.MinutesPlayed = 28
		played.Fouls = 3

		for _, g := range []*models.OfficialGame{scheduled, played} {
			if err := repo.CreateOfficialGame(ctx, g); err != nil {
				t.Fatalf("CreateOfficialGame failed: %v", err)
			}
		}

		blank := models.NewOfficialGame(models.MustParseDate("2024-07-02"), "   ")
		if err := repo.CreateOfficialGame(ctx, blank); !errors.Is(err, models.ErrOpponentRequired) {
			t.Errorf("expected ErrOpponentRequired, got %v", err)
		}

		status := models.StatusScheduled
		upcoming, err := repo.ListOfficialGames(ctx, GameQuery{Status: &status})
		if err != nil {
			t.Fatalf("ListOfficialGames failed: %v", err)
		}
		if len(upcoming) != 1 {
			t.Fatalf("expected 1 scheduled game, got %d", len(upcoming))
		}
		u := upcoming[0]
		if u.Opponent != "Eagles" {
			t.Errorf("opponent not trimmed: %q", u.Opponent)
		}
		if u.TeamScore != nil || u.Points != 0 {
			t.Errorf("scheduled game kept stats: score %v points %d", u.TeamScore, u.Points)
		}
		if u.Time == nil || *u.Time != "19:30" {
			t.Errorf("time mismatch: %v", u.Time)
		}

		all, err := repo.ListOfficialGames(ctx, GameQuery{Order: Asc})
		if err != nil {
			t.Fatalf("ListOfficialGames failed: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 games, got %d", len(all))
		}
		p := all[0]
		if p.TeamScore == nil || *p.TeamScore != 61 || p.OpponentScore == nil || *p.OpponentScore != 58 {
			t.Errorf("final score mismatch: %v-%v", p.TeamScore, p.OpponentScore)
		}
		if p.Points != 14 || p.Steals != 2 || p.MinutesPlayed != 28 || p.Fouls != 3 {
			t.Errorf("completed stats mismatch: %+v", p)
		}
	})
}

func TestRebind(t *testing.T) {
	tests := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{SQLite, "SELECT 1 WHERE a = ? AND b = ?", "SELECT 1 WHERE a = ? AND b = ?"},
		{Postgres, "SELECT 1 WHERE a = ? AND b = ?", "SELECT 1 WHERE a = $1 AND b = $2"},
		{Postgres, "SELECT 1", "SELECT 1"},
	}
	for _, tt := range tests {
		d := &DB{dialect: tt.dialect}
		if got := d.rebind(tt.in); got != tt.want {
			t.Errorf("rebind(%s, %q) = %q, want %q", tt.dialect, tt.in, got, tt.want)
		}
	}
}

func TestBuildListQuery(t *testing.T) {
	from := models.MustParseDate("2024-06-01")
	status := models.StatusCompleted

	query, args := buildListQuery("official_games", "id", &from, nil, &status, Asc, 5)
	want := "SELECT id FROM official_games WHERE date >= ? AND status = ? ORDER BY date ASC, created_at ASC LIMIT ?"
	if query != want {
		t.Errorf("query = %q\nwant    %q", query, want)
	}
	if len(args) != 3 || args[1] != "completed" || args[2] != 5 {
		t.Errorf("args = %v", args)
	}

	query, args = buildListQuery("training_sessions", "id", nil, nil, nil, Desc, 0)
	if query != "SELECT id FROM training_sessions ORDER BY date DESC, created_at DESC" {
		t.Errorf("unfiltered query = %q", query)
	}
	if len(args) != 0 {
		t.Errorf("unfiltered args = %v", args)
	}
}

func TestDataDirUsesXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	if got := DataDir(); got != "/tmp/xdg-data/hoops" {
		t.Errorf("DataDir() = %q", got)
	}
	if got := DefaultDBPath(); got != "/tmp/xdg-data/hoops/hoops.db" {
		t.Errorf("DefaultDBPath() = %q", got)
	}
}

func intPtr(n int) *int { return &n }
