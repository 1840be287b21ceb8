// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands against a temp SQLite data dir and checks what was stored.
package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/hoops/internal/models"
	"github.com/harperreed/hoops/internal/stats"
	"github.com/harperreed/hoops/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func TestParseShots(t *testing.T) {
	tests := []struct {
		in         string
		made, miss int
		wantErr    bool
	}{
		{"8/10", 8, 2, false},
		{" 0/5 ", 0, 5, false},
		{"10/10", 10, 0, false},
		{"0/0", 0, 0, false},
		{"11/10", 0, 0, true},
		{"-1/10", 0, 0, true},
		{"8", 0, 0, true},
		{"a/10", 0, 0, true},
		{"8/b", 0, 0, true},
		{"1/2/3", 0, 0, true},
	}
	for _, tt := range tests {
		made, missed, err := parseShots(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseShots(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if made != tt.made || missed != tt.miss {
			t.Errorf("parseShots(%q) = %d, %d, want %d, %d", tt.in, made, missed, tt.made, tt.miss)
		}
	}
}

func TestParseDateFlag(t *testing.T) {
	pinClock(t, time.Date(2024, 6, 11, 9, 0, 0, 0, time.Local))

	d, err := parseDateFlag("")
	if err != nil {
		t.Fatalf("parseDateFlag failed: %v", err)
	}
	if d.String() != "2024-06-11" {
		t.Errorf("empty date = %s, want today", d)
	}

	d, err = parseDateFlag("2024-01-31")
	if err != nil || d.String() != "2024-01-31" {
		t.Errorf("parseDateFlag(2024-01-31) = %s, %v", d, err)
	}

	if _, err := parseDateFlag("31-01-2024"); err == nil {
		t.Error("expected error for invalid date")
	}

	opt, err := parseOptionalDate("")
	if err != nil || opt != nil {
		t.Errorf("parseOptionalDate(\"\") = %v, %v, want nil", opt, err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not cut, got %q", got)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		value, max, width int
		want              int
	}{
		{0, 10, 20, 0},
		{5, 0, 20, 0},
		{10, 10, 20, 20},
		{5, 10, 20, 10},
		{1, 100, 20, 1},
	}
	for _, tt := range tests {
		if got := len([]rune(bar(tt.value, tt.max, tt.width))); got != tt.want {
			t.Errorf("bar(%d, %d, %d) width = %d, want %d", tt.value, tt.max, tt.width, got, tt.want)
		}
	}
}

func TestTallyLine(t *testing.T) {
	if got := tallyLine(stats.Tally{Made: 18, Attempts: 25}); got != "18/25 (72%)" {
		t.Errorf("tallyLine = %q", got)
	}
	if got := tallyLine(stats.Tally{}); got != "0/0 (0%)" {
		t.Errorf("tallyLine of empty tally = %q", got)
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "hoops" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "hoops")
	}
	for _, name := range []string{"config", "backend", "data-dir", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"session", "pickup", "game", "drills", "stats", "progress", "history",
		"export", "import", "migrate", "sync", "remind", "mcp", "install-skill",
	}
	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("Expected %s command to be registered", name)
		}
	}
}

func TestSessionAddShotFlags(t *testing.T) {
	for _, f := range shotFlags {
		if sessionAddCmd.Flags().Lookup(f.name) == nil {
			t.Errorf("Expected --%s flag on session add", f.name)
		}
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	for _, format := range []string{"json", "yaml", "markdown", "xlsx", "ics"} {
		found := false
		for _, v := range exportCmd.ValidArgs {
			if v == format {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected %q in export ValidArgs", format)
		}
	}
}

func TestSkipStorageAnnotations(t *testing.T) {
	for _, c := range []*cobra.Command{installSkillCmd, syncLinkCmd, syncUnlinkCmd, syncRepairCmd, syncWipeCmd} {
		if c.Annotations[skipStorage] != "true" {
			t.Errorf("%s should not open storage", c.CommandPath())
		}
	}
}

// pinClock fixes "today" for the duration of the test.
func pinClock(t *testing.T, now time.Time) {
	t.Helper()
	orig := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = orig })
}

// resetFlags restores every flag to its default so commands do not leak
// state between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// setupTestCLI points the CLI at a temp data dir with a missing config
// file and pins the clock. It returns the data dir.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	resetFlags(rootCmd)
	dataDirFlag = filepath.Join(dir, "data", "hoops")
	pinClock(t, time.Date(2024, 6, 11, 18, 0, 0, 0, time.Local))

	t.Cleanup(func() {
		_ = closeStorage()
		resetFlags(rootCmd)
	})
	return dataDirFlag
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return Execute()
}

// openTestDB opens the SQLite store the CLI wrote to.
func openTestDB(t *testing.T, dataDir string) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(dataDir, "hoops.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSessionAddCmdWithDB(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := run(t, "session", "add", "--ft", "8/10", "--three", "4/10", "--notes", "felt good"); err != nil {
		t.Fatalf("session add failed: %v", err)
	}

	db := openTestDB(t, dataDir)
	sessions, err := storage.LoadSessionsWithShots(context.Background(), db, storage.SessionQuery{})
	if err != nil {
		t.Fatalf("LoadSessionsWithShots failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.Date.String() != "2024-06-11" {
		t.Errorf("Expected session dated today, got %s", s.Date)
	}
	if s.Notes == nil || *s.Notes != "felt good" {
		t.Error("Notes not set correctly")
	}
	if len(s.ShotLogs) != 2 {
		t.Fatalf("Expected 2 shot logs, got %d", len(s.ShotLogs))
	}
	if total := stats.TallySession(s); total.Made != 12 || total.Attempts != 20 {
		t.Errorf("Expected 12/20, got %d/%d", total.Made, total.Attempts)
	}
}

func TestSessionAddCmdErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad shots", []string{"session", "add", "--ft", "11/10"}},
		{"bad mood", []string{"session", "add", "--mood", "sleepy"}},
		{"bad date", []string{"session", "add", "--date", "June 1"}},
		{"both video sources", []string{"session", "add", "--video-url", "https://x", "--video-file", "a.mp4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataDir := setupTestCLI(t)
			if err := run(t, tt.args...); err == nil {
				t.Fatal("expected an error")
			}

			db := openTestDB(t, dataDir)
			sessions, err := db.ListSessions(context.Background(), storage.SessionQuery{})
			if err != nil {
				t.Fatalf("ListSessions failed: %v", err)
			}
			if len(sessions) != 0 {
				t.Errorf("Expected nothing stored, got %d sessions", len(sessions))
			}
		})
	}
}

func TestPickupAddCmd(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := run(t, "pickup", "add", "--result", "win", "--pts", "12", "--location", "YMCA"); err != nil {
		t.Fatalf("pickup add failed: %v", err)
	}

	resetFlags(rootCmd)
	dataDirFlag = dataDir
	if err := run(t, "pickup", "add", "--result", "tie"); err == nil {
		t.Error("expected error for unknown result")
	}

	db := openTestDB(t, dataDir)
	games, err := db.ListPickupGames(context.Background(), storage.GameQuery{})
	if err != nil {
		t.Fatalf("ListPickupGames failed: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("Expected 1 pickup game, got %d", len(games))
	}
	if games[0].Result != models.ResultWin || games[0].Points != 12 {
		t.Errorf("unexpected game %+v", games[0])
	}
}

func TestGameAddCmd(t *testing.T) {
	dataDir := setupTestCLI(t)

	err := run(t, "game", "add", "Eagles", "--date", "2024-06-01", "--status", "completed",
		"--team-score", "61", "--opp-score", "58", "--pts", "14")
	if err != nil {
		t.Fatalf("game add failed: %v", err)
	}

	resetFlags(rootCmd)
	dataDirFlag = dataDir
	if err := run(t, "game", "add", "Hawks", "--date", "2024-06-20", "--time", "19:30", "--pts", "9"); err != nil {
		t.Fatalf("game add scheduled failed: %v", err)
	}

	db := openTestDB(t, dataDir)
	games, err := db.ListOfficialGames(context.Background(), storage.GameQuery{Order: storage.Asc})
	if err != nil {
		t.Fatalf("ListOfficialGames failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("Expected 2 official games, got %d", len(games))
	}

	done := games[0]
	if done.TeamScore == nil || *done.TeamScore != 61 || done.OpponentScore == nil || *done.OpponentScore != 58 {
		t.Errorf("final score not stored: %+v", done)
	}
	if done.Points != 14 {
		t.Errorf("Expected 14 points, got %d", done.Points)
	}

	scheduled := games[1]
	if scheduled.Status != models.StatusScheduled {
		t.Errorf("Expected scheduled status, got %s", scheduled.Status)
	}
	if scheduled.Points != 0 || scheduled.TeamScore != nil {
		t.Error("scheduled games should not keep stats or scores")
	}
}

const scheduleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//League//Schedule//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:g1@league\r\n" +
	"DTSTART:20240614T190000Z\r\n" +
	"SUMMARY:vs Bulls\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:g2@league\r\n" +
	"DTSTART;VALUE=DATE:20240620\r\n" +
	"SUMMARY:@ Eagles\r\n" +
	"STATUS:CANCELLED\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestGameImportCmd(t *testing.T) {
	dataDir := setupTestCLI(t)

	path := filepath.Join(t.TempDir(), "league.ics")
	if err := os.WriteFile(path, []byte(scheduleICS), 0600); err != nil {
		t.Fatal(err)
	}

	if err := run(t, "game", "import", path, "--tz", "UTC"); err != nil {
		t.Fatalf("game import failed: %v", err)
	}
	resetFlags(rootCmd)
	dataDirFlag = dataDir
	if err := run(t, "game", "import", path, "--tz", "UTC"); err != nil {
		t.Fatalf("second import failed: %v", err)
	}

	db := openTestDB(t, dataDir)
	games, err := db.ListOfficialGames(context.Background(), storage.GameQuery{Order: storage.Asc})
	if err != nil {
		t.Fatalf("ListOfficialGames failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("Expected 2 games after importing twice, got %d", len(games))
	}
	if games[0].Opponent != "Bulls" || games[1].Opponent != "Eagles" {
		t.Errorf("unexpected opponents %s, %s", games[0].Opponent, games[1].Opponent)
	}
	if games[1].Status != models.StatusCancelled {
		t.Errorf("Expected cancelled game, got %s", games[1].Status)
	}
}

func TestReadCommandsRun(t *testing.T) {
	cmds := [][]string{
		{"stats"},
		{"progress"},
		{"progress", "--type", "free_throw"},
		{"history"},
		{"history", "--month", "2024-06", "--date", "2024-06-10"},
		{"drills"},
		{"drills", "--day", "friday", "--done", "warmup-mikan"},
		{"drills", "--all"},
		{"session", "list"},
		{"pickup", "list"},
		{"game", "list"},
	}

	for _, empty := range []bool{true, false} {
		for _, args := range cmds {
			name := strings.Join(args, " ")
			if !empty {
				name += " with data"
			}
			t.Run(name, func(t *testing.T) {
				dataDir := setupTestCLI(t)
				if !empty {
					seedCLI(t, dataDir)
				}
				if err := run(t, args...); err != nil {
					t.Errorf("%s failed: %v", strings.Join(args, " "), err)
				}
			})
		}
	}
}

func TestProgressCmdRejectsUnknownType(t *testing.T) {
	setupTestCLI(t)
	if err := run(t, "progress", "--type", "dunk"); err == nil {
		t.Error("expected error for unknown shot type")
	}
}

func TestDrillsCmdRejectsUnknownDrill(t *testing.T) {
	setupTestCLI(t)
	err := run(t, "drills", "--done", "warmup-mikan,nope")
	if err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("expected unknown drill error, got %v", err)
	}
}

// seedCLI writes a couple of sessions and games straight into the store.
func seedCLI(t *testing.T, dataDir string) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(filepath.Join(dataDir, "hoops.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	for _, day := range []string{"2024-06-10", "2024-06-11"} {
		s := models.NewTrainingSession(models.MustParseDate(day))
		logs := []models.ShotLog{
			*models.NewShotLog(s.ID, models.ShotFreeThrow, 8, 2),
			*models.NewShotLog(s.ID, models.ShotThreePointer, 4, 6),
		}
		if err := db.CreateSession(ctx, s, logs); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	}
	if err := db.CreatePickupGame(ctx, models.NewPickupGame(models.MustParseDate("2024-06-09"), models.ResultWin)); err != nil {
		t.Fatalf("CreatePickupGame failed: %v", err)
	}
	if err := db.CreateOfficialGame(ctx, models.NewOfficialGame(models.MustParseDate("2024-06-20"), "Hawks")); err != nil {
		t.Fatalf("CreateOfficialGame failed: %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dataDir := setupTestCLI(t)
	seedCLI(t, dataDir)

	out := filepath.Join(t.TempDir(), "backup.json")
	if err := run(t, "export", "json", "-o", out); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if !strings.Contains(string(raw), "Hawks") {
		t.Error("export should contain the scheduled game")
	}

	fresh := setupTestCLI(t)
	if err := run(t, "import", out); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	db := openTestDB(t, fresh)
	data, err := db.GetAllData(context.Background())
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	counts := storage.CountData(data)
	if counts.Sessions != 2 || counts.ShotLogs != 4 || counts.PickupGames != 1 || counts.OfficialGames != 1 {
		t.Errorf("unexpected counts after import: %+v", counts)
	}
}

func TestExportFormats(t *testing.T) {
	dataDir := setupTestCLI(t)
	seedCLI(t, dataDir)

	for _, format := range []string{"yaml", "markdown", "xlsx", "ics"} {
		t.Run(format, func(t *testing.T) {
			resetFlags(rootCmd)
			dataDirFlag = dataDir
			out := filepath.Join(t.TempDir(), "export."+format)
			if err := run(t, "export", format, "-o", out); err != nil {
				t.Fatalf("export %s failed: %v", format, err)
			}
			info, err := os.Stat(out)
			if err != nil {
				t.Fatalf("export file missing: %v", err)
			}
			if info.Size() == 0 {
				t.Error("export file is empty")
			}
		})
	}

	resetFlags(rootCmd)
	dataDirFlag = dataDir
	if err := run(t, "export", "csv"); err == nil {
		t.Error("expected error for unknown format")
	}
	resetFlags(rootCmd)
	dataDirFlag = dataDir
	if err := run(t, "export", "xlsx"); err == nil {
		t.Error("xlsx export without --output should fail")
	}
}

func TestMigrateCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	seedCLI(t, dataDir)

	if err := run(t, "migrate", "--to", "badger", "--dry-run"); err != nil {
		t.Fatalf("migrate dry run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "badger")); !os.IsNotExist(err) {
		t.Error("dry run should not create the destination")
	}

	resetFlags(rootCmd)
	dataDirFlag = dataDir
	if err := run(t, "migrate", "--to", "badger"); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	dst, err := storage.OpenBadger(filepath.Join(dataDir, "badger"), zap.NewNop())
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	data, err := dst.GetAllData(context.Background())
	dst.Close()
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	if got := storage.CountData(data).Sessions; got != 2 {
		t.Errorf("Expected 2 migrated sessions, got %d", got)
	}

	resetFlags(rootCmd)
	dataDirFlag = dataDir
	if err := run(t, "migrate", "--to", "badger"); err == nil {
		t.Error("second migration into a non-empty destination should fail")
	}
	resetFlags(rootCmd)
	dataDirFlag = dataDir
	if err := run(t, "migrate", "--to", "sqlite"); err == nil {
		t.Error("migrating onto the active backend should fail")
	}
}

func TestRemindCmd(t *testing.T) {
	var titles []string
	orig := notify
	notify = func(title, message string) error {
		titles = append(titles, title)
		return nil
	}
	t.Cleanup(func() { notify = orig })

	dataDir := setupTestCLI(t)
	if err := run(t, "remind"); err != nil {
		t.Fatalf("remind failed: %v", err)
	}
	if len(titles) != 1 || titles[0] != "Time to shoot" {
		t.Errorf("Expected one 'Time to shoot' notification, got %v", titles)
	}

	resetFlags(rootCmd)
	dataDirFlag = dataDir
	if err := run(t, "remind", "--print"); err != nil {
		t.Fatalf("remind --print failed: %v", err)
	}
	if len(titles) != 1 {
		t.Error("--print should not notify")
	}

	seedCLI(t, dataDir)
	resetFlags(rootCmd)
	dataDirFlag = dataDir
	if err := run(t, "remind"); err != nil {
		t.Fatalf("remind failed: %v", err)
	}
	if len(titles) != 1 {
		t.Error("no notification once today's session is logged")
	}
}

func TestSyncStatusWithoutCharm(t *testing.T) {
	setupTestCLI(t)
	if err := run(t, "sync", "status"); err != nil {
		t.Errorf("sync status on sqlite should only warn, got %v", err)
	}
}

func TestUnknownBackendFlag(t *testing.T) {
	setupTestCLI(t)
	if err := run(t, "--backend", "markdown", "stats"); err == nil {
		t.Error("expected error for unknown backend")
	}
}
