// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/hoops/internal/drills"
	"github.com/harperreed/hoops/internal/stats"
	"github.com/harperreed/hoops/internal/storage"
	"github.com/harperreed/hoops/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Monday 2024-06-10.
var testNow = time.Date(2024, 6, 10, 18, 0, 0, 0, time.Local)

// setupTestServer creates a server over a temp SQLite database.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "hoops.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := tracker.New(db, zap.NewNop(), tracker.WithClock(func() time.Time { return testNow }))
	server, err := NewServer(svc)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func intPtr(v int) *int { return &v }

func TestNewServer(t *testing.T) {
	server := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.svc == nil {
		t.Error("Expected non-nil svc")
	}
}

func TestHandleLogSession(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     logSessionInput
		wantErr   bool
		errSubstr string
		wantDate  string
		wantPct   int
	}{
		{
			name: "defaults to today",
			input: logSessionInput{
				Shots: []shotInput{{ShotType: "free_throw", Made: 10, Missed: 5}},
			},
			wantDate: "2024-06-10",
			wantPct:  67,
		},
		{
			name: "explicit date and fields",
			input: logSessionInput{
				Date:       "2024-06-08",
				Difficulty: 4,
				Mood:       "great",
				Notes:      "corner threes",
				Shots: []shotInput{
					{ShotType: "three_pointer", Made: 8, Missed: 2},
					{ShotType: "post", Made: 0, Missed: 0},
				},
			},
			wantDate: "2024-06-08",
			wantPct:  80,
		},
		{
			name:      "unknown shot type",
			input:     logSessionInput{Shots: []shotInput{{ShotType: "hook", Made: 1}}},
			wantErr:   true,
			errSubstr: "unknown shot type",
		},
		{
			name:      "unknown mood",
			input:     logSessionInput{Mood: "sleepy"},
			wantErr:   true,
			errSubstr: "unknown mood",
		},
		{
			name:      "difficulty out of range",
			input:     logSessionInput{Difficulty: 9},
			wantErr:   true,
			errSubstr: "difficulty",
		},
		{
			name:      "bad date",
			input:     logSessionInput{Date: "10/06/2024"},
			wantErr:   true,
			errSubstr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleLogSession(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if tt.errSubstr != "" && !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Expected error containing %q, got %q", tt.errSubstr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if output.Date != tt.wantDate {
				t.Errorf("Expected date %s, got %s", tt.wantDate, output.Date)
			}
			if output.Accuracy != tt.wantPct {
				t.Errorf("Expected accuracy %d, got %d", tt.wantPct, output.Accuracy)
			}
			if len(output.ID) != 8 {
				t.Errorf("Expected 8-char ID, got %q", output.ID)
			}
		})
	}
}

func TestHandleListSessions(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	for _, date := range []string{"2024-06-01", "2024-06-05", "2024-06-09"} {
		input := logSessionInput{Date: date, Shots: []shotInput{{ShotType: "layup", Made: 3, Missed: 1}}}
		if _, _, err := server.handleLogSession(ctx, &mcp.CallToolRequest{}, input); err != nil {
			t.Fatalf("handleLogSession failed: %v", err)
		}
	}

	_, output, err := server.handleListSessions(ctx, &mcp.CallToolRequest{}, listSessionsInput{})
	if err != nil {
		t.Fatalf("handleListSessions failed: %v", err)
	}
	if output.Count != 3 {
		t.Fatalf("Expected 3 sessions, got %d", output.Count)
	}
	if output.Sessions[0].Date != "2024-06-09" {
		t.Errorf("Expected newest first, got %s", output.Sessions[0].Date)
	}

	_, output, err = server.handleListSessions(ctx, &mcp.CallToolRequest{}, listSessionsInput{From: "2024-06-02", To: "2024-06-08"})
	if err != nil {
		t.Fatalf("handleListSessions failed: %v", err)
	}
	if output.Count != 1 || output.Sessions[0].Date != "2024-06-05" {
		t.Errorf("Expected only 2024-06-05, got %+v", output.Sessions)
	}

	_, output, err = server.handleListSessions(ctx, &mcp.CallToolRequest{}, listSessionsInput{Limit: 2})
	if err != nil {
		t.Fatalf("handleListSessions failed: %v", err)
	}
	if output.Count != 2 {
		t.Errorf("Expected limit 2, got %d", output.Count)
	}

	if _, _, err := server.handleListSessions(ctx, &mcp.CallToolRequest{}, listSessionsInput{From: "june"}); err == nil {
		t.Error("Expected error for bad from date")
	}
}

func TestHandleLogPickupGame(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, output, err := server.handleLogPickupGame(ctx, &mcp.CallToolRequest{}, logPickupGameInput{
		Result:   "win",
		Location: "YMCA",
		Points:   14,
	})
	if err != nil {
		t.Fatalf("handleLogPickupGame failed: %v", err)
	}
	if !strings.Contains(output.Message, "Logged pickup win on 2024-06-10") {
		t.Errorf("Unexpected message: %s", output.Message)
	}

	if _, _, err := server.handleLogPickupGame(ctx, &mcp.CallToolRequest{}, logPickupGameInput{Result: "draw"}); err == nil {
		t.Error("Expected error for invalid result")
	}
}

func TestHandleLogOfficialGame(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	if _, _, err := server.handleLogOfficialGame(ctx, &mcp.CallToolRequest{}, logOfficialGameInput{Opponent: "  "}); err == nil {
		t.Error("Expected error for blank opponent")
	}
	if _, _, err := server.handleLogOfficialGame(ctx, &mcp.CallToolRequest{}, logOfficialGameInput{Opponent: "Hawks", Status: "postponed"}); err == nil {
		t.Error("Expected error for invalid status")
	}
	if _, _, err := server.handleLogOfficialGame(ctx, &mcp.CallToolRequest{}, logOfficialGameInput{Opponent: "Hawks", Time: "7pm"}); err == nil {
		t.Error("Expected error for invalid time")
	}

	_, _, err := server.handleLogOfficialGame(ctx, &mcp.CallToolRequest{}, logOfficialGameInput{
		Opponent:      "Hawks",
		Date:          "2024-06-01",
		Status:        "completed",
		TeamScore:     intPtr(61),
		OpponentScore: intPtr(58),
		Points:        14,
	})
	if err != nil {
		t.Fatalf("handleLogOfficialGame failed: %v", err)
	}

	_, output, err := server.handleLogOfficialGame(ctx, &mcp.CallToolRequest{}, logOfficialGameInput{
		Opponent:  "Eagles",
		Date:      "2024-06-20",
		Time:      "19:30",
		TeamScore: intPtr(99),
		Points:    30,
	})
	if err != nil {
		t.Fatalf("handleLogOfficialGame failed: %v", err)
	}
	if !strings.Contains(output.Message, "scheduled game vs Eagles") {
		t.Errorf("Unexpected message: %s", output.Message)
	}

	_, raw, err := server.handleListGames(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("handleListGames failed: %v", err)
	}
	games := raw.(*tracker.Games)
	if len(games.Upcoming) != 1 || len(games.Past) != 1 {
		t.Fatalf("Expected 1 upcoming and 1 past, got %d/%d", len(games.Upcoming), len(games.Past))
	}
	if games.Upcoming[0].TeamScore != nil || games.Upcoming[0].Points != 0 {
		t.Error("Scheduled game should have scores and stats cleared")
	}
	if games.Past[0].Points != 14 {
		t.Errorf("Expected completed game to keep 14 points, got %d", games.Past[0].Points)
	}
}

func TestHandleGetDashboard(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	for _, in := range []logSessionInput{
		{Date: "2024-06-09", Shots: []shotInput{{ShotType: "free_throw", Made: 10, Missed: 5}}},
		{Date: "2024-06-10", Shots: []shotInput{{ShotType: "three_pointer", Made: 8, Missed: 2}}},
	} {
		if _, _, err := server.handleLogSession(ctx, &mcp.CallToolRequest{}, in); err != nil {
			t.Fatalf("handleLogSession failed: %v", err)
		}
	}

	_, raw, err := server.handleGetDashboard(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("handleGetDashboard failed: %v", err)
	}
	ov := raw.(*tracker.Overview)
	if ov.OverallAccuracy != 72 {
		t.Errorf("Expected 72%% overall, got %d", ov.OverallAccuracy)
	}
	if ov.Streak != 2 {
		t.Errorf("Expected streak 2, got %d", ov.Streak)
	}
	if ov.BestType == nil || ov.BestType.ShotType != "three_pointer" {
		t.Errorf("Expected three_pointer best, got %+v", ov.BestType)
	}
}

func TestHandleGetProgress(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	in := logSessionInput{Date: "2024-06-03", Shots: []shotInput{
		{ShotType: "layup", Made: 9, Missed: 1},
		{ShotType: "post", Made: 2, Missed: 2},
	}}
	if _, _, err := server.handleLogSession(ctx, &mcp.CallToolRequest{}, in); err != nil {
		t.Fatalf("handleLogSession failed: %v", err)
	}

	_, raw, err := server.handleGetProgress(ctx, &mcp.CallToolRequest{}, getProgressInput{})
	if err != nil {
		t.Fatalf("handleGetProgress failed: %v", err)
	}
	all := raw.(*stats.Progress)
	if len(all.ByType) != 5 {
		t.Errorf("Expected a series per shot type, got %d", len(all.ByType))
	}

	_, raw, err = server.handleGetProgress(ctx, &mcp.CallToolRequest{}, getProgressInput{ShotType: "post"})
	if err != nil {
		t.Fatalf("handleGetProgress failed: %v", err)
	}
	post := raw.(*stats.Progress)
	if len(post.ByType) != 1 || post.ByType[0].Points[0].Accuracy != 50 {
		t.Errorf("Expected one post series at 50%%, got %+v", post.ByType)
	}
	if len(post.Weekly) != 1 || post.Weekly[0].Shots != 14 {
		t.Errorf("Expected one week with 14 shots, got %+v", post.Weekly)
	}

	if _, _, err := server.handleGetProgress(ctx, &mcp.CallToolRequest{}, getProgressInput{ShotType: "dunk"}); err == nil {
		t.Error("Expected error for unknown shot type")
	}
}

func TestHandleGetDrills(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, raw, err := server.handleGetDrills(ctx, &mcp.CallToolRequest{}, getDrillsInput{})
	if err != nil {
		t.Fatalf("handleGetDrills failed: %v", err)
	}
	plan := raw.(drills.Plan)
	if plan.Day != 1 {
		t.Errorf("Expected Monday plan, got day %d", plan.Day)
	}
	if plan.Progress.Total != len(drills.Select(1)) {
		t.Errorf("Expected %d drills, got %d", len(drills.Select(1)), plan.Progress.Total)
	}

	done := []string{plan.Warmup[0].ID, " "}
	_, raw, err = server.handleGetDrills(ctx, &mcp.CallToolRequest{}, getDrillsInput{Day: "monday", Done: done})
	if err != nil {
		t.Fatalf("handleGetDrills failed: %v", err)
	}
	if raw.(drills.Plan).Progress.Done != 1 {
		t.Errorf("Expected 1 drill done, got %d", raw.(drills.Plan).Progress.Done)
	}

	_, _, err = server.handleGetDrills(ctx, &mcp.CallToolRequest{}, getDrillsInput{Day: "monday", Done: []string{plan.Warmup[0].ID, "not-a-drill"}})
	if err == nil || !strings.Contains(err.Error(), "not-a-drill") {
		t.Errorf("Expected unknown drill error, got %v", err)
	}

	if _, _, err := server.handleGetDrills(ctx, &mcp.CallToolRequest{}, getDrillsInput{Day: "funday"}); err == nil {
		t.Error("Expected error for invalid day")
	}
}

func readJSON(t *testing.T, res *mcp.ReadResourceResult) map[string]interface{} {
	t.Helper()
	if len(res.Contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(res.Contents))
	}
	if res.Contents[0].MIMEType != "application/json" {
		t.Errorf("Expected application/json, got %s", res.Contents[0].MIMEType)
	}
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(res.Contents[0].Text), &out); err != nil {
		t.Fatalf("Resource is not JSON: %v", err)
	}
	return out
}

func TestHandleDashboardResource(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	res, err := server.handleDashboardResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleDashboardResource failed: %v", err)
	}
	out := readJSON(t, res)
	if out["streak"] != float64(0) {
		t.Errorf("Expected streak 0 on empty store, got %v", out["streak"])
	}
	if res.Contents[0].URI != "hoops://dashboard" {
		t.Errorf("Unexpected URI %s", res.Contents[0].URI)
	}
}

func TestHandleTodayResource(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	for _, date := range []string{"2024-06-09", "2024-06-10"} {
		in := logSessionInput{Date: date, Shots: []shotInput{{ShotType: "mid_range", Made: 6, Missed: 4}}}
		if _, _, err := server.handleLogSession(ctx, &mcp.CallToolRequest{}, in); err != nil {
			t.Fatalf("handleLogSession failed: %v", err)
		}
	}

	res, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleTodayResource failed: %v", err)
	}
	out := readJSON(t, res)
	if out["date"] != "2024-06-10" {
		t.Errorf("Expected date 2024-06-10, got %v", out["date"])
	}
	if sessions := out["sessions"].([]interface{}); len(sessions) != 1 {
		t.Errorf("Expected only today's session, got %d", len(sessions))
	}
	reminder := out["reminder"].(map[string]interface{})
	if reminder["due"] != false {
		t.Errorf("Expected no reminder due, got %v", reminder["due"])
	}
}

func TestHandleProgressResource(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	res, err := server.handleProgressResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleProgressResource failed: %v", err)
	}
	out := readJSON(t, res)
	if weekly := out["weekly"].([]interface{}); len(weekly) != 0 {
		t.Errorf("Expected no weekly buckets, got %d", len(weekly))
	}
}
