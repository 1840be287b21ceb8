// ABOUTME: MCP tool implementations for training sessions, games and drills.
// ABOUTME: Inputs are plain strings and numbers; dates are YYYY-MM-DD.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/hoops/internal/drills"
	"github.com/harperreed/hoops/internal/models"
	"github.com/harperreed/hoops/internal/stats"
	"github.com/harperreed/hoops/internal/storage"
	"github.com/harperreed/hoops/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_session",
		Description: "Log a shooting practice session with made/missed counts per shot type",
	}, s.handleLogSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List recent training sessions with accuracy, optionally within a date range",
	}, s.handleListSessions)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_pickup_game",
		Description: "Log a pickup game result and box score",
	}, s.handleLogPickupGame)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_official_game",
		Description: "Schedule or record an official league game",
	}, s.handleLogOfficialGame)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_games",
		Description: "List pickup games plus upcoming and past official games",
	}, s.handleListGames)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get streak, monthly sessions, overall and per-shot-type accuracy, and game records",
	}, s.handleGetDashboard)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_progress",
		Description: "Get accuracy series per session and per shot type plus weekly shot volume",
	}, s.handleGetProgress)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_drills",
		Description: "Get the drill plan for today or a given weekday, with completion progress",
	}, s.handleGetDrills)
}

// Tool input/output types

type shotInput struct {
	ShotType string `json:"shot_type" jsonschema:"Shot type: free_throw, three_pointer, mid_range, layup, post"`
	Made     int    `json:"made" jsonschema:"Shots made"`
	Missed   int    `json:"missed" jsonschema:"Shots missed"`
}

type logSessionInput struct {
	Date            string      `json:"date,omitempty" jsonschema:"Session date (YYYY-MM-DD), defaults to today"`
	Difficulty      int         `json:"difficulty,omitempty" jsonschema:"Difficulty 1-5, defaults to 3"`
	DurationMinutes int         `json:"duration_minutes,omitempty" jsonschema:"Duration in minutes, defaults to 60"`
	Mood            string      `json:"mood,omitempty" jsonschema:"Mood: great, good, ok, tired"`
	Notes           string      `json:"notes,omitempty" jsonschema:"Optional notes"`
	VideoURL        string      `json:"video_url,omitempty" jsonschema:"Link to a video of the session"`
	Shots           []shotInput `json:"shots,omitempty" jsonschema:"Made/missed counts per shot type"`
}

type sessionOutput struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Made     int    `json:"made"`
	Attempts int    `json:"attempts"`
	Accuracy int    `json:"accuracy"`
	Message  string `json:"message"`
}

type listSessionsInput struct {
	From  string `json:"from,omitempty" jsonschema:"Earliest date (YYYY-MM-DD)"`
	To    string `json:"to,omitempty" jsonschema:"Latest date (YYYY-MM-DD)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listSessionsOutput struct {
	Sessions []sessionOutput `json:"sessions"`
	Count    int             `json:"count"`
}

type logPickupGameInput struct {
	Date            string `json:"date,omitempty" jsonschema:"Game date (YYYY-MM-DD), defaults to today"`
	Result          string `json:"result" jsonschema:"Result: win or loss"`
	Location        string `json:"location,omitempty" jsonschema:"Court or gym"`
	DurationMinutes int    `json:"duration_minutes,omitempty" jsonschema:"Duration in minutes, defaults to 60"`
	Players         string `json:"players,omitempty" jsonschema:"Who played"`
	Points          int    `json:"points,omitempty" jsonschema:"Points scored"`
	Assists         int    `json:"assists,omitempty" jsonschema:"Assists"`
	Rebounds        int    `json:"rebounds,omitempty" jsonschema:"Rebounds"`
	Steals          int    `json:"steals,omitempty" jsonschema:"Steals"`
	Blocks          int    `json:"blocks,omitempty" jsonschema:"Blocks"`
	Notes           string `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type logOfficialGameInput struct {
	Opponent      string `json:"opponent" jsonschema:"Opposing team"`
	Date          string `json:"date,omitempty" jsonschema:"Game date (YYYY-MM-DD), defaults to today"`
	Time          string `json:"time,omitempty" jsonschema:"Tip-off time (HH:MM)"`
	Location      string `json:"location,omitempty" jsonschema:"Venue"`
	Status        string `json:"status,omitempty" jsonschema:"Status: scheduled, completed, cancelled (default scheduled)"`
	TeamScore     *int   `json:"team_score,omitempty" jsonschema:"Final team score, completed games only"`
	OpponentScore *int   `json:"opponent_score,omitempty" jsonschema:"Final opponent score, completed games only"`
	Points        int    `json:"points,omitempty" jsonschema:"Points scored"`
	Assists       int    `json:"assists,omitempty" jsonschema:"Assists"`
	Rebounds      int    `json:"rebounds,omitempty" jsonschema:"Rebounds"`
	Steals        int    `json:"steals,omitempty" jsonschema:"Steals"`
	Blocks        int    `json:"blocks,omitempty" jsonschema:"Blocks"`
	MinutesPlayed int    `json:"minutes_played,omitempty" jsonschema:"Minutes played"`
	Fouls         int    `json:"fouls,omitempty" jsonschema:"Personal fouls"`
	Notes         string `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type gameOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type emptyInput struct{}

type getProgressInput struct {
	ShotType string `json:"shot_type,omitempty" jsonschema:"Only return the series for this shot type"`
}

type getDrillsInput struct {
	Day  string   `json:"day,omitempty" jsonschema:"Weekday as 0-6 (0 = Sunday) or name, defaults to today"`
	Done []string `json:"done,omitempty" jsonschema:"IDs of drills already completed"`
}

// Tool handlers

func (s *Server) handleLogSession(ctx context.Context, req *mcp.CallToolRequest, input logSessionInput) (*mcp.CallToolResult, sessionOutput, error) {
	date, err := s.dateOrToday(input.Date)
	if err != nil {
		return nil, sessionOutput{}, err
	}

	session := models.NewTrainingSession(date)
	if input.Difficulty != 0 {
		session.WithDifficulty(input.Difficulty)
	}
	if input.DurationMinutes > 0 {
		session.WithDuration(input.DurationMinutes)
	}
	if input.Mood != "" {
		if !models.IsValidMood(input.Mood) {
			return nil, sessionOutput{}, fmt.Errorf("unknown mood: %s", input.Mood)
		}
		session.WithMood(models.Mood(input.Mood))
	}
	if input.Notes != "" {
		session.WithNotes(input.Notes)
	}
	if input.VideoURL != "" {
		session.WithVideoURL(input.VideoURL)
	}

	counts := make([]tracker.ShotCount, 0, len(input.Shots))
	for _, shot := range input.Shots {
		st, err := models.ParseShotType(shot.ShotType)
		if err != nil {
			return nil, sessionOutput{}, err
		}
		counts = append(counts, tracker.ShotCount{ShotType: st, Made: shot.Made, Missed: shot.Missed})
	}

	logged, err := s.svc.LogSession(ctx, session, counts)
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to log session: %w", err)
	}

	out := summarize(*logged)
	out.Message = fmt.Sprintf("Logged session on %s: %d/%d (%d%%) (ID: %s)",
		out.Date, out.Made, out.Attempts, out.Accuracy, out.ID)
	return nil, out, nil
}

func (s *Server) handleListSessions(ctx context.Context, req *mcp.CallToolRequest, input listSessionsInput) (*mcp.CallToolResult, listSessionsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	q := storage.SessionQuery{Limit: input.Limit}
	if input.From != "" {
		from, err := models.ParseDate(input.From)
		if err != nil {
			return nil, listSessionsOutput{}, err
		}
		q.From = &from
	}
	if input.To != "" {
		to, err := models.ParseDate(input.To)
		if err != nil {
			return nil, listSessionsOutput{}, err
		}
		q.To = &to
	}

	sessions, err := s.svc.ListSessions(ctx, q)
	if err != nil {
		return nil, listSessionsOutput{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	out := listSessionsOutput{Sessions: make([]sessionOutput, 0, len(sessions))}
	for _, sess := range sessions {
		out.Sessions = append(out.Sessions, summarize(sess))
	}
	out.Count = len(out.Sessions)
	return nil, out, nil
}

func (s *Server) handleLogPickupGame(ctx context.Context, req *mcp.CallToolRequest, input logPickupGameInput) (*mcp.CallToolResult, gameOutput, error) {
	if !models.IsValidGameResult(input.Result) {
		return nil, gameOutput{}, fmt.Errorf("unknown result: %s (use win or loss)", input.Result)
	}
	date, err := s.dateOrToday(input.Date)
	if err != nil {
		return nil, gameOutput{}, err
	}

	g := models.NewPickupGame(date, models.GameResult(input.Result))
	if input.Location != "" {
		g.WithLocation(input.Location)
	}
	if input.DurationMinutes > 0 {
		g.DurationMinutes = input.DurationMinutes
	}
	if input.Players != "" {
		g.WithPlayers(input.Players)
	}
	if input.Notes != "" {
		g.WithNotes(input.Notes)
	}
	g.BoxScore = models.BoxScore{
		Points:   input.Points,
		Assists:  input.Assists,
		Rebounds: input.Rebounds,
		Steals:   input.Steals,
		Blocks:   input.Blocks,
	}

	if err := s.svc.LogPickupGame(ctx, g); err != nil {
		return nil, gameOutput{}, fmt.Errorf("failed to log pickup game: %w", err)
	}

	id := g.ID.String()[:8]
	return nil, gameOutput{
		ID:      id,
		Message: fmt.Sprintf("Logged pickup %s on %s (ID: %s)", strings.ToLower(models.GameResultLabels[g.Result]), g.Date, id),
	}, nil
}

func (s *Server) handleLogOfficialGame(ctx context.Context, req *mcp.CallToolRequest, input logOfficialGameInput) (*mcp.CallToolResult, gameOutput, error) {
	date, err := s.dateOrToday(input.Date)
	if err != nil {
		return nil, gameOutput{}, err
	}

	g := models.NewOfficialGame(date, input.Opponent)
	if input.Status != "" {
		if !models.IsValidGameStatus(input.Status) {
			return nil, gameOutput{}, fmt.Errorf("unknown status: %s", input.Status)
		}
		g.Status = models.GameStatus(input.Status)
	}
	if input.Time != "" {
		g.WithTime(input.Time)
	}
	if input.Location != "" {
		g.WithLocation(input.Location)
	}
	if input.Notes != "" {
		g.WithNotes(input.Notes)
	}
	g.TeamScore = input.TeamScore
	g.OpponentScore = input.OpponentScore
	g.BoxScore = models.BoxScore{
		Points:   input.Points,
		Assists:  input.Assists,
		Rebounds: input.Rebounds,
		Steals:   input.Steals,
		Blocks:   input.Blocks,
	}
	g.MinutesPlayed = input.MinutesPlayed
	g.Fouls = input.Fouls

	if err := s.svc.LogOfficialGame(ctx, g); err != nil {
		return nil, gameOutput{}, fmt.Errorf("failed to log official game: %w", err)
	}

	id := g.ID.String()[:8]
	return nil, gameOutput{
		ID:      id,
		Message: fmt.Sprintf("Logged %s game vs %s on %s (ID: %s)", g.Status, g.Opponent, g.Date, id),
	}, nil
}

func (s *Server) handleListGames(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	games, err := s.svc.ListGames(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list games: %w", err)
	}
	return nil, games, nil
}

func (s *Server) handleGetDashboard(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	ov, err := s.svc.Overview(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return nil, ov, nil
}

func (s *Server) handleGetProgress(ctx context.Context, req *mcp.CallToolRequest, input getProgressInput) (*mcp.CallToolResult, any, error) {
	p, err := s.svc.Progress(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build progress: %w", err)
	}
	if input.ShotType == "" {
		return nil, p, nil
	}

	st, err := models.ParseShotType(input.ShotType)
	if err != nil {
		return nil, nil, err
	}
	for _, series := range p.ByType {
		if series.ShotType == st {
			p.ByType = []stats.TypeSeries{series}
			break
		}
	}
	return nil, p, nil
}

func (s *Server) handleGetDrills(ctx context.Context, req *mcp.CallToolRequest, input getDrillsInput) (*mcp.CallToolResult, any, error) {
	if err := drills.CheckIDs(input.Done...); err != nil {
		return nil, nil, err
	}
	day := -1
	if input.Day != "" {
		d, err := drills.ParseDay(input.Day)
		if err != nil {
			return nil, nil, err
		}
		day = d
	}
	return nil, s.svc.Plan(day, drills.NewCompleted(input.Done...)), nil
}

// Helpers

func (s *Server) dateOrToday(value string) (models.Date, error) {
	if value == "" {
		return s.svc.Today(), nil
	}
	return models.ParseDate(value)
}

func summarize(sess models.SessionWithShots) sessionOutput {
	t := stats.TallySession(sess)
	return sessionOutput{
		ID:       sess.ID.String()[:8],
		Date:     sess.Date.String(),
		Made:     t.Made,
		Attempts: t.Attempts,
		Accuracy: t.Percent(),
	}
}
