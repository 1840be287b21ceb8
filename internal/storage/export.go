// ABOUTME: Export and import functionality for training data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Repository.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/hoops/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is bumped when the export layout changes.
const ExportVersion = "1.0"

// ExportData represents the full export format for training data.
type ExportData struct {
	Version       string                    `json:"version" yaml:"version"`
	ExportedAt    time.Time                 `json:"exported_at" yaml:"exported_at"`
	Tool          string                    `json:"tool" yaml:"tool"`
	Sessions      []models.SessionWithShots `json:"sessions" yaml:"sessions"`
	PickupGames   []*models.PickupGame      `json:"pickup_games" yaml:"pickup_games"`
	OfficialGames []*models.OfficialGame    `json:"official_games" yaml:"official_games"`
}

// collectAll reads every record from repo, oldest first.
func collectAll(ctx context.Context, repo Repository) (*ExportData, error) {
	sessions, err := LoadSessionsWithShots(ctx, repo, SessionQuery{Order: Asc})
	if err != nil {
		return nil, err
	}

	pickups, err := repo.ListPickupGames(ctx, GameQuery{Order: Asc})
	if err != nil {
		return nil, fmt.Errorf("list pickup games: %w", err)
	}

	officials, err := repo.ListOfficialGames(ctx, GameQuery{Order: Asc})
	if err != nil {
		return nil, fmt.Errorf("list official games: %w", err)
	}

	return &ExportData{
		Version:       ExportVersion,
		ExportedAt:    time.Now(),
		Tool:          "hoops",
		Sessions:      sessions,
		PickupGames:   pickups,
		OfficialGames: officials,
	}, nil
}

// importAll writes every record in data to repo.
func importAll(ctx context.Context, repo Repository, data *ExportData) error {
	for i := range data.Sessions {
		s := data.Sessions[i]
		logs := make([]models.ShotLog, len(s.ShotLogs))
		for j, l := range s.ShotLogs {
			l.SessionID = s.ID
			logs[j] = l
		}
		if err := repo.CreateSession(ctx, &s.TrainingSession, logs); err != nil {
			return fmt.Errorf("import session %s: %w", s.Date, err)
		}
	}

	for _, g := range data.PickupGames {
		if err := repo.CreatePickupGame(ctx, g); err != nil {
			return fmt.Errorf("import pickup game %s: %w", g.Date, err)
		}
	}

	for _, g := range data.OfficialGames {
		if err := repo.CreateOfficialGame(ctx, g); err != nil {
			return fmt.Errorf("import official game %s: %w", g.Date, err)
		}
	}

	return nil
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	return collectAll(ctx, d)
}

// ImportData imports data from an export file.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	return importAll(ctx, d, data)
}

// Since returns a copy holding only records dated on or after day.
func (e *ExportData) Since(day models.Date) *ExportData {
	out := *e
	out.Sessions = nil
	for _, s := range e.Sessions {
		if !s.Date.Before(day) {
			out.Sessions = append(out.Sessions, s)
		}
	}
	out.PickupGames = nil
	for _, g := range e.PickupGames {
		if !g.Date.Before(day) {
			out.PickupGames = append(out.PickupGames, g)
		}
	}
	out.OfficialGames = nil
	for _, g := range e.OfficialGames {
		if !g.Date.Before(day) {
			out.OfficialGames = append(out.OfficialGames, g)
		}
	}
	return &out
}

// ExportJSON renders data as indented JSON.
func ExportJSON(data *ExportData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(ctx context.Context, repo Repository, raw []byte) (*ExportData, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if err := repo.ImportData(ctx, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ExportYAML renders data as YAML with shot logs keyed by shot type.
func ExportYAML(data *ExportData) ([]byte, error) {
	yamlData := struct {
		Version       string         `yaml:"version"`
		ExportedAt    string         `yaml:"exported_at"`
		Tool          string         `yaml:"tool"`
		Sessions      []yamlSession  `yaml:"sessions"`
		PickupGames   []yamlPickup   `yaml:"pickup_games"`
		OfficialGames []yamlOfficial `yaml:"official_games"`
	}{
		Version:       data.Version,
		ExportedAt:    data.ExportedAt.Format(time.RFC3339),
		Tool:          data.Tool,
		Sessions:      make([]yamlSession, 0, len(data.Sessions)),
		PickupGames:   make([]yamlPickup, 0, len(data.PickupGames)),
		OfficialGames: make([]yamlOfficial, 0, len(data.OfficialGames)),
	}

	for _, s := range data.Sessions {
		ys := yamlSession{
			ID:         s.ID.String()[:8],
			Date:       s.Date.String(),
			Difficulty: s.Difficulty,
			Duration:   s.DurationMinutes,
			Mood:       string(s.Mood),
			Notes:      deref(s.Notes),
			Video:      deref(s.VideoURL),
		}
		if len(s.ShotLogs) > 0 {
			ys.Shots = make(map[string]string, len(s.ShotLogs))
			for _, l := range s.ShotLogs {
				ys.Shots[string(l.ShotType)] = fmt.Sprintf("%d/%d", l.Made, l.Attempts())
			}
		}
		yamlData.Sessions = append(yamlData.Sessions, ys)
	}

	for _, g := range data.PickupGames {
		yamlData.PickupGames = append(yamlData.PickupGames, yamlPickup{
			ID:       g.ID.String()[:8],
			Date:     g.Date.String(),
			Result:   string(g.Result),
			Location: deref(g.Location),
			Duration: g.DurationMinutes,
			Stats:    g.BoxScore.String(),
			Players:  deref(g.PlayersNotes),
			Notes:    deref(g.Notes),
		})
	}

	for _, g := range data.OfficialGames {
		yo := yamlOfficial{
			ID:       g.ID.String()[:8],
			Date:     g.Date.String(),
			Time:     deref(g.Time),
			Opponent: g.Opponent,
			Location: deref(g.Location),
			Status:   string(g.Status),
			Notes:    deref(g.Notes),
		}
		if g.Status == models.StatusCompleted {
			yo.Score = scoreLine(g)
			yo.Stats = g.BoxScore.String()
		}
		yamlData.OfficialGames = append(yamlData.OfficialGames, yo)
	}

	return yaml.Marshal(yamlData)
}

type yamlSession struct {
	ID         string            `yaml:"id"`
	Date       string            `yaml:"date"`
	Difficulty int               `yaml:"difficulty"`
	Duration   int               `yaml:"duration_minutes"`
	Mood       string            `yaml:"mood"`
	Shots      map[string]string `yaml:"shots,omitempty"`
	Notes      string            `yaml:"notes,omitempty"`
	Video      string            `yaml:"video_url,omitempty"`
}

type yamlPickup struct {
	ID       string `yaml:"id"`
	Date     string `yaml:"date"`
	Result   string `yaml:"result"`
	Location string `yaml:"location,omitempty"`
	Duration int    `yaml:"duration_minutes"`
	Stats    string `yaml:"stats"`
	Players  string `yaml:"players,omitempty"`
	Notes    string `yaml:"notes,omitempty"`
}

type yamlOfficial struct {
	ID       string `yaml:"id"`
	Date     string `yaml:"date"`
	Time     string `yaml:"time,omitempty"`
	Opponent string `yaml:"opponent"`
	Location string `yaml:"location,omitempty"`
	Status   string `yaml:"status"`
	Score    string `yaml:"score,omitempty"`
	Stats    string `yaml:"stats,omitempty"`
	Notes    string `yaml:"notes,omitempty"`
}

// ExportMarkdown renders data as Markdown tables.
func ExportMarkdown(data *ExportData) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Hoops Export - %s\n\n", data.ExportedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", data.ExportedAt.Format(time.RFC3339)))

	if len(data.Sessions) > 0 {
		sb.WriteString("## Training Sessions\n\n")
		sb.WriteString("| Date | Difficulty | Duration | Mood | Shots | Notes |\n")
		sb.WriteString("|------|------------|----------|------|-------|-------|\n")
		for _, s := range data.Sessions {
			shots := make([]string, 0, len(s.ShotLogs))
			for _, l := range s.ShotLogs {
				shots = append(shots, fmt.Sprintf("%s %d/%d", l.ShotType.Label(), l.Made, l.Attempts()))
			}
			sb.WriteString(fmt.Sprintf("| %s | %d/5 | %d min | %s | %s | %s |\n",
				s.Date, s.Difficulty, s.DurationMinutes, s.Mood,
				strings.Join(shots, ", "), deref(s.Notes)))
		}
		sb.WriteString("\n")
	}

	if len(data.PickupGames) > 0 {
		sb.WriteString("## Pickup Games\n\n")
		sb.WriteString("| Date | Result | Location | Stats | Notes |\n")
		sb.WriteString("|------|--------|----------|-------|-------|\n")
		for _, g := range data.PickupGames {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				g.Date, models.GameResultLabels[g.Result], deref(g.Location),
				g.BoxScore, deref(g.Notes)))
		}
		sb.WriteString("\n")
	}

	if len(data.OfficialGames) > 0 {
		sb.WriteString("## Official Games\n\n")
		sb.WriteString("| Date | Opponent | Status | Score | Stats |\n")
		sb.WriteString("|------|----------|--------|-------|-------|\n")
		for _, g := range data.OfficialGames {
			score, stats := "", ""
			if g.Status == models.StatusCompleted {
				score = scoreLine(g)
				stats = g.BoxScore.String()
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				g.Date, g.Opponent, models.GameStatusLabels[g.Status], score, stats))
		}
	}

	return sb.String()
}

func scoreLine(g *models.OfficialGame) string {
	if g.TeamScore == nil || g.OpponentScore == nil {
		return ""
	}
	return fmt.Sprintf("%d-%d", *g.TeamScore, *g.OpponentScore)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
