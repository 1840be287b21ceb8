// ABOUTME: PickupGame and OfficialGame models with shared box score.
// ABOUTME: Official games zero their stats unless the game is completed.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrOpponentRequired is returned when an official game has a blank opponent.
var ErrOpponentRequired = errors.New("opponent is required")

// GameResult is the outcome of a pickup game.
type GameResult string

const (
	ResultWin  GameResult = "win"
	ResultLoss GameResult = "loss"
)

// GameResultLabels maps results to display names.
var GameResultLabels = map[GameResult]string{
	ResultWin:  "Win",
	ResultLoss: "Loss",
}

// IsValidGameResult checks if a string is a valid result.
func IsValidGameResult(s string) bool {
	return s == string(ResultWin) || s == string(ResultLoss)
}

// GameStatus is the lifecycle state of an official game.
type GameStatus string

const (
	StatusScheduled GameStatus = "scheduled"
	StatusCompleted GameStatus = "completed"
	StatusCancelled GameStatus = "cancelled"
)

// AllGameStatuses lists statuses in lifecycle order.
var AllGameStatuses = []GameStatus{StatusScheduled, StatusCompleted, StatusCancelled}

// GameStatusLabels maps statuses to display names.
var GameStatusLabels = map[GameStatus]string{
	StatusScheduled: "Scheduled",
	StatusCompleted: "Completed",
	StatusCancelled: "Cancelled",
}

// IsValidGameStatus checks if a string is a valid status.
func IsValidGameStatus(s string) bool {
	for _, st := range AllGameStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

// BoxScore holds the individual counting stats for one game.
type BoxScore struct {
	Points   int `json:"points" yaml:"points"`
	Assists  int `json:"assists" yaml:"assists"`
	Rebounds int `json:"rebounds" yaml:"rebounds"`
	Steals   int `json:"steals" yaml:"steals"`
	Blocks   int `json:"blocks" yaml:"blocks"`
}

// Add sums two box scores.
func (b BoxScore) Add(o BoxScore) BoxScore {
	return BoxScore{
		Points:   b.Points + o.Points,
		Assists:  b.Assists + o.Assists,
		Rebounds: b.Rebounds + o.Rebounds,
		Steals:   b.Steals + o.Steals,
		Blocks:   b.Blocks + o.Blocks,
	}
}

// String renders "12 PTS 4 AST 6 REB 1 STL 0 BLK".
func (b BoxScore) String() string {
	return fmt.Sprintf("%d PTS %d AST %d REB %d STL %d BLK",
		b.Points, b.Assists, b.Rebounds, b.Steals, b.Blocks)
}

// PickupGame is an informal game.
type PickupGame struct {
	ID              uuid.UUID `json:"id"`
	Date            Date      `json:"date"`
	Location        *string   `json:"location,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	PlayersNotes    *string   `json:"players_notes,omitempty"`
	BoxScore        `yaml:",inline"`
	Result          GameResult `json:"result"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewPickupGame creates a pickup game on the given day.
func NewPickupGame(date Date, result GameResult) *PickupGame {
	return &PickupGame{
		ID:              uuid.New(),
		Date:            date,
		DurationMinutes: DefaultDuration,
		Result:          result,
		CreatedAt:       time.Now(),
	}
}

// WithLocation sets the court or gym.
func (g *PickupGame) WithLocation(loc string) *PickupGame {
	g.Location = &loc
	return g
}

// WithPlayers records who played.
func (g *PickupGame) WithPlayers(notes string) *PickupGame {
	g.PlayersNotes = &notes
	return g
}

// WithNotes sets free-form notes.
func (g *PickupGame) WithNotes(notes string) *PickupGame {
	g.Notes = &notes
	return g
}

// Validate checks the result enum and duration.
func (g *PickupGame) Validate() error {
	if g.Date.IsZero() {
		return fmt.Errorf("game date is required")
	}
	if !IsValidGameResult(string(g.Result)) {
		return fmt.Errorf("unknown result: %s", g.Result)
	}
	if g.DurationMinutes < 0 {
		return fmt.Errorf("duration must not be negative, got %d", g.DurationMinutes)
	}
	return nil
}

// OfficialGame is a scheduled or played league game.
type OfficialGame struct {
	ID            uuid.UUID  `json:"id"`
	Date          Date       `json:"date"`
	Time          *string    `json:"time,omitempty"`
	Opponent      string     `json:"opponent"`
	Location      *string    `json:"location,omitempty"`
	Status        GameStatus `json:"status"`
	TeamScore     *int       `json:"team_score,omitempty"`
	OpponentScore *int       `json:"opponent_score,omitempty"`
	BoxScore      `yaml:",inline"`
	MinutesPlayed int       `json:"minutes_played"`
	Fouls         int       `json:"fouls"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewOfficialGame creates a scheduled game against opponent.
func NewOfficialGame(date Date, opponent string) *OfficialGame {
	return &OfficialGame{
		ID:        uuid.New(),
		Date:      date,
		Opponent:  strings.TrimSpace(opponent),
		Status:    StatusScheduled,
		CreatedAt: time.Now(),
	}
}

// WithTime sets the tip-off time as HH:MM.
func (g *OfficialGame) WithTime(hhmm string) *OfficialGame {
	g.Time = &hhmm
	return g
}

// WithLocation sets the venue.
func (g *OfficialGame) WithLocation(loc string) *OfficialGame {
	g.Location = &loc
	return g
}

// WithNotes sets free-form notes.
func (g *OfficialGame) WithNotes(notes string) *OfficialGame {
	g.Notes = &notes
	return g
}

// WithFinalScore marks the game completed with the given score.
func (g *OfficialGame) WithFinalScore(team, opponent int) *OfficialGame {
	g.Status = StatusCompleted
	g.TeamScore = &team
	g.OpponentScore = &opponent
	return g
}

// Validate requires a non-empty opponent and known status.
func (g *OfficialGame) Validate() error {
	if strings.TrimSpace(g.Opponent) == "" {
		return ErrOpponentRequired
	}
	if !IsValidGameStatus(string(g.Status)) {
		return fmt.Errorf("unknown status: %s", g.Status)
	}
	if g.Date.IsZero() {
		return fmt.Errorf("game date is required")
	}
	if g.Time != nil {
		if _, err := time.Parse("15:04", *g.Time); err != nil {
			return fmt.Errorf("invalid time %q (use HH:MM)", *g.Time)
		}
	}
	return nil
}

// Normalize clears scores and zeroes stats unless the game is completed.
func (g *OfficialGame) Normalize() {
	g.Opponent = strings.TrimSpace(g.Opponent)
	if g.Status == StatusCompleted {
		return
	}
	g.TeamScore = nil
	g.OpponentScore = nil
	g.BoxScore = BoxScore{}
	g.MinutesPlayed = 0
	g.Fouls = 0
}

// IsUpcoming reports whether the game has not been played or called off.
func (g *OfficialGame) IsUpcoming() bool {
	return g.Status == StatusScheduled
}

// Won reports whether a completed game was won. Ties and games
// without scores return false.
func (g *OfficialGame) Won() bool {
	if g.Status != StatusCompleted || g.TeamScore == nil || g.OpponentScore == nil {
		return false
	}
	return *g.TeamScore > *g.OpponentScore
}
