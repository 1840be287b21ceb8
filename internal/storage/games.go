// ABOUTME: Pickup and official game operations for SQL storage.
// ABOUTME: Official games are normalized so only completed games carry scores.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/hoops/internal/models"
)

const pickupColumns = `id, date, location, duration_minutes, players_notes,
	points, assists, rebounds, steals, blocks, result, notes, created_at`

const officialColumns = `id, date, time, opponent, location, status, team_score, opponent_score,
	points, assists, rebounds, steals, blocks, minutes_played, fouls, notes, created_at`

// CreatePickupGame stores a new pickup game.
func (d *DB) CreatePickupGame(ctx context.Context, g *models.PickupGame) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("create pickup game: %w", err)
	}

	_, err := d.db.ExecContext(ctx, d.rebind(`
		INSERT INTO pickup_games (`+pickupColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		g.ID.String(),
		g.Date,
		g.Location,
		g.DurationMinutes,
		g.PlayersNotes,
		g.Points, g.Assists, g.Rebounds, g.Steals, g.Blocks,
		string(g.Result),
		g.Notes,
		formatTime(g.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create pickup game: %w", err)
	}
	return nil
}

// ListPickupGames retrieves pickup games by date range.
func (d *DB) ListPickupGames(ctx context.Context, q GameQuery) ([]*models.PickupGame, error) {
	query, args := buildListQuery("pickup_games", pickupColumns, q.From, q.To, nil, q.Order, q.Limit)

	rows, err := d.db.QueryContext(ctx, d.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list pickup games: %w", err)
	}
	defer rows.Close()

	games := []*models.PickupGame{}
	for rows.Next() {
		var g models.PickupGame
		var idStr, result, createdAt string
		var location, players, notes sql.NullString

		err := rows.Scan(&idStr, &g.Date, &location, &g.DurationMinutes, &players,
			&g.Points, &g.Assists, &g.Rebounds, &g.Steals, &g.Blocks,
			&result, &notes, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan pickup game: %w", err)
		}

		g.ID, _ = uuid.Parse(idStr)
		g.Result = models.GameResult(result)
		g.CreatedAt = parseTime(createdAt)
		g.Location = nullString(location)
		g.PlayersNotes = nullString(players)
		g.Notes = nullString(notes)
		games = append(games, &g)
	}
	return games, rows.Err()
}

// CreateOfficialGame stores a scheduled, completed, or cancelled game.
func (d *DB) CreateOfficialGame(ctx context.Context, g *models.OfficialGame) error {
	if err := validateOfficialGame(g); err != nil {
		return fmt.Errorf("create official game: %w", err)
	}

	_, err := d.db.ExecContext(ctx, d.rebind(`
		INSERT INTO official_games (`+officialColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		g.ID.String(),
		g.Date,
		g.Time,
		g.Opponent,
		g.Location,
		string(g.Status),
		g.TeamScore,
		g.OpponentScore,
		g.Points, g.Assists, g.Rebounds, g.Steals, g.Blocks,
		g.MinutesPlayed,
		g.Fouls,
		g.Notes,
		formatTime(g.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create official game: %w", err)
	}
	return nil
}

// ListOfficialGames retrieves official games by date range and status.
func (d *DB) ListOfficialGames(ctx context.Context, q GameQuery) ([]*models.OfficialGame, error) {
	query, args := buildListQuery("official_games", officialColumns, q.From, q.To, q.Status, q.Order, q.Limit)

	rows, err := d.db.QueryContext(ctx, d.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list official games: %w", err)
	}
	defer rows.Close()

	games := []*models.OfficialGame{}
	for rows.Next() {
		var g models.OfficialGame
		var idStr, status, createdAt string
		var tipOff, location, notes sql.NullString
		var teamScore, oppScore sql.NullInt64

		err := rows.Scan(&idStr, &g.Date, &tipOff, &g.Opponent, &location, &status,
			&teamScore, &oppScore,
			&g.Points, &g.Assists, &g.Rebounds, &g.Steals, &g.Blocks,
			&g.MinutesPlayed, &g.Fouls, &notes, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan official game: %w", err)
		}

		g.ID, _ = uuid.Parse(idStr)
		g.Status = models.GameStatus(status)
		g.CreatedAt = parseTime(createdAt)
		g.Time = nullString(tipOff)
		g.Location = nullString(location)
		g.Notes = nullString(notes)
		g.TeamScore = nullInt(teamScore)
		g.OpponentScore = nullInt(oppScore)
		games = append(games, &g)
	}
	return games, rows.Err()
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	n := int(ni.Int64)
	return &n
}
