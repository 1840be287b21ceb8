// ABOUTME: Training session and shot log operations for SQL storage.
// ABOUTME: Sessions insert with their shot logs in one transaction.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/hoops/internal/models"
)

const sessionColumns = `id, date, notes, difficulty, duration_minutes, mood, video_url, created_at`

// CreateSession stores a session and its shot logs atomically.
func (d *DB) CreateSession(ctx context.Context, s *models.TrainingSession, logs []models.ShotLog) error {
	if err := validateSession(s, logs); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, d.rebind(`
		INSERT INTO training_sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`),
		s.ID.String(),
		s.Date,
		s.Notes,
		s.Difficulty,
		s.DurationMinutes,
		string(s.Mood),
		s.VideoURL,
		formatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	insertLog := d.rebind(`
		INSERT INTO shot_logs (id, session_id, shot_type, made, missed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	for _, l := range logs {
		_, err := tx.ExecContext(ctx, insertLog,
			l.ID.String(),
			l.SessionID.String(),
			string(l.ShotType),
			l.Made,
			l.Missed,
			formatTime(l.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("create shot log %s: %w", l.ShotType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	d.logger.Debug("created session")
	return nil
}

// GetSession retrieves a session and its shot logs by ID or ID prefix.
func (d *DB) GetSession(ctx context.Context, idOrPrefix string) (*models.SessionWithShots, error) {
	id, err := d.resolveID(ctx, "training_sessions", idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRowContext(ctx, d.rebind(`SELECT `+sessionColumns+` FROM training_sessions WHERE id = ?`), id)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
		}
		return nil, err
	}

	logs, err := d.ListShotLogs(ctx, []uuid.UUID{s.ID})
	if err != nil {
		return nil, err
	}
	joined := JoinShots([]*models.TrainingSession{s}, logs)
	return &joined[0], nil
}

// ListSessions retrieves sessions by date range, ordered by date then
// creation time.
func (d *DB) ListSessions(ctx context.Context, q SessionQuery) ([]*models.TrainingSession, error) {
	query, args := buildListQuery("training_sessions", sessionColumns, q.From, q.To, nil, q.Order, q.Limit)

	rows, err := d.db.QueryContext(ctx, d.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.TrainingSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ListShotLogs retrieves every shot log whose session is in sessionIDs.
func (d *DB) ListShotLogs(ctx context.Context, sessionIDs []uuid.UUID) ([]*models.ShotLog, error) {
	logs := []*models.ShotLog{}
	if len(sessionIDs) == 0 {
		return logs, nil
	}

	placeholders := make([]string, len(sessionIDs))
	args := make([]interface{}, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id.String()
	}
	query := `
		SELECT id, session_id, shot_type, made, missed, created_at
		FROM shot_logs
		WHERE session_id IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY created_at ASC
	`

	rows, err := d.db.QueryContext(ctx, d.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list shot logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.ShotLog
		var idStr, sessionIDStr, shotType, createdAt string
		if err := rows.Scan(&idStr, &sessionIDStr, &shotType, &l.Made, &l.Missed, &createdAt); err != nil {
			return nil, fmt.Errorf("scan shot log: %w", err)
		}
		l.ID, _ = uuid.Parse(idStr)
		l.SessionID, _ = uuid.Parse(sessionIDStr)
		l.ShotType = models.ShotType(shotType)
		l.CreatedAt = parseTime(createdAt)
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*models.TrainingSession, error) {
	var s models.TrainingSession
	var idStr, mood, createdAt string
	var notes, videoURL sql.NullString

	err := row.Scan(&idStr, &s.Date, &notes, &s.Difficulty, &s.DurationMinutes, &mood, &videoURL, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	s.ID, _ = uuid.Parse(idStr)
	s.Mood = models.Mood(mood)
	s.CreatedAt = parseTime(createdAt)
	if notes.Valid {
		s.Notes = &notes.String
	}
	if videoURL.Valid {
		s.VideoURL = &videoURL.String
	}
	return &s, nil
}

// buildListQuery assembles SELECT ... WHERE date range [AND status]
// ORDER BY date, created_at [LIMIT] with ? placeholders.
func buildListQuery(table, columns string, from, to *models.Date, status *models.GameStatus, order Order, limit int) (string, []interface{}) {
	var where []string
	var args []interface{}
	if from != nil {
		where = append(where, "date >= ?")
		args = append(args, *from)
	}
	if to != nil {
		where = append(where, "date <= ?")
		args = append(args, *to)
	}
	if status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*status))
	}

	query := "SELECT " + columns + " FROM " + table
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if order == Asc {
		query += " ORDER BY date ASC, created_at ASC"
	} else {
		query += " ORDER BY date DESC, created_at DESC"
	}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return query, args
}

// resolveID finds the full ID from a prefix.
func (d *DB) resolveID(ctx context.Context, table, idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	query := d.rebind(`SELECT id FROM ` + table + ` WHERE id LIKE ?`)
	rows, err := d.db.QueryContext(ctx, query, idOrPrefix+"%")
	if err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w %s: matches multiple records", ErrAmbiguousPrefix, idOrPrefix)
	}
	return matches[0], nil
}
