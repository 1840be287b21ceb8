// ABOUTME: Data migration between hoops storage backends.
// ABOUTME: Copies sessions with shot logs, pickup games, and official games.

package storage

import (
	"context"
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Sessions      int
	ShotLogs      int
	PickupGames   int
	OfficialGames int
}

// Total is the number of records copied.
func (s MigrateSummary) Total() int {
	return s.Sessions + s.ShotLogs + s.PickupGames + s.OfficialGames
}

// CountData summarizes data without writing anything. Used for dry runs.
func CountData(data *ExportData) *MigrateSummary {
	summary := &MigrateSummary{
		Sessions:      len(data.Sessions),
		PickupGames:   len(data.PickupGames),
		OfficialGames: len(data.OfficialGames),
	}
	for _, s := range data.Sessions {
		summary.ShotLogs += len(s.ShotLogs)
	}
	return summary
}

// MigrateData copies all data from src to dst storage, oldest records
// first. The destination should be empty before calling this function.
func MigrateData(ctx context.Context, src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	sessions, err := LoadSessionsWithShots(ctx, src, SessionQuery{Order: Asc})
	if err != nil {
		return nil, fmt.Errorf("list source sessions: %w", err)
	}
	for i := range sessions {
		s := sessions[i]
		if err := dst.CreateSession(ctx, &s.TrainingSession, s.ShotLogs); err != nil {
			return nil, fmt.Errorf("create session %s: %w", s.ID, err)
		}
		summary.Sessions++
		summary.ShotLogs += len(s.ShotLogs)
	}

	pickups, err := src.ListPickupGames(ctx, GameQuery{Order: Asc})
	if err != nil {
		return nil, fmt.Errorf("list source pickup games: %w", err)
	}
	for _, g := range pickups {
		if err := dst.CreatePickupGame(ctx, g); err != nil {
			return nil, fmt.Errorf("create pickup game %s: %w", g.ID, err)
		}
		summary.PickupGames++
	}

	officials, err := src.ListOfficialGames(ctx, GameQuery{Order: Asc})
	if err != nil {
		return nil, fmt.Errorf("list source official games: %w", err)
	}
	for _, g := range officials {
		if err := dst.CreateOfficialGame(ctx, g); err != nil {
			return nil, fmt.Errorf("create official game %s: %w", g.ID, err)
		}
		summary.OfficialGames++
	}

	return summary, nil
}

// IsEmpty reports whether repo holds no records.
func IsEmpty(ctx context.Context, repo Repository) (bool, error) {
	sessions, err := repo.ListSessions(ctx, SessionQuery{Limit: 1})
	if err != nil {
		return false, err
	}
	if len(sessions) > 0 {
		return false, nil
	}
	pickups, err := repo.ListPickupGames(ctx, GameQuery{Limit: 1})
	if err != nil {
		return false, err
	}
	if len(pickups) > 0 {
		return false, nil
	}
	officials, err := repo.ListOfficialGames(ctx, GameQuery{Limit: 1})
	if err != nil {
		return false, err
	}
	return len(officials) == 0, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
