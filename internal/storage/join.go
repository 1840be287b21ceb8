// ABOUTME: Joins training sessions with their shot logs in memory.
// ABOUTME: Two list calls: sessions, then logs by session-id membership.
package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/harperreed/hoops/internal/models"
)

// LoadSessionsWithShots lists sessions matching q and attaches each
// session's shot logs, keeping the session order from the query.
func LoadSessionsWithShots(ctx context.Context, repo Repository, q SessionQuery) ([]models.SessionWithShots, error) {
	sessions, err := repo.ListSessions(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return []models.SessionWithShots{}, nil
	}

	ids := make([]uuid.UUID, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	logs, err := repo.ListShotLogs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list shot logs: %w", err)
	}

	return JoinShots(sessions, logs), nil
}

// JoinShots groups logs under their sessions. Logs whose session is not
// in the list are dropped. Each session's logs are in canonical shot order.
func JoinShots(sessions []*models.TrainingSession, logs []*models.ShotLog) []models.SessionWithShots {
	bySession := make(map[uuid.UUID][]models.ShotLog, len(sessions))
	for _, l := range logs {
		bySession[l.SessionID] = append(bySession[l.SessionID], *l)
	}

	rank := make(map[models.ShotType]int, len(models.AllShotTypes))
	for i, st := range models.AllShotTypes {
		rank[st] = i
	}

	out := make([]models.SessionWithShots, 0, len(sessions))
	for _, s := range sessions {
		shotLogs := bySession[s.ID]
		if shotLogs == nil {
			shotLogs = []models.ShotLog{}
		}
		sort.SliceStable(shotLogs, func(i, j int) bool {
			return rank[shotLogs[i].ShotType] < rank[shotLogs[j].ShotType]
		})
		out = append(out, models.SessionWithShots{
			TrainingSession: *s,
			ShotLogs:        shotLogs,
		})
	}
	return out
}
