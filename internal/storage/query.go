// ABOUTME: In-memory filter, sort, and limit shared by the KV backends.
// ABOUTME: Mirrors the ORDER BY date, created_at and LIMIT of the SQL backend.
package storage

import (
	"sort"
	"time"

	"github.com/harperreed/hoops/internal/models"
)

func inRange(d models.Date, from, to *models.Date) bool {
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}

// orderAndLimit sorts by date then creation time in the requested
// direction and truncates to limit when limit > 0.
func orderAndLimit[T any](items []T, key func(T) (models.Date, time.Time), order Order, limit int) []T {
	sort.SliceStable(items, func(i, j int) bool {
		di, ci := key(items[i])
		dj, cj := key(items[j])
		less := di.Before(dj) || (di == dj && ci.Before(cj))
		if order == Asc {
			return less
		}
		greater := di.After(dj) || (di == dj && ci.After(cj))
		return greater
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func (q SessionQuery) apply(sessions []*models.TrainingSession) []*models.TrainingSession {
	out := sessions[:0]
	for _, s := range sessions {
		if inRange(s.Date, q.From, q.To) {
			out = append(out, s)
		}
	}
	return orderAndLimit(out, func(s *models.TrainingSession) (models.Date, time.Time) {
		return s.Date, s.CreatedAt
	}, q.Order, q.Limit)
}

func (q GameQuery) applyPickup(games []*models.PickupGame) []*models.PickupGame {
	out := games[:0]
	for _, g := range games {
		if inRange(g.Date, q.From, q.To) {
			out = append(out, g)
		}
	}
	return orderAndLimit(out, func(g *models.PickupGame) (models.Date, time.Time) {
		return g.Date, g.CreatedAt
	}, q.Order, q.Limit)
}

func (q GameQuery) applyOfficial(games []*models.OfficialGame) []*models.OfficialGame {
	out := games[:0]
	for _, g := range games {
		if !inRange(g.Date, q.From, q.To) {
			continue
		}
		if q.Status != nil && g.Status != *q.Status {
			continue
		}
		out = append(out, g)
	}
	return orderAndLimit(out, func(g *models.OfficialGame) (models.Date, time.Time) {
		return g.Date, g.CreatedAt
	}, q.Order, q.Limit)
}
