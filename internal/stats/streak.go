// ABOUTME: Consecutive-day training streak ending today or yesterday.
// ABOUTME: Today is passed in so results are deterministic.
package stats

import (
	"sort"

	"github.com/harperreed/hoops/internal/models"
)

// CurrentStreak counts consecutive trained days ending at today. Dates are
// walked newest first and each must equal today minus the count so far.
// When today has no session yet, yesterday alone counts as 1 and the walk
// stops there: the older part of the run is picked up again once today is
// logged. Duplicate dates count once and a future-dated session yields 0.
func CurrentStreak(dates []models.Date, today models.Date) int {
	unique := uniqueDates(dates)
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].After(unique[j])
	})

	streak := 0
	for _, d := range unique {
		switch {
		case d == today.AddDays(-streak):
			streak++
		case streak == 0 && d == today.AddDays(-1):
			// nothing today yet; yesterday keeps the streak at 1
			streak = 1
		default:
			return streak
		}
	}
	return streak
}

// TrainedDates extracts the session dates.
func TrainedDates(sessions []models.SessionWithShots) []models.Date {
	out := make([]models.Date, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Date)
	}
	return out
}

func uniqueDates(dates []models.Date) []models.Date {
	seen := make(map[models.Date]struct{}, len(dates))
	out := make([]models.Date, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
