// ABOUTME: Weekly shot-volume buckets over the session date range.
// ABOUTME: Weeks start Monday; only the most recent eight are kept.
package stats

import "github.com/harperreed/hoops/internal/models"

// MaxWeeks is the number of weekly buckets retained.
const MaxWeeks = 8

// WeekLabelLayout renders a week start as dd/MM.
const WeekLabelLayout = "02/01"

// WeekVolume is the shot count for one Monday-Sunday week.
type WeekVolume struct {
	Start models.Date `json:"start"`
	End   models.Date `json:"end"`
	Label string      `json:"label"`
	Shots int         `json:"shots"`
}

// WeekStart returns the Monday on or before d.
func WeekStart(d models.Date) models.Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// WeekEnd returns the Sunday on or after d.
func WeekEnd(d models.Date) models.Date {
	return WeekStart(d).AddDays(6)
}

// WeeklyVolume buckets sessions into Monday-start weeks spanning the first
// session's week through the last session's week, and returns the last
// MaxWeeks buckets in chronological order. Sessions must be sorted
// ascending by date; the range is taken from the first and last element.
func WeeklyVolume(sessions []models.SessionWithShots) []WeekVolume {
	if len(sessions) == 0 {
		return []WeekVolume{}
	}

	first := WeekStart(sessions[0].Date)
	last := WeekStart(sessions[len(sessions)-1].Date)
	if first.After(last) {
		return []WeekVolume{}
	}

	var weeks []WeekVolume
	for ws := first; !ws.After(last); ws = ws.AddDays(7) {
		weeks = append(weeks, WeekVolume{
			Start: ws,
			End:   WeekEnd(ws),
			Label: ws.Format(WeekLabelLayout),
		})
	}
	if len(weeks) > MaxWeeks {
		weeks = weeks[len(weeks)-MaxWeeks:]
	}

	index := make(map[models.Date]int, len(weeks))
	for i, w := range weeks {
		index[w.Start] = i
	}
	for _, s := range sessions {
		if i, ok := index[WeekStart(s.Date)]; ok {
			weeks[i].Shots += TallySession(s).Attempts
		}
	}
	return weeks
}
