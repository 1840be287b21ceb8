// ABOUTME: Dashboard, progress, and history view models built from sessions.
// ABOUTME: Combines the aggregator, streak, and volume functions.
package stats

import (
	"sort"

	"github.com/harperreed/hoops/internal/models"
)

// DashboardWindow is how many recent sessions feed the dashboard.
const DashboardWindow = 30

// Dashboard is the home-screen summary.
type Dashboard struct {
	Today             models.Date              `json:"today"`
	Streak            int                      `json:"streak"`
	SessionsThisMonth int                      `json:"sessions_this_month"`
	TotalSessions     int                      `json:"total_sessions"`
	Overall           Tally                    `json:"overall"`
	OverallAccuracy   int                      `json:"overall_accuracy"`
	BestType          *TypeStat                `json:"best_type,omitempty"`
	Types             []TypeStat               `json:"types"`
	LastSession       *models.SessionWithShots `json:"last_session,omitempty"`
}

// BuildDashboard summarizes sessions relative to today.
func BuildDashboard(sessions []models.SessionWithShots, today models.Date) Dashboard {
	overall := TallyHistory(sessions)
	d := Dashboard{
		Today:             today,
		Streak:            CurrentStreak(TrainedDates(sessions), today),
		SessionsThisMonth: MonthlySessions(sessions, today),
		TotalSessions:     len(sessions),
		Overall:           overall,
		OverallAccuracy:   overall.Percent(),
		Types:             TypeBreakdown(sessions),
		LastSession:       LatestSession(sessions),
	}
	if best, ok := BestShotType(sessions); ok {
		for i := range d.Types {
			if d.Types[i].ShotType == best {
				ts := d.Types[i]
				d.BestType = &ts
				break
			}
		}
	}
	return d
}

// MonthlySessions counts sessions in today's calendar month.
func MonthlySessions(sessions []models.SessionWithShots, today models.Date) int {
	n := 0
	for _, s := range sessions {
		if s.Date.SameMonth(today) {
			n++
		}
	}
	return n
}

// LatestSession returns the session with the newest date, breaking ties by
// creation time. Returns nil for no sessions.
func LatestSession(sessions []models.SessionWithShots) *models.SessionWithShots {
	var latest *models.SessionWithShots
	for i := range sessions {
		s := &sessions[i]
		if latest == nil ||
			s.Date.After(latest.Date) ||
			(s.Date == latest.Date && s.CreatedAt.After(latest.CreatedAt)) {
			latest = s
		}
	}
	if latest == nil {
		return nil
	}
	out := *latest
	return &out
}

// Progress is the long-range view of accuracy and volume.
type Progress struct {
	TotalSessions   int             `json:"total_sessions"`
	Overall         Tally           `json:"overall"`
	OverallAccuracy int             `json:"overall_accuracy"`
	Series          []AccuracyPoint `json:"series"`
	ByType          []TypeSeries    `json:"by_type"`
	Weekly          []WeekVolume    `json:"weekly"`
}

// BuildProgress expects sessions sorted ascending by date.
func BuildProgress(sessions []models.SessionWithShots) Progress {
	overall := TallyHistory(sessions)
	return Progress{
		TotalSessions:   len(sessions),
		Overall:         overall,
		OverallAccuracy: overall.Percent(),
		Series:          AccuracySeries(sessions),
		ByType:          AllTypeSeries(sessions),
		Weekly:          WeeklyVolume(sessions),
	}
}

// TrainedDaysInMonth returns the distinct session dates inside the month
// containing day, ascending.
func TrainedDaysInMonth(sessions []models.SessionWithShots, day models.Date) []models.Date {
	var in []models.Date
	for _, s := range sessions {
		if s.Date.SameMonth(day) {
			in = append(in, s.Date)
		}
	}
	out := uniqueDates(in)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})
	return out
}

// SessionsOn returns the sessions dated exactly day, in input order.
func SessionsOn(sessions []models.SessionWithShots, day models.Date) []models.SessionWithShots {
	out := []models.SessionWithShots{}
	for _, s := range sessions {
		if s.Date == day {
			out = append(out, s)
		}
	}
	return out
}
