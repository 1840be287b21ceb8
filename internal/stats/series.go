// ABOUTME: Per-session accuracy series for progress charts.
// ABOUTME: Overall series and one series per shot type, labeled dd/MM.
package stats

import "github.com/harperreed/hoops/internal/models"

// AccuracyPoint is one session's accuracy.
type AccuracyPoint struct {
	Date  models.Date `json:"date"`
	Label string      `json:"label"`
	Tally
	Accuracy int `json:"accuracy"`
}

// TypeSeries is the accuracy series for one shot type.
type TypeSeries struct {
	ShotType models.ShotType `json:"shot_type"`
	Label    string          `json:"label"`
	Points   []AccuracyPoint `json:"points"`
}

// AccuracySeries returns one point per session that has at least one
// shot log, in input order.
func AccuracySeries(sessions []models.SessionWithShots) []AccuracyPoint {
	out := []AccuracyPoint{}
	for _, s := range sessions {
		if len(s.ShotLogs) == 0 {
			continue
		}
		out = append(out, point(s.Date, TallySession(s)))
	}
	return out
}

// TypeAccuracySeries returns one point per session that logged the type.
func TypeAccuracySeries(sessions []models.SessionWithShots, st models.ShotType) []AccuracyPoint {
	out := []AccuracyPoint{}
	for _, s := range sessions {
		var t Tally
		found := false
		for _, l := range s.ShotLogs {
			if l.ShotType == st {
				t = t.Add(TallyLog(l))
				found = true
			}
		}
		if found {
			out = append(out, point(s.Date, t))
		}
	}
	return out
}

// AllTypeSeries returns a series for every shot type in canonical order.
func AllTypeSeries(sessions []models.SessionWithShots) []TypeSeries {
	out := make([]TypeSeries, 0, len(models.AllShotTypes))
	for _, st := range models.AllShotTypes {
		out = append(out, TypeSeries{
			ShotType: st,
			Label:    st.Label(),
			Points:   TypeAccuracySeries(sessions, st),
		})
	}
	return out
}

func point(d models.Date, t Tally) AccuracyPoint {
	return AccuracyPoint{
		Date:     d,
		Label:    d.Format(WeekLabelLayout),
		Tally:    t,
		Accuracy: t.Percent(),
	}
}
