// ABOUTME: Shot accuracy aggregation at log, session, history, and type level.
// ABOUTME: Rounds half-up to whole percent; zero attempts is 0%.
package stats

import "github.com/harperreed/hoops/internal/models"

// Tally is a made/attempts pair.
type Tally struct {
	Made     int `json:"made"`
	Attempts int `json:"attempts"`
}

// Add sums two tallies.
func (t Tally) Add(o Tally) Tally {
	return Tally{Made: t.Made + o.Made, Attempts: t.Attempts + o.Attempts}
}

// Missed returns attempts that did not go in.
func (t Tally) Missed() int {
	return t.Attempts - t.Made
}

// Percent returns the rounded accuracy.
func (t Tally) Percent() int {
	return Accuracy(t.Made, t.Attempts)
}

// Accuracy returns round(100 * made / attempts) with halves rounded up,
// or 0 when attempts is zero.
func Accuracy(made, attempts int) int {
	if attempts <= 0 {
		return 0
	}
	// floor(100*made/attempts + 1/2) in integers
	return (200*made + attempts) / (2 * attempts)
}

// TallyLog converts a single shot log.
func TallyLog(l models.ShotLog) Tally {
	return Tally{Made: l.Made, Attempts: l.Attempts()}
}

// TallySession sums every log in a session.
func TallySession(s models.SessionWithShots) Tally {
	var t Tally
	for _, l := range s.ShotLogs {
		t = t.Add(TallyLog(l))
	}
	return t
}

// TallyHistory sums every log across sessions.
func TallyHistory(sessions []models.SessionWithShots) Tally {
	var t Tally
	for _, s := range sessions {
		t = t.Add(TallySession(s))
	}
	return t
}

// TallyType sums only logs of one shot type across sessions.
func TallyType(sessions []models.SessionWithShots, st models.ShotType) Tally {
	var t Tally
	for _, s := range sessions {
		for _, l := range s.ShotLogs {
			if l.ShotType == st {
				t = t.Add(TallyLog(l))
			}
		}
	}
	return t
}

// TotalShots returns made + missed across every log of the sessions.
func TotalShots(sessions []models.SessionWithShots) int {
	return TallyHistory(sessions).Attempts
}

// TypeStat is the aggregate for one shot type.
type TypeStat struct {
	ShotType models.ShotType `json:"shot_type"`
	Label    string          `json:"label"`
	Tally
	Accuracy int `json:"accuracy"`
}

// TypeBreakdown returns one entry per shot type in canonical order,
// including types with no attempts.
func TypeBreakdown(sessions []models.SessionWithShots) []TypeStat {
	out := make([]TypeStat, 0, len(models.AllShotTypes))
	for _, st := range models.AllShotTypes {
		t := TallyType(sessions, st)
		out = append(out, TypeStat{
			ShotType: st,
			Label:    st.Label(),
			Tally:    t,
			Accuracy: t.Percent(),
		})
	}
	return out
}

// BestShotType returns the type with the highest accuracy among types
// with at least one attempt. Ties go to the earlier canonical type.
// The bool is false when no shots were taken at all.
func BestShotType(sessions []models.SessionWithShots) (models.ShotType, bool) {
	var best models.ShotType
	bestPct := -1
	for _, ts := range TypeBreakdown(sessions) {
		if ts.Attempts == 0 {
			continue
		}
		if ts.Accuracy > bestPct {
			best = ts.ShotType
			bestPct = ts.Accuracy
		}
	}
	return best, bestPct >= 0
}
