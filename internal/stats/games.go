// ABOUTME: Pickup win/loss record and official game upcoming/past split.
// ABOUTME: Averages are per game over the supplied records.
package stats

import (
	"math"

	"github.com/harperreed/hoops/internal/models"
)

// Averages holds per-game box score means rounded to one decimal.
type Averages struct {
	Points   float64 `json:"points"`
	Assists  float64 `json:"assists"`
	Rebounds float64 `json:"rebounds"`
	Steals   float64 `json:"steals"`
	Blocks   float64 `json:"blocks"`
}

// PerGame divides each total by n, rounded to one decimal.
func PerGame(total models.BoxScore, n int) Averages {
	if n <= 0 {
		return Averages{}
	}
	div := func(v int) float64 {
		return math.Round(float64(v)/float64(n)*10) / 10
	}
	return Averages{
		Points:   div(total.Points),
		Assists:  div(total.Assists),
		Rebounds: div(total.Rebounds),
		Steals:   div(total.Steals),
		Blocks:   div(total.Blocks),
	}
}

// Record is a win/loss tally with box score totals.
type Record struct {
	Games    int             `json:"games"`
	Wins     int             `json:"wins"`
	Losses   int             `json:"losses"`
	Totals   models.BoxScore `json:"totals"`
	Averages Averages        `json:"averages"`
}

// WinRate returns the rounded win percentage.
func (r Record) WinRate() int {
	return Accuracy(r.Wins, r.Wins+r.Losses)
}

// PickupRecord summarizes pickup games.
func PickupRecord(games []models.PickupGame) Record {
	var r Record
	for _, g := range games {
		r.Games++
		switch g.Result {
		case models.ResultWin:
			r.Wins++
		case models.ResultLoss:
			r.Losses++
		}
		r.Totals = r.Totals.Add(g.BoxScore)
	}
	r.Averages = PerGame(r.Totals, r.Games)
	return r
}

// OfficialRecord summarizes completed official games. Scheduled and
// cancelled games are ignored; a tie counts as neither win nor loss.
func OfficialRecord(games []models.OfficialGame) Record {
	var r Record
	for _, g := range games {
		if g.Status != models.StatusCompleted {
			continue
		}
		r.Games++
		if g.Won() {
			r.Wins++
		} else if g.TeamScore != nil && g.OpponentScore != nil && *g.TeamScore < *g.OpponentScore {
			r.Losses++
		}
		r.Totals = r.Totals.Add(g.BoxScore)
	}
	r.Averages = PerGame(r.Totals, r.Games)
	return r
}

// SplitOfficial separates scheduled games from completed or cancelled
// ones, preserving input order within each group.
func SplitOfficial(games []models.OfficialGame) (upcoming, past []models.OfficialGame) {
	upcoming = []models.OfficialGame{}
	past = []models.OfficialGame{}
	for _, g := range games {
		if g.IsUpcoming() {
			upcoming = append(upcoming, g)
		} else {
			past = append(past, g)
		}
	}
	return upcoming, past
}
