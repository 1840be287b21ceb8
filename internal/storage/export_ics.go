// ABOUTME: iCalendar export of games and import of league schedules.
// ABOUTME: Official games with a tip-off time become timed events; others are all-day.
package storage

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/harperreed/hoops/internal/models"
)

// gameLength is the assumed event length for timed games.
const gameLength = 2 * time.Hour

// ExportICS renders pickup and official games as an iCalendar feed.
// Tip-off times are interpreted in loc.
func ExportICS(data *ExportData, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//hoops//training tracker//EN")

	for _, g := range data.OfficialGames {
		evt := cal.AddEvent(g.ID.String() + "@hoops")
		evt.SetDtStampTime(g.CreatedAt)
		if start, ok := tipOff(g, loc); ok {
			evt.SetStartAt(start)
			evt.SetEndAt(start.Add(gameLength))
		} else {
			evt.SetAllDayStartAt(g.Date.Time())
			evt.SetAllDayEndAt(g.Date.AddDays(1).Time())
		}
		evt.SetSummary("vs " + g.Opponent)
		if g.Location != nil {
			evt.SetLocation(*g.Location)
		}
		switch g.Status {
		case models.StatusCancelled:
			evt.SetStatus(ics.ObjectStatusCancelled)
		case models.StatusCompleted:
			evt.SetStatus(ics.ObjectStatusConfirmed)
			evt.SetDescription(fmt.Sprintf("Final %s. %s", scoreLine(g), g.BoxScore))
		default:
			evt.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	for _, g := range data.PickupGames {
		evt := cal.AddEvent(g.ID.String() + "@hoops")
		evt.SetDtStampTime(g.CreatedAt)
		evt.SetAllDayStartAt(g.Date.Time())
		evt.SetAllDayEndAt(g.Date.AddDays(1).Time())
		evt.SetSummary(fmt.Sprintf("Pickup (%s)", models.GameResultLabels[g.Result]))
		if g.Location != nil {
			evt.SetLocation(*g.Location)
		}
		evt.SetDescription(g.BoxScore.String())
	}

	return cal.Serialize()
}

func tipOff(g *models.OfficialGame, loc *time.Location) (time.Time, bool) {
	if g.Time == nil {
		return time.Time{}, false
	}
	hm, err := time.Parse("15:04", *g.Time)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(g.Date.Year, g.Date.Month, g.Date.Day, hm.Hour(), hm.Minute(), 0, 0, loc), true
}

// ParseSchedule reads a league calendar and returns one scheduled official
// game per event. The opponent comes from the summary with any leading
// "vs" or "@" removed. Cancelled events are kept as cancelled games.
// Events without a summary or start are skipped.
func ParseSchedule(r io.Reader, loc *time.Location) ([]*models.OfficialGame, error) {
	if loc == nil {
		loc = time.Local
	}

	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	var games []*models.OfficialGame
	for _, evt := range cal.Events() {
		summary := evt.GetProperty(ics.ComponentPropertySummary)
		if summary == nil {
			continue
		}
		opponent := opponentFromSummary(summary.Value)
		if opponent == "" {
			continue
		}

		start, timed, err := parseEventStart(evt, loc)
		if err != nil {
			continue
		}

		g := models.NewOfficialGame(models.DateOf(start), opponent)
		if timed {
			g.WithTime(start.Format("15:04"))
		}
		if l := evt.GetProperty(ics.ComponentPropertyLocation); l != nil && strings.TrimSpace(l.Value) != "" {
			g.WithLocation(strings.TrimSpace(l.Value))
		}
		if st := evt.GetProperty(ics.ComponentPropertyStatus); st != nil && strings.EqualFold(st.Value, string(ics.ObjectStatusCancelled)) {
			g.Status = models.StatusCancelled
		}
		games = append(games, g)
	}
	return games, nil
}

func opponentFromSummary(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, prefix := range []string{"vs.", "vs", "@"} {
		if strings.HasPrefix(lower, prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}
	return s
}

// parseEventStart reads DTSTART in UTC, floating, TZID, or date-only form.
// timed is false for date-only values.
func parseEventStart(evt *ics.VEvent, loc *time.Location) (start time.Time, timed bool, err error) {
	prop := evt.GetProperty(ics.ComponentPropertyDtStart)
	if prop == nil {
		return time.Time{}, false, fmt.Errorf("missing DTSTART")
	}
	val := prop.Value

	if t, err := time.Parse("20060102", val); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), false, nil
	}
	if t, err := time.Parse("20060102T150405Z", val); err == nil {
		return t.In(loc), true, nil
	}
	t, err := time.Parse("20060102T150405", val)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("unrecognized DTSTART %q", val)
	}
	src := loc
	for k, v := range prop.ICalParameters {
		if strings.EqualFold(k, "TZID") && len(v) > 0 {
			if tz, err := time.LoadLocation(v[0]); err == nil {
				src = tz
			}
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, src).In(loc), true, nil
}
