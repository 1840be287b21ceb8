// ABOUTME: Read-side views: overview, progress, history, drill plan, reminder.
// ABOUTME: Each view loads what it needs and hands it to the pure stats functions.
package tracker

import (
	"context"
	"fmt"

	"github.com/harperreed/hoops/internal/drills"
	"github.com/harperreed/hoops/internal/models"
	"github.com/harperreed/hoops/internal/stats"
	"github.com/harperreed/hoops/internal/storage"
)

// Overview is the dashboard plus game records.
type Overview struct {
	stats.Dashboard
	Pickup   stats.Record         `json:"pickup"`
	Official stats.Record         `json:"official"`
	NextGame *models.OfficialGame `json:"next_game,omitempty"`
}

// Overview builds the dashboard from the most recent sessions.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	snap, err := s.Snapshot(ctx, storage.SessionQuery{Limit: stats.DashboardWindow})
	if err != nil {
		return nil, err
	}
	today := s.Today()

	return &Overview{
		Dashboard: stats.BuildDashboard(snap.Sessions, today),
		Pickup:    stats.PickupRecord(snap.Pickup),
		Official:  stats.OfficialRecord(snap.Official),
		NextGame:  nextGame(snap.Official, today),
	}, nil
}

// nextGame returns the earliest scheduled game on or after today.
// games must be ascending by date.
func nextGame(games []models.OfficialGame, today models.Date) *models.OfficialGame {
	for i := range games {
		g := games[i]
		if g.IsUpcoming() && !g.Date.Before(today) {
			return &g
		}
	}
	return nil
}

// Progress loads the full history oldest first and builds the progress view.
func (s *Service) Progress(ctx context.Context) (*stats.Progress, error) {
	sessions, err := storage.LoadSessionsWithShots(ctx, s.repo, storage.SessionQuery{Order: storage.Asc})
	if err != nil {
		return nil, err
	}
	p := stats.BuildProgress(sessions)
	return &p, nil
}

// History is the calendar of trained days in a month, with the sessions of
// one selected day.
type History struct {
	Month       string                    `json:"month"`
	TrainedDays []models.Date             `json:"trained_days"`
	Day         models.Date               `json:"day"`
	Sessions    []models.SessionWithShots `json:"sessions"`
}

// History returns the trained days of month's calendar month and the
// sessions on day. A zero month defaults to today's month and a zero day
// defaults to today.
func (s *Service) History(ctx context.Context, month, day models.Date) (*History, error) {
	today := s.Today()
	if month.IsZero() {
		month = today
	}
	if day.IsZero() {
		day = today
	}

	first := models.NewDate(month.Year, month.Month, 1)
	last := first.AddDays(31)
	last = models.NewDate(last.Year, last.Month, 1).AddDays(-1)

	inMonth, err := storage.LoadSessionsWithShots(ctx, s.repo, storage.SessionQuery{From: &first, To: &last, Order: storage.Asc})
	if err != nil {
		return nil, fmt.Errorf("load month: %w", err)
	}
	onDay, err := storage.LoadSessionsWithShots(ctx, s.repo, storage.SessionQuery{From: &day, To: &day, Order: storage.Asc})
	if err != nil {
		return nil, fmt.Errorf("load day: %w", err)
	}

	return &History{
		Month:       first.Format("2006-01"),
		TrainedDays: stats.TrainedDaysInMonth(inMonth, first),
		Day:         day,
		Sessions:    stats.SessionsOn(onDay, day),
	}, nil
}

// Plan returns the drill plan for day (0 = Sunday). A negative day means
// today.
func (s *Service) Plan(day int, done drills.Completed) drills.Plan {
	if day < 0 {
		day = int(s.Today().Weekday())
	}
	return drills.PlanFor(day, done)
}

// Reminder says whether today still needs a session.
type Reminder struct {
	Due     bool   `json:"due"`
	Streak  int    `json:"streak"`
	Focus   string `json:"focus"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Reminder checks whether a session exists for today.
func (s *Service) Reminder(ctx context.Context) (*Reminder, error) {
	sessions, err := storage.LoadSessionsWithShots(ctx, s.repo, storage.SessionQuery{Limit: stats.DashboardWindow})
	if err != nil {
		return nil, err
	}
	today := s.Today()

	r := &Reminder{
		Streak: stats.CurrentStreak(stats.TrainedDates(sessions), today),
		Focus:  drills.DayLabel(int(today.Weekday())),
	}
	r.Due = len(stats.SessionsOn(sessions, today)) == 0

	switch {
	case !r.Due:
		r.Title = "Session logged"
		r.Message = fmt.Sprintf("Done for today. Streak: %d days.", r.Streak)
	case r.Streak > 0:
		r.Title = "Keep the streak alive"
		r.Message = fmt.Sprintf("No session yet today. Log one to keep your %d-day streak going. Focus: %s", r.Streak, r.Focus)
	default:
		r.Title = "Time to shoot"
		r.Message = fmt.Sprintf("No session yet today. Focus: %s", r.Focus)
	}
	return r, nil
}

// splitByStatus separates scheduled games (soonest first) from completed
// or cancelled ones (most recent first). games must be newest first.
func splitByStatus(games []models.OfficialGame) (upcoming, past []models.OfficialGame) {
	upcoming, past = stats.SplitOfficial(games)
	for i, j := 0, len(upcoming)-1; i < j; i, j = i+1, j-1 {
		upcoming[i], upcoming[j] = upcoming[j], upcoming[i]
	}
	return upcoming, past
}
