// ABOUTME: CLI commands for the dashboard, progress charts, and history calendar.
// ABOUTME: All numbers come from the stats package over stored sessions.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/hoops/internal/models"
	"github.com/harperreed/hoops/internal/stats"
	"github.com/spf13/cobra"
)

var (
	progressType string
	historyMonth string
	historyDate  string
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"dashboard"},
	Short:   "Show streak, accuracy and game records",
	RunE: func(cmd *cobra.Command, args []string) error {
		ov, err := svc.Overview(cmd.Context())
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		bold.Printf("🏀 %s\n\n", ov.Today)

		fmt.Printf("  Streak:          %d days\n", ov.Streak)
		fmt.Printf("  This month:      %d sessions\n", ov.SessionsThisMonth)
		fmt.Printf("  Overall:         %s\n", tallyLine(ov.Overall))
		fmt.Printf("  Total shots:     %d\n", ov.Overall.Attempts)
		if ov.BestType != nil {
			fmt.Printf("  Best shot:       %s (%d%%)\n", ov.BestType.Label, ov.BestType.Accuracy)
		}
		if ov.TotalSessions == stats.DashboardWindow {
			fmt.Println(faint.Sprintf("  (last %d sessions)", stats.DashboardWindow))
		}
		fmt.Println()

		bold.Println("By shot type")
		for _, ts := range ov.Types {
			if ts.Attempts == 0 {
				fmt.Printf("  %s %s\n", padRight(ts.Label, 11), faint.Sprint("-"))
				continue
			}
			fmt.Printf("  %s %s %s\n", padRight(ts.Label, 11), padRight(fmt.Sprintf("%3d%%", ts.Accuracy), 5),
				faint.Sprintf("%d/%d", ts.Made, ts.Attempts))
		}
		fmt.Println()

		if ov.LastSession != nil {
			bold.Println("Last session")
			printSessionLine(*ov.LastSession)
			fmt.Println()
		}

		if ov.Pickup.Games > 0 {
			fmt.Printf("Pickup record:   %d-%d (%d%%)\n", ov.Pickup.Wins, ov.Pickup.Losses, ov.Pickup.WinRate())
		}
		if ov.Official.Games > 0 {
			fmt.Printf("League record:   %d-%d\n", ov.Official.Wins, ov.Official.Losses)
		}
		if ov.NextGame != nil {
			when := ov.NextGame.Date.String()
			if ov.NextGame.Time != nil {
				when += " " + *ov.NextGame.Time
			}
			fmt.Printf("Next game:       vs %s, %s\n", ov.NextGame.Opponent, when)
		}

		if ov.TotalSessions == 0 {
			color.Yellow("⚠ No sessions yet. Log one with 'hoops session add'.")
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show accuracy trend and weekly shot volume",
	Long: `Show accuracy per session, per shot type, and shots per week for the
last eight weeks.

EXAMPLES:

  hoops progress
  hoops progress --type three_pointer`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter models.ShotType
		if progressType != "" {
			st, err := models.ParseShotType(progressType)
			if err != nil {
				return err
			}
			filter = st
		}

		p, err := svc.Progress(cmd.Context())
		if err != nil {
			return err
		}
		if p.TotalSessions == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}

		bold := color.New(color.Bold)
		fmt.Printf("%d sessions, overall %s\n\n", p.TotalSessions, tallyLine(p.Overall))

		if filter != "" {
			for _, series := range p.ByType {
				if series.ShotType == filter {
					bold.Printf("%s accuracy\n", series.Label)
					printSeries(series.Points)
				}
			}
		} else {
			bold.Println("Accuracy per session")
			printSeries(p.Series)
		}
		fmt.Println()

		bold.Println("Weekly volume")
		maxShots := 0
		for _, w := range p.Weekly {
			if w.Shots > maxShots {
				maxShots = w.Shots
			}
		}
		for _, w := range p.Weekly {
			fmt.Printf("  %s %s %d\n", w.Label, padRight(bar(w.Shots, maxShots, 30), 30), w.Shots)
		}
		return nil
	},
}

func printSeries(points []stats.AccuracyPoint) {
	if len(points) == 0 {
		fmt.Println("  no data")
		return
	}
	for _, pt := range points {
		fmt.Printf("  %s %s %3d%% %s\n", pt.Label, padRight(bar(pt.Accuracy, 100, 30), 30), pt.Accuracy,
			faint.Sprintf("%d/%d", pt.Made, pt.Attempts))
	}
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show trained days for a month and the sessions of a day",
	Long: `Show a month calendar with trained days marked, followed by the sessions
logged on one day.

EXAMPLES:

  hoops history
  hoops history --month 2024-05
  hoops history --date 2024-06-03`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var month models.Date
		if historyMonth != "" {
			t, err := time.Parse("2006-01", historyMonth)
			if err != nil {
				return fmt.Errorf("invalid month: %s (use YYYY-MM)", historyMonth)
			}
			month = models.DateOf(t)
		}
		day, err := parseOptionalDate(historyDate)
		if err != nil {
			return err
		}
		if day == nil {
			day = &models.Date{}
		}
		if month.IsZero() && !day.IsZero() {
			month = *day
		}

		h, err := svc.History(cmd.Context(), month, *day)
		if err != nil {
			return err
		}

		printCalendar(h.Month, h.TrainedDays, svc.Today())
		fmt.Printf("\n%d trained days\n\n", len(h.TrainedDays))

		color.New(color.Bold).Println(h.Day)
		if len(h.Sessions) == 0 {
			fmt.Println("  No sessions.")
			return nil
		}
		for _, s := range h.Sessions {
			printSessionLine(s)
		}
		return nil
	},
}

// printCalendar draws a Monday-first month grid with trained days highlighted.
func printCalendar(month string, trained []models.Date, today models.Date) {
	t, _ := time.Parse("2006-01", month)
	first := models.DateOf(t)
	marked := make(map[models.Date]bool, len(trained))
	for _, d := range trained {
		marked[d] = true
	}

	fmt.Printf("%s\n", t.Format("January 2006"))
	fmt.Println("Mo Tu We Th Fr Sa Su")

	var b strings.Builder
	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", offset))
	for d := first; d.SameMonth(first); d = d.AddDays(1) {
		cell := fmt.Sprintf("%2d", d.Day)
		switch {
		case marked[d]:
			cell = color.GreenString(cell)
		case d == today:
			cell = color.New(color.Underline).Sprint(cell)
		}
		b.WriteString(cell)
		if d.Weekday() == time.Sunday {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	fmt.Println(strings.TrimRight(b.String(), " \n"))
}

func init() {
	progressCmd.Flags().StringVarP(&progressType, "type", "t", "", "show one shot type's accuracy")
	historyCmd.Flags().StringVar(&historyMonth, "month", "", "month to show (YYYY-MM, default current)")
	historyCmd.Flags().StringVar(&historyDate, "date", "", "day to list sessions for (YYYY-MM-DD, default today)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(historyCmd)
}
