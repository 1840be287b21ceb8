// ABOUTME: Shared parsing and formatting helpers for CLI commands.
// ABOUTME: Shot counts, dates, IDs, and table padding.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/hoops/internal/models"
	"github.com/harperreed/hoops/internal/stats"
)

var faint = color.New(color.Faint)

// parseShots reads "made/attempts", e.g. "8/10".
func parseShots(s string) (made, missed int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid shots %q (use made/attempts, e.g. 8/10)", s)
	}
	made, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid made count in %q", s)
	}
	attempts, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid attempts in %q", s)
	}
	if made < 0 || attempts < made {
		return 0, 0, fmt.Errorf("invalid shots %q: made must be between 0 and attempts", s)
	}
	return made, attempts - made, nil
}

// parseDateFlag returns today for an empty value.
func parseDateFlag(s string) (models.Date, error) {
	if s == "" {
		return models.Today(nowFunc()), nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", s)
	}
	return d, nil
}

// parseOptionalDate returns nil for an empty value.
func parseOptionalDate(s string) (*models.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", s)
	}
	return &d, nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// tallyLine renders "18/25 (72%)".
func tallyLine(t stats.Tally) string {
	return fmt.Sprintf("%d/%d (%d%%)", t.Made, t.Attempts, t.Percent())
}

// bar draws a proportional bar of at most width cells.
func bar(value, maxValue, width int) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := value * width / maxValue
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// printSessionLine writes one list row for a session.
func printSessionLine(s models.SessionWithShots) {
	notes := ""
	if s.Notes != nil && *s.Notes != "" {
		notes = faint.Sprintf(" (%s)", truncate(*s.Notes, 30))
	}
	fmt.Printf("%s %s %s %s %s%s\n",
		faint.Sprint(shortID(s.ID)),
		s.Date,
		padRight(fmt.Sprintf("%d/5", s.Difficulty), 4),
		padRight(models.MoodEmojis[s.Mood]+" "+models.MoodLabels[s.Mood], 9),
		tallyLine(stats.TallySession(s)),
		notes)
}
