// ABOUTME: Day-of-week drill selection, warmup/main split, and progress.
// ABOUTME: Completion state is supplied by the caller; nothing is persisted here.
package drills

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/hoops/internal/models"
	"github.com/harperreed/hoops/internal/stats"
)

// dayLabels names each weekday's focus.
var dayLabels = map[int]string{
	0: "Sunday - Light Session",
	1: "Monday - Free Throws & Mid-Range",
	2: "Tuesday - Threes & Combos",
	3: "Wednesday - Layups & Post",
	4: "Thursday - Free Throws & Mid-Range",
	5: "Friday - Threes & Combos",
	6: "Saturday - Layups & Post",
}

// All returns a copy of the full drill table in declaration order.
func All() []models.Drill {
	out := make([]models.Drill, len(table))
	copy(out, table)
	return out
}

// Get looks up a drill by ID.
func Get(id string) (models.Drill, bool) {
	for _, d := range table {
		if d.ID == id {
			return d, true
		}
	}
	return models.Drill{}, false
}

// Select returns every drill scheduled on day (0 = Sunday .. 6 = Saturday)
// in table order. Days outside 0..6 return nothing.
func Select(day int) []models.Drill {
	out := []models.Drill{}
	for _, d := range table {
		if d.OnDay(day) {
			out = append(out, d)
		}
	}
	return out
}

// SelectFor is Select for a calendar day.
func SelectFor(date models.Date) []models.Drill {
	return Select(int(date.Weekday()))
}

// Partition splits drills into warmups and the rest, keeping relative order.
func Partition(drills []models.Drill) (warmup, main []models.Drill) {
	warmup = []models.Drill{}
	main = []models.Drill{}
	for _, d := range drills {
		if d.IsWarmup() {
			warmup = append(warmup, d)
		} else {
			main = append(main, d)
		}
	}
	return warmup, main
}

// DayLabel names the focus of a weekday.
func DayLabel(day int) string {
	if l, ok := dayLabels[day]; ok {
		return l
	}
	return fmt.Sprintf("Day %d", day)
}

// ParseDay accepts 0-6 or a weekday name or three-letter abbreviation.
func ParseDay(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return int(s[0] - '0'), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return int(d), nil
		}
	}
	return 0, fmt.Errorf("invalid day %q (use 0-6 or a weekday name)", s)
}

// Completed is the set of drill IDs marked done.
type Completed map[string]bool

// CheckIDs reports the first non-blank ID missing from the drill table.
func CheckIDs(ids ...string) error {
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := Get(id); !ok {
			return fmt.Errorf("unknown drill %q (see hoops drills --all)", id)
		}
	}
	return nil
}

// NewCompleted builds a set from IDs, ignoring blanks.
func NewCompleted(ids ...string) Completed {
	c := Completed{}
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			c[id] = true
		}
	}
	return c
}

// Toggle flips one drill's state and returns the new state.
func (c Completed) Toggle(id string) bool {
	if c[id] {
		delete(c, id)
		return false
	}
	c[id] = true
	return true
}

// Progress is how much of a plan is done.
type Progress struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// Plan is one day's drills split for display.
type Plan struct {
	Day      int            `json:"day"`
	Label    string         `json:"label"`
	Warmup   []models.Drill `json:"warmup"`
	Main     []models.Drill `json:"main"`
	Progress Progress       `json:"progress"`
}

// PlanFor builds the plan for day with completion from done.
func PlanFor(day int, done Completed) Plan {
	selected := Select(day)
	warmup, main := Partition(selected)
	return Plan{
		Day:      day,
		Label:    DayLabel(day),
		Warmup:   warmup,
		Main:     main,
		Progress: ProgressOf(selected, done),
	}
}

// ProgressOf counts drills in plan that are in done. IDs in done that are
// not part of the plan are ignored.
func ProgressOf(plan []models.Drill, done Completed) Progress {
	p := Progress{Total: len(plan)}
	for _, d := range plan {
		if done[d.ID] {
			p.Done++
		}
	}
	p.Percent = stats.Accuracy(p.Done, p.Total)
	return p
}
