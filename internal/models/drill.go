// ABOUTME: Drill model and DrillTag enum for the weekly training plan.
// ABOUTME: Tags are the shot types plus warmup and combo.
package models

// DrillTag classifies a drill. Every ShotType is also a valid tag.
type DrillTag string

const (
	TagWarmup DrillTag = "warmup"
	TagCombo  DrillTag = "combo"
)

// TagFor returns the drill tag for a shot type.
func TagFor(st ShotType) DrillTag {
	return DrillTag(st)
}

// IsValidDrillTag checks if a string is a shot type, warmup, or combo.
func IsValidDrillTag(s string) bool {
	if s == string(TagWarmup) || s == string(TagCombo) {
		return true
	}
	return IsValidShotType(s)
}

// Label returns a display name for the tag.
func (t DrillTag) Label() string {
	switch t {
	case TagWarmup:
		return "Warmup"
	case TagCombo:
		return "Combo"
	default:
		return ShotType(t).Label()
	}
}

// Drill is a static practice exercise. Days holds weekday numbers,
// Sunday = 0 through Saturday = 6.
type Drill struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	VideoReference string   `json:"video_reference"`
	Tag            DrillTag `json:"tag"`
	Sets           int      `json:"sets"`
	Reps           int      `json:"reps"`
	Days           []int    `json:"days"`
}

// OnDay reports whether the drill is scheduled for the weekday.
func (d Drill) OnDay(day int) bool {
	for _, dd := range d.Days {
		if dd == day {
			return true
		}
	}
	return false
}

// IsWarmup reports whether the drill is a warmup.
func (d Drill) IsWarmup() bool {
	return d.Tag == TagWarmup
}

// TotalReps returns sets * reps.
func (d Drill) TotalReps() int {
	return d.Sets * d.Reps
}
