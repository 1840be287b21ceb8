// ABOUTME: Tests for drill selection, partitioning, and progress.
// ABOUTME: Verifies table order and that warmups appear every day.
package drills

import (
	"testing"

	"github.com/harperreed/hoops/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(drills []models.Drill) []string {
	out := make([]string, 0, len(drills))
	for _, d := range drills {
		out = append(out, d.ID)
	}
	return out
}

func TestSelectMonday(t *testing.T) {
	got := Select(1)
	assert.Equal(t, []string{
		"ft-form-basics",
		"ft-pressure",
		"mr-elbow",
		"mr-baseline",
		"warmup-mikan",
		"warmup-form-shooting",
	}, ids(got))
}

func TestSelectEveryDay(t *testing.T) {
	for day := 0; day <= 6; day++ {
		got := Select(day)
		require.NotEmpty(t, got, "day %d", day)

		for _, d := range got {
			assert.True(t, d.OnDay(day), "drill %s not scheduled on %d", d.ID, day)
		}
		for _, d := range All() {
			if d.OnDay(day) {
				assert.Contains(t, ids(got), d.ID)
			}
		}

		warmup, _ := Partition(got)
		assert.Equal(t, []string{"warmup-mikan", "warmup-form-shooting"}, ids(warmup))
	}
}

func TestSelectIsIdempotent(t *testing.T) {
	assert.Equal(t, Select(3), Select(3))
}

func TestSelectOutOfRange(t *testing.T) {
	assert.Empty(t, Select(7))
	assert.Empty(t, Select(-1))
}

func TestSelectPreservesTableOrder(t *testing.T) {
	order := map[string]int{}
	for i, d := range All() {
		order[d.ID] = i
	}
	for day := 0; day <= 6; day++ {
		got := Select(day)
		for i := 1; i < len(got); i++ {
			assert.Less(t, order[got[i-1].ID], order[got[i].ID])
		}
	}
}

func TestSelectFor(t *testing.T) {
	// 2024-06-16 was a Sunday
	got := SelectFor(models.MustParseDate("2024-06-16"))
	assert.Equal(t, []string{"sun-shootaround", "sun-spot-shooting", "warmup-mikan", "warmup-form-shooting"}, ids(got))
}

func TestPartitionKeepsOrder(t *testing.T) {
	warmup, main := Partition(Select(2))
	assert.Equal(t, []string{"warmup-mikan", "warmup-form-shooting"}, ids(warmup))
	assert.Equal(t, []string{"3pt-catch-shoot", "3pt-off-dribble", "3pt-corner", "combo-crossover-pull"}, ids(main))
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "Sunday - Light Session", DayLabel(0))
	assert.Equal(t, "Wednesday - Layups & Post", DayLabel(3))
	assert.Equal(t, "Day 9", DayLabel(9))
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"6", 6, false},
		{"monday", 1, false},
		{"Fri", 5, false},
		{"7", 0, true},
		{"someday", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanProgress(t *testing.T) {
	done := NewCompleted("warmup-mikan", "mr-elbow", "3pt-corner", " ")
	plan := PlanFor(1, done)

	assert.Equal(t, "Monday - Free Throws & Mid-Range", plan.Label)
	assert.Len(t, plan.Warmup, 2)
	assert.Len(t, plan.Main, 4)
	assert.Equal(t, Progress{Done: 2, Total: 6, Percent: 33}, plan.Progress)
}

func TestCompletedToggle(t *testing.T) {
	c := NewCompleted()
	assert.True(t, c.Toggle("ft-pressure"))
	assert.False(t, c.Toggle("ft-pressure"))
	assert.Empty(t, c)
}

func TestGet(t *testing.T) {
	d, ok := Get("post-hook")
	require.True(t, ok)
	assert.Equal(t, models.TagFor(models.ShotPost), d.Tag)

	_, ok = Get("nope")
	assert.False(t, ok)
}

func TestCheckIDs(t *testing.T) {
	assert.NoError(t, CheckIDs())
	assert.NoError(t, CheckIDs("post-hook", " warmup-mikan ", ""))

	err := CheckIDs("post-hook", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestTableIntegrity(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range All() {
		assert.False(t, seen[d.ID], "duplicate id %s", d.ID)
		seen[d.ID] = true
		assert.True(t, models.IsValidDrillTag(string(d.Tag)), "bad tag on %s", d.ID)
		assert.Positive(t, d.Sets)
		assert.Positive(t, d.Reps)
		assert.NotEmpty(t, d.Days)
	}
	assert.Len(t, seen, 16)
}
