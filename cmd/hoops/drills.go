// ABOUTME: CLI command showing the day's drill plan.
// ABOUTME: Completed drills are passed with --done; nothing is stored.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/hoops/internal/drills"
	"github.com/harperreed/hoops/internal/models"
	"github.com/spf13/cobra"
)

var (
	drillsDay  string
	drillsDone []string
	drillsAll  bool
)

var drillsCmd = &cobra.Command{
	Use:     "drills",
	Aliases: []string{"plan", "train"},
	Short:   "Show today's drill plan",
	Long: `Show the drill plan for today or another weekday.

The plan rotates through the week: free throws and mid-range on Monday and
Thursday, threes and combos on Tuesday and Friday, layups and post moves on
Wednesday and Saturday, and a light session on Sunday. Warmups run every day.

Mark drills done with --done to see your progress.

EXAMPLES:

  hoops drills
  hoops drills --day friday
  hoops drills --done warmup-mikan,ft-form-basics
  hoops drills --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if drillsAll {
			for _, d := range drills.All() {
				fmt.Printf("%s %s %s\n", padRight(d.ID, 20), padRight(d.Name, 28), faint.Sprint(d.Description))
			}
			return nil
		}

		if err := drills.CheckIDs(drillsDone...); err != nil {
			return err
		}

		day := -1
		if drillsDay != "" {
			d, err := drills.ParseDay(drillsDay)
			if err != nil {
				return err
			}
			day = d
		}

		plan := svc.Plan(day, drills.NewCompleted(drillsDone...))

		color.New(color.Bold).Println(plan.Label)
		fmt.Println()
		printDrillGroup("Warmup", plan.Warmup, drillsDone)
		printDrillGroup("Main", plan.Main, drillsDone)

		p := plan.Progress
		fmt.Printf("Progress: %d/%d (%d%%) %s\n", p.Done, p.Total, p.Percent, bar(p.Done, p.Total, 20))
		if p.Total > 0 && p.Done == p.Total {
			color.Green("✓ Plan complete")
		}
		return nil
	},
}

func printDrillGroup(title string, group []models.Drill, done []string) {
	if len(group) == 0 {
		return
	}
	completed := drills.NewCompleted(done...)
	fmt.Println(title)
	for _, d := range group {
		mark := "[ ]"
		if completed[d.ID] {
			mark = color.GreenString("[x]")
		}
		fmt.Printf("  %s %s %s\n", mark, padRight(d.Name, 28), faint.Sprintf("%dx%d  %s", d.Sets, d.Reps, d.ID))
	}
	fmt.Println()
}

func init() {
	drillsCmd.Flags().StringVar(&drillsDay, "day", "", "weekday as 0-6 or name (default today)")
	drillsCmd.Flags().StringSliceVar(&drillsDone, "done", nil, "IDs of completed drills")
	drillsCmd.Flags().BoolVar(&drillsAll, "all", false, "list every drill")
	rootCmd.AddCommand(drillsCmd)
}
