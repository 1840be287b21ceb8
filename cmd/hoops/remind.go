// ABOUTME: CLI command for the daily training reminder.
// ABOUTME: Shows streak status and sends a desktop notification when a session is due.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gen2brain/beeep"
	"github.com/spf13/cobra"
)

var (
	remindPrint bool
	remindAll   bool
)

// notify sends a desktop notification; tests replace it.
var notify = func(title, message string) error {
	beeep.AppName = "hoops"
	return beeep.Alert(title, message, "")
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Remind yourself to train today",
	Long: `Check whether today's session is logged and send a desktop notification
if it is not.

Run it from cron or a launchd agent in the evening:

  0 19 * * * hoops remind

OPTIONS:

  --print    Print the reminder without sending a notification
  --always   Notify even when today's session is already logged`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := svc.Reminder(cmd.Context())
		if err != nil {
			return err
		}

		if r.Due {
			color.Yellow("⚠ %s", r.Title)
		} else {
			color.Green("✓ %s", r.Title)
		}
		fmt.Println(r.Message)

		if remindPrint || (!r.Due && !remindAll) {
			return nil
		}
		if err := notify(r.Title, r.Message); err != nil {
			return fmt.Errorf("notification failed: %w", err)
		}
		return nil
	},
}

func init() {
	remindCmd.Flags().BoolVar(&remindPrint, "print", false, "print only, do not notify")
	remindCmd.Flags().BoolVar(&remindAll, "always", false, "notify even when a session is logged")
	rootCmd.AddCommand(remindCmd)
}
