// ABOUTME: CLI commands for logging and viewing training sessions.
// ABOUTME: Shot counts are given per type as made/attempts.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/hoops/internal/media"
	"github.com/harperreed/hoops/internal/models"
	"github.com/harperreed/hoops/internal/stats"
	"github.com/harperreed/hoops/internal/storage"
	"github.com/harperreed/hoops/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	sessionDate       string
	sessionDifficulty int
	sessionDuration   int
	sessionMood       string
	sessionNotes      string
	sessionVideoURL   string
	sessionVideoFile  string
	sessionShots      = map[models.ShotType]*string{}

	sessionListLimit int
	sessionListFrom  string
	sessionListTo    string
)

// shotFlags maps flag names to shot types.
var shotFlags = []struct {
	name     string
	shotType models.ShotType
}{
	{"ft", models.ShotFreeThrow},
	{"three", models.ShotThreePointer},
	{"mid", models.ShotMidRange},
	{"layup", models.ShotLayup},
	{"post", models.ShotPost},
}

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"sess"},
	Short:   "Log and view shooting sessions",
}

var sessionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a shooting session",
	Long: `Log a shooting practice session.

Shots are given per type as made/attempts. Types with no attempts are skipped.

EXAMPLES:

  hoops session add --ft 8/10 --three 4/10
  hoops session add --date 2024-06-10 --difficulty 4 --mood tired --layup 18/20
  hoops session add --mid 12/20 --video-file ~/clips/shootaround.mp4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(sessionDate)
		if err != nil {
			return err
		}
		if !models.IsValidMood(sessionMood) {
			return fmt.Errorf("unknown mood: %s (use great, good, ok, tired)", sessionMood)
		}
		if sessionVideoURL != "" && sessionVideoFile != "" {
			return errors.New("use either --video-url or --video-file, not both")
		}

		s := models.NewTrainingSession(date).
			WithDifficulty(sessionDifficulty).
			WithDuration(sessionDuration).
			WithMood(models.Mood(sessionMood))
		if sessionNotes != "" {
			s.WithNotes(sessionNotes)
		}

		var counts []tracker.ShotCount
		for _, f := range shotFlags {
			value := *sessionShots[f.shotType]
			if value == "" {
				continue
			}
			made, missed, err := parseShots(value)
			if err != nil {
				return fmt.Errorf("--%s: %w", f.name, err)
			}
			counts = append(counts, tracker.ShotCount{ShotType: f.shotType, Made: made, Missed: missed})
		}

		if sessionVideoFile != "" {
			uploader, err := media.NewR2Uploader(cmd.Context(), cfg.Media, logger)
			if err != nil {
				return fmt.Errorf("video upload: %w", err)
			}
			url, err := media.UploadFile(cmd.Context(), uploader, date, sessionVideoFile)
			if err != nil {
				return err
			}
			sessionVideoURL = url
		}
		if sessionVideoURL != "" {
			s.WithVideoURL(sessionVideoURL)
		}

		logged, err := svc.LogSession(cmd.Context(), s, counts)
		if err != nil {
			return fmt.Errorf("failed to log session: %w", err)
		}

		color.Green("✓ Logged session on %s", logged.Date)
		fmt.Printf("  %s %s\n", faint.Sprint(shortID(logged.ID)), tallyLine(stats.TallySession(*logged)))
		for _, l := range logged.ShotLogs {
			fmt.Printf("    %s %s\n", padRight(l.ShotType.Label(), 11), tallyLine(stats.TallyLog(l)))
		}
		if len(logged.ShotLogs) == 0 {
			color.Yellow("⚠ No shots recorded")
		}
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List training sessions",
	Long: `List training sessions, newest first.

Each line shows: ID  DATE  DIFFICULTY  MOOD  MADE/ATTEMPTS (ACCURACY)  (NOTES)

EXAMPLES:

  hoops session list
  hoops session list -n 50
  hoops session list --from 2024-06-01 --to 2024-06-30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseOptionalDate(sessionListFrom)
		if err != nil {
			return err
		}
		to, err := parseOptionalDate(sessionListTo)
		if err != nil {
			return err
		}

		sessions, err := svc.ListSessions(cmd.Context(), storage.SessionQuery{From: from, To: to, Limit: sessionListLimit})
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		for _, s := range sessions {
			printSessionLine(s)
		}
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a session with its shot logs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := svc.GetSession(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("session not found: %w", err)
		}

		fmt.Printf("Session %s\n", faint.Sprint(s.ID.String()))
		fmt.Printf("  Date:       %s\n", s.Date)
		fmt.Printf("  Difficulty: %d/5\n", s.Difficulty)
		fmt.Printf("  Duration:   %d min\n", s.DurationMinutes)
		fmt.Printf("  Mood:       %s %s\n", models.MoodEmojis[s.Mood], models.MoodLabels[s.Mood])
		if s.Notes != nil {
			fmt.Printf("  Notes:      %s\n", *s.Notes)
		}
		if s.VideoURL != nil {
			fmt.Printf("  Video:      %s\n", *s.VideoURL)
		}
		fmt.Println()

		if len(s.ShotLogs) == 0 {
			fmt.Println("  No shots recorded.")
			return nil
		}
		for _, l := range s.ShotLogs {
			fmt.Printf("  %s %s\n", padRight(l.ShotType.Label(), 11), tallyLine(stats.TallyLog(l)))
		}
		fmt.Printf("  %s %s\n", padRight("Total", 11), tallyLine(stats.TallySession(*s)))
		return nil
	},
}

func init() {
	f := sessionAddCmd.Flags()
	f.StringVar(&sessionDate, "date", "", "session date (YYYY-MM-DD, default today)")
	f.IntVar(&sessionDifficulty, "difficulty", models.DefaultDifficulty, "difficulty 1-5")
	f.IntVar(&sessionDuration, "duration", models.DefaultDuration, "duration in minutes")
	f.StringVar(&sessionMood, "mood", string(models.MoodGood), "mood: great, good, ok, tired")
	f.StringVar(&sessionNotes, "notes", "", "session notes")
	f.StringVar(&sessionVideoURL, "video-url", "", "link to a video of the session")
	f.StringVar(&sessionVideoFile, "video-file", "", "upload a local video to object storage")
	for _, sf := range shotFlags {
		v := new(string)
		sessionShots[sf.shotType] = v
		f.StringVar(v, sf.name, "", sf.shotType.Label()+" shots as made/attempts")
	}

	sessionListCmd.Flags().IntVarP(&sessionListLimit, "limit", "n", 20, "max number of results")
	sessionListCmd.Flags().StringVar(&sessionListFrom, "from", "", "earliest date (YYYY-MM-DD)")
	sessionListCmd.Flags().StringVar(&sessionListTo, "to", "", "latest date (YYYY-MM-DD)")

	sessionCmd.AddCommand(sessionAddCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	rootCmd.AddCommand(sessionCmd)
}
