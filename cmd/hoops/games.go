// ABOUTME: CLI commands for pickup and official games.
// ABOUTME: Official games can be added one at a time or imported from an .ics schedule.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/hoops/internal/models"
	"github.com/harperreed/hoops/internal/stats"
	"github.com/harperreed/hoops/internal/storage"
	"github.com/spf13/cobra"
)

var (
	pickupDate     string
	pickupLocation string
	pickupDuration int
	pickupPlayers  string
	pickupResult   string
	pickupNotes    string
	pickupBox      models.BoxScore
	pickupLimit    int

	gameDate      string
	gameTime      string
	gameLocation  string
	gameStatus    string
	gameTeamScore int
	gameOppScore  int
	gameBox       models.BoxScore
	gameMinutes   int
	gameFouls     int
	gameNotes     string
	gameImportTZ  string
)

func boxScoreFlags(cmd *cobra.Command, box *models.BoxScore) {
	cmd.Flags().IntVar(&box.Points, "pts", 0, "points")
	cmd.Flags().IntVar(&box.Assists, "ast", 0, "assists")
	cmd.Flags().IntVar(&box.Rebounds, "reb", 0, "rebounds")
	cmd.Flags().IntVar(&box.Steals, "stl", 0, "steals")
	cmd.Flags().IntVar(&box.Blocks, "blk", 0, "blocks")
}

var pickupCmd = &cobra.Command{
	Use:   "pickup",
	Short: "Log and view pickup games",
}

var pickupAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a pickup game",
	Long: `Log a pickup game.

EXAMPLES:

  hoops pickup add --result win --pts 12 --reb 5
  hoops pickup add --result loss --location "YMCA" --players "Sam, Jo" --date 2024-06-08`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidGameResult(pickupResult) {
			return fmt.Errorf("--result must be win or loss")
		}
		date, err := parseDateFlag(pickupDate)
		if err != nil {
			return err
		}

		g := models.NewPickupGame(date, models.GameResult(pickupResult))
		g.DurationMinutes = pickupDuration
		g.BoxScore = pickupBox
		if pickupLocation != "" {
			g.WithLocation(pickupLocation)
		}
		if pickupPlayers != "" {
			g.WithPlayers(pickupPlayers)
		}
		if pickupNotes != "" {
			g.WithNotes(pickupNotes)
		}

		if err := svc.LogPickupGame(cmd.Context(), g); err != nil {
			return fmt.Errorf("failed to log pickup game: %w", err)
		}

		color.Green("✓ Logged pickup %s on %s", models.GameResultLabels[g.Result], g.Date)
		fmt.Printf("  %s %s\n", faint.Sprint(shortID(g.ID)), g.BoxScore)
		return nil
	},
}

var pickupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List pickup games with your record",
	RunE: func(cmd *cobra.Command, args []string) error {
		games, err := repo.ListPickupGames(cmd.Context(), storage.GameQuery{Limit: pickupLimit})
		if err != nil {
			return fmt.Errorf("failed to list pickup games: %w", err)
		}
		if len(games) == 0 {
			fmt.Println("No pickup games found.")
			return nil
		}

		list := make([]models.PickupGame, 0, len(games))
		for _, g := range games {
			list = append(list, *g)
			result := color.GreenString("W")
			if g.Result == models.ResultLoss {
				result = color.RedString("L")
			}
			fmt.Printf("%s %s %s %s %s\n",
				faint.Sprint(shortID(g.ID)),
				g.Date,
				result,
				padRight(truncate(deref(g.Location), 20), 20),
				g.BoxScore)
		}

		r := stats.PickupRecord(list)
		fmt.Println()
		fmt.Printf("Record: %d-%d (%d%%)  Avg: %.1f PTS %.1f AST %.1f REB\n",
			r.Wins, r.Losses, r.WinRate(), r.Averages.Points, r.Averages.Assists, r.Averages.Rebounds)
		return nil
	},
}

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Schedule and record official games",
}

var gameAddCmd = &cobra.Command{
	Use:   "add <opponent>",
	Short: "Add an official game",
	Long: `Add an official game. Stats and scores are only kept for completed games.

EXAMPLES:

  hoops game add Hawks --date 2024-06-20 --time 19:30 --location "Main Gym"
  hoops game add Eagles --date 2024-06-01 --status completed --team-score 61 --opp-score 58 --pts 14`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(gameDate)
		if err != nil {
			return err
		}
		if !models.IsValidGameStatus(gameStatus) {
			return fmt.Errorf("unknown status: %s (use scheduled, completed, cancelled)", gameStatus)
		}

		g := models.NewOfficialGame(date, args[0])
		g.Status = models.GameStatus(gameStatus)
		if gameTime != "" {
			g.WithTime(gameTime)
		}
		if gameLocation != "" {
			g.WithLocation(gameLocation)
		}
		if gameNotes != "" {
			g.WithNotes(gameNotes)
		}
		if cmd.Flags().Changed("team-score") {
			team := gameTeamScore
			g.TeamScore = &team
		}
		if cmd.Flags().Changed("opp-score") {
			opp := gameOppScore
			g.OpponentScore = &opp
		}
		g.BoxScore = gameBox
		g.MinutesPlayed = gameMinutes
		g.Fouls = gameFouls

		if err := svc.LogOfficialGame(cmd.Context(), g); err != nil {
			return fmt.Errorf("failed to add game: %w", err)
		}

		color.Green("✓ Added %s game vs %s on %s", g.Status, g.Opponent, g.Date)
		fmt.Printf("  %s\n", faint.Sprint(shortID(g.ID)))
		return nil
	},
}

var gameListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List upcoming and past official games",
	RunE: func(cmd *cobra.Command, args []string) error {
		games, err := svc.ListGames(cmd.Context())
		if err != nil {
			return err
		}
		if len(games.Upcoming) == 0 && len(games.Past) == 0 {
			fmt.Println("No official games found.")
			return nil
		}

		fmt.Println("Upcoming")
		if len(games.Upcoming) == 0 {
			fmt.Println("  none")
		}
		for _, g := range games.Upcoming {
			printGameLine(g)
		}

		fmt.Println()
		fmt.Println("Past")
		if len(games.Past) == 0 {
			fmt.Println("  none")
		}
		for _, g := range games.Past {
			printGameLine(g)
		}

		r := stats.OfficialRecord(games.Past)
		if r.Games > 0 {
			fmt.Println()
			fmt.Printf("Record: %d-%d  Avg: %.1f PTS %.1f AST %.1f REB\n",
				r.Wins, r.Losses, r.Averages.Points, r.Averages.Assists, r.Averages.Rebounds)
		}
		return nil
	},
}

func printGameLine(g models.OfficialGame) {
	when := g.Date.String()
	if g.Time != nil {
		when += " " + *g.Time
	}
	detail := deref(g.Location)
	switch g.Status {
	case models.StatusCompleted:
		if g.TeamScore != nil && g.OpponentScore != nil {
			detail = fmt.Sprintf("%d-%d  %s", *g.TeamScore, *g.OpponentScore, g.BoxScore)
		}
	case models.StatusCancelled:
		detail = color.YellowString("cancelled")
	}
	fmt.Printf("  %s %s vs %s %s\n",
		faint.Sprint(shortID(g.ID)),
		padRight(when, 16),
		padRight(g.Opponent, 16),
		detail)
}

var gameImportCmd = &cobra.Command{
	Use:   "import <schedule.ics>",
	Short: "Import official games from an iCalendar schedule",
	Long: `Import a league schedule from an .ics file.

Each event becomes a scheduled game. The opponent is taken from the event
summary ("vs Hawks", "@ Eagles"). Events marked CANCELLED are imported as
cancelled. Games already present on the same date against the same opponent
are skipped.

EXAMPLES:

  hoops game import league.ics
  hoops game import league.ics --tz America/Chicago`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := time.Local
		if gameImportTZ != "" {
			var err error
			loc, err = time.LoadLocation(gameImportTZ)
			if err != nil {
				return fmt.Errorf("invalid time zone: %s", gameImportTZ)
			}
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open schedule: %w", err)
		}
		defer f.Close()

		res, err := svc.ImportSchedule(cmd.Context(), f, loc)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d games", len(res.Imported))
		for _, g := range res.Imported {
			printGameLine(g)
		}
		if res.Skipped > 0 {
			color.Yellow("⚠ Skipped %d games already scheduled", res.Skipped)
		}
		return nil
	},
}

func init() {
	pickupAddCmd.Flags().StringVar(&pickupDate, "date", "", "game date (YYYY-MM-DD, default today)")
	pickupAddCmd.Flags().StringVar(&pickupLocation, "location", "", "court or gym")
	pickupAddCmd.Flags().IntVar(&pickupDuration, "duration", models.DefaultDuration, "duration in minutes")
	pickupAddCmd.Flags().StringVar(&pickupPlayers, "players", "", "who played")
	pickupAddCmd.Flags().StringVar(&pickupResult, "result", "", "win or loss (required)")
	pickupAddCmd.Flags().StringVar(&pickupNotes, "notes", "", "game notes")
	boxScoreFlags(pickupAddCmd, &pickupBox)
	pickupListCmd.Flags().IntVarP(&pickupLimit, "limit", "n", 20, "max number of results")

	gameAddCmd.Flags().StringVar(&gameDate, "date", "", "game date (YYYY-MM-DD, default today)")
	gameAddCmd.Flags().StringVar(&gameTime, "time", "", "tip-off time (HH:MM)")
	gameAddCmd.Flags().StringVar(&gameLocation, "location", "", "venue")
	gameAddCmd.Flags().StringVar(&gameStatus, "status", string(models.StatusScheduled), "scheduled, completed, cancelled")
	gameAddCmd.Flags().IntVar(&gameTeamScore, "team-score", 0, "final team score")
	gameAddCmd.Flags().IntVar(&gameOppScore, "opp-score", 0, "final opponent score")
	gameAddCmd.Flags().IntVar(&gameMinutes, "minutes", 0, "minutes played")
	gameAddCmd.Flags().IntVar(&gameFouls, "fouls", 0, "personal fouls")
	gameAddCmd.Flags().StringVar(&gameNotes, "notes", "", "game notes")
	boxScoreFlags(gameAddCmd, &gameBox)
	gameImportCmd.Flags().StringVar(&gameImportTZ, "tz", "", "time zone for floating event times (default local)")

	pickupCmd.AddCommand(pickupAddCmd)
	pickupCmd.AddCommand(pickupListCmd)
	gameCmd.AddCommand(gameAddCmd)
	gameCmd.AddCommand(gameListCmd)
	gameCmd.AddCommand(gameImportCmd)
	rootCmd.AddCommand(pickupCmd)
	rootCmd.AddCommand(gameCmd)
}
