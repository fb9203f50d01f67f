package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/analytics"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
)

var (
	trackFlagDate string
	trackFlagNote string
)

var trackCmd = &cobra.Command{
	Use:   "track <habit>",
	Short: "Mark a habit complete for a date",
	Long: `Record a completion for a habit. The date defaults to today and
accepts YYYY-MM-DD, 'today', 'yesterday', or a relative offset like
'-1d'. Each habit can be tracked at most once per day.

Examples:
  habitwatch track "Exercise"
  habitwatch track "Read" --date yesterday
  habitwatch track "Gym" --date 2025-07-11 --note "Leg day"`,
	Args: cobra.ExactArgs(1),
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().StringVarP(&trackFlagDate, "date", "d", "", "Date to track (default: today)")
	trackCmd.Flags().StringVarP(&trackFlagNote, "note", "n", "", "Optional note for this entry")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	today := habit.Today()

	date, err := habit.ParseDate(trackFlagDate, today)
	if err != nil {
		return err
	}
	if date.After(today) {
		return fmt.Errorf("cannot track habits for future dates (%s is after today)", date.Format("2006-01-02"))
	}

	note, err := habit.NormalizeNote(trackFlagNote)
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	row, err := env.findActiveHabit(args[0])
	if err != nil {
		return err
	}

	existing, err := env.db.GetEntry(row.ID, date)
	if err != nil {
		return fmt.Errorf("checking entry: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("habit '%s' is already tracked for %s (untrack it first to change the note)",
			row.Name, habit.FormatRelative(date, today))
	}

	if _, err := env.db.InsertEntry(row.ID, date, note); err != nil {
		return fmt.Errorf("tracking habit: %w", err)
	}
	env.invalidateStats(row.Name)

	streak, err := currentStreak(env, row.ID, today)
	if err != nil {
		return err
	}

	fmt.Printf("%s Tracked '%s' for %s\n",
		output.StyleSuccess.Render("✓"), output.StyleBold.Render(row.Name), habit.FormatRelative(date, today))
	if note != "" {
		fmt.Printf("  %s\n", output.StyleMuted.Render("Note: "+note))
	}
	if marker := output.StreakMarker(streak); marker != "" {
		fmt.Printf("  Current streak: %s %s\n", marker, plural(streak, "day"))
	}
	return nil
}

// currentStreak recomputes a habit's streak from its stored entries.
func currentStreak(env *appEnv, habitID int64, today time.Time) (int, error) {
	entries, err := env.db.GetEntries(habitID)
	if err != nil {
		return 0, fmt.Errorf("loading entries: %w", err)
	}
	dates := make([]time.Time, len(entries))
	for i, e := range entries {
		dates[i] = e.Date
	}
	return analytics.CurrentStreak(dates, today), nil
}
