package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
)

var untrackFlagDate string

var untrackCmd = &cobra.Command{
	Use:   "untrack <habit>",
	Short: "Remove a completion for a date",
	Long: `Remove the tracking entry for a habit on a date (default: today).
The habit's streaks and statistics are recomputed on the next read.

Examples:
  habitwatch untrack "Exercise"
  habitwatch untrack "Read" --date yesterday`,
	Args: cobra.ExactArgs(1),
	RunE: runUntrack,
}

func init() {
	untrackCmd.Flags().StringVarP(&untrackFlagDate, "date", "d", "", "Date to untrack (default: today)")
	rootCmd.AddCommand(untrackCmd)
}

func runUntrack(cmd *cobra.Command, args []string) error {
	today := habit.Today()

	date, err := habit.ParseDate(untrackFlagDate, today)
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

	deleted, err := env.db.DeleteEntry(row.ID, date)
	if err != nil {
		return fmt.Errorf("untracking habit: %w", err)
	}
	if !deleted {
		return fmt.Errorf("nothing was tracked for '%s' on %s", row.Name, habit.FormatRelative(date, today))
	}
	env.invalidateStats(row.Name)

	fmt.Printf("%s Untracked '%s' for %s\n",
		output.StyleWarning.Render("✗"), output.StyleBold.Render(row.Name), habit.FormatRelative(date, today))
	return nil
}
