package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
)

var historyFlagLimit int

var historyCmd = &cobra.Command{
	Use:   "history <habit>",
	Short: "Show a habit's recent tracking entries",
	Long: `List a habit's tracked dates, newest first, with any notes that were
recorded alongside them.

Examples:
  habitwatch history "Exercise"
  habitwatch history "Exercise" --limit 30
  habitwatch history "Exercise" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyFlagLimit, "limit", "n", 10, "Maximum number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

type historyEntry struct {
	Date      time.Time `json:"date"`
	Note      string    `json:"note,omitempty"`
	TrackedAt time.Time `json:"tracked_at"`
}

type historyOutput struct {
	Habit   string         `json:"habit"`
	Entries []historyEntry `json:"entries"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyFlagLimit <= 0 {
		return fmt.Errorf("invalid limit %d: must be a positive number", historyFlagLimit)
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	row, err := env.findHabit(args[0])
	if err != nil {
		return err
	}

	entries, err := env.db.GetRecentEntries(row.ID, historyFlagLimit)
	if err != nil {
		return err
	}

	if flagJSON {
		out := historyOutput{Habit: row.Name, Entries: []historyEntry{}}
		for _, e := range entries {
			out.Entries = append(out.Entries, historyEntry{Date: e.Date, Note: e.Note, TrackedAt: e.TrackedAt})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(entries) == 0 {
		fmt.Printf("No entries for '%s' yet.\n", row.Name)
		fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf("Track it: habitwatch track \"%s\"", row.Name)))
		return nil
	}

	today := habit.Today()
	fmt.Println(output.Section(fmt.Sprintf("History: '%s'", row.Name)))
	fmt.Println()

	table := output.NewTable("Date", "When", "Note")
	for _, e := range entries {
		note := e.Note
		if note == "" {
			note = output.StyleMuted.Render("-")
		}
		table.AddRow(e.Date.Format("2006-01-02"), habit.FormatRelative(e.Date, today), note)
	}
	table.Print()

	unit := "entries"
	if len(entries) == 1 {
		unit = "entry"
	}
	fmt.Println()
	fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf("Showing %d %s", len(entries), unit)))
	return nil
}
