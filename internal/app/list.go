package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/blackwell-systems/habitwatch/internal/store"
)

var listFlagFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits with streaks and completions",
	Long: `List your habits with frequency, creation date, current streak, and
total completions. Use the filter to include archived habits.

Examples:
  habitwatch list                   # active habits
  habitwatch list --filter all      # everything, archived included
  habitwatch list -f archived       # archived only
  habitwatch list --json            # machine-readable output`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFlagFilter, "filter", "f", store.FilterActive, "Filter habits: active, archived, all")
	rootCmd.AddCommand(listCmd)
}

// listRow is the JSON shape of one listed habit.
type listRow struct {
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Frequency     string    `json:"frequency"`
	CreatedAt     time.Time `json:"created_at"`
	Active        bool      `json:"active"`
	CurrentStreak int       `json:"current_streak"`
	Completions   int       `json:"completions"`
}

func runList(cmd *cobra.Command, args []string) error {
	filter := listFlagFilter
	switch filter {
	case store.FilterActive, store.FilterArchived, store.FilterAll:
	default:
		return fmt.Errorf("invalid filter '%s' (valid options: active, archived, all)", filter)
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	today := habit.Today()
	overall, rows, err := env.overallStats(filter, "all", today)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		switch filter {
		case store.FilterArchived:
			fmt.Println("No archived habits found.")
		default:
			fmt.Println("No habits found.")
			fmt.Printf(" %s\n", output.StyleMuted.Render("Get started: habitwatch add \"Exercise\""))
		}
		return nil
	}

	// Summaries come back in row order.
	list := make([]listRow, len(rows))
	for i, r := range rows {
		list[i] = listRow{
			Name:          r.Name,
			Description:   r.Description,
			Frequency:     r.Frequency,
			CreatedAt:     r.CreatedAt,
			Active:        r.Active(),
			CurrentStreak: overall.Habits[i].CurrentStreak,
			Completions:   overall.Habits[i].Completions,
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	renderList(list, filter)
	return nil
}

func renderList(list []listRow, filter string) {
	fmt.Println(output.Section("Habits"))
	fmt.Println()

	tbl := output.NewTable("Habit", "Frequency", "Created", "Streak", "Completions", "Status")

	for _, r := range list {
		status := output.StyleSuccess.Render("active")
		if !r.Active {
			status = output.StyleMuted.Render("archived")
		}

		streak := "0"
		if marker := output.StreakMarker(r.CurrentStreak); marker != "" {
			streak = marker
		}

		tbl.AddRow(
			r.Name,
			r.Frequency,
			r.CreatedAt.Format("2006-01-02"),
			streak,
			fmt.Sprintf("%d", r.Completions),
			status,
		)
	}

	tbl.Print()

	fmt.Println()
	active, archived := 0, 0
	for _, r := range list {
		if r.Active {
			active++
		} else {
			archived++
		}
	}
	switch filter {
	case store.FilterActive:
		fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf("Showing %d active %s", active, plural(active, "habit"))))
	case store.FilterArchived:
		fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf("Showing %d archived %s", archived, plural(archived, "habit"))))
	default:
		fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf("Showing %d total habits (%d active, %d archived)", len(list), active, archived)))
	}
}

// plural appends "s" to a unit noun when n is not 1.
func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
