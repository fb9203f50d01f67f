package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/analytics"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/blackwell-systems/habitwatch/internal/store"
)

var statsFlagPeriod string

var statsCmd = &cobra.Command{
	Use:   "stats [habit]",
	Short: "Show habit statistics and insights",
	Long: `Show statistics for one habit, or the cross-habit overview when no
habit is named. Periods: week (last 7 days), month (last 30 days),
year (last 365 days), all (since creation).

Examples:
  habitwatch stats                      # overview of every habit
  habitwatch stats "Exercise"           # one habit, all-time
  habitwatch stats "Read" --period month
  habitwatch stats --period week --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsFlagPeriod, "period", "p", "all", "Time period: week, month, year, all")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	period, err := analytics.ParsePeriod(statsFlagPeriod)
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	today := habit.Today()

	if len(args) == 1 {
		return runHabitStats(env, args[0], period, today)
	}
	return runOverallStats(env, period, today)
}

// runHabitStats renders one habit's statistics record.
func runHabitStats(env *appEnv, name, period string, today time.Time) error {
	row, err := env.findHabit(name)
	if err != nil {
		return err
	}

	stats, err := env.habitStats(row, period, today)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	renderHabitStats(stats, today)
	return nil
}

func renderHabitStats(stats analytics.Stats, today time.Time) {
	fmt.Println(output.Section(fmt.Sprintf("Statistics: '%s' · %s", stats.Habit, periodTitle(stats.Period))))
	fmt.Println()

	label := func(l, v string) {
		fmt.Printf(" %s %s\n", output.StyleLabel.Render(l), v)
	}

	status := output.StyleSuccess.Render("✅ Active")
	if !stats.Active {
		status = output.StyleMuted.Render("📦 Archived")
	}
	label("Status", status)
	label("Created", stats.CreatedAt.Format("2006-01-02"))

	fmt.Println()
	label("Total Completions", fmt.Sprintf("%d", stats.TotalCompletions))
	label("Completion Rate", output.RateStyle(stats.CompletionRate).Render(fmt.Sprintf("%.1f%%", stats.CompletionRate)))
	label("Current Streak", fmt.Sprintf("%d %s", stats.CurrentStreak, plural(stats.CurrentStreak, "day")))
	label("Longest Streak", fmt.Sprintf("%d %s", stats.LongestStreak, plural(stats.LongestStreak, "day")))

	// Recent entries come back oldest-first; show the newest on top.
	if len(stats.Recent) > 0 {
		fmt.Println()
		fmt.Printf(" %s\n\n", output.StyleBold.Render(fmt.Sprintf("Recent Activity (last %d entries)", len(stats.Recent))))

		tbl := output.NewTable("Date", "When", "Note")
		for i := len(stats.Recent) - 1; i >= 0; i-- {
			e := stats.Recent[i]
			tbl.AddRow(
				e.Date.Format("2006-01-02"),
				habit.FormatRelative(e.Date, today),
				e.Note,
			)
		}
		tbl.Print()
	}

	fmt.Println()
	fmt.Printf(" %s\n", output.StyleMuted.Render(motivation(stats)))
}

// motivation picks the footer line for a habit's performance tier.
func motivation(stats analytics.Stats) string {
	var msg string
	switch {
	case stats.CompletionRate >= 90:
		msg = "🏆 Outstanding consistency! You're a habit champion!"
	case stats.CompletionRate >= 75:
		msg = "⭐ Great job! You're building strong habits."
	case stats.CompletionRate >= 50:
		msg = "👍 Good progress! Keep building momentum."
	case stats.CompletionRate >= 25:
		msg = "💪 You're getting started! Focus on consistency."
	default:
		msg = "🌱 Every journey begins with a single step. You've got this!"
	}
	if stats.CurrentStreak > 0 {
		msg += fmt.Sprintf(" Current streak: %d %s! 🔥", stats.CurrentStreak, plural(stats.CurrentStreak, "day"))
	}
	return msg
}

// runOverallStats renders the cross-habit view plus ranked insights.
func runOverallStats(env *appEnv, period string, today time.Time) error {
	overall, rows, err := env.overallStats(store.FilterAll, period, today)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Println("No habits found.")
		fmt.Printf(" %s\n", output.StyleMuted.Render("Get started: habitwatch add \"Exercise\""))
		return nil
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(overall)
	}

	renderOverallStats(overall, period)

	// Ranked insights follow the table.
	ctx := insightContext(overall, period)
	if results := insightEngine().Run(ctx); len(results) > 0 {
		fmt.Println()
		fmt.Printf(" %s\n\n", output.StyleBold.Render("Insights"))
		for _, ins := range results {
			fmt.Printf(" • %s\n", ins.Message)
		}
	}
	fmt.Println()
	fmt.Printf(" %s\n", output.StyleMuted.Render("Use 'habitwatch today' for today's progress or 'habitwatch stats <habit>' for details"))
	return nil
}

func renderOverallStats(overall analytics.Overall, period string) {
	fmt.Println(output.Section(fmt.Sprintf("Overall Statistics · %s", periodTitle(period))))
	fmt.Println()

	s := overall.Summary
	label := func(l, v string) {
		fmt.Printf(" %s %s\n", output.StyleLabel.Render(l), v)
	}
	label("Total Habits", fmt.Sprintf("%d", s.TotalHabits))
	label("Active Habits", fmt.Sprintf("%d", s.ActiveHabits))
	label("Archived Habits", fmt.Sprintf("%d", s.TotalHabits-s.ActiveHabits))
	label("Total Completions", fmt.Sprintf("%d", s.TotalCompletions))
	label("Average Rate", output.RateStyle(s.AverageCompletionRate).Render(fmt.Sprintf("%.1f%%", s.AverageCompletionRate)))

	fmt.Println()
	fmt.Printf(" %s\n\n", output.StyleBold.Render("Habit Breakdown"))

	sorted := make([]analytics.HabitSummary, len(overall.Habits))
	copy(sorted, overall.Habits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompletionRate > sorted[j].CompletionRate
	})

	tbl := output.NewTable("Habit", "Status", "Completions", "Rate", "Streak")
	for _, h := range sorted {
		status := "✅"
		if !h.Active {
			status = "📦"
		}

		rate := output.RateStyle(h.CompletionRate).Render(fmt.Sprintf("%.1f%%", h.CompletionRate))

		streak := "0"
		if marker := output.StreakMarker(h.CurrentStreak); marker != "" {
			streak = marker
		}

		tbl.AddRow(h.Name, status, fmt.Sprintf("%d", h.Completions), rate, streak)
	}
	tbl.Print()
}

// periodTitle renders a period token for headers.
func periodTitle(period string) string {
	switch period {
	case analytics.PeriodWeek:
		return "Week"
	case analytics.PeriodMonth:
		return "Month"
	case analytics.PeriodYear:
		return "Year"
	default:
		return "All Time"
	}
}
