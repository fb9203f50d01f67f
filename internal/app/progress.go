package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/analytics"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/blackwell-systems/habitwatch/internal/store"
)

var (
	progressFlagPeriod string
	progressFlagHabits string
	progressFlagAll    bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Compare completion bars across habits",
	Long: `Show a completion bar for every habit side by side, best first,
with streak markers and a short list of observations.

Examples:
  habitwatch progress
  habitwatch progress --period week
  habitwatch progress --habits "Exercise,Reading"
  habitwatch progress --all`,
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().StringVarP(&progressFlagPeriod, "period", "p", "month", "Time period: week, month, year")
	progressCmd.Flags().StringVar(&progressFlagHabits, "habits", "", "Comma-separated habit names to include")
	progressCmd.Flags().BoolVar(&progressFlagAll, "all", false, "Include archived habits")
	rootCmd.AddCommand(progressCmd)
}

type progressHabit struct {
	Name           string  `json:"name"`
	Active         bool    `json:"active"`
	CompletionRate float64 `json:"completion_rate"`
	Completions    int     `json:"completions"`
	WindowDays     int     `json:"window_days"`
	CurrentStreak  int     `json:"current_streak"`
}

type progressOutput struct {
	Period      string          `json:"period"`
	Habits      []progressHabit `json:"habits"`
	AverageRate float64         `json:"average_rate"`
}

func runProgress(cmd *cobra.Command, args []string) error {
	period, err := analytics.ParseChartPeriod(progressFlagPeriod)
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	filter := store.FilterActive
	if progressFlagAll {
		filter = store.FilterAll
	}

	today := habit.Today()
	overall, rows, err := env.overallStats(filter, period, today)
	if err != nil {
		return err
	}

	requested := splitHabitNames(progressFlagHabits)
	habits := collectProgress(overall, rows, requested, period, today)

	if len(habits) == 0 {
		if len(requested) > 0 {
			fmt.Printf("No matching habits found: %s\n", strings.Join(requested, ", "))
		} else if progressFlagAll {
			fmt.Println("No habits found.")
		} else {
			fmt.Println("No active habits found.")
		}
		return nil
	}

	sort.SliceStable(habits, func(i, j int) bool {
		return habits[i].CompletionRate > habits[j].CompletionRate
	})

	var sum float64
	for _, h := range habits {
		sum += h.CompletionRate
	}
	avg := sum / float64(len(habits))

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(progressOutput{Period: period, Habits: habits, AverageRate: avg})
	}

	renderProgress(habits, avg, period)
	return nil
}

// splitHabitNames parses a comma-separated --habits value, dropping
// empty segments.
func splitHabitNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// collectProgress pairs each habit row with its summary and window size,
// keeping only the requested names when a filter is given.
func collectProgress(overall analytics.Overall, rows []store.HabitRow, requested []string, period string, today time.Time) []progressHabit {
	want := make(map[string]bool, len(requested))
	for _, name := range requested {
		want[name] = true
	}

	var habits []progressHabit
	for i, summary := range overall.Habits {
		if len(want) > 0 && !want[summary.Name] {
			continue
		}
		window := analytics.ResolveWindow(period, rows[i].CreatedAt, today)
		habits = append(habits, progressHabit{
			Name:           summary.Name,
			Active:         summary.Active,
			CompletionRate: summary.CompletionRate,
			Completions:    summary.Completions,
			WindowDays:     window.Days,
			CurrentStreak:  summary.CurrentStreak,
		})
	}
	return habits
}

func renderProgress(habits []progressHabit, avg float64, period string) {
	fmt.Println(output.Section(fmt.Sprintf("Progress · %s", periodTitle(period))))
	fmt.Println()

	for _, h := range habits {
		name := h.Name
		if !h.Active {
			name += " (archived)"
		}
		line := fmt.Sprintf(" %-20s %s", name, output.RateBar(h.CompletionRate, h.Completions, h.WindowDays, 0))
		if marker := output.StreakMarker(h.CurrentStreak); marker != "" {
			line += " " + marker
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Printf(" Average completion: %s\n", output.RateStyle(avg).Render(fmt.Sprintf("%.1f%%", avg)))

	if len(habits) > 1 {
		fmt.Println()
		fmt.Println(output.StyleBold.Render(" Insights"))
		for _, line := range progressInsights(habits, avg) {
			fmt.Printf(" • %s\n", line)
		}
	}

	fmt.Println()
	fmt.Printf(" %s\n", output.StyleMuted.Render("Use 'habitwatch chart <habit>' for a detailed look at any habit"))
}

// progressInsights builds the short observation list shown under the
// bars: top performers, habits needing attention, the streak leader,
// and an overall read on the average rate.
func progressInsights(habits []progressHabit, avg float64) []string {
	var lines []string

	var top []string
	for _, h := range habits {
		if h.CompletionRate >= 80 && len(top) < 3 {
			top = append(top, fmt.Sprintf("'%s'", h.Name))
		}
	}
	if len(top) > 0 {
		lines = append(lines, fmt.Sprintf("🏆 Top performers: %s", strings.Join(top, ", ")))
	}

	var attention []string
	for _, h := range habits {
		if h.CompletionRate < 50 && len(attention) < 2 {
			attention = append(attention, fmt.Sprintf("'%s'", h.Name))
		}
	}
	if len(attention) > 0 {
		lines = append(lines, fmt.Sprintf("💪 Need attention: %s", strings.Join(attention, ", ")))
	}

	leader := habits[0]
	for _, h := range habits[1:] {
		if h.CurrentStreak > leader.CurrentStreak {
			leader = h
		}
	}
	if leader.CurrentStreak > 0 {
		lines = append(lines, fmt.Sprintf("🔥 Streak leader: '%s' (%d days)", leader.Name, leader.CurrentStreak))
	}

	switch {
	case avg >= 75:
		lines = append(lines, "🎉 Excellent overall consistency across habits!")
	case avg >= 60:
		lines = append(lines, "👍 Good overall progress with room for optimization")
	default:
		lines = append(lines, "📈 Focus on building consistency with fewer habits")
	}
	return lines
}
