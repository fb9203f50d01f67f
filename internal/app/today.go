package app

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/blackwell-systems/habitwatch/internal/store"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's tracking status",
	Long: `Show every active habit with today's completion state, its current
streak, and the day's overall completion percentage.

Examples:
  habitwatch today
  habitwatch today --json`,
	RunE: runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

// todayHabit is one habit's state in the today view.
type todayHabit struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	TrackedToday  bool   `json:"tracked_today"`
	CurrentStreak int    `json:"current_streak"`
	Note          string `json:"note,omitempty"`
}

// todayOutput is the JSON shape of the today command.
type todayOutput struct {
	Date    time.Time    `json:"date"`
	Habits  []todayHabit `json:"habits"`
	Summary todaySummary `json:"summary"`
}

type todaySummary struct {
	TotalHabits    int     `json:"total_habits"`
	TrackedToday   int     `json:"tracked_today"`
	CompletionRate float64 `json:"completion_rate"`
}

func runToday(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	today := habit.Today()

	overall, rows, err := env.overallStats(store.FilterActive, "all", today)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Println("No active habits.")
		fmt.Printf(" %s\n", output.StyleMuted.Render("Get started: habitwatch add \"Exercise\""))
		return nil
	}

	tracked, err := env.db.GetEntriesForDate(today)
	if err != nil {
		return fmt.Errorf("loading today's entries: %w", err)
	}

	out := todayOutput{Date: today}
	for i, r := range rows {
		h := todayHabit{
			Name:          r.Name,
			Description:   r.Description,
			CurrentStreak: overall.Habits[i].CurrentStreak,
		}
		if entry, ok := tracked[r.ID]; ok {
			h.TrackedToday = true
			h.Note = entry.Note
		}
		out.Habits = append(out.Habits, h)
		if h.TrackedToday {
			out.Summary.TrackedToday++
		}
	}
	out.Summary.TotalHabits = len(out.Habits)
	rate := float64(out.Summary.TrackedToday) / float64(out.Summary.TotalHabits) * 100
	out.Summary.CompletionRate = math.Round(rate*10) / 10

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	renderToday(out)
	return nil
}

func renderToday(out todayOutput) {
	fmt.Println(output.Section(fmt.Sprintf("Today · %s", out.Date.Format("Monday, Jan 2"))))
	fmt.Println()

	tbl := output.NewTable("Habit", "Status", "Streak", "Note")
	for _, h := range out.Habits {
		status := "⭕"
		if h.TrackedToday {
			status = "✅"
		}

		streak := "0"
		if marker := output.StreakMarker(h.CurrentStreak); marker != "" {
			streak = marker
		}

		tbl.AddRow(h.Name, status, streak, h.Note)
	}
	tbl.Print()

	fmt.Println()
	rate := out.Summary.CompletionRate
	emoji := dayMoodEmoji(rate)
	rateText := output.RateStyle(rate).Render(fmt.Sprintf("%.1f%%", rate))
	fmt.Printf(" %s Completion: %s (%d/%d habits tracked)\n",
		emoji, rateText, out.Summary.TrackedToday, out.Summary.TotalHabits)
	fmt.Printf(" %s\n", output.StyleMuted.Render(daySuggestion(out.Summary)))
}

// dayMoodEmoji picks the emoji tier for the day's completion rate.
func dayMoodEmoji(rate float64) string {
	switch {
	case rate == 100:
		return "🎉"
	case rate >= 75:
		return "👍"
	case rate >= 50:
		return "⚡"
	default:
		return "💪"
	}
}

// daySuggestion picks the footer nudge for the day's progress.
func daySuggestion(s todaySummary) string {
	switch {
	case s.CompletionRate == 100:
		return "Amazing! You've completed all your habits today!"
	case s.TrackedToday == 0:
		return "Ready to start your day? Track your first habit!"
	default:
		remaining := s.TotalHabits - s.TrackedToday
		return fmt.Sprintf("Keep going! %d more %s to complete.", remaining, plural(remaining, "habit"))
	}
}
