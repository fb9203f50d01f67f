package app

import (
	"encoding/csv"
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
	reportFlagFormat   string
	reportFlagOutput   string
	reportFlagPeriod   string
	reportFlagHabits   string
	reportFlagArchived bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a habit report in table, JSON, CSV, or Markdown form",
	Long: `Build a full report across habits with completion rates, current and
longest streaks, and a summary block. Exports to JSON, CSV, or Markdown
for use outside the terminal.

Examples:
  habitwatch report
  habitwatch report --format json --output report.json
  habitwatch report --format csv --period year
  habitwatch report --habits "Exercise,Reading" -f md`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportFlagFormat, "format", "f", "table", "Report format: table, json, csv, markdown, md")
	reportCmd.Flags().StringVarP(&reportFlagOutput, "output", "o", "", "Write the report to a file instead of stdout")
	reportCmd.Flags().StringVarP(&reportFlagPeriod, "period", "p", "month", "Time period: week, month, year, all")
	reportCmd.Flags().StringVar(&reportFlagHabits, "habits", "", "Comma-separated habit names to include")
	reportCmd.Flags().BoolVar(&reportFlagArchived, "include-archived", false, "Include archived habits")
	rootCmd.AddCommand(reportCmd)
}

type reportHabit struct {
	Name           string    `json:"name"`
	Active         bool      `json:"active"`
	Frequency      string    `json:"frequency"`
	CompletionRate float64   `json:"completion_rate"`
	Completions    int       `json:"completions"`
	CurrentStreak  int       `json:"current_streak"`
	LongestStreak  int       `json:"longest_streak"`
	CreatedAt      time.Time `json:"created_at"`
}

type reportData struct {
	Period      string            `json:"period"`
	GeneratedAt string            `json:"generated_at"`
	Summary     analytics.Summary `json:"summary"`
	Habits      []reportHabit     `json:"habits"`
}

func parseReportFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return "table", nil
	case "json":
		return "json", nil
	case "csv":
		return "csv", nil
	case "markdown", "md":
		return "markdown", nil
	}
	return "", fmt.Errorf("invalid format %q: valid formats are table, json, csv, markdown, md", s)
}

func runReport(cmd *cobra.Command, args []string) error {
	format, err := parseReportFormat(reportFlagFormat)
	if err != nil {
		return err
	}
	period, err := analytics.ParsePeriod(reportFlagPeriod)
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	today := habit.Today()
	data, err := buildReport(env, period, splitHabitNames(reportFlagHabits), reportFlagArchived, today)
	if err != nil {
		return err
	}

	if len(data.Habits) == 0 {
		fmt.Println("No habits found for report generation.")
		fmt.Printf(" %s\n", output.StyleMuted.Render("Add habits with 'habitwatch add' or adjust the filters"))
		return nil
	}

	// The table view is terminal-only; styled output does not belong in
	// a file.
	if format == "table" {
		renderTableReport(data)
		return nil
	}

	var content string
	switch format {
	case "json":
		content, err = formatJSONReport(data)
	case "csv":
		content, err = formatCSVReport(data)
	case "markdown":
		content = formatMarkdownReport(data)
	}
	if err != nil {
		return err
	}

	if reportFlagOutput != "" {
		if err := os.WriteFile(reportFlagOutput, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing report to '%s': %w", reportFlagOutput, err)
		}
		fmt.Printf("%s Report saved to '%s'\n", output.StyleSuccess.Render("✓"), reportFlagOutput)
		fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf("Format: %s", strings.ToUpper(format))))
		return nil
	}

	fmt.Println(content)
	return nil
}

// buildReport assembles the cross-habit summary plus the per-habit
// longest streak, which the overall view alone does not carry.
func buildReport(env *appEnv, period string, requested []string, includeArchived bool, today time.Time) (reportData, error) {
	overall, rows, err := env.overallStats(store.FilterAll, period, today)
	if err != nil {
		return reportData{}, err
	}

	want := make(map[string]bool, len(requested))
	for _, name := range requested {
		want[name] = true
	}

	data := reportData{
		Period:      period,
		GeneratedAt: today.Format("2006-01-02"),
		Summary:     overall.Summary,
	}
	for i, summary := range overall.Habits {
		if len(want) > 0 && !want[summary.Name] {
			continue
		}
		if !includeArchived && !summary.Active {
			continue
		}
		stats, err := env.habitStats(&rows[i], period, today)
		if err != nil {
			return reportData{}, err
		}
		data.Habits = append(data.Habits, reportHabit{
			Name:           summary.Name,
			Active:         summary.Active,
			Frequency:      summary.Frequency,
			CompletionRate: summary.CompletionRate,
			Completions:    summary.Completions,
			CurrentStreak:  summary.CurrentStreak,
			LongestStreak:  stats.LongestStreak,
			CreatedAt:      rows[i].CreatedAt,
		})
	}
	return data, nil
}

func formatJSONReport(data reportData) (string, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func formatCSVReport(data reportData) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{
		"Habit Name", "Status", "Completion Rate %", "Total Completions",
		"Current Streak", "Longest Streak", "Created Date",
	}); err != nil {
		return "", err
	}
	for _, h := range data.Habits {
		status := "Active"
		if !h.Active {
			status = "Archived"
		}
		if err := w.Write([]string{
			h.Name,
			status,
			fmt.Sprintf("%.1f", h.CompletionRate),
			fmt.Sprintf("%d", h.Completions),
			fmt.Sprintf("%d", h.CurrentStreak),
			fmt.Sprintf("%d", h.LongestStreak),
			h.CreatedAt.Format("2006-01-02"),
		}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

func formatMarkdownReport(data reportData) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("# Habits Report - %s", periodTitle(data.Period)))
	lines = append(lines, fmt.Sprintf("*Generated on %s*", data.GeneratedAt))
	lines = append(lines, "")

	lines = append(lines, "## Summary")
	lines = append(lines, fmt.Sprintf("- **Total Habits:** %d", data.Summary.TotalHabits))
	lines = append(lines, fmt.Sprintf("- **Active Habits:** %d", data.Summary.ActiveHabits))
	lines = append(lines, fmt.Sprintf("- **Total Completions:** %d", data.Summary.TotalCompletions))
	lines = append(lines, fmt.Sprintf("- **Average Completion Rate:** %.1f%%", data.Summary.AverageCompletionRate))
	lines = append(lines, "")

	lines = append(lines, "## Habit Details")
	lines = append(lines, "")
	lines = append(lines, "| Habit | Status | Completion Rate | Total Completions | Current Streak | Longest Streak |")
	lines = append(lines, "|-------|--------|-----------------|-------------------|----------------|----------------|")
	for _, h := range data.Habits {
		status := "✅ Active"
		if !h.Active {
			status = "📦 Archived"
		}
		lines = append(lines, fmt.Sprintf("| %s | %s | %.1f%% | %d | %d | %d |",
			h.Name, status, h.CompletionRate, h.Completions, h.CurrentStreak, h.LongestStreak))
	}
	return strings.Join(lines, "\n")
}

func renderTableReport(data reportData) {
	fmt.Println(output.Section(fmt.Sprintf("Report · %s", periodTitle(data.Period))))
	fmt.Println()

	label := func(l, v string) {
		fmt.Printf(" %s %s\n", output.StyleLabel.Render(l), v)
	}
	label("Generated", data.GeneratedAt)
	label("Total Habits", fmt.Sprintf("%d", data.Summary.TotalHabits))
	label("Active Habits", fmt.Sprintf("%d", data.Summary.ActiveHabits))
	label("Total Completions", fmt.Sprintf("%d", data.Summary.TotalCompletions))
	avg := data.Summary.AverageCompletionRate
	label("Average Rate", output.RateStyle(avg).Render(fmt.Sprintf("%.1f%%", avg)))
	fmt.Println()

	habits := make([]reportHabit, len(data.Habits))
	copy(habits, data.Habits)
	sort.SliceStable(habits, func(i, j int) bool {
		return habits[i].CompletionRate > habits[j].CompletionRate
	})

	table := output.NewTable("Habit", "Status", "Rate", "Completions", "Streak", "Best", "Created")
	for _, h := range habits {
		status := "✅"
		if !h.Active {
			status = "📦"
		}
		streak := "0"
		if h.CurrentStreak > 0 {
			streak = fmt.Sprintf("🔥 %d", h.CurrentStreak)
		}
		best := "0"
		if h.LongestStreak > 0 {
			best = fmt.Sprintf("🏆 %d", h.LongestStreak)
		}
		table.AddRow(
			h.Name,
			status,
			output.RateStyle(h.CompletionRate).Render(fmt.Sprintf("%.1f%%", h.CompletionRate)),
			fmt.Sprintf("%d", h.Completions),
			streak,
			best,
			h.CreatedAt.Format("2006-01-02"),
		)
	}
	table.Print()
}
