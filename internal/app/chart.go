package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/analytics"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
)

var (
	chartFlagPeriod string
	chartFlagStyle  string
)

var chartCmd = &cobra.Command{
	Use:   "chart <habit>",
	Short: "Visualize a habit's completion history",
	Long: `Render a habit's completion history as a calendar, heatmap, or
simple bar chart. Month and year charts include a trend summary when
there is enough history to compare.

Examples:
  habitwatch chart "Exercise"
  habitwatch chart "Exercise" --period week
  habitwatch chart "Exercise" --style heatmap
  habitwatch chart "Exercise" --period year --style simple`,
	Args: cobra.ExactArgs(1),
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVarP(&chartFlagPeriod, "period", "p", "month", "Time period: week, month, year")
	chartCmd.Flags().StringVarP(&chartFlagStyle, "style", "s", "calendar", "Chart style: calendar, heatmap, simple")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	period, err := analytics.ParseChartPeriod(chartFlagPeriod)
	if err != nil {
		return err
	}
	style, err := output.ParseChartStyle(chartFlagStyle)
	if err != nil {
		return err
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

	entries, err := env.db.GetEntries(row.ID)
	if err != nil {
		return err
	}
	dates := make([]time.Time, len(entries))
	for i, e := range entries {
		dates[i] = e.Date
	}

	today := habit.Today()
	data := analytics.BuildChartData(habitInfo(row), dates, period, today)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	fmt.Println(output.Chart(data, style))

	// A week is too short to split into meaningful halves.
	if period != analytics.PeriodWeek {
		if trend, ok := analytics.AnalyzeTrend(data.Points); ok {
			fmt.Println()
			fmt.Println(output.TrendSummary(trend))
		}
	}
	return nil
}
