package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/analytics"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/insights"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/blackwell-systems/habitwatch/internal/store"
)

var insightsFlagPeriod string

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show ranked observations about your habits",
	Long: `Run the insight rules over your habits and print the findings ranked
by importance: best and struggling habits, streak leaders, declining
trends, and an overall assessment.

Examples:
  habitwatch insights
  habitwatch insights --period week
  habitwatch insights --json`,
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().StringVarP(&insightsFlagPeriod, "period", "p", "month", "Time period: week, month, year, all")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	period, err := analytics.ParsePeriod(insightsFlagPeriod)
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	today := habit.Today()
	overall, rows, err := env.overallStats(store.FilterAll, period, today)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Println("No habits found.")
		fmt.Printf(" %s\n", output.StyleMuted.Render("Get started: habitwatch add \"Exercise\""))
		return nil
	}

	ctx := insightContext(overall, period)
	if err := attachTrends(env, ctx, rows, period, today); err != nil {
		return err
	}

	results := insightEngine().Run(ctx)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Println(output.Section(fmt.Sprintf("Insights · %s", periodTitle(period))))
	fmt.Println()
	for _, ins := range results {
		fmt.Printf(" • %s\n", ins.Message)
		if flagVerbose {
			fmt.Printf("   %s\n", output.StyleMuted.Render(fmt.Sprintf("%s · score %.0f", ins.Category, ins.Score)))
		}
	}
	fmt.Println()
	fmt.Printf(" %s\n", output.StyleMuted.Render("Use 'habitwatch chart <habit>' for a visual look at any habit"))
	return nil
}

// insightEngine returns the shared rule engine.
func insightEngine() *insights.Engine {
	return insights.NewEngine()
}

// insightContext converts the cross-habit view into the rule engine's
// input. Trend fields stay empty until attachTrends fills them.
func insightContext(overall analytics.Overall, period string) *insights.Context {
	ctx := &insights.Context{
		Period:      period,
		AverageRate: overall.Summary.AverageCompletionRate,
		ActiveCount: overall.Summary.ActiveHabits,
		TotalCount:  overall.Summary.TotalHabits,
	}
	for _, h := range overall.Habits {
		ctx.Habits = append(ctx.Habits, insights.HabitContext{
			Name:           h.Name,
			CompletionRate: h.CompletionRate,
			CurrentStreak:  h.CurrentStreak,
			Active:         h.Active,
		})
	}
	return ctx
}

// attachTrends computes each habit's two-half trend over a bounded window
// and attaches it to the matching context entry. The all-time period has
// no bounded chart window, so it borrows the month window.
func attachTrends(env *appEnv, ctx *insights.Context, rows []store.HabitRow, period string, today time.Time) error {
	chartPeriod := period
	if chartPeriod == analytics.PeriodAll {
		chartPeriod = analytics.PeriodMonth
	}

	byName := make(map[string]int, len(ctx.Habits))
	for i, h := range ctx.Habits {
		byName[h.Name] = i
	}

	for i := range rows {
		idx, ok := byName[rows[i].Name]
		if !ok {
			continue
		}

		entries, err := env.db.GetEntries(rows[i].ID)
		if err != nil {
			return fmt.Errorf("loading entries for '%s': %w", rows[i].Name, err)
		}
		dates := make([]time.Time, len(entries))
		for j, e := range entries {
			dates[j] = e.Date
		}

		data := analytics.BuildChartData(habitInfo(&rows[i]), dates, chartPeriod, today)
		if trend, ok := analytics.AnalyzeTrend(data.Points); ok {
			ctx.Habits[idx].TrendDirection = trend.Direction
			ctx.Habits[idx].TrendChange = trend.Diff
		}
	}
	return nil
}
