package analytics

import (
	"time"

	"github.com/blackwell-systems/habitwatch/internal/habit"
)

// trendMinPoints is the minimum dense sequence length for a meaningful
// half-vs-half comparison.
const trendMinPoints = 7

// BuildChartData densifies a habit's completion history into one point
// per calendar day over a fixed-length window ending today. Days without
// a completion appear as explicit false points, which is what calendar
// and heatmap renderers need.
func BuildChartData(h HabitInfo, dates []time.Time, period string, today time.Time) ChartData {
	days := chartWindowDays(period)
	today = habit.Day(today)
	start := today.AddDate(0, 0, -(days - 1))

	completed := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		completed[habit.Day(d)] = true
	}

	data := ChartData{
		HabitName: h.Name,
		Period:    period,
		Points:    make([]Point, 0, days),
		TotalDays: days,
	}

	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		done := completed[day]
		if done {
			data.CompletedDays++
		}
		data.Points = append(data.Points, Point{Date: day, Completed: done})
	}

	data.CompletionRate = CompletionRate(data.CompletedDays, data.TotalDays)
	data.Streaks = streakRuns(data.Points)
	for _, s := range data.Streaks {
		if s > data.LongestStreak {
			data.LongestStreak = s
		}
	}
	data.CurrentStreak = trailingRun(data.Points)

	return data
}

// streakRuns collects every maximal run of completed days, in window
// order.
func streakRuns(points []Point) []int {
	var runs []int
	run := 0
	for _, p := range points {
		if p.Completed {
			run++
			continue
		}
		if run > 0 {
			runs = append(runs, run)
			run = 0
		}
	}
	if run > 0 {
		runs = append(runs, run)
	}
	return runs
}

// trailingRun counts the completed days at the end of the window. This
// is a plain suffix length with no grace day: if the window's last day
// is incomplete the run is 0, regardless of what CurrentStreak would say
// about the same history.
func trailingRun(points []Point) int {
	run := 0
	for i := len(points) - 1; i >= 0 && points[i].Completed; i-- {
		run++
	}
	return run
}

// AnalyzeTrend splits a dense sequence at its midpoint and compares the
// completion rates of the two halves. Sequences shorter than seven
// points carry too little signal and report ok=false.
func AnalyzeTrend(points []Point) (Trend, bool) {
	if len(points) < trendMinPoints {
		return Trend{}, false
	}

	mid := len(points) / 2
	early := completedPercent(points[:mid])
	recent := completedPercent(points[mid:])
	diff := recent - early

	var direction string
	switch {
	case diff > 10:
		direction = TrendStrongUpward
	case diff > 5:
		direction = TrendSlightUpward
	case diff >= -5:
		direction = TrendStable
	case diff >= -10:
		direction = TrendSlightDownward
	default:
		direction = TrendConcerningDownward
	}

	return Trend{
		Direction:  direction,
		EarlyRate:  round1(early),
		RecentRate: round1(recent),
		Diff:       round1(diff),
	}, true
}

func completedPercent(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	n := 0
	for _, p := range points {
		if p.Completed {
			n++
		}
	}
	return float64(n) / float64(len(points)) * 100
}
