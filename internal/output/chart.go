package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/analytics"
)

// Chart styles supported by the chart command.
const (
	ChartCalendar = "calendar"
	ChartHeatmap  = "heatmap"
	ChartSimple   = "simple"
)

// Cell symbols per chart style.
const (
	calendarDone = "█"
	calendarNone = "·"
	heatmapDone  = "🟢"
	heatmapNone  = "⬜"
	simpleDone   = "✅"
	simpleNone   = "⭕"
)

// ParseChartStyle validates a chart style name. An empty style defaults
// to the calendar view.
func ParseChartStyle(s string) (string, error) {
	style := strings.ToLower(strings.TrimSpace(s))
	if style == "" {
		return ChartCalendar, nil
	}
	switch style {
	case ChartCalendar, ChartHeatmap, ChartSimple:
		return style, nil
	}
	return "", fmt.Errorf("invalid style %q: valid styles are calendar, heatmap, simple", s)
}

// Chart renders completion data in the requested style.
func Chart(data analytics.ChartData, style string) string {
	switch style {
	case ChartHeatmap:
		return Heatmap(data)
	case ChartSimple:
		return SimpleChart(data)
	default:
		return CalendarChart(data)
	}
}

// CalendarChart renders one Mo-Su month grid per month covered by the
// window, followed by a legend and the summary statistics block.
func CalendarChart(data analytics.ChartData) string {
	if len(data.Points) == 0 {
		return "No data available for chart generation."
	}

	done := completedDates(data.Points)
	first := data.Points[0].Date
	last := data.Points[len(data.Points)-1].Date

	var sb strings.Builder

	firstMonth := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	for month := firstMonth; !month.After(last); month = month.AddDate(0, 1, 0) {
		sb.WriteString(StyleBold.Render(fmt.Sprintf("%s %d", month.Month(), month.Year())))
		sb.WriteString("\n")
		sb.WriteString(StyleMuted.Render("Mo Tu We Th Fr Sa Su"))
		sb.WriteString("\n")

		col := mondayIndex(month.Weekday())
		var line strings.Builder
		line.WriteString(strings.Repeat("   ", col))

		for day := month; day.Month() == month.Month(); day = day.AddDate(0, 0, 1) {
			symbol := calendarNone
			if done[day] {
				symbol = calendarDone
			}
			line.WriteString(symbol)
			line.WriteString("  ")
			col++
			if col == 7 {
				sb.WriteString(strings.TrimRight(line.String(), " "))
				sb.WriteString("\n")
				line.Reset()
				col = 0
			}
		}
		if col > 0 {
			sb.WriteString(strings.TrimRight(line.String(), " "))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Legend:\n")
	sb.WriteString(fmt.Sprintf("  %s Completed\n", calendarDone))
	sb.WriteString(fmt.Sprintf("  %s Not completed\n\n", calendarNone))
	sb.WriteString(chartStats(data))
	return sb.String()
}

// Heatmap renders contribution-graph week rows aligned to Monday, with a
// month label on every fourth row.
func Heatmap(data analytics.ChartData) string {
	if len(data.Points) == 0 {
		return "No data available for chart generation."
	}

	done := completedDates(data.Points)
	first := data.Points[0].Date
	last := data.Points[len(data.Points)-1].Date
	weekStart := first.AddDate(0, 0, -mondayIndex(first.Weekday()))

	var sb strings.Builder
	sb.WriteString(StyleMuted.Render("      Mon Tue Wed Thu Fri Sat Sun"))
	sb.WriteString("\n")

	week := 0
	for day := weekStart; !day.After(last); day = day.AddDate(0, 0, 7) {
		label := "   "
		if week%4 == 0 {
			label = day.Month().String()[:3]
		}
		cells := make([]string, 0, 7)
		for i := 0; i < 7; i++ {
			symbol := heatmapNone
			if done[day.AddDate(0, 0, i)] {
				symbol = heatmapDone
			}
			cells = append(cells, symbol)
		}
		sb.WriteString(fmt.Sprintf("%s   %s\n", label, strings.Join(cells, " ")))
		week++
	}

	sb.WriteString("\nLegend:\n")
	sb.WriteString(fmt.Sprintf("  %s Completed  %s Not completed\n\n", heatmapDone, heatmapNone))
	sb.WriteString(chartStats(data))
	return sb.String()
}

// SimpleChart renders one cell per day in window order, split into rows
// of seven with the row's starting date as a label.
func SimpleChart(data analytics.ChartData) string {
	if len(data.Points) == 0 {
		return "No data available for chart generation."
	}

	var sb strings.Builder
	for i, p := range data.Points {
		if i%7 == 0 {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(StyleMuted.Render(p.Date.Format("Jan 02")))
			sb.WriteString(" ")
		}
		sb.WriteString(" ")
		if p.Completed {
			sb.WriteString(simpleDone)
		} else {
			sb.WriteString(simpleNone)
		}
	}
	sb.WriteString("\n")

	sb.WriteString("\nLegend:\n")
	sb.WriteString(fmt.Sprintf("  %s Completed  %s Not completed\n\n", simpleDone, simpleNone))
	sb.WriteString(chartStats(data))
	return sb.String()
}

// TrendSummary renders the trend block shown below month and year charts:
// the direction with its indicator, the early and recent window rates, and
// the percentage-point change between them.
func TrendSummary(tr analytics.Trend) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Trend: %s\n", trendLabel(tr.Direction)))
	sb.WriteString(fmt.Sprintf("  Early Period: %.1f%%\n", tr.EarlyRate))
	sb.WriteString(fmt.Sprintf("  Recent Period: %.1f%%\n", tr.RecentRate))
	sb.WriteString(fmt.Sprintf("  Change: %s", TrendArrow(tr.Diff, true)))
	return sb.String()
}

// trendLabel maps a trend direction to its styled display text.
func trendLabel(direction string) string {
	switch direction {
	case analytics.TrendStrongUpward:
		return StyleSuccess.Render("📈 Strong upward trend")
	case analytics.TrendSlightUpward:
		return StyleSuccess.Render("📊 Slight upward trend")
	case analytics.TrendSlightDownward:
		return StyleWarning.Render("📉 Slight downward trend")
	case analytics.TrendConcerningDownward:
		return StyleError.Render("⬇️ Concerning downward trend")
	default:
		return StyleWarning.Render("➡️ Stable trend")
	}
}

// chartStats renders the statistics block shared by all chart styles.
func chartStats(data analytics.ChartData) string {
	var sb strings.Builder
	sb.WriteString("Statistics:\n")
	sb.WriteString(fmt.Sprintf("  Completion Rate: %.1f%%\n", data.CompletionRate))
	sb.WriteString(fmt.Sprintf("  Completed Days: %d/%d\n", data.CompletedDays, data.TotalDays))
	sb.WriteString(fmt.Sprintf("  Current Streak: %d days 🔥\n", data.CurrentStreak))
	sb.WriteString(fmt.Sprintf("  Best Streak: %d days 🏆", data.LongestStreak))
	return sb.String()
}

// completedDates builds a completion lookup keyed by day.
func completedDates(points []analytics.Point) map[time.Time]bool {
	done := make(map[time.Time]bool, len(points))
	for _, p := range points {
		if p.Completed {
			done[p.Date] = true
		}
	}
	return done
}

// mondayIndex returns the column for a weekday in a Monday-first week.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}
