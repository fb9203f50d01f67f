package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/habit"
)

// Period tokens accepted by the statistics and chart operations.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

// Fixed window lengths. Both the rate denominators and the dense chart
// windows use the same inclusive N-days-ending-today convention, so a
// week is always exactly 7 days wherever it appears.
const (
	weekDays  = 7
	monthDays = 30
	yearDays  = 365
)

// ParsePeriod validates a statistics period token. Empty input defaults
// to all-time.
func ParsePeriod(s string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(s))
	switch p {
	case "":
		return PeriodAll, nil
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return p, nil
	}
	return "", fmt.Errorf("invalid period %q: valid periods are week, month, year, all", s)
}

// ParseChartPeriod validates a chart period token. Charts need a bounded
// window, so all-time is not accepted. Empty input defaults to month.
func ParseChartPeriod(s string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(s))
	switch p {
	case "":
		return PeriodMonth, nil
	case PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	}
	return "", fmt.Errorf("invalid period %q: valid periods are week, month, year", s)
}

// Window is a resolved evaluation range: an inclusive span of Days
// calendar days ending today. Unbounded windows (period all) have no
// meaningful Start and count from the habit's creation day instead.
type Window struct {
	Start   time.Time
	Days    int
	Bounded bool
}

// ResolveWindow turns a period token into a concrete window relative to
// today. For the all-time period the span runs from the habit's creation
// day through today inclusive, never less than one day.
func ResolveWindow(period string, createdAt, today time.Time) Window {
	today = habit.Day(today)

	days := 0
	switch period {
	case PeriodWeek:
		days = weekDays
	case PeriodMonth:
		days = monthDays
	case PeriodYear:
		days = yearDays
	default:
		span := habit.DaysBetween(createdAt, today) + 1
		if span < 1 {
			span = 1
		}
		return Window{Days: span}
	}

	return Window{
		Start:   today.AddDate(0, 0, -(days - 1)),
		Days:    days,
		Bounded: true,
	}
}

// chartWindowDays maps a chart period to its dense window length,
// falling back to a month for anything unrecognized so a bad token still
// renders something sensible.
func chartWindowDays(period string) int {
	switch period {
	case PeriodWeek:
		return weekDays
	case PeriodYear:
		return yearDays
	default:
		return monthDays
	}
}
