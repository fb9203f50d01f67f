package analytics

import (
	"sort"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/habit"
)

// CurrentStreak returns the length of the consecutive run of completed
// days ending at today or yesterday. A run whose most recent day is
// further back than yesterday is broken and scores 0: the streak
// survives an untracked "today" (check in before midnight) but nothing
// older. Input order is irrelevant and duplicate dates are tolerated.
func CurrentStreak(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	completed := make(map[time.Time]bool, len(dates))
	var latest time.Time
	for _, d := range dates {
		day := habit.Day(d)
		completed[day] = true
		if day.After(latest) {
			latest = day
		}
	}

	if habit.DaysBetween(latest, habit.Day(today)) > 1 {
		return 0
	}

	streak := 1
	for prev := latest.AddDate(0, 0, -1); completed[prev]; prev = prev.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// LongestStreak returns the longest consecutive run anywhere in the
// history. A single isolated day counts as a streak of 1; an empty
// history scores 0.
func LongestStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	seen := make(map[time.Time]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := habit.Day(d)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if habit.DaysBetween(days[i-1], days[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
