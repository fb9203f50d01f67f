package analytics

import (
	"sort"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/habit"
)

// recentEntryLimit caps the recent-activity excerpt in a Stats record.
const recentEntryLimit = 10

// HabitStats aggregates one habit's statistics over the given period.
// Streaks and the rate denominator respect the window boundary: a streak
// that started before the window begins is clipped at the boundary, so a
// week-period current streak can be shorter than the all-time one.
func HabitStats(h HabitInfo, entries []Entry, period string, today time.Time) Stats {
	window := ResolveWindow(period, h.CreatedAt, today)
	filtered := filterEntries(entries, window)

	dates := make([]time.Time, len(filtered))
	for i, e := range filtered {
		dates[i] = e.Date
	}

	recent := filtered
	if len(recent) > recentEntryLimit {
		recent = recent[len(recent)-recentEntryLimit:]
	}

	return Stats{
		Habit:            h.Name,
		Period:           period,
		TotalCompletions: len(filtered),
		CurrentStreak:    CurrentStreak(dates, today),
		LongestStreak:    LongestStreak(dates),
		CompletionRate:   CompletionRate(len(filtered), window.Days),
		CreatedAt:        h.CreatedAt,
		Active:           h.Active,
		Recent:           recent,
	}
}

// OverallStats aggregates every habit in the fleet over the given
// period. Longest streaks are skipped here (the fleet view does not
// display them), and the average rate is the unweighted mean across all
// habits in the input. An empty fleet yields a zero-valued summary.
func OverallStats(habits []HabitInfo, entriesByHabit map[int64][]Entry, period string, today time.Time) Overall {
	overall := Overall{
		Habits: make([]HabitSummary, 0, len(habits)),
	}

	var rateSum float64
	for _, h := range habits {
		window := ResolveWindow(period, h.CreatedAt, today)
		filtered := filterEntries(entriesByHabit[h.ID], window)

		dates := make([]time.Time, len(filtered))
		for i, e := range filtered {
			dates[i] = e.Date
		}

		rate := CompletionRate(len(filtered), window.Days)
		rateSum += rate

		overall.Habits = append(overall.Habits, HabitSummary{
			ID:             h.ID,
			Name:           h.Name,
			Frequency:      h.Frequency,
			Active:         h.Active,
			Completions:    len(filtered),
			CompletionRate: rate,
			CurrentStreak:  CurrentStreak(dates, today),
		})

		overall.Summary.TotalCompletions += len(filtered)
		if h.Active {
			overall.Summary.ActiveHabits++
		}
	}

	overall.Summary.TotalHabits = len(habits)
	if len(habits) > 0 {
		overall.Summary.AverageCompletionRate = round1(rateSum / float64(len(habits)))
	}
	return overall
}

// filterEntries keeps the entries inside the window, sorted by
// ascending date. Unbounded windows keep everything.
func filterEntries(entries []Entry, window Window) []Entry {
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		day := habit.Day(e.Date)
		if window.Bounded && day.Before(window.Start) {
			continue
		}
		filtered = append(filtered, Entry{Date: day, Note: e.Note})
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Date.Before(filtered[j].Date) })
	return filtered
}
