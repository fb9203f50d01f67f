package analytics

import (
	"fmt"
	"testing"
	"time"
)

func entriesOn(dates []time.Time) []Entry {
	out := make([]Entry, len(dates))
	for i, d := range dates {
		out[i] = Entry{Date: d}
	}
	return out
}

func TestHabitStats_AllTime(t *testing.T) {
	// Created July 1, completed July 7-11, viewed on July 11: the
	// denominator is the 11 days since creation.
	h := HabitInfo{ID: 1, Name: "Exercise", Frequency: "daily", CreatedAt: day(2025, time.July, 1), Active: true}
	entries := entriesOn(consecutive(day(2025, time.July, 7), 5))
	today := day(2025, time.July, 11)

	got := HabitStats(h, entries, PeriodAll, today)

	if got.TotalCompletions != 5 {
		t.Errorf("total completions = %d, want 5", got.TotalCompletions)
	}
	if got.CurrentStreak != 5 {
		t.Errorf("current streak = %d, want 5", got.CurrentStreak)
	}
	if got.LongestStreak != 5 {
		t.Errorf("longest streak = %d, want 5", got.LongestStreak)
	}
	if diff := got.CompletionRate - 45.5; diff > 0.001 || diff < -0.001 {
		t.Errorf("completion rate = %v, want 45.5", got.CompletionRate)
	}
	if !got.Active {
		t.Error("expected active habit")
	}
}

func TestHabitStats_WeekWindow(t *testing.T) {
	// Same history over the 7-day window: same count, larger rate.
	h := HabitInfo{ID: 1, Name: "Exercise", CreatedAt: day(2025, time.July, 1), Active: true}
	entries := entriesOn(consecutive(day(2025, time.July, 7), 5))
	today := day(2025, time.July, 11)

	got := HabitStats(h, entries, PeriodWeek, today)

	if got.TotalCompletions != 5 {
		t.Errorf("total completions = %d, want 5", got.TotalCompletions)
	}
	if diff := got.CompletionRate - 71.4; diff > 0.001 || diff < -0.001 {
		t.Errorf("completion rate = %v, want 71.4", got.CompletionRate)
	}
}

func TestHabitStats_NoCompletions(t *testing.T) {
	h := HabitInfo{ID: 1, Name: "Exercise", CreatedAt: day(2025, time.July, 1), Active: true}
	today := day(2025, time.July, 11)

	got := HabitStats(h, nil, PeriodAll, today)

	if got.TotalCompletions != 0 || got.CurrentStreak != 0 || got.LongestStreak != 0 {
		t.Errorf("expected zero counts, got %+v", got)
	}
	if got.CompletionRate != 0.0 {
		t.Errorf("completion rate = %v, want 0.0", got.CompletionRate)
	}
	if len(got.Recent) != 0 {
		t.Errorf("expected empty excerpt, got %d entries", len(got.Recent))
	}
}

func TestHabitStats_WindowClipsStreak(t *testing.T) {
	// A 10-day run ending today reads as 7 inside the week window.
	h := HabitInfo{ID: 1, Name: "Exercise", CreatedAt: day(2025, time.June, 1), Active: true}
	today := day(2025, time.July, 11)
	entries := entriesOn(consecutive(day(2025, time.July, 2), 10))

	got := HabitStats(h, entries, PeriodWeek, today)

	if got.CurrentStreak != 7 {
		t.Errorf("current streak = %d, want 7 (clipped to window)", got.CurrentStreak)
	}
	if got.LongestStreak != 7 {
		t.Errorf("longest streak = %d, want 7 (clipped to window)", got.LongestStreak)
	}
	if got.TotalCompletions != 7 {
		t.Errorf("total completions = %d, want 7", got.TotalCompletions)
	}
}

func TestHabitStats_RecentExcerpt(t *testing.T) {
	h := HabitInfo{ID: 1, Name: "Read", CreatedAt: day(2025, time.June, 1), Active: true}
	today := day(2025, time.July, 11)

	dates := consecutive(day(2025, time.June, 20), 15) // June 20 - July 4
	entries := make([]Entry, len(dates))
	for i, d := range dates {
		entries[i] = Entry{Date: d, Note: fmt.Sprintf("note %d", i)}
	}

	got := HabitStats(h, entries, PeriodAll, today)

	if len(got.Recent) != 10 {
		t.Fatalf("excerpt length = %d, want 10", len(got.Recent))
	}
	if want := day(2025, time.June, 25); !got.Recent[0].Date.Equal(want) {
		t.Errorf("excerpt starts at %v, want %v", got.Recent[0].Date, want)
	}
	if want := day(2025, time.July, 4); !got.Recent[9].Date.Equal(want) {
		t.Errorf("excerpt ends at %v, want %v", got.Recent[9].Date, want)
	}
	for i := 1; i < len(got.Recent); i++ {
		if !got.Recent[i-1].Date.Before(got.Recent[i].Date) {
			t.Fatalf("excerpt not in ascending order at %d", i)
		}
	}
	if got.Recent[9].Note != "note 14" {
		t.Errorf("excerpt note = %q, want %q", got.Recent[9].Note, "note 14")
	}
}

func TestOverallStats_Empty(t *testing.T) {
	got := OverallStats(nil, nil, PeriodMonth, day(2025, time.July, 11))

	if len(got.Habits) != 0 {
		t.Errorf("expected no habit summaries, got %d", len(got.Habits))
	}
	if got.Summary.TotalHabits != 0 || got.Summary.ActiveHabits != 0 || got.Summary.TotalCompletions != 0 {
		t.Errorf("expected zero summary, got %+v", got.Summary)
	}
	if got.Summary.AverageCompletionRate != 0.0 {
		t.Errorf("average rate = %v, want 0.0", got.Summary.AverageCompletionRate)
	}
}

func TestOverallStats_Fleet(t *testing.T) {
	today := day(2025, time.July, 11)
	habits := []HabitInfo{
		{ID: 1, Name: "Exercise", Frequency: "daily", CreatedAt: day(2025, time.June, 1), Active: true},
		{ID: 2, Name: "Read", Frequency: "daily", CreatedAt: day(2025, time.June, 1), Active: true},
		{ID: 3, Name: "Old Habit", Frequency: "daily", CreatedAt: day(2025, time.January, 1), Active: false},
	}
	byHabit := map[int64][]Entry{
		1: entriesOn(consecutive(day(2025, time.July, 5), 7)),  // the whole week
		2: entriesOn(consecutive(day(2025, time.July, 8), 2)),  // broken before today
		3: nil,
	}

	got := OverallStats(habits, byHabit, PeriodWeek, today)

	if got.Summary.TotalHabits != 3 {
		t.Errorf("total habits = %d, want 3", got.Summary.TotalHabits)
	}
	if got.Summary.ActiveHabits != 2 {
		t.Errorf("active habits = %d, want 2", got.Summary.ActiveHabits)
	}
	if got.Summary.TotalCompletions != 9 {
		t.Errorf("total completions = %d, want 9", got.Summary.TotalCompletions)
	}

	// 100.0, 28.6, 0.0 across three habits.
	if diff := got.Summary.AverageCompletionRate - 42.9; diff > 0.001 || diff < -0.001 {
		t.Errorf("average rate = %v, want 42.9", got.Summary.AverageCompletionRate)
	}

	first := got.Habits[0]
	if first.Name != "Exercise" || first.Completions != 7 || first.CurrentStreak != 7 {
		t.Errorf("unexpected first summary: %+v", first)
	}
	if diff := first.CompletionRate - 100.0; diff > 0.001 || diff < -0.001 {
		t.Errorf("first rate = %v, want 100.0", first.CompletionRate)
	}

	second := got.Habits[1]
	if second.CurrentStreak != 0 {
		t.Errorf("second streak = %d, want 0 (run ended July 9)", second.CurrentStreak)
	}
}

func TestOverallStats_UnweightedAverage(t *testing.T) {
	// A day-old habit at 100% pulls the average as hard as a ten-day
	// habit at 50%.
	today := day(2025, time.June, 10)
	habits := []HabitInfo{
		{ID: 1, Name: "Veteran", CreatedAt: day(2025, time.June, 1), Active: true},
		{ID: 2, Name: "Newborn", CreatedAt: day(2025, time.June, 10), Active: true},
	}
	byHabit := map[int64][]Entry{
		1: entriesOn(consecutive(day(2025, time.June, 1), 5)),
		2: entriesOn([]time.Time{day(2025, time.June, 10)}),
	}

	got := OverallStats(habits, byHabit, PeriodAll, today)

	if diff := got.Summary.AverageCompletionRate - 75.0; diff > 0.001 || diff < -0.001 {
		t.Errorf("average rate = %v, want 75.0", got.Summary.AverageCompletionRate)
	}
}
