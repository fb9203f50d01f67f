package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/habitwatch/internal/analytics"
	"github.com/blackwell-systems/habitwatch/internal/habit"
)

func TestParseReportFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "table"},
		{in: "table", want: "table"},
		{in: "TABLE", want: "table"},
		{in: "json", want: "json"},
		{in: "csv", want: "csv"},
		{in: "markdown", want: "markdown"},
		{in: "md", want: "markdown"},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseReportFormat(tt.in)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.in)
			assert.Contains(t, err.Error(), "valid formats are table, json, csv, markdown, md")
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func sampleReport() reportData {
	created := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	return reportData{
		Period:      "month",
		GeneratedAt: "2025-07-15",
		Summary: analytics.Summary{
			TotalHabits:           3,
			ActiveHabits:          2,
			TotalCompletions:      27,
			AverageCompletionRate: 48.9,
		},
		Habits: []reportHabit{
			{
				Name:           "Exercise",
				Active:         true,
				Frequency:      "daily",
				CompletionRate: 85.7,
				Completions:    24,
				CurrentStreak:  6,
				LongestStreak:  11,
				CreatedAt:      created,
			},
			{
				Name:           "Old Habit",
				Active:         false,
				Frequency:      "daily",
				CompletionRate: 10.0,
				Completions:    3,
				CurrentStreak:  0,
				LongestStreak:  2,
				CreatedAt:      created.AddDate(0, 0, -17),
			},
		},
	}
}

func TestFormatCSVReport(t *testing.T) {
	got, err := formatCSVReport(sampleReport())
	require.NoError(t, err)

	want := "Habit Name,Status,Completion Rate %,Total Completions,Current Streak,Longest Streak,Created Date\n" +
		"Exercise,Active,85.7,24,6,11,2025-06-01\n" +
		"Old Habit,Archived,10.0,3,0,2,2025-05-15\n"
	assert.Equal(t, want, got)
}

func TestFormatMarkdownReport(t *testing.T) {
	got := formatMarkdownReport(sampleReport())

	lines := strings.Split(got, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "# Habits Report - Month", lines[0])
	assert.Equal(t, "*Generated on 2025-07-15*", lines[1])

	assert.Contains(t, got, "## Summary")
	assert.Contains(t, got, "- **Total Habits:** 3")
	assert.Contains(t, got, "- **Active Habits:** 2")
	assert.Contains(t, got, "- **Total Completions:** 27")
	assert.Contains(t, got, "- **Average Completion Rate:** 48.9%")

	assert.Contains(t, got, "## Habit Details")
	assert.Contains(t, got, "| Habit | Status | Completion Rate | Total Completions | Current Streak | Longest Streak |")
	assert.Contains(t, got, "| Exercise | ✅ Active | 85.7% | 24 | 6 | 11 |")
	assert.Contains(t, got, "| Old Habit | 📦 Archived | 10.0% | 3 | 0 | 2 |")
}

func TestFormatJSONReport(t *testing.T) {
	got, err := formatJSONReport(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, got, `"period": "month"`)
	assert.Contains(t, got, `"generated_at": "2025-07-15"`)
	assert.Contains(t, got, `"name": "Exercise"`)
	assert.Contains(t, got, `"longest_streak": 11`)
}

func TestBuildReport(t *testing.T) {
	env := newTestEnv(t)
	today := habit.Today()

	// Three days running, still going.
	seedHabit(t, env, "exercise", today, daysAgo(today, 1), daysAgo(today, 2))
	// A five-day run that ended last week.
	seedHabit(t, env, "reading",
		daysAgo(today, 5), daysAgo(today, 6), daysAgo(today, 7),
		daysAgo(today, 8), daysAgo(today, 9))
	archived := seedHabit(t, env, "old", daysAgo(today, 3))
	require.NoError(t, env.db.ArchiveHabit(archived.ID))

	data, err := buildReport(env, analytics.PeriodMonth, nil, false, today)
	require.NoError(t, err)

	assert.Equal(t, "month", data.Period)
	assert.Equal(t, today.Format("2006-01-02"), data.GeneratedAt)
	assert.Equal(t, 3, data.Summary.TotalHabits)
	assert.Equal(t, 2, data.Summary.ActiveHabits)

	require.Len(t, data.Habits, 2, "archived habits stay out by default")
	byName := make(map[string]reportHabit)
	for _, h := range data.Habits {
		byName[h.Name] = h
	}

	exercise := byName["exercise"]
	assert.Equal(t, 3, exercise.Completions)
	assert.Equal(t, 3, exercise.CurrentStreak)
	assert.Equal(t, 3, exercise.LongestStreak)
	assert.InDelta(t, 10.0, exercise.CompletionRate, 0.01)

	reading := byName["reading"]
	assert.Equal(t, 5, reading.Completions)
	assert.Equal(t, 0, reading.CurrentStreak)
	assert.Equal(t, 5, reading.LongestStreak)
	assert.InDelta(t, 16.7, reading.CompletionRate, 0.01)

	withArchived, err := buildReport(env, analytics.PeriodMonth, nil, true, today)
	require.NoError(t, err)
	assert.Len(t, withArchived.Habits, 3)

	filtered, err := buildReport(env, analytics.PeriodMonth, []string{"reading"}, false, today)
	require.NoError(t, err)
	require.Len(t, filtered.Habits, 1)
	assert.Equal(t, "reading", filtered.Habits[0].Name)
}
