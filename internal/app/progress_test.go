package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/habitwatch/internal/analytics"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/store"
)

func TestSplitHabitNames(t *testing.T) {
	assert.Nil(t, splitHabitNames(""))
	assert.Nil(t, splitHabitNames("   "))
	assert.Equal(t, []string{"Exercise", "Reading"}, splitHabitNames("Exercise,Reading"))
	assert.Equal(t, []string{"Exercise", "Reading"}, splitHabitNames(" Exercise , Reading ,"))
}

func TestCollectProgress(t *testing.T) {
	env := newTestEnv(t)
	today := habit.Today()
	seedHabit(t, env, "exercise", today, daysAgo(today, 1))
	seedHabit(t, env, "reading")

	overall, rows, err := env.overallStats(store.FilterActive, analytics.PeriodMonth, today)
	require.NoError(t, err)

	all := collectProgress(overall, rows, nil, analytics.PeriodMonth, today)
	require.Len(t, all, 2)
	for _, h := range all {
		assert.Equal(t, 30, h.WindowDays)
	}

	only := collectProgress(overall, rows, []string{"reading"}, analytics.PeriodMonth, today)
	require.Len(t, only, 1)
	assert.Equal(t, "reading", only[0].Name)
	assert.Equal(t, 0, only[0].Completions)

	none := collectProgress(overall, rows, []string{"nope"}, analytics.PeriodMonth, today)
	assert.Empty(t, none)
}

func TestProgressInsights(t *testing.T) {
	habits := []progressHabit{
		{Name: "exercise", CompletionRate: 90, CurrentStreak: 12},
		{Name: "reading", CompletionRate: 45, CurrentStreak: 2},
		{Name: "gym", CompletionRate: 30},
		{Name: "journal", CompletionRate: 20},
	}
	lines := progressInsights(habits, 46.25)
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "🏆 Top performers: 'exercise'")
	assert.Contains(t, joined, "💪 Need attention: 'reading', 'gym'")
	assert.NotContains(t, joined, "'journal'", "attention list caps at two")
	assert.Contains(t, joined, "🔥 Streak leader: 'exercise' (12 days)")
	assert.Contains(t, joined, "📈 Focus on building consistency with fewer habits")
}

func TestProgressInsights_AverageTiers(t *testing.T) {
	habits := []progressHabit{
		{Name: "a", CompletionRate: 80},
		{Name: "b", CompletionRate: 80},
	}

	joined := strings.Join(progressInsights(habits, 80), "\n")
	assert.Contains(t, joined, "🎉 Excellent overall consistency across habits!")

	joined = strings.Join(progressInsights(habits, 65), "\n")
	assert.Contains(t, joined, "👍 Good overall progress with room for optimization")
}

func TestProgressInsights_NoStreaks(t *testing.T) {
	lines := progressInsights([]progressHabit{{Name: "a", CompletionRate: 60}}, 60)
	assert.NotContains(t, strings.Join(lines, "\n"), "Streak leader")
}
