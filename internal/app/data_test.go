package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/habitwatch/internal/analytics"
	"github.com/blackwell-systems/habitwatch/internal/cache"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/store"
)

func newTestEnv(t *testing.T) *appEnv {
	t.Helper()

	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &appEnv{db: db, stats: cache.New(time.Minute)}
}

func seedHabit(t *testing.T, env *appEnv, name string, dates ...time.Time) *store.HabitRow {
	t.Helper()

	row, err := env.db.CreateHabit(name, "", "daily")
	require.NoError(t, err)
	for _, d := range dates {
		_, err := env.db.InsertEntry(row.ID, d, "")
		require.NoError(t, err)
	}
	return row
}

func daysAgo(today time.Time, n int) time.Time {
	return today.AddDate(0, 0, -n)
}

func TestFindHabit_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.findHabit("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "habit 'missing' not found")
	assert.Contains(t, err.Error(), "habitwatch list --filter all")
}

func TestFindActiveHabit_Archived(t *testing.T) {
	env := newTestEnv(t)
	row := seedHabit(t, env, "reading")
	require.NoError(t, env.db.ArchiveHabit(row.ID))

	_, err := env.findActiveHabit("reading")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "habit 'reading' is archived")
	assert.Contains(t, err.Error(), "habitwatch restore")
}

func TestHabitStats_CachedUntilInvalidated(t *testing.T) {
	env := newTestEnv(t)
	today := habit.Today()
	row := seedHabit(t, env, "reading", today, daysAgo(today, 1))

	stats, err := env.habitStats(row, analytics.PeriodMonth, today)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCompletions)

	// A write that bypasses the command layer is invisible until the
	// cache entry is dropped.
	_, err = env.db.InsertEntry(row.ID, daysAgo(today, 2), "")
	require.NoError(t, err)

	stats, err = env.habitStats(row, analytics.PeriodMonth, today)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCompletions, "expected the cached result")

	env.invalidateStats(row.Name)

	stats, err = env.habitStats(row, analytics.PeriodMonth, today)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalCompletions)
	assert.Equal(t, 3, stats.CurrentStreak)
}

func TestOverallStats_FilterKeysDoNotCollide(t *testing.T) {
	env := newTestEnv(t)
	today := habit.Today()
	seedHabit(t, env, "reading", today)
	archived := seedHabit(t, env, "gym")
	require.NoError(t, env.db.ArchiveHabit(archived.ID))

	active, rows, err := env.overallStats(store.FilterActive, analytics.PeriodMonth, today)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, active.Summary.TotalHabits)

	all, rows, err := env.overallStats(store.FilterAll, analytics.PeriodMonth, today)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, all.Summary.TotalHabits)
	assert.Equal(t, 1, all.Summary.ActiveHabits)
}

func TestOverallStats_RowsPairWithSummaries(t *testing.T) {
	env := newTestEnv(t)
	today := habit.Today()
	seedHabit(t, env, "reading", today)
	seedHabit(t, env, "gym")

	overall, rows, err := env.overallStats(store.FilterAll, analytics.PeriodMonth, today)
	require.NoError(t, err)
	require.Len(t, overall.Habits, len(rows))
	for i := range rows {
		assert.Equal(t, rows[i].Name, overall.Habits[i].Name)
	}
}

func TestInvalidateStats_KeepsOtherHabits(t *testing.T) {
	env := newTestEnv(t)
	today := habit.Today()
	reading := seedHabit(t, env, "reading", today)
	gym := seedHabit(t, env, "gym", today)

	_, err := env.habitStats(reading, analytics.PeriodMonth, today)
	require.NoError(t, err)
	_, err = env.habitStats(gym, analytics.PeriodMonth, today)
	require.NoError(t, err)

	env.invalidateStats("reading")

	_, ok := env.stats.Get(cache.StatsKey("reading", analytics.PeriodMonth, today))
	assert.False(t, ok)
	_, ok = env.stats.Get(cache.StatsKey("gym", analytics.PeriodMonth, today))
	assert.True(t, ok)
}
