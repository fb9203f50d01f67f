package app

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/analytics"
	"github.com/blackwell-systems/habitwatch/internal/cache"
	"github.com/blackwell-systems/habitwatch/internal/config"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/blackwell-systems/habitwatch/internal/store"
)

// appEnv bundles the loaded config, the open store, and the per-process
// statistics cache shared by all work in one command invocation.
type appEnv struct {
	db    *store.DB
	cfg   *config.Config
	stats *cache.Cache
}

// openEnv loads configuration and opens the database.
func openEnv() (*appEnv, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// The config file can turn color off but never force it back on
	// over the --no-color flag or a piped stdout.
	if !cfg.Output.Color {
		output.SetNoColor(true)
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &appEnv{
		db:    db,
		cfg:   cfg,
		stats: cache.New(cfg.Cache.StatsTTL()),
	}, nil
}

// Close releases the database connection.
func (e *appEnv) Close() error {
	return e.db.Close()
}

// errHabitNotFound builds the standard unknown-habit error with the
// list hint.
func errHabitNotFound(name string) error {
	return fmt.Errorf("habit '%s' not found (use 'habitwatch list --filter all' to see all available habits)", name)
}

// findHabit looks up a habit by name, archived or not.
func (e *appEnv) findHabit(name string) (*store.HabitRow, error) {
	row, err := e.db.GetHabitByName(name)
	if err != nil {
		return nil, fmt.Errorf("looking up habit: %w", err)
	}
	if row == nil {
		return nil, errHabitNotFound(name)
	}
	return row, nil
}

// findActiveHabit looks up a habit by name and rejects archived ones.
func (e *appEnv) findActiveHabit(name string) (*store.HabitRow, error) {
	row, err := e.findHabit(name)
	if err != nil {
		return nil, err
	}
	if !row.Active() {
		return nil, fmt.Errorf("habit '%s' is archived (use 'habitwatch restore \"%s\"' to resume tracking)", name, name)
	}
	return row, nil
}

// habitInfo converts a store row into the analytics value snapshot.
func habitInfo(row *store.HabitRow) analytics.HabitInfo {
	return analytics.HabitInfo{
		ID:        row.ID,
		Name:      row.Name,
		Frequency: row.Frequency,
		CreatedAt: row.CreatedAt,
		Active:    row.Active(),
	}
}

// toEntries converts store entry rows into analytics entries.
func toEntries(rows []store.EntryRow) []analytics.Entry {
	entries := make([]analytics.Entry, len(rows))
	for i, r := range rows {
		entries[i] = analytics.Entry{Date: r.Date, Note: r.Note}
	}
	return entries
}

// habitStats computes one habit's statistics for a period, consulting
// the per-process cache first.
func (e *appEnv) habitStats(row *store.HabitRow, period string, today time.Time) (analytics.Stats, error) {
	key := cache.StatsKey(row.Name, period, today)
	if v, ok := e.stats.Get(key); ok {
		return v.(analytics.Stats), nil
	}

	entries, err := e.db.GetEntries(row.ID)
	if err != nil {
		return analytics.Stats{}, fmt.Errorf("loading entries for '%s': %w", row.Name, err)
	}

	stats := analytics.HabitStats(habitInfo(row), toEntries(entries), period, today)
	e.stats.Set(key, stats)
	return stats, nil
}

// overallStats computes the cross-habit view for every habit matching
// the filter, cached per (filter, period, day).
func (e *appEnv) overallStats(filter, period string, today time.Time) (analytics.Overall, []store.HabitRow, error) {
	rows, err := e.db.ListHabits(filter)
	if err != nil {
		return analytics.Overall{}, nil, fmt.Errorf("listing habits: %w", err)
	}

	key := cache.OverallKey(period, today) + ":" + filter
	if v, ok := e.stats.Get(key); ok {
		return v.(analytics.Overall), rows, nil
	}

	entriesByID, err := e.db.GetAllEntries()
	if err != nil {
		return analytics.Overall{}, nil, fmt.Errorf("loading entries: %w", err)
	}

	infos := make([]analytics.HabitInfo, len(rows))
	entries := make(map[int64][]analytics.Entry, len(rows))
	for i := range rows {
		infos[i] = habitInfo(&rows[i])
		entries[rows[i].ID] = toEntries(entriesByID[rows[i].ID])
	}

	overall := analytics.OverallStats(infos, entries, period, today)
	e.stats.Set(key, overall)
	return overall, rows, nil
}

// invalidateStats drops every cached statistic touching the habit,
// including the cross-habit rollups. Called after track/untrack writes.
func (e *appEnv) invalidateStats(habitName string) {
	e.stats.DeletePrefix(cache.HabitPrefix(habitName))
	e.stats.DeletePrefix(cache.OverallPrefix())
}
