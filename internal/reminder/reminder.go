// Package reminder provides background monitoring of the day's tracking
// status, emitting alerts for untracked habits, streaks at risk, and
// milestones reached.
package reminder

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/habitwatch/internal/analytics"
	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/store"
)

// minInterval is the floor for the check interval; snapshots query the
// database, so tighter loops are raised to this value.
const minInterval = 30 * time.Second

// snapshotConcurrency bounds the per-habit status workers in a snapshot.
const snapshotConcurrency = 4

// State captures a point-in-time snapshot of today's tracking status.
type State struct {
	Timestamp time.Time
	Day       time.Time // calendar day the snapshot describes
	Habits    []HabitStatus
}

// HabitStatus is one active habit's standing at snapshot time.
type HabitStatus struct {
	Name          string
	TrackedToday  bool
	DidYesterday  bool
	CurrentStreak int
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Title   string
	Message string
	Time    time.Time
}

// Watcher monitors tracking status at a regular interval and emits alerts
// when notable changes are detected.
type Watcher struct {
	db            *store.DB
	interval      time.Duration
	previous      *State
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts

	// ReminderHour is the local hour after which untracked habits produce
	// a warning. StreakRiskHour is the hour after which an endangered
	// streak produces a critical alert.
	ReminderHour   int
	StreakRiskHour int

	// Milestones lists streak lengths that produce a celebration alert
	// when first reached. An empty list disables milestone alerts.
	Milestones []int

	now func() time.Time
}

// New creates a Watcher over the given store. Intervals below 30 seconds
// are raised to 30 seconds.
func New(db *store.DB, interval time.Duration, alertFn func(Alert)) *Watcher {
	if interval < minInterval {
		interval = minInterval
	}
	return &Watcher{
		db:            db,
		interval:      interval,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
		now:           time.Now,
	}
}

// Interval returns the effective check interval.
func (w *Watcher) Interval() time.Duration {
	return w.interval
}

// Run starts the watch loop. It takes an initial snapshot, then checks at
// every interval. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	initial, err := w.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}
	w.previous = initial

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, a := range w.Check(ctx) {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle: takes a new snapshot, compares
// against the previous state, updates the previous state, and returns any
// alerts. Identical alerts are suppressed until the underlying data
// changes, and a day rollover resets the baseline.
func (w *Watcher) Check(ctx context.Context) []Alert {
	curr, err := w.Snapshot(ctx)
	if err != nil {
		return []Alert{{
			Level:   "warning",
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not read tracking data: %v", err),
			Time:    w.now(),
		}}
	}

	var raw []Alert
	if w.previous != nil && w.previous.Day.Equal(curr.Day) {
		raw = Compare(w.previous, curr, w.Milestones)
	} else if w.previous != nil {
		// Day rolled over; yesterday's suppressions no longer apply.
		w.lastAlertKeys = make(map[string]bool)
	}

	at := w.now()
	raw = append(raw, UntrackedReminder(curr, at, w.ReminderHour)...)
	raw = append(raw, StreakRisks(curr, at, w.StreakRiskHour)...)

	// Deduplicate: suppress alerts with the same title+message as last cycle.
	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}

// Snapshot captures the tracking status of every active habit: whether it
// was tracked today and yesterday, and its current streak. Per-habit
// status is computed under a bounded errgroup.
func (w *Watcher) Snapshot(ctx context.Context) (*State, error) {
	at := w.now()
	today := habit.Day(at)
	yesterday := today.AddDate(0, 0, -1)

	rows, err := w.db.ListHabits(store.FilterActive)
	if err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}

	state := &State{
		Timestamp: at,
		Day:       today,
		Habits:    make([]HabitStatus, len(rows)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotConcurrency)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries, err := w.db.GetEntries(row.ID)
			if err != nil {
				return fmt.Errorf("loading entries for %q: %w", row.Name, err)
			}

			status := HabitStatus{Name: row.Name}
			dates := make([]time.Time, len(entries))
			for j, e := range entries {
				dates[j] = e.Date
				if e.Date.Equal(today) {
					status.TrackedToday = true
				}
				if e.Date.Equal(yesterday) {
					status.DidYesterday = true
				}
			}
			status.CurrentStreak = analytics.CurrentStreak(dates, today)

			state.Habits[i] = status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return state, nil
}
