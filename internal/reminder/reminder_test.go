package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/store"
)

// newTestWatcher opens an in-memory store and pins the watcher clock to at.
// Hour-based rules are disabled unless a test opts back in.
func newTestWatcher(t *testing.T, at time.Time) (*Watcher, *store.DB) {
	t.Helper()
	db, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	w := New(db, time.Minute, nil)
	w.now = func() time.Time { return at }
	w.ReminderHour = 24
	w.StreakRiskHour = 24
	return w, db
}

func mustHabit(t *testing.T, db *store.DB, name string) int64 {
	t.Helper()
	row, err := db.CreateHabit(name, "", "daily")
	if err != nil {
		t.Fatalf("creating habit %q: %v", name, err)
	}
	return row.ID
}

func mustEntry(t *testing.T, db *store.DB, habitID int64, date time.Time) {
	t.Helper()
	if _, err := db.InsertEntry(habitID, date, ""); err != nil {
		t.Fatalf("inserting entry: %v", err)
	}
}

func TestNew_FloorsInterval(t *testing.T) {
	w := New(nil, 5*time.Second, nil)
	if w.Interval() != 30*time.Second {
		t.Errorf("expected 30s floor, got %v", w.Interval())
	}

	w = New(nil, time.Hour, nil)
	if w.Interval() != time.Hour {
		t.Errorf("expected 1h interval, got %v", w.Interval())
	}
}

func TestSnapshot_NoHabits(t *testing.T) {
	at := time.Date(2025, 7, 11, 12, 0, 0, 0, time.UTC)
	w, _ := newTestWatcher(t, at)

	state, err := w.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Habits) != 0 {
		t.Errorf("expected 0 habits, got %d", len(state.Habits))
	}
	if !state.Day.Equal(habit.Day(at)) {
		t.Errorf("expected day %v, got %v", habit.Day(at), state.Day)
	}
}

func TestSnapshot_TrackedAndStreaks(t *testing.T) {
	at := time.Date(2025, 7, 11, 12, 0, 0, 0, time.UTC)
	w, db := newTestWatcher(t, at)
	today := habit.Day(at)

	reading := mustHabit(t, db, "reading")
	mustEntry(t, db, reading, today.AddDate(0, 0, -2))
	mustEntry(t, db, reading, today.AddDate(0, 0, -1))
	mustEntry(t, db, reading, today)

	gym := mustHabit(t, db, "gym")
	mustEntry(t, db, gym, today.AddDate(0, 0, -1))

	mustHabit(t, db, "journaling")

	archived := mustHabit(t, db, "old habit")
	if err := db.ArchiveHabit(archived); err != nil {
		t.Fatalf("archiving: %v", err)
	}

	state, err := w.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Habits) != 3 {
		t.Fatalf("expected 3 active habits, got %d", len(state.Habits))
	}

	byName := statusByName(state)

	r := byName["reading"]
	if !r.TrackedToday || !r.DidYesterday || r.CurrentStreak != 3 {
		t.Errorf("reading status = %+v, want tracked today and yesterday with streak 3", r)
	}

	g := byName["gym"]
	if g.TrackedToday || !g.DidYesterday || g.CurrentStreak != 1 {
		t.Errorf("gym status = %+v, want untracked today, tracked yesterday, streak 1", g)
	}

	j := byName["journaling"]
	if j.TrackedToday || j.DidYesterday || j.CurrentStreak != 0 {
		t.Errorf("journaling status = %+v, want all zero", j)
	}

	if _, ok := byName["old habit"]; ok {
		t.Error("archived habit should not appear in snapshot")
	}
}

func TestCheck_TrackedSinceLastCheck(t *testing.T) {
	at := time.Date(2025, 7, 11, 12, 0, 0, 0, time.UTC)
	w, db := newTestWatcher(t, at)
	today := habit.Day(at)

	reading := mustHabit(t, db, "reading")

	initial, err := w.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("initial snapshot: %v", err)
	}
	w.previous = initial

	mustEntry(t, db, reading, today)

	alerts := w.Check(context.Background())
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d: %+v", len(alerts), alerts)
	}
	if alerts[0].Level != "info" || alerts[0].Title != "Tracked: reading" {
		t.Errorf("unexpected alert: %+v", alerts[0])
	}

	// Nothing changed; the next check stays quiet.
	if again := w.Check(context.Background()); len(again) != 0 {
		t.Errorf("expected no alerts on unchanged state, got %d", len(again))
	}
}

func TestCheck_MilestoneReached(t *testing.T) {
	at := time.Date(2025, 7, 11, 12, 0, 0, 0, time.UTC)
	w, db := newTestWatcher(t, at)
	w.Milestones = []int{7, 14}
	today := habit.Day(at)

	reading := mustHabit(t, db, "reading")
	for i := 6; i >= 1; i-- {
		mustEntry(t, db, reading, today.AddDate(0, 0, -i))
	}

	initial, err := w.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("initial snapshot: %v", err)
	}
	w.previous = initial

	mustEntry(t, db, reading, today)

	alerts := w.Check(context.Background())

	titles := make(map[string]bool, len(alerts))
	for _, a := range alerts {
		titles[a.Title] = true
	}
	if !titles["Tracked: reading"] {
		t.Errorf("expected tracked alert, got %+v", alerts)
	}
	if !titles["Milestone: reading"] {
		t.Errorf("expected milestone alert, got %+v", alerts)
	}
}

func TestCheck_UntrackedWarningDeduplicated(t *testing.T) {
	at := time.Date(2025, 7, 11, 18, 30, 0, 0, time.UTC)
	w, db := newTestWatcher(t, at)
	w.ReminderHour = 18

	mustHabit(t, db, "reading")

	initial, err := w.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("initial snapshot: %v", err)
	}
	w.previous = initial

	alerts := w.Check(context.Background())
	if len(alerts) != 1 {
		t.Fatalf("expected 1 warning, got %d: %+v", len(alerts), alerts)
	}
	if alerts[0].Level != "warning" || alerts[0].Title != "Daily reminder" {
		t.Errorf("unexpected alert: %+v", alerts[0])
	}

	if again := w.Check(context.Background()); len(again) != 0 {
		t.Errorf("expected repeated warning to be suppressed, got %d", len(again))
	}
}

func TestCheck_DayRolloverResetsSuppressions(t *testing.T) {
	day1 := time.Date(2025, 7, 11, 19, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	current := day1
	w, db := newTestWatcher(t, current)
	w.now = func() time.Time { return current }
	w.ReminderHour = 18

	mustHabit(t, db, "reading")

	initial, err := w.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("initial snapshot: %v", err)
	}
	w.previous = initial

	if first := w.Check(context.Background()); len(first) != 1 {
		t.Fatalf("expected 1 warning on day one, got %d", len(first))
	}
	if second := w.Check(context.Background()); len(second) != 0 {
		t.Fatalf("expected suppression on repeat, got %d", len(second))
	}

	current = day2

	rolled := w.Check(context.Background())
	if len(rolled) != 1 {
		t.Fatalf("expected warning to fire again after rollover, got %d", len(rolled))
	}
	if rolled[0].Title != "Daily reminder" {
		t.Errorf("unexpected alert after rollover: %+v", rolled[0])
	}
}

func TestCheck_SnapshotFailure(t *testing.T) {
	at := time.Date(2025, 7, 11, 12, 0, 0, 0, time.UTC)
	w, db := newTestWatcher(t, at)

	_ = db.Close()

	alerts := w.Check(context.Background())
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Level != "warning" || alerts[0].Title != "Snapshot failed" {
		t.Errorf("unexpected alert: %+v", alerts[0])
	}
}
