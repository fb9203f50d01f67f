// Package store provides SQLite database access for habits and their
// tracking entries.
package store

import "time"

// Habit list filters.
const (
	FilterActive   = "active"
	FilterArchived = "archived"
	FilterAll      = "all"
)

// HabitRow represents a habit record in the database. A habit is active
// while archived_at is NULL; archiving preserves its full history.
type HabitRow struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Frequency   string     `json:"frequency"`
	CreatedAt   time.Time  `json:"created_at"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
}

// Active reports whether the habit is not archived.
func (h *HabitRow) Active() bool {
	return h.ArchivedAt == nil
}

// EntryRow represents one completed day for a habit. The store enforces
// at most one entry per (habit, date) pair.
type EntryRow struct {
	ID      int64     `json:"id"`
	HabitID int64     `json:"habit_id"`
	Date    time.Time `json:"date"`
	Note    string    `json:"note,omitempty"`

	// TrackedAt records when the completion was logged, for audit only.
	TrackedAt time.Time `json:"tracked_at"`
}
