package store

import (
	"database/sql"
	"time"
)

// dateLayout is the storage format for completion dates.
const dateLayout = "2006-01-02"

// InsertEntry records a completion for a habit on a calendar day and
// returns the stored row. Inserting a second entry for the same
// (habit, date) pair fails on the unique constraint; callers that want
// a friendly "already tracked" answer check GetEntry first.
func (db *DB) InsertEntry(habitID int64, date time.Time, note string) (*EntryRow, error) {
	result, err := db.conn.Exec(
		"INSERT INTO entries (habit_id, date, note, tracked_at) VALUES (?, ?, ?, ?)",
		habitID, date.Format(dateLayout), note, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	row := db.conn.QueryRow(
		"SELECT id, habit_id, date, note, tracked_at FROM entries WHERE id = ?", id,
	)
	return scanEntry(row)
}

// GetEntry returns the entry for a habit on a given day, or nil if the
// day is untracked.
func (db *DB) GetEntry(habitID int64, date time.Time) (*EntryRow, error) {
	row := db.conn.QueryRow(
		"SELECT id, habit_id, date, note, tracked_at FROM entries WHERE habit_id = ? AND date = ?",
		habitID, date.Format(dateLayout),
	)
	return scanEntry(row)
}

// DeleteEntry removes the entry for a habit on a given day, reporting
// whether one existed.
func (db *DB) DeleteEntry(habitID int64, date time.Time) (bool, error) {
	result, err := db.conn.Exec(
		"DELETE FROM entries WHERE habit_id = ? AND date = ?",
		habitID, date.Format(dateLayout),
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetEntries returns all entries for a habit in ascending date order.
func (db *DB) GetEntries(habitID int64) ([]EntryRow, error) {
	rows, err := db.conn.Query(
		"SELECT id, habit_id, date, note, tracked_at FROM entries WHERE habit_id = ? ORDER BY date ASC",
		habitID,
	)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// GetRecentEntries returns the newest entries for a habit, newest
// first, up to limit.
func (db *DB) GetRecentEntries(habitID int64, limit int) ([]EntryRow, error) {
	rows, err := db.conn.Query(
		"SELECT id, habit_id, date, note, tracked_at FROM entries WHERE habit_id = ? ORDER BY date DESC LIMIT ?",
		habitID, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// GetAllEntries returns every entry grouped by habit, dates ascending
// within each habit. This feeds the cross-habit aggregation in one
// query instead of one per habit.
func (db *DB) GetAllEntries() (map[int64][]EntryRow, error) {
	rows, err := db.conn.Query(
		"SELECT id, habit_id, date, note, tracked_at FROM entries ORDER BY habit_id, date ASC",
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	byHabit := make(map[int64][]EntryRow)
	for rows.Next() {
		e, err := scanEntryRow(rows)
		if err != nil {
			return nil, err
		}
		byHabit[e.HabitID] = append(byHabit[e.HabitID], e)
	}
	return byHabit, rows.Err()
}

// GetEntriesForDate returns the entries for one calendar day keyed by
// habit, for the daily status view.
func (db *DB) GetEntriesForDate(date time.Time) (map[int64]EntryRow, error) {
	rows, err := db.conn.Query(
		"SELECT id, habit_id, date, note, tracked_at FROM entries WHERE date = ?",
		date.Format(dateLayout),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	byHabit := make(map[int64]EntryRow)
	for rows.Next() {
		e, err := scanEntryRow(rows)
		if err != nil {
			return nil, err
		}
		byHabit[e.HabitID] = e
	}
	return byHabit, rows.Err()
}

// CountEntries returns the total number of tracking entries.
func (db *DB) CountEntries() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n)
	return n, err
}

func collectEntries(rows *sql.Rows) ([]EntryRow, error) {
	defer func() { _ = rows.Close() }()

	var entries []EntryRow
	for rows.Next() {
		e, err := scanEntryRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntryRow(rows *sql.Rows) (EntryRow, error) {
	var e EntryRow
	var date, trackedAt string
	var note sql.NullString
	if err := rows.Scan(&e.ID, &e.HabitID, &date, &note, &trackedAt); err != nil {
		return EntryRow{}, err
	}
	e.Date, _ = time.Parse(dateLayout, date)
	e.Note = note.String
	e.TrackedAt, _ = time.Parse(time.RFC3339, trackedAt)
	return e, nil
}

func scanEntry(row *sql.Row) (*EntryRow, error) {
	var e EntryRow
	var date, trackedAt string
	var note sql.NullString
	err := row.Scan(&e.ID, &e.HabitID, &date, &note, &trackedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.Date, _ = time.Parse(dateLayout, date)
	e.Note = note.String
	e.TrackedAt, _ = time.Parse(time.RFC3339, trackedAt)
	return &e, nil
}
