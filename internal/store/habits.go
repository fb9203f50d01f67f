package store

import (
	"database/sql"
	"fmt"
	"time"
)

// CreateHabit inserts a new habit and returns the stored row.
func (db *DB) CreateHabit(name, description, frequency string) (*HabitRow, error) {
	result, err := db.conn.Exec(
		"INSERT INTO habits (name, description, frequency, created_at) VALUES (?, ?, ?, ?)",
		name, description, frequency, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return db.GetHabitByID(id)
}

// GetHabitByName returns the habit with the given name, or nil if no
// such habit exists. Archived habits are found too.
func (db *DB) GetHabitByName(name string) (*HabitRow, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, description, frequency, created_at, archived_at FROM habits WHERE name = ?",
		name,
	)
	return scanHabit(row)
}

// GetHabitByID returns the habit with the given ID, or nil if absent.
func (db *DB) GetHabitByID(id int64) (*HabitRow, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, description, frequency, created_at, archived_at FROM habits WHERE id = ?",
		id,
	)
	return scanHabit(row)
}

// ListHabits returns habits matching the filter (FilterActive,
// FilterArchived, or FilterAll), ordered by name.
func (db *DB) ListHabits(filter string) ([]HabitRow, error) {
	query := "SELECT id, name, description, frequency, created_at, archived_at FROM habits"
	switch filter {
	case FilterActive:
		query += " WHERE archived_at IS NULL"
	case FilterArchived:
		query += " WHERE archived_at IS NOT NULL"
	case FilterAll:
	default:
		return nil, fmt.Errorf("invalid filter %q: valid filters are active, archived, all", filter)
	}
	query += " ORDER BY name COLLATE NOCASE"

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var habits []HabitRow
	for rows.Next() {
		var h HabitRow
		var description, archivedAt sql.NullString
		var createdAt string
		if err := rows.Scan(&h.ID, &h.Name, &description, &h.Frequency, &createdAt, &archivedAt); err != nil {
			return nil, err
		}
		h.Description = description.String
		h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if archivedAt.Valid {
			t, _ := time.Parse(time.RFC3339, archivedAt.String)
			h.ArchivedAt = &t
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// UpdateHabit rewrites a habit's mutable fields. The creation timestamp
// never changes.
func (db *DB) UpdateHabit(id int64, name, description, frequency string) error {
	_, err := db.conn.Exec(
		"UPDATE habits SET name = ?, description = ?, frequency = ? WHERE id = ?",
		name, description, frequency, id,
	)
	return err
}

// ArchiveHabit soft-deletes a habit, keeping its history.
func (db *DB) ArchiveHabit(id int64) error {
	_, err := db.conn.Exec(
		"UPDATE habits SET archived_at = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339), id,
	)
	return err
}

// RestoreHabit reactivates an archived habit.
func (db *DB) RestoreHabit(id int64) error {
	_, err := db.conn.Exec("UPDATE habits SET archived_at = NULL WHERE id = ?", id)
	return err
}

// DeleteHabit permanently removes a habit. Its entries go with it via
// the foreign-key cascade.
func (db *DB) DeleteHabit(id int64) error {
	_, err := db.conn.Exec("DELETE FROM habits WHERE id = ?", id)
	return err
}

// CountHabits returns the number of habits matching the filter.
func (db *DB) CountHabits(filter string) (int, error) {
	query := "SELECT COUNT(*) FROM habits"
	switch filter {
	case FilterActive:
		query += " WHERE archived_at IS NULL"
	case FilterArchived:
		query += " WHERE archived_at IS NOT NULL"
	}
	var n int
	err := db.conn.QueryRow(query).Scan(&n)
	return n, err
}

func scanHabit(row *sql.Row) (*HabitRow, error) {
	var h HabitRow
	var description, archivedAt sql.NullString
	var createdAt string
	err := row.Scan(&h.ID, &h.Name, &description, &h.Frequency, &createdAt, &archivedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	h.Description = description.String
	h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if archivedAt.Valid {
		t, _ := time.Parse(time.RFC3339, archivedAt.String)
		h.ArchivedAt = &t
	}
	return &h, nil
}
