package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avelin/worklog/internal/timesheet"
)

// UpsertEntry stores the entry for its date, fully replacing any existing
// record for that day.
func (s *Store) UpsertEntry(e timesheet.Entry) error {
	now := time.Now().UTC().Format(time.RFC3339)
	billed := 0
	if e.Billed {
		billed = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO work_entries (date, hours, note, is_billed, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
		   hours = excluded.hours,
		   note = excluded.note,
		   is_billed = excluded.is_billed,
		   updated_at = excluded.updated_at`,
		e.Date, e.Hours, e.Note, billed, now,
	)
	if err != nil {
		return fmt.Errorf("upsert entry %s: %w", e.Date, err)
	}
	return nil
}

// GetEntryByDate returns the entry for an ISO date key, or nil when the day
// has no entry.
func (s *Store) GetEntryByDate(date string) (*timesheet.Entry, error) {
	var e timesheet.Entry
	var billed int
	err := s.db.QueryRow(
		`SELECT date, hours, note, is_billed FROM work_entries WHERE date = ?`, date,
	).Scan(&e.Date, &e.Hours, &e.Note, &billed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", date, err)
	}
	e.Billed = billed == 1
	return &e, nil
}

// DeleteEntry removes the entry for a date. Deleting a date with no entry
// is a no-op.
func (s *Store) DeleteEntry(date string) error {
	_, err := s.db.Exec(`DELETE FROM work_entries WHERE date = ?`, date)
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", date, err)
	}
	return nil
}

// Snapshot loads every work entry into the in-memory map the computation
// core operates on. COALESCE guards rows from databases that predate the
// is_billed column, applying the default-true rule at the boundary.
func (s *Store) Snapshot() (timesheet.Entries, error) {
	rows, err := s.db.Query(
		`SELECT date, hours, note, COALESCE(is_billed, 1) FROM work_entries`,
	)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	defer rows.Close()

	entries := make(timesheet.Entries)
	for rows.Next() {
		var raw timesheet.RawEntry
		var billed int
		if err := rows.Scan(&raw.Date, &raw.Hours, &raw.Note, &billed); err != nil {
			return nil, err
		}
		b := billed == 1
		raw.Billed = &b
		entries[raw.Date] = raw.Resolve()
	}
	return entries, rows.Err()
}

// CountEntries reports how many days have a stored entry.
func (s *Store) CountEntries() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM work_entries`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}
