package store

import (
	"fmt"
	"strconv"
)

type Setting struct {
	Key   string
	Value string
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// DailyGoal returns the configured daily goal in hours, falling back to 8
// when the setting is missing or malformed.
func (s *Store) DailyGoal() float64 {
	v, err := s.GetSetting("daily_goal")
	if err != nil {
		return 8
	}
	goal, err := strconv.ParseFloat(v, 64)
	if err != nil || goal <= 0 {
		return 8
	}
	return goal
}

// Currency returns the configured currency symbol, defaulting to "€".
func (s *Store) Currency() string {
	v, err := s.GetSetting("currency")
	if err != nil || v == "" {
		return "€"
	}
	return v
}
