package store

import (
	"fmt"
	"strconv"

	"github.com/sadopc/swimlog/internal/practice"
)

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

// DefaultStroke returns the stroke preselected in new practice forms.
func (s *Store) DefaultStroke() practice.Stroke {
	v, err := s.GetSetting(SettingDefaultStroke)
	if err != nil {
		return practice.Freestyle
	}
	stroke, err := practice.ParseStroke(v)
	if err != nil {
		return practice.Freestyle
	}
	return stroke
}

// DistanceUnit returns the unit label shown next to distances.
func (s *Store) DistanceUnit() string {
	v, err := s.GetSetting(SettingDistanceUnit)
	if err != nil || v == "" {
		return "m"
	}
	return v
}

// PageSize returns the number of practices per history page.
func (s *Store) PageSize() int {
	v, err := s.GetSetting(SettingPageSize)
	if err != nil {
		return 10
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 10
	}
	return n
}
