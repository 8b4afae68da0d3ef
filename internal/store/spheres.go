package store

import (
	"fmt"
)

// SphereSetting holds the default outreach cadence for one sphere.
// Seeded by migration: Love Them=30, Like Them=90, Know Them=180.
type SphereSetting struct {
	ID                   int64  `json:"id"`
	Sphere               string `json:"sphere"`
	DefaultFrequencyDays int    `json:"defaultFrequencyDays"`
}

// ListSphereSettings returns all sphere settings.
func (db *DB) ListSphereSettings() ([]SphereSetting, error) {
	rows, err := db.Query(`SELECT id, sphere, default_frequency_days FROM sphere_settings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sphere settings: %w", err)
	}
	defer rows.Close()

	var settings []SphereSetting
	for rows.Next() {
		var s SphereSetting
		if err := rows.Scan(&s.ID, &s.Sphere, &s.DefaultFrequencyDays); err != nil {
			return nil, fmt.Errorf("scan sphere setting: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// UpdateSphereFrequency changes the default cadence for a sphere.
// The cadence must be positive; returns ErrNotFound for unknown spheres.
func (db *DB) UpdateSphereFrequency(sphere string, days int) error {
	if days <= 0 {
		return fmt.Errorf("%w: default frequency must be positive, got %d", ErrInvalidInput, days)
	}
	result, err := db.Exec(`UPDATE sphere_settings SET default_frequency_days = ? WHERE sphere = ?`,
		days, sphere)
	if err != nil {
		return fmt.Errorf("update sphere frequency: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
