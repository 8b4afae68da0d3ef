package store

import (
	"database/sql"
	"fmt"
)

// ReminderCandidate is one non-archived contact with its effective cadence
// resolved and its most recent interaction materialized. Snooze filtering
// and scoring happen in the engine, against the engine's clock.
type ReminderCandidate struct {
	ID                    int64  `json:"id"`
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName,omitempty"`
	Nickname              string `json:"nickname,omitempty"`
	Email                 string `json:"email,omitempty"`
	Phone                 string `json:"phone,omitempty"`
	Company               string `json:"company,omitempty"`
	JobTitle              string `json:"jobTitle,omitempty"`
	Sphere                string `json:"sphere"`
	Category              string `json:"category"`
	AvatarURL             string `json:"avatarUrl,omitempty"`
	FrequencyOverrideDays *int   `json:"frequencyOverrideDays,omitempty"`
	SnoozedUntil          string `json:"snoozedUntil,omitempty"`
	EffectiveFrequency    int    `json:"effectiveFrequency"`
	LastInteractionAt     string `json:"lastInteractionAt,omitempty"` // empty when no interactions exist
	CreatedAt             string `json:"createdAt"`
}

// ReminderCandidates returns every non-archived contact joined to its
// sphere default, with the effective cadence COALESCEd and the most recent
// interaction's occurred_at aggregated per contact.
func (db *DB) ReminderCandidates() ([]ReminderCandidate, error) {
	rows, err := db.Query(`
		SELECT
			c.id, c.first_name, c.last_name, c.nickname, c.email, c.phone, c.company, c.job_title,
			c.sphere, c.category, c.avatar_url, c.frequency_override_days, c.snoozed_until,
			COALESCE(c.frequency_override_days, ss.default_frequency_days),
			MAX(i.occurred_at),
			c.created_at
		FROM contacts c
		JOIN sphere_settings ss ON ss.sphere = c.sphere
		LEFT JOIN interactions i ON i.contact_id = c.id
		WHERE c.is_archived = 0
		GROUP BY c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("reminder candidates: %w", err)
	}
	defer rows.Close()

	var candidates []ReminderCandidate
	for rows.Next() {
		var rc ReminderCandidate
		var lastName, nickname, email, phone, company, jobTitle sql.NullString
		var avatarURL, snoozedUntil, lastInteraction sql.NullString
		var override sql.NullInt64
		if err := rows.Scan(&rc.ID, &rc.FirstName, &lastName, &nickname, &email, &phone, &company, &jobTitle,
			&rc.Sphere, &rc.Category, &avatarURL, &override, &snoozedUntil,
			&rc.EffectiveFrequency, &lastInteraction, &rc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reminder candidate: %w", err)
		}
		rc.LastName = lastName.String
		rc.Nickname = nickname.String
		rc.Email = email.String
		rc.Phone = phone.String
		rc.Company = company.String
		rc.JobTitle = jobTitle.String
		rc.AvatarURL = avatarURL.String
		rc.SnoozedUntil = snoozedUntil.String
		rc.LastInteractionAt = lastInteraction.String
		if override.Valid {
			v := int(override.Int64)
			rc.FrequencyOverrideDays = &v
		}
		candidates = append(candidates, rc)
	}
	return candidates, rows.Err()
}

// BirthdayCandidate is a non-archived contact with a birthday on record.
type BirthdayCandidate struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Company   string `json:"company,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Birthday  string `json:"birthday"`
}

// BirthdayCandidates returns all non-archived contacts that have a birthday.
func (db *DB) BirthdayCandidates() ([]BirthdayCandidate, error) {
	rows, err := db.Query(`
		SELECT id, first_name, last_name, company, avatar_url, birthday
		FROM contacts
		WHERE birthday IS NOT NULL AND is_archived = 0
	`)
	if err != nil {
		return nil, fmt.Errorf("birthday candidates: %w", err)
	}
	defer rows.Close()

	var candidates []BirthdayCandidate
	for rows.Next() {
		var bc BirthdayCandidate
		var lastName, company, avatarURL sql.NullString
		if err := rows.Scan(&bc.ID, &bc.FirstName, &lastName, &company, &avatarURL, &bc.Birthday); err != nil {
			return nil, fmt.Errorf("scan birthday candidate: %w", err)
		}
		bc.LastName = lastName.String
		bc.Company = company.String
		bc.AvatarURL = avatarURL.String
		candidates = append(candidates, bc)
	}
	return candidates, rows.Err()
}
