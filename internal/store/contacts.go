package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Contact is a person in the rolodex. Optional text fields are empty
// strings when unset; they are stored as NULL.
type Contact struct {
	ID                    int64  `json:"id"`
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName,omitempty"`
	Nickname              string `json:"nickname,omitempty"`
	Email                 string `json:"email,omitempty"`
	Phone                 string `json:"phone,omitempty"`
	Company               string `json:"company,omitempty"`
	JobTitle              string `json:"jobTitle,omitempty"`
	Location              string `json:"location,omitempty"`
	Category              string `json:"category"`
	Sphere                string `json:"sphere"`
	FrequencyOverrideDays *int   `json:"frequencyOverrideDays,omitempty"`
	Notes                 string `json:"notes,omitempty"`
	Interests             string `json:"interests,omitempty"`
	FamilyDetails         string `json:"familyDetails,omitempty"`
	HowWeMet              string `json:"howWeMet,omitempty"`
	WhatMatters           string `json:"whatMatters,omitempty"`
	AvatarURL             string `json:"avatarUrl,omitempty"`
	LinkedinURL           string `json:"linkedinUrl,omitempty"`
	TwitterURL            string `json:"twitterUrl,omitempty"`
	WebsiteURL            string `json:"websiteUrl,omitempty"`
	Birthday              string `json:"birthday,omitempty"` // YYYY-MM-DD, year ignored
	IsArchived            bool   `json:"isArchived"`
	SnoozedUntil          string `json:"snoozedUntil,omitempty"`
	CreatedAt             string `json:"createdAt"`
	UpdatedAt             string `json:"updatedAt"`
}

// Spheres are relationship-closeness tiers; each carries a default
// outreach cadence in sphere_settings.
var Spheres = map[string]bool{
	"Love Them": true,
	"Like Them": true,
	"Know Them": true,
}

var Categories = map[string]bool{
	"personal":     true,
	"professional": true,
	"family":       true,
	"acquaintance": true,
}

var birthdayRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateContact checks the fields that must be rejected at write time:
// missing first name, unknown category or sphere, non-positive cadence
// override, malformed birthday or snooze timestamp. All failures wrap
// ErrInvalidInput.
func ValidateContact(c *Contact) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return fmt.Errorf("%w: first name required", ErrInvalidInput)
	}
	if c.Category != "" && !Categories[c.Category] {
		return fmt.Errorf("%w: category %q", ErrInvalidInput, c.Category)
	}
	if c.Sphere != "" && !Spheres[c.Sphere] {
		return fmt.Errorf("%w: sphere %q", ErrInvalidInput, c.Sphere)
	}
	if c.FrequencyOverrideDays != nil && *c.FrequencyOverrideDays <= 0 {
		return fmt.Errorf("%w: frequency override must be positive, got %d", ErrInvalidInput, *c.FrequencyOverrideDays)
	}
	if c.Birthday != "" && !birthdayRe.MatchString(c.Birthday) {
		return fmt.Errorf("%w: birthday %q, want YYYY-MM-DD", ErrInvalidInput, c.Birthday)
	}
	if c.SnoozedUntil != "" {
		if _, err := ParseTime(c.SnoozedUntil); err != nil {
			return fmt.Errorf("%w: snoozed_until %q, want YYYY-MM-DD[ HH:MM:SS]", ErrInvalidInput, c.SnoozedUntil)
		}
	}
	return nil
}

const contactColumns = `id, first_name, last_name, nickname, email, phone, company, job_title, location,
	category, sphere, frequency_override_days, notes, interests, family_details, how_we_met, what_matters,
	avatar_url, linkedin_url, twitter_url, website_url, birthday, is_archived, snoozed_until, created_at, updated_at`

// CreateContact inserts a new contact. Empty category/sphere fall back to
// the schema defaults. Sets ID, CreatedAt, UpdatedAt on success.
func (db *DB) CreateContact(c *Contact) error {
	if c.Category == "" {
		c.Category = "personal"
	}
	if c.Sphere == "" {
		c.Sphere = "Like Them"
	}
	if err := ValidateContact(c); err != nil {
		return err
	}

	now := sqliteTime(time.Now())
	result, err := db.Exec(`
		INSERT INTO contacts (first_name, last_name, nickname, email, phone, company, job_title, location,
			category, sphere, frequency_override_days, notes, interests, family_details, how_we_met, what_matters,
			avatar_url, linkedin_url, twitter_url, website_url, birthday, snoozed_until, created_at, updated_at)
		VALUES (?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''),
			?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''),
			NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), ?, ?)
	`, c.FirstName, c.LastName, c.Nickname, c.Email, c.Phone, c.Company, c.JobTitle, c.Location,
		c.Category, c.Sphere, c.FrequencyOverrideDays, c.Notes, c.Interests, c.FamilyDetails, c.HowWeMet, c.WhatMatters,
		c.AvatarURL, c.LinkedinURL, c.TwitterURL, c.WebsiteURL, c.Birthday, c.SnoozedUntil, now, now)
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}

	id, _ := result.LastInsertId()
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

// GetContact returns a contact by id, or nil if not found.
func (db *DB) GetContact(id int64) (*Contact, error) {
	row := db.QueryRow(`SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id)
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// ListContactsOpts filters and pages ListContacts.
type ListContactsOpts struct {
	Search   string // LIKE match over first/last name, company, email
	Sphere   string
	Category string
	Archived bool
	Sort     string // firstName (default), lastName, company, sphere, createdAt, updatedAt
	Limit    int    // default 50, capped at 200
	Offset   int
}

func (o ListContactsOpts) limit() int {
	if o.Limit <= 0 {
		return 50
	}
	if o.Limit > 200 {
		return 200
	}
	return o.Limit
}

func (o ListContactsOpts) sortColumn() string {
	switch o.Sort {
	case "lastName":
		return "last_name"
	case "company":
		return "company"
	case "sphere":
		return "sphere"
	case "createdAt":
		return "created_at"
	case "updatedAt":
		return "updated_at"
	default:
		return "first_name"
	}
}

// ListContacts returns contacts matching the given filters.
func (db *DB) ListContacts(opts ListContactsOpts) ([]Contact, error) {
	sqlStr := `SELECT ` + contactColumns + ` FROM contacts WHERE is_archived = ?`
	archived := 0
	if opts.Archived {
		archived = 1
	}
	args := []any{archived}

	if opts.Sphere != "" {
		sqlStr += " AND sphere = ?"
		args = append(args, opts.Sphere)
	}
	if opts.Category != "" {
		sqlStr += " AND category = ?"
		args = append(args, opts.Category)
	}
	if opts.Search != "" {
		term := "%" + opts.Search + "%"
		sqlStr += " AND (first_name LIKE ? OR last_name LIKE ? OR company LIKE ? OR email LIKE ?)"
		args = append(args, term, term, term, term)
	}

	sqlStr += " ORDER BY " + opts.sortColumn() + " ASC LIMIT ? OFFSET ?"
	args = append(args, opts.limit(), opts.Offset)

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	return scanContacts(rows)
}

// UpdateContact writes the full contact row back and bumps updated_at.
// Returns ErrNotFound if the id does not exist.
func (db *DB) UpdateContact(c *Contact) error {
	if err := ValidateContact(c); err != nil {
		return err
	}

	now := sqliteTime(time.Now())
	result, err := db.Exec(`
		UPDATE contacts SET
			first_name = ?, last_name = NULLIF(?, ''), nickname = NULLIF(?, ''), email = NULLIF(?, ''),
			phone = NULLIF(?, ''), company = NULLIF(?, ''), job_title = NULLIF(?, ''), location = NULLIF(?, ''),
			category = ?, sphere = ?, frequency_override_days = ?, notes = NULLIF(?, ''), interests = NULLIF(?, ''),
			family_details = NULLIF(?, ''), how_we_met = NULLIF(?, ''), what_matters = NULLIF(?, ''),
			avatar_url = NULLIF(?, ''), linkedin_url = NULLIF(?, ''), twitter_url = NULLIF(?, ''),
			website_url = NULLIF(?, ''), birthday = NULLIF(?, ''), snoozed_until = NULLIF(?, ''), updated_at = ?
		WHERE id = ?
	`, c.FirstName, c.LastName, c.Nickname, c.Email,
		c.Phone, c.Company, c.JobTitle, c.Location,
		c.Category, c.Sphere, c.FrequencyOverrideDays, c.Notes, c.Interests,
		c.FamilyDetails, c.HowWeMet, c.WhatMatters,
		c.AvatarURL, c.LinkedinURL, c.TwitterURL,
		c.WebsiteURL, c.Birthday, c.SnoozedUntil, now, c.ID)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	c.UpdatedAt = now
	return nil
}

// ArchiveContact soft-deletes a contact. Archived contacts disappear from
// reminder and search views but keep their interaction history.
func (db *DB) ArchiveContact(id int64) error {
	result, err := db.Exec(`
		UPDATE contacts SET is_archived = 1, updated_at = ? WHERE id = ?
	`, sqliteTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("archive contact: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteContact hard-deletes a contact. Interactions and contact_tags rows
// go with it via ON DELETE CASCADE.
func (db *DB) DeleteContact(id int64) error {
	result, err := db.Exec("DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSnooze sets snoozed_until on an active contact. A repeated call
// overwrites the previous snooze.
func (db *DB) SetSnooze(id int64, until time.Time) error {
	result, err := db.Exec(`
		UPDATE contacts SET snoozed_until = ?, updated_at = ? WHERE id = ? AND is_archived = 0
	`, sqliteTime(until), sqliteTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("set snooze: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearSnooze unsets snoozed_until on an active contact.
func (db *DB) ClearSnooze(id int64) error {
	result, err := db.Exec(`
		UPDATE contacts SET snoozed_until = NULL, updated_at = ? WHERE id = ? AND is_archived = 0
	`, sqliteTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("clear snooze: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchContact bumps a contact's updated_at (called when interactions are logged).
func (db *DB) TouchContact(id int64) error {
	_, err := db.Exec(`UPDATE contacts SET updated_at = ? WHERE id = ?`,
		sqliteTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("touch contact: %w", err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for the contact scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanContact(s scanner) (*Contact, error) {
	var c Contact
	var lastName, nickname, email, phone, company, jobTitle, location sql.NullString
	var notes, interests, familyDetails, howWeMet, whatMatters sql.NullString
	var avatarURL, linkedinURL, twitterURL, websiteURL, birthday, snoozedUntil sql.NullString
	var override sql.NullInt64
	var archived int

	err := s.Scan(&c.ID, &c.FirstName, &lastName, &nickname, &email, &phone, &company, &jobTitle, &location,
		&c.Category, &c.Sphere, &override, &notes, &interests, &familyDetails, &howWeMet, &whatMatters,
		&avatarURL, &linkedinURL, &twitterURL, &websiteURL, &birthday, &archived, &snoozedUntil,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.LastName = lastName.String
	c.Nickname = nickname.String
	c.Email = email.String
	c.Phone = phone.String
	c.Company = company.String
	c.JobTitle = jobTitle.String
	c.Location = location.String
	c.Notes = notes.String
	c.Interests = interests.String
	c.FamilyDetails = familyDetails.String
	c.HowWeMet = howWeMet.String
	c.WhatMatters = whatMatters.String
	c.AvatarURL = avatarURL.String
	c.LinkedinURL = linkedinURL.String
	c.TwitterURL = twitterURL.String
	c.WebsiteURL = websiteURL.String
	c.Birthday = birthday.String
	c.SnoozedUntil = snoozedUntil.String
	c.IsArchived = archived != 0
	if override.Valid {
		v := int(override.Int64)
		c.FrequencyOverrideDays = &v
	}
	return &c, nil
}

func scanContacts(rows *sql.Rows) ([]Contact, error) {
	var contacts []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}
