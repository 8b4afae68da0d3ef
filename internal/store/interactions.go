package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Interaction is a single logged touch with a contact. occurred_at is the
// user-reported event time; created_at is when the record was written. The
// two are independent; imported and retroactive entries predate their rows.
type Interaction struct {
	ID         int64  `json:"id"`
	ContactID  int64  `json:"contactId"`
	Type       string `json:"type"`
	Direction  string `json:"direction"`
	Summary    string `json:"summary,omitempty"`
	Notes      string `json:"notes,omitempty"`
	OccurredAt string `json:"occurredAt"`
	CreatedAt  string `json:"createdAt"`

	// Populated by ListInteractions (joined from contacts).
	ContactFirstName string `json:"contactFirstName,omitempty"`
	ContactLastName  string `json:"contactLastName,omitempty"`
}

var InteractionTypes = map[string]bool{
	"call":    true,
	"email":   true,
	"meeting": true,
	"coffee":  true,
	"text":    true,
	"social":  true,
	"other":   true,
}

var Directions = map[string]bool{
	"inbound":  true,
	"outbound": true,
}

func validateInteraction(i *Interaction) error {
	if !InteractionTypes[i.Type] {
		return fmt.Errorf("%w: interaction type %q", ErrInvalidInput, i.Type)
	}
	if !Directions[i.Direction] {
		return fmt.Errorf("%w: direction %q", ErrInvalidInput, i.Direction)
	}
	if i.OccurredAt != "" {
		if _, err := ParseTime(i.OccurredAt); err != nil {
			return fmt.Errorf("%w: occurred_at %q, want YYYY-MM-DD[ HH:MM:SS]", ErrInvalidInput, i.OccurredAt)
		}
	}
	return nil
}

// CreateInteraction logs an interaction and bumps the contact's updated_at.
// Returns ErrNotFound if the contact does not exist. Empty direction
// defaults to outbound; empty occurred_at defaults to now.
func (db *DB) CreateInteraction(i *Interaction) error {
	if i.Direction == "" {
		i.Direction = "outbound"
	}
	if err := validateInteraction(i); err != nil {
		return err
	}

	contact, err := db.GetContact(i.ContactID)
	if err != nil {
		return err
	}
	if contact == nil {
		return ErrNotFound
	}

	now := sqliteTime(time.Now())
	if i.OccurredAt == "" {
		i.OccurredAt = now
	}

	result, err := db.Exec(`
		INSERT INTO interactions (contact_id, type, direction, summary, notes, occurred_at, created_at)
		VALUES (?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?)
	`, i.ContactID, i.Type, i.Direction, i.Summary, i.Notes, i.OccurredAt, now)
	if err != nil {
		return fmt.Errorf("create interaction: %w", err)
	}

	id, _ := result.LastInsertId()
	i.ID = id
	i.CreatedAt = now

	return db.TouchContact(i.ContactID)
}

// GetInteraction returns an interaction by id, or nil if not found.
func (db *DB) GetInteraction(id int64) (*Interaction, error) {
	row := db.QueryRow(`
		SELECT id, contact_id, type, direction, summary, notes, occurred_at, created_at
		FROM interactions WHERE id = ?
	`, id)
	i, err := scanInteraction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get interaction: %w", err)
	}
	return i, nil
}

// ListInteractionsOpts filters and pages ListInteractions.
type ListInteractionsOpts struct {
	ContactID int64  // 0 = all contacts
	Type      string // empty = all types
	Limit     int    // default 50, capped at 200
	Offset    int
}

func (o ListInteractionsOpts) limit() int {
	if o.Limit <= 0 {
		return 50
	}
	if o.Limit > 200 {
		return 200
	}
	return o.Limit
}

// ListInteractions returns interactions newest-first with the contact's
// name joined in.
func (db *DB) ListInteractions(opts ListInteractionsOpts) ([]Interaction, error) {
	sqlStr := `
		SELECT i.id, i.contact_id, i.type, i.direction, i.summary, i.notes, i.occurred_at, i.created_at,
		       c.first_name, c.last_name
		FROM interactions i
		JOIN contacts c ON c.id = i.contact_id
	`
	var args []any
	var where []string

	if opts.ContactID != 0 {
		where = append(where, "i.contact_id = ?")
		args = append(args, opts.ContactID)
	}
	if opts.Type != "" {
		where = append(where, "i.type = ?")
		args = append(args, opts.Type)
	}
	for n, w := range where {
		if n == 0 {
			sqlStr += " WHERE " + w
		} else {
			sqlStr += " AND " + w
		}
	}

	sqlStr += " ORDER BY i.occurred_at DESC LIMIT ? OFFSET ?"
	args = append(args, opts.limit(), opts.Offset)

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	var interactions []Interaction
	for rows.Next() {
		var i Interaction
		var summary, notes, lastName sql.NullString
		if err := rows.Scan(&i.ID, &i.ContactID, &i.Type, &i.Direction, &summary, &notes,
			&i.OccurredAt, &i.CreatedAt, &i.ContactFirstName, &lastName); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		i.Summary = summary.String
		i.Notes = notes.String
		i.ContactLastName = lastName.String
		interactions = append(interactions, i)
	}
	return interactions, rows.Err()
}

// RecentInteractions returns the newest interactions for a single contact.
func (db *DB) RecentInteractions(contactID int64, limit int) ([]Interaction, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Query(`
		SELECT id, contact_id, type, direction, summary, notes, occurred_at, created_at
		FROM interactions WHERE contact_id = ?
		ORDER BY occurred_at DESC LIMIT ?
	`, contactID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent interactions: %w", err)
	}
	defer rows.Close()

	var interactions []Interaction
	for rows.Next() {
		i, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		interactions = append(interactions, *i)
	}
	return interactions, rows.Err()
}

// UpdateInteraction updates an interaction's mutable fields.
// Returns ErrNotFound if the id does not exist.
func (db *DB) UpdateInteraction(i *Interaction) error {
	if err := validateInteraction(i); err != nil {
		return err
	}
	result, err := db.Exec(`
		UPDATE interactions SET type = ?, direction = ?, summary = NULLIF(?, ''), notes = NULLIF(?, ''), occurred_at = ?
		WHERE id = ?
	`, i.Type, i.Direction, i.Summary, i.Notes, i.OccurredAt, i.ID)
	if err != nil {
		return fmt.Errorf("update interaction: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteInteraction removes an interaction.
// Returns ErrNotFound if the id does not exist.
func (db *DB) DeleteInteraction(id int64) error {
	result, err := db.Exec("DELETE FROM interactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete interaction: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInteraction(s scanner) (*Interaction, error) {
	var i Interaction
	var summary, notes sql.NullString
	if err := s.Scan(&i.ID, &i.ContactID, &i.Type, &i.Direction, &summary, &notes,
		&i.OccurredAt, &i.CreatedAt); err != nil {
		return nil, err
	}
	i.Summary = summary.String
	i.Notes = notes.String
	return &i, nil
}
