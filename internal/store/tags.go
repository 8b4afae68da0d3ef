package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// Tag is a free-form label, attached to contacts many-to-many.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// CreateTag inserts a new tag. Names are unique.
func (db *DB) CreateTag(tag *Tag) error {
	if strings.TrimSpace(tag.Name) == "" {
		return fmt.Errorf("tag name required")
	}
	result, err := db.Exec(`INSERT INTO tags (name, color) VALUES (?, NULLIF(?, ''))`,
		tag.Name, tag.Color)
	if err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	id, _ := result.LastInsertId()
	tag.ID = id
	return nil
}

// ListTags returns all tags ordered by name.
func (db *DB) ListTags() ([]Tag, error) {
	rows, err := db.Query(`SELECT id, name, color FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()
	return scanTags(rows)
}

// ContactTags returns the tags attached to a contact.
func (db *DB) ContactTags(contactID int64) ([]Tag, error) {
	rows, err := db.Query(`
		SELECT t.id, t.name, t.color
		FROM contact_tags ct
		JOIN tags t ON t.id = ct.tag_id
		WHERE ct.contact_id = ?
		ORDER BY t.name
	`, contactID)
	if err != nil {
		return nil, fmt.Errorf("contact tags: %w", err)
	}
	defer rows.Close()
	return scanTags(rows)
}

// AddContactTag attaches a tag to a contact. Adding the same tag twice is
// a no-op. Returns ErrNotFound if either side does not exist.
func (db *DB) AddContactTag(contactID, tagID int64) error {
	_, err := db.Exec(`INSERT OR IGNORE INTO contact_tags (contact_id, tag_id) VALUES (?, ?)`,
		contactID, tagID)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return ErrNotFound
		}
		return fmt.Errorf("add contact tag: %w", err)
	}
	return nil
}

// RemoveContactTag detaches a tag from a contact.
func (db *DB) RemoveContactTag(contactID, tagID int64) error {
	_, err := db.Exec(`DELETE FROM contact_tags WHERE contact_id = ? AND tag_id = ?`,
		contactID, tagID)
	if err != nil {
		return fmt.Errorf("remove contact tag: %w", err)
	}
	return nil
}

func scanTags(rows *sql.Rows) ([]Tag, error) {
	var tags []Tag
	for rows.Next() {
		var t Tag
		var color sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &color); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		t.Color = color.String
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
