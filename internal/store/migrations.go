package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "contacts: people and their relationship metadata",
		SQL: `
CREATE TABLE contacts (
    id                      INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name              TEXT NOT NULL,
    last_name               TEXT,
    nickname                TEXT,
    email                   TEXT,
    phone                   TEXT,
    company                 TEXT,
    job_title               TEXT,
    location                TEXT,
    category                TEXT NOT NULL DEFAULT 'personal' CHECK (category IN ('personal', 'professional', 'family', 'acquaintance')),
    sphere                  TEXT NOT NULL DEFAULT 'Like Them' CHECK (sphere IN ('Love Them', 'Like Them', 'Know Them')),
    frequency_override_days INTEGER CHECK (frequency_override_days IS NULL OR frequency_override_days > 0),
    notes                   TEXT,
    interests               TEXT,
    family_details          TEXT,
    how_we_met              TEXT,
    what_matters            TEXT,
    avatar_url              TEXT,
    linkedin_url            TEXT,
    twitter_url             TEXT,
    website_url             TEXT,
    birthday                TEXT,
    is_archived             INTEGER NOT NULL DEFAULT 0,
    snoozed_until           TEXT,
    created_at              TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at              TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX idx_contacts_sphere   ON contacts(sphere);
CREATE INDEX idx_contacts_category ON contacts(category);
CREATE INDEX idx_contacts_archived ON contacts(is_archived);
`,
	},
	{
		Version:     2,
		Description: "interactions: touch log, cascade-deleted with the contact",
		SQL: `
CREATE TABLE interactions (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    contact_id  INTEGER NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
    type        TEXT NOT NULL CHECK (type IN ('call', 'email', 'meeting', 'coffee', 'text', 'social', 'other')),
    direction   TEXT NOT NULL DEFAULT 'outbound' CHECK (direction IN ('inbound', 'outbound')),
    summary     TEXT,
    notes       TEXT,
    occurred_at TEXT NOT NULL DEFAULT (datetime('now')),
    created_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX idx_interactions_contact ON interactions(contact_id);
CREATE INDEX idx_interactions_date    ON interactions(occurred_at);
`,
	},
	{
		Version:     3,
		Description: "tags: labels plus contact_tags join table",
		SQL: `
CREATE TABLE tags (
    id    INTEGER PRIMARY KEY AUTOINCREMENT,
    name  TEXT NOT NULL UNIQUE,
    color TEXT
);

CREATE TABLE contact_tags (
    contact_id INTEGER NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
    tag_id     INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (contact_id, tag_id)
);
`,
	},
	{
		Version:     4,
		Description: "sphere_settings: default outreach cadence per sphere",
		SQL: `
CREATE TABLE sphere_settings (
    id                     INTEGER PRIMARY KEY AUTOINCREMENT,
    sphere                 TEXT NOT NULL UNIQUE,
    default_frequency_days INTEGER NOT NULL CHECK (default_frequency_days > 0)
);

INSERT INTO sphere_settings (sphere, default_frequency_days) VALUES ('Love Them', 30);
INSERT INTO sphere_settings (sphere, default_frequency_days) VALUES ('Like Them', 90);
INSERT INTO sphere_settings (sphere, default_frequency_days) VALUES ('Know Them', 180);
`,
	},
	{
		Version:     5,
		Description: "contacts_fts: FTS5 full-text search over contact fields",
		SQL: `
CREATE VIRTUAL TABLE contacts_fts USING fts5(
    first_name, last_name, company, notes, interests, job_title,
    content=contacts,
    content_rowid=id
);

CREATE TRIGGER contacts_fts_ai AFTER INSERT ON contacts BEGIN
    INSERT INTO contacts_fts(rowid, first_name, last_name, company, notes, interests, job_title)
    VALUES (new.id, new.first_name, new.last_name, new.company, new.notes, new.interests, new.job_title);
END;

CREATE TRIGGER contacts_fts_ad AFTER DELETE ON contacts BEGIN
    INSERT INTO contacts_fts(contacts_fts, rowid, first_name, last_name, company, notes, interests, job_title)
    VALUES ('delete', old.id, old.first_name, old.last_name, old.company, old.notes, old.interests, old.job_title);
END;

CREATE TRIGGER contacts_fts_au AFTER UPDATE ON contacts BEGIN
    INSERT INTO contacts_fts(contacts_fts, rowid, first_name, last_name, company, notes, interests, job_title)
    VALUES ('delete', old.id, old.first_name, old.last_name, old.company, old.notes, old.interests, old.job_title);
    INSERT INTO contacts_fts(rowid, first_name, last_name, company, notes, interests, job_title)
    VALUES (new.id, new.first_name, new.last_name, new.company, new.notes, new.interests, new.job_title);
END;
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
