package store

import (
	"fmt"
)

// SearchContacts runs an FTS5 MATCH over the contacts_fts index and
// returns matching non-archived contacts ranked by relevance. The query
// must already be FTS5-sanitized (see engine.Search).
func (db *DB) SearchContacts(ftsQuery string, limit int) ([]Contact, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT `+qualifiedContactColumns+`
		FROM contacts_fts fts
		JOIN contacts c ON c.id = fts.rowid
		WHERE contacts_fts MATCH ? AND c.is_archived = 0
		ORDER BY fts.rank
		LIMIT ?
	`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}
	defer rows.Close()
	return scanContacts(rows)
}

const qualifiedContactColumns = `c.id, c.first_name, c.last_name, c.nickname, c.email, c.phone, c.company, c.job_title, c.location,
	c.category, c.sphere, c.frequency_override_days, c.notes, c.interests, c.family_details, c.how_we_met, c.what_matters,
	c.avatar_url, c.linkedin_url, c.twitter_url, c.website_url, c.birthday, c.is_archived, c.snoozed_until, c.created_at, c.updated_at`
