// Package importer loads contacts from a Relatable CSV export. It is a
// one-shot populate path: field heuristics here mirror the export format
// and are not used anywhere else.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/lazypower/rolodex/internal/store"
)

// Result summarizes a completed import.
type Result struct {
	TotalRows    int
	Contacts     int
	Interactions int
	Skipped      int
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ImportFile reads the CSV at path and inserts contacts and their
// last-touch interactions.
func ImportFile(db *store.DB, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return Import(db, f)
}

// Import reads Relatable CSV rows from r and inserts them. Template rows
// and rows without a first name are skipped entirely.
func Import(db *store.DB, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports have ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	res := &Result{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", res.TotalRows+1, err)
		}
		res.TotalRows++

		if isTemplateRow(field(row, "ID")) {
			res.Skipped++
			continue
		}
		firstName := field(row, "First Name")
		if firstName == "" {
			res.Skipped++
			continue
		}

		links := parseLinks(field(row, "Links"))
		contact := &store.Contact{
			FirstName:    firstName,
			LastName:     field(row, "Last Name"),
			JobTitle:     field(row, "One Liner"),
			Phone:        cleanPhone(field(row, "Phone Numbers")),
			Location:     field(row, "Location"),
			Email:        firstValue(field(row, "Email Addresses")),
			Company:      firstValue(field(row, "Companies")),
			LinkedinURL:  links.Linkedin,
			TwitterURL:   links.Twitter,
			WebsiteURL:   links.Website,
			Sphere:       parseSphere(field(row, "Spheres")),
			Category:     "professional",
			SnoozedUntil: parseSnooze(field(row, "snooze_until")),
			Birthday:     parseBirthday(field(row, "Birthday")),
		}
		if err := db.CreateContact(contact); err != nil {
			return nil, fmt.Errorf("import %s %s: %w", contact.FirstName, contact.LastName, err)
		}
		res.Contacts++

		// A last_touch_date becomes one imported interaction so the
		// reminder baseline reflects reality instead of created_at.
		lastTouch := field(row, "last_touch_date")
		if dateRe.MatchString(lastTouch) {
			interaction := &store.Interaction{
				ContactID:  contact.ID,
				Type:       "other",
				Direction:  "outbound",
				Summary:    "Imported from Relatable",
				OccurredAt: lastTouch,
			}
			if err := db.CreateInteraction(interaction); err != nil {
				return nil, fmt.Errorf("import last touch for %s: %w", contact.FirstName, err)
			}
			res.Interactions++
		}
	}

	return res, nil
}

// isTemplateRow detects unexpanded template placeholders left behind by
// the export pipeline.
func isTemplateRow(id string) bool {
	return strings.Contains(id, "{{") || strings.Contains(id, "$json")
}

// firstValue takes the first entry of a comma-separated cell.
func firstValue(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(strings.Split(raw, ",")[0])
}

// cleanPhone takes the first phone number and strips everything that is
// not a digit or '+'.
func cleanPhone(raw string) string {
	first := firstValue(raw)
	if first == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range first {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type links struct {
	Linkedin string
	Twitter  string
	Website  string
}

// parseLinks classifies the URLs in a Links cell. First match wins per
// slot: linkedin.com, then twitter.com/x.com, then any non-social URL as
// the website (instagram is dropped).
func parseLinks(raw string) links {
	var out links
	for _, url := range strings.Split(raw, ",") {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		lower := strings.ToLower(url)
		switch {
		case out.Linkedin == "" && strings.Contains(lower, "linkedin.com"):
			out.Linkedin = url
		case out.Twitter == "" && (strings.Contains(lower, "twitter.com") || strings.Contains(lower, "x.com")):
			out.Twitter = url
		case out.Website == "" &&
			!strings.Contains(lower, "linkedin.com") &&
			!strings.Contains(lower, "twitter.com") &&
			!strings.Contains(lower, "x.com") &&
			!strings.Contains(lower, "instagram.com"):
			out.Website = url
		}
	}
	return out
}

// parseSphere takes the first comma-separated sphere if valid, else the
// "Like Them" fallback.
func parseSphere(raw string) string {
	first := firstValue(raw)
	if store.Spheres[first] {
		return first
	}
	return "Like Them"
}

// parseBirthday keeps the value only if it is already YYYY-MM-DD.
func parseBirthday(raw string) string {
	if dateRe.MatchString(raw) {
		return raw
	}
	return ""
}

// parseSnooze keeps a snooze_until value only if the store can read it
// back; anything else imports as not snoozed.
func parseSnooze(raw string) string {
	if raw == "" {
		return ""
	}
	if _, err := store.ParseTime(raw); err != nil {
		return ""
	}
	return raw
}
