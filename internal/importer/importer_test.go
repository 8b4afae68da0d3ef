package importer

import (
	"strings"
	"testing"

	"github.com/lazypower/rolodex/internal/store"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func importCSV(t *testing.T, db *store.DB, csv string) *Result {
	t.Helper()
	res, err := Import(db, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	return res
}

func contactByName(t *testing.T, db *store.DB, first string) *store.Contact {
	t.Helper()
	contacts, err := db.ListContacts(store.ListContactsOpts{Search: first})
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("contacts named %q = %d, want 1", first, len(contacts))
	}
	return &contacts[0]
}

const header = "ID,First Name,Last Name,One Liner,Phone Numbers,Location,Email Addresses,Companies,Links,Spheres,Birthday,snooze_until,last_touch_date\n"

func TestImportBasicRow(t *testing.T) {
	db := testDB(t)

	res := importCSV(t, db, header+
		"1,Ann,Smith,Engineering lead,\"+1 (555) 123-4567, +1 555 999 0000\",Portland,\"ann@example.com, ann@work.com\",\"Acme, OldCo\",,Love Them,1990-04-12,,2026-05-01\n")

	if res.TotalRows != 1 || res.Contacts != 1 || res.Interactions != 1 || res.Skipped != 0 {
		t.Fatalf("result = %+v", res)
	}

	contact := contactByName(t, db, "Ann")
	if contact.JobTitle != "Engineering lead" {
		t.Errorf("jobTitle = %q", contact.JobTitle)
	}
	// Multi-valued cells keep only the first entry.
	if contact.Email != "ann@example.com" {
		t.Errorf("email = %q, want first address", contact.Email)
	}
	if contact.Company != "Acme" {
		t.Errorf("company = %q, want first company", contact.Company)
	}
	// Phone keeps digits and '+' only.
	if contact.Phone != "+15551234567" {
		t.Errorf("phone = %q", contact.Phone)
	}
	if contact.Sphere != "Love Them" {
		t.Errorf("sphere = %q", contact.Sphere)
	}
	if contact.Category != "professional" {
		t.Errorf("category = %q, want professional", contact.Category)
	}
	if contact.Birthday != "1990-04-12" {
		t.Errorf("birthday = %q", contact.Birthday)
	}
}

func TestImportLastTouchInteraction(t *testing.T) {
	db := testDB(t)

	importCSV(t, db, header+
		"1,Ann,,,,,,,,,,,2026-05-01\n"+
		"2,Bob,,,,,,,,,,,not a date\n")

	ann := contactByName(t, db, "Ann")
	interactions, err := db.RecentInteractions(ann.ID, 0)
	if err != nil {
		t.Fatalf("RecentInteractions: %v", err)
	}
	if len(interactions) != 1 {
		t.Fatalf("interactions = %d, want 1", len(interactions))
	}
	got := interactions[0]
	if got.Type != "other" || got.Direction != "outbound" {
		t.Errorf("interaction = %+v", got)
	}
	if got.Summary != "Imported from Relatable" {
		t.Errorf("summary = %q", got.Summary)
	}
	if got.OccurredAt != "2026-05-01" {
		t.Errorf("occurredAt = %q", got.OccurredAt)
	}

	// An unparseable last_touch_date produces no interaction.
	bob := contactByName(t, db, "Bob")
	interactions, _ = db.RecentInteractions(bob.ID, 0)
	if len(interactions) != 0 {
		t.Errorf("bob interactions = %d, want 0", len(interactions))
	}
}

func TestImportSkipsTemplateAndNamelessRows(t *testing.T) {
	db := testDB(t)

	res := importCSV(t, db, header+
		"{{ $json.id }},Template,,,,,,,,,,,\n"+
		"$json.row,AlsoTemplate,,,,,,,,,,,\n"+
		"3,,Nameless,,,,,,,,,,\n"+
		"4,Real,,,,,,,,,,,\n")

	if res.TotalRows != 4 || res.Contacts != 1 || res.Skipped != 3 {
		t.Fatalf("result = %+v", res)
	}
	contacts, _ := db.ListContacts(store.ListContactsOpts{})
	if len(contacts) != 1 || contacts[0].FirstName != "Real" {
		t.Errorf("contacts = %+v, want just Real", contacts)
	}
}

func TestImportInvalidSphereFallback(t *testing.T) {
	db := testDB(t)

	importCSV(t, db, header+
		"1,Ann,,,,,,,,Inner Circle,,,\n"+
		"2,Bob,,,,,,,,\"Know Them, Love Them\",,,\n")

	if got := contactByName(t, db, "Ann").Sphere; got != "Like Them" {
		t.Errorf("invalid sphere = %q, want Like Them fallback", got)
	}
	// Only the first listed sphere counts.
	if got := contactByName(t, db, "Bob").Sphere; got != "Know Them" {
		t.Errorf("sphere = %q, want Know Them", got)
	}
}

func TestImportInvalidBirthdayDropped(t *testing.T) {
	db := testDB(t)

	importCSV(t, db, header+"1,Ann,,,,,,,,,April 12th,,\n")

	if got := contactByName(t, db, "Ann").Birthday; got != "" {
		t.Errorf("birthday = %q, want dropped", got)
	}
}

func TestParseLinks(t *testing.T) {
	cases := []struct {
		raw  string
		want links
	}{
		{
			"https://linkedin.com/in/ann, https://twitter.com/ann, https://ann.dev",
			links{Linkedin: "https://linkedin.com/in/ann", Twitter: "https://twitter.com/ann", Website: "https://ann.dev"},
		},
		{
			// First match wins per slot.
			"https://linkedin.com/in/a, https://linkedin.com/in/b",
			links{Linkedin: "https://linkedin.com/in/a"},
		},
		{
			"https://x.com/ann",
			links{Twitter: "https://x.com/ann"},
		},
		{
			// Instagram is dropped, not treated as a website.
			"https://instagram.com/ann",
			links{},
		},
		{
			"https://example.com/ann",
			links{Website: "https://example.com/ann"},
		},
		{"", links{}},
	}
	for _, c := range cases {
		if got := parseLinks(c.raw); got != c.want {
			t.Errorf("parseLinks(%q) = %+v, want %+v", c.raw, got, c.want)
		}
	}
}

func TestCleanPhone(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"+1 (555) 123-4567", "+15551234567"},
		{"555.123.4567, 555.999.0000", "5551234567"},
		{"", ""},
	}
	for _, c := range cases {
		if got := cleanPhone(c.raw); got != c.want {
			t.Errorf("cleanPhone(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestImportSnoozeUntil(t *testing.T) {
	db := testDB(t)

	res := importCSV(t, db, header+
		"1,Ann,,,,,,,,,,2026-09-01,\n"+
		"2,Bob,,,,,,,,,,whenever,\n")
	if res.Contacts != 2 {
		t.Fatalf("result = %+v", res)
	}

	if got := contactByName(t, db, "Ann").SnoozedUntil; got != "2026-09-01" {
		t.Errorf("snoozedUntil = %q, want 2026-09-01", got)
	}
	// Garbage snooze values import as not snoozed rather than failing the row.
	if got := contactByName(t, db, "Bob").SnoozedUntil; got != "" {
		t.Errorf("snoozedUntil = %q, want dropped", got)
	}
}

func TestImportRaggedRows(t *testing.T) {
	db := testDB(t)

	// Export rows are frequently shorter than the header.
	res := importCSV(t, db, header+"1,Ann\n")
	if res.Contacts != 1 {
		t.Fatalf("result = %+v", res)
	}
}
