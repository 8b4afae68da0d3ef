package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/lazypower/rolodex/internal/store"
)

// testEngine returns an engine over an in-memory store with a frozen clock.
func testEngine(t *testing.T, now time.Time) *Engine {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	eng := New(db)
	eng.Now = func() time.Time { return now }
	return eng
}

// ts renders a time the way the store does.
func ts(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

func TestSnooze(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	eng := testEngine(t, now)

	contact := &store.Contact{FirstName: "Ann"}
	if err := eng.DB.CreateContact(contact); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	updated, err := eng.Snooze(contact.ID, 7)
	if err != nil {
		t.Fatalf("Snooze: %v", err)
	}
	if updated.SnoozedUntil != "2026-06-22 12:00:00" {
		t.Errorf("snoozed_until = %q, want 2026-06-22 12:00:00", updated.SnoozedUntil)
	}
}

func TestSnoozeOverwritesNotStacks(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	eng := testEngine(t, now)

	contact := &store.Contact{FirstName: "Ann"}
	eng.DB.CreateContact(contact)

	if _, err := eng.Snooze(contact.ID, 7); err != nil {
		t.Fatalf("first Snooze: %v", err)
	}
	updated, err := eng.Snooze(contact.ID, 14)
	if err != nil {
		t.Fatalf("second Snooze: %v", err)
	}
	// 14 days from now, not 7+14.
	if updated.SnoozedUntil != "2026-06-29 12:00:00" {
		t.Errorf("snoozed_until = %q, want 2026-06-29 12:00:00", updated.SnoozedUntil)
	}
}

func TestSnoozeInvalidDays(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	eng := testEngine(t, now)

	contact := &store.Contact{FirstName: "Ann"}
	eng.DB.CreateContact(contact)

	for _, days := range []int{0, -3} {
		if _, err := eng.Snooze(contact.ID, days); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Snooze(%d) = %v, want ErrInvalidInput", days, err)
		}
	}

	// Invalid input is rejected before any state changes.
	found, _ := eng.DB.GetContact(contact.ID)
	if found.SnoozedUntil != "" {
		t.Errorf("snoozed_until = %q, want empty", found.SnoozedUntil)
	}
}

func TestSnoozeMissingOrArchived(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	eng := testEngine(t, now)

	if _, err := eng.Snooze(999, 7); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Snooze missing = %v, want ErrNotFound", err)
	}

	contact := &store.Contact{FirstName: "Ann"}
	eng.DB.CreateContact(contact)
	eng.DB.ArchiveContact(contact.ID)
	if _, err := eng.Snooze(contact.ID, 7); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Snooze archived = %v, want ErrNotFound", err)
	}
}

func TestDismiss(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	eng := testEngine(t, now)

	contact := &store.Contact{FirstName: "Ann"}
	eng.DB.CreateContact(contact)

	if _, err := eng.Snooze(contact.ID, 7); err != nil {
		t.Fatalf("Snooze: %v", err)
	}
	updated, err := eng.Dismiss(contact.ID)
	if err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if updated.SnoozedUntil != "" {
		t.Errorf("snoozed_until = %q, want empty", updated.SnoozedUntil)
	}

	if _, err := eng.Dismiss(999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Dismiss missing = %v, want ErrNotFound", err)
	}
}
