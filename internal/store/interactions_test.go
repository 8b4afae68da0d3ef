package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestCreateInteraction(t *testing.T) {
	db := testDB(t)

	contact := &Contact{FirstName: "Ann"}
	if err := db.CreateContact(contact); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	interaction := &Interaction{
		ContactID: contact.ID,
		Type:      "call",
		Summary:   "caught up",
	}
	if err := db.CreateInteraction(interaction); err != nil {
		t.Fatalf("CreateInteraction: %v", err)
	}

	if interaction.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if interaction.Direction != "outbound" {
		t.Errorf("direction = %q, want outbound default", interaction.Direction)
	}
	if interaction.OccurredAt == "" {
		t.Error("expected occurred_at default")
	}
}

func TestCreateInteractionUnknownContact(t *testing.T) {
	db := testDB(t)

	interaction := &Interaction{ContactID: 999, Type: "call"}
	if err := db.CreateInteraction(interaction); !errors.Is(err, ErrNotFound) {
		t.Errorf("CreateInteraction = %v, want ErrNotFound", err)
	}
}

func TestCreateInteractionValidation(t *testing.T) {
	db := testDB(t)

	contact := &Contact{FirstName: "Ann"}
	db.CreateContact(contact)

	bad := []Interaction{
		{ContactID: contact.ID, Type: "carrier-pigeon"},
		{ContactID: contact.ID, Type: "call", Direction: "sideways"},
		{ContactID: contact.ID, Type: "call", OccurredAt: "next tuesday"},
		{ContactID: contact.ID, Type: "call", OccurredAt: "2026/05/01"},
	}
	for _, i := range bad {
		if err := db.CreateInteraction(&i); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("CreateInteraction(%+v) = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestUpdateInteractionRejectsMalformedOccurredAt(t *testing.T) {
	db := testDB(t)

	contact := &Contact{FirstName: "Ann"}
	db.CreateContact(contact)

	interaction := &Interaction{ContactID: contact.ID, Type: "call"}
	if err := db.CreateInteraction(interaction); err != nil {
		t.Fatalf("CreateInteraction: %v", err)
	}

	interaction.OccurredAt = "next tuesday"
	if err := db.UpdateInteraction(interaction); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("UpdateInteraction = %v, want ErrInvalidInput", err)
	}

	// The stored row is untouched.
	found, _ := db.GetInteraction(interaction.ID)
	if _, err := ParseTime(found.OccurredAt); err != nil {
		t.Errorf("stored occurred_at %q became unparseable", found.OccurredAt)
	}
}

func TestCreateInteractionTouchesContact(t *testing.T) {
	db := testDB(t)

	contact := &Contact{FirstName: "Ann"}
	db.CreateContact(contact)

	// Backdate updated_at so the touch is observable.
	_, err := db.Exec("UPDATE contacts SET updated_at = '2020-01-01 00:00:00' WHERE id = ?", contact.ID)
	if err != nil {
		t.Fatalf("backdate: %v", err)
	}

	if err := db.CreateInteraction(&Interaction{ContactID: contact.ID, Type: "email"}); err != nil {
		t.Fatalf("CreateInteraction: %v", err)
	}

	found, _ := db.GetContact(contact.ID)
	if found.UpdatedAt == "2020-01-01 00:00:00" {
		t.Error("expected updated_at to advance after interaction")
	}
}

func TestListInteractions(t *testing.T) {
	db := testDB(t)

	ann := &Contact{FirstName: "Ann", LastName: "Smith"}
	bob := &Contact{FirstName: "Bob"}
	db.CreateContact(ann)
	db.CreateContact(bob)

	seed := []Interaction{
		{ContactID: ann.ID, Type: "call", OccurredAt: "2026-01-10 09:00:00"},
		{ContactID: ann.ID, Type: "email", OccurredAt: "2026-01-12 09:00:00"},
		{ContactID: bob.ID, Type: "call", OccurredAt: "2026-01-11 09:00:00"},
	}
	for i := range seed {
		if err := db.CreateInteraction(&seed[i]); err != nil {
			t.Fatalf("CreateInteraction: %v", err)
		}
	}

	all, err := db.ListInteractions(ListInteractionsOpts{})
	if err != nil {
		t.Fatalf("ListInteractions: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("interactions = %d, want 3", len(all))
	}
	// Newest first, with contact names joined in.
	if all[0].OccurredAt != "2026-01-12 09:00:00" {
		t.Errorf("first occurred_at = %q, want newest", all[0].OccurredAt)
	}
	if all[0].ContactFirstName != "Ann" || all[0].ContactLastName != "Smith" {
		t.Errorf("joined name = %q %q, want Ann Smith", all[0].ContactFirstName, all[0].ContactLastName)
	}

	annOnly, err := db.ListInteractions(ListInteractionsOpts{ContactID: ann.ID})
	if err != nil {
		t.Fatalf("ListInteractions contact filter: %v", err)
	}
	if len(annOnly) != 2 {
		t.Errorf("ann interactions = %d, want 2", len(annOnly))
	}

	calls, err := db.ListInteractions(ListInteractionsOpts{Type: "call"})
	if err != nil {
		t.Fatalf("ListInteractions type filter: %v", err)
	}
	if len(calls) != 2 {
		t.Errorf("calls = %d, want 2", len(calls))
	}
}

func TestRecentInteractionsLimit(t *testing.T) {
	db := testDB(t)

	contact := &Contact{FirstName: "Ann"}
	db.CreateContact(contact)

	for i := 0; i < 12; i++ {
		interaction := &Interaction{
			ContactID:  contact.ID,
			Type:       "call",
			OccurredAt: fmt.Sprintf("2026-01-%02d 09:00:00", i+1),
		}
		if err := db.CreateInteraction(interaction); err != nil {
			t.Fatalf("CreateInteraction: %v", err)
		}
	}

	recent, err := db.RecentInteractions(contact.ID, 0)
	if err != nil {
		t.Fatalf("RecentInteractions: %v", err)
	}
	if len(recent) != 10 {
		t.Errorf("recent = %d, want default limit 10", len(recent))
	}
	if recent[0].OccurredAt != "2026-01-12 09:00:00" {
		t.Errorf("first = %q, want newest", recent[0].OccurredAt)
	}

	three, err := db.RecentInteractions(contact.ID, 3)
	if err != nil {
		t.Fatalf("RecentInteractions limit: %v", err)
	}
	if len(three) != 3 {
		t.Errorf("recent = %d, want 3", len(three))
	}
}

func TestUpdateInteraction(t *testing.T) {
	db := testDB(t)

	contact := &Contact{FirstName: "Ann"}
	db.CreateContact(contact)

	interaction := &Interaction{ContactID: contact.ID, Type: "call"}
	db.CreateInteraction(interaction)

	interaction.Type = "meeting"
	interaction.Notes = "over lunch"
	if err := db.UpdateInteraction(interaction); err != nil {
		t.Fatalf("UpdateInteraction: %v", err)
	}

	found, err := db.GetInteraction(interaction.ID)
	if err != nil {
		t.Fatalf("GetInteraction: %v", err)
	}
	if found.Type != "meeting" || found.Notes != "over lunch" {
		t.Errorf("got %+v", found)
	}

	missing := &Interaction{ID: 999, ContactID: contact.ID, Type: "call", Direction: "outbound"}
	if err := db.UpdateInteraction(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateInteraction missing = %v, want ErrNotFound", err)
	}
}

func TestDeleteInteraction(t *testing.T) {
	db := testDB(t)

	contact := &Contact{FirstName: "Ann"}
	db.CreateContact(contact)

	interaction := &Interaction{ContactID: contact.ID, Type: "call"}
	db.CreateInteraction(interaction)

	if err := db.DeleteInteraction(interaction.ID); err != nil {
		t.Fatalf("DeleteInteraction: %v", err)
	}

	found, err := db.GetInteraction(interaction.ID)
	if err != nil {
		t.Fatalf("GetInteraction: %v", err)
	}
	if found != nil {
		t.Error("expected nil after delete")
	}

	if err := db.DeleteInteraction(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteInteraction missing = %v, want ErrNotFound", err)
	}
}
