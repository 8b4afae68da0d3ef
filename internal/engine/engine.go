// Package engine computes the derived reminder views: who is due for
// outreach, whose birthday is coming up, and token search over contacts.
// Everything here is a pure function of datastore state and the injected
// clock; Snooze and Dismiss are the only mutations.
package engine

import (
	"fmt"
	"time"

	"github.com/lazypower/rolodex/internal/store"
)

// ErrInvalidInput is returned for inputs rejected before any state changes,
// such as a non-positive snooze duration. It is the store's sentinel so
// validation failures from either layer match the same errors.Is check.
var ErrInvalidInput = store.ErrInvalidInput

// Default reminder tuning. These are deliberate constants inherited from
// the product, surfaced as configuration rather than buried literals.
const (
	// DefaultLeadIn is the urgency cutoff. A contact scores 0 exactly on
	// its due date; -0.1 also surfaces contacts that come due within a
	// tenth of their cadence.
	DefaultLeadIn = -0.1
	// DefaultBirthdayWindowDays bounds UpcomingBirthdays.
	DefaultBirthdayWindowDays = 14
	// DefaultSearchLimit caps Search results.
	DefaultSearchLimit = 20
)

// Opts carries the tunable reminder constants.
type Opts struct {
	LeadIn             float64
	BirthdayWindowDays int
	SearchLimit        int
}

// DefaultOpts returns the standard tuning.
func DefaultOpts() Opts {
	return Opts{
		LeadIn:             DefaultLeadIn,
		BirthdayWindowDays: DefaultBirthdayWindowDays,
		SearchLimit:        DefaultSearchLimit,
	}
}

func (o Opts) birthdayWindow() int {
	if o.BirthdayWindowDays <= 0 {
		return DefaultBirthdayWindowDays
	}
	return o.BirthdayWindowDays
}

func (o Opts) searchLimit() int {
	if o.SearchLimit <= 0 {
		return DefaultSearchLimit
	}
	return o.SearchLimit
}

// Engine answers reminder queries against a store. Now is the injected
// time source so results are deterministic under test.
type Engine struct {
	DB   *store.DB
	Now  func() time.Time
	Opts Opts
}

// New creates an Engine on the wall clock with default tuning.
func New(db *store.DB) *Engine {
	return &Engine{DB: db, Now: time.Now, Opts: DefaultOpts()}
}

// Snooze suppresses a contact from the due list for the given number of
// calendar days. A repeated snooze overwrites the previous one; it does
// not stack. Returns the updated contact, ErrInvalidInput for days <= 0,
// or store.ErrNotFound if the contact is missing or archived.
func (e *Engine) Snooze(contactID int64, days int) (*store.Contact, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: snooze days must be positive, got %d", ErrInvalidInput, days)
	}

	until := e.Now().AddDate(0, 0, days)
	if err := e.DB.SetSnooze(contactID, until); err != nil {
		return nil, err
	}
	return e.DB.GetContact(contactID)
}

// Dismiss clears a contact's snooze, making it immediately eligible for
// the due list again. Returns the updated contact or store.ErrNotFound.
func (e *Engine) Dismiss(contactID int64) (*store.Contact, error) {
	if err := e.DB.ClearSnooze(contactID); err != nil {
		return nil, err
	}
	return e.DB.GetContact(contactID)
}
