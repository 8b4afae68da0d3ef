package engine

import (
	"fmt"
	"sort"

	"github.com/lazypower/rolodex/internal/store"
)

// DueContact is one entry in the ranked outreach list.
type DueContact struct {
	store.ReminderCandidate
	DaysSinceContact float64 `json:"daysSinceContact"`
	UrgencyScore     float64 `json:"urgencyScore"`
}

// DueContacts returns the contacts due (or soon due) for outreach, most
// overdue first.
//
// For each non-archived contact the baseline "last contact" is its most
// recent interaction's occurred_at, falling back to the contact's
// created_at when no interactions exist. The urgency score is the overdue
// time normalized by the contact's effective cadence:
//
//	urgency = (daysSinceContact - effectiveFrequency) / effectiveFrequency
//
// so 10 days late on a 30-day cadence outranks 10 days late on a 180-day
// one. Contacts snoozed into the future are excluded, as is anything below
// the lead-in cutoff. Ties are broken by ascending contact id.
func (e *Engine) DueContacts() ([]DueContact, error) {
	candidates, err := e.DB.ReminderCandidates()
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	now := e.Now()
	var due []DueContact
	for _, rc := range candidates {
		if rc.SnoozedUntil != "" {
			until, err := store.ParseTime(rc.SnoozedUntil)
			if err == nil && now.Before(until) {
				continue
			}
		}

		baseline := rc.LastInteractionAt
		if baseline == "" {
			baseline = rc.CreatedAt
		}
		last, err := store.ParseTime(baseline)
		if err != nil {
			// Timestamps are validated at write time; a row that slipped
			// in (hand-edited db) drops out rather than failing the list.
			continue
		}

		// Fractional days, the same arithmetic as julianday('now') - julianday(t).
		days := now.Sub(last).Hours() / 24
		freq := float64(rc.EffectiveFrequency)
		score := (days - freq) / freq

		if score < e.Opts.LeadIn {
			continue
		}
		due = append(due, DueContact{
			ReminderCandidate: rc,
			DaysSinceContact:  days,
			UrgencyScore:      score,
		})
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].UrgencyScore != due[j].UrgencyScore {
			return due[i].UrgencyScore > due[j].UrgencyScore
		}
		return due[i].ID < due[j].ID
	})

	return due, nil
}
