package engine

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/lazypower/rolodex/internal/store"
)

// UpcomingBirthday is one entry in the birthday list.
type UpcomingBirthday struct {
	store.BirthdayCandidate
	DaysUntil int `json:"daysUntil"`
}

// UpcomingBirthdays returns contacts whose birthday falls within the next
// windowDays, soonest first (today counts as 0). windowDays <= 0 uses the
// configured window. Contacts without a birthday never appear.
func (e *Engine) UpcomingBirthdays(windowDays int) ([]UpcomingBirthday, error) {
	if windowDays <= 0 {
		windowDays = e.Opts.birthdayWindow()
	}

	candidates, err := e.DB.BirthdayCandidates()
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	now := e.Now()
	// Calendar arithmetic in UTC: a DST-shortened day in the clock's
	// location would otherwise truncate daysUntil one short.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var upcoming []UpcomingBirthday
	for _, bc := range candidates {
		month, day, err := parseBirthday(bc.Birthday)
		if err != nil {
			// Malformed rows are rejected at write time; anything that
			// slipped in (hand-edited db) is skipped, not fatal.
			continue
		}

		next := NextBirthday(today, month, day)
		daysUntil := int(next.Sub(today).Hours() / 24)
		if daysUntil > windowDays {
			continue
		}
		upcoming = append(upcoming, UpcomingBirthday{
			BirthdayCandidate: bc,
			DaysUntil:         daysUntil,
		})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].DaysUntil != upcoming[j].DaysUntil {
			return upcoming[i].DaysUntil < upcoming[j].DaysUntil
		}
		return upcoming[i].ID < upcoming[j].ID
	})

	return upcoming, nil
}

// NextBirthday returns the next occurrence of (month, day) on or after
// today. A Feb 29 birthday lands on Mar 1 in non-leap years: time.Date
// normalizes the out-of-range day, which matches the product's fallback.
func NextBirthday(today time.Time, month time.Month, day int) time.Time {
	next := time.Date(today.Year(), month, day, 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = time.Date(today.Year()+1, month, day, 0, 0, 0, 0, today.Location())
	}
	return next
}

// parseBirthday extracts month and day from a YYYY-MM-DD birthday string.
// The year is ignored; it is frequently absent or a placeholder.
func parseBirthday(s string) (time.Month, int, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return 0, 0, fmt.Errorf("malformed birthday %q", s)
	}
	month, err := strconv.Atoi(s[5:7])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("malformed birthday month %q", s)
	}
	day, err := strconv.Atoi(s[8:10])
	if err != nil || day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("malformed birthday day %q", s)
	}
	return time.Month(month), day, nil
}
