package pacman

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidCriteria marks caller-supplied criteria that can never be
// applied, such as an inverted date range. Wrap checks should use
// errors.Is.
var ErrInvalidCriteria = errors.New("invalid filter criteria")

// Criteria narrows which events Apply returns. The zero value matches
// everything.
//
// Since and Until are inclusive bounds compared at date granularity:
// the time-of-day component of both the bound and the event is ignored,
// so Until covers the whole of its calendar day. A zero time means
// unbounded on that side.
type Criteria struct {
	Since     time.Time
	Until     time.Time
	Package   string    // case-insensitive; substring unless Exact
	Exact     bool      // exact package-name match instead of substring
	Operation Operation // exact match against a recognized action
	Limit     int       // keep the most recent N matches; 0 = no limit
}

// Validate checks the criteria before any parsing or filtering work is
// done. All failures wrap ErrInvalidCriteria and name the offending
// value.
func (c Criteria) Validate() error {
	if !c.Since.IsZero() && !c.Until.IsZero() && dayOf(c.Until).Before(dayOf(c.Since)) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidCriteria, c.Until.Format("2006-01-02"), c.Since.Format("2006-01-02"))
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidCriteria, c.Limit)
	}
	if c.Operation != "" && !c.Operation.Known() {
		return fmt.Errorf("%w: unknown operation %q (expected installed, upgraded, removed, or reinstalled)",
			ErrInvalidCriteria, string(c.Operation))
	}
	return nil
}

// Apply returns the events matching every set predicate, preserving
// their original order. When Limit is set and more events match, the
// most recent Limit events are kept, still oldest first. Apply never
// mutates its input and is safe to call repeatedly with different
// criteria over the same slice.
func (c Criteria) Apply(events []Event) []Event {
	var matched []Event
	for _, ev := range events {
		if c.matches(ev) {
			matched = append(matched, ev)
		}
	}
	if c.Limit > 0 && len(matched) > c.Limit {
		matched = matched[len(matched)-c.Limit:]
	}
	return matched
}

// matches evaluates the conjunction of all set predicates; unset
// predicates pass everything.
func (c Criteria) matches(ev Event) bool {
	if !c.Since.IsZero() && dayOf(ev.Timestamp).Before(dayOf(c.Since)) {
		return false
	}
	if !c.Until.IsZero() && dayOf(ev.Timestamp).After(dayOf(c.Until)) {
		return false
	}
	if c.Package != "" {
		name := strings.ToLower(ev.Package)
		want := strings.ToLower(c.Package)
		if c.Exact {
			if name != want {
				return false
			}
		} else if !strings.Contains(name, want) {
			return false
		}
	}
	if c.Operation != "" && ev.Operation != c.Operation {
		return false
	}
	return true
}

// dayOf normalizes a timestamp to its calendar day, so that date-only
// bounds compare the same regardless of the stamp's offset.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
