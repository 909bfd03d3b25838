package pacman

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func mkEvent(ts string, op Operation, pkg string) Event {
	t, err := time.Parse("2006-01-02T15:04:05", ts)
	if err != nil {
		panic(err)
	}
	ev := Event{Timestamp: t, Operation: op, Package: pkg}
	switch op {
	case OpUpgraded, OpReinstalled:
		ev.OldVersion = "1.0-1"
		ev.NewVersion = "1.1-1"
	case OpRemoved:
		ev.OldVersion = "1.0-1"
	default:
		ev.NewVersion = "1.0-1"
	}
	return ev
}

func TestCriteria_DateBoundsAreInclusive(t *testing.T) {
	events := []Event{
		mkEvent("2024-01-01T00:00:00", OpInstalled, "firefox"),
		mkEvent("2024-06-15T12:00:00", OpUpgraded, "linux"),
		mkEvent("2024-12-31T23:59:59", OpRemoved, "gimp"),
	}

	c := Criteria{
		Since: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	got := c.Apply(events)
	if len(got) != 3 {
		t.Fatalf("expected all 3 events inside the inclusive range, got %d", len(got))
	}

	// One day tighter on each side drops the boundary events.
	c = Criteria{
		Since: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
	}
	got = c.Apply(events)
	if len(got) != 1 || got[0].Package != "linux" {
		t.Fatalf("expected only the linux event, got %+v", got)
	}
}

func TestCriteria_LimitKeepsMostRecent(t *testing.T) {
	var events []Event
	for day := 1; day <= 10; day++ {
		events = append(events, mkEvent(
			time.Date(2024, 3, day, 10, 0, 0, 0, time.UTC).Format("2006-01-02T15:04:05"),
			OpUpgraded, "linux"))
	}

	got := Criteria{Limit: 3}.Apply(events)
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	// Last 3 in chronological order, not reversed.
	for i, wantDay := range []int{8, 9, 10} {
		if got[i].Timestamp.Day() != wantDay {
			t.Errorf("event %d: day = %d, want %d", i, got[i].Timestamp.Day(), wantDay)
		}
	}
}

func TestCriteria_PredicatesCompose(t *testing.T) {
	events := []Event{
		mkEvent("2024-01-01T10:00:00", OpInstalled, "firefox"),
		mkEvent("2024-01-02T10:00:00", OpUpgraded, "firefox"),
		mkEvent("2024-01-03T10:00:00", OpUpgraded, "linux"),
		mkEvent("2024-01-04T10:00:00", OpRemoved, "firefox"),
	}

	got := Criteria{Package: "firefox", Operation: OpUpgraded}.Apply(events)
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Package != "firefox" || got[0].Operation != OpUpgraded {
		t.Errorf("wrong event matched: %+v", got[0])
	}

	// No matches is a valid, empty result.
	got = Criteria{Package: "emacs", Operation: OpUpgraded}.Apply(events)
	if len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestCriteria_PackageMatchModes(t *testing.T) {
	events := []Event{
		mkEvent("2024-01-01T10:00:00", OpInstalled, "firefox"),
		mkEvent("2024-01-02T10:00:00", OpInstalled, "firefox-developer-edition"),
		mkEvent("2024-01-03T10:00:00", OpInstalled, "linux"),
	}

	tests := []struct {
		name    string
		pattern string
		exact   bool
		want    int
	}{
		{"substring matches both firefox packages", "firefox", false, 2},
		{"substring is case-insensitive", "FireFox", false, 2},
		{"exact matches only the bare name", "firefox", true, 1},
		{"exact is case-insensitive", "FIREFOX", true, 1},
		{"exact does not match substrings", "fire", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Criteria{Package: tt.pattern, Exact: tt.exact}.Apply(events)
			if len(got) != tt.want {
				t.Errorf("got %d matches, want %d", len(got), tt.want)
			}
		})
	}
}

func TestCriteria_EmptyCriteriaIsIdentity(t *testing.T) {
	events := []Event{
		mkEvent("2024-01-01T10:00:00", OpInstalled, "firefox"),
		mkEvent("2024-01-02T10:00:00", OpRemoved, "gimp"),
	}

	got := Criteria{}.Apply(events)
	if !reflect.DeepEqual(got, events) {
		t.Errorf("empty criteria should return the full sequence unchanged")
	}
}

func TestCriteria_ApplyIsIdempotentAndPure(t *testing.T) {
	events := []Event{
		mkEvent("2024-01-01T10:00:00", OpInstalled, "firefox"),
		mkEvent("2024-01-02T10:00:00", OpUpgraded, "firefox"),
		mkEvent("2024-01-03T10:00:00", OpRemoved, "gimp"),
	}
	snapshot := make([]Event, len(events))
	copy(snapshot, events)

	c := Criteria{Package: "firefox", Limit: 1}
	first := c.Apply(events)
	second := c.Apply(events)

	if !reflect.DeepEqual(first, second) {
		t.Error("applying the same criteria twice gave different results")
	}
	if !reflect.DeepEqual(events, snapshot) {
		t.Error("Apply mutated its input")
	}
}

func TestCriteria_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       Criteria
		wantErr bool
	}{
		{"zero criteria", Criteria{}, false},
		{"valid range", Criteria{
			Since: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Until: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		}, false},
		{"same-day range", Criteria{
			Since: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Until: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}, false},
		{"inverted range", Criteria{
			Since: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Until: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}, true},
		{"negative limit", Criteria{Limit: -1}, true},
		{"known operation", Criteria{Operation: OpUpgraded}, false},
		{"unknown operation", Criteria{Operation: "downgraded"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil && !errors.Is(err, ErrInvalidCriteria) {
				t.Errorf("error %v should wrap ErrInvalidCriteria", err)
			}
		})
	}
}

func TestCriteria_DateComparisonIgnoresTimeOfDay(t *testing.T) {
	// A bound carrying a late time-of-day must still include events
	// earlier that same day.
	events := []Event{mkEvent("2024-05-10T08:00:00", OpInstalled, "firefox")}

	c := Criteria{
		Since: time.Date(2024, 5, 10, 23, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 5, 10, 23, 0, 0, 0, time.UTC),
	}
	if got := c.Apply(events); len(got) != 1 {
		t.Errorf("event on the bound's day should match regardless of time, got %d", len(got))
	}
}
