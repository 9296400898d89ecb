// Package family models the per-event table families.  Every event owns a
// trio of tables sharing one numeric suffix: events{N} holds the event
// metadata row plus its task rows, timeslots{N} holds the bounded time
// windows of each task, and signups{N} holds volunteer registrations.
// The three tables are created, migrated and dropped as a set; no task,
// slot or signup row may ever reference rows in another family.
package family

import "strconv"

// Table name prefixes.  These are a wire-level contract shared with the
// front end and any operator tooling; do not change them.
const (
	EventsPrefix    = "events"
	TimeSlotsPrefix = "timeslots"
	SignupsPrefix   = "signups"
)

// TableSet names the three tables of one family.  Suffix is always >= 1;
// the zero value is invalid and rejected by Valid.
type TableSet struct {
	Suffix int
}

// ForSuffix returns the TableSet for family n.
func ForSuffix(n int) TableSet { return TableSet{Suffix: n} }

// Valid reports whether the set names a real family.
func (t TableSet) Valid() bool { return t.Suffix >= 1 }

// Events returns the events/tasks table name, e.g. "events3".
func (t TableSet) Events() string { return EventsPrefix + strconv.Itoa(t.Suffix) }

// TimeSlots returns the time-slot table name, e.g. "timeslots3".
func (t TableSet) TimeSlots() string { return TimeSlotsPrefix + strconv.Itoa(t.Suffix) }

// Signups returns the signup table name, e.g. "signups3".
func (t TableSet) Signups() string { return SignupsPrefix + strconv.Itoa(t.Suffix) }

// ParseEventsTable extracts a family suffix from a catalog table name.
// Only names of the form events{N} with N >= 1 in plain decimal match;
// leading zeros are rejected so the suffix round-trips through Events().
// A bare "events" table is a legacy artifact from before suffixes were
// assigned consistently and is normalized to family 1.
func ParseEventsTable(name string) (int, bool) {
	if len(name) < len(EventsPrefix) || name[:len(EventsPrefix)] != EventsPrefix {
		return 0, false
	}
	rest := name[len(EventsPrefix):]
	if rest == "" {
		return 1, true // legacy unsuffixed family
	}
	if rest[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
