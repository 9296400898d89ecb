// Package slug derives URL-safe identifiers for events.  Slugs are the
// public routing handle for an event and are stored with a unique
// constraint, so derivation must be deterministic.
package slug

import "strings"

// Make converts an event name into its slug: the name is lower-cased and
// trimmed, every run of characters outside [a-z0-9] collapses into a
// single hyphen, and leading/trailing hyphens are dropped.  Non-ASCII
// letters are not transliterated; they fall into the hyphen class, so
// "Forårs Opvisning 2025!" becomes "for-rs-opvisning-2025".  Applying
// Make to its own output returns the same string.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(s))
	pending := false // a separator run is open and waiting for the next keeper
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}
