// Package tracker provides first-seen deduplication of canonical
// values by deep structural equality.
package tracker

import "github.com/quickmorph/morph"

// Tracker counts how many times each canonical value has been seen.
// Equality is deep and structural: two lists with equal elements are
// the same value regardless of how they were built.
//
// The zero value is not usable; call New.
type Tracker struct {
	counts map[string]int
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{counts: make(map[string]int)}
}

// Track records v and returns the number of times it has been
// tracked, including this call. A first occurrence returns 1.
func (t *Tracker) Track(v morph.Basic) int {
	key := morph.Fingerprint(v)
	t.counts[key]++
	return t.counts[key]
}

// Len returns the number of distinct values tracked so far.
func (t *Tracker) Len() int {
	return len(t.counts)
}
