// Package morph is a property-based test-case generation and shrinking
// toolkit built around a polymorphic surrogate value, the Morpher.
//
// A strategy describes how values of one kind are drawn from a seeded
// random source, serialized to a canonical form, and walked toward
// simpler values during shrinking. The Morpher is a value drawn before
// committing to any strategy: it holds two integer seeds and can
// lazily "become" a value of any number of target strategies on
// demand, memoizing one template per strategy handle, while remaining
// hashable, comparable, and serializable as a generated value in its
// own right.
//
// # Packages
//
//   - morph (this package): the Strategy capability set, canonical
//     values, deterministic random sources, and shared errors
//   - morpher: the surrogate value and its strategy
//   - strategies: concrete target types (integers, text, slices)
//   - search: the draw-and-shrink loop that minimizes examples
//   - database: persistence of minimized examples between runs
//   - settings: run configuration, loadable from yaml
//   - tracker: first-seen deduplication of canonical values
//
// # Identity
//
// Strategy handles are compared by identity, never by value. Two
// distinct instances of an equivalent strategy count as two different
// target types, so implementations must use pointer receivers on
// non-zero-size types. The strategies package constructors return a
// fresh handle per call.
//
// # Quick start
//
//	ints := strategies.Integers()
//	got, err := search.Find(ints, func(v any) bool {
//		return v.(int64) >= 10
//	})
//	// got is int64(10): the smallest drawn value satisfying the
//	// predicate after shrinking.
//
// Morphers come from the morpher package:
//
//	ms := morpher.NewStrategy()
//	lists := strategies.SlicesOf(ints)
//	found, err := search.Find(ms, func(v any) bool {
//		return len(v.(*morpher.Morpher).Become(lists).([]any)) > 0
//	})
//
// Note that lists is created once, outside the predicate: handle
// identity is what ties the memoized template to its type.
package morph
