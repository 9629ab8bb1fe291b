// Package strategies provides concrete target types for the morph
// framework: integers, text, and slices of another strategy's values.
// They are usable generators in their own right and the reference
// types the surrogate machinery is exercised against.
//
// Every constructor returns a fresh handle. Handles are matched by
// identity, so two calls to Integers() are two different target types
// even though they draw from the same distribution.
package strategies

import (
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/quickmorph/morph"
)

// Integers returns a strategy producing int64 templates biased toward
// small magnitudes.
func Integers() morph.Strategy {
	return &integers{name: "integers"}
}

type integers struct {
	name string
}

var _ morph.Strategy = (*integers)(nil)

// DrawParameter picks the geometric stop probability that controls
// how large drawn magnitudes get.
func (s *integers) DrawParameter(r *rand.Rand) any {
	return 0.05 + 0.9*r.Float64()
}

// DrawTemplate draws an int64 whose magnitude grows geometrically
// under the parameter, with a uniformly random sign.
func (s *integers) DrawTemplate(r *rand.Rand, parameter any) any {
	p := parameter.(float64)
	var n int64
	for r.Float64() > p && n < 1<<20 {
		n++
	}
	if r.IntN(2) == 0 {
		n = -n
	}
	return n
}

// Reify is the identity.
func (s *integers) Reify(template any) any {
	return template
}

// Encode returns the template itself: integers are already canonical.
func (s *integers) Encode(template any) morph.Basic {
	return template.(int64)
}

// Decode accepts any canonical integer. Everything else belongs to
// some other strategy's encoding scheme.
func (s *integers) Decode(data morph.Basic) (any, error) {
	n, err := morph.CheckInt(data)
	if err != nil {
		return nil, morph.NewBadDataError("integers.Decode", fmt.Errorf("%T is not an integer", data))
	}
	return n, nil
}

// Simplify shrinks toward zero: zero itself, the positive mirror for
// negatives, halving, then a single step.
func (s *integers) Simplify(r *rand.Rand, template any) iter.Seq[any] {
	n := template.(int64)
	return func(yield func(any) bool) {
		if n == 0 {
			return
		}
		seen := map[int64]bool{n: true}
		emit := func(v int64) bool {
			if seen[v] {
				return true
			}
			seen[v] = true
			return yield(v)
		}
		if !emit(0) {
			return
		}
		if n < 0 && !emit(-n) {
			return
		}
		if !emit(n / 2) {
			return
		}
		if n > 0 {
			emit(n - 1)
		} else {
			emit(n + 1)
		}
	}
}

// StrictlySimpler prefers smaller magnitudes; at equal magnitude the
// non-negative value wins.
func (s *integers) StrictlySimpler(a, b any) bool {
	x, y := a.(int64), b.(int64)
	ax, ay := abs64(x), abs64(y)
	if ax != ay {
		return ax < ay
	}
	return x > y
}

func (s *integers) String() string {
	return s.name
}

func abs64(n int64) uint64 {
	if n < 0 {
		return uint64(-n)
	}
	return uint64(n)
}
