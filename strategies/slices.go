package strategies

import (
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/quickmorph/morph"
)

// SlicesOf returns a strategy producing []any templates whose
// elements come from elem. The element strategy's handle is part of
// the slice type: SlicesOf(a) and SlicesOf(a) are still two distinct
// handles.
func SlicesOf(elem morph.Strategy) morph.Strategy {
	return &slicesOf{elem: elem}
}

type slicesOf struct {
	elem morph.Strategy
}

var _ morph.Strategy = (*slicesOf)(nil)

// sliceParameter couples the length distribution with the element
// strategy's own parameter.
type sliceParameter struct {
	stop float64
	elem any
}

func (s *slicesOf) DrawParameter(r *rand.Rand) any {
	return sliceParameter{
		stop: 0.1 + 0.7*r.Float64(),
		elem: s.elem.DrawParameter(r),
	}
}

// DrawTemplate draws a geometric-length slice of element templates.
func (s *slicesOf) DrawTemplate(r *rand.Rand, parameter any) any {
	p := parameter.(sliceParameter)
	out := []any{}
	for r.Float64() > p.stop && len(out) < 1<<10 {
		out = append(out, s.elem.DrawTemplate(r, p.elem))
	}
	return out
}

// Reify reifies each element.
func (s *slicesOf) Reify(template any) any {
	items := template.([]any)
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = s.elem.Reify(item)
	}
	return out
}

// Encode encodes elementwise into a canonical list.
func (s *slicesOf) Encode(template any) morph.Basic {
	items := template.([]any)
	out := make([]morph.Basic, len(items))
	for i, item := range items {
		out[i] = s.elem.Encode(item)
	}
	return out
}

// Decode accepts a canonical list every element of which decodes
// under the element strategy.
func (s *slicesOf) Decode(data morph.Basic) (any, error) {
	list, ok := data.([]morph.Basic)
	if !ok {
		return nil, morph.NewBadDataError("slices.Decode", fmt.Errorf("%T is not a list", data))
	}
	out := make([]any, len(list))
	for i, e := range list {
		item, err := s.elem.Decode(e)
		if err != nil {
			return nil, morph.NewBadDataError("slices.Decode", fmt.Errorf("element %d: %w", i, err))
		}
		out[i] = item
	}
	return out, nil
}

// Simplify shrinks structure first (empty, halves, single removals),
// then elements in place.
func (s *slicesOf) Simplify(r *rand.Rand, template any) iter.Seq[any] {
	items := template.([]any)
	return func(yield func(any) bool) {
		if len(items) == 0 {
			return
		}
		if !yield([]any{}) {
			return
		}
		if len(items) > 1 {
			if !yield(append([]any(nil), items[:len(items)/2]...)) {
				return
			}
			if !yield(append([]any(nil), items[len(items)/2:]...)) {
				return
			}
			for i := range items {
				removed := make([]any, 0, len(items)-1)
				removed = append(removed, items[:i]...)
				removed = append(removed, items[i+1:]...)
				if !yield(removed) {
					return
				}
			}
		}
		for i := range items {
			for simpler := range s.elem.Simplify(r, items[i]) {
				replaced := append([]any(nil), items...)
				replaced[i] = simpler
				if !yield(replaced) {
					return
				}
			}
		}
	}
}

// StrictlySimpler prefers shorter slices; at equal length every
// element must be no worse and at least one strictly better.
func (s *slicesOf) StrictlySimpler(a, b any) bool {
	x, y := a.([]any), b.([]any)
	if len(x) != len(y) {
		return len(x) < len(y)
	}
	better := false
	for i := range x {
		if s.elem.StrictlySimpler(y[i], x[i]) {
			return false
		}
		if s.elem.StrictlySimpler(x[i], y[i]) {
			better = true
		}
	}
	return better
}

func (s *slicesOf) String() string {
	return fmt.Sprintf("slicesOf(%v)", s.elem)
}
