package morpher

import (
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/quickmorph/morph"
)

// Strategy draws, serializes and shrinks Morpher values. It satisfies
// morph.Strategy itself, so morphers nest: a slice of morphers, or a
// morpher asked to become another morpher, both work.
//
// Like every strategy, a *Strategy is matched by identity. Use one
// instance per logical morpher type; NewStrategy returns a distinct
// handle each call.
type Strategy struct {
	label string
}

var _ morph.Strategy = (*Strategy)(nil)

// NewStrategy returns a fresh morpher strategy handle.
func NewStrategy() *Strategy {
	return &Strategy{label: "morpher"}
}

// DrawParameter draws the parameter seed for a new Morpher.
func (s *Strategy) DrawParameter(r *rand.Rand) any {
	return r.Uint64()
}

// DrawTemplate builds a Morpher from the drawn parameter seed and a
// fresh template seed. No records attach until the value is asked to
// become something.
func (s *Strategy) DrawTemplate(r *rand.Rand, parameter any) any {
	return New(parameter.(uint64), r.Uint64())
}

// Reify is the identity: a Morpher is already the user-facing value.
func (s *Strategy) Reify(template any) any {
	return template
}

// Encode canonicalizes the Morpher in place and returns
// [parameterSeed, templateSeed, [encodings...]]. Encoding is not
// side-effect-free: the record cache is collapsed as part of it.
func (s *Strategy) Encode(template any) morph.Basic {
	m := template.(*Morpher)
	m.Canonicalize()
	encodings := make([]morph.Basic, len(m.records))
	for i, r := range m.records {
		encodings[i] = recordBasic(r)
	}
	return []morph.Basic{m.parameterSeed, m.templateSeed, encodings}
}

// Decode validates data against the canonical wire shape and rebuilds
// a Morpher whose records are all encodings, in the given order. The
// encodings are opaque at this layer: they are checked structurally,
// not against any particular target type.
func (s *Strategy) Decode(data morph.Basic) (any, error) {
	list, err := morph.CheckList(data)
	if err != nil {
		return nil, morph.NewMalformedDataError("morpher.Decode", err)
	}
	if len(list) != 3 {
		return nil, morph.NewMalformedDataError("morpher.Decode",
			fmt.Errorf("want 3 elements, got %d", len(list)))
	}
	parameterSeed, err := morph.CheckUint(list[0])
	if err != nil {
		return nil, morph.NewMalformedDataError("morpher.Decode",
			fmt.Errorf("parameter seed: %w", err))
	}
	templateSeed, err := morph.CheckUint(list[1])
	if err != nil {
		return nil, morph.NewMalformedDataError("morpher.Decode",
			fmt.Errorf("template seed: %w", err))
	}
	encodings, err := morph.CheckList(list[2])
	if err != nil {
		return nil, morph.NewMalformedDataError("morpher.Decode",
			fmt.Errorf("encodings: %w", err))
	}
	m := New(parameterSeed, templateSeed)
	for i, e := range encodings {
		if err := morph.CheckBasic(e); err != nil {
			return nil, morph.NewMalformedDataError("morpher.Decode",
				fmt.Errorf("encoding %d: %w", i, err))
		}
		m.records = append(m.records, encoded{basic: e})
	}
	return m, nil
}

// Simplify yields candidate simpler Morphers. Each candidate rewrites
// exactly one materialized type to one of that type's own simpler
// templates; everything else the original has become is carried over
// untouched, and types never materialized contribute nothing. The
// sequence concatenates the per-type streams in cache order and is
// lazy throughout.
func (s *Strategy) Simplify(r *rand.Rand, template any) iter.Seq[any] {
	m := template.(*Morpher)
	return func(yield func(any) bool) {
		for _, target := range m.Strategies() {
			current := m.TemplateFor(target)
			for simpler := range target.Simplify(r, current) {
				clone := m.Clone()
				clone.dropLastMaterialized(target)
				clone.PruneUnused()
				clone.records = append(clone.records,
					encoded{basic: target.Encode(simpler)},
					materialized{strategy: target, template: simpler},
				)
				if !yield(clone) {
					return
				}
			}
		}
	}
}

// StrictlySimpler reports whether x is simpler than y under every
// target type either side has materialized; one disagreeing type
// vetoes the whole comparison. When neither side has materialized
// anything the template seeds break the tie. Comparing is not
// read-only: a type only one side has touched is deterministically
// materialized on the other before its verdict is taken.
func (s *Strategy) StrictlySimpler(a, b any) bool {
	x, y := a.(*Morpher), b.(*Morpher)
	targets := append(x.Strategies(), y.Strategies()...)
	if len(targets) == 0 {
		return x.templateSeed < y.templateSeed
	}
	for _, target := range targets {
		if !target.StrictlySimpler(x.TemplateFor(target), y.TemplateFor(target)) {
			return false
		}
	}
	return true
}

func (s *Strategy) String() string {
	return "MorpherStrategy()"
}
