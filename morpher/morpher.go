package morpher

import (
	"fmt"
	"hash/fnv"

	"github.com/quickmorph/morph"
	"github.com/quickmorph/morph/tracker"
)

// Morpher is a surrogate value that has not committed to a target
// type. It holds two seeds fixing its pseudo-random draws and an
// ordered cache of records, and can lazily become a value of any
// number of strategies on demand, memoizing one template per handle.
//
// A Morpher is single-owner: the search loop clones before branching,
// and no instance is mutated by more than one logical caller at a
// time. Materialization, canonicalization and pruning all mutate the
// record cache in place; the seeds never change after construction.
type Morpher struct {
	parameterSeed uint64
	templateSeed  uint64
	records       []record
}

// New returns a Morpher with the given seeds and an empty cache.
func New(parameterSeed, templateSeed uint64) *Morpher {
	return &Morpher{parameterSeed: parameterSeed, templateSeed: templateSeed}
}

// ParameterSeed returns the seed fixing parameter draws.
func (m *Morpher) ParameterSeed() uint64 { return m.parameterSeed }

// TemplateSeed returns the seed fixing template draws.
func (m *Morpher) TemplateSeed() uint64 { return m.templateSeed }

// TemplateFor resolves the template this Morpher holds for strategy
// s, materializing one if needed.
//
// Resolution order: an existing record for the same handle wins and
// moves to the end of the cache (most recently used), so repeated
// calls return the identical template. Otherwise the first cached
// encoding that decodes under s is bound to it; the encoding itself
// stays in the cache. Otherwise a fresh parameter and template are
// drawn from generators seeded with the two seeds, so a fresh draw
// for a given handle is bit-identical on every clone that reaches
// this point. Encodings that fail to decode belong to some other
// target type and are skipped; no decode error escapes.
func (m *Morpher) TemplateFor(s morph.Strategy) any {
	for i, r := range m.records {
		switch rec := r.(type) {
		case materialized:
			if rec.strategy == s {
				rest := append(m.records[:i:i], m.records[i+1:]...)
				m.records = append(rest, rec)
				return rec.template
			}
		case encoded:
			template, err := s.Decode(rec.basic)
			if err != nil {
				continue
			}
			m.records = append(m.records, materialized{strategy: s, template: template})
			return template
		}
	}
	parameter := s.DrawParameter(morph.NewRand(m.parameterSeed))
	template := s.DrawTemplate(morph.NewRand(m.templateSeed), parameter)
	m.records = append(m.records, materialized{strategy: s, template: template})
	return template
}

// Become materializes this Morpher against s and reifies the result.
func (m *Morpher) Become(s morph.Strategy) any {
	return s.Reify(m.TemplateFor(s))
}

// Canonicalize collapses the record cache to a deduplicated sequence
// of pure encodings, in first-occurrence order. Afterward the
// serialized form no longer depends on how often, or in what order, a
// target type was re-materialized, and its size is bounded by the
// number of distinct encodings ever produced.
func (m *Morpher) Canonicalize() {
	seen := tracker.New()
	collapsed := make([]record, 0, len(m.records))
	for _, r := range m.records {
		basic := recordBasic(r)
		if seen.Track(basic) == 1 {
			collapsed = append(collapsed, encoded{basic: basic})
		}
	}
	m.records = collapsed
}

// PruneUnused drops every cached encoding, keeping only materialized
// records in their existing order. The simplification machinery calls
// this on each branch so that a stale encoding captured before the
// branch cannot later decode back into a superseded value.
func (m *Morpher) PruneUnused() {
	kept := make([]record, 0, len(m.records))
	for _, r := range m.records {
		if rec, ok := r.(materialized); ok {
			kept = append(kept, rec)
		}
	}
	m.records = kept
}

// Clone returns an independent Morpher with the same seeds and a copy
// of the record sequence. The copy is shallow: encoded records are
// immutable values, and materialized records share the handle and the
// template reference. Template sharing is safe as long as the target
// type treats templates as values; strategies that hand out mutable
// templates must say so.
func (m *Morpher) Clone() *Morpher {
	return &Morpher{
		parameterSeed: m.parameterSeed,
		templateSeed:  m.templateSeed,
		records:       append([]record(nil), m.records...),
	}
}

// Strategies returns the handles of this Morpher's materialized
// records, in cache order. Types never materialized do not appear.
func (m *Morpher) Strategies() []morph.Strategy {
	var out []morph.Strategy
	for _, r := range m.records {
		if rec, ok := r.(materialized); ok {
			out = append(out, rec.strategy)
		}
	}
	return out
}

// signature is the canonical reduction equality and hashing are
// defined over: seeds plus every record collapsed to its encoding,
// materializing nothing new.
func (m *Morpher) signature() morph.Basic {
	encodings := make([]morph.Basic, len(m.records))
	for i, r := range m.records {
		encodings[i] = recordBasic(r)
	}
	return []morph.Basic{m.parameterSeed, m.templateSeed, encodings}
}

// Equal reports whether m and other have the same seeds and the same
// canonical reduction of their records. This, not raw structural
// comparison, is the identity the shrink search deduplicates on.
func (m *Morpher) Equal(other *Morpher) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.parameterSeed == other.parameterSeed &&
		m.templateSeed == other.templateSeed &&
		morph.BasicEqual(m.signature(), other.signature())
}

// Hash returns a hash consistent with Equal.
func (m *Morpher) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(morph.Fingerprint(m.signature())))
	return h.Sum64()
}

// dropLastMaterialized removes the most recent materialized record
// for s. After a TemplateFor call that is always the last entry.
func (m *Morpher) dropLastMaterialized(s morph.Strategy) {
	for i := len(m.records) - 1; i >= 0; i-- {
		if rec, ok := m.records[i].(materialized); ok && rec.strategy == s {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return
		}
	}
}

func (m *Morpher) String() string {
	return fmt.Sprintf("Morpher(%d, %d, %d records)", m.parameterSeed, m.templateSeed, len(m.records))
}
