package morph

import (
	"iter"
	"math/rand/v2"
)

// Strategy is the capability set a target type exposes to the
// framework: how to draw a value in two stages (parameter, then
// template), how to serialize it to canonical form and back, and how
// to walk it toward simpler values during shrinking.
//
// Templates are type-erased. Each strategy works on templates of one
// concrete kind and may assume its own methods are only handed
// templates and canonical data it produced (or, for Decode, arbitrary
// well-formed canonical data that may belong to another strategy).
//
// Handles are compared by identity: the framework treats two Strategy
// values as the same target type only when they are the same
// instance. Implementations must therefore be pointers to non-empty
// structs, so that distinct instances never compare equal.
type Strategy interface {
	// DrawParameter draws the per-run parameter that shapes the
	// distribution DrawTemplate samples from.
	DrawParameter(r *rand.Rand) any

	// DrawTemplate draws one template under the given parameter.
	DrawTemplate(r *rand.Rand, parameter any) any

	// Reify converts a template into the user-facing value. For most
	// strategies this is the identity.
	Reify(template any) any

	// Encode reduces a template to canonical form.
	Encode(template any) Basic

	// Decode rebuilds a template from canonical form. Data that does
	// not decode under this strategy fails with an error wrapping
	// ErrBadData (or ErrMalformedData for structural violations);
	// callers scanning mixed encodings treat any error as "not ours"
	// and move on.
	Decode(data Basic) (any, error)

	// Simplify yields templates strictly simpler than template, most
	// aggressive first. The sequence is lazy and finite; consumers
	// may stop early.
	Simplify(r *rand.Rand, template any) iter.Seq[any]

	// StrictlySimpler reports whether a is strictly simpler than b.
	// It must be irreflexive and transitive.
	StrictlySimpler(a, b any) bool
}
