package morpher

import "github.com/quickmorph/morph"

// record is one slot of cached state inside a Morpher: either a raw
// canonical encoding not yet bound to any target type, or a live
// template bound to a specific strategy handle. The two variants form
// a closed set; everything that filters or converts records switches
// over exactly these.
type record interface {
	isRecord()
}

// encoded holds one opaque canonical value with no target-type
// identity attached. Encoded records are immutable.
type encoded struct {
	basic morph.Basic
}

// materialized binds a strategy handle to a live template. Handles
// match by identity: two distinct instances of an equivalent strategy
// are tracked as different target types.
type materialized struct {
	strategy morph.Strategy
	template any
}

func (encoded) isRecord()      {}
func (materialized) isRecord() {}

// recordBasic reduces a record to its canonical encoding.
func recordBasic(r record) morph.Basic {
	switch rec := r.(type) {
	case encoded:
		return rec.basic
	case materialized:
		return rec.strategy.Encode(rec.template)
	default:
		panic("morpher: unknown record variant")
	}
}
