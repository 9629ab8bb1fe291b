package strategies

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickmorph/morph"
)

func drawInt(t *testing.T, s morph.Strategy, seed uint64) int64 {
	t.Helper()
	r := morph.NewRand(seed)
	return s.DrawTemplate(r, s.DrawParameter(r)).(int64)
}

func TestIntegersDrawIsDeterministic(t *testing.T) {
	s := Integers()
	assert.Equal(t, drawInt(t, s, 7), drawInt(t, s, 7))
}

func TestIntegersHandlesAreDistinct(t *testing.T) {
	assert.False(t, Integers() == Integers(),
		"every constructor call must be a fresh identity")
}

func TestIntegersDecode(t *testing.T) {
	s := Integers()
	for _, v := range []morph.Basic{int64(5), 5, uint64(5)} {
		got, err := s.Decode(v)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got)
	}
	for _, v := range []morph.Basic{"5", nil, []morph.Basic{int64(1)}, true} {
		_, err := s.Decode(v)
		assert.ErrorIs(t, err, morph.ErrBadData, "value %v", v)
	}
}

func collect(s morph.Strategy, template any) []any {
	var out []any
	for v := range s.Simplify(morph.NewRand(0), template) {
		out = append(out, v)
	}
	return out
}

func TestIntegersSimplify(t *testing.T) {
	s := Integers()

	assert.Empty(t, collect(s, int64(0)), "zero is already minimal")
	assert.Equal(t, []any{int64(0)}, collect(s, int64(1)))
	assert.Equal(t, []any{int64(0), int64(3), int64(5)}, collect(s, int64(6)))
	assert.Equal(t, []any{int64(0), int64(6), int64(-3), int64(-5)}, collect(s, int64(-6)))

	for _, simpler := range collect(s, int64(100)) {
		assert.True(t, s.StrictlySimpler(simpler, int64(100)))
	}
	for _, simpler := range collect(s, int64(-9)) {
		assert.True(t, s.StrictlySimpler(simpler, int64(-9)))
	}
}

func TestIntegersSimplifyStopsEarly(t *testing.T) {
	s := Integers()
	n := 0
	for range s.Simplify(morph.NewRand(0), int64(1000)) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestIntegersOrdering(t *testing.T) {
	s := Integers()
	assert.True(t, s.StrictlySimpler(int64(0), int64(1)))
	assert.True(t, s.StrictlySimpler(int64(1), int64(-1)), "positive beats negative at equal magnitude")
	assert.True(t, s.StrictlySimpler(int64(-1), int64(2)))
	assert.False(t, s.StrictlySimpler(int64(3), int64(3)))
	assert.False(t, s.StrictlySimpler(int64(5), int64(4)))
}

func TestIntegersOrderingIsStrictPartialOrder(t *testing.T) {
	s := Integers()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("irreflexive", prop.ForAll(
		func(a int64) bool { return !s.StrictlySimpler(a, a) },
		gen.Int64(),
	))
	properties.Property("asymmetric", prop.ForAll(
		func(a, b int64) bool {
			return !(s.StrictlySimpler(a, b) && s.StrictlySimpler(b, a))
		},
		gen.Int64(), gen.Int64(),
	))
	properties.Property("transitive", prop.ForAll(
		func(a, b, c int64) bool {
			if s.StrictlySimpler(a, b) && s.StrictlySimpler(b, c) {
				return s.StrictlySimpler(a, c)
			}
			return true
		},
		gen.Int64(), gen.Int64(), gen.Int64(),
	))

	properties.TestingRun(t)
}
