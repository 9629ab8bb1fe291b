package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickmorph/morph"
)

func TestSlicesDrawIsDeterministic(t *testing.T) {
	s := SlicesOf(Integers())
	r1, r2 := morph.NewRand(9), morph.NewRand(9)
	a := s.DrawTemplate(r1, s.DrawParameter(r1))
	b := s.DrawTemplate(r2, s.DrawParameter(r2))
	assert.Equal(t, a, b)
}

func TestSlicesReifyAndEncode(t *testing.T) {
	s := SlicesOf(Integers())
	template := []any{int64(1), int64(-2)}

	assert.Equal(t, []any{int64(1), int64(-2)}, s.Reify(template))
	assert.Equal(t, []morph.Basic{int64(1), int64(-2)}, s.Encode(template))
}

func TestSlicesDecode(t *testing.T) {
	s := SlicesOf(Integers())

	got, err := s.Decode([]morph.Basic{int64(1), int64(2)})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2)}, got)

	got, err = s.Decode([]morph.Basic{})
	require.NoError(t, err)
	assert.Equal(t, []any{}, got)

	_, err = s.Decode("not a list")
	assert.ErrorIs(t, err, morph.ErrBadData)

	_, err = s.Decode([]morph.Basic{int64(1), "oops"})
	assert.ErrorIs(t, err, morph.ErrBadData, "element errors propagate")
}

func TestSlicesSimplify(t *testing.T) {
	s := SlicesOf(Integers())

	assert.Empty(t, collect(s, []any{}), "empty is already minimal")

	got := collect(s, []any{int64(4), int64(7)})
	require.NotEmpty(t, got)
	assert.Equal(t, []any{}, got[0], "the empty slice comes first")
	assert.Contains(t, got, []any{int64(4)})
	assert.Contains(t, got, []any{int64(7)})
	assert.Contains(t, got, []any{int64(0), int64(7)}, "elements shrink in place")
	assert.Contains(t, got, []any{int64(4), int64(0)})
}

func TestSlicesSimplifySingleElement(t *testing.T) {
	s := SlicesOf(Integers())
	got := collect(s, []any{int64(2)})
	assert.Equal(t, []any{}, got[0])
	for _, c := range got[1:] {
		assert.Len(t, c, 1, "no halves or removals for a single element")
	}
}

func TestSlicesOrdering(t *testing.T) {
	s := SlicesOf(Integers())

	assert.True(t, s.StrictlySimpler([]any{}, []any{int64(0)}))
	assert.True(t, s.StrictlySimpler([]any{int64(0)}, []any{int64(0), int64(0)}), "shorter is simpler")
	assert.True(t, s.StrictlySimpler([]any{int64(0), int64(3)}, []any{int64(1), int64(3)}))
	assert.False(t, s.StrictlySimpler([]any{int64(0), int64(3)}, []any{int64(1), int64(2)}),
		"no order when elements disagree")
	assert.False(t, s.StrictlySimpler([]any{int64(1)}, []any{int64(1)}))
}

func TestSlicesOfSameElementAreDistinctHandles(t *testing.T) {
	ints := Integers()
	assert.False(t, SlicesOf(ints) == SlicesOf(ints))
}
