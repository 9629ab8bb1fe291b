package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickmorph/morph/database"
	"github.com/quickmorph/morph/morpher"
	"github.com/quickmorph/morph/settings"
	"github.com/quickmorph/morph/strategies"
)

func TestFindSmallestLargeInteger(t *testing.T) {
	s := settings.Default()
	s.MaxExamples = 5000

	got, err := Find(strategies.Integers(), func(v any) bool {
		n, ok := v.(int64)
		return ok && n >= 10
	}, WithSettings(s))
	require.NoError(t, err)
	assert.Equal(t, int64(10), got, "greedy descent stops at the boundary")
}

func TestFindNonzeroIntegerShrinksToOne(t *testing.T) {
	got, err := Find(strategies.Integers(), func(v any) bool {
		return v.(int64) != 0
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestFindNonemptyTextShrinksToZeroRune(t *testing.T) {
	got, err := Find(strategies.Text(), func(v any) bool {
		return v.(string) != ""
	})
	require.NoError(t, err)
	assert.Equal(t, "0", got)
}

func TestFindMorpherWithNonemptyList(t *testing.T) {
	lists := strategies.SlicesOf(strategies.Integers())

	got, err := Find(morpher.NewStrategy(), func(v any) bool {
		m := v.(*morpher.Morpher)
		return len(m.Become(lists).([]any)) > 0
	})
	require.NoError(t, err)

	m := got.(*morpher.Morpher)
	assert.Equal(t, []any{int64(0)}, m.Become(lists))
}

func TestFindMorpherUsedAsTwoTypes(t *testing.T) {
	ints := strategies.Integers()
	text := strategies.Text()

	got, err := Find(morpher.NewStrategy(), func(v any) bool {
		m := v.(*morpher.Morpher)
		return m.Become(ints).(int64) != 0 && m.Become(text).(string) != ""
	})
	require.NoError(t, err)

	m := got.(*morpher.Morpher)
	assert.Equal(t, int64(1), m.Become(ints), "each materialized type minimizes independently")
	assert.Equal(t, "0", m.Become(text))
}

func TestFindListOfMorphers(t *testing.T) {
	ints := strategies.Integers()
	ms := morpher.NewStrategy()
	lists := strategies.SlicesOf(ms)

	got, err := Find(lists, func(v any) bool {
		items := v.([]any)
		if len(items) == 0 {
			return false
		}
		for _, item := range items {
			if item.(*morpher.Morpher).Become(ints).(int64) < 1 {
				return false
			}
		}
		return true
	})
	require.NoError(t, err)

	items := got.([]any)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].(*morpher.Morpher).Become(ints))
}

func TestFindThroughNestedMorphers(t *testing.T) {
	ints := strategies.Integers()
	ms := morpher.NewStrategy()

	got, err := Find(ms, func(v any) bool {
		inner := v.(*morpher.Morpher).Become(ms).(*morpher.Morpher)
		return inner.Become(ints).(int64) >= 5
	})
	require.NoError(t, err)

	inner := got.(*morpher.Morpher).Become(ms).(*morpher.Morpher)
	assert.Equal(t, int64(5), inner.Become(ints))
}

func TestFindNoSuchExample(t *testing.T) {
	s := settings.Default()
	s.MaxExamples = 5

	_, err := Find(strategies.Integers(), func(any) bool { return false },
		WithSettings(s))
	assert.ErrorIs(t, err, ErrNoSuchExample)
}

func TestFindTimeout(t *testing.T) {
	s := settings.Default()
	s.Timeout = time.Nanosecond

	_, err := Find(strategies.Integers(), func(any) bool { return false },
		WithSettings(s))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFindRejectsInvalidSettings(t *testing.T) {
	s := settings.Default()
	s.MaxExamples = 0

	_, err := Find(strategies.Integers(), func(any) bool { return true },
		WithSettings(s))
	assert.Error(t, err)
}

func TestFindSavesAndReplaysExamples(t *testing.T) {
	ctx := context.Background()
	db := database.NewMemory()
	defer func() { _ = db.Close() }()

	first, err := Find(strategies.Integers(), func(v any) bool {
		return v.(int64) >= 10
	}, WithDatabase(db, "large-int"), WithSettings(func() settings.Settings {
		s := settings.Default()
		s.MaxExamples = 5000
		return s
	}()))
	require.NoError(t, err)
	require.Equal(t, int64(10), first)

	stored, err := db.Fetch(ctx, "large-int")
	require.NoError(t, err)
	require.Len(t, stored, 1, "the minimized example is saved")

	// A second run sees the stored example before drawing anything.
	var firstSeen any
	second, err := Find(strategies.Integers(), func(v any) bool {
		if firstSeen == nil {
			firstSeen = v
		}
		return v.(int64) >= 10
	}, WithDatabase(db, "large-int"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), second)
	assert.Equal(t, int64(10), firstSeen, "replay precedes fresh draws")
}

func TestFindSkipsUndecodableStoredExamples(t *testing.T) {
	ctx := context.Background()
	db := database.NewMemory()
	defer func() { _ = db.Close() }()
	require.NoError(t, db.Save(ctx, "k", "not an integer"))
	require.NoError(t, db.Save(ctx, "k", int64(10)))

	got, err := Find(strategies.Integers(), func(v any) bool {
		return v.(int64) >= 10
	}, WithDatabase(db, "k"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), got)
}

func TestNewFinderDefaults(t *testing.T) {
	f, err := NewFinder()
	require.NoError(t, err)
	assert.NotNil(t, f.logger)
	assert.Nil(t, f.db)
	assert.Nil(t, f.metrics)
}
