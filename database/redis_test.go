package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickmorph/morph"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	db, err := NewRedis(RedisOptions{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRedisSaveFetchDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestRedis(t)

	got, err := db.Fetch(ctx, "prop")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, db.Save(ctx, "prop", int64(1)))
	require.NoError(t, db.Save(ctx, "prop", int64(1)), "duplicate save is a no-op")
	require.NoError(t, db.Save(ctx, "prop", []morph.Basic{"a"}))

	got, err = db.Fetch(ctx, "prop")
	require.NoError(t, err)
	assert.Equal(t, []morph.Basic{int64(1), []morph.Basic{"a"}}, got)

	require.NoError(t, db.Delete(ctx, "prop", int64(1)))
	assert.ErrorIs(t, db.Delete(ctx, "prop", int64(1)), ErrNotFound)

	got, err = db.Fetch(ctx, "prop")
	require.NoError(t, err)
	assert.Equal(t, []morph.Basic{[]morph.Basic{"a"}}, got)
}

func TestRedisKeyPrefixIsolation(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	a, err := NewRedis(RedisOptions{URL: "redis://" + mr.Addr(), KeyPrefix: "a"})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()
	b, err := NewRedis(RedisOptions{URL: "redis://" + mr.Addr(), KeyPrefix: "b"})
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	require.NoError(t, a.Save(ctx, "prop", int64(1)))

	got, err := b.Fetch(ctx, "prop")
	require.NoError(t, err)
	assert.Empty(t, got, "prefixes namespace the stored examples")
}

func TestRedisInvalidKey(t *testing.T) {
	ctx := context.Background()
	db := newTestRedis(t)
	assert.ErrorIs(t, db.Save(ctx, "", int64(1)), ErrInvalidKey)
}

func TestRedisBadURL(t *testing.T) {
	_, err := NewRedis(RedisOptions{URL: "://not-a-url"})
	assert.Error(t, err)
}
