package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pushp314/derive-duel-backend/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	db, err := Open("sqlite", "file::memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	year := -300
	p := models.Proof{Title: "Infinitude of primes", Difficulty: models.DifficultyEasy, Year: &year, Hints: []string{"Multiply", "Add one"}}
	require.NoError(t, db.Create(&p).Error)

	var got models.Proof
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, -300, *got.Year)
	assert.Equal(t, []string{"Multiply", "Add one"}, []string(got.Hints))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "")
	assert.Error(t, err)
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCache(client), mr
}

func TestCacheIncrWindow(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	n, err := c.Incr(ctx, "hints:p1:alice", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = c.Incr(ctx, "hints:p1:alice", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err := c.Count(ctx, "hints:p1:alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	mr.FastForward(2 * time.Hour)
	count, err = c.Count(ctx, "hints:p1:alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCacheSetGetInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "proofs:list:all", []string{"a", "b"}, time.Minute))
	var got []string
	require.NoError(t, c.Get(ctx, "proofs:list:all", &got))
	assert.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, c.Invalidate(ctx, "proofs:*"))
	assert.ErrorIs(t, c.Get(ctx, "proofs:list:all", &got), redis.Nil)
	assert.Equal(t, "ok", c.Ping(ctx))
}

func TestCacheDisabled(t *testing.T) {
	c := NewCache(nil)
	ctx := context.Background()
	assert.False(t, c.Enabled())
	assert.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var v int
	assert.ErrorIs(t, c.Get(ctx, "k", &v), redis.Nil)
	_, err := c.Incr(ctx, "k", time.Minute)
	assert.Error(t, err)
	assert.Equal(t, "not configured", c.Ping(ctx))
}
