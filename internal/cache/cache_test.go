package cache_test

import (
	"context"
	"testing"
	"time"

	"hackhub/internal/cache"
	"hackhub/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, ttl time.Duration) (*cache.PublicList, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return cache.NewWithClient(rdb, ttl), mr
}

func TestPublicListRoundTrip(t *testing.T) {
	c, _ := newCache(t, time.Minute)
	ctx := context.Background()

	_, ok, err := c.GetPublic(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	in := []models.Hackathon{{
		ID: "a", Title: "Code Sprint", Tags: []string{"AI"}, Status: models.StatusUpcoming,
		IsVerified: true, StartDate: start, EndDate: start.AddDate(0, 0, 2),
	}}
	require.NoError(t, c.SetPublic(ctx, in))

	out, ok, err := c.GetPublic(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in, out)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.GetPublic(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPublicListEmptyIsCached(t *testing.T) {
	c, _ := newCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetPublic(ctx, nil))
	out, ok, err := c.GetPublic(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, out)
}

func TestPublicListExpires(t *testing.T) {
	c, mr := newCache(t, 10*time.Second)
	ctx := context.Background()

	require.NoError(t, c.SetPublic(ctx, []models.Hackathon{{ID: "a"}}))
	mr.FastForward(11 * time.Second)

	_, ok, err := c.GetPublic(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}
