package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_FetchesOnceThenServesCache(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()
	calls := 0
	fetch := func(dest *item) func() error {
		return func() error {
			calls++
			*dest = item{ID: 1, Name: "first"}
			return nil
		}
	}

	var a item
	require.NoError(t, Aside(ctx, UserKey(1), &a, UserTTL, fetch(&a)))
	var b item
	require.NoError(t, Aside(ctx, UserKey(1), &b, UserTTL, fetch(&b)))

	assert.Equal(t, 1, calls)
	assert.Equal(t, "first", b.Name)
	assert.True(t, mr.Exists("user:1"))
	assert.Equal(t, UserTTL, mr.TTL("user:1"))
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := useMiniredis(t)
	boom := errors.New("boom")

	var v item
	err := Aside(context.Background(), PostKey(3), &v, PostTTL, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("post:3"))
}

func TestAside_CacheUnavailable(t *testing.T) {
	mr := useMiniredis(t)
	mr.Close()

	var v item
	err := Aside(context.Background(), PostKey(4), &v, PostTTL, func() error {
		v = item{ID: 4}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(4), v.ID)
}

func TestAside_Disabled(t *testing.T) {
	SetClient(nil)
	calls := 0
	var v item
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(context.Background(), UserKey(1), &v, time.Minute, func() error {
			calls++
			return nil
		}))
	}
	assert.Equal(t, 2, calls)
}

func TestInvalidate(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()
	require.NoError(t, SetJSON(ctx, UserKey(1), item{ID: 1}, time.Minute))
	require.NoError(t, SetJSON(ctx, UserKey(2), item{ID: 2}, time.Minute))
	require.NoError(t, SetJSON(ctx, PostKey(1), item{ID: 1}, time.Minute))

	InvalidateUsers(ctx, 1, 2)
	assert.False(t, mr.Exists("user:1"))
	assert.False(t, mr.Exists("user:2"))
	assert.True(t, mr.Exists("post:1"))

	InvalidatePosts(ctx, 1)
	assert.False(t, mr.Exists("post:1"))
}

func TestInitRedis_EmptyAddressDisablesCache(t *testing.T) {
	InitRedis("")
	assert.Nil(t, GetClient())

	InitRedis("redis://%%invalid")
	assert.Nil(t, GetClient())
}
