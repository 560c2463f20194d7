package repository

import (
	"context"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func TestPostRepository_CacheInvalidatedOnWrite(t *testing.T) {
	mr := useMiniredis(t)
	db := testutil.NewDB(t)
	f := testutil.NewFactory(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := f.Post(f.User())
	key := cache.PostKey(post.ID)

	_, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(key))

	post.Title = "Changed"
	require.NoError(t, repo.Update(ctx, post, "title"))
	assert.False(t, mr.Exists(key))

	loaded, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", loaded.Title)

	_, err = repo.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))

	loaded, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Trashed())
}

func TestUserRepository_CachedCopyOmitsPassword(t *testing.T) {
	mr := useMiniredis(t)
	db := testutil.NewDB(t)
	f := testutil.NewFactory(t, db)
	repo := NewUserRepository(db)

	user := f.User()
	_, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)

	raw, err := mr.Get(cache.UserKey(user.ID))
	require.NoError(t, err)
	assert.NotContains(t, raw, user.Password)
	assert.Contains(t, raw, user.Email)
}
