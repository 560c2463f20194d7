package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix = "user:%d"
	PostKeyPrefix = "post:%d"
)

const (
	UserTTL = 5 * time.Minute
	PostTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// Invalidate drops keys. It is a no-op when caching is disabled.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

func InvalidateUsers(ctx context.Context, ids ...uint) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = UserKey(id)
	}
	Invalidate(ctx, keys...)
}

func InvalidatePosts(ctx context.Context, ids ...uint) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = PostKey(id)
	}
	Invalidate(ctx, keys...)
}
