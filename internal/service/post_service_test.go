package service

import (
	"context"
	"testing"

	"inkwell/internal/admin"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_StampsAuthor(t *testing.T) {
	t.Parallel()

	var saved *models.Post
	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 11
		saved = p
		return nil
	}

	svc := NewPostService(postRepo, noopUserRepo())
	post, err := svc.CreatePost(context.Background(), 4, admin.State{
		"title":        "Hello World",
		"slug":         "hello-world",
		"content":      "<p>Hi</p>",
		"published_at": "2024-05-01T10:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(11), post.ID)
	require.NotNil(t, saved)
	assert.Equal(t, uint(4), saved.UserID)
	assert.Equal(t, "hello-world", saved.Slug)
	require.NotNil(t, saved.PublishedAt)
	assert.Equal(t, 2024, saved.PublishedAt.Year())
}

func TestPostService_CreatePost_DerivesMissingSlug(t *testing.T) {
	t.Parallel()

	var saved *models.Post
	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		saved = p
		return nil
	}
	svc := NewPostService(postRepo, noopUserRepo())

	_, err := svc.CreatePost(context.Background(), 1, admin.State{"title": "Hello World", "content": "x"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", saved.Slug)

	_, err = svc.CreatePost(context.Background(), 1, admin.State{"title": "Hello World", "slug": "kept", "content": "x"})
	require.NoError(t, err)
	assert.Equal(t, "kept", saved.Slug)
}

func TestPostService_UpdatePost_TitleOnlyRewritesSlug(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, Title: "Old", Slug: "old", Content: "x", UserID: 2}, nil
	}
	var slug string
	var cols []string
	postRepo.updateFn = func(_ context.Context, p *models.Post, columns []string) error {
		slug, cols = p.Slug, columns
		return nil
	}

	svc := NewPostService(postRepo, noopUserRepo())
	_, err := svc.UpdatePost(context.Background(), 5, admin.State{"title": "New Title", "content": "x"})
	require.NoError(t, err)
	assert.Equal(t, "new-title", slug)
	assert.Contains(t, cols, "slug")
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	t.Run("slug taken", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.slugTakenFn = func(_ context.Context, slug string, _ uint) (bool, error) {
			return slug == "hello-world", nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.CreatePost(context.Background(), 1, admin.State{
			"title": "Hello World", "slug": "hello-world", "content": "x",
		})
		appErr := assertValidationError(t, err)
		assert.Equal(t, "The slug has already been taken.", appErr.Fields["slug"])
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		_, err := svc.CreatePost(context.Background(), 1, admin.State{})
		appErr := assertValidationError(t, err)
		assert.Len(t, appErr.Fields, 3)
	})

	t.Run("author gone", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewPostService(noopPostRepo(), userRepo)
		_, err := svc.CreatePost(context.Background(), 1, admin.State{"title": "a", "slug": "a", "content": "a"})
		assert.True(t, models.IsNotFound(err))
	})
}

func TestPostService_UpdatePost_ExcludesSelfFromSlugCheck(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, Title: "Hello", Slug: "hello", UserID: 2}, nil
	}
	postRepo.slugTakenFn = func(_ context.Context, _ string, exceptID uint) (bool, error) {
		return exceptID != 5, nil
	}
	var cols []string
	postRepo.updateFn = func(_ context.Context, p *models.Post, columns []string) error {
		cols = columns
		assert.Equal(t, uint(2), p.UserID)
		assert.Nil(t, p.PublishedAt)
		return nil
	}

	svc := NewPostService(postRepo, noopUserRepo())
	_, err := svc.UpdatePost(context.Background(), 5, admin.State{
		"title": "Hello", "slug": "hello", "content": "body", "published_at": "",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "slug", "content", "published_at"}, cols)
}

func TestPostService_UpdateFormState(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopUserRepo())
	state := admin.State{"title": "", "slug": "custom-slug"}

	next, err := svc.UpdateFormState(state, "title", "Hello World")
	require.NoError(t, err)
	assert.Equal(t, "hello-world", next["slug"])
	assert.Equal(t, "custom-slug", state["slug"])

	next, err = svc.UpdateFormState(next, "slug", "my-slug")
	require.NoError(t, err)
	assert.Equal(t, "my-slug", next["slug"])

	_, err = svc.UpdateFormState(next, "nope", "x")
	assertValidationError(t, err)
}

func TestPostService_BulkUserPosts_ScopesToOwner(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.ownedByFn = func(_ context.Context, column string, owner uint, ids []uint) ([]uint, error) {
		assert.Equal(t, "user_id", column)
		assert.Equal(t, uint(3), owner)
		return ids[:1], nil
	}
	var deleted []uint
	postRepo.deleteFn = func(_ context.Context, ids []uint) (int64, error) {
		deleted = ids
		return int64(len(ids)), nil
	}

	svc := NewPostService(postRepo, noopUserRepo())
	n, err := svc.BulkUserPosts(context.Background(), 3, admin.ActionDelete, []uint{10, 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, []uint{10}, deleted)
}

func TestPostService_BulkPosts_RestoreAndForceDelete(t *testing.T) {
	t.Parallel()

	var calls []string
	postRepo := noopPostRepo()
	postRepo.restoreFn = func(_ context.Context, ids []uint) (int64, error) {
		calls = append(calls, "restore")
		return int64(len(ids)), nil
	}
	postRepo.forceDeleteFn = func(_ context.Context, ids []uint) (int64, error) {
		calls = append(calls, "force_delete")
		return int64(len(ids)), nil
	}

	svc := NewPostService(postRepo, noopUserRepo())
	_, err := svc.BulkPosts(context.Background(), admin.ActionRestore, []uint{1})
	require.NoError(t, err)
	_, err = svc.BulkPosts(context.Background(), admin.ActionForceDelete, []uint{1})
	require.NoError(t, err)
	assert.Equal(t, []string{"restore", "force_delete"}, calls)
}
