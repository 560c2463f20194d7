package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Lifecycle
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, q ListQuery) ([]models.Post, int64, error)
	Update(ctx context.Context, post *models.Post, columns ...string) error
	Exists(ctx context.Context, id uint) (bool, error)
	SlugTaken(ctx context.Context, slug string, exceptID uint) (bool, error)
	Options(ctx context.Context, search string, limit int) ([]Option, error)
}

type postRepository struct {
	softDeletes
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{
		db: db,
		softDeletes: softDeletes{
			db:       db,
			model:    &models.Post{},
			table:    "posts",
			onChange: func(ctx context.Context, ids []uint) { cache.InvalidatePosts(ctx, ids...) },
		},
	}
}

const slugTakenMessage = "The slug has already been taken."

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return writeError(err, "slug", slugTakenMessage)
	}
	return nil
}

// GetByID includes soft-deleted posts. The row is cached; the comment count
// is always read live.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).Unscoped().First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ?", id).
		Count(&post.CommentsCount).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// commentsCountSelect counts the non-trashed comments of each post.
const commentsCountSelect = "posts.*, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) AS comments_count"

func (r *postRepository) List(ctx context.Context, q ListQuery) ([]models.Post, int64, error) {
	base := scopeTrashed(r.db.WithContext(ctx).Model(&models.Post{}), "posts", q.Trashed)
	if q.UserID != 0 {
		base = base.Where("posts.user_id = ?", q.UserID)
	}
	base = scopeSearch(base, q.Search, q.SearchExprs)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []models.Post
	err := page(scopeOrder(base.Select(commentsCountSelect), "posts", q), q).Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post, columns ...string) error {
	err := r.db.WithContext(ctx).Unscoped().Model(post).Select(withUpdatedAt(columns)).Updates(post).Error
	if err != nil {
		return writeError(err, "slug", slugTakenMessage)
	}
	cache.InvalidatePosts(ctx, post.ID)
	return nil
}

// Exists reports whether an active post with id exists.
func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// SlugTaken checks every post, trashed included, except exceptID.
func (r *postRepository) SlugTaken(ctx context.Context, slug string, exceptID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Unscoped().Model(&models.Post{}).Where("slug = ?", slug)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Options(ctx context.Context, search string, limit int) ([]Option, error) {
	var posts []models.Post
	q := scopeSearch(r.db.WithContext(ctx).Model(&models.Post{}), search, []string{"posts.title"})
	if err := q.Order("posts.title ASC").Limit(ListQuery{Limit: limit}.limit()).Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	opts := make([]Option, len(posts))
	for i, p := range posts {
		opts[i] = Option{Value: p.ID, Label: p.Title}
	}
	return opts, nil
}
