package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Lifecycle
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	List(ctx context.Context, q ListQuery) ([]models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment, columns ...string) error
}

type commentRepository struct {
	softDeletes
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{
		db:          db,
		softDeletes: softDeletes{db: db, model: &models.Comment{}, table: "comments"},
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// withRelations loads the parent post and author, trashed included. A nil
// relation after loading means the row no longer exists.
func withRelations(db *gorm.DB) *gorm.DB {
	unscoped := func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }
	return db.Preload("Post", unscoped).Preload("Author", unscoped)
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := withRelations(r.db.WithContext(ctx).Unscoped()).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) List(ctx context.Context, q ListQuery) ([]models.Comment, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Comment{}).
		Joins("LEFT JOIN users AS author ON author.id = comments.user_id")
	base = scopeTrashed(base, "comments", q.Trashed)
	if q.UserID != 0 {
		base = base.Where("comments.user_id = ?", q.UserID)
	}
	if q.PostID != 0 {
		base = base.Where("comments.post_id = ?", q.PostID)
	}
	base = scopeSearch(base, q.Search, q.SearchExprs)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var comments []models.Comment
	err := page(scopeOrder(withRelations(base.Select("comments.*")), "comments", q), q).Find(&comments).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment, columns ...string) error {
	err := r.db.WithContext(ctx).Unscoped().Model(comment).Select(withUpdatedAt(columns)).Updates(comment).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
