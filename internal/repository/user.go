package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Lifecycle
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, q ListQuery) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User, columns ...string) error
	Exists(ctx context.Context, id uint) (bool, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	Options(ctx context.Context, search string, limit int) ([]Option, error)
}

type userRepository struct {
	softDeletes
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
		softDeletes: softDeletes{
			db:       db,
			model:    &models.User{},
			table:    "users",
			onChange: func(ctx context.Context, ids []uint) { cache.InvalidateUsers(ctx, ids...) },
		},
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return writeError(err, "email", "The email has already been taken.")
	}
	return nil
}

// GetByID includes soft-deleted users. The cached copy never carries the
// password hash.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).Unscoped().First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, q ListQuery) ([]models.User, int64, error) {
	base := scopeTrashed(r.db.WithContext(ctx).Model(&models.User{}), "users", q.Trashed)
	base = scopeSearch(base, q.Search, q.SearchExprs)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	if err := page(scopeOrder(base, "users", q), q).Find(&users).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User, columns ...string) error {
	err := r.db.WithContext(ctx).Unscoped().Model(user).Select(withUpdatedAt(columns)).Updates(user).Error
	if err != nil {
		return writeError(err, "email", "The email has already been taken.")
	}
	cache.InvalidateUsers(ctx, user.ID)
	return nil
}

// Exists reports whether an active user with id exists.
func (r *userRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// EmailTaken checks every user, trashed included, except exceptID.
func (r *userRepository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Unscoped().Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *userRepository) Options(ctx context.Context, search string, limit int) ([]Option, error) {
	var users []models.User
	q := scopeSearch(r.db.WithContext(ctx).Model(&models.User{}), search, []string{"users.name"})
	if err := q.Order("users.name ASC").Limit(ListQuery{Limit: limit}.limit()).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	opts := make([]Option, len(users))
	for i, u := range users {
		opts[i] = Option{Value: u.ID, Label: u.Name}
	}
	return opts, nil
}
