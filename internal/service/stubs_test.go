package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lifecycleStub is a stub for repository.Lifecycle.
type lifecycleStub struct {
	deleteFn      func(context.Context, []uint) (int64, error)
	restoreFn     func(context.Context, []uint) (int64, error)
	forceDeleteFn func(context.Context, []uint) (int64, error)
	ownedByFn     func(context.Context, string, uint, []uint) ([]uint, error)
}

func (s *lifecycleStub) Delete(ctx context.Context, ids ...uint) (int64, error) {
	return s.deleteFn(ctx, ids)
}
func (s *lifecycleStub) Restore(ctx context.Context, ids ...uint) (int64, error) {
	return s.restoreFn(ctx, ids)
}
func (s *lifecycleStub) ForceDelete(ctx context.Context, ids ...uint) (int64, error) {
	return s.forceDeleteFn(ctx, ids)
}
func (s *lifecycleStub) OwnedBy(ctx context.Context, column string, owner uint, ids ...uint) ([]uint, error) {
	return s.ownedByFn(ctx, column, owner, ids)
}

func noopLifecycle() lifecycleStub {
	count := func(_ context.Context, ids []uint) (int64, error) { return int64(len(ids)), nil }
	return lifecycleStub{
		deleteFn:      count,
		restoreFn:     count,
		forceDeleteFn: count,
		ownedByFn:     func(_ context.Context, _ string, _ uint, ids []uint) ([]uint, error) { return ids, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	lifecycleStub
	createFn     func(context.Context, *models.User) error
	getByIDFn    func(context.Context, uint) (*models.User, error)
	listFn       func(context.Context, repository.ListQuery) ([]models.User, int64, error)
	updateFn     func(context.Context, *models.User, []string) error
	existsFn     func(context.Context, uint) (bool, error)
	emailTakenFn func(context.Context, string, uint) (bool, error)
	optionsFn    func(context.Context, string, int) ([]repository.Option, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, q repository.ListQuery) ([]models.User, int64, error) {
	return s.listFn(ctx, q)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User, columns ...string) error {
	return s.updateFn(ctx, user, columns)
}
func (s *userRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *userRepoStub) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	return s.emailTakenFn(ctx, email, exceptID)
}
func (s *userRepoStub) Options(ctx context.Context, search string, limit int) ([]repository.Option, error) {
	return s.optionsFn(ctx, search, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		lifecycleStub: noopLifecycle(),
		createFn:      func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:     func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		listFn:        func(_ context.Context, _ repository.ListQuery) ([]models.User, int64, error) { return nil, 0, nil },
		updateFn:      func(_ context.Context, _ *models.User, _ []string) error { return nil },
		existsFn:      func(_ context.Context, _ uint) (bool, error) { return true, nil },
		emailTakenFn:  func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
		optionsFn:     func(_ context.Context, _ string, _ int) ([]repository.Option, error) { return nil, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	lifecycleStub
	createFn    func(context.Context, *models.Post) error
	getByIDFn   func(context.Context, uint) (*models.Post, error)
	listFn      func(context.Context, repository.ListQuery) ([]models.Post, int64, error)
	updateFn    func(context.Context, *models.Post, []string) error
	existsFn    func(context.Context, uint) (bool, error)
	slugTakenFn func(context.Context, string, uint) (bool, error)
	optionsFn   func(context.Context, string, int) ([]repository.Option, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, q repository.ListQuery) ([]models.Post, int64, error) {
	return s.listFn(ctx, q)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post, columns ...string) error {
	return s.updateFn(ctx, post, columns)
}
func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *postRepoStub) SlugTaken(ctx context.Context, slug string, exceptID uint) (bool, error) {
	return s.slugTakenFn(ctx, slug, exceptID)
}
func (s *postRepoStub) Options(ctx context.Context, search string, limit int) ([]repository.Option, error) {
	return s.optionsFn(ctx, search, limit)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		lifecycleStub: noopLifecycle(),
		createFn:      func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:     func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:        func(_ context.Context, _ repository.ListQuery) ([]models.Post, int64, error) { return nil, 0, nil },
		updateFn:      func(_ context.Context, _ *models.Post, _ []string) error { return nil },
		existsFn:      func(_ context.Context, _ uint) (bool, error) { return true, nil },
		slugTakenFn:   func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
		optionsFn:     func(_ context.Context, _ string, _ int) ([]repository.Option, error) { return nil, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	lifecycleStub
	createFn  func(context.Context, *models.Comment) error
	getByIDFn func(context.Context, uint) (*models.Comment, error)
	listFn    func(context.Context, repository.ListQuery) ([]models.Comment, int64, error)
	updateFn  func(context.Context, *models.Comment, []string) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) List(ctx context.Context, q repository.ListQuery) ([]models.Comment, int64, error) {
	return s.listFn(ctx, q)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment, columns ...string) error {
	return s.updateFn(ctx, comment, columns)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		lifecycleStub: noopLifecycle(),
		createFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:     func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listFn:        func(_ context.Context, _ repository.ListQuery) ([]models.Comment, int64, error) { return nil, 0, nil },
		updateFn:      func(_ context.Context, _ *models.Comment, _ []string) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	return appErr
}
