package service

import (
	"context"
	"log/slog"

	"inkwell/internal/admin"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/resources"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) uniqueEmail(exceptID uint) admin.UniqueFunc {
	return func(ctx context.Context, field, value string) (bool, error) {
		if field != "email" {
			return false, nil
		}
		return s.userRepo.EmailTaken(ctx, value, exceptID)
	}
}

func applyUser(u *models.User, values admin.State) {
	for k, v := range values {
		switch k {
		case "name":
			u.Name = v
		case "email":
			u.Email = v
		case "password":
			u.Password = v
		case "email_verified_at":
			u.EmailVerifiedAt = timestamp(v)
		}
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, q repository.ListQuery) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, q)
}

func (s *UserService) CreateUser(ctx context.Context, state admin.State) (*models.User, error) {
	form := resources.UserForm()
	values, err := prepare(ctx, form, admin.OperationCreate, state, s.uniqueEmail(0))
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	applyUser(user, values)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	recordMutation(ctx, resources.Users, "create", slog.Uint64("id", uint64(user.ID)))
	return s.userRepo.GetByID(ctx, user.ID)
}

// UpdateUser saves the edit form. A blank password keeps the stored hash.
func (s *UserService) UpdateUser(ctx context.Context, id uint, state admin.State) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	form := resources.UserForm()
	values, err := prepare(ctx, form, admin.OperationEdit, state, s.uniqueEmail(id))
	if err != nil {
		return nil, err
	}

	applyUser(user, values)
	if err := s.userRepo.Update(ctx, user, columns(form, values)...); err != nil {
		return nil, err
	}
	recordMutation(ctx, resources.Users, "update", slog.Uint64("id", uint64(id)))
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	recordMutation(ctx, resources.Users, "delete", slog.Uint64("id", uint64(id)))
	return nil
}

// RestoreUser brings back a soft-deleted user. The users table has no
// trashed filter, so a user's lifecycle is reached by id.
func (s *UserService) RestoreUser(ctx context.Context, id uint) (*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.Restore(ctx, id); err != nil {
		return nil, err
	}
	recordMutation(ctx, resources.Users, string(admin.ActionRestore), slog.Uint64("id", uint64(id)))
	return s.userRepo.GetByID(ctx, id)
}

// ForceDeleteUser removes a user permanently. Their posts and comments keep
// the dangling user_id.
func (s *UserService) ForceDeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.userRepo.ForceDelete(ctx, id); err != nil {
		return err
	}
	recordMutation(ctx, resources.Users, string(admin.ActionForceDelete), slog.Uint64("id", uint64(id)))
	return nil
}

func (s *UserService) BulkUsers(ctx context.Context, kind admin.ActionKind, ids []uint) (int64, error) {
	return applyBulk(ctx, resources.Users, s.userRepo, kind, ids, nil)
}

// UserOptions lists selectable authors by name.
func (s *UserService) UserOptions(ctx context.Context, search string, limit int) ([]repository.Option, error) {
	return s.userRepo.Options(ctx, search, limit)
}
