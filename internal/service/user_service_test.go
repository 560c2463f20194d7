package service

import (
	"context"
	"testing"

	"inkwell/internal/admin"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_CreateUser_HashesPassword(t *testing.T) {
	t.Parallel()

	var saved *models.User
	repo := noopUserRepo()
	repo.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 7
		saved = u
		return nil
	}

	svc := NewUserService(repo)
	_, err := svc.CreateUser(context.Background(), admin.State{
		"name":              "Jane",
		"email":             "jane@example.com",
		"password":          "secret-pass",
		"email_verified_at": "",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Jane", saved.Name)
	assert.Nil(t, saved.EmailVerifiedAt)
	assert.NotEqual(t, "secret-pass", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("secret-pass")))
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	t.Parallel()

	t.Run("password required on create", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		_, err := svc.CreateUser(context.Background(), admin.State{"name": "Jane", "email": "jane@example.com"})
		appErr := assertValidationError(t, err)
		assert.Equal(t, "The password field is required.", appErr.Fields["password"])
	})

	t.Run("email taken", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.emailTakenFn = func(_ context.Context, email string, exceptID uint) (bool, error) {
			assert.Equal(t, uint(0), exceptID)
			return email == "jane@example.com", nil
		}
		repo.createFn = func(_ context.Context, _ *models.User) error {
			t.Fatal("create must not run on invalid input")
			return nil
		}
		svc := NewUserService(repo)
		_, err := svc.CreateUser(context.Background(), admin.State{
			"name": "Jane", "email": "jane@example.com", "password": "secret",
		})
		appErr := assertValidationError(t, err)
		assert.Equal(t, "The email has already been taken.", appErr.Fields["email"])
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		_, err := svc.CreateUser(context.Background(), admin.State{
			"name": "Jane", "email": "not-an-email", "password": "secret",
		})
		appErr := assertValidationError(t, err)
		assert.Contains(t, appErr.Fields, "email")
	})
}

func TestUserService_UpdateUser_BlankPasswordKeepsHash(t *testing.T) {
	t.Parallel()

	var gotColumns []string
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Name: "Old", Email: "old@example.com"}, nil
	}
	repo.emailTakenFn = func(_ context.Context, _ string, exceptID uint) (bool, error) {
		assert.Equal(t, uint(3), exceptID)
		return false, nil
	}
	repo.updateFn = func(_ context.Context, u *models.User, cols []string) error {
		gotColumns = cols
		assert.Equal(t, "New", u.Name)
		assert.Empty(t, u.Password)
		return nil
	}

	svc := NewUserService(repo)
	_, err := svc.UpdateUser(context.Background(), 3, admin.State{
		"name": "New", "email": "old@example.com", "password": "  ", "email_verified_at": "2024-05-01T10:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "email", "email_verified_at"}, gotColumns)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	repo.deleteFn = func(_ context.Context, _ []uint) (int64, error) {
		t.Fatal("delete must not run for a missing user")
		return 0, nil
	}

	err := NewUserService(repo).DeleteUser(context.Background(), 9)
	assert.True(t, models.IsNotFound(err))
}

func TestUserService_BulkUsers(t *testing.T) {
	t.Parallel()

	var deleted []uint
	repo := noopUserRepo()
	repo.deleteFn = func(_ context.Context, ids []uint) (int64, error) {
		deleted = ids
		return int64(len(ids)), nil
	}
	svc := NewUserService(repo)

	n, err := svc.BulkUsers(context.Background(), admin.ActionDelete, []uint{1, 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, []uint{1, 2}, deleted)

	_, err = svc.BulkUsers(context.Background(), admin.ActionDelete, nil)
	assertValidationError(t, err)

	_, err = svc.BulkUsers(context.Background(), admin.ActionKind("archive"), []uint{1})
	assertValidationError(t, err)
}

func TestUserService_RestoreAndForceDelete(t *testing.T) {
	t.Parallel()

	var restored, purged []uint
	repo := noopUserRepo()
	repo.restoreFn = func(_ context.Context, ids []uint) (int64, error) {
		restored = ids
		return int64(len(ids)), nil
	}
	repo.forceDeleteFn = func(_ context.Context, ids []uint) (int64, error) {
		purged = ids
		return int64(len(ids)), nil
	}
	svc := NewUserService(repo)

	user, err := svc.RestoreUser(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, uint(4), user.ID)
	assert.Equal(t, []uint{4}, restored)

	require.NoError(t, svc.ForceDeleteUser(context.Background(), 5))
	assert.Equal(t, []uint{5}, purged)
}

func TestUserService_ForceDeleteUser_NotFound(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	repo.forceDeleteFn = func(_ context.Context, _ []uint) (int64, error) {
		t.Fatal("force delete must not run for a missing user")
		return 0, nil
	}

	err := NewUserService(repo).ForceDeleteUser(context.Background(), 9)
	assert.True(t, models.IsNotFound(err))
}
