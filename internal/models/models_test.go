package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDerivedBooleans(t *testing.T) {
	t.Parallel()

	now := time.Now()

	assert.False(t, Post{}.Published())
	assert.True(t, Post{PublishedAt: &now}.Published())

	assert.False(t, Comment{}.Approved())
	assert.True(t, Comment{ApprovedAt: &now}.Approved())

	assert.False(t, User{}.Verified())
	assert.True(t, User{EmailVerifiedAt: &now}.Verified())
}

func TestTrashed(t *testing.T) {
	t.Parallel()

	deleted := gorm.DeletedAt{Time: time.Now(), Valid: true}
	assert.True(t, Post{DeletedAt: deleted}.Trashed())
	assert.False(t, Comment{}.Trashed())
	assert.True(t, User{DeletedAt: deleted}.Trashed())
}

func TestAppError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error: boom", err.Error())

	assert.True(t, IsNotFound(NewNotFoundError("Post", 3)))
	assert.False(t, IsNotFound(NewValidationError("bad")))
	assert.False(t, IsNotFound(cause))

	fieldErr := NewFieldValidationError(map[string]string{"slug": "taken"})
	assert.Equal(t, CodeValidation, fieldErr.Code)
	assert.Equal(t, "taken", fieldErr.Fields["slug"])
}
