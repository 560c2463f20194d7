package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"inkwell/internal/admin"
	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password is the plain password of every factory user.
const Password = "password"

var (
	seq          atomic.Uint64
	passwordHash = func() string {
		h, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		return string(h)
	}()
)

// Factory builds and persists domain entities with fake data.
type Factory struct {
	t  testing.TB
	db *gorm.DB
}

// NewFactory binds a factory to db.
func NewFactory(t testing.TB, db *gorm.DB) *Factory {
	return &Factory{t: t, db: db}
}

// BuildUser returns an unsaved user.
func BuildUser(overrides ...func(*models.User)) *models.User {
	n := seq.Add(1)
	now := time.Now()
	u := &models.User{
		Name:            gofakeit.Name(),
		Email:           fmt.Sprintf("user%d.%s", n, gofakeit.Email()),
		Password:        passwordHash,
		EmailVerifiedAt: &now,
	}
	for _, o := range overrides {
		o(u)
	}
	return u
}

// BuildPost returns an unsaved post by author with a slug derived from its
// title.
func BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	n := seq.Add(1)
	title := gofakeit.Sentence(4)
	p := &models.Post{
		Title:   title,
		Slug:    fmt.Sprintf("%s-%d", admin.Slugify(title), n),
		Content: gofakeit.Paragraph(2, 3, 8, "\n"),
		UserID:  author.ID,
	}
	for _, o := range overrides {
		o(p)
	}
	return p
}

// BuildComment returns an unsaved comment on post by author.
func BuildComment(post *models.Post, author *models.User, overrides ...func(*models.Comment)) *models.Comment {
	c := &models.Comment{
		Content: gofakeit.Sentence(12),
		PostID:  post.ID,
		UserID:  author.ID,
	}
	for _, o := range overrides {
		o(c)
	}
	return c
}

func (f *Factory) User(overrides ...func(*models.User)) *models.User {
	f.t.Helper()
	u := BuildUser(overrides...)
	require.NoError(f.t, f.db.Create(u).Error)
	return u
}

func (f *Factory) Post(author *models.User, overrides ...func(*models.Post)) *models.Post {
	f.t.Helper()
	p := BuildPost(author, overrides...)
	require.NoError(f.t, f.db.Create(p).Error)
	return p
}

func (f *Factory) Comment(post *models.Post, author *models.User, overrides ...func(*models.Comment)) *models.Comment {
	f.t.Helper()
	c := BuildComment(post, author, overrides...)
	require.NoError(f.t, f.db.Create(c).Error)
	return c
}

// Trash soft-deletes model.
func (f *Factory) Trash(model any) {
	f.t.Helper()
	require.NoError(f.t, f.db.Delete(model).Error)
}

// Purge removes model permanently.
func (f *Factory) Purge(model any) {
	f.t.Helper()
	require.NoError(f.t, f.db.Unscoped().Delete(model).Error)
}
