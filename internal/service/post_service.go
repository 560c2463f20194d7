package service

import (
	"context"
	"log/slog"

	"inkwell/internal/admin"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/resources"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (s *PostService) uniqueSlug(exceptID uint) admin.UniqueFunc {
	return func(ctx context.Context, field, value string) (bool, error) {
		if field != "slug" {
			return false, nil
		}
		return s.postRepo.SlugTaken(ctx, value, exceptID)
	}
}

func applyPost(p *models.Post, values admin.State) {
	for k, v := range values {
		switch k {
		case "title":
			p.Title = v
		case "slug":
			p.Slug = v
		case "content":
			p.Content = v
		case "published_at":
			p.PublishedAt = timestamp(v)
		}
	}
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts lists posts; q.UserID scopes the listing to one author.
func (s *PostService) ListPosts(ctx context.Context, q repository.ListQuery) ([]models.Post, int64, error) {
	return s.postRepo.List(ctx, q)
}

// CreatePost saves the create form with authorID as the owner. authorID is
// the acting user on the top-level page and the parent user under the
// user's posts relation.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, state admin.State) (*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	form := resources.PostForm()
	values, err := prepare(ctx, form, admin.OperationCreate, form.Derive(state), s.uniqueSlug(0))
	if err != nil {
		return nil, err
	}

	post := &models.Post{UserID: authorID}
	applyPost(post, values)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	recordMutation(ctx, resources.Posts, "create",
		slog.Uint64("id", uint64(post.ID)),
		slog.Uint64("user_id", uint64(authorID)),
	)
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) UpdatePost(ctx context.Context, id uint, state admin.State) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	form := resources.PostForm()
	values, err := prepare(ctx, form, admin.OperationEdit, form.Derive(state), s.uniqueSlug(id))
	if err != nil {
		return nil, err
	}

	applyPost(post, values)
	if err := s.postRepo.Update(ctx, post, columns(form, values)...); err != nil {
		return nil, err
	}
	recordMutation(ctx, resources.Posts, "update", slog.Uint64("id", uint64(id)))
	return s.postRepo.GetByID(ctx, id)
}

// UpdateFormState applies a field change to the post form, rewriting
// derived fields.
func (s *PostService) UpdateFormState(state admin.State, field, value string) (admin.State, error) {
	next, err := resources.PostForm().Update(state, field, value)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return next, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	recordMutation(ctx, resources.Posts, "delete", slog.Uint64("id", uint64(id)))
	return nil
}

func (s *PostService) BulkPosts(ctx context.Context, kind admin.ActionKind, ids []uint) (int64, error) {
	return applyBulk(ctx, resources.Posts, s.postRepo, kind, ids, nil)
}

// BulkUserPosts applies a bulk action to the listed posts authored by userID.
func (s *PostService) BulkUserPosts(ctx context.Context, userID uint, kind admin.ActionKind, ids []uint) (int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return 0, err
	}
	return applyBulk(ctx, resources.Posts, s.postRepo, kind, ids, &Owner{Column: "user_id", ID: userID})
}

// PostOptions lists selectable posts by title.
func (s *PostService) PostOptions(ctx context.Context, search string, limit int) ([]repository.Option, error) {
	return s.postRepo.Options(ctx, search, limit)
}
