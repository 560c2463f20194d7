package service

import (
	"context"
	"log/slog"

	"inkwell/internal/admin"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/resources"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

func applyComment(c *models.Comment, values admin.State) {
	for k, v := range values {
		switch k {
		case "user_id":
			c.UserID = key(v)
		case "post_id":
			c.PostID = key(v)
		case "content":
			c.Content = v
		case "approved_at":
			c.ApprovedAt = timestamp(v)
		}
	}
}

// references checks the author and post selections of values against
// active records. Unchanged selections of existing comments are accepted.
func (s *CommentService) references(ctx context.Context, form admin.Form, values admin.State, existing *models.Comment) error {
	author := referenceCheck{field: "user_id", exists: s.userRepo.Exists}
	post := referenceCheck{field: "post_id", exists: s.postRepo.Exists}
	if existing != nil {
		author.current = existing.UserID
		post.current = existing.PostID
	}
	return checkReferences(ctx, form, values, author, post)
}

func (s *CommentService) create(ctx context.Context, form admin.Form, state admin.State, comment *models.Comment) (*models.Comment, error) {
	values, err := prepare(ctx, form, admin.OperationCreate, state, nil)
	if err != nil {
		return nil, err
	}
	if err := s.references(ctx, form, values, nil); err != nil {
		return nil, err
	}

	applyComment(comment, values)
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	recordMutation(ctx, resources.Comments, "create",
		slog.Uint64("id", uint64(comment.ID)),
		slog.Uint64("post_id", uint64(comment.PostID)),
		slog.Uint64("user_id", uint64(comment.UserID)),
	)
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// ListComments lists comments; q.PostID and q.UserID scope the listing.
func (s *CommentService) ListComments(ctx context.Context, q repository.ListQuery) ([]models.Comment, int64, error) {
	return s.commentRepo.List(ctx, q)
}

// CreateComment saves the top-level create form, which also requires the
// parent post.
func (s *CommentService) CreateComment(ctx context.Context, state admin.State) (*models.Comment, error) {
	fields := append(resources.CommentForm().Fields, resources.CommentPostField())
	return s.create(ctx, admin.NewForm(fields...), state, &models.Comment{})
}

// CreatePostComment saves the create form of a post's comments relation.
func (s *CommentService) CreatePostComment(ctx context.Context, postID uint, state admin.State) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.create(ctx, resources.PostComments().Form, state, &models.Comment{PostID: postID})
}

// CreateUserComment saves the create form of a user's comments relation;
// the user is the author.
func (s *CommentService) CreateUserComment(ctx context.Context, userID uint, state admin.State) (*models.Comment, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.create(ctx, resources.UserComments().Form, state, &models.Comment{UserID: userID})
}

func (s *CommentService) UpdateComment(ctx context.Context, id uint, state admin.State) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	form := resources.CommentForm()
	values, err := prepare(ctx, form, admin.OperationEdit, state, nil)
	if err != nil {
		return nil, err
	}
	if err := s.references(ctx, form, values, comment); err != nil {
		return nil, err
	}

	applyComment(comment, values)
	if err := s.commentRepo.Update(ctx, comment, columns(form, values)...); err != nil {
		return nil, err
	}
	recordMutation(ctx, resources.Comments, "update", slog.Uint64("id", uint64(id)))
	return s.commentRepo.GetByID(ctx, id)
}

func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	if _, err := s.commentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.commentRepo.Delete(ctx, id); err != nil {
		return err
	}
	recordMutation(ctx, resources.Comments, "delete", slog.Uint64("id", uint64(id)))
	return nil
}

func (s *CommentService) BulkComments(ctx context.Context, kind admin.ActionKind, ids []uint) (int64, error) {
	return applyBulk(ctx, resources.Comments, s.commentRepo, kind, ids, nil)
}

// BulkPostComments applies a bulk action to the listed comments of postID.
func (s *CommentService) BulkPostComments(ctx context.Context, postID uint, kind admin.ActionKind, ids []uint) (int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return 0, err
	}
	return applyBulk(ctx, resources.Comments, s.commentRepo, kind, ids, &Owner{Column: "post_id", ID: postID})
}

// BulkUserComments applies a bulk action to the listed comments by userID.
func (s *CommentService) BulkUserComments(ctx context.Context, userID uint, kind admin.ActionKind, ids []uint) (int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return 0, err
	}
	return applyBulk(ctx, resources.Comments, s.commentRepo, kind, ids, &Owner{Column: "user_id", ID: userID})
}
