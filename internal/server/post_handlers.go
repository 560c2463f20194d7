package server

import (
	"inkwell/internal/admin"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/resources"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/admin/posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return listTable(c, resources.PostTable(), nil, func(q repository.ListQuery) ([]models.Post, int64, error) {
		return s.postService.ListPosts(ctx, q)
	})
}

// CreatePost handles POST /api/admin/posts
// The acting user becomes the author.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	state, err := parseState(c)
	if err != nil {
		return respondError(c, err)
	}
	post, err := s.postService.CreatePost(c.UserContext(), middleware.CurrentUserID(c), state)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/admin/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /api/admin/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	state, err := parseState(c)
	if err != nil {
		return respondError(c, err)
	}
	post, err := s.postService.UpdatePost(c.UserContext(), id, state)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/admin/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkPosts handles POST /api/admin/posts/bulk/:action
func (s *Server) BulkPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return bulkTable(c, resources.PostTable(), func(kind admin.ActionKind, ids []uint) (int64, error) {
		return s.postService.BulkPosts(ctx, kind, ids)
	})
}

// ListPostComments handles GET /api/admin/posts/:id/comments
func (s *Server) ListPostComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if _, err := s.postService.GetPost(ctx, id); err != nil {
		return respondError(c, err)
	}
	scope := func(q *repository.ListQuery) { q.PostID = id }
	return listTable(c, resources.PostComments().Table, scope, func(q repository.ListQuery) ([]models.Comment, int64, error) {
		return s.commentService.ListComments(ctx, q)
	})
}

// CreatePostComment handles POST /api/admin/posts/:id/comments
func (s *Server) CreatePostComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	state, err := parseState(c)
	if err != nil {
		return respondError(c, err)
	}
	comment, err := s.commentService.CreatePostComment(c.UserContext(), id, state)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// BulkPostComments handles POST /api/admin/posts/:id/comments/bulk/:action
func (s *Server) BulkPostComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return bulkTable(c, resources.PostComments().Table, func(kind admin.ActionKind, ids []uint) (int64, error) {
		return s.commentService.BulkPostComments(ctx, id, kind, ids)
	})
}
