package server

import (
	"inkwell/internal/admin"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/resources"

	"github.com/gofiber/fiber/v2"
)

// ListComments handles GET /api/admin/comments
func (s *Server) ListComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return listTable(c, resources.CommentTable(), nil, func(q repository.ListQuery) ([]models.Comment, int64, error) {
		return s.commentService.ListComments(ctx, q)
	})
}

// CreateComment handles POST /api/admin/comments
// Body: the comment form plus post_id.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	state, err := parseState(c)
	if err != nil {
		return respondError(c, err)
	}
	comment, err := s.commentService.CreateComment(c.UserContext(), state)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComment handles GET /api/admin/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	comment, err := s.commentService.GetComment(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// UpdateComment handles PUT /api/admin/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	state, err := parseState(c)
	if err != nil {
		return respondError(c, err)
	}
	comment, err := s.commentService.UpdateComment(c.UserContext(), id, state)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/admin/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.commentService.DeleteComment(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkComments handles POST /api/admin/comments/bulk/:action
func (s *Server) BulkComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return bulkTable(c, resources.CommentTable(), func(kind admin.ActionKind, ids []uint) (int64, error) {
		return s.commentService.BulkComments(ctx, kind, ids)
	})
}
