package server

import (
	"inkwell/internal/admin"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/resources"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /api/admin/users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return listTable(c, resources.UserTable(), nil, func(q repository.ListQuery) ([]models.User, int64, error) {
		return s.userService.ListUsers(ctx, q)
	})
}

// CreateUser handles POST /api/admin/users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	state, err := parseState(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := s.userService.CreateUser(c.UserContext(), state)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser handles GET /api/admin/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PUT /api/admin/users/:id
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	state, err := parseState(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := s.userService.UpdateUser(c.UserContext(), id, state)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/admin/users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.userService.DeleteUser(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RestoreUser handles POST /api/admin/users/:id/restore
func (s *Server) RestoreUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.userService.RestoreUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// ForceDeleteUser handles DELETE /api/admin/users/:id/force
func (s *Server) ForceDeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.userService.ForceDeleteUser(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkUsers handles POST /api/admin/users/bulk/:action
func (s *Server) BulkUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return bulkTable(c, resources.UserTable(), func(kind admin.ActionKind, ids []uint) (int64, error) {
		return s.userService.BulkUsers(ctx, kind, ids)
	})
}

// ListUserPosts handles GET /api/admin/users/:id/posts
func (s *Server) ListUserPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if _, err := s.userService.GetUser(ctx, id); err != nil {
		return respondError(c, err)
	}
	scope := func(q *repository.ListQuery) { q.UserID = id }
	return listTable(c, resources.UserPosts().Table, scope, func(q repository.ListQuery) ([]models.Post, int64, error) {
		return s.postService.ListPosts(ctx, q)
	})
}

// CreateUserPost handles POST /api/admin/users/:id/posts
// The parent user becomes the author.
func (s *Server) CreateUserPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	state, err := parseState(c)
	if err != nil {
		return respondError(c, err)
	}
	post, err := s.postService.CreatePost(c.UserContext(), id, state)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// BulkUserPosts handles POST /api/admin/users/:id/posts/bulk/:action
func (s *Server) BulkUserPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return bulkTable(c, resources.UserPosts().Table, func(kind admin.ActionKind, ids []uint) (int64, error) {
		return s.postService.BulkUserPosts(ctx, id, kind, ids)
	})
}

// ListUserComments handles GET /api/admin/users/:id/comments
func (s *Server) ListUserComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if _, err := s.userService.GetUser(ctx, id); err != nil {
		return respondError(c, err)
	}
	scope := func(q *repository.ListQuery) { q.UserID = id }
	return listTable(c, resources.UserComments().Table, scope, func(q repository.ListQuery) ([]models.Comment, int64, error) {
		return s.commentService.ListComments(ctx, q)
	})
}

// CreateUserComment handles POST /api/admin/users/:id/comments
func (s *Server) CreateUserComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	state, err := parseState(c)
	if err != nil {
		return respondError(c, err)
	}
	comment, err := s.commentService.CreateUserComment(c.UserContext(), id, state)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// BulkUserComments handles POST /api/admin/users/:id/comments/bulk/:action
func (s *Server) BulkUserComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return bulkTable(c, resources.UserComments().Table, func(kind admin.ActionKind, ids []uint) (int64, error) {
		return s.commentService.BulkUserComments(ctx, id, kind, ids)
	})
}
