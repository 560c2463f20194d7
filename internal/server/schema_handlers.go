package server

import (
	"time"

	"inkwell/internal/admin"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/resources"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

func parseOperation(c *fiber.Ctx) (admin.Operation, error) {
	op, err := admin.ParseOperation(c.Query("operation"))
	if err != nil {
		return "", models.NewValidationError(err.Error())
	}
	return op, nil
}

// GetMe handles GET /api/admin/me
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		if statusFor(err) == fiber.StatusNotFound {
			err = models.NewUnauthorizedError("Authenticated user no longer exists")
		}
		return respondError(c, err)
	}
	return c.JSON(user)
}

// ListResources handles GET /api/admin/resources
func (s *Server) ListResources(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"resources": resources.Specs()})
}

// GetResourceSchema handles GET /api/admin/:resource/schema
// Query: operation=create|edit resolves operation-scoped requirements;
// format=yaml switches the encoding.
func (s *Server) GetResourceSchema(c *fiber.Ctx) error {
	spec, ok := resources.Spec(c.Params("resource"))
	if !ok {
		return respondError(c, notFound("Unknown resource"))
	}
	if c.Query("operation") != "" {
		op, err := parseOperation(c)
		if err != nil {
			return respondError(c, err)
		}
		spec = spec.For(op)
	}

	switch c.Query("format", "json") {
	case "json":
		return c.JSON(spec)
	case "yaml":
		out, err := yaml.Marshal(spec)
		if err != nil {
			return respondError(c, models.NewInternalError(err))
		}
		c.Set(fiber.HeaderContentType, "application/yaml; charset=utf-8")
		return c.Send(out)
	}
	return respondError(c, models.NewValidationError("Format must be json or yaml"))
}

// GetFormDefaults handles GET /api/admin/:resource/form
func (s *Server) GetFormDefaults(c *fiber.Ctx) error {
	form, ok := resources.Form(c.Params("resource"))
	if !ok {
		return respondError(c, notFound("Unknown resource"))
	}
	op, err := parseOperation(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"operation": op,
		"schema":    form.Spec().For(op),
		"state":     form.Defaults(op, time.Now()),
	})
}

// GetSelectOptions handles GET /api/admin/:resource/options/:field
func (s *Server) GetSelectOptions(c *fiber.Ctx) error {
	field, ok := resources.SelectField(c.Params("resource"), c.Params("field"))
	if !ok {
		return respondError(c, notFound("Unknown select field"))
	}

	ctx := c.UserContext()
	search := c.Query("search")
	limit := c.QueryInt("limit", repository.DefaultLimit)

	var (
		options []repository.Option
		err     error
	)
	switch field.Relationship.Resource {
	case resources.Users:
		options, err = s.userService.UserOptions(ctx, search, limit)
	case resources.Posts:
		options, err = s.postService.PostOptions(ctx, search, limit)
	default:
		return respondError(c, notFound("Unknown select field"))
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"options": options})
}

type formStateRequest struct {
	State map[string]any `json:"state"`
	Field string         `json:"field"`
	Value any            `json:"value"`
}

// UpdatePostFormState handles POST /api/admin/posts/form/state
// It applies one field change and returns the state with derived fields
// rewritten.
func (s *Server) UpdatePostFormState(c *fiber.Ctx) error {
	var req formStateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	value := admin.StateFromJSON(map[string]any{req.Field: req.Value})[req.Field]

	next, err := s.postService.UpdateFormState(admin.StateFromJSON(req.State), req.Field, value)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"state": next})
}
