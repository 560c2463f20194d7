package server

import (
	"errors"
	"fmt"
	"strings"

	"inkwell/internal/admin"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+strings.ToUpper(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// statusFor maps an AppError code to its HTTP status. Field validation
// failures are 422; other validation failures are malformed requests.
func statusFor(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeValidation:
		if len(appErr.Fields) > 0 {
			return fiber.StatusUnprocessableEntity
		}
		return fiber.StatusBadRequest
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusFor(err), err)
}

func notFound(message string) *models.AppError {
	return &models.AppError{Code: models.CodeNotFound, Message: message}
}

// parseState decodes a JSON object body into form state.
func parseState(c *fiber.Ctx) (admin.State, error) {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return nil, models.NewValidationError("Invalid request body")
	}
	return admin.StateFromJSON(body), nil
}

type bulkRequest struct {
	IDs []uint `json:"ids"`
}

// parseListQuery reads the listing parameters a table allows. Sorting and
// searching only ever use expressions declared by the table.
func parseListQuery[T any](c *fiber.Ctx, table admin.Table[T]) (repository.ListQuery, map[string]bool, error) {
	q := repository.ListQuery{
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  c.QueryInt("limit", repository.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	}
	if q.Search != "" {
		q.SearchExprs = table.SearchExprs()
	}

	if sort := c.Query("sort"); sort != "" {
		expr, ok := table.SortExpr(sort)
		if !ok {
			return q, nil, models.NewValidationError(fmt.Sprintf("Column %q is not sortable", sort))
		}
		q.SortExpr = expr
	}
	switch strings.ToLower(c.Query("direction", "asc")) {
	case "asc":
	case "desc":
		q.Desc = true
	default:
		return q, nil, models.NewValidationError("Direction must be asc or desc")
	}

	if trashed := c.Query("trashed"); trashed != "" {
		if !table.HasFilter(admin.FilterTrashed) {
			return q, nil, models.NewValidationError("This table has no trashed filter")
		}
		mode, err := admin.ParseTrashedMode(trashed)
		if err != nil {
			return q, nil, models.NewValidationError(err.Error())
		}
		q.Trashed = mode
	}

	var toggled map[string]bool
	if raw, ok := c.Queries()["columns"]; ok {
		toggled = map[string]bool{}
		for _, key := range strings.Split(raw, ",") {
			if key = strings.TrimSpace(key); key != "" {
				toggled[key] = true
			}
		}
	}
	return q, toggled, nil
}

type listResponse struct {
	Columns []string    `json:"columns"`
	Rows    []admin.Row `json:"rows"`
	Total   int64       `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
}

// listTable parses the listing query, loads one page and renders it.
func listTable[T any](c *fiber.Ctx, table admin.Table[T], scope func(*repository.ListQuery), load func(repository.ListQuery) ([]T, int64, error)) error {
	q, toggled, err := parseListQuery(c, table)
	if err != nil {
		return respondError(c, err)
	}
	if scope != nil {
		scope(&q)
	}

	records, total, err := load(q)
	if err != nil {
		return respondError(c, err)
	}

	rendered := table.Render(records, toggled)
	limit := q.Limit
	switch {
	case limit <= 0:
		limit = repository.DefaultLimit
	case limit > repository.MaxLimit:
		limit = repository.MaxLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	return c.JSON(listResponse{
		Columns: rendered.Columns,
		Rows:    rendered.Rows,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// bulkTable runs a bulk action declared by table. Undeclared actions are
// not routes of the table and answer 404.
func bulkTable[T any](c *fiber.Ctx, table admin.Table[T], run func(admin.ActionKind, []uint) (int64, error)) error {
	kind := admin.ActionKind(c.Params("action"))
	if !table.HasBulkAction(kind) {
		return respondError(c, notFound(fmt.Sprintf("Bulk action %q is not available", kind)))
	}

	var req bulkRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	n, err := run(kind, req.IDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"action":   kind,
		"affected": n,
	})
}
