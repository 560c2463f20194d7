// Package service runs the admin resource forms against the repositories:
// validation, dehydration, reference checks and lifecycle actions.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"inkwell/internal/admin"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// Owner scopes a relation manager write to its parent record.
type Owner struct {
	Column string
	ID     uint
}

// applyBulk runs a table bulk action. With a non-nil owner the ids are
// first narrowed to the owner's rows.
func applyBulk(ctx context.Context, resource string, lc repository.Lifecycle, kind admin.ActionKind, ids []uint, owner *Owner) (int64, error) {
	ctx, span := observability.StartSpan(ctx, "admin.bulk",
		attribute.String("admin.resource", resource),
		attribute.String("admin.action", string(kind)),
		attribute.Int("admin.ids", len(ids)),
	)
	defer span.End()

	if len(ids) == 0 {
		return 0, models.NewValidationError("No records selected")
	}
	if owner != nil {
		owned, err := lc.OwnedBy(ctx, owner.Column, owner.ID, ids...)
		if err != nil {
			return 0, err
		}
		ids = owned
	}

	var (
		n   int64
		err error
	)
	switch kind {
	case admin.ActionDelete:
		n, err = lc.Delete(ctx, ids...)
	case admin.ActionForceDelete:
		n, err = lc.ForceDelete(ctx, ids...)
	case admin.ActionRestore:
		n, err = lc.Restore(ctx, ids...)
	default:
		return 0, models.NewValidationError(fmt.Sprintf("Unsupported bulk action %q", kind))
	}
	if err != nil {
		return 0, err
	}
	recordMutation(ctx, resource, string(kind), slog.Any("ids", ids), slog.Int64("affected", n))
	return n, nil
}

func recordMutation(ctx context.Context, resource, action string, attrs ...any) {
	observability.AdminMutations.WithLabelValues(resource, action).Inc()
	args := append([]any{slog.String("resource", resource), slog.String("action", action)}, attrs...)
	middleware.Logger.InfoContext(ctx, "admin mutation", args...)
}

// columns lists the persisted keys of values in form order.
func columns(form admin.Form, values admin.State) []string {
	cols := make([]string, 0, len(values))
	for _, f := range form.Fields {
		if _, ok := values[f.Key]; ok {
			cols = append(cols, f.Key)
		}
	}
	return cols
}

// timestamp parses an already validated optional date value.
func timestamp(v string) *time.Time {
	t, err := admin.ParseTimestamp(v)
	if err != nil {
		return nil
	}
	return t
}

// key parses an already validated select value.
func key(v string) uint {
	id, err := admin.ParseKey(v)
	if err != nil {
		return 0
	}
	return id
}

func invalidSelection(form admin.Form, fieldKey string) string {
	label := fieldKey
	if f, ok := form.Field(fieldKey); ok && f.Label != "" {
		label = strings.ToLower(f.Label)
	}
	return fmt.Sprintf("The selected %s is invalid.", label)
}

// referenceCheck verifies a select value points at an active record.
type referenceCheck struct {
	field  string
	exists func(ctx context.Context, id uint) (bool, error)
	// current is the stored value; an unchanged reference is not rechecked.
	current uint
}

func checkReferences(ctx context.Context, form admin.Form, values admin.State, checks ...referenceCheck) error {
	errs := map[string]string{}
	for _, c := range checks {
		raw, ok := values[c.field]
		if !ok {
			continue
		}
		id := key(raw)
		if id != 0 && id == c.current {
			continue
		}
		ok, err := c.exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			errs[c.field] = invalidSelection(form, c.field)
		}
	}
	if len(errs) > 0 {
		return models.NewFieldValidationError(errs)
	}
	return nil
}

// prepare validates state for op and returns the values to persist.
func prepare(ctx context.Context, form admin.Form, op admin.Operation, state admin.State, unique admin.UniqueFunc) (admin.State, error) {
	if err := form.Validate(ctx, op, state, unique); err != nil {
		return nil, err
	}
	values, err := form.Dehydrate(op, state)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return values, nil
}
