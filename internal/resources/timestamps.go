// Package resources declares the admin resources: the form, table and
// relation managers of users, posts and comments.
package resources

import (
	"time"

	"inkwell/internal/admin"
)

// Resource names as they appear in URLs.
const (
	Users    = "users"
	Posts    = "posts"
	Comments = "comments"
)

// CreatedAtColumn is the shared created_at column of every table.
func CreatedAtColumn[T any](table string, get func(T) time.Time) admin.Column[T] {
	return admin.Column[T]{
		Key:        "created_at",
		Label:      "Created at",
		Render:     admin.RenderDateTime,
		Sortable:   true,
		SortExpr:   table + ".created_at",
		Toggleable: true,
		State:      func(rec T) any { return get(rec) },
	}
}

// UpdatedAtColumn is the shared updated_at column, hidden until toggled.
func UpdatedAtColumn[T any](table string, get func(T) time.Time) admin.Column[T] {
	return admin.Column[T]{
		Key:             "updated_at",
		Label:           "Updated at",
		Render:          admin.RenderDateTime,
		Sortable:        true,
		SortExpr:        table + ".updated_at",
		Toggleable:      true,
		HiddenByDefault: true,
		State:           func(rec T) any { return get(rec) },
	}
}

func editAction[T any](resource string, key func(T) uint) admin.Action[T] {
	return admin.Action[T]{
		Name:  "edit",
		Label: "Edit",
		Kind:  admin.ActionEdit,
		URL:   func(rec T) string { return admin.EditURL(resource, key(rec)) },
	}
}

func deleteAction[T any](trashed func(T) bool) admin.Action[T] {
	return admin.Action[T]{
		Name:    "delete",
		Label:   "Delete",
		Kind:    admin.ActionDelete,
		Visible: func(rec T) bool { return !trashed(rec) },
	}
}

var (
	softDeleteBulkActions = []admin.ActionKind{admin.ActionDelete, admin.ActionForceDelete, admin.ActionRestore}
	deleteBulkAction      = []admin.ActionKind{admin.ActionDelete}
	createHeaderAction    = []admin.ActionKind{admin.ActionCreate}
)
