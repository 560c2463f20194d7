// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/admin"
	"inkwell/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Default and maximum page sizes of listings.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListQuery describes one page of a resource listing. Sort and search
// expressions come from the resource table schema, never from user input.
type ListQuery struct {
	Trashed     admin.TrashedMode
	Search      string
	SearchExprs []string
	SortExpr    string
	Desc        bool
	Limit       int
	Offset      int
	// UserID and PostID scope the listing to an owner when non-zero.
	UserID uint
	PostID uint
}

func (q ListQuery) limit() int {
	switch {
	case q.Limit <= 0:
		return DefaultLimit
	case q.Limit > MaxLimit:
		return MaxLimit
	}
	return q.Limit
}

// Option is a select option of a relationship field.
type Option struct {
	Value uint   `json:"value"`
	Label string `json:"label"`
}

// Lifecycle moves records between the active, trashed and deleted states.
// Every call reports the number of rows it changed.
type Lifecycle interface {
	Delete(ctx context.Context, ids ...uint) (int64, error)
	Restore(ctx context.Context, ids ...uint) (int64, error)
	ForceDelete(ctx context.Context, ids ...uint) (int64, error)
	// OwnedBy keeps the ids whose column equals owner, trashed rows included.
	OwnedBy(ctx context.Context, column string, owner uint, ids ...uint) ([]uint, error)
}

// softDeletes implements Lifecycle for one model. onChange runs after
// every successful mutation.
type softDeletes struct {
	db       *gorm.DB
	model    any
	table    string
	onChange func(ctx context.Context, ids []uint)
}

func (s softDeletes) Delete(ctx context.Context, ids ...uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where(s.table+".id IN ?", ids).Delete(s.model)
	return s.done(ctx, ids, res)
}

func (s softDeletes) Restore(ctx context.Context, ids ...uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Unscoped().Model(s.model).
		Where(s.table+".id IN ?", ids).
		Where(s.table + ".deleted_at IS NOT NULL").
		Update("deleted_at", nil)
	return s.done(ctx, ids, res)
}

func (s softDeletes) ForceDelete(ctx context.Context, ids ...uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Unscoped().Where(s.table+".id IN ?", ids).Delete(s.model)
	return s.done(ctx, ids, res)
}

func (s softDeletes) OwnedBy(ctx context.Context, column string, owner uint, ids ...uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var owned []uint
	err := s.db.WithContext(ctx).Unscoped().Model(s.model).
		Where(s.table+".id IN ?", ids).
		Where(s.table+"."+column+" = ?", owner).
		Order(s.table+".id").
		Pluck(s.table+".id", &owned).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return owned, nil
}

func (s softDeletes) done(ctx context.Context, ids []uint, res *gorm.DB) (int64, error) {
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	if s.onChange != nil {
		s.onChange(ctx, ids)
	}
	return res.RowsAffected, nil
}

// scopeTrashed applies the trashed mode explicitly instead of relying on
// the soft-delete default scope.
func scopeTrashed(db *gorm.DB, table string, mode admin.TrashedMode) *gorm.DB {
	db = db.Unscoped()
	switch mode {
	case admin.WithTrashed:
		return db
	case admin.OnlyTrashed:
		return db.Where(table + ".deleted_at IS NOT NULL")
	default:
		return db.Where(table + ".deleted_at IS NULL")
	}
}

// scopeSearch matches term case-insensitively against any expression.
func scopeSearch(db *gorm.DB, term string, exprs []string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(exprs) == 0 {
		return db
	}
	like := "%" + strings.ToLower(term) + "%"
	conds := make([]string, len(exprs))
	args := make([]any, len(exprs))
	for i, expr := range exprs {
		conds[i] = "LOWER(" + expr + ") LIKE ?"
		args[i] = like
	}
	return db.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// scopeOrder sorts by the schema expression, newest first by default, with
// the primary key as tie breaker.
func scopeOrder(db *gorm.DB, table string, q ListQuery) *gorm.DB {
	if q.SortExpr == "" {
		return db.Order(table + ".id DESC")
	}
	dir := " ASC"
	if q.Desc {
		dir = " DESC"
	}
	return db.Order(q.SortExpr + dir).Order(table + ".id" + dir)
}

func page(db *gorm.DB, q ListQuery) *gorm.DB {
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	return db.Limit(q.limit()).Offset(offset)
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// writeError maps a failed write to an AppError; unique violations become a
// field error on field.
func writeError(err error, field, message string) error {
	if isUniqueConstraintError(err) {
		return models.NewFieldValidationError(map[string]string{field: message})
	}
	return models.NewInternalError(err)
}

func withUpdatedAt(columns []string) []string {
	for _, c := range columns {
		if c == "updated_at" {
			return columns
		}
	}
	return append(append([]string{}, columns...), "updated_at")
}
