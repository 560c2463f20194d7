// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account managed by the admin panel.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	Email           string         `gorm:"uniqueIndex;not null" json:"email"`
	Password        string         `gorm:"not null" json:"-"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Posts           []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
	Comments        []Comment      `gorm:"foreignKey:UserID" json:"comments,omitempty"`
}

// Verified reports whether the user's email address has been verified.
func (u User) Verified() bool {
	return u.EmailVerifiedAt != nil
}

// Trashed reports whether the user is soft-deleted.
func (u User) Trashed() bool {
	return u.DeletedAt.Valid
}
