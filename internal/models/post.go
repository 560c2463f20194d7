package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents an article authored by a user.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	PublishedAt *time.Time `json:"published_at"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Author      *User      `gorm:"foreignKey:UserID" json:"author,omitempty"`
	Comments    []Comment  `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int64          `gorm:"->;-:migration" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

// Published reports whether the post has a publish timestamp.
func (p Post) Published() bool {
	return p.PublishedAt != nil
}

// Trashed reports whether the post is soft-deleted.
func (p Post) Trashed() bool {
	return p.DeletedAt.Valid
}
