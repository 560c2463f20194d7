package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post.
// Deleting the parent post does not remove its comments, so Post may be nil
// after loading when the post row is gone.
type Comment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	ApprovedAt *time.Time     `json:"approved_at"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	PostID     uint           `gorm:"not null;index" json:"post_id"`
	Author     *User          `gorm:"foreignKey:UserID" json:"author,omitempty"`
	Post       *Post          `gorm:"foreignKey:PostID" json:"post,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

// Approved reports whether the comment has an approval timestamp.
func (c Comment) Approved() bool {
	return c.ApprovedAt != nil
}

// Trashed reports whether the comment is soft-deleted.
func (c Comment) Trashed() bool {
	return c.DeletedAt.Valid
}
