package models

import (
	"time"
)

const (
	PostTypeNews  = "news"
	PostTypeEvent = "event"
	PostTypeBlog  = "blog"
)

type Post struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Slug        string      `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Type        string      `gorm:"size:20;not null" json:"type"`
	Description string      `gorm:"type:text" json:"description"`
	StartDate   *time.Time  `json:"start_date"`
	EndDate     *time.Time  `json:"end_date"`
	Images      []PostImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type PostImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	ImagePath string    `gorm:"size:255;not null" json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
