package models

import (
	"time"
)

const (
	CategoryTypeNatural = "natural"
	CategoryTypeOrganic = "organic"
	CategoryTypeNA      = "na"
)

const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Type        string    `gorm:"size:20;not null;default:'na'" json:"type"`
	Slug        string    `gorm:"size:255" json:"slug"`
	BannerPath  string    `gorm:"size:255" json:"banner_path"`
	ImagePath   string    `gorm:"size:255" json:"image_path"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:20;not null;default:'active'" json:"status"`
	Products    []Product `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
